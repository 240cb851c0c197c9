package movement

import (
	"context"
	"fmt"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/pkg/logger"
)

// Resolver turns symbolic placement/batch references into concrete ids.
//
// Resolution runs before the movement transaction opens: a resolution
// failure aborts the movement before any ledger state is touched, and a
// lazily created default survives even when the movement later rolls back
// (the "-" resource is shared infrastructure, not movement state).
type Resolver struct {
	placements placement.Repository
	batches    batch.Repository
}

// NewResolver creates a resource resolver.
func NewResolver(placements placement.Repository, batches batch.Repository) *Resolver {
	return &Resolver{placements: placements, batches: batches}
}

// Placement resolves a placement reference within a location.
func (r *Resolver) Placement(ctx context.Context, locationID string, ref Ref) (int64, error) {
	switch ref.Kind() {
	case RefExistingID:
		return ref.ID(), nil

	case RefCreateNamed:
		p := placement.New(locationID, ref.Name())
		if err := p.Validate(); err != nil {
			return 0, err
		}
		if err := r.placements.Create(ctx, p); err != nil {
			return 0, apperror.NewResolution("placement", locationID, err)
		}
		logger.Info(ctx, "placement created by movement",
			"placement_id", p.ID,
			"location_id", locationID,
			"name", ref.Name(),
		)
		return p.ID, nil

	default:
		id, err := r.defaultPlacement(ctx, locationID)
		if err != nil {
			return 0, apperror.NewResolution("placement", locationID, err)
		}
		return id, nil
	}
}

// Batch resolves a batch reference within a location.
func (r *Resolver) Batch(ctx context.Context, locationID string, ref Ref) (int64, error) {
	switch ref.Kind() {
	case RefExistingID:
		return ref.ID(), nil

	case RefCreateNamed:
		b := batch.New(locationID, ref.Name())
		if err := b.Validate(); err != nil {
			return 0, err
		}
		if err := r.batches.Create(ctx, b); err != nil {
			return 0, apperror.NewResolution("batch", locationID, err)
		}
		logger.Info(ctx, "batch created by movement",
			"batch_id", b.ID,
			"location_id", locationID,
			"name", ref.Name(),
		)
		return b.ID, nil

	default:
		id, err := r.defaultBatch(ctx, locationID)
		if err != nil {
			return 0, apperror.NewResolution("batch", locationID, err)
		}
		return id, nil
	}
}

// defaultPlacement fetches the "-" placement, creating it on first use.
// Only an active row resolves; a barred default stops the movement.
// A unique violation on create means a concurrent request won the race;
// the winner's row is re-fetched instead of failing.
func (r *Resolver) defaultPlacement(ctx context.Context, locationID string) (int64, error) {
	existing, err := r.placements.GetByName(ctx, locationID, placement.DefaultName)
	if err == nil {
		if existing.IsBarred {
			return 0, fmt.Errorf("default placement %d is barred", existing.ID)
		}
		return existing.ID, nil
	}
	if !apperror.IsNotFound(err) {
		return 0, fmt.Errorf("look up default placement: %w", err)
	}

	p := placement.New(locationID, placement.DefaultName)
	createErr := r.placements.Create(ctx, p)
	if createErr == nil {
		logger.Info(ctx, "default placement created", "placement_id", p.ID, "location_id", locationID)
		return p.ID, nil
	}
	if !apperror.IsDuplicate(createErr) {
		return 0, fmt.Errorf("create default placement: %w", createErr)
	}

	winner, err := r.placements.GetByName(ctx, locationID, placement.DefaultName)
	if err != nil {
		return 0, fmt.Errorf("re-fetch default placement after race: %w", err)
	}
	if winner.IsBarred {
		return 0, fmt.Errorf("default placement %d is barred", winner.ID)
	}
	return winner.ID, nil
}

// defaultBatch fetches the "-" batch, creating it on first use, with the
// same race handling as defaultPlacement.
func (r *Resolver) defaultBatch(ctx context.Context, locationID string) (int64, error) {
	existing, err := r.batches.GetByName(ctx, locationID, batch.DefaultName)
	if err == nil {
		if existing.IsBarred {
			return 0, fmt.Errorf("default batch %d is barred", existing.ID)
		}
		return existing.ID, nil
	}
	if !apperror.IsNotFound(err) {
		return 0, fmt.Errorf("look up default batch: %w", err)
	}

	b := batch.New(locationID, batch.DefaultName)
	createErr := r.batches.Create(ctx, b)
	if createErr == nil {
		logger.Info(ctx, "default batch created", "batch_id", b.ID, "location_id", locationID)
		return b.ID, nil
	}
	if !apperror.IsDuplicate(createErr) {
		return 0, fmt.Errorf("create default batch: %w", createErr)
	}

	winner, err := r.batches.GetByName(ctx, locationID, batch.DefaultName)
	if err != nil {
		return 0, fmt.Errorf("re-fetch default batch after race: %w", err)
	}
	if winner.IsBarred {
		return 0, fmt.Errorf("default batch %d is barred", winner.ID)
	}
	return winner.ID, nil
}

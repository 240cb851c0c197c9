package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/infrastructure/storage/postgres"
)

const placementTable = "nl_placement"

var placementColumns = []string{
	"id", "location_id", "name", "inserted", "updated", "is_barred",
}

// PlacementRepo implements placement.Repository.
type PlacementRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPlacementRepo creates a new placement repository.
func NewPlacementRepo(txManager *postgres.TxManager) *PlacementRepo {
	return &PlacementRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a placement and fills its ID. A (location_id, name)
// collision maps to a duplicate error for the resolver to act on.
func (r *PlacementRepo) Create(ctx context.Context, p *placement.Placement) error {
	q := r.builder.Insert(placementTable).
		Columns("location_id", "name", "inserted", "updated", "is_barred").
		Values(p.LocationID, p.Name, p.Inserted, p.Updated, p.IsBarred).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		if pgErrCode(err, pgUniqueViolation) {
			return apperror.NewDuplicate("placement", "name", p.Name).WithCause(err)
		}
		return fmt.Errorf("insert placement: %w", err)
	}

	return nil
}

// GetByID returns a placement by id.
func (r *PlacementRepo) GetByID(ctx context.Context, placementID int64) (*placement.Placement, error) {
	q := r.builder.Select(placementColumns...).
		From(placementTable).
		Where(squirrel.Eq{"id": placementID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p placement.Placement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("placement", placementID)
		}
		return nil, fmt.Errorf("get placement: %w", err)
	}

	return &p, nil
}

// GetByName returns the placement with the given name within a location.
func (r *PlacementRepo) GetByName(ctx context.Context, locationID, name string) (*placement.Placement, error) {
	q := r.builder.Select(placementColumns...).
		From(placementTable).
		Where(squirrel.Eq{
			"location_id": locationID,
			"name":        name,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p placement.Placement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("placement", name)
		}
		return nil, fmt.Errorf("get placement by name: %w", err)
	}

	return &p, nil
}

// ListActive returns non-barred placements for a location.
func (r *PlacementRepo) ListActive(ctx context.Context, locationID string) ([]placement.Placement, error) {
	return r.list(ctx, locationID, true)
}

// ListAll returns every placement for a location, barred included.
func (r *PlacementRepo) ListAll(ctx context.Context, locationID string) ([]placement.Placement, error) {
	return r.list(ctx, locationID, false)
}

func (r *PlacementRepo) list(ctx context.Context, locationID string, activeOnly bool) ([]placement.Placement, error) {
	q := r.builder.Select(placementColumns...).
		From(placementTable).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("name")

	if activeOnly {
		q = q.Where(squirrel.Eq{"is_barred": false})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var placements []placement.Placement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &placements, sql, args...); err != nil {
		return nil, fmt.Errorf("select placements: %w", err)
	}

	return placements, nil
}

// SetBarred sets or clears the barred flag.
func (r *PlacementRepo) SetBarred(ctx context.Context, placementID int64, barred bool) error {
	q := r.builder.Update(placementTable).
		Set("is_barred", barred).
		Set("updated", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": placementID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update placement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("placement", placementID)
	}

	return nil
}

package batch

import (
	"context"
	"fmt"

	"nordlager/pkg/logger"
)

// Service provides business operations for batches.
type Service struct {
	repo Repository
}

// NewService creates a new batch service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a named batch for a location.
func (s *Service) Create(ctx context.Context, locationID, name string) (*Batch, error) {
	b := New(locationID, name)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	logger.Info(ctx, "batch created",
		"batch_id", b.ID,
		"location_id", locationID,
		"name", name,
	)
	return b, nil
}

// ListActive returns active batches for a location.
func (s *Service) ListActive(ctx context.Context, locationID string) ([]Batch, error) {
	return s.repo.ListActive(ctx, locationID)
}

// SetBarred toggles the barred flag.
func (s *Service) SetBarred(ctx context.Context, batchID int64, barred bool) error {
	return s.repo.SetBarred(ctx, batchID, barred)
}

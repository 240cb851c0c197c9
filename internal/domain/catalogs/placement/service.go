package placement

import (
	"context"
	"fmt"

	"nordlager/pkg/logger"
)

// Service provides business operations for placements.
type Service struct {
	repo Repository
}

// NewService creates a new placement service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a named placement for a location.
func (s *Service) Create(ctx context.Context, locationID, name string) (*Placement, error) {
	p := New(locationID, name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create placement: %w", err)
	}

	logger.Info(ctx, "placement created",
		"placement_id", p.ID,
		"location_id", locationID,
		"name", name,
	)
	return p, nil
}

// ListActive returns active placements for a location.
func (s *Service) ListActive(ctx context.Context, locationID string) ([]Placement, error) {
	return s.repo.ListActive(ctx, locationID)
}

// SetBarred toggles the barred flag.
func (s *Service) SetBarred(ctx context.Context, placementID int64, barred bool) error {
	return s.repo.SetBarred(ctx, placementID, barred)
}

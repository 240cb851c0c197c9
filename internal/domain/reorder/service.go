package reorder

import (
	"context"
	"fmt"

	"nordlager/internal/core/types"
	"nordlager/pkg/logger"
)

// Service provides business operations for reorder settings.
type Service struct {
	repo Repository
}

// NewService creates a new reorder service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set creates or replaces the reorder setting for a product at a location.
// bufferPercent is the buffer expressed as a percentage (25 == 25%).
func (s *Service) Set(ctx context.Context, customerID int64, productID int64, locationID string, minimum, ordered types.Quantity, bufferPercent float64) (*Reorder, error) {
	r := &Reorder{
		ProductID:  productID,
		LocationID: locationID,
		CustomerID: customerID,
		Minimum:    minimum,
		Ordered:    ordered,
		Buffer:     bufferPercent / 100,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("upsert reorder setting: %w", err)
	}

	logger.Info(ctx, "reorder setting saved",
		"product_id", productID,
		"location_id", locationID,
		"minimum", minimum.Float64(),
		"buffer", r.Buffer,
	)
	return r, nil
}

// Remove deletes the reorder setting for a product at a location.
func (s *Service) Remove(ctx context.Context, productID int64, locationID string) error {
	if err := s.repo.Delete(ctx, productID, locationID); err != nil {
		return fmt.Errorf("delete reorder setting: %w", err)
	}
	logger.Info(ctx, "reorder setting removed",
		"product_id", productID,
		"location_id", locationID,
	)
	return nil
}

// Get returns the reorder setting for a product at a location.
func (s *Service) Get(ctx context.Context, productID int64, locationID string) (*Reorder, error) {
	return s.repo.GetByKey(ctx, productID, locationID)
}

// ListByLocation returns all settings for a location with disposable and
// recommended quantities computed from current stock.
func (s *Service) ListByLocation(ctx context.Context, locationID string) ([]Status, error) {
	statuses, err := s.repo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("list reorder settings: %w", err)
	}
	for i := range statuses {
		st := &statuses[i]
		st.Disposable = Disposable(st.Quantity, st.Ordered)
		st.Recommended = Recommended(st.Quantity, st.Minimum, st.Buffer)
	}
	return statuses, nil
}

package ledger

import (
	"context"
	"fmt"

	"nordlager/internal/core/types"
	"nordlager/pkg/logger"
)

// Service provides business operations on the quantity ledger.
// Transactions are managed by the caller (the movement engine).
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetQuantity returns the current balance for a key; absent rows read as 0.
func (s *Service) GetQuantity(ctx context.Context, key Key) (types.Quantity, error) {
	row, _, err := s.repo.GetRow(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get ledger row: %w", err)
	}
	return row.Quantity, nil
}

// Exists reports whether a balance row exists for the key.
func (s *Service) Exists(ctx context.Context, key Key) (bool, error) {
	_, found, err := s.repo.GetRow(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get ledger row: %w", err)
	}
	return found, nil
}

// ApplyDelta additively upserts the row for a key.
func (s *Service) ApplyDelta(ctx context.Context, key Key, delta types.Quantity) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := s.repo.ApplyDelta(ctx, key, delta); err != nil {
		return fmt.Errorf("apply ledger delta: %w", err)
	}
	return nil
}

// ListByLocation returns balance rows with live catalog labels.
func (s *Service) ListByLocation(ctx context.Context, locationID string) ([]RowDetail, error) {
	return s.repo.ListByLocation(ctx, locationID)
}

// SeedZeroRows creates zero-quantity rows for the given products at one
// placement/batch. Used when provisioning a location and when a new product
// is backfilled across existing locations.
func (s *Service) SeedZeroRows(ctx context.Context, customerID int64, productIDs []int64, locationID string, placementID, batchID int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	keys := make([]Key, 0, len(productIDs))
	for _, productID := range productIDs {
		keys = append(keys, Key{
			ProductID:   productID,
			PlacementID: placementID,
			BatchID:     batchID,
			LocationID:  locationID,
			CustomerID:  customerID,
		})
	}
	if err := s.repo.InsertZeroRows(ctx, keys); err != nil {
		return fmt.Errorf("seed zero rows: %w", err)
	}

	logger.Info(ctx, "seeded zero inventory rows",
		"count", len(productIDs),
		"location_id", locationID,
	)
	return nil
}

package reorder

import (
	"context"

	"nordlager/internal/core/types"
)

// Repository defines persistence operations for reorder settings.
type Repository interface {
	// Upsert inserts or replaces the setting for (product, location).
	Upsert(ctx context.Context, r *Reorder) error

	// Delete removes the setting for (product, location). Deleting a missing
	// setting is not an error.
	Delete(ctx context.Context, productID int64, locationID string) error

	// GetByKey returns the setting for (product, location), or
	// apperror.CodeNotFound.
	GetByKey(ctx context.Context, productID int64, locationID string) (*Reorder, error)

	// ListByLocation returns all settings for a location joined with the
	// location-wide on-hand quantity of each product.
	ListByLocation(ctx context.Context, locationID string) ([]Status, error)

	// DecrementOrdered drains the on-order quantity by the received amount,
	// clamping at zero. A missing setting is a no-op.
	DecrementOrdered(ctx context.Context, productID int64, locationID string, received types.Quantity) error
}

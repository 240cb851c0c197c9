package batch

import (
	"context"
)

// Repository defines persistence operations for batches.
type Repository interface {
	// Create inserts a batch and fills its ID.
	// A (location_id, batch) collision yields apperror.CodeDuplicate.
	Create(ctx context.Context, b *Batch) error

	// GetByID returns a batch or apperror.CodeNotFound.
	GetByID(ctx context.Context, batchID int64) (*Batch, error)

	// GetByName returns the batch with the given name within a location,
	// or apperror.CodeNotFound.
	GetByName(ctx context.Context, locationID, name string) (*Batch, error)

	// ListActive returns non-barred batches for a location.
	ListActive(ctx context.Context, locationID string) ([]Batch, error)

	// ListAll returns every batch for a location, barred included.
	ListAll(ctx context.Context, locationID string) ([]Batch, error)

	// SetBarred sets or clears the barred flag.
	SetBarred(ctx context.Context, batchID int64, barred bool) error
}

package placement

import (
	"context"
)

// Repository defines persistence operations for placements.
type Repository interface {
	// Create inserts a placement and fills its ID.
	// A (location_id, name) collision yields apperror.CodeDuplicate.
	Create(ctx context.Context, p *Placement) error

	// GetByID returns a placement or apperror.CodeNotFound.
	GetByID(ctx context.Context, placementID int64) (*Placement, error)

	// GetByName returns the placement with the given name within a location,
	// or apperror.CodeNotFound.
	GetByName(ctx context.Context, locationID, name string) (*Placement, error)

	// ListActive returns non-barred placements for a location.
	ListActive(ctx context.Context, locationID string) ([]Placement, error)

	// ListAll returns every placement for a location, barred included.
	ListAll(ctx context.Context, locationID string) ([]Placement, error)

	// SetBarred sets or clears the barred flag.
	SetBarred(ctx context.Context, placementID int64, barred bool) error
}

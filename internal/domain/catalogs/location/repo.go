package location

import (
	"context"
)

// Repository defines persistence operations for locations.
type Repository interface {
	// Create inserts a location.
	Create(ctx context.Context, l *Location) error

	// GetByID returns a location or apperror.CodeNotFound.
	GetByID(ctx context.Context, locationID string) (*Location, error)

	// ListByCustomer returns all locations of a customer.
	ListByCustomer(ctx context.Context, customerID int64) ([]Location, error)

	// SetBarred sets or clears the barred flag.
	SetBarred(ctx context.Context, locationID string, barred bool) error
}

package history

import (
	"context"
)

// Repository defines persistence operations for history rows.
// There is deliberately no update or delete: history is append-only.
type Repository interface {
	// Insert appends a record and fills its ID and Inserted timestamp.
	Insert(ctx context.Context, rec *Record) error

	// ListByLocation returns history rows for a location, newest first.
	ListByLocation(ctx context.Context, locationID string, filter Filter) ([]Record, error)
}

package ledger

import (
	"context"

	"nordlager/internal/core/types"
)

// Repository defines operations on the quantity ledger.
type Repository interface {
	// GetRow returns the balance row for a key.
	// A missing row is not an error: found is false and the zero-valued
	// row carries the key with quantity 0.
	GetRow(ctx context.Context, key Key) (row Row, found bool, err error)

	// ApplyDelta additively upserts a row: quantity += delta when the row
	// exists, insert with quantity = delta otherwise. Implementations must
	// express this as a single atomic statement, never read-modify-write.
	ApplyDelta(ctx context.Context, key Key, delta types.Quantity) error

	// ListByLocation returns balance rows with live catalog labels.
	ListByLocation(ctx context.Context, locationID string) ([]RowDetail, error)

	// SumByProductLocation returns the total quantity of a product at a
	// location across all placements and batches.
	SumByProductLocation(ctx context.Context, productID int64, locationID string) (types.Quantity, error)

	// InsertZeroRows bulk-inserts zero-quantity rows for keys that are
	// known not to exist yet, such as when provisioning a location.
	InsertZeroRows(ctx context.Context, keys []Key) error
}

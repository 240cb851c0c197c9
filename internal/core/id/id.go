// Package id provides identifier helpers for platform entities.
//
// Catalog rows (products, placements, batches, users) use bigserial
// identifiers assigned by the database. Locations use opaque text
// identifiers generated at creation time.
package id

import (
	"strconv"

	"github.com/google/uuid"
)

// RowID identifies a database-assigned catalog row.
type RowID = int64

// NewLocationID generates an opaque text identifier for a location.
// UUIDv7 keeps location ids time-ordered, which helps B-tree locality.
func NewLocationID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.NewString()
	}
	return v7.String()
}

// ParseRowID converts a decimal string to a RowID.
func ParseRowID(s string) (RowID, error) {
	return strconv.ParseInt(s, 10, 64)
}

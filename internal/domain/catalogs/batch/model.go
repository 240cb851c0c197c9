// Package batch provides the batch catalog (lot/expiry groupings per location).
package batch

import (
	"time"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/entity"
)

// DefaultName is the reserved name of the implicit default batch.
const DefaultName = "-"

// Batch is a named lot grouping within a location.
// Uniqueness: (location_id, batch).
type Batch struct {
	ID         int64      `db:"id" json:"id"`
	LocationID string     `db:"location_id" json:"locationId"`
	Name       string     `db:"batch" json:"name"`
	Expiry     *time.Time `db:"expiry" json:"expiry,omitempty"`

	entity.Catalog
}

// New creates a batch for a location.
func New(locationID, name string) *Batch {
	return &Batch{
		LocationID: locationID,
		Name:       name,
		Catalog:    entity.NewCatalog(),
	}
}

// Validate checks the batch before persistence.
func (b *Batch) Validate() error {
	if b.LocationID == "" {
		return apperror.NewValidation("batch location_id is required")
	}
	if b.Name == "" {
		return apperror.NewValidation("batch name is required")
	}
	return nil
}

// IsDefault reports whether this is the location's default batch.
func (b *Batch) IsDefault() bool {
	return b.Name == DefaultName
}

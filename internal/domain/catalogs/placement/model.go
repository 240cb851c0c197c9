// Package placement provides the placement catalog (named sub-location buckets).
package placement

import (
	"nordlager/internal/core/apperror"
	"nordlager/internal/core/entity"
)

// DefaultName is the reserved name of the implicit default placement.
// Every location owns exactly one placement with this name; it is created
// lazily on first use and eagerly at location creation.
const DefaultName = "-"

// Placement is a named bucket within a location (e.g. a shelf).
// Uniqueness: (location_id, name).
type Placement struct {
	ID         int64  `db:"id" json:"id"`
	LocationID string `db:"location_id" json:"locationId"`
	Name       string `db:"name" json:"name"`

	entity.Catalog
}

// New creates a placement for a location.
func New(locationID, name string) *Placement {
	return &Placement{
		LocationID: locationID,
		Name:       name,
		Catalog:    entity.NewCatalog(),
	}
}

// Validate checks the placement before persistence.
func (p *Placement) Validate() error {
	if p.LocationID == "" {
		return apperror.NewValidation("placement location_id is required")
	}
	if p.Name == "" {
		return apperror.NewValidation("placement name is required")
	}
	return nil
}

// IsDefault reports whether this is the location's default placement.
func (p *Placement) IsDefault() bool {
	return p.Name == DefaultName
}

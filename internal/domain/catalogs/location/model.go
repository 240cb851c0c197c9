// Package location provides the location catalog (warehouses/sites) and
// transactional provisioning of a location's default resources.
package location

import (
	"nordlager/internal/core/apperror"
	"nordlager/internal/core/entity"
	"nordlager/internal/core/id"
)

// Location is a physical site owned by a customer. Placements, batches and
// ledger rows are all scoped to one location.
type Location struct {
	ID         string `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customerId"`
	Name       string `db:"name" json:"name"`
	Address    string `db:"address" json:"address"`

	entity.Catalog
}

// New creates a location with a fresh id.
func New(customerID int64, name, address string) *Location {
	return &Location{
		ID:         id.NewLocationID(),
		CustomerID: customerID,
		Name:       name,
		Address:    address,
		Catalog:    entity.NewCatalog(),
	}
}

// Validate checks the location before persistence.
func (l *Location) Validate() error {
	if l.ID == "" {
		return apperror.NewValidation("location id is required")
	}
	if l.CustomerID <= 0 {
		return apperror.NewValidation("location customer_id is required")
	}
	if l.Name == "" {
		return apperror.NewValidation("location name is required")
	}
	return nil
}

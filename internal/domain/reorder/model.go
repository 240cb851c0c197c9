// Package reorder provides reorder points and replenishment recommendations.
package reorder

import (
	"time"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
)

// Reorder is a per-product, per-location replenishment setting.
//
// Buffer is a fraction (0.25 == 25%) added on top of the minimum when a
// recommendation is triggered. Ordered tracks quantity already on order and
// is drained by incoming deliveries.
type Reorder struct {
	ProductID  int64  `db:"product_id" json:"productId"`
	LocationID string `db:"location_id" json:"locationId"`
	CustomerID int64  `db:"customer_id" json:"customerId"`

	Minimum types.Quantity `db:"minimum" json:"minimum"`
	Ordered types.Quantity `db:"ordered" json:"ordered"`
	Buffer  float64        `db:"buffer" json:"buffer"`

	Inserted time.Time `db:"inserted" json:"inserted"`
	Updated  time.Time `db:"updated" json:"updated"`
}

// Validate checks the setting before persistence.
func (r *Reorder) Validate() error {
	if r.ProductID <= 0 {
		return apperror.NewValidation("reorder product_id is required")
	}
	if r.LocationID == "" {
		return apperror.NewValidation("reorder location_id is required")
	}
	if r.CustomerID <= 0 {
		return apperror.NewValidation("reorder customer_id is required")
	}
	if r.Minimum.IsNegative() {
		return apperror.NewValidation("reorder minimum must not be negative")
	}
	if r.Buffer < 0 {
		return apperror.NewValidation("reorder buffer must not be negative")
	}
	return nil
}

// Status is a reorder setting joined with the current stock level and the
// derived recommendation.
type Status struct {
	Reorder

	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Disposable  types.Quantity `db:"-" json:"disposable"`
	Recommended types.Quantity `db:"-" json:"recommended"`
}

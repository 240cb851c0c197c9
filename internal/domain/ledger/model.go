// Package ledger provides the quantity ledger: one balance row per
// (product, placement, batch, location, customer) key, maintained purely
// through additive deltas.
package ledger

import (
	"time"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
)

// Key identifies one stock balance.
type Key struct {
	ProductID   int64  `db:"product_id" json:"productId"`
	PlacementID int64  `db:"placement_id" json:"placementId"`
	BatchID     int64  `db:"batch_id" json:"batchId"`
	LocationID  string `db:"location_id" json:"locationId"`
	CustomerID  int64  `db:"customer_id" json:"customerId"`
}

// Validate checks that every dimension of the key is set.
func (k Key) Validate() error {
	if k.ProductID == 0 {
		return apperror.NewValidation("ledger key product_id is required")
	}
	if k.PlacementID == 0 {
		return apperror.NewValidation("ledger key placement_id is required")
	}
	if k.BatchID == 0 {
		return apperror.NewValidation("ledger key batch_id is required")
	}
	if k.LocationID == "" {
		return apperror.NewValidation("ledger key location_id is required")
	}
	if k.CustomerID == 0 {
		return apperror.NewValidation("ledger key customer_id is required")
	}
	return nil
}

// Row is one stock balance. A missing row is equivalent to quantity 0;
// rows are created implicitly by the first movement touching their key.
// Negative quantities are permitted (oversell/backorder).
type Row struct {
	Key

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	Inserted time.Time `db:"inserted" json:"inserted"`
	Updated  time.Time `db:"updated" json:"updated"`
}

// RowDetail is a ledger row joined with live catalog labels, used by
// overview listings. History rows carry their own point-in-time snapshots
// and never use this live join.
type RowDetail struct {
	Row

	ProductSku    string `db:"product_sku" json:"productSku"`
	ProductText1  string `db:"product_text_1" json:"productText1"`
	ProductUnit   string `db:"product_unit" json:"productUnit"`
	ProductGroup  string `db:"product_group" json:"productGroup"`
	PlacementName string `db:"placement_name" json:"placementName"`
	BatchName     string `db:"batch_name" json:"batchName"`
}

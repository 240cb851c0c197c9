// Package history provides the append-only movement history.
//
// History rows are the system of record for "how did we get here": one row
// per directional quantity delta, enriched with denormalized labels valid at
// the time of the event. Rows are never mutated or deleted by the engine.
package history

import (
	"time"

	"nordlager/internal/core/entity"
	"nordlager/internal/core/types"
)

// Record is one immutable history row.
//
// The product/user/placement/batch fields are point-in-time snapshots, not
// live joins: they must survive later renames and deletes of the catalog
// rows they describe.
type Record struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customerId"`
	LocationID string `db:"location_id" json:"locationId"`

	// Who acted. UserID <= 0 marks an API-key caller.
	UserID   int64  `db:"user_id" json:"userId"`
	UserName string `db:"user_name" json:"userName"`
	UserRole string `db:"user_role" json:"userRole"`

	// What moved.
	ProductID         int64       `db:"product_id" json:"productId"`
	ProductGroupName  string      `db:"product_group_name" json:"productGroupName"`
	ProductUnitName   string      `db:"product_unit_name" json:"productUnitName"`
	ProductText1      string      `db:"product_text_1" json:"productText1"`
	ProductText2      string      `db:"product_text_2" json:"productText2"`
	ProductText3      string      `db:"product_text_3" json:"productText3"`
	ProductSku        string      `db:"product_sku" json:"productSku"`
	ProductBarcode    string      `db:"product_barcode" json:"productBarcode"`
	ProductCostPrice  types.Money `db:"product_cost_price" json:"productCostPrice"`
	ProductSalesPrice types.Money `db:"product_sales_price" json:"productSalesPrice"`

	// Where.
	PlacementID   int64  `db:"placement_id" json:"placementId"`
	PlacementName string `db:"placement_name" json:"placementName"`
	BatchID       int64  `db:"batch_id" json:"batchId"`
	BatchName     string `db:"batch_name" json:"batchName"`

	Kind     entity.MovementKind `db:"type" json:"type"`
	Platform entity.Platform     `db:"platform" json:"platform"`

	// Amount is the signed delta applied to the ledger.
	Amount    types.Quantity `db:"amount" json:"amount"`
	Reference string         `db:"reference" json:"reference"`

	Inserted time.Time `db:"inserted" json:"inserted"`
}

// Event is the input to the recorder: the raw facts of one quantity delta,
// before snapshot enrichment.
type Event struct {
	CustomerID  int64
	LocationID  string
	UserID      int64
	ProductID   int64
	PlacementID int64
	BatchID     int64
	Kind        entity.MovementKind
	Platform    entity.Platform
	Amount      types.Quantity
	Reference   string
}

// Filter narrows history listings.
type Filter struct {
	ProductID *int64
	Kind      *entity.MovementKind
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

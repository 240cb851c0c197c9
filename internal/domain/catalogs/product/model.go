// Package product provides the product catalog read model used by the ledger.
//
// Product CRUD itself lives in the surrounding application; the ledger only
// needs products for snapshot denormalization and zero-row seeding.
package product

import (
	"nordlager/internal/core/entity"
	"nordlager/internal/core/types"
)

// Product is a catalog item owned by a customer.
type Product struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customerId"`
	GroupID    int64  `db:"group_id" json:"groupId"`
	UnitID     int64  `db:"unit_id" json:"unitId"`
	Text1      string `db:"text_1" json:"text1"`
	Text2      string `db:"text_2" json:"text2"`
	Text3      string `db:"text_3" json:"text3"`
	Sku        string `db:"sku" json:"sku"`
	Barcode    string `db:"barcode" json:"barcode"`

	CostPrice  types.Money `db:"cost_price" json:"costPrice"`
	SalesPrice types.Money `db:"sales_price" json:"salesPrice"`

	Note string `db:"note" json:"note"`

	entity.Catalog
}

// Info is a product joined with its group and unit names.
// This is the shape the history recorder snapshots from.
type Info struct {
	Product

	GroupName string `db:"group_name" json:"groupName"`
	UnitName  string `db:"unit_name" json:"unitName"`
}

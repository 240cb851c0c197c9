package entity

import "time"

// Catalog contains the common columns of catalog tables.
// Embedded by placements, batches, products and groups.
type Catalog struct {
	Inserted time.Time `db:"inserted" json:"inserted"`
	Updated  time.Time `db:"updated" json:"updated"`

	// IsBarred soft-disables the row: barred resources are excluded from
	// active listings and from default-resource resolution, but existing
	// ledger rows keep referencing them.
	IsBarred bool `db:"is_barred" json:"isBarred"`
}

// NewCatalog returns catalog columns stamped with the current time.
func NewCatalog() Catalog {
	now := time.Now().UTC()
	return Catalog{Inserted: now, Updated: now}
}

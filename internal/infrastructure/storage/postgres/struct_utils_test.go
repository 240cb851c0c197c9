package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nordlager/internal/core/entity"
)

type mockPlacement struct {
	ID         int64  `db:"id" json:"id"`
	LocationID string `db:"location_id" json:"locationId"`
	Name       string `db:"name" json:"name"`

	entity.Catalog
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockPlacement]()

	expectedCols := []string{
		"id", "location_id", "name", "inserted", "updated", "is_barred",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	p := mockPlacement{
		ID:         42,
		LocationID: "loc-1",
		Name:       "Shelf A",
		Catalog: entity.Catalog{
			Inserted: now,
			Updated:  now,
			IsBarred: true,
		},
	}

	m := StructToMap(p)

	assert.Equal(t, int64(42), m["id"])
	assert.Equal(t, "loc-1", m["location_id"])
	assert.Equal(t, "Shelf A", m["name"])
	assert.Equal(t, now, m["inserted"])
	assert.Equal(t, true, m["is_barred"])
}

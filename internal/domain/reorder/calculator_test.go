package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nordlager/internal/core/types"
)

func TestRecommended(t *testing.T) {
	tests := []struct {
		name     string
		quantity types.Quantity
		minimum  types.Quantity
		buffer   float64
		want     types.Quantity
	}{
		{
			name:     "above minimum recommends nothing",
			quantity: 12,
			minimum:  10,
			buffer:   0.25,
			want:     0,
		},
		{
			name:     "at minimum triggers refill plus buffer",
			quantity: 10,
			minimum:  10,
			buffer:   0.25,
			want:     2.5,
		},
		{
			name:     "below minimum refills gap plus buffer",
			quantity: 4,
			minimum:  10,
			buffer:   0.5,
			want:     11,
		},
		{
			name:     "negative stock widens the gap",
			quantity: -3,
			minimum:  10,
			buffer:   0,
			want:     13,
		},
		{
			name:     "zero minimum with zero stock",
			quantity: 0,
			minimum:  0,
			buffer:   0.25,
			want:     0,
		},
		{
			name:     "no buffer refills to minimum exactly",
			quantity: 7,
			minimum:  10,
			buffer:   0,
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommended(tt.quantity, tt.minimum, tt.buffer)
			assert.InDelta(t, tt.want.Float64(), got.Float64(), 1e-9)
		})
	}
}

func TestDisposable(t *testing.T) {
	assert.Equal(t, types.Quantity(15), Disposable(10, 5))
	assert.Equal(t, types.Quantity(5), Disposable(5, 0))
	assert.Equal(t, types.Quantity(2), Disposable(-3, 5))
}

func TestDrainOrdered(t *testing.T) {
	tests := []struct {
		name     string
		ordered  types.Quantity
		received types.Quantity
		want     types.Quantity
	}{
		{"partial receipt leaves remainder", 10, 4, 6},
		{"exact receipt clears the order", 10, 10, 0},
		{"over-receipt clamps at zero", 10, 15, 0},
		{"nothing on order stays zero", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DrainOrdered(tt.ordered, tt.received))
		})
	}
}

func TestReorderValidate(t *testing.T) {
	valid := func() *Reorder {
		return &Reorder{
			ProductID:  1,
			LocationID: "loc-1",
			CustomerID: 7,
			Minimum:    10,
			Buffer:     0.25,
		}
	}

	assert.NoError(t, valid().Validate())

	r := valid()
	r.ProductID = 0
	assert.Error(t, r.Validate())

	r = valid()
	r.LocationID = ""
	assert.Error(t, r.Validate())

	r = valid()
	r.Minimum = -1
	assert.Error(t, r.Validate())

	r = valid()
	r.Buffer = -0.1
	assert.Error(t, r.Validate())
}

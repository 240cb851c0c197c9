package reorder

import (
	"nordlager/internal/core/types"
)

// Recommended returns the quantity to order for a product given its current
// on-hand quantity, the configured minimum, and the buffer fraction.
//
// Above the minimum nothing is recommended. At or below it, the
// recommendation refills to the minimum plus the buffer share of the
// minimum, and is never negative.
func Recommended(quantity, minimum types.Quantity, buffer float64) types.Quantity {
	if quantity > minimum {
		return 0
	}
	rec := minimum - quantity + types.Quantity(minimum.Float64()*buffer)
	if rec.IsNegative() {
		return 0
	}
	return rec
}

// Disposable returns on-hand plus on-order quantity. Quantity already
// committed to an open order counts toward availability so the same gap is
// not ordered twice.
func Disposable(quantity, ordered types.Quantity) types.Quantity {
	return quantity.Add(ordered)
}

// DrainOrdered returns the on-order quantity remaining after a receipt of
// the given size, clamped at zero. Receipts larger than the outstanding
// order simply clear it.
func DrainOrdered(ordered, received types.Quantity) types.Quantity {
	rest := ordered - received
	if rest.IsNegative() {
		return 0
	}
	return rest
}

package product

import (
	"context"
)

// Repository defines read operations the ledger needs from the product catalog.
type Repository interface {
	// GetInfoByID returns a product with group/unit names, or apperror.CodeNotFound.
	GetInfoByID(ctx context.Context, productID int64) (*Info, error)

	// ListActiveByCustomer returns non-barred products of a customer.
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]Product, error)
}

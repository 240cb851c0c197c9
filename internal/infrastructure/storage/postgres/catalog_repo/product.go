package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/infrastructure/storage/postgres"
)

const productTable = "nl_product"

var productColumns = []string{
	"id", "customer_id", "group_id", "unit_id",
	"text_1", "text_2", "text_3", "sku", "barcode",
	"cost_price", "sales_price", "note",
	"inserted", "updated", "is_barred",
}

// ProductRepo implements product.Repository. The ledger only reads products;
// product CRUD belongs to the surrounding catalog application.
type ProductRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetInfoByID returns a product joined with its group and unit names.
func (r *ProductRepo) GetInfoByID(ctx context.Context, productID int64) (*product.Info, error) {
	q := r.builder.Select(
		"p.id", "p.customer_id", "p.group_id", "p.unit_id",
		"p.text_1", "p.text_2", "p.text_3", "p.sku", "p.barcode",
		"p.cost_price", "p.sales_price", "p.note",
		"p.inserted", "p.updated", "p.is_barred",
		"COALESCE(g.name, '') AS group_name",
		"COALESCE(u.name, '') AS unit_name",
	).From(productTable + " p").
		LeftJoin("nl_product_group g ON g.id = p.group_id").
		LeftJoin("nl_unit u ON u.id = p.unit_id").
		Where(squirrel.Eq{"p.id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var info product.Info
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &info, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, fmt.Errorf("get product info: %w", err)
	}

	return &info, nil
}

// ListActiveByCustomer returns non-barred products of a customer.
func (r *ProductRepo) ListActiveByCustomer(ctx context.Context, customerID int64) ([]product.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productTable).
		Where(squirrel.Eq{
			"customer_id": customerID,
			"is_barred":   false,
		}).
		OrderBy("text_1")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	return products, nil
}

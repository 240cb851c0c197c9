package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/domain/history"
	"nordlager/internal/infrastructure/storage/postgres"
)

const historyTable = "nl_history"

var historyColumns = []string{
	"customer_id", "location_id",
	"user_id", "user_name", "user_role",
	"product_id", "product_group_name", "product_unit_name",
	"product_text_1", "product_text_2", "product_text_3",
	"product_sku", "product_barcode", "product_cost_price", "product_sales_price",
	"placement_id", "placement_name", "batch_id", "batch_name",
	"type", "platform", "amount", "reference",
}

// HistoryRepo implements history.Repository. Inserts only; the movement
// history has no update or delete path.
type HistoryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewHistoryRepo creates a new history repository.
func NewHistoryRepo(txManager *postgres.TxManager) *HistoryRepo {
	return &HistoryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert appends a record and fills its ID and Inserted timestamp.
func (r *HistoryRepo) Insert(ctx context.Context, rec *history.Record) error {
	q := r.builder.Insert(historyTable).
		Columns(historyColumns...).
		Values(
			rec.CustomerID, rec.LocationID,
			rec.UserID, rec.UserName, rec.UserRole,
			rec.ProductID, rec.ProductGroupName, rec.ProductUnitName,
			rec.ProductText1, rec.ProductText2, rec.ProductText3,
			rec.ProductSku, rec.ProductBarcode, rec.ProductCostPrice, rec.ProductSalesPrice,
			rec.PlacementID, rec.PlacementName, rec.BatchID, rec.BatchName,
			rec.Kind, rec.Platform, rec.Amount.Float64(), rec.Reference,
		).
		Suffix("RETURNING id, inserted")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.Inserted); err != nil {
		return fmt.Errorf("insert history row: %w", err)
	}

	return nil
}

// ListByLocation returns history rows for a location, newest first.
func (r *HistoryRepo) ListByLocation(ctx context.Context, locationID string, filter history.Filter) ([]history.Record, error) {
	cols := append([]string{"id"}, historyColumns...)
	cols = append(cols, "inserted")

	q := r.builder.Select(cols...).
		From(historyTable).
		Where(squirrel.Eq{"location_id": locationID})

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Kind})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"inserted": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"inserted": *filter.To})
	}

	q = q.OrderBy("inserted DESC", "id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []history.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("select history rows: %w", err)
	}

	return records, nil
}

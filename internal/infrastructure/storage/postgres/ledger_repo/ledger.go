// Package ledger_repo provides PostgreSQL implementations for the quantity
// ledger, movement history and reorder repositories.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/types"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/infrastructure/storage/postgres"
)

const inventoryTable = "nl_inventory"

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetRow returns the balance row for a key; a missing row reads as found=false.
func (r *LedgerRepo) GetRow(ctx context.Context, key ledger.Key) (ledger.Row, bool, error) {
	q := r.builder.Select(
		"product_id", "placement_id", "batch_id", "location_id", "customer_id",
		"quantity", "inserted", "updated",
	).From(inventoryTable).
		Where(squirrel.Eq{
			"product_id":   key.ProductID,
			"placement_id": key.PlacementID,
			"batch_id":     key.BatchID,
			"location_id":  key.LocationID,
			"customer_id":  key.CustomerID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger.Row{}, false, fmt.Errorf("build query: %w", err)
	}

	var row ledger.Row
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.Row{Key: key}, false, nil
		}
		return ledger.Row{}, false, fmt.Errorf("get inventory row: %w", err)
	}

	return row, true, nil
}

// ApplyDelta additively upserts a row in a single statement. The increment
// happens inside the database, so concurrent deltas on the same key never
// lose updates.
func (r *LedgerRepo) ApplyDelta(ctx context.Context, key ledger.Key, delta types.Quantity) error {
	sql := `
		INSERT INTO nl_inventory (
			product_id, placement_id, batch_id, location_id, customer_id,
			quantity, inserted, updated
		) VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id, placement_id, batch_id, location_id) DO UPDATE SET
			quantity = nl_inventory.quantity + EXCLUDED.quantity,
			updated = now()
	`

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		key.ProductID, key.PlacementID, key.BatchID, key.LocationID, key.CustomerID,
		delta.Float64(),
	)
	if err != nil {
		return fmt.Errorf("upsert inventory row: %w", err)
	}

	return nil
}

// ListByLocation returns balance rows joined with live catalog labels.
func (r *LedgerRepo) ListByLocation(ctx context.Context, locationID string) ([]ledger.RowDetail, error) {
	q := r.builder.Select(
		"i.product_id", "i.placement_id", "i.batch_id", "i.location_id", "i.customer_id",
		"i.quantity", "i.inserted", "i.updated",
		"p.sku AS product_sku",
		"p.text_1 AS product_text_1",
		"COALESCE(u.name, '') AS product_unit",
		"COALESCE(g.name, '') AS product_group",
		"pl.name AS placement_name",
		"b.batch AS batch_name",
	).From(inventoryTable + " i").
		Join("nl_product p ON p.id = i.product_id").
		LeftJoin("nl_unit u ON u.id = p.unit_id").
		LeftJoin("nl_product_group g ON g.id = p.group_id").
		Join("nl_placement pl ON pl.id = i.placement_id").
		Join("nl_batch b ON b.id = i.batch_id").
		Where(squirrel.Eq{"i.location_id": locationID}).
		OrderBy("p.text_1", "pl.name", "b.batch")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.RowDetail
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select inventory rows: %w", err)
	}

	return rows, nil
}

// SumByProductLocation returns the product's total quantity at a location.
func (r *LedgerRepo) SumByProductLocation(ctx context.Context, productID int64, locationID string) (types.Quantity, error) {
	q := r.builder.Select("COALESCE(SUM(quantity), 0)").
		From(inventoryTable).
		Where(squirrel.Eq{
			"product_id":  productID,
			"location_id": locationID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var sum float64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum inventory quantity: %w", err)
	}

	return types.Quantity(sum), nil
}

// InsertZeroRows bulk-inserts zero-quantity rows via the COPY protocol.
// Callers must guarantee the keys do not exist yet; COPY cannot upsert.
func (r *LedgerRepo) InsertZeroRows(ctx context.Context, keys []ledger.Key) error {
	if len(keys) == 0 {
		return nil
	}

	columns := []string{"product_id", "placement_id", "batch_id", "location_id", "customer_id", "quantity"}
	rows := make([][]any, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []any{
			key.ProductID, key.PlacementID, key.BatchID, key.LocationID, key.CustomerID, float64(0),
		})
	}

	inserter := postgres.NewBatchInserter(r.txManager)
	if _, err := inserter.CopyFromSlice(ctx, inventoryTable, columns, rows); err != nil {
		return fmt.Errorf("copy zero rows: %w", err)
	}
	return nil
}

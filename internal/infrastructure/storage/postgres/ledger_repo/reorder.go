package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/reorder"
	"nordlager/internal/infrastructure/storage/postgres"
)

const reorderTable = "nl_reorder"

// ReorderRepo implements reorder.Repository.
type ReorderRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReorderRepo creates a new reorder repository.
func NewReorderRepo(txManager *postgres.TxManager) *ReorderRepo {
	return &ReorderRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts or replaces the setting for (product, location).
func (r *ReorderRepo) Upsert(ctx context.Context, ro *reorder.Reorder) error {
	sql := `
		INSERT INTO nl_reorder (
			product_id, location_id, customer_id,
			minimum, ordered, buffer, inserted, updated
		) VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id, location_id) DO UPDATE SET
			minimum = EXCLUDED.minimum,
			ordered = EXCLUDED.ordered,
			buffer = EXCLUDED.buffer,
			updated = now()
		RETURNING inserted, updated
	`

	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql,
		ro.ProductID, ro.LocationID, ro.CustomerID,
		ro.Minimum.Float64(), ro.Ordered.Float64(), ro.Buffer,
	).Scan(&ro.Inserted, &ro.Updated)
	if err != nil {
		return fmt.Errorf("upsert reorder setting: %w", err)
	}

	return nil
}

// Delete removes the setting for (product, location).
func (r *ReorderRepo) Delete(ctx context.Context, productID int64, locationID string) error {
	q := r.builder.Delete(reorderTable).
		Where(squirrel.Eq{
			"product_id":  productID,
			"location_id": locationID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete reorder setting: %w", err)
	}

	return nil
}

// GetByKey returns the setting for (product, location).
func (r *ReorderRepo) GetByKey(ctx context.Context, productID int64, locationID string) (*reorder.Reorder, error) {
	q := r.builder.Select(
		"product_id", "location_id", "customer_id",
		"minimum", "ordered", "buffer", "inserted", "updated",
	).From(reorderTable).
		Where(squirrel.Eq{
			"product_id":  productID,
			"location_id": locationID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ro reorder.Reorder
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &ro, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("reorder setting", productID)
		}
		return nil, fmt.Errorf("get reorder setting: %w", err)
	}

	return &ro, nil
}

// ListByLocation returns settings joined with each product's location-wide
// on-hand quantity.
func (r *ReorderRepo) ListByLocation(ctx context.Context, locationID string) ([]reorder.Status, error) {
	q := r.builder.Select(
		"r.product_id", "r.location_id", "r.customer_id",
		"r.minimum", "r.ordered", "r.buffer", "r.inserted", "r.updated",
		"COALESCE(SUM(i.quantity), 0) AS quantity",
	).From(reorderTable+" r").
		LeftJoin("nl_inventory i ON i.product_id = r.product_id AND i.location_id = r.location_id").
		Where(squirrel.Eq{"r.location_id": locationID}).
		GroupBy(
			"r.product_id", "r.location_id", "r.customer_id",
			"r.minimum", "r.ordered", "r.buffer", "r.inserted", "r.updated",
		).
		OrderBy("r.product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var statuses []reorder.Status
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &statuses, sql, args...); err != nil {
		return nil, fmt.Errorf("select reorder settings: %w", err)
	}

	return statuses, nil
}

// DecrementOrdered drains the on-order quantity, clamped at zero, in one
// statement. A missing setting is a no-op.
func (r *ReorderRepo) DecrementOrdered(ctx context.Context, productID int64, locationID string, received types.Quantity) error {
	sql := `
		UPDATE nl_reorder
		SET ordered = GREATEST(ordered - $1, 0),
		    updated = now()
		WHERE product_id = $2 AND location_id = $3 AND ordered > 0
	`

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, received.Float64(), productID, locationID); err != nil {
		return fmt.Errorf("decrement ordered quantity: %w", err)
	}

	return nil
}

package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/infrastructure/storage/postgres"
)

const batchTable = "nl_batch"

var batchColumns = []string{
	"id", "location_id", "batch", "expiry", "inserted", "updated", "is_barred",
}

// BatchRepo implements batch.Repository.
type BatchRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a batch and fills its ID.
func (r *BatchRepo) Create(ctx context.Context, b *batch.Batch) error {
	q := r.builder.Insert(batchTable).
		Columns("location_id", "batch", "expiry", "inserted", "updated", "is_barred").
		Values(b.LocationID, b.Name, b.Expiry, b.Inserted, b.Updated, b.IsBarred).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&b.ID); err != nil {
		if pgErrCode(err, pgUniqueViolation) {
			return apperror.NewDuplicate("batch", "batch", b.Name).WithCause(err)
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	return nil
}

// GetByID returns a batch by id.
func (r *BatchRepo) GetByID(ctx context.Context, batchID int64) (*batch.Batch, error) {
	q := r.builder.Select(batchColumns...).
		From(batchTable).
		Where(squirrel.Eq{"id": batchID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", batchID)
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	return &b, nil
}

// GetByName returns the batch with the given name within a location.
func (r *BatchRepo) GetByName(ctx context.Context, locationID, name string) (*batch.Batch, error) {
	q := r.builder.Select(batchColumns...).
		From(batchTable).
		Where(squirrel.Eq{
			"location_id": locationID,
			"batch":       name,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", name)
		}
		return nil, fmt.Errorf("get batch by name: %w", err)
	}

	return &b, nil
}

// ListActive returns non-barred batches for a location.
func (r *BatchRepo) ListActive(ctx context.Context, locationID string) ([]batch.Batch, error) {
	return r.list(ctx, locationID, true)
}

// ListAll returns every batch for a location, barred included.
func (r *BatchRepo) ListAll(ctx context.Context, locationID string) ([]batch.Batch, error) {
	return r.list(ctx, locationID, false)
}

func (r *BatchRepo) list(ctx context.Context, locationID string, activeOnly bool) ([]batch.Batch, error) {
	q := r.builder.Select(batchColumns...).
		From(batchTable).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("batch")

	if activeOnly {
		q = q.Where(squirrel.Eq{"is_barred": false})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}

	return batches, nil
}

// SetBarred sets or clears the barred flag.
func (r *BatchRepo) SetBarred(ctx context.Context, batchID int64, barred bool) error {
	q := r.builder.Update(batchTable).
		Set("is_barred", barred).
		Set("updated", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("batch", batchID)
	}

	return nil
}

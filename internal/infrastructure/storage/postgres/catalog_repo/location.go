package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/location"
	"nordlager/internal/infrastructure/storage/postgres"
)

const locationTable = "nl_location"

var locationColumns = []string{
	"id", "customer_id", "name", "address", "inserted", "updated", "is_barred",
}

// LocationRepo implements location.Repository.
type LocationRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a location.
func (r *LocationRepo) Create(ctx context.Context, l *location.Location) error {
	q := r.builder.Insert(locationTable).
		Columns(locationColumns...).
		Values(l.ID, l.CustomerID, l.Name, l.Address, l.Inserted, l.Updated, l.IsBarred)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if pgErrCode(err, pgUniqueViolation) {
			return apperror.NewDuplicate("location", "id", l.ID).WithCause(err)
		}
		return fmt.Errorf("insert location: %w", err)
	}

	return nil
}

// GetByID returns a location by id.
func (r *LocationRepo) GetByID(ctx context.Context, locationID string) (*location.Location, error) {
	q := r.builder.Select(locationColumns...).
		From(locationTable).
		Where(squirrel.Eq{"id": locationID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var l location.Location
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &l, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("location", locationID)
		}
		return nil, fmt.Errorf("get location: %w", err)
	}

	return &l, nil
}

// ListByCustomer returns all locations of a customer.
func (r *LocationRepo) ListByCustomer(ctx context.Context, customerID int64) ([]location.Location, error) {
	q := r.builder.Select(locationColumns...).
		From(locationTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var locations []location.Location
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &locations, sql, args...); err != nil {
		return nil, fmt.Errorf("select locations: %w", err)
	}

	return locations, nil
}

// SetBarred sets or clears the barred flag.
func (r *LocationRepo) SetBarred(ctx context.Context, locationID string, barred bool) error {
	q := r.builder.Update(locationTable).
		Set("is_barred", barred).
		Set("updated", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": locationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("location", locationID)
	}

	return nil
}

package history

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"nordlager/internal/core/apperror"
	appctx "nordlager/internal/core/context"
	"nordlager/internal/core/tx"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/domain/catalogs/user"
)

// Recorder appends history rows enriched with point-in-time snapshots.
//
// A recorder failure is always fatal to the enclosing transaction: a stock
// change without an explainable history entry is not an allowed end state.
type Recorder struct {
	repo       Repository
	detacher   tx.Detacher
	products   product.Repository
	users      user.Repository
	placements placement.Repository
	batches    batch.Repository
}

// NewRecorder creates a history recorder.
func NewRecorder(
	repo Repository,
	detacher tx.Detacher,
	products product.Repository,
	users user.Repository,
	placements placement.Repository,
	batches batch.Repository,
) *Recorder {
	return &Recorder{
		repo:       repo,
		detacher:   detacher,
		products:   products,
		users:      users,
		placements: placements,
		batches:    batches,
	}
}

// Record snapshots the denormalized fields and appends one history row.
//
// The four lookups are independent and run concurrently on a detached
// context: a transaction holds a single connection, which does not allow
// concurrent queries, and the lookups only need committed catalog state.
// The insert itself joins the enclosing transaction via ctx.
func (r *Recorder) Record(ctx context.Context, ev Event) (*Record, error) {
	if !ev.Kind.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown movement kind %q", ev.Kind))
	}
	if !ev.Platform.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown platform %q", ev.Platform))
	}

	var (
		prod *product.Info
		usr  *user.User
		plc  *placement.Placement
		bat  *batch.Batch
	)

	g, gctx := errgroup.WithContext(r.detacher.Detach(ctx))
	g.Go(func() error {
		var err error
		prod, err = r.products.GetInfoByID(gctx, ev.ProductID)
		return err
	})
	g.Go(func() error {
		// API-key callers carry no user row; their identity comes from the
		// request context instead.
		if ev.UserID <= 0 {
			return nil
		}
		var err error
		usr, err = r.users.GetByID(gctx, ev.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		plc, err = r.placements.GetByID(gctx, ev.PlacementID)
		return err
	})
	g.Go(func() error {
		var err error
		bat, err = r.batches.GetByID(gctx, ev.BatchID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.NewHistoryWrite(fmt.Errorf("snapshot lookup: %w", err))
	}

	rec := &Record{
		CustomerID: ev.CustomerID,
		LocationID: ev.LocationID,
		UserID:     ev.UserID,

		ProductID:         prod.ID,
		ProductGroupName:  prod.GroupName,
		ProductUnitName:   prod.UnitName,
		ProductText1:      prod.Text1,
		ProductText2:      prod.Text2,
		ProductText3:      prod.Text3,
		ProductSku:        prod.Sku,
		ProductBarcode:    prod.Barcode,
		ProductCostPrice:  prod.CostPrice,
		ProductSalesPrice: prod.SalesPrice,

		PlacementID:   plc.ID,
		PlacementName: plc.Name,
		BatchID:       bat.ID,
		BatchName:     bat.Name,

		Kind:      ev.Kind,
		Platform:  ev.Platform,
		Amount:    ev.Amount,
		Reference: ev.Reference,
	}

	if usr != nil {
		rec.UserName = usr.Name
		rec.UserRole = usr.Role
	} else if uc := appctx.GetUser(ctx); uc != nil {
		rec.UserName = uc.UserName
		rec.UserRole = uc.UserRole
	}

	if err := r.repo.Insert(ctx, rec); err != nil {
		return nil, apperror.NewHistoryWrite(fmt.Errorf("insert history row: %w", err))
	}

	return rec, nil
}

// ListByLocation returns history rows for a location, newest first.
func (r *Recorder) ListByLocation(ctx context.Context, locationID string, filter Filter) ([]Record, error) {
	return r.repo.ListByLocation(ctx, locationID, filter)
}

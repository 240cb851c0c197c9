package movement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/domain/catalogs/user"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/reorder"
)

// memDB is an in-memory store backing all repository fakes in this package.
// The fake transaction manager snapshots and restores it to model rollback.
type memDB struct {
	nextID int64

	placements map[int64]placement.Placement
	batches    map[int64]batch.Batch
	rows       map[ledger.Key]ledger.Row
	records    []history.Record
	reorders   map[string]reorder.Reorder
	products   map[int64]product.Info
	users      map[int64]user.User

	failHistoryInsert bool
	failLedgerDelta   bool
}

func newMemDB() *memDB {
	return &memDB{
		nextID:     100,
		placements: map[int64]placement.Placement{},
		batches:    map[int64]batch.Batch{},
		rows:       map[ledger.Key]ledger.Row{},
		reorders:   map[string]reorder.Reorder{},
		products:   map[int64]product.Info{},
		users:      map[int64]user.User{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) clone() *memDB {
	c := newMemDB()
	c.nextID = db.nextID
	c.failHistoryInsert = db.failHistoryInsert
	c.failLedgerDelta = db.failLedgerDelta
	for k, v := range db.placements {
		c.placements[k] = v
	}
	for k, v := range db.batches {
		c.batches[k] = v
	}
	for k, v := range db.rows {
		c.rows[k] = v
	}
	for k, v := range db.reorders {
		c.reorders[k] = v
	}
	for k, v := range db.products {
		c.products[k] = v
	}
	for k, v := range db.users {
		c.users[k] = v
	}
	c.records = append(c.records, db.records...)
	return c
}

func (db *memDB) restore(from *memDB) {
	db.nextID = from.nextID
	db.placements = from.placements
	db.batches = from.batches
	db.rows = from.rows
	db.records = from.records
	db.reorders = from.reorders
	db.products = from.products
	db.users = from.users
}

func reorderKey(productID int64, locationID string) string {
	return fmt.Sprintf("%d|%s", productID, locationID)
}

// fakeTxManager snapshots the store before fn and restores it when fn fails.
type fakeTxManager struct {
	db *memDB
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := m.db.clone()
	if err := fn(ctx); err != nil {
		m.db.restore(snapshot)
		return err
	}
	return nil
}

func (m *fakeTxManager) Detach(ctx context.Context) context.Context { return ctx }

type memPlacementRepo struct{ db *memDB }

func (r *memPlacementRepo) Create(_ context.Context, p *placement.Placement) error {
	for _, existing := range r.db.placements {
		if existing.LocationID == p.LocationID && existing.Name == p.Name {
			return apperror.NewDuplicate("placement", "name", p.Name)
		}
	}
	p.ID = r.db.id()
	r.db.placements[p.ID] = *p
	return nil
}

func (r *memPlacementRepo) GetByID(_ context.Context, id int64) (*placement.Placement, error) {
	p, ok := r.db.placements[id]
	if !ok {
		return nil, apperror.NewNotFound("placement", id)
	}
	return &p, nil
}

func (r *memPlacementRepo) GetByName(_ context.Context, locationID, name string) (*placement.Placement, error) {
	for _, p := range r.db.placements {
		if p.LocationID == locationID && p.Name == name {
			return &p, nil
		}
	}
	return nil, apperror.NewNotFound("placement", name)
}

func (r *memPlacementRepo) ListActive(_ context.Context, locationID string) ([]placement.Placement, error) {
	var out []placement.Placement
	for _, p := range r.db.placements {
		if p.LocationID == locationID && !p.IsBarred {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlacementRepo) ListAll(_ context.Context, locationID string) ([]placement.Placement, error) {
	var out []placement.Placement
	for _, p := range r.db.placements {
		if p.LocationID == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlacementRepo) SetBarred(_ context.Context, id int64, barred bool) error {
	p, ok := r.db.placements[id]
	if !ok {
		return apperror.NewNotFound("placement", id)
	}
	p.IsBarred = barred
	r.db.placements[id] = p
	return nil
}

type memBatchRepo struct{ db *memDB }

func (r *memBatchRepo) Create(_ context.Context, b *batch.Batch) error {
	for _, existing := range r.db.batches {
		if existing.LocationID == b.LocationID && existing.Name == b.Name {
			return apperror.NewDuplicate("batch", "batch", b.Name)
		}
	}
	b.ID = r.db.id()
	r.db.batches[b.ID] = *b
	return nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id int64) (*batch.Batch, error) {
	b, ok := r.db.batches[id]
	if !ok {
		return nil, apperror.NewNotFound("batch", id)
	}
	return &b, nil
}

func (r *memBatchRepo) GetByName(_ context.Context, locationID, name string) (*batch.Batch, error) {
	for _, b := range r.db.batches {
		if b.LocationID == locationID && b.Name == name {
			return &b, nil
		}
	}
	return nil, apperror.NewNotFound("batch", name)
}

func (r *memBatchRepo) ListActive(_ context.Context, locationID string) ([]batch.Batch, error) {
	var out []batch.Batch
	for _, b := range r.db.batches {
		if b.LocationID == locationID && !b.IsBarred {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) ListAll(_ context.Context, locationID string) ([]batch.Batch, error) {
	var out []batch.Batch
	for _, b := range r.db.batches {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) SetBarred(_ context.Context, id int64, barred bool) error {
	b, ok := r.db.batches[id]
	if !ok {
		return apperror.NewNotFound("batch", id)
	}
	b.IsBarred = barred
	r.db.batches[id] = b
	return nil
}

type memLedgerRepo struct{ db *memDB }

func (r *memLedgerRepo) GetRow(_ context.Context, key ledger.Key) (ledger.Row, bool, error) {
	row, ok := r.db.rows[key]
	if !ok {
		return ledger.Row{Key: key}, false, nil
	}
	return row, true, nil
}

func (r *memLedgerRepo) ApplyDelta(_ context.Context, key ledger.Key, delta types.Quantity) error {
	if r.db.failLedgerDelta {
		return errors.New("ledger store unavailable")
	}
	row, ok := r.db.rows[key]
	if !ok {
		row = ledger.Row{Key: key, Inserted: time.Now()}
	}
	row.Quantity = row.Quantity.Add(delta)
	row.Updated = time.Now()
	r.db.rows[key] = row
	return nil
}

func (r *memLedgerRepo) ListByLocation(_ context.Context, locationID string) ([]ledger.RowDetail, error) {
	var out []ledger.RowDetail
	for _, row := range r.db.rows {
		if row.LocationID == locationID {
			out = append(out, ledger.RowDetail{Row: row})
		}
	}
	return out, nil
}

func (r *memLedgerRepo) InsertZeroRows(_ context.Context, keys []ledger.Key) error {
	for _, key := range keys {
		r.db.rows[key] = ledger.Row{Key: key, Inserted: time.Now(), Updated: time.Now()}
	}
	return nil
}

func (r *memLedgerRepo) SumByProductLocation(_ context.Context, productID int64, locationID string) (types.Quantity, error) {
	var sum types.Quantity
	for _, row := range r.db.rows {
		if row.ProductID == productID && row.LocationID == locationID {
			sum = sum.Add(row.Quantity)
		}
	}
	return sum, nil
}

type memHistoryRepo struct{ db *memDB }

func (r *memHistoryRepo) Insert(_ context.Context, rec *history.Record) error {
	if r.db.failHistoryInsert {
		return errors.New("history store unavailable")
	}
	rec.ID = r.db.id()
	rec.Inserted = time.Now()
	r.db.records = append(r.db.records, *rec)
	return nil
}

func (r *memHistoryRepo) ListByLocation(_ context.Context, locationID string, _ history.Filter) ([]history.Record, error) {
	var out []history.Record
	for _, rec := range r.db.records {
		if rec.LocationID == locationID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memReorderRepo struct{ db *memDB }

func (r *memReorderRepo) Upsert(_ context.Context, ro *reorder.Reorder) error {
	r.db.reorders[reorderKey(ro.ProductID, ro.LocationID)] = *ro
	return nil
}

func (r *memReorderRepo) Delete(_ context.Context, productID int64, locationID string) error {
	delete(r.db.reorders, reorderKey(productID, locationID))
	return nil
}

func (r *memReorderRepo) GetByKey(_ context.Context, productID int64, locationID string) (*reorder.Reorder, error) {
	ro, ok := r.db.reorders[reorderKey(productID, locationID)]
	if !ok {
		return nil, apperror.NewNotFound("reorder", productID)
	}
	return &ro, nil
}

func (r *memReorderRepo) ListByLocation(_ context.Context, locationID string) ([]reorder.Status, error) {
	var out []reorder.Status
	for _, ro := range r.db.reorders {
		if ro.LocationID == locationID {
			out = append(out, reorder.Status{Reorder: ro})
		}
	}
	return out, nil
}

func (r *memReorderRepo) DecrementOrdered(_ context.Context, productID int64, locationID string, received types.Quantity) error {
	key := reorderKey(productID, locationID)
	ro, ok := r.db.reorders[key]
	if !ok {
		return nil
	}
	ro.Ordered = reorder.DrainOrdered(ro.Ordered, received)
	r.db.reorders[key] = ro
	return nil
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) GetInfoByID(_ context.Context, id int64) (*product.Info, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, apperror.NewNotFound("product", id)
	}
	return &p, nil
}

func (r *memProductRepo) ListActiveByCustomer(_ context.Context, customerID int64) ([]product.Product, error) {
	var out []product.Product
	for _, p := range r.db.products {
		if p.CustomerID == customerID && !p.IsBarred {
			out = append(out, p.Product)
		}
	}
	return out, nil
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	return &u, nil
}

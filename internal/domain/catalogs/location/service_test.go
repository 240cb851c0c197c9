package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/domain/ledger"
)

// provisionState accumulates everything Create touches so a test can assert
// on the end state, or on its absence after rollback.
type provisionState struct {
	nextID     int64
	locations  map[string]Location
	placements []placement.Placement
	batches    []batch.Batch
	zeroKeys   []ledger.Key

	failSeedRows bool
}

func newProvisionState() *provisionState {
	return &provisionState{locations: map[string]Location{}}
}

func (s *provisionState) id() int64 {
	s.nextID++
	return s.nextID
}

type stubTxManager struct {
	state *provisionState
}

// RunInTransaction models rollback by restoring a pre-call snapshot when fn
// fails.
func (m *stubTxManager) RunInTransaction(_ context.Context, fn func(ctx context.Context) error) error {
	snapshot := *m.state
	snapshot.locations = make(map[string]Location, len(m.state.locations))
	for k, v := range m.state.locations {
		snapshot.locations[k] = v
	}
	snapshot.placements = append([]placement.Placement(nil), m.state.placements...)
	snapshot.batches = append([]batch.Batch(nil), m.state.batches...)
	snapshot.zeroKeys = append([]ledger.Key(nil), m.state.zeroKeys...)

	if err := fn(context.Background()); err != nil {
		*m.state = snapshot
		return err
	}
	return nil
}

type stubLocationRepo struct{ state *provisionState }

func (r *stubLocationRepo) Create(_ context.Context, l *Location) error {
	r.state.locations[l.ID] = *l
	return nil
}

func (r *stubLocationRepo) GetByID(_ context.Context, locationID string) (*Location, error) {
	if l, ok := r.state.locations[locationID]; ok {
		return &l, nil
	}
	return nil, apperror.NewNotFound("location", locationID)
}

func (r *stubLocationRepo) ListByCustomer(_ context.Context, customerID int64) ([]Location, error) {
	var out []Location
	for _, l := range r.state.locations {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLocationRepo) SetBarred(_ context.Context, _ string, _ bool) error { return nil }

type seedPlacementRepo struct{ state *provisionState }

func (r *seedPlacementRepo) Create(_ context.Context, p *placement.Placement) error {
	p.ID = r.state.id()
	r.state.placements = append(r.state.placements, *p)
	return nil
}

func (r *seedPlacementRepo) GetByID(_ context.Context, placementID int64) (*placement.Placement, error) {
	return nil, apperror.NewNotFound("placement", placementID)
}

func (r *seedPlacementRepo) GetByName(_ context.Context, _, name string) (*placement.Placement, error) {
	return nil, apperror.NewNotFound("placement", name)
}

func (r *seedPlacementRepo) ListActive(_ context.Context, _ string) ([]placement.Placement, error) {
	return nil, nil
}

func (r *seedPlacementRepo) ListAll(_ context.Context, _ string) ([]placement.Placement, error) {
	return nil, nil
}

func (r *seedPlacementRepo) SetBarred(_ context.Context, _ int64, _ bool) error { return nil }

type seedBatchRepo struct{ state *provisionState }

func (r *seedBatchRepo) Create(_ context.Context, b *batch.Batch) error {
	b.ID = r.state.id()
	r.state.batches = append(r.state.batches, *b)
	return nil
}

func (r *seedBatchRepo) GetByID(_ context.Context, batchID int64) (*batch.Batch, error) {
	return nil, apperror.NewNotFound("batch", batchID)
}

func (r *seedBatchRepo) GetByName(_ context.Context, _, name string) (*batch.Batch, error) {
	return nil, apperror.NewNotFound("batch", name)
}

func (r *seedBatchRepo) ListActive(_ context.Context, _ string) ([]batch.Batch, error) {
	return nil, nil
}

func (r *seedBatchRepo) ListAll(_ context.Context, _ string) ([]batch.Batch, error) {
	return nil, nil
}

func (r *seedBatchRepo) SetBarred(_ context.Context, _ int64, _ bool) error { return nil }

type seedProductRepo struct{ products []product.Product }

func (r *seedProductRepo) GetInfoByID(_ context.Context, productID int64) (*product.Info, error) {
	return nil, apperror.NewNotFound("product", productID)
}

func (r *seedProductRepo) ListActiveByCustomer(_ context.Context, customerID int64) ([]product.Product, error) {
	var out []product.Product
	for _, p := range r.products {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type seedLedgerRepo struct{ state *provisionState }

func (r *seedLedgerRepo) GetRow(_ context.Context, key ledger.Key) (ledger.Row, bool, error) {
	return ledger.Row{Key: key}, false, nil
}

func (r *seedLedgerRepo) ApplyDelta(_ context.Context, _ ledger.Key, _ types.Quantity) error {
	return nil
}

func (r *seedLedgerRepo) ListByLocation(_ context.Context, _ string) ([]ledger.RowDetail, error) {
	return nil, nil
}

func (r *seedLedgerRepo) SumByProductLocation(_ context.Context, _ int64, _ string) (types.Quantity, error) {
	return 0, nil
}

func (r *seedLedgerRepo) InsertZeroRows(_ context.Context, keys []ledger.Key) error {
	if r.state.failSeedRows {
		return errors.New("copy failed")
	}
	r.state.zeroKeys = append(r.state.zeroKeys, keys...)
	return nil
}

func newTestService(state *provisionState, products []product.Product) *Service {
	return NewService(
		&stubTxManager{state: state},
		&stubLocationRepo{state: state},
		&seedPlacementRepo{state: state},
		&seedBatchRepo{state: state},
		&seedProductRepo{products: products},
		ledger.NewService(&seedLedgerRepo{state: state}),
	)
}

func TestCreateProvisionsDefaultsAndZeroRows(t *testing.T) {
	state := newProvisionState()
	svc := newTestService(state, []product.Product{
		{ID: 1, CustomerID: 1},
		{ID: 2, CustomerID: 1},
		{ID: 3, CustomerID: 2}, // other customer, must not be seeded
	})

	l, err := svc.Create(context.Background(), 1, "Aarhus Nord", "Sintrupvej 71")
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)

	require.Len(t, state.placements, 1)
	assert.Equal(t, placement.DefaultName, state.placements[0].Name)
	assert.Equal(t, l.ID, state.placements[0].LocationID)

	require.Len(t, state.batches, 1)
	assert.Equal(t, batch.DefaultName, state.batches[0].Name)

	require.Len(t, state.zeroKeys, 2)
	for _, key := range state.zeroKeys {
		assert.Equal(t, l.ID, key.LocationID)
		assert.Equal(t, state.placements[0].ID, key.PlacementID)
		assert.Equal(t, state.batches[0].ID, key.BatchID)
		assert.Equal(t, int64(1), key.CustomerID)
	}
}

func TestCreateWithNoProductsSeedsNothing(t *testing.T) {
	state := newProvisionState()
	svc := newTestService(state, nil)

	_, err := svc.Create(context.Background(), 1, "Aarhus Nord", "")
	require.NoError(t, err)
	assert.Empty(t, state.zeroKeys)
}

func TestCreateRollsBackOnSeedFailure(t *testing.T) {
	state := newProvisionState()
	state.failSeedRows = true
	svc := newTestService(state, []product.Product{{ID: 1, CustomerID: 1}})

	_, err := svc.Create(context.Background(), 1, "Aarhus Nord", "")
	require.Error(t, err)

	assert.Empty(t, state.locations)
	assert.Empty(t, state.placements)
	assert.Empty(t, state.batches)
	assert.Empty(t, state.zeroKeys)
}

func TestCreateValidatesInput(t *testing.T) {
	state := newProvisionState()
	svc := newTestService(state, nil)

	_, err := svc.Create(context.Background(), 1, "", "")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.Create(context.Background(), 0, "Aarhus Nord", "")
	require.Error(t, err)
}

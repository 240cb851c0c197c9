package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/entity"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/domain/catalogs/user"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/reorder"
)

const (
	testCustomerID = int64(1)
	testUserID     = int64(7)
	testProductID  = int64(1)
	testLocation   = "loc-1"
)

type fixture struct {
	db     *memDB
	engine *Engine
}

func newFixture() *fixture {
	db := newMemDB()
	db.products[testProductID] = product.Info{
		Product: product.Product{
			ID:         testProductID,
			CustomerID: testCustomerID,
			Sku:        "SKU-001",
			Text1:      "Widget",
		},
		GroupName: "Tools",
		UnitName:  "pcs",
	}
	db.users[testUserID] = user.User{
		ID:         testUserID,
		CustomerID: testCustomerID,
		Name:       "Mette",
		Role:       "admin",
	}

	placements := &memPlacementRepo{db}
	batches := &memBatchRepo{db}
	txm := &fakeTxManager{db}
	recorder := history.NewRecorder(
		&memHistoryRepo{db},
		txm,
		&memProductRepo{db},
		&memUserRepo{db},
		placements,
		batches,
	)
	engine := NewEngine(
		txm,
		NewResolver(placements, batches),
		ledger.NewService(&memLedgerRepo{db}),
		recorder,
		&memReorderRepo{db},
	)
	return &fixture{db: db, engine: engine}
}

func (f *fixture) regulate(t *testing.T, kind entity.MovementKind, amount types.Quantity) *history.Record {
	t.Helper()
	rec, err := f.engine.Regulate(context.Background(), RegulateInput{
		CustomerID: testCustomerID,
		UserID:     testUserID,
		LocationID: testLocation,
		ProductID:  testProductID,
		Placement:  DefaultRef(),
		Batch:      DefaultRef(),
		Kind:       kind,
		Platform:   entity.PlatformWeb,
		Amount:     amount,
	})
	require.NoError(t, err)
	return rec
}

func (f *fixture) quantityAt(placementName string) types.Quantity {
	for _, row := range f.db.rows {
		if row.LocationID != testLocation || row.ProductID != testProductID {
			continue
		}
		if p, ok := f.db.placements[row.PlacementID]; ok && p.Name == placementName {
			return row.Quantity
		}
	}
	return 0
}

func TestRegulateTilgangCreatesDefaultsAndRow(t *testing.T) {
	f := newFixture()

	rec := f.regulate(t, entity.MovementTilgang, 10)

	assert.Equal(t, entity.MovementTilgang, rec.Kind)
	assert.Equal(t, types.Quantity(10), rec.Amount)
	assert.Equal(t, placement.DefaultName, rec.PlacementName)
	assert.Equal(t, placement.DefaultName, rec.BatchName)
	assert.Equal(t, "SKU-001", rec.ProductSku)
	assert.Equal(t, "Mette", rec.UserName)

	assert.Equal(t, types.Quantity(10), f.quantityAt(placement.DefaultName))
	assert.Len(t, f.db.records, 1)
	assert.Len(t, f.db.placements, 1)
	assert.Len(t, f.db.batches, 1)
}

func TestRegulateDefaultResolutionIsIdempotent(t *testing.T) {
	f := newFixture()

	f.regulate(t, entity.MovementTilgang, 5)
	f.regulate(t, entity.MovementTilgang, 5)

	assert.Len(t, f.db.placements, 1, "no duplicate default placement")
	assert.Len(t, f.db.batches, 1, "no duplicate default batch")
	assert.Equal(t, types.Quantity(10), f.quantityAt(placement.DefaultName))
	assert.Len(t, f.db.records, 2)
}

func TestRegulateNamedCollisionLeavesNoTrace(t *testing.T) {
	f := newFixture()
	require.NoError(t, (&memPlacementRepo{f.db}).Create(context.Background(), placement.New(testLocation, "Shelf A")))

	_, err := f.engine.Regulate(context.Background(), RegulateInput{
		CustomerID: testCustomerID,
		UserID:     testUserID,
		LocationID: testLocation,
		ProductID:  testProductID,
		Placement:  NamedRef("Shelf A"),
		Batch:      DefaultRef(),
		Kind:       entity.MovementTilgang,
		Platform:   entity.PlatformWeb,
		Amount:     10,
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeResolution, appErr.Code)
	assert.Empty(t, f.db.rows)
	assert.Empty(t, f.db.records)
}

func TestRegulateAfgangRequiresExistingRow(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Regulate(context.Background(), RegulateInput{
		CustomerID: testCustomerID,
		UserID:     testUserID,
		LocationID: testLocation,
		ProductID:  testProductID,
		Placement:  DefaultRef(),
		Batch:      DefaultRef(),
		Kind:       entity.MovementAfgang,
		Platform:   entity.PlatformWeb,
		Amount:     -5,
	})

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.db.rows)
	assert.Empty(t, f.db.records)
}

func TestRegulateAllowsNegativeResult(t *testing.T) {
	f := newFixture()
	f.regulate(t, entity.MovementTilgang, 3)

	f.regulate(t, entity.MovementAfgang, -5)

	assert.Equal(t, types.Quantity(-2), f.quantityAt(placement.DefaultName))
}

func TestRegulateZeroAmountStillRecordsHistory(t *testing.T) {
	f := newFixture()

	rec := f.regulate(t, entity.MovementRegulering, 0)

	assert.True(t, rec.Amount.IsZero())
	assert.Len(t, f.db.records, 1)
	assert.Equal(t, types.Quantity(0), f.quantityAt(placement.DefaultName))
}

func TestRegulateRejectsNonRegulatingKind(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Regulate(context.Background(), RegulateInput{
		CustomerID: testCustomerID,
		LocationID: testLocation,
		ProductID:  testProductID,
		Kind:       entity.MovementFlyt,
		Platform:   entity.PlatformWeb,
		Amount:     1,
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestTilgangDrainsOpenReorder(t *testing.T) {
	f := newFixture()
	f.db.reorders[reorderKey(testProductID, testLocation)] = reorder.Reorder{
		ProductID:  testProductID,
		LocationID: testLocation,
		CustomerID: testCustomerID,
		Minimum:    5,
		Ordered:    10,
	}

	f.regulate(t, entity.MovementTilgang, 4)
	assert.Equal(t, types.Quantity(6), f.db.reorders[reorderKey(testProductID, testLocation)].Ordered)

	f.regulate(t, entity.MovementTilgang, 20)
	assert.Equal(t, types.Quantity(0), f.db.reorders[reorderKey(testProductID, testLocation)].Ordered, "floored at zero")
}

func TestNonIncomingKindsLeaveOrderedUntouched(t *testing.T) {
	f := newFixture()
	f.db.reorders[reorderKey(testProductID, testLocation)] = reorder.Reorder{
		ProductID:  testProductID,
		LocationID: testLocation,
		CustomerID: testCustomerID,
		Ordered:    10,
	}
	f.regulate(t, entity.MovementTilgang, 100)
	f.db.reorders[reorderKey(testProductID, testLocation)] = reorder.Reorder{
		ProductID:  testProductID,
		LocationID: testLocation,
		CustomerID: testCustomerID,
		Ordered:    10,
	}

	f.regulate(t, entity.MovementAfgang, -5)
	f.regulate(t, entity.MovementRegulering, 3)
	_, err := f.engine.MoveWithinLocation(context.Background(), MoveInput{
		CustomerID:    testCustomerID,
		UserID:        testUserID,
		LocationID:    testLocation,
		ProductID:     testProductID,
		FromPlacement: DefaultRef(),
		ToPlacement:   NamedRef("Shelf B"),
		Batch:         DefaultRef(),
		Platform:      entity.PlatformWeb,
		Amount:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, types.Quantity(10), f.db.reorders[reorderKey(testProductID, testLocation)].Ordered)
}

func TestHistoryFailureRollsBackLedger(t *testing.T) {
	f := newFixture()
	f.regulate(t, entity.MovementTilgang, 10)

	f.db.failHistoryInsert = true
	_, err := f.engine.Regulate(context.Background(), RegulateInput{
		CustomerID: testCustomerID,
		UserID:     testUserID,
		LocationID: testLocation,
		ProductID:  testProductID,
		Placement:  DefaultRef(),
		Batch:      DefaultRef(),
		Kind:       entity.MovementRegulering,
		Platform:   entity.PlatformWeb,
		Amount:     5,
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeHistoryWrite, appErr.Code)
	assert.Equal(t, types.Quantity(10), f.quantityAt(placement.DefaultName), "delta rolled back")
	assert.Len(t, f.db.records, 1)
}

func TestMoveWithinLocation(t *testing.T) {
	f := newFixture()
	f.regulate(t, entity.MovementTilgang, 10)

	recs, err := f.engine.MoveWithinLocation(context.Background(), MoveInput{
		CustomerID:    testCustomerID,
		UserID:        testUserID,
		LocationID:    testLocation,
		ProductID:     testProductID,
		FromPlacement: DefaultRef(),
		ToPlacement:   NamedRef("Shelf A"),
		Batch:         DefaultRef(),
		Platform:      entity.PlatformWeb,
		Amount:        4,
		Reference:     "restock",
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, types.Quantity(6), f.quantityAt(placement.DefaultName))
	assert.Equal(t, types.Quantity(4), f.quantityAt("Shelf A"))

	out, in := recs[0], recs[1]
	assert.Equal(t, entity.MovementFlyt, out.Kind)
	assert.Equal(t, entity.MovementFlyt, in.Kind)
	assert.True(t, out.Amount.Add(in.Amount).IsZero(), "legs sum to zero")
	assert.NotEqual(t, out.PlacementID, in.PlacementID)
	assert.Equal(t, "restock", out.Reference)
	assert.Equal(t, "restock", in.Reference)
}

func TestMoveRequiresDistinctPlacements(t *testing.T) {
	f := newFixture()

	_, err := f.engine.MoveWithinLocation(context.Background(), MoveInput{
		CustomerID:    testCustomerID,
		LocationID:    testLocation,
		ProductID:     testProductID,
		FromPlacement: DefaultRef(),
		ToPlacement:   DefaultRef(),
		Batch:         DefaultRef(),
		Platform:      entity.PlatformWeb,
		Amount:        1,
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestMoveRollsBackBothLegs(t *testing.T) {
	f := newFixture()
	f.regulate(t, entity.MovementTilgang, 10)

	f.db.failHistoryInsert = true
	_, err := f.engine.MoveWithinLocation(context.Background(), MoveInput{
		CustomerID:    testCustomerID,
		UserID:        testUserID,
		LocationID:    testLocation,
		ProductID:     testProductID,
		FromPlacement: DefaultRef(),
		ToPlacement:   NamedRef("Shelf A"),
		Batch:         DefaultRef(),
		Platform:      entity.PlatformWeb,
		Amount:        4,
	})

	require.Error(t, err)
	assert.Equal(t, types.Quantity(10), f.quantityAt(placement.DefaultName), "source leg rolled back")
	assert.Equal(t, types.Quantity(0), f.quantityAt("Shelf A"), "destination leg rolled back")
	assert.Len(t, f.db.records, 1)
}

func TestMoveBetweenLocations(t *testing.T) {
	f := newFixture()
	f.regulate(t, entity.MovementTilgang, 10)
	f.db.reorders[reorderKey(testProductID, "loc-2")] = reorder.Reorder{
		ProductID:  testProductID,
		LocationID: "loc-2",
		CustomerID: testCustomerID,
		Ordered:    5,
	}

	recs, err := f.engine.MoveBetweenLocations(context.Background(), CrossMoveInput{
		CustomerID:     testCustomerID,
		UserID:         testUserID,
		FromLocationID: testLocation,
		ToLocationID:   "loc-2",
		ProductID:      testProductID,
		FromPlacement:  DefaultRef(),
		FromBatch:      DefaultRef(),
		ToPlacement:    DefaultRef(),
		ToBatch:        DefaultRef(),
		Platform:       entity.PlatformWeb,
		Amount:         4,
		Reference:      "rebalance",
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	out, in := recs[0], recs[1]
	assert.Equal(t, entity.MovementAfgang, out.Kind)
	assert.Equal(t, testLocation, out.LocationID)
	assert.Equal(t, types.Quantity(-4), out.Amount)
	assert.Equal(t, entity.MovementTilgang, in.Kind)
	assert.Equal(t, "loc-2", in.LocationID)
	assert.Equal(t, types.Quantity(4), in.Amount)

	assert.Equal(t, types.Quantity(6), f.quantityAt(placement.DefaultName))
	assert.Equal(t, types.Quantity(1), f.db.reorders[reorderKey(testProductID, "loc-2")].Ordered, "receipt drains destination reorder")

	var destQty types.Quantity
	for _, row := range f.db.rows {
		if row.LocationID == "loc-2" {
			destQty = row.Quantity
		}
	}
	assert.Equal(t, types.Quantity(4), destQty)
}

func TestQuantityEqualsHistorySum(t *testing.T) {
	f := newFixture()

	f.regulate(t, entity.MovementTilgang, 10)
	f.regulate(t, entity.MovementRegulering, -3)
	_, err := f.engine.MoveWithinLocation(context.Background(), MoveInput{
		CustomerID:    testCustomerID,
		UserID:        testUserID,
		LocationID:    testLocation,
		ProductID:     testProductID,
		FromPlacement: DefaultRef(),
		ToPlacement:   NamedRef("Shelf A"),
		Batch:         DefaultRef(),
		Platform:      entity.PlatformWeb,
		Amount:        4,
	})
	require.NoError(t, err)
	f.regulate(t, entity.MovementAfgang, -2)

	for key, row := range f.db.rows {
		var sum types.Quantity
		for _, rec := range f.db.records {
			if rec.ProductID == key.ProductID &&
				rec.PlacementID == key.PlacementID &&
				rec.BatchID == key.BatchID &&
				rec.LocationID == key.LocationID {
				sum = sum.Add(rec.Amount)
			}
		}
		assert.Equal(t, row.Quantity, sum, "quantity equals the sum of history amounts for its key")
	}
}

package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordlager/internal/core/apperror"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
)

func newResolverFixture() (*Resolver, *memDB) {
	db := newMemDB()
	return NewResolver(&memPlacementRepo{db}, &memBatchRepo{db}), db
}

func TestResolvePlacementExistingID(t *testing.T) {
	r, db := newResolverFixture()

	id, err := r.Placement(context.Background(), "loc-1", IDRef(42))

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Empty(t, db.placements, "id passthrough performs no lookup or create")
}

func TestResolvePlacementDefaultCreatesOnMiss(t *testing.T) {
	r, db := newResolverFixture()

	first, err := r.Placement(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)

	second, err := r.Placement(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same default id on repeated resolution")
	assert.Len(t, db.placements, 1)
	assert.Equal(t, placement.DefaultName, db.placements[first].Name)
}

func TestResolvePlacementDefaultsAreScopedPerLocation(t *testing.T) {
	r, db := newResolverFixture()

	a, err := r.Placement(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)
	b, err := r.Placement(context.Background(), "loc-2", DefaultRef())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, db.placements, 2)
}

func TestResolvePlacementNamedCreates(t *testing.T) {
	r, db := newResolverFixture()

	id, err := r.Placement(context.Background(), "loc-1", NamedRef("Shelf A"))

	require.NoError(t, err)
	assert.Equal(t, "Shelf A", db.placements[id].Name)
}

func TestResolvePlacementNamedCollisionFails(t *testing.T) {
	r, db := newResolverFixture()
	require.NoError(t, (&memPlacementRepo{db}).Create(context.Background(), placement.New("loc-1", "Shelf A")))

	_, err := r.Placement(context.Background(), "loc-1", NamedRef("Shelf A"))

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeResolution, appErr.Code)
	assert.True(t, apperror.IsDuplicate(appErr.Err))
}

func TestResolvePlacementDefaultBarredIsRejected(t *testing.T) {
	r, db := newResolverFixture()
	id, err := r.Placement(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)

	p := db.placements[id]
	p.IsBarred = true
	db.placements[id] = p

	_, err = r.Placement(context.Background(), "loc-1", DefaultRef())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeResolution, appErr.Code)
	assert.Len(t, db.placements, 1, "no second default is created alongside the barred one")
}

func TestResolveBatchDefaultBarredIsRejected(t *testing.T) {
	r, db := newResolverFixture()
	id, err := r.Batch(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)

	b := db.batches[id]
	b.IsBarred = true
	db.batches[id] = b

	_, err = r.Batch(context.Background(), "loc-1", DefaultRef())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeResolution, appErr.Code)
}

func TestResolveBatchDefaultCreatesOnMiss(t *testing.T) {
	r, db := newResolverFixture()

	first, err := r.Batch(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)
	second, err := r.Batch(context.Background(), "loc-1", DefaultRef())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, db.batches, 1)
	assert.Equal(t, batch.DefaultName, db.batches[first].Name)
}

func TestResolveBatchNamedCollisionFails(t *testing.T) {
	r, db := newResolverFixture()
	require.NoError(t, (&memBatchRepo{db}).Create(context.Background(), batch.New("loc-1", "LOT-7")))

	_, err := r.Batch(context.Background(), "loc-1", NamedRef("LOT-7"))

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeResolution, appErr.Code)
}

// racingPlacementRepo models two requests racing to create the default:
// the first lookup misses, the create collides, the re-fetch finds the
// winner's row.
type racingPlacementRepo struct {
	*memPlacementRepo
	missedOnce bool
}

func (r *racingPlacementRepo) GetByName(ctx context.Context, locationID, name string) (*placement.Placement, error) {
	if !r.missedOnce {
		r.missedOnce = true
		return nil, apperror.NewNotFound("placement", name)
	}
	return r.memPlacementRepo.GetByName(ctx, locationID, name)
}

func (r *racingPlacementRepo) Create(_ context.Context, p *placement.Placement) error {
	winner := placement.New(p.LocationID, p.Name)
	if err := r.memPlacementRepo.Create(context.Background(), winner); err != nil {
		return err
	}
	return apperror.NewDuplicate("placement", "name", p.Name)
}

func TestResolveDefaultLostRaceRefetchesWinner(t *testing.T) {
	db := newMemDB()
	repo := &racingPlacementRepo{memPlacementRepo: &memPlacementRepo{db}}
	r := NewResolver(repo, &memBatchRepo{db})

	id, err := r.Placement(context.Background(), "loc-1", DefaultRef())

	require.NoError(t, err)
	assert.Equal(t, placement.DefaultName, db.placements[id].Name)
	assert.Len(t, db.placements, 1, "the winner's row is reused, not duplicated")
}

package reorder

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/types"
)

type memReorderRepo struct {
	settings map[string]Reorder
	stock    map[string]types.Quantity
}

func newMemReorderRepo() *memReorderRepo {
	return &memReorderRepo{
		settings: map[string]Reorder{},
		stock:    map[string]types.Quantity{},
	}
}

func key(productID int64, locationID string) string {
	return fmt.Sprintf("%s/%d", locationID, productID)
}

func (r *memReorderRepo) Upsert(_ context.Context, ro *Reorder) error {
	r.settings[key(ro.ProductID, ro.LocationID)] = *ro
	return nil
}

func (r *memReorderRepo) Delete(_ context.Context, productID int64, locationID string) error {
	delete(r.settings, key(productID, locationID))
	return nil
}

func (r *memReorderRepo) GetByKey(_ context.Context, productID int64, locationID string) (*Reorder, error) {
	if ro, ok := r.settings[key(productID, locationID)]; ok {
		return &ro, nil
	}
	return nil, apperror.NewNotFound("reorder", productID)
}

func (r *memReorderRepo) ListByLocation(_ context.Context, locationID string) ([]Status, error) {
	var out []Status
	for _, ro := range r.settings {
		if ro.LocationID != locationID {
			continue
		}
		out = append(out, Status{
			Reorder:  ro,
			Quantity: r.stock[key(ro.ProductID, ro.LocationID)],
		})
	}
	return out, nil
}

func (r *memReorderRepo) DecrementOrdered(_ context.Context, productID int64, locationID string, received types.Quantity) error {
	if ro, ok := r.settings[key(productID, locationID)]; ok {
		ro.Ordered = DrainOrdered(ro.Ordered, received)
		r.settings[key(productID, locationID)] = ro
	}
	return nil
}

func TestSetStoresBufferAsFraction(t *testing.T) {
	repo := newMemReorderRepo()
	svc := NewService(repo)

	r, err := svc.Set(context.Background(), 1, 1, "loc-1", 10, 4, 25)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r.Buffer, 1e-9)

	stored, err := svc.Get(context.Background(), 1, "loc-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, stored.Buffer, 1e-9)
	assert.Equal(t, types.Quantity(10), stored.Minimum)
	assert.Equal(t, types.Quantity(4), stored.Ordered)
}

func TestSetRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemReorderRepo())

	_, err := svc.Set(context.Background(), 1, 1, "loc-1", -1, 0, 0)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.Set(context.Background(), 1, 1, "loc-1", 10, 0, -5)
	require.Error(t, err)

	_, err = svc.Set(context.Background(), 1, 0, "loc-1", 10, 0, 0)
	require.Error(t, err)
}

func TestRemoveThenGetIsNotFound(t *testing.T) {
	repo := newMemReorderRepo()
	svc := NewService(repo)

	_, err := svc.Set(context.Background(), 1, 1, "loc-1", 10, 0, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, "loc-1"))
	_, err = svc.Get(context.Background(), 1, "loc-1")
	assert.True(t, apperror.IsNotFound(err))

	// Removing again is still not an error.
	require.NoError(t, svc.Remove(context.Background(), 1, "loc-1"))
}

func TestListByLocationComputesDerivedQuantities(t *testing.T) {
	repo := newMemReorderRepo()
	svc := NewService(repo)

	_, err := svc.Set(context.Background(), 1, 1, "loc-1", 10, 4, 25)
	require.NoError(t, err)
	repo.stock[key(1, "loc-1")] = 6

	statuses, err := svc.ListByLocation(context.Background(), "loc-1")
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	st := statuses[0]
	assert.Equal(t, types.Quantity(6), st.Quantity)
	assert.Equal(t, types.Quantity(10), st.Disposable) // 6 on hand + 4 ordered
	assert.InDelta(t, 6.5, st.Recommended.Float64(), 1e-9) // 10 - 6 + 10*0.25
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityArithmetic(t *testing.T) {
	q := Quantity(10)

	assert.Equal(t, Quantity(14), q.Add(4))
	assert.Equal(t, Quantity(6), q.Add(-4))
	assert.Equal(t, Quantity(-10), q.Neg())
	assert.Equal(t, Quantity(3), Quantity(-3).Abs())
}

func TestQuantityPredicates(t *testing.T) {
	assert.True(t, Quantity(0).IsZero())
	assert.True(t, Quantity(0.5).IsPositive())
	assert.True(t, Quantity(-0.5).IsNegative())
	assert.False(t, Quantity(-1).IsPositive())
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("19.99")
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	a := New(decimal.NewFromInt(100), "USD")
	b := New(decimal.NewFromInt(50), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(New(decimal.NewFromInt(150), "USD")))
}

func TestAddCurrencyMismatch(t *testing.T) {
	a := New(decimal.NewFromInt(100), "USD")
	b := New(decimal.NewFromInt(50), "EUR")

	_, err := a.Add(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCurrencyMismatch))
}

func TestSubAllowsNegative(t *testing.T) {
	a := New(decimal.NewFromInt(100), "USD")
	b := New(decimal.NewFromInt(150), "USD")

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Equal(New(decimal.NewFromInt(-50), "USD")))
}

func TestSubCurrencyMismatch(t *testing.T) {
	a := New(decimal.NewFromInt(100), "USD")
	b := New(decimal.NewFromInt(1), "XAF")

	_, err := a.Sub(b)
	assert.True(t, errors.Is(err, ErrCurrencyMismatch))
}

func TestFromString(t *testing.T) {
	m, err := FromString("12.345", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "12.345 EUR", m.String())

	_, err = FromString("not-a-number", "EUR")
	assert.Error(t, err)
}

func TestZero(t *testing.T) {
	z := Zero("USD")
	assert.True(t, z.IsZero())
	assert.False(t, z.IsNegative())
}

package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), INR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, INR, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyINRFromFloat(10.50)
		b := NewMoneyINRFromFloat(4.50)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(15.0)))
	})

	t.Run("subtracts same currency", func(t *testing.T) {
		a := NewMoneyINRFromFloat(10)
		b := NewMoneyINRFromFloat(25)
		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		a := NewMoneyINRFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
		_, err = a.Sub(b)
		assert.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyINRFromFloat(50)
	b := NewMoneyINRFromFloat(50)
	c := NewMoneyINRFromFloat(49.99)

	assert.True(t, a.Equals(b))
	assert.True(t, a.GreaterThanOrEqual(b))
	assert.True(t, c.LessThan(a))
	assert.False(t, a.LessThan(c))
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyINRFromFloat(123.45)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestZeroINR(t *testing.T) {
	z := ZeroINR()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, INR, z.Currency())
}

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, ct := range []CategoryType{
			CategoryTypeAsset, CategoryTypeLiability, CategoryTypeEquity,
			CategoryTypeRevenue, CategoryTypeExpense,
		} {
			assert.True(t, ct.IsValid(), ct.String())
		}
		assert.False(t, CategoryType("misc").IsValid())
	})

	t.Run("normal balance side", func(t *testing.T) {
		assert.True(t, CategoryTypeAsset.NormalBalanceIsDebit())
		assert.True(t, CategoryTypeExpense.NormalBalanceIsDebit())
		assert.False(t, CategoryTypeRevenue.NormalBalanceIsDebit())
		assert.False(t, CategoryTypeLiability.NormalBalanceIsDebit())
		assert.False(t, CategoryTypeEquity.NormalBalanceIsDebit())
	})
}

func TestNewAccountCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		cat, err := NewAccountCategory("Revenue", CategoryTypeRevenue)
		require.NoError(t, err)
		assert.Equal(t, "Revenue", cat.Name)
		assert.Equal(t, CategoryTypeRevenue, cat.CategoryType)
		assert.NotEqual(t, "", cat.ID.String())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewAccountCategory("", CategoryTypeAsset)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewAccountCategory("Misc", CategoryType("misc"))
		assert.Error(t, err)
	})
}

func TestNewAccount(t *testing.T) {
	cat, err := NewAccountCategory("Assets", CategoryTypeAsset)
	require.NoError(t, err)

	t.Run("creates active account under category", func(t *testing.T) {
		acc, err := NewAccount("1001", "Main Cash", cat)
		require.NoError(t, err)
		assert.Equal(t, "1001", acc.Code)
		assert.Equal(t, cat.ID, acc.CategoryID)
		assert.Equal(t, CategoryTypeAsset, acc.CategoryType)
		assert.True(t, acc.IsActive)
	})

	t.Run("rejects empty code and name", func(t *testing.T) {
		_, err := NewAccount("", "Main Cash", cat)
		assert.Error(t, err)
		_, err = NewAccount("1001", "", cat)
		assert.Error(t, err)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewAccount("1001", "Main Cash", nil)
		assert.Error(t, err)
	})

	t.Run("deactivate keeps code", func(t *testing.T) {
		acc, err := NewAccount("1002", "Bank Account", cat)
		require.NoError(t, err)
		acc.Deactivate()
		assert.False(t, acc.IsActive)
		assert.Equal(t, "1002", acc.Code)
	})
}

package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/shared/valueobject"
)

func TestNewDonation(t *testing.T) {
	t.Run("creates anonymous cash donation", func(t *testing.T) {
		d, err := NewDonation("", nil, nil, valueobject.NewMoneyINRFromFloat(500),
			DonationTypeCash, time.Now(), "DON-202608-00001")
		require.NoError(t, err)
		assert.Nil(t, d.MemberID)
		assert.Equal(t, DonationTypeCash, d.DonationType)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDonation("", nil, nil, valueobject.ZeroINR(),
			DonationTypeCash, time.Now(), "DON-202608-00002")
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewDonation("", nil, nil, valueobject.NewMoneyINRFromFloat(100),
			DonationType("pledge"), time.Now(), "DON-202608-00003")
		assert.Error(t, err)
	})

	t.Run("rejects empty receipt number", func(t *testing.T) {
		_, err := NewDonation("", nil, nil, valueobject.NewMoneyINRFromFloat(100),
			DonationTypeCash, time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("defaults zero date", func(t *testing.T) {
		d, err := NewDonation("", nil, nil, valueobject.NewMoneyINRFromFloat(100),
			DonationTypeCash, time.Time{}, "DON-202608-00004")
		require.NoError(t, err)
		assert.False(t, d.Date.IsZero())
	})
}

func TestNewExpense(t *testing.T) {
	t.Run("creates expense", func(t *testing.T) {
		e, err := NewExpense(nil, valueobject.NewMoneyINRFromFloat(200), time.Now(),
			"Electricity bill", "treasurer", "State Power Co", "EXP-202608-00001")
		require.NoError(t, err)
		assert.Equal(t, "Electricity bill", e.Description)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewExpense(nil, valueobject.NewMoneyINRFromFloat(200), time.Now(),
			"", "", "", "EXP-202608-00002")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(nil, valueobject.NewMoneyINRFromFloat(-5), time.Now(),
			"Refund", "", "", "EXP-202608-00003")
		assert.Error(t, err)
	})
}

func TestNewCategories(t *testing.T) {
	t.Run("donation category requires name", func(t *testing.T) {
		_, err := NewDonationCategory("", "")
		assert.Error(t, err)
		c, err := NewDonationCategory("Zakat", "Obligatory alms")
		require.NoError(t, err)
		assert.Equal(t, "Zakat", c.Name)
	})

	t.Run("expense category requires name", func(t *testing.T) {
		_, err := NewExpenseCategory("", "")
		assert.Error(t, err)
		c, err := NewExpenseCategory("Utilities", "")
		require.NoError(t, err)
		assert.Equal(t, "Utilities", c.Name)
	})
}

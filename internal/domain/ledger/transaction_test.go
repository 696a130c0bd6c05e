package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/shared/valueobject"
)

func TestNewBalancedTransaction(t *testing.T) {
	debitAcc := uuid.New()
	creditAcc := uuid.New()

	t.Run("creates balanced two-line transaction", func(t *testing.T) {
		tx, err := NewBalancedTransaction(
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			"Donation - Ramadan drive",
			"DON-202603-00001",
			debitAcc, creditAcc,
			valueobject.NewMoneyINRFromFloat(500),
			"cash donation",
		)
		require.NoError(t, err)
		require.Len(t, tx.Entries, 2)

		assert.True(t, tx.IsBalanced())
		assert.True(t, tx.TotalDebit().Equal(decimal.NewFromInt(500)))
		assert.True(t, tx.TotalCredit().Equal(decimal.NewFromInt(500)))
		assert.Equal(t, debitAcc, tx.Entries[0].AccountID)
		assert.Equal(t, creditAcc, tx.Entries[1].AccountID)
		assert.True(t, tx.Entries[0].Credit.IsZero())
		assert.True(t, tx.Entries[1].Debit.IsZero())
		assert.Equal(t, tx.ID, tx.Entries[0].TransactionID)
		assert.NoError(t, tx.Validate())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewBalancedTransaction(time.Now(), "Bad posting", "",
			debitAcc, creditAcc, valueobject.ZeroINR(), "")
		assert.Error(t, err)

		_, err = NewBalancedTransaction(time.Now(), "Bad posting", "",
			debitAcc, creditAcc, valueobject.NewMoneyINRFromFloat(-10), "")
		assert.Error(t, err)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewBalancedTransaction(time.Now(), "", "",
			debitAcc, creditAcc, valueobject.NewMoneyINRFromFloat(10), "")
		assert.Error(t, err)
	})

	t.Run("rejects missing accounts", func(t *testing.T) {
		_, err := NewBalancedTransaction(time.Now(), "Posting", "",
			uuid.Nil, creditAcc, valueobject.NewMoneyINRFromFloat(10), "")
		assert.Error(t, err)

		_, err = NewBalancedTransaction(time.Now(), "Posting", "",
			debitAcc, uuid.Nil, valueobject.NewMoneyINRFromFloat(10), "")
		assert.Error(t, err)
	})

	t.Run("defaults zero date to now", func(t *testing.T) {
		tx, err := NewBalancedTransaction(time.Time{}, "Posting", "",
			debitAcc, creditAcc, valueobject.NewMoneyINRFromFloat(10), "")
		require.NoError(t, err)
		assert.False(t, tx.Date.IsZero())
	})
}

func TestTransactionValidate(t *testing.T) {
	t.Run("rejects unbalanced entries", func(t *testing.T) {
		tx := &Transaction{
			Description: "Manual entry",
			Entries: []JournalEntry{
				{ID: uuid.New(), AccountID: uuid.New(), Debit: decimal.NewFromInt(100)},
				{ID: uuid.New(), AccountID: uuid.New(), Credit: decimal.NewFromInt(90)},
			},
		}
		assert.False(t, tx.IsBalanced())
		assert.Error(t, tx.Validate())
	})

	t.Run("rejects entry with both sides set", func(t *testing.T) {
		tx := &Transaction{
			Description: "Manual entry",
			Entries: []JournalEntry{
				{ID: uuid.New(), AccountID: uuid.New(), Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
				{ID: uuid.New(), AccountID: uuid.New(), Credit: decimal.Zero},
			},
		}
		assert.Error(t, tx.Validate())
	})

	t.Run("rejects fewer than two entries", func(t *testing.T) {
		tx := &Transaction{
			Description: "Manual entry",
			Entries: []JournalEntry{
				{ID: uuid.New(), AccountID: uuid.New(), Debit: decimal.NewFromInt(50)},
			},
		}
		assert.Error(t, tx.Validate())
	})
}

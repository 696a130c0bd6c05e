package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// JournalEntry is a single debit/credit line of a transaction.
// Entries live and die with their owning Transaction (cascade).
type JournalEntry struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Memo          string          `json:"memo"`
}

// Validate checks the single-line invariants of a journal entry
func (e JournalEntry) Validate() error {
	if e.AccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Journal entry requires an account")
	}
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Journal entry amounts cannot be negative")
	}
	if e.Debit.IsPositive() && e.Credit.IsPositive() {
		return shared.NewDomainError("INVALID_ENTRY", "Journal entry cannot have both a debit and a credit")
	}
	return nil
}

// Transaction represents one financial event posted to the ledger.
// It owns its journal entries and is immutable after creation.
type Transaction struct {
	shared.BaseAggregateRoot
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Reference   string         `json:"reference"`
	Entries     []JournalEntry `json:"entries"`
}

// NewBalancedTransaction creates a transaction with exactly one debit and
// one credit line of the same amount. This is the single posting path used
// for every financial event (donation, expense, dues, invoice and fee
// payments) so the double-entry invariant holds by construction.
func NewBalancedTransaction(
	date time.Time,
	description string,
	reference string,
	debitAccountID uuid.UUID,
	creditAccountID uuid.UUID,
	amount valueobject.Money,
	memo string,
) (*Transaction, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Transaction description cannot be empty")
	}
	if len(description) > 255 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Transaction description cannot exceed 255 characters")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Both debit and credit accounts are required")
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Description:       description,
		Reference:         reference,
	}
	tx.Entries = []JournalEntry{
		{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			AccountID:     debitAccountID,
			Debit:         amount.Amount(),
			Credit:        decimal.Zero,
			Memo:          memo,
		},
		{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			AccountID:     creditAccountID,
			Debit:         decimal.Zero,
			Credit:        amount.Amount(),
			Memo:          memo,
		},
	}
	return tx, nil
}

// TotalDebit sums the debit side of all entries
func (t *Transaction) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all entries
func (t *Transaction) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.Credit)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits
func (t *Transaction) IsBalanced() bool {
	return t.TotalDebit().Equal(t.TotalCredit())
}

// Validate checks the double-entry invariants before persistence
func (t *Transaction) Validate() error {
	if len(t.Entries) < 2 {
		return shared.NewDomainError("INVALID_ENTRIES", "Transaction requires at least two journal entries")
	}
	for _, e := range t.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	if !t.IsBalanced() {
		return shared.ErrUnbalancedEntry
	}
	return nil
}

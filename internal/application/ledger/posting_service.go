package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// PostingService is the single entry point for writing to the ledger.
// Every financial event in the system (donation, expense, dues payment,
// invoice payment, fee payment) posts through PostBalancedEntry, so the
// double-entry invariant is enforced in exactly one place.
type PostingService struct {
	accountRepo  ledger.AccountRepository
	categoryRepo ledger.AccountCategoryRepository
	txRepo       ledger.TransactionRepository
}

// NewPostingService creates a new PostingService
func NewPostingService(
	accountRepo ledger.AccountRepository,
	categoryRepo ledger.AccountCategoryRepository,
	txRepo ledger.TransactionRepository,
) *PostingService {
	return &PostingService{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		txRepo:       txRepo,
	}
}

// PostEntryInput describes one balanced posting
type PostEntryInput struct {
	Date        time.Time
	Description string
	Reference   string
	Debit       config.AccountEntry
	DebitType   ledger.CategoryType
	Credit      config.AccountEntry
	CreditType  ledger.CategoryType
	Amount      decimal.Decimal
	Memo        string
}

// GetOrCreateAccount resolves an account by its code, creating it (and a
// category of the matching type if none exists yet) on first use. Callers
// inside a transaction scope get idempotency against concurrent seeding
// from the unique index on the code.
func (s *PostingService) GetOrCreateAccount(ctx context.Context, code, name string, categoryType ledger.CategoryType) (*ledger.Account, error) {
	account, err := s.accountRepo.FindByCode(ctx, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	category, err := s.categoryRepo.FindByType(ctx, categoryType)
	if errors.Is(err, shared.ErrNotFound) {
		category, err = ledger.NewAccountCategory(categoryType.DisplayName(), categoryType)
		if err != nil {
			return nil, err
		}
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	account, err = ledger.NewAccount(code, name, category)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// PostBalancedEntry resolves both accounts and writes one balanced
// transaction with a debit and a credit line of the same amount. It runs
// against whatever database transaction is carried in ctx, so callers can
// make the posting atomic with the record that triggered it.
func (s *PostingService) PostBalancedEntry(ctx context.Context, input PostEntryInput) (*ledger.Transaction, error) {
	debitAccount, err := s.GetOrCreateAccount(ctx, input.Debit.Code, input.Debit.Name, input.DebitType)
	if err != nil {
		return nil, err
	}
	creditAccount, err := s.GetOrCreateAccount(ctx, input.Credit.Code, input.Credit.Name, input.CreditType)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewBalancedTransaction(
		input.Date,
		input.Description,
		input.Reference,
		debitAccount.ID,
		creditAccount.ID,
		valueobject.NewMoneyINR(input.Amount),
		input.Memo,
	)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// AccountBalance returns the signed balance of one account, positive on
// its normal side (debit minus credit for assets and expenses, credit
// minus debit otherwise).
func (s *PostingService) AccountBalance(ctx context.Context, code string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	debit, err := s.txRepo.SumDebitByAccount(ctx, account.ID)
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := s.txRepo.SumCreditByAccount(ctx, account.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.CategoryType.NormalBalanceIsDebit() {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/config"
)

// ChartOfAccountsService manages the chart of accounts and derives
// balance reports from the journal
type ChartOfAccountsService struct {
	accountRepo ledger.AccountRepository
	txRepo      ledger.TransactionRepository
	posting     *PostingService
	accounts    config.AccountsConfig
}

// NewChartOfAccountsService creates a new ChartOfAccountsService
func NewChartOfAccountsService(
	accountRepo ledger.AccountRepository,
	txRepo ledger.TransactionRepository,
	posting *PostingService,
	accounts config.AccountsConfig,
) *ChartOfAccountsService {
	return &ChartOfAccountsService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		posting:     posting,
		accounts:    accounts,
	}
}

// AccountBalanceResponse carries one account with its derived totals
type AccountBalanceResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CategoryType string          `json:"category_type"`
	IsActive     bool            `json:"is_active"`
	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	Balance      decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse carries ledger-wide totals
type TrialBalanceResponse struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balanced    bool            `json:"balanced"`
}

// TransactionResponse represents a posted transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID              `json:"id"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Reference   string                 `json:"reference,omitempty"`
	Entries     []JournalEntryResponse `json:"entries"`
	CreatedAt   time.Time              `json:"created_at"`
}

// JournalEntryResponse represents one journal line in API responses
type JournalEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// Setup seeds the configured chart of accounts. Safe to run on every
// startup; existing accounts are left untouched.
func (s *ChartOfAccountsService) Setup(ctx context.Context) error {
	seeds := []struct {
		entry        config.AccountEntry
		categoryType ledger.CategoryType
	}{
		{s.accounts.Cash, ledger.CategoryTypeAsset},
		{s.accounts.Bank, ledger.CategoryTypeAsset},
		{s.accounts.DonationRevenue, ledger.CategoryTypeRevenue},
		{s.accounts.DuesRevenue, ledger.CategoryTypeRevenue},
		{s.accounts.RentalRevenue, ledger.CategoryTypeRevenue},
		{s.accounts.EducationRevenue, ledger.CategoryTypeRevenue},
		{s.accounts.GeneralExpense, ledger.CategoryTypeExpense},
	}
	for _, seed := range seeds {
		if _, err := s.posting.GetOrCreateAccount(ctx, seed.entry.Code, seed.entry.Name, seed.categoryType); err != nil {
			return err
		}
	}
	return nil
}

// Report derives the balance of every account from its journal entries.
// Balances are signed positive on the account's normal side.
func (s *ChartOfAccountsService) Report(ctx context.Context, filter shared.Filter) ([]AccountBalanceResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := make([]AccountBalanceResponse, 0, len(accounts))
	for _, account := range accounts {
		debit, err := s.txRepo.SumDebitByAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		credit, err := s.txRepo.SumCreditByAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		balance := credit.Sub(debit)
		if account.CategoryType.NormalBalanceIsDebit() {
			balance = debit.Sub(credit)
		}
		report = append(report, AccountBalanceResponse{
			ID:           account.ID,
			Code:         account.Code,
			Name:         account.Name,
			CategoryType: account.CategoryType.String(),
			IsActive:     account.IsActive,
			TotalDebit:   debit,
			TotalCredit:  credit,
			Balance:      balance,
		})
	}
	return report, nil
}

// TrialBalance sums both sides of the entire journal
func (s *ChartOfAccountsService) TrialBalance(ctx context.Context) (*TrialBalanceResponse, error) {
	totalDebit, err := s.txRepo.SumDebits(ctx)
	if err != nil {
		return nil, err
	}
	totalCredit, err := s.txRepo.SumCredits(ctx)
	if err != nil {
		return nil, err
	}
	return &TrialBalanceResponse{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    totalDebit.Equal(totalCredit),
	}, nil
}

// ListTransactions lists posted transactions with pagination
func (s *ChartOfAccountsService) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) (*shared.Paginated[TransactionResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	txs, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = toTransactionResponse(&tx)
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetTransaction returns one transaction with its journal entries
func (s *ChartOfAccountsService) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toTransactionResponse(tx)
	return &response, nil
}

func toTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	entries := make([]JournalEntryResponse, len(tx.Entries))
	for i, e := range tx.Entries {
		entries[i] = JournalEntryResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			Debit:     e.Debit,
			Credit:    e.Credit,
			Memo:      e.Memo,
		}
	}
	return TransactionResponse{
		ID:          tx.GetID(),
		Date:        tx.Date,
		Description: tx.Description,
		Reference:   tx.Reference,
		Entries:     entries,
		CreatedAt:   tx.CreatedAt,
	}
}

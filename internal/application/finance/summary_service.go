package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mms/backend/internal/domain/finance"
	"github.com/mms/backend/internal/infrastructure/cache"
	"github.com/mms/backend/internal/infrastructure/config"
)

// SummaryService aggregates donation and expense totals for reporting.
// Results are cached per date range; a cache failure degrades to a fresh
// aggregation, never to an error.
type SummaryService struct {
	donationRepo finance.DonationRepository
	expenseRepo  finance.ExpenseRepository
	reportCache  cache.ReportCache
	cacheConfig  config.CacheConfig
	logger       *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	donationRepo finance.DonationRepository,
	expenseRepo finance.ExpenseRepository,
	reportCache cache.ReportCache,
	cacheConfig config.CacheConfig,
	logger *zap.Logger,
) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		reportCache:  reportCache,
		cacheConfig:  cacheConfig,
		logger:       logger,
	}
}

// FinancialSummaryResponse carries aggregated totals for a date range
type FinancialSummaryResponse struct {
	FromDate       time.Time       `json:"from_date"`
	ToDate         time.Time       `json:"to_date"`
	TotalDonations decimal.Decimal `json:"total_donations"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetBalance     decimal.Decimal `json:"net_balance"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// FinancialSummary totals donations and expenses between from and to
// inclusive. Defaults to the current month when the range is zero.
func (s *SummaryService) FinancialSummary(ctx context.Context, from, to time.Time) (*FinancialSummaryResponse, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0).Add(-time.Second)
	}

	cacheKey := fmt.Sprintf("summary:%s:%s", from.Format("20060102"), to.Format("20060102"))
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	totalDonations, err := s.donationRepo.SumByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenseRepo.SumByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummaryResponse{
		FromDate:       from,
		ToDate:         to,
		TotalDonations: totalDonations,
		TotalExpenses:  totalExpenses,
		NetBalance:     totalDonations.Sub(totalExpenses),
		GeneratedAt:    time.Now(),
	}

	s.toCache(ctx, cacheKey, summary)
	return summary, nil
}

func (s *SummaryService) fromCache(ctx context.Context, key string) *FinancialSummaryResponse {
	if !s.cacheConfig.Enabled || s.reportCache == nil {
		return nil
	}
	payload, found, err := s.reportCache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	var summary FinancialSummaryResponse
	if err := json.Unmarshal(payload, &summary); err != nil {
		s.logger.Warn("report cache payload invalid", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &summary
}

func (s *SummaryService) toCache(ctx context.Context, key string, summary *FinancialSummaryResponse) {
	if !s.cacheConfig.Enabled || s.reportCache == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.reportCache.Set(ctx, key, payload, s.cacheConfig.SummaryTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

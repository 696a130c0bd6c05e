package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/infrastructure/cache"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
)

func TestSummaryService_Cache(t *testing.T) {
	f := setupFinance(t)
	ctx := context.Background()

	date := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	_, err := f.donationService.RecordDonation(ctx, RecordDonationRequest{
		DonorName: "Donor", Amount: decimal.NewFromInt(100), DonationType: "cash", Date: date,
	})
	require.NoError(t, err)

	reportCache := cache.NewInMemoryReportCache()
	t.Cleanup(func() { _ = reportCache.Close() })

	summaryService := NewSummaryService(
		persistence.NewGormDonationRepository(f.db),
		persistence.NewGormExpenseRepository(f.db),
		reportCache,
		config.CacheConfig{Enabled: true, SummaryTTL: time.Minute},
		nil,
	)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	first, err := summaryService.FinancialSummary(ctx, from, to)
	require.NoError(t, err)
	assert.True(t, first.TotalDonations.Equal(decimal.NewFromInt(100)))

	// A second donation lands after the first aggregation; the cached
	// summary is served until the TTL passes.
	_, err = f.donationService.RecordDonation(ctx, RecordDonationRequest{
		DonorName: "Late Donor", Amount: decimal.NewFromInt(50), DonationType: "cash", Date: date,
	})
	require.NoError(t, err)

	second, err := summaryService.FinancialSummary(ctx, from, to)
	require.NoError(t, err)
	assert.True(t, second.TotalDonations.Equal(decimal.NewFromInt(100)))

	t.Run("fresh aggregation after invalidation", func(t *testing.T) {
		key := "summary:20260701:20260731"
		require.NoError(t, reportCache.Delete(ctx, key))

		third, err := summaryService.FinancialSummary(ctx, from, to)
		require.NoError(t, err)
		assert.True(t, third.TotalDonations.Equal(decimal.NewFromInt(150)))
	})
}

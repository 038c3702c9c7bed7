package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yooku98/sales-dashboard/internal/domain"
)

func record(t *testing.T, date, product string, sales float64) domain.Record {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return domain.Record{
		Date:    domain.NewDateOnly(parsed),
		Product: product,
		Sales:   sales,
	}
}

func TestAggregateFixture(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "A", 100),
		record(t, "2024-01-01", "B", 50),
		record(t, "2024-01-02", "A", 30),
	}

	summary := Aggregate(records, 10)

	require.Len(t, summary.Daily, 2)
	assert.Equal(t, "2024-01-01", summary.Daily[0].Date.String())
	assert.Equal(t, 150.0, summary.Daily[0].Total)
	assert.Equal(t, "2024-01-02", summary.Daily[1].Date.String())
	assert.Equal(t, 30.0, summary.Daily[1].Total)

	require.Len(t, summary.ByProduct, 2)
	assert.Equal(t, domain.ProductTotal{Product: "A", Total: 130}, summary.ByProduct[0])
	assert.Equal(t, domain.ProductTotal{Product: "B", Total: 50}, summary.ByProduct[1])

	assert.Equal(t, 180.0, summary.Stats.TotalSales)
	assert.Equal(t, 3, summary.Stats.RecordCount)
	assert.Equal(t, 2, summary.Stats.DistinctProducts)
	assert.InDelta(t, 60.0, summary.Stats.AverageSale, 1e-9)
}

func TestDailyTotalsEmpty(t *testing.T) {
	assert.Empty(t, DailyTotals(nil))
	assert.Empty(t, DailyTotals([]domain.Record{}))
}

func TestDailyTotalsSortedAscending(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-03-01", "A", 10),
		record(t, "2024-01-01", "A", 20),
		record(t, "2024-02-01", "A", 30),
	}

	daily := DailyTotals(records)

	require.Len(t, daily, 3)
	assert.Equal(t, "2024-01-01", daily[0].Date.String())
	assert.Equal(t, "2024-02-01", daily[1].Date.String())
	assert.Equal(t, "2024-03-01", daily[2].Date.String())
}

func TestTopProductsTieBreakFirstSeen(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "B", 50),
		record(t, "2024-01-01", "A", 50),
		record(t, "2024-01-02", "C", 75),
	}

	top := TopProducts(records, 10)

	require.Len(t, top, 3)
	assert.Equal(t, "C", top[0].Product)
	// Equal totals keep first-seen order: B appears before A
	assert.Equal(t, "B", top[1].Product)
	assert.Equal(t, "A", top[2].Product)
}

func TestTopProductsTruncation(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "A", 10),
		record(t, "2024-01-01", "B", 20),
		record(t, "2024-01-01", "C", 30),
	}

	top := TopProducts(records, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "C", top[0].Product)
	assert.Equal(t, "B", top[1].Product)
}

func TestTopProductsDefaultLimit(t *testing.T) {
	records := make([]domain.Record, 0, 12)
	products := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for i, product := range products {
		records = append(records, record(t, "2024-01-01", product, float64(100-i)))
	}

	top := TopProducts(records, 0)

	assert.Len(t, top, DefaultTopProductLimit)
	assert.Equal(t, "A", top[0].Product)
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil)

	assert.Equal(t, 0.0, stats.TotalSales)
	assert.Equal(t, 0.0, stats.AverageSale)
	assert.Equal(t, 0, stats.DistinctProducts)
	assert.Equal(t, 0, stats.RecordCount)
}

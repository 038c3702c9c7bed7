// Package analytics derives the dashboard views from a snapshot of the
// canonical record set. Every function is a pure, full recompute over its
// input; at interactive data sizes there is nothing to cache.
package analytics

import (
	"sort"

	"github.com/yooku98/sales-dashboard/internal/domain"
)

// DefaultTopProductLimit caps the product ranking when no limit is configured
const DefaultTopProductLimit = 10

// Aggregate computes all three derived views from one store snapshot
func Aggregate(records []domain.Record, topLimit int) domain.Summary {
	return domain.Summary{
		Daily:     DailyTotals(records),
		ByProduct: TopProducts(records, topLimit),
		Stats:     Stats(records),
	}
}

// DailyTotals groups records by calendar date, sums sales per date, and
// sorts ascending by date. Empty input yields an empty sequence.
func DailyTotals(records []domain.Record) []domain.DailyTotal {
	sums := make(map[string]float64)
	dates := make(map[string]domain.DateOnly)
	for _, record := range records {
		key := record.Date.String()
		sums[key] += record.Sales
		dates[key] = record.Date
	}

	totals := make([]domain.DailyTotal, 0, len(sums))
	for key, total := range sums {
		totals = append(totals, domain.DailyTotal{Date: dates[key], Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date.Time)
	})
	return totals
}

// TopProducts groups records by product, sums sales, sorts descending by
// total, and keeps the first limit entries. Products with equal totals keep
// their first-seen order in the record sequence.
func TopProducts(records []domain.Record, limit int) []domain.ProductTotal {
	if limit <= 0 {
		limit = DefaultTopProductLimit
	}

	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, record := range records {
		if _, seen := sums[record.Product]; !seen {
			order = append(order, record.Product)
		}
		sums[record.Product] += record.Sales
	}

	totals := make([]domain.ProductTotal, 0, len(order))
	for _, product := range order {
		totals = append(totals, domain.ProductTotal{Product: product, Total: sums[product]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// Stats summarizes the record set. The mean over an empty set is reported
// as zero; consumers distinguish "no data" by the record count.
func Stats(records []domain.Record) domain.Stats {
	stats := domain.Stats{RecordCount: len(records)}

	products := make(map[string]struct{})
	for _, record := range records {
		stats.TotalSales += record.Sales
		products[record.Product] = struct{}{}
	}
	stats.DistinctProducts = len(products)

	if stats.RecordCount > 0 {
		stats.AverageSale = stats.TotalSales / float64(stats.RecordCount)
	}
	return stats
}

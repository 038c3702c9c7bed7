// Package presenter maps normalization outcomes to user-facing status text
// and renders the canonical record set as display-ready table rows.
package presenter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yooku98/sales-dashboard/internal/domain"
)

// Status classification levels consumed by the UI for styling
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Status is a user-facing rendering of a normalization outcome
type Status struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

// TableRow is one display-ready row of the records table
type TableRow struct {
	Date    string  `json:"date"`
	Product string  `json:"product"`
	Sales   string  `json:"sales"`
	Amount  float64 `json:"amount"`
}

// TableOptions controls sorting and filtering of the rendered table
type TableOptions struct {
	// SortBy is one of "date", "product", "sales"; empty means date
	SortBy string

	// Order is "asc" or "desc"; empty means the column default
	Order string

	// Product filters rows by case-insensitive substring match
	Product string
}

// StatusMessage maps an outcome to its message and visual classification.
// An empty result reads as a parse failure: from the user's side the file
// simply produced nothing usable.
func StatusMessage(outcome domain.Outcome) Status {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return Status{Message: successMessage(outcome), Level: LevelSuccess}
	case domain.OutcomeParseFailure, domain.OutcomeEmptyResult:
		return Status{
			Message: fmt.Sprintf("could not parse %s; expected tabular date/product/sales columns", outcome.Source),
			Level:   LevelError,
		}
	case domain.OutcomeValidationFailure:
		return Status{Message: outcome.Reason, Level: LevelError}
	default:
		return Status{Message: "unknown outcome", Level: LevelError}
	}
}

func successMessage(outcome domain.Outcome) string {
	noun := "record"
	if outcome.Count != 1 {
		noun = "records"
	}
	if outcome.Source != "" {
		return fmt.Sprintf("loaded %d %s from %s", outcome.Count, noun, outcome.Source)
	}
	return fmt.Sprintf("added %d %s", outcome.Count, noun)
}

// TableRows renders records as display rows, most-recent date first by
// default, with sales formatted as currency with thousands separators.
func TableRows(records []domain.Record, opts TableOptions) []TableRow {
	filtered := records
	if opts.Product != "" {
		needle := strings.ToLower(opts.Product)
		filtered = make([]domain.Record, 0, len(records))
		for _, record := range records {
			if strings.Contains(strings.ToLower(record.Product), needle) {
				filtered = append(filtered, record)
			}
		}
	}

	rows := make([]TableRow, 0, len(filtered))
	for _, record := range filtered {
		rows = append(rows, TableRow{
			Date:    record.Date.String(),
			Product: record.Product,
			Sales:   FormatCurrency(record.Sales),
			Amount:  record.Sales,
		})
	}

	sortRows(rows, opts)
	return rows
}

// FormatCurrency renders a sales amount as dollars with thousands
// separators and two decimal places.
func FormatCurrency(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

func sortRows(rows []TableRow, opts TableOptions) {
	ascending := false
	switch opts.SortBy {
	case "product":
		ascending = true
	case "sales":
		ascending = false
	default:
		// date column: most-recent first
		ascending = false
	}
	switch opts.Order {
	case "asc":
		ascending = true
	case "desc":
		ascending = false
	}

	var less func(a, b TableRow) bool
	switch opts.SortBy {
	case "product":
		less = func(a, b TableRow) bool { return a.Product < b.Product }
	case "sales":
		less = func(a, b TableRow) bool { return a.Amount < b.Amount }
	default:
		less = func(a, b TableRow) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Product > b.Product
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

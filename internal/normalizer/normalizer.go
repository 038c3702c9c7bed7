// Package normalizer turns arbitrary tabular input into canonical sales
// records. It is the only path by which data reaches the store.
package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yooku98/sales-dashboard/internal/domain"
	"github.com/yooku98/sales-dashboard/internal/tabular"
)

// The three columns every canonical record carries. Inputs missing any of
// them get the column synthesized with all-missing values so the shape
// downstream is always the same.
const (
	columnDate    = "date"
	columnProduct = "product"
	columnSales   = "sales"
)

// Date layouts accepted from uploaded files. All are truncated to the
// calendar date; manual entry accepts only the first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Manual entry rejection reasons, surfaced verbatim by the presenter.
const (
	ReasonMissingDate    = "date is required"
	ReasonMissingProduct = "product is required"
	ReasonMissingSales   = "sales is required"
	ReasonInvalidDate    = "date must be a valid YYYY-MM-DD date"
	ReasonInvalidSales   = "sales must be a number"
	ReasonNegativeSales  = "sales must not be negative"
)

// EntryInput is a manual-entry form submission
type EntryInput struct {
	Date    string     `json:"date"`
	Product string     `json:"product"`
	Sales   FieldValue `json:"sales"`
}

// FieldValue is a form field that clients may post as either a JSON string
// or a bare number. Either way it reaches validation as text, so a numeric
// payload gets the same rejection reasons as a string one.
type FieldValue string

func (f *FieldValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FieldValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FieldValue(n.String())
	return nil
}

// NormalizeTable coerces a parsed spreadsheet into canonical records.
// Rows are filtered in order: all-blank rows, unparseable or negative
// sales, unparseable dates, blank products. A table that keeps zero rows
// yields an empty-result outcome and the caller must leave the store
// untouched.
func NormalizeTable(table *tabular.Table, filename string) ([]domain.Record, domain.Outcome) {
	dateIdx := columnIndex(table.Headers, columnDate)
	productIdx := columnIndex(table.Headers, columnProduct)
	salesIdx := columnIndex(table.Headers, columnSales)

	records := make([]domain.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		dateRaw := cellAt(row, dateIdx)
		productRaw := strings.TrimSpace(cellAt(row, productIdx))
		salesRaw := strings.TrimSpace(cellAt(row, salesIdx))

		if strings.TrimSpace(dateRaw) == "" && productRaw == "" && salesRaw == "" {
			continue
		}

		sales, ok := coerceSales(salesRaw)
		if !ok {
			continue
		}

		date, ok := coerceDate(dateRaw)
		if !ok {
			continue
		}

		if productRaw == "" {
			continue
		}

		records = append(records, domain.Record{
			Date:    date,
			Product: productRaw,
			Sales:   sales,
		})
	}

	if len(records) == 0 {
		return nil, domain.EmptyResult(filename)
	}
	return records, domain.Success(len(records), filename)
}

// NormalizeEntry validates a single manual-entry submission. All three
// fields must be present, the date must be ISO YYYY-MM-DD, and sales must
// parse as a non-negative number.
func NormalizeEntry(input EntryInput) (domain.Record, domain.Outcome) {
	dateStr := strings.TrimSpace(input.Date)
	product := strings.TrimSpace(input.Product)
	salesStr := strings.TrimSpace(string(input.Sales))

	if dateStr == "" {
		return domain.Record{}, domain.ValidationFailure(ReasonMissingDate)
	}
	if product == "" {
		return domain.Record{}, domain.ValidationFailure(ReasonMissingProduct)
	}
	if salesStr == "" {
		return domain.Record{}, domain.ValidationFailure(ReasonMissingSales)
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return domain.Record{}, domain.ValidationFailure(ReasonInvalidDate)
	}

	sales, err := strconv.ParseFloat(salesStr, 64)
	if err != nil || math.IsNaN(sales) || math.IsInf(sales, 0) {
		return domain.Record{}, domain.ValidationFailure(ReasonInvalidSales)
	}
	if sales < 0 {
		return domain.Record{}, domain.ValidationFailure(ReasonNegativeSales)
	}

	record := domain.Record{
		Date:    domain.NewDateOnly(date),
		Product: product,
		Sales:   sales,
	}
	return record, domain.Success(1, "")
}

// canonicalizeHeader strips carriage-return/line-feed characters and
// surrounding whitespace, then lowercases. Spreadsheet exports routinely
// leave trailing spaces and stray control characters in header cells.
func canonicalizeHeader(name string) string {
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\n", "")
	return strings.ToLower(strings.TrimSpace(name))
}

// columnIndex finds the position of a canonical column name in the header
// row, or -1 when the source has no such column.
func columnIndex(headers []string, name string) int {
	for i, header := range headers {
		if canonicalizeHeader(header) == name {
			return i
		}
	}
	return -1
}

// cellAt reads a cell, treating synthesized columns and short rows as missing
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func coerceSales(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	sales, err := strconv.ParseFloat(raw, 64)
	if err != nil || sales < 0 || math.IsNaN(sales) || math.IsInf(sales, 0) {
		return 0, false
	}
	return sales, true
}

func coerceDate(raw string) (domain.DateOnly, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DateOnly{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.NewDateOnly(t), true
		}
	}
	return domain.DateOnly{}, false
}

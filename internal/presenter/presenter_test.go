package presenter

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

func TestStatusMessageSuccessUpload(t *testing.T) {
	status := StatusMessage(domain.Success(3, "sales.csv"))

	assert.Equal(t, LevelSuccess, status.Level)
	assert.Equal(t, "loaded 3 records from sales.csv", status.Message)
}

func TestStatusMessageSuccessSingleEntry(t *testing.T) {
	status := StatusMessage(domain.Success(1, ""))

	assert.Equal(t, LevelSuccess, status.Level)
	assert.Equal(t, "added 1 record", status.Message)
}

func TestStatusMessageParseFailure(t *testing.T) {
	status := StatusMessage(domain.ParseFailure("report.pdf"))

	assert.Equal(t, LevelError, status.Level)
	assert.Equal(t, "could not parse report.pdf; expected tabular date/product/sales columns", status.Message)
}

func TestStatusMessageEmptyResultReadsAsParseFailure(t *testing.T) {
	status := StatusMessage(domain.EmptyResult("blank.csv"))

	assert.Equal(t, LevelError, status.Level)
	assert.Contains(t, status.Message, "could not parse blank.csv")
}

func TestStatusMessageValidationFailure(t *testing.T) {
	status := StatusMessage(domain.ValidationFailure("sales must not be negative"))

	assert.Equal(t, LevelError, status.Level)
	assert.Equal(t, "sales must not be negative", status.Message)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5))
	assert.Equal(t, "$100.00", FormatCurrency(100))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$1,000,000.25", FormatCurrency(1000000.25))
}

func TestTableRowsDefaultOrder(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "Widget", 100),
		record(t, "2024-01-03", "Gadget", 50),
		record(t, "2024-01-03", "Doodad", 25),
	}

	rows := TableRows(records, TableOptions{})

	require.Len(t, rows, 3)
	// Most-recent date first, product ascending within a date
	assert.Equal(t, "2024-01-03", rows[0].Date)
	assert.Equal(t, "Doodad", rows[0].Product)
	assert.Equal(t, "Gadget", rows[1].Product)
	assert.Equal(t, "2024-01-01", rows[2].Date)
	assert.Equal(t, "$100.00", rows[2].Sales)
}

func TestTableRowsProductFilter(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "Widget", 100),
		record(t, "2024-01-02", "Gadget", 50),
		record(t, "2024-01-03", "Mega Widget", 75),
	}

	rows := TableRows(records, TableOptions{Product: "widget"})

	require.Len(t, rows, 2)
	assert.Equal(t, "Mega Widget", rows[0].Product)
	assert.Equal(t, "Widget", rows[1].Product)
}

func TestTableRowsSortBySales(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "A", 30),
		record(t, "2024-01-02", "B", 10),
		record(t, "2024-01-03", "C", 20),
	}

	rows := TableRows(records, TableOptions{SortBy: "sales", Order: "asc"})

	require.Len(t, rows, 3)
	assert.Equal(t, 10.0, rows[0].Amount)
	assert.Equal(t, 20.0, rows[1].Amount)
	assert.Equal(t, 30.0, rows[2].Amount)
}

func TestTableRowsSortByProductDefaultAscending(t *testing.T) {
	records := []domain.Record{
		record(t, "2024-01-01", "Zeta", 1),
		record(t, "2024-01-01", "Alpha", 2),
	}

	rows := TableRows(records, TableOptions{SortBy: "product"})

	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Product)
	assert.Equal(t, "Zeta", rows[1].Product)
}

func TestTableRowsEmpty(t *testing.T) {
	rows := TableRows(nil, TableOptions{})
	assert.Empty(t, rows)
}

package normalizer

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yooku98/sales-dashboard/internal/domain"
	"github.com/yooku98/sales-dashboard/internal/tabular"
)

func TestNormalizeTableCanonicalizesHeaders(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{" Date \r\n", "PRODUCT", "Sales"},
		Rows: [][]string{
			{"2024-01-01", "Widget", "100"},
		},
	}

	records, outcome := NormalizeTable(table, "report.csv")

	require.True(t, outcome.OK())
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, "report.csv", outcome.Source)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-01", records[0].Date.String())
	assert.Equal(t, "Widget", records[0].Product)
	assert.Equal(t, 100.0, records[0].Sales)
}

func TestNormalizeTableMissingSalesColumn(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"date", "product"},
		Rows: [][]string{
			{"2024-01-01", "Widget"},
			{"2024-01-02", "Gadget"},
		},
	}

	records, outcome := NormalizeTable(table, "report.csv")

	assert.Empty(t, records)
	assert.Equal(t, domain.OutcomeEmptyResult, outcome.Kind)
	assert.Equal(t, "report.csv", outcome.Source)
}

func TestNormalizeTableRowFiltering(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"date", "product", "sales"},
		Rows: [][]string{
			{"", "", ""},                        // all blank
			{"2024-01-01", "Widget", "abc"},     // sales not a number
			{"2024-01-01", "Widget", "-5"},      // negative sales
			{"2024-01-01", "Widget", "NaN"},     // non-finite sales
			{"2024-01-02", "Gizmo", "+Inf"},     // non-finite sales
			{"2024-01-02", "Gizmo", "-Inf"},     // non-finite sales
			{"not-a-date", "Widget", "10"},      // bad date
			{"2024-01-01", "   ", "10"},         // blank product
			{"2024-01-01", "Widget", "10.5"},    // kept
			{"2024-01-02", " Gadget ", "20"},    // kept, product trimmed
		},
	}

	records, outcome := NormalizeTable(table, "report.csv")

	require.True(t, outcome.OK())
	require.Len(t, records, 2)
	assert.Equal(t, "Widget", records[0].Product)
	assert.Equal(t, 10.5, records[0].Sales)
	assert.Equal(t, "Gadget", records[1].Product)
}

func TestNormalizeTableAcceptedDateLayouts(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"date", "product", "sales"},
		Rows: [][]string{
			{"2024-01-05", "A", "1"},
			{"2024/01/06", "B", "1"},
			{"01/07/2024", "C", "1"},
			{"2024-01-08 13:45:00", "D", "1"},
			{"2024-01-09T08:30:00Z", "E", "1"},
		},
	}

	records, outcome := NormalizeTable(table, "dates.csv")

	require.True(t, outcome.OK())
	require.Len(t, records, 5)
	want := []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09"}
	for i, record := range records {
		assert.Equal(t, want[i], record.Date.String())
	}
}

func TestNormalizeTableShortRows(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"date", "product", "sales"},
		Rows: [][]string{
			{"2024-01-01", "Widget"}, // missing sales cell
			{"2024-01-01"},           // missing product and sales cells
		},
	}

	records, outcome := NormalizeTable(table, "short.csv")

	assert.Empty(t, records)
	assert.Equal(t, domain.OutcomeEmptyResult, outcome.Kind)
}

func TestNormalizeTableIdempotent(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Date", "Product ", "sales\r\n"},
		Rows: [][]string{
			{"2024-01-01", "Widget", "100"},
			{"2024-01-02", "Gadget", "55.25"},
			{"bad", "Widget", "10"},
		},
	}

	first, outcome := NormalizeTable(table, "a.csv")
	require.True(t, outcome.OK())

	// Feed the output back through as a table
	rows := make([][]string, len(first))
	for i, record := range first {
		rows[i] = []string{
			record.Date.String(),
			record.Product,
			strconv.FormatFloat(record.Sales, 'f', -1, 64),
		}
	}
	second, outcome := NormalizeTable(&tabular.Table{
		Headers: []string{"date", "product", "sales"},
		Rows:    rows,
	}, "a.csv")

	require.True(t, outcome.OK())
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Date.String(), second[i].Date.String())
		assert.Equal(t, first[i].Product, second[i].Product)
		assert.Equal(t, first[i].Sales, second[i].Sales)
	}
}

func TestNormalizeEntryValid(t *testing.T) {
	record, outcome := NormalizeEntry(EntryInput{
		Date:    "2024-03-15",
		Product: "  Widget  ",
		Sales:   "42.50",
	})

	require.True(t, outcome.OK())
	assert.Equal(t, 1, outcome.Count)
	assert.Empty(t, outcome.Source)
	assert.Equal(t, "2024-03-15", record.Date.String())
	assert.Equal(t, "Widget", record.Product)
	assert.Equal(t, 42.5, record.Sales)
}

func TestEntryInputSalesAcceptsNumberOrString(t *testing.T) {
	var fromNumber EntryInput
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","product":"Widget","sales":42.5}`), &fromNumber))
	assert.Equal(t, FieldValue("42.5"), fromNumber.Sales)

	var fromString EntryInput
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","product":"Widget","sales":"42.5"}`), &fromString))
	assert.Equal(t, FieldValue("42.5"), fromString.Sales)

	record, outcome := NormalizeEntry(fromNumber)
	require.True(t, outcome.OK())
	assert.Equal(t, 42.5, record.Sales)
}

func TestNormalizeEntryRejections(t *testing.T) {
	tests := []struct {
		name   string
		input  EntryInput
		reason string
	}{
		{
			name:   "missing date",
			input:  EntryInput{Product: "Widget", Sales: "10"},
			reason: ReasonMissingDate,
		},
		{
			name:   "blank product",
			input:  EntryInput{Date: "2024-01-01", Product: "   ", Sales: "10"},
			reason: ReasonMissingProduct,
		},
		{
			name:   "missing sales",
			input:  EntryInput{Date: "2024-01-01", Product: "Widget"},
			reason: ReasonMissingSales,
		},
		{
			name:   "invalid date",
			input:  EntryInput{Date: "01/02/2024", Product: "Widget", Sales: "10"},
			reason: ReasonInvalidDate,
		},
		{
			name:   "non-numeric sales",
			input:  EntryInput{Date: "2024-01-01", Product: "Widget", Sales: "ten"},
			reason: ReasonInvalidSales,
		},
		{
			name:   "NaN sales",
			input:  EntryInput{Date: "2024-01-01", Product: "Widget", Sales: "NaN"},
			reason: ReasonInvalidSales,
		},
		{
			name:   "infinite sales",
			input:  EntryInput{Date: "2024-01-01", Product: "Widget", Sales: "+Inf"},
			reason: ReasonInvalidSales,
		},
		{
			name:   "negative sales",
			input:  EntryInput{Date: "2024-01-01", Product: "Widget", Sales: "-5"},
			reason: ReasonNegativeSales,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome := NormalizeEntry(tt.input)
			assert.Equal(t, domain.OutcomeValidationFailure, outcome.Kind)
			assert.Equal(t, tt.reason, outcome.Reason)
		})
	}
}

package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	data := []byte("date,product,sales\n2024-01-01,Widget,100\n2024-01-02,Gadget,55.25\n")

	table, err := Parse(data, "sales.csv")

	require.NoError(t, err)
	assert.Equal(t, []string{"date", "product", "sales"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-01-01", "Widget", "100"}, table.Rows[0])
}

func TestParseCSVRaggedRows(t *testing.T) {
	data := []byte("date,product,sales\n2024-01-01,Widget\n2024-01-02,Gadget,55.25,extra\n")

	table, err := Parse(data, "sales.csv")

	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 2)
	assert.Len(t, table.Rows[1], 4)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := Parse([]byte(""), "sales.csv")
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]interface{}{"date", "product", "sales"}))
	require.NoError(t, file.SetSheetRow(sheet, "A2", &[]interface{}{"2024-01-01", "Widget", 100}))
	require.NoError(t, file.SetSheetRow(sheet, "A3", &[]interface{}{"2024-01-02", "Gadget", 55.25}))

	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	table, err := Parse(buf.Bytes(), "sales.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"date", "product", "sales"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Widget", table.Rows[0][1])
}

func TestParseXLSXMalformed(t *testing.T) {
	_, err := Parse([]byte("this is not a spreadsheet"), "sales.xlsx")
	assert.Error(t, err)
}

func TestParseXLSMalformed(t *testing.T) {
	_, err := Parse([]byte("this is not a spreadsheet"), "sales.xls")
	assert.Error(t, err)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("date,product,sales\n"), "sales.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("sales.csv"))
	assert.True(t, SupportedExtension("SALES.XLSX"))
	assert.True(t, SupportedExtension("report.xls"))
	assert.False(t, SupportedExtension("sales.txt"))
	assert.False(t, SupportedExtension("sales"))
	assert.False(t, SupportedExtension("sales.pdf"))
}

// Package tabular reads uploaded spreadsheet payloads into a uniform
// header-plus-rows shape, independent of the source file format.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for filenames whose extension is not
// one of .csv, .xlsx, .xls.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Table is a parsed spreadsheet: the header row plus every data row.
// Rows may be ragged; cells beyond the header width are ignored downstream.
type Table struct {
	Headers []string
	Rows    [][]string
}

// SupportedExtension reports whether the filename carries a recognized
// spreadsheet extension.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// Parse reads spreadsheet content into a Table based on the filename
// extension. Content that fails to parse under its claimed format is an
// error; the caller decides how to surface it.
func Parse(data []byte, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data)
	case ".xlsx":
		return parseXLSX(data)
	case ".xls":
		return parseXLS(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func parseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Spreadsheet exports are frequently ragged; tolerate varying widths.
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}

	return tableFromRows(rows)
}

func parseXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	return tableFromRows(rows)
}

func parseXLS(data []byte) (*Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows := workbook.ReadAllCells(100000)
	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return &Table{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}

// =============================================================================
// Procurement Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - dataset
//
// =============================================================================

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// =============================================================================
// INPUT FORMATS
// =============================================================================

// Format is the declared format of a raw input file.
type Format string

const (
	// FormatDelimited is delimited text (CSV, TSV, pipe-separated).
	FormatDelimited Format = "csv"

	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"

	// FormatXLS is a legacy BIFF8 workbook.
	FormatXLS Format = "xls"
)

// IsSpreadsheet reports whether cells come from a workbook, where date cells
// are stored as Excel serial numbers.
func (f Format) IsSpreadsheet() bool {
	return f == FormatXLSX || f == FormatXLS
}

// DetectFormat maps a file name to its format using the extension.
//
// CUSTOMIZATION: Add extensions here if exports arrive with other suffixes.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}
}

// =============================================================================
// RAW TABLE
// =============================================================================

// Table is a raw tabular file: one header row followed by data rows, all as
// untyped text. It only exists during ingestion.
type Table struct {
	// Headers contains the cleaned header row.
	Headers []string

	// Rows contains the data rows. Every row has exactly len(Headers) cells.
	Rows [][]string

	// RowNumbers holds the 1-based line/row number of each data row in the
	// source file. Useful for error reporting.
	RowNumbers []int

	// Format is the format the table was parsed from.
	Format Format

	// Sheet is the worksheet name for spreadsheet sources.
	Sheet string
}

// Cell returns the value at row r, column c, or "" if out of range.
func (t *Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

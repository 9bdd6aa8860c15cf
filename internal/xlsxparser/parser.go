// =============================================================================
// Procurement Analytics - Spreadsheet Parser
// =============================================================================
//
// This module reads procurement workbooks into a raw table. Two formats are
// supported:
//   - XLSX/XLSM via excelize
//   - Legacy XLS (BIFF8) via extrame/xls
//
// XLSX cells are read as raw values, so dates arrive as Excel serial numbers
// and currency cells arrive without display formatting. The coercion layer
// turns serials back into dates.
//
// SHEET SELECTION:
//   The first worksheet is used unless a sheet name is given.
//
// =============================================================================

package xlsxparser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
	"github.com/xuri/excelize/v2"
)

// ErrNoData is returned when the selected sheet has no header row.
var ErrNoData = errors.New("sheet has no header row")

// =============================================================================
// XLSX
// =============================================================================

// ParseXLSX reads an XLSX workbook.
//
// PARAMETERS:
//   - data: The workbook bytes.
//   - sheet: The worksheet name, or "" for the first sheet.
//
// RETURNS:
//   - The raw table from the selected sheet.
//   - An error if the workbook cannot be opened or the sheet is missing.
func ParseXLSX(data []byte, sheet string) (*types.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (have %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table, err := buildTable(rows, types.FormatXLSX)
	if err != nil {
		return nil, err
	}
	table.Sheet = sheet
	return table, nil
}

// =============================================================================
// XLS
// =============================================================================

// ParseXLS reads a legacy XLS workbook. Only the first sheet is read unless a
// sheet name is given.
func ParseXLS(data []byte, sheet string) (table *types.Table, err error) {
	// The BIFF reader panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = fmt.Errorf("failed to read workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	var ws *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		candidate := wb.GetSheet(i)
		if candidate == nil {
			continue
		}
		if sheet == "" || candidate.Name == sheet {
			ws = candidate
			break
		}
	}
	if ws == nil {
		if sheet != "" {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}

	table, err = buildTable(rows, types.FormatXLS)
	if err != nil {
		return nil, err
	}
	table.Sheet = ws.Name
	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildTable takes the first non-empty row as headers and the rest as data.
// The table is as wide as its widest row; header cells past the end of the
// header row are named like empty headers (Column_N).
func buildTable(rows [][]string, format types.Format) (*types.Table, error) {
	table := &types.Table{Format: format}
	var header []string
	headerSeen := false
	width := 0

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		row = trimTrailingEmpty(row)
		if len(row) > width {
			width = len(row)
		}

		if !headerSeen {
			header = row
			headerSeen = true
			continue
		}

		table.Rows = append(table.Rows, row)
		table.RowNumbers = append(table.RowNumbers, i+1)
	}

	if !headerSeen {
		return nil, ErrNoData
	}

	table.Headers = cleanHeaders(fitRow(header, width))
	for i, row := range table.Rows {
		table.Rows[i] = fitRow(row, width)
	}

	return table, nil
}

// cleanHeaders trims headers and names empty ones after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

func fitRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}

// trimTrailingEmpty drops empty cells after the last non-empty one.
func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

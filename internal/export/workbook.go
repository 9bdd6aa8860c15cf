package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/report"
)

// Sheet names of the report workbook, in order.
const (
	SheetSummary = "Summary"
	SheetDetails = "PO Details"
	SheetMonthly = "Monthly Flow"
	SheetAging   = "Aging"
	SheetBudget  = "Budget"
)

// currencyFormat is the built-in "#,##0.00" number format.
const currencyFormat = 4

// WorkbookOptions tunes the report workbook.
type WorkbookOptions struct {
	Report report.Options
}

type workbook struct {
	f        *excelize.File
	header   int
	currency int
}

// WriteWorkbook writes the XLSX report workbook for a view.
//
// PARAMETERS:
//   - w: The destination.
//   - view: The filtered records to report on.
//   - opts: Aging reference time, aging policy and top-vendor count.
//
// RETURNS:
//   - An error if a sheet cannot be built or the file cannot be written.
func WriteWorkbook(w io.Writer, view filter.View, opts WorkbookOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	wb := &workbook{f: f}
	if err := wb.init(); err != nil {
		return err
	}

	summary := report.Summarize(view, opts.Report)

	builders := []struct {
		sheet string
		build func(string) error
	}{
		{SheetSummary, func(s string) error { return wb.summary(s, summary) }},
		{SheetDetails, func(s string) error { return wb.details(s, view) }},
		{SheetMonthly, func(s string) error { return wb.monthly(s, summary.Monthly) }},
		{SheetAging, func(s string) error { return wb.aging(s, summary.Aging) }},
		{SheetBudget, func(s string) error { return wb.budget(s, summary.Budget) }},
	}

	for i, b := range builders {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), b.sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", b.sheet, err)
			}
		} else if _, err := f.NewSheet(b.sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", b.sheet, err)
		}
		if err := b.build(b.sheet); err != nil {
			return fmt.Errorf("failed to build sheet %s: %w", b.sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (wb *workbook) init() error {
	var err error
	wb.header, err = wb.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	wb.currency, err = wb.f.NewStyle(&excelize.Style{NumFmt: currencyFormat})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}
	return nil
}

// =============================================================================
// SHEET HELPERS
// =============================================================================

// table writes a header row and data rows starting at A1. Columns listed in
// money are formatted as currency.
func (wb *workbook) table(sheet string, header []string, rows [][]any, money ...int) error {
	if err := wb.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetCellStyle(sheet, "A1", last, wb.header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		for _, col := range money {
			top, err := excelize.CoordinatesToCellName(col, 2)
			if err != nil {
				return err
			}
			bottom, err := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err != nil {
				return err
			}
			if err := wb.f.SetCellStyle(sheet, top, bottom, wb.currency); err != nil {
				return err
			}
		}
	}

	if len(header) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(header))
		if err != nil {
			return err
		}
		if err := wb.f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SHEETS
// =============================================================================

func (wb *workbook) summary(sheet string, s report.Summary) error {
	rows := [][]any{
		{"Rows", s.Rows},
		{"Total Paid", s.Totals.Amount},
		{"Total PO Value", s.Totals.POValue},
		{"Outstanding", s.Totals.Outstanding},
		{"Unique Vendors", s.UniqueVendors},
		{"Pending POs", s.Pending},
		{"Undated Rows", s.Undated},
		{"Generated At", s.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	if err := wb.table(sheet, []string{"Metric", "Value"}, rows); err != nil {
		return err
	}
	for _, cell := range []string{"B3", "B4", "B5"} {
		if err := wb.f.SetCellStyle(sheet, cell, cell, wb.currency); err != nil {
			return err
		}
	}

	// Top vendors sit beside the metrics.
	if err := wb.f.SetSheetRow(sheet, "D1", &[]string{"Top Vendor", "Total Paid"}); err != nil {
		return err
	}
	if err := wb.f.SetCellStyle(sheet, "D1", "E1", wb.header); err != nil {
		return err
	}
	for i, g := range s.TopVendors {
		cell, err := excelize.CoordinatesToCellName(4, i+2)
		if err != nil {
			return err
		}
		if err := wb.f.SetSheetRow(sheet, cell, &[]any{g.Key, g.Sum}); err != nil {
			return err
		}
	}
	return wb.f.SetColWidth(sheet, "D", "E", 24)
}

func (wb *workbook) details(sheet string, view filter.View) error {
	columns := viewColumns(view)

	var money []int
	for i, column := range columns {
		if f, ok := dataset.FieldForColumn(column); ok && isCurrency(f) {
			money = append(money, i+1)
		}
	}

	records := report.Details(view)
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, column := range columns {
			row[i] = cellValue(rec, column)
		}
		rows = append(rows, row)
	}

	return wb.table(sheet, columns, rows, money...)
}

func (wb *workbook) monthly(sheet string, flows []report.MonthFlow) error {
	rows := make([][]any, 0, len(flows))
	for _, m := range flows {
		rows = append(rows, []any{m.Month, m.Paid, m.POValue, m.Outstanding, m.Count})
	}
	return wb.table(sheet, []string{"Month", "Paid", "PO Value", "Outstanding", "POs"}, rows, 2, 3, 4)
}

func (wb *workbook) aging(sheet string, buckets []report.AgingBucket) error {
	rows := make([][]any, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []any{b.Label, b.Count, b.POValue})
	}
	return wb.table(sheet, []string{"Age", "Pending POs", "PO Value"}, rows, 3)
}

func (wb *workbook) budget(sheet string, lines []report.BudgetLine) error {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{l.ProjectManager, l.Budget, l.Actual, l.Variance})
	}
	return wb.table(sheet, []string{"Project Manager", "Budget", "Actual", "Variance"}, rows, 2, 3, 4)
}

// =============================================================================
// Procurement Analytics - Export Writers
// =============================================================================
//
// This module writes a filtered view to disk in the two formats the CLI
// offers:
//
//   - CSV: the view's records, one row per record, using the dataset's column
//     order. Canonical numeric columns hold coerced numbers, App_Date is
//     rendered as YYYY-MM-DD (empty when invalid) and every other column keeps
//     its raw text.
//
//   - XLSX: a report workbook with one sheet per dashboard view
//     (Summary, PO Details, Monthly Flow, Aging, Budget).
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/procurement-analytics/internal/filter"
)

// WriteCSV writes the view as UTF-8 CSV with a header row.
//
// PARAMETERS:
//   - w: The destination.
//   - view: The records to write. Its dataset supplies the column order.
//
// RETURNS:
//   - An error if writing fails.
func WriteCSV(w io.Writer, view filter.View) error {
	columns := viewColumns(view)

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range view.Records {
		for i, column := range columns {
			row[i] = rec.Value(column)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", rec.Row, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func viewColumns(view filter.View) []string {
	if view.Dataset == nil {
		return nil
	}
	return view.Dataset.Columns
}

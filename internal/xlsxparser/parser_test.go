package xlsxparser

import (
	"testing"
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Tracker": {
			{"PO No", " Vendor ", "Total Paid", "PO_Date", ""},
			{"PO-1", "Acme", 1200.5, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
			{},
			{"PO-2", "Beta", "RM 50", "2026-02-10"},
		},
	})

	table, err := ParseXLSX(data, "")
	require.NoError(t, err)

	assert.Equal(t, types.FormatXLSX, table.Format)
	assert.Equal(t, "Tracker", table.Sheet)
	assert.Equal(t, []string{"PO No", "Vendor", "Total Paid", "PO_Date"}, table.Headers)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "PO-1", table.Cell(0, 0))
	assert.Equal(t, "1200.5", table.Cell(0, 2))
	// Raw cell values keep dates as Excel serials.
	assert.Equal(t, "46037", table.Cell(0, 3))
	assert.Equal(t, "RM 50", table.Cell(1, 2))
	assert.Equal(t, "2026-02-10", table.Cell(1, 3))
	assert.Equal(t, []int{2, 4}, table.RowNumbers)
}

func TestParseXLSX_NamedSheet(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Tracker": {{"A"}, {"1"}},
	})

	_, err := ParseXLSX(data, "Missing")
	assert.Error(t, err)

	table, err := ParseXLSX(data, "Tracker")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, table.Headers)
}

func TestParseXLSX_Errors(t *testing.T) {
	_, err := ParseXLSX([]byte("not a workbook"), "")
	assert.Error(t, err)

	empty := workbook(t, map[string][][]any{"Empty": {}})
	_, err = ParseXLSX(empty, "")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestParseXLS_Corrupt(t *testing.T) {
	_, err := ParseXLS([]byte("definitely not BIFF"), "")
	assert.Error(t, err)
}

func TestBuildTable(t *testing.T) {
	rows := [][]string{
		nil,
		{"A", "", "C", "", ""},
		{"1", "2", "3", "4"},
		{"x"},
	}

	table, err := buildTable(rows, types.FormatXLS)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "Column_2", "C", "Column_4"}, table.Headers)
	assert.Equal(t, [][]string{{"1", "2", "3", "4"}, {"x", "", "", ""}}, table.Rows)
	assert.Equal(t, []int{3, 4}, table.RowNumbers)
}

func TestParseXLSX_KeepsHeaderlessColumns(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Tracker": {
			{"PO No", "Total Paid"},
			{"PO-1", 100, "note", nil, "late"},
			{"PO-2", 200},
		},
	})

	table, err := ParseXLSX(data, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"PO No", "Total Paid", "Column_3", "Column_4", "Column_5"}, table.Headers)
	assert.Equal(t, []string{"PO-1", "100", "note", "", "late"}, table.Rows[0])
	assert.Equal(t, []string{"PO-2", "200", "", "", ""}, table.Rows[1])
}

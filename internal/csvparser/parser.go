// =============================================================================
// Procurement Analytics - Delimited Text Parser
// =============================================================================
//
// This module parses delimited procurement exports into a raw table. It
// handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Legacy single-byte encodings (ISO-8859-1, Windows-1252)
//   - A UTF-8 byte order mark on the header row
//   - Ragged rows (short rows are padded, long rows are truncated)
//
// The first non-empty row is the header row.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/procurement-analytics/internal/config"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("file is empty")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads delimited text and returns the raw table.
//
// PARAMETERS:
//   - data: The file contents.
//   - settings: Delimiter and encoding.
//
// RETURNS:
//   - The parsed table.
//   - An error if the encoding is unknown or the text is not valid CSV.
func Parse(data []byte, settings config.CSVSettings) (*types.Table, error) {
	dec, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	var reader io.Reader = bytes.NewReader(data)
	if dec != nil {
		reader = transform.NewReader(reader, dec.NewDecoder())
	}

	csvReader := csv.NewReader(bufio.NewReader(reader))
	configureReader(csvReader, settings)

	table := &types.Table{Format: types.FormatDelimited}
	headerSeen := false

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)

		if isRowEmpty(record) {
			continue
		}

		if !headerSeen {
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], string(utf8BOM))
			}
			table.Headers = cleanHeaders(record)
			headerSeen = true
			continue
		}

		table.Rows = append(table.Rows, fitRow(record, len(table.Headers)))
		table.RowNumbers = append(table.RowNumbers, line)
	}

	if !headerSeen {
		return nil, ErrEmpty
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Exports are hand-edited; tolerate ragged rows and stray quotes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// decoderFor returns the decoder for a legacy encoding, or nil for UTF-8.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "ISO-8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "ISO-8859-15":
		return charmap.ISO8859_15, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
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

// fitRow trims cell values and pads or truncates the row to width cells.
func fitRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// Procurement Analytics - Dataset Loader
// =============================================================================
//
// The loader turns raw input bytes into a normalized Dataset.
//
// LOADING PIPELINE:
//   1. Parse the bytes into a raw table (CSV, XLSX or XLS)
//   2. Resolve headers onto the canonical schema
//   3. Verify that Amount resolved; otherwise fail with the found columns
//   4. Coerce Amount, POValue and Percent under the numeric policy
//   5. Coerce Date, or stamp every row with "now" if no date column exists
//
// Loading is deterministic: the same bytes and the same clock produce equal
// datasets. The loader keeps no state between calls.
//
// =============================================================================

package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/coerce"
	"github.com/ginjaninja78/procurement-analytics/internal/config"
	"github.com/ginjaninja78/procurement-analytics/internal/csvparser"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
	"github.com/ginjaninja78/procurement-analytics/internal/xlsxparser"
)

// =============================================================================
// INPUT AND SOURCE
// =============================================================================

// Input is one raw file to load.
type Input struct {
	// Name identifies the input (usually the file name). It is used for
	// format detection when Format is empty, and for cache keys.
	Name string

	// Format is the declared format. Empty means detect from Name.
	Format types.Format

	// Sheet selects a worksheet for spreadsheet inputs. Empty means first.
	Sheet string

	Data []byte
}

// Source loads datasets. Loader and Cache both implement it.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=loader.go Source
type Source interface {
	Load(ctx context.Context, in Input) (*Dataset, error)
}

// ReadInput reads a file from disk into an Input.
func ReadInput(path, sheet string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read input file: %w", err)
	}
	return Input{Name: filepath.Base(path), Sheet: sheet, Data: data}, nil
}

// =============================================================================
// LOADER
// =============================================================================

// Options configures a Loader.
type Options struct {
	CSV     config.CSVSettings
	Match   schema.Options
	Numeric coerce.Policy

	DayFirst bool

	// Now stamps rows when the input has no date column. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// OptionsFromConfig builds loader options from the main configuration.
func OptionsFromConfig(cfg *config.MainConfig) (Options, error) {
	policy, err := coerce.ParsePolicy(cfg.NumericFailure)
	if err != nil {
		return Options{}, err
	}

	match := schema.Options{Mode: schema.MatchMode(cfg.HeaderMatch)}
	if len(cfg.ExtraSynonyms) > 0 {
		match.ExtraSynonyms = make(map[schema.Field][]string, len(cfg.ExtraSynonyms))
		for name, synonyms := range cfg.ExtraSynonyms {
			field, ok := schema.ParseField(name)
			if !ok {
				return Options{}, fmt.Errorf("extra_synonyms: unknown field %q", name)
			}
			match.ExtraSynonyms[field] = append(match.ExtraSynonyms[field], synonyms...)
		}
	}

	return Options{
		CSV:      cfg.CSVSettings,
		Match:    match,
		Numeric:  policy,
		DayFirst: cfg.DayFirst,
	}, nil
}

// Loader runs the ingestion pipeline.
type Loader struct {
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a Loader. Zero-valued options select the defaults.
func NewLoader(opts Options) *Loader {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Numeric == "" {
		opts.Numeric = coerce.PolicyZero
	}
	if opts.Match.Mode == "" {
		opts.Match.Mode = schema.MatchStrict
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{opts: opts, logger: logger}
}

// LoadFile reads and loads a file from disk.
func (l *Loader) LoadFile(ctx context.Context, path, sheet string) (*Dataset, error) {
	in, err := ReadInput(path, sheet)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, in)
}

// Load runs the pipeline over one input.
//
// RETURNS:
//   - The normalized dataset.
//   - *ParseError if the file cannot be read as a table.
//   - *MissingColumnError if Amount cannot be resolved.
//   - *CoercionError for bad numeric cells under the strict policy.
func (l *Loader) Load(ctx context.Context, in Input) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 1: PARSE
	// =========================================================================

	table, err := l.parse(in)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: RESOLVE HEADERS
	// =========================================================================

	res := schema.Resolve(table.Headers, l.opts.Match)
	for raw, canonical := range res.Renames {
		l.logger.Debug("renamed column", "from", raw, "to", canonical)
	}

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	if !res.Has(schema.Amount) {
		return nil, &MissingColumnError{
			Field:  schema.Amount,
			Column: schema.ColumnFor(schema.Amount),
			Found:  append([]string(nil), res.Headers...),
		}
	}

	// =========================================================================
	// STEP 4-5: COERCE
	// =========================================================================

	ds := &Dataset{
		Columns:    append([]string(nil), res.Headers...),
		Resolution: res,
		Source: SourceInfo{
			Name:   in.Name,
			Format: table.Format,
			Sheet:  table.Sheet,
			Hash:   HashBytes(in.Data),
		},
		Stats: CoercionStats{NumericFailures: make(map[schema.Field]int)},
	}

	synthesize := !res.Has(schema.Date)
	var now time.Time
	if synthesize {
		now = l.opts.Now()
		ds.Columns = append(ds.Columns, schema.ColumnFor(schema.Date))
		ds.Stats.DateSynthesized = true
	}

	dateOpts := coerce.DateOptions{
		ExcelSerial: table.Format.IsSpreadsheet(),
		DayFirst:    l.opts.DayFirst,
	}

	ds.Records = make([]Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec, err := l.buildRecord(table, res, i, row, &ds.Stats)
		if err != nil {
			return nil, err
		}

		if synthesize {
			rec.Date = now
			rec.DateValid = true
		} else {
			rec.Date, rec.DateValid = coerce.Date(row[res.Column(schema.Date)], dateOpts)
			if !rec.DateValid {
				ds.Stats.InvalidDates++
			}
		}

		ds.Records = append(ds.Records, rec)
	}

	l.logger.Info("dataset loaded",
		"name", in.Name,
		"format", string(table.Format),
		"rows", len(ds.Records),
		"renamed", len(res.Renames),
		"missing", len(res.Missing()),
		"invalid_dates", ds.Stats.InvalidDates,
		"date_synthesized", ds.Stats.DateSynthesized,
	)
	for field, n := range ds.Stats.NumericFailures {
		l.logger.Warn("numeric cells replaced with 0", "field", string(field), "count", n)
	}

	return ds, nil
}

// parse dispatches to the reader for the input's format.
func (l *Loader) parse(in Input) (*types.Table, error) {
	format := in.Format
	if format == "" {
		detected, err := types.DetectFormat(in.Name)
		if err != nil {
			return nil, &ParseError{Name: in.Name, Err: err}
		}
		format = detected
	}

	var (
		table *types.Table
		err   error
	)
	switch format {
	case types.FormatDelimited:
		table, err = csvparser.Parse(in.Data, l.opts.CSV)
	case types.FormatXLSX:
		table, err = xlsxparser.ParseXLSX(in.Data, in.Sheet)
	case types.FormatXLS:
		table, err = xlsxparser.ParseXLS(in.Data, in.Sheet)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &ParseError{Name: in.Name, Format: format, Err: err}
	}

	return table, nil
}

// numericFields are coerced under the numeric policy.
var numericFields = []schema.Field{schema.Amount, schema.POValue, schema.Percent}

// buildRecord converts one raw row, leaving the date to the caller.
func (l *Loader) buildRecord(table *types.Table, res *schema.Resolution, i int, row []string, stats *CoercionStats) (Record, error) {
	rec := Record{
		Row:    rowNumber(table, i),
		Fields: make(map[string]string, len(row)),
	}

	for c, header := range res.Headers {
		if _, dup := rec.Fields[header]; !dup {
			rec.Fields[header] = row[c]
		}
	}

	for _, field := range numericFields {
		idx := res.Column(field)
		if idx < 0 {
			continue
		}
		cell := row[idx]

		value, replaced, err := l.opts.Numeric.Apply(cell)
		if err != nil {
			return Record{}, &CoercionError{
				Row:    rec.Row,
				Column: res.Headers[idx],
				Value:  cell,
				Err:    err,
			}
		}
		if replaced {
			stats.NumericFailures[field]++
		}

		switch field {
		case schema.Amount:
			rec.Amount = value
		case schema.POValue:
			rec.POValue = value
		case schema.Percent:
			rec.Percent = value
		}
	}

	rec.VendorName = textCell(row, res, schema.VendorName)
	rec.ProjectManager = textCell(row, res, schema.ProjectManager)
	rec.PONumber = textCell(row, res, schema.PONumber)
	rec.PRNumber = textCell(row, res, schema.PRNumber)

	return rec, nil
}

func textCell(row []string, res *schema.Resolution, f schema.Field) string {
	if idx := res.Column(f); idx >= 0 {
		return row[idx]
	}
	return ""
}

func rowNumber(table *types.Table, i int) int {
	if i < len(table.RowNumbers) {
		return table.RowNumbers[i]
	}
	return i + 2
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

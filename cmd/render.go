package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/report"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
)

// currencyLabel prefixes amounts in text output.
const currencyLabel = "RM"

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("%s %.2f", currencyLabel, v)
}

// =============================================================================
// TEXT OUTPUT
// =============================================================================

func writeTextReport(out io.Writer, view filter.View, s report.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	ds := view.Dataset

	fmt.Fprintf(tw, "Procurement Report: %s (%s, %d rows)\n", ds.Source.Name, ds.Source.Format, ds.Len())
	fmt.Fprintf(tw, "Filters: %s\n", describeCriteria(view.Criteria))
	fmt.Fprintf(tw, "Project managers: %s\n", strings.Join(pmChoices(ds), ", "))
	fmt.Fprintf(tw, "Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))

	if s.Rows == 0 {
		fmt.Fprintln(tw, "\nNo records match the selected filters.")
		return tw.Flush()
	}

	section(tw, "KEY METRICS")
	fmt.Fprintf(tw, "  Records\t%d\n", s.Rows)
	fmt.Fprintf(tw, "  Total Paid\t%s\n", money(s.Totals.Amount))
	fmt.Fprintf(tw, "  Total PO Value\t%s\n", money(s.Totals.POValue))
	fmt.Fprintf(tw, "  Outstanding\t%s\n", money(s.Totals.Outstanding))
	fmt.Fprintf(tw, "  Unique Vendors\t%d\n", s.UniqueVendors)
	fmt.Fprintf(tw, "  Pending POs\t%d\n", s.Pending)

	section(tw, "SPEND BY PROJECT MANAGER")
	for _, g := range s.SpendByPM {
		fmt.Fprintf(tw, "  %s\t%s\t%d POs\n", g.Key, money(g.Sum), g.Count)
	}

	section(tw, fmt.Sprintf("TOP %d VENDORS", len(s.TopVendors)))
	for i, g := range s.TopVendors {
		fmt.Fprintf(tw, "  %d. %s\t%s\n", i+1, g.Key, money(g.Sum))
	}

	section(tw, "MONTHLY CASH FLOW")
	fmt.Fprintln(tw, "  Month\tPaid\tPO Value\tOutstanding")
	for _, m := range s.Monthly {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.Month, money(m.Paid), money(m.POValue), money(m.Outstanding))
	}
	if s.Undated > 0 {
		fmt.Fprintf(tw, "  (%d rows without a valid date not shown)\n", s.Undated)
	}

	section(tw, "AGING (PENDING POs)")
	for _, b := range s.Aging {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", b.Label, b.Count, money(b.POValue))
	}

	section(tw, "BUDGET VS ACTUAL")
	fmt.Fprintln(tw, "  Project Manager\tBudget\tActual\tVariance")
	for _, l := range s.Budget {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", l.ProjectManager, money(l.Budget), money(l.Actual), money(l.Variance))
	}

	writeDataQuality(tw, ds)

	return tw.Flush()
}

// pmChoices lists the values --pm accepts, "All" first.
func pmChoices(ds *dataset.Dataset) []string {
	return append([]string{"All"}, filter.ProjectManagers(ds)...)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

// writeDataQuality lists what ingestion had to absorb.
func writeDataQuality(w io.Writer, ds *dataset.Dataset) {
	var notes []string
	if ds.Stats.DateSynthesized {
		notes = append(notes, "no date column found; every row is dated at load time")
	}
	if ds.Stats.InvalidDates > 0 {
		notes = append(notes, fmt.Sprintf("%d rows with an unparseable date", ds.Stats.InvalidDates))
	}
	if !ds.Has(schema.Percent) {
		notes = append(notes, "no payment % column found; every PO counts as pending")
	}

	fields := make([]string, 0, len(ds.Stats.NumericFailures))
	for f := range ds.Stats.NumericFailures {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		n := ds.Stats.NumericFailures[schema.Field(f)]
		notes = append(notes, fmt.Sprintf("%d %s cells were not numeric and count as 0", n, schema.ColumnFor(schema.Field(f))))
	}

	if len(notes) == 0 {
		return
	}
	section(w, "DATA QUALITY")
	for _, n := range notes {
		fmt.Fprintf(w, "  - %s\n", n)
	}
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

type jsonSource struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Sheet  string `json:"sheet,omitempty"`
	Hash   string `json:"sha256"`
	Rows   int    `json:"rows"`
}

type jsonFilters struct {
	ProjectManager string  `json:"project_manager,omitempty"`
	VendorContains string  `json:"vendor_contains,omitempty"`
	Status         string  `json:"status"`
	Threshold      float64 `json:"pending_threshold"`
}

type jsonQuality struct {
	NumericFailures map[string]int `json:"numeric_failures"`
	InvalidDates    int            `json:"invalid_dates"`
	DateSynthesized bool           `json:"date_synthesized"`
	Missing         []string       `json:"missing_fields"`
}

type jsonReport struct {
	Source          jsonSource     `json:"source"`
	ProjectManagers []string       `json:"project_managers"`
	Filters         jsonFilters    `json:"filters"`
	Summary         report.Summary `json:"summary"`
	Quality         jsonQuality    `json:"data_quality"`
}

func writeJSONReport(out io.Writer, view filter.View, s report.Summary) error {
	ds := view.Dataset

	status := view.Criteria.Status
	if status == "" {
		status = filter.StatusAll
	}

	quality := jsonQuality{
		NumericFailures: make(map[string]int, len(ds.Stats.NumericFailures)),
		InvalidDates:    ds.Stats.InvalidDates,
		DateSynthesized: ds.Stats.DateSynthesized,
		Missing:         []string{},
	}
	for f, n := range ds.Stats.NumericFailures {
		quality.NumericFailures[string(f)] = n
	}
	if ds.Resolution != nil {
		for _, f := range ds.Resolution.Missing() {
			quality.Missing = append(quality.Missing, string(f))
		}
	}

	doc := jsonReport{
		Source: jsonSource{
			Name:   ds.Source.Name,
			Format: string(ds.Source.Format),
			Sheet:  ds.Source.Sheet,
			Hash:   ds.Source.Hash,
			Rows:   ds.Len(),
		},
		Filters: jsonFilters{
			ProjectManager: view.Criteria.ProjectManager,
			VendorContains: view.Criteria.VendorContains,
			Status:         string(status),
			Threshold:      view.Threshold(),
		},
		ProjectManagers: append([]string{}, filter.ProjectManagers(ds)...),
		Summary:         s,
		Quality:         quality,
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/procurement-analytics/internal/config"
	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/report"
	"github.com/ginjaninja78/procurement-analytics/pkg/logger"
)

// =============================================================================
// SHARED FLAGS
// =============================================================================

// viewFlags are the input and filter flags shared by report and export.
type viewFlags struct {
	sheet  string
	pm     string
	vendor string
	status string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read from XLSX/XLS inputs (default: first sheet)")
	cmd.Flags().StringVar(&f.pm, "pm", "", "Only include POs of this project manager (exact match)")
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "Only include vendors whose name contains this text (case-insensitive)")
	cmd.Flags().StringVar(&f.status, "status", "all", "Payment status: all, paid or pending")
}

// criteria builds filter criteria from the flags and configuration.
func (f *viewFlags) criteria(cfg *config.MainConfig) (filter.Criteria, error) {
	status, err := filter.ParseStatus(f.status)
	if err != nil {
		return filter.Criteria{}, err
	}
	pm := strings.TrimSpace(f.pm)
	if strings.EqualFold(pm, "All") {
		pm = ""
	}
	return filter.Criteria{
		ProjectManager: pm,
		VendorContains: strings.TrimSpace(f.vendor),
		Status:         status,
		Threshold:      cfg.PendingThreshold,
	}, nil
}

// describeCriteria renders the active filters for report headers.
func describeCriteria(c filter.Criteria) string {
	pm := c.ProjectManager
	if pm == "" {
		pm = "All"
	}
	vendor := c.VendorContains
	if vendor == "" {
		vendor = "*"
	}
	status := c.Status
	if status == "" {
		status = filter.StatusAll
	}
	return fmt.Sprintf("pm=%s vendor=%s status=%s", pm, vendor, status)
}

// =============================================================================
// LOADING
// =============================================================================

func newLoader(cfg *config.MainConfig) (*dataset.Loader, error) {
	opts, err := dataset.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts.Logger = slog.Default()
	return dataset.NewLoader(opts), nil
}

// loadDataset reads a file and loads it through source. Errors are returned
// unlogged; Execute prints them once.
func loadDataset(ctx context.Context, source dataset.Source, path, sheet string) (*dataset.Dataset, error) {
	in, err := dataset.ReadInput(path, sheet)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "input read", "bytes", len(in.Data))
	return source.Load(ctx, in)
}

func reportOptions(cfg *config.MainConfig) (report.Options, error) {
	policy, err := report.ParseAgingPolicy(cfg.UndatedAging)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{TopVendors: cfg.TopVendors, Aging: policy}, nil
}

// =============================================================================
// Procurement Analytics - Report Command
// =============================================================================
//
// This file defines the 'report' command, which loads one procurement export,
// applies the filter flags and prints every dashboard view.
//
// COMMAND USAGE:
//   procurement report FILE [flags]
//
// FLAGS:
//   --pm        Only include POs of this project manager
//   --vendor    Only include vendors whose name contains this text
//   --status    all, paid or pending
//   --sheet     Worksheet to read from spreadsheet inputs
//   --format    text or json
//   --watch     Re-read FILE on this interval and reprint when it changes
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/report"
	"github.com/ginjaninja78/procurement-analytics/pkg/logger"
)

var (
	reportFlags  viewFlags
	reportFormat string
	reportWatch  time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Print the procurement report for an export file",
	Long: `Load a procurement export, normalize its headers and print the key metrics,
spend by project manager, top vendors, monthly cash flow, aging of pending
POs and budget vs actual.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args[0])
	},
}

func init() {
	reportFlags.register(reportCmd)
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text or json")
	reportCmd.Flags().DurationVar(&reportWatch, "watch", 0, "Re-read the file on this interval and reprint when it changes (e.g. 30s)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, path string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", reportFormat)
	}

	criteria, err := reportFlags.criteria(appConfig)
	if err != nil {
		return err
	}
	opts, err := reportOptions(appConfig)
	if err != nil {
		return err
	}
	loader, err := newLoader(appConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithSource(logger.WithCommand(ctx, "report"), path)

	w := &watcher{source: dataset.NewCache(loader), path: path, sheet: reportFlags.sheet}
	out := cmd.OutOrStdout()

	ds, _, err := w.poll(ctx)
	if err != nil {
		return err
	}
	if err := printReport(ctx, out, ds, criteria, opts); err != nil || reportWatch <= 0 {
		return err
	}

	// =========================================================================
	// WATCH MODE
	// =========================================================================

	logger.Info(ctx, "watching for changes", "interval", reportWatch.String())
	ticker := time.NewTicker(reportWatch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		case <-ticker.C:
			ds, changed, err := w.poll(ctx)
			if err != nil {
				logger.Warn(ctx, "failed to reload input", "error", err)
				continue
			}
			if !changed {
				continue
			}
			if err := printReport(ctx, out, ds, criteria, opts); err != nil {
				return err
			}
		}
	}
}

// watcher re-reads one input through a memoizing source. Unchanged bytes are
// served from the cache.
type watcher struct {
	source dataset.Source
	path   string
	sheet  string

	lastHash string
}

// poll loads the input and reports whether its content differs from the
// previous successful poll.
func (w *watcher) poll(ctx context.Context) (*dataset.Dataset, bool, error) {
	ds, err := loadDataset(ctx, w.source, w.path, w.sheet)
	if err != nil {
		return nil, false, err
	}

	changed := ds.Source.Hash != w.lastHash
	w.lastHash = ds.Source.Hash
	return ds, changed, nil
}

// printReport renders the report for one loaded dataset.
func printReport(ctx context.Context, out io.Writer, ds *dataset.Dataset, criteria filter.Criteria, opts report.Options) error {
	view := filter.Apply(ds, criteria)
	opts.Now = time.Now()
	summary := report.Summarize(view, opts)

	logger.Debug(ctx, "report computed", "rows", summary.Rows, "pending", summary.Pending)

	if reportFormat == "json" {
		return writeJSONReport(out, view, summary)
	}
	return writeTextReport(out, view, summary)
}

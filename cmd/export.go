// =============================================================================
// Procurement Analytics - Export Command
// =============================================================================
//
// This file defines the 'export' command, which writes the filtered records
// of one procurement export to the output directory.
//
// COMMAND USAGE:
//   procurement export FILE [flags]
//
// FLAGS:
//   --type      csv (filtered records) or xlsx (report workbook)
//   --out       Output directory (default: output_dir from config)
//   --pm, --vendor, --status, --sheet   Same as 'report'
//
// OUTPUT NAMING:
//   The file name comes from export_name_format, e.g.
//   tracker_export_20260301_093000.csv
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/procurement-analytics/internal/config"
	"github.com/ginjaninja78/procurement-analytics/internal/export"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/pkg/logger"
	"github.com/ginjaninja78/procurement-analytics/pkg/utils"
)

var (
	exportFlags viewFlags
	exportType  string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the filtered records as CSV or an XLSX report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args[0])
	},
}

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportType, "type", "csv", "Export type: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default: output_dir from config)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, path string) error {
	if exportType != "csv" && exportType != "xlsx" {
		return fmt.Errorf("unknown export type %q (want csv or xlsx)", exportType)
	}

	criteria, err := exportFlags.criteria(appConfig)
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

	ctx := logger.WithSource(logger.WithCommand(cmd.Context(), "export"), path)

	ds, err := loadDataset(ctx, loader, path, exportFlags.sheet)
	if err != nil {
		return err
	}
	view := filter.Apply(ds, criteria)

	now := time.Now()
	target, err := exportPath(appConfig, exportOut, path, exportType, now)
	if err != nil {
		return err
	}

	err = writeFile(target, func(w io.Writer) error {
		if exportType == "xlsx" {
			opts.Now = now
			return export.WriteWorkbook(w, view, export.WorkbookOptions{Report: opts})
		}
		return export.WriteCSV(w, view)
	})
	if err != nil {
		return err
	}

	size, err := utils.GetFileSize(target)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}
	logger.Info(ctx, "export written", "path", target, "rows", view.Len(), "bytes", size)
	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

// exportPath builds the output path and makes sure its directory exists. An
// existing file at that path is never overwritten.
func exportPath(cfg *config.MainConfig, dir, input, ext string, now time.Time) (string, error) {
	if dir == "" {
		dir = cfg.OutputDir
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}

	name := utils.GenerateOutputFileName(cfg.ExportNameFormat, ext, now, map[string]string{
		"name": utils.BaseName(input),
	})
	target := filepath.Join(dir, name)
	if utils.FileExists(target) {
		return "", fmt.Errorf("output file %s already exists", target)
	}
	return target, nil
}

// writeFile creates path and removes it again if write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// =============================================================================
// Procurement Analytics - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which shows how a file's headers
// map onto the canonical schema without loading any rows. Use it when a
// report fails with a missing column error.
//
// COMMAND USAGE:
//   procurement inspect FILE [--sheet NAME]
//
// OUTPUT:
//   File:    tracker.csv (csv, 120 rows)
//   Columns: PO No, Vendor, Total Paid, ...
//
//   FIELD           COLUMN        SOURCE HEADER
//   Amount          App_Amount    Total Paid
//   POValue         App_PO_Value  (missing)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/pkg/logger"
)

var inspectSheet string

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show how a file's headers map onto the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "Worksheet to read from XLSX/XLS inputs (default: first sheet)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, path string) error {
	loader, err := newLoader(appConfig)
	if err != nil {
		return err
	}

	ctx := logger.WithSource(logger.WithCommand(cmd.Context(), "inspect"), path)

	in, err := dataset.ReadInput(path, inspectSheet)
	if err != nil {
		return err
	}
	info, err := loader.Inspect(ctx, in)
	if err != nil {
		return err
	}

	return writeInspection(cmd.OutOrStdout(), info)
}

func writeInspection(out io.Writer, info *dataset.Inspection) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	res := info.Resolution

	fmt.Fprintf(tw, "File:    %s (%s, %d rows)\n", info.Name, info.Format, info.Rows)
	if info.Sheet != "" {
		fmt.Fprintf(tw, "Sheet:   %s\n", info.Sheet)
	}
	fmt.Fprintf(tw, "Columns: %s\n\n", strings.Join(res.Raw, ", "))

	fmt.Fprintln(tw, "FIELD\tCOLUMN\tSOURCE HEADER")
	for _, def := range schema.Canonical {
		source := res.SourceHeader(def.Field)
		if !res.Has(def.Field) {
			source = "(missing)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Field, def.Column, source)
	}

	if info.Loadable() {
		fmt.Fprintln(tw, "\nStatus:  OK")
	} else {
		fmt.Fprintf(tw, "\nStatus:  cannot load, required column %s not found\n", schema.ColumnFor(schema.Amount))
	}

	return tw.Flush()
}

// =============================================================================
// Procurement Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'report', 'export') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (procurement)
//   ├── reportCmd  (procurement report FILE)
//   ├── exportCmd  (procurement export FILE)
//   ├── inspectCmd (procurement inspect FILE)
//   └── versionCmd (procurement version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the main configuration (--config, optional when left at default)
//   2. Initializes slog from log_level / log_format (--verbose forces debug)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/procurement-analytics/internal/config"
	"github.com/ginjaninja78/procurement-analytics/pkg/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded by the root command.
var appConfig = config.Default()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "procurement",
	Short: "Procurement Analytics - Reports over vendor PO/payment exports",
	Long: `Procurement Analytics loads a procurement export (XLSX, XLS or CSV) whose
headers follow any of the known vendor spellings, normalizes it into a
canonical schema and reports totals, vendor and project manager breakdowns,
monthly cash flow and aging of pending POs.

Example Usage:
  procurement report tracker.xlsx                    # Full report as text
  procurement report tracker.csv --pm "Alice" --status pending
  procurement export tracker.xlsx --type xlsx        # Write a report workbook
  procurement inspect tracker.csv                    # Show header resolution`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initApp loads the configuration and sets up logging.
func initApp(cmd *cobra.Command) error {
	// A missing config.yaml is fine unless the user named one explicitly.
	optional := !cmd.Flags().Changed("config")

	cfg, err := config.LoadMainConfig(cfgFile, optional)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(&logger.Config{Level: level, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})

	appConfig = cfg
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// Procurement Analytics - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file.
// Every setting has a default, so running without a config file is valid.
//
// CONFIGURATION AREAS:
//   1. Output: where exports go and how they are named
//   2. Logging: level and format
//   3. Input parsing: CSV delimiter and encoding
//   4. Ingestion policy: header matching, numeric failure handling
//   5. Reporting: pending threshold, undated aging policy, top-N size
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where exports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ExportNameFormat defines the export file name (without extension).
	// Placeholders:
	//   {name}      - Base name of the input file
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{name}_export_{timestamp}"
	ExportNameFormat string `yaml:"export_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// CSVSettings contains settings for parsing delimited input.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// DayFirst parses ambiguous dates such as 02/01/2026 as 2 January.
	// Default: false (month first)
	DayFirst bool `yaml:"day_first"`

	// =========================================================================
	// INGESTION POLICY
	// =========================================================================

	// HeaderMatch controls how raw headers are compared with the synonym
	// table. Valid values: "strict", "case_insensitive"
	// Default: "strict"
	HeaderMatch string `yaml:"header_match"`

	// ExtraSynonyms appends header spellings per canonical field. Keys are
	// field names (Amount, POValue, Percent, Date, VendorName, ProjectManager).
	//
	// Example:
	//   extra_synonyms:
	//     VendorName: ["VENDOR NAME", "Supplier"]
	ExtraSynonyms map[string][]string `yaml:"extra_synonyms"`

	// NumericFailure decides what happens to unparseable numeric cells.
	// Valid values: "zero" (substitute 0.0), "strict" (fail the load)
	// Default: "zero"
	NumericFailure string `yaml:"numeric_failure"`

	// =========================================================================
	// REPORTING SETTINGS
	// =========================================================================

	// PendingThreshold is the payment percentage below which a PO counts as
	// pending. 99.9 absorbs rounding near 100%.
	// Default: 99.9
	PendingThreshold float64 `yaml:"pending_threshold"`

	// UndatedAging decides where pending rows without a valid date are aged.
	// Valid values: "fresh" (0 days, first bucket), "separate" (own bucket)
	// Default: "fresh"
	UndatedAging string `yaml:"undated_aging"`

	// TopVendors is the size of the vendor concentration list.
	// Default: 10
	TopVendors int `yaml:"top_vendors"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing delimited files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" (tab), ";" (semicolon)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Supported values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{PendingThreshold: 99.9}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//   - optional: When true, a missing file yields the defaults instead of an
//     error. The CLI sets this when --config was not given explicitly.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed, or validated.
func LoadMainConfig(configPath string, optional bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults so that keys absent from the file keep their
	// default while explicit values (including 0) are validated as given.
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(config)

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ExportNameFormat == "" {
		config.ExportNameFormat = "{name}_export_{timestamp}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
	if config.HeaderMatch == "" {
		config.HeaderMatch = "strict"
	}
	if config.NumericFailure == "" {
		config.NumericFailure = "zero"
	}
	if config.UndatedAging == "" {
		config.UndatedAging = "fresh"
	}
	if config.TopVendors == 0 {
		config.TopVendors = 10
	}
}

// validateMainConfig checks enumerated settings.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", config.LogLevel)
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q is not one of text, json", config.LogFormat)
	}

	switch config.HeaderMatch {
	case "strict", "case_insensitive":
	default:
		return fmt.Errorf("header_match %q is not one of strict, case_insensitive", config.HeaderMatch)
	}

	switch config.NumericFailure {
	case "zero", "strict":
	default:
		return fmt.Errorf("numeric_failure %q is not one of zero, strict", config.NumericFailure)
	}

	switch config.UndatedAging {
	case "fresh", "separate":
	default:
		return fmt.Errorf("undated_aging %q is not one of fresh, separate", config.UndatedAging)
	}

	if config.PendingThreshold <= 0 || config.PendingThreshold > 100 {
		return fmt.Errorf("pending_threshold %v must be greater than 0 and at most 100", config.PendingThreshold)
	}

	if config.TopVendors < 0 {
		return fmt.Errorf("top_vendors must not be negative")
	}

	return nil
}

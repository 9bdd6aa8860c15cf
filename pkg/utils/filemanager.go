// =============================================================================
// Procurement Analytics - File Manager Utility
// =============================================================================
//
// This module provides the small set of file helpers the CLI needs:
//   - Output directory management
//   - Export file naming
//   - File existence and size checks
//
// EXPORT NAMING:
//   Export names are built from a format string with placeholders:
//     {name}      - Input file name without extension
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     {uuid}      - A random UUID
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates a directory and its parents if they don't exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName builds an export file name.
//
// PARAMETERS:
//   - format: The name format with placeholders (see package comment).
//   - ext: The extension to ensure, with or without a leading dot.
//   - now: The time used for {timestamp}, {date} and {time}.
//   - params: Extra placeholder values, keyed without braces.
//
// RETURNS:
//   - The file name (no directory).
//
// EXAMPLE:
//
//	GenerateOutputFileName("{name}_export_{timestamp}", "csv", now,
//	    map[string]string{"name": "tracker"})
//	// tracker_export_20260301_093000.csv
func GenerateOutputFileName(format, ext string, now time.Time, params map[string]string) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" {
		ext = "." + strings.TrimPrefix(ext, ".")
		if !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
			result += ext
		}
	}

	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

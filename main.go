// =============================================================================
// Procurement Analytics - Main Entry Point
// =============================================================================
//
// USAGE:
//   procurement report FILE   - Print the procurement report for a file
//   procurement export FILE   - Write the filtered data as CSV or an XLSX report
//   procurement inspect FILE  - Show how the file's headers were resolved
//   procurement version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Ingestion, filtering, aggregation and export
//   - pkg/       : Logging and file helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/procurement-analytics/cmd"
)

func main() {
	cmd.Execute()
}

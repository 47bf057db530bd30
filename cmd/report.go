package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// reportCmd runs the full team performance analysis.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the full team performance report.",
	Long: `Run every metric module and print a merged per-member report.

Combines snapshot metrics (cycle time, estimation accuracy, backlog health,
work patterns, state distribution, rework) with deep metrics derived from
field-change history (time in state, flow efficiency, daily WIP, sprints).

Deep metrics need update events. Online datasets fetch them automatically;
offline datasets need --updates-file alongside --items-file.

Examples:
  # Analyze a team over the last quarter
  teampulse report --org-url https://dev.azure.com/myorg -p MyProject -t Platform --start "3 months ago"

  # Offline analysis from exported JSON files
  teampulse report --items-file items.json --updates-file updates.json

  # Export findings to CSV for tracking
  teampulse report --output csv --output-file report.csv

  # Columnar export for DuckDB/pandas
  teampulse report --output parquet --output-file report.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}

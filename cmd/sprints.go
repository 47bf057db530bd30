package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// sprintsCmd shows the sprint analytics view.
var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "Show per-sprint completion, unplanned work and velocity trend.",
	Long: `Group work items by sprint and measure delivery predictability.

Per sprint: total and completed items, completion rate, unplanned additions
(items that entered the sprint well after creation), carryover and velocity.
Across sprints: a velocity trend (increasing, decreasing or stable) from
comparing the earlier half of sprints against the later half.

Requires update events to detect when items entered a sprint.

Examples:
  # Sprint report over the last six months
  teampulse sprints --org-url https://dev.azure.com/myorg -p MyProject -t Platform --start "6 months ago"

  # Offline with exported history
  teampulse sprints --items-file items.json --updates-file updates.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSprints(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run sprint analysis", err)
		}
	},
}

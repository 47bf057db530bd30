package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// wipCmd shows the daily WIP view.
var wipCmd = &cobra.Command{
	Use:   "wip",
	Short: "Show daily work-in-progress counts per member.",
	Long: `Reconstruct how many items each member had in progress on every day
of the analysis window by replaying assignment and state history.

Reports average and peak WIP per member, days spent over the moderate and
high thresholds, and the team's peak load day. High sustained WIP usually
means too much parallel work and slow delivery.

Requires update events for ownership reconstruction.

Examples:
  # Daily WIP for a team
  teampulse wip --org-url https://dev.azure.com/myorg -p MyProject -t Platform

  # Offline with exported history
  teampulse wip --items-file items.json --updates-file updates.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWIP(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run WIP analysis", err)
		}
	},
}

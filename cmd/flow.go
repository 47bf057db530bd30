package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// flowCmd shows the flow efficiency view.
var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Show flow efficiency per member and for the team.",
	Long: `Measure how much of each work item's lifetime was spent actively
worked versus waiting.

Flow efficiency is active days divided by total days, averaged per member
over their completed items. Ratings: excellent (40%+), good (25%+),
fair (15%+), poor below that.

Requires update events for state interval reconstruction.

Examples:
  # Team flow over the default window
  teampulse flow --org-url https://dev.azure.com/myorg -p MyProject -t Platform

  # Offline with exported history
  teampulse flow --items-file items.json --updates-file updates.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlow(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run flow analysis", err)
		}
	},
}

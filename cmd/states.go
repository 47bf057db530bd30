package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// statesCmd shows the state distribution view.
var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Show how work items are distributed across workflow states.",
	Long: `Count work items by their current state, overall and broken down by
work item type and assignee.

Useful for spotting pile-ups: a large count in a wait state like 'Blocked'
or 'Ready for Review' points at a process bottleneck.

Works on snapshot data alone; no update events needed.

Examples:
  # Current state distribution
  teampulse states --org-url https://dev.azure.com/myorg -p MyProject -t Platform

  # Offline snapshot
  teampulse states --items-file items.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStates(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run state analysis", err)
		}
	},
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjaygg/teampulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the TeamPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to run team performance analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol runs over stdio, so setup output must stay on stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

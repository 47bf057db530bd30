// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arjaygg/teampulse/internal/contract"
)

// NewMCPServer initializes and configures the TeamPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"TeamPulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_team_report ---
	s.AddTool(mcp.NewTool("get_team_report",
		mcp.WithDescription("Run the full team performance analysis and return every metric module's results."),
		mcp.WithString("project", mcp.Description("Project name (defaults to the configured project).")),
		mcp.WithString("team", mcp.Description("Team name used for area path scoping.")),
		mcp.WithString("lookback", mcp.Description("Time window ending now (e.g., '30d', '12w', '6m', '1y').")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned per module.")),
	), h.handleGetTeamReport)

	// --- 2. Tool: get_flow_efficiency ---
	s.AddTool(mcp.NewTool("get_flow_efficiency",
		mcp.WithDescription("Compute flow efficiency (active vs wait time) per member and for the team."),
		mcp.WithString("project", mcp.Description("Project name.")),
		mcp.WithString("team", mcp.Description("Team name.")),
		mcp.WithString("lookback", mcp.Description("Time window ending now (e.g., '30d', '6m').")),
	), h.handleGetFlowEfficiency)

	// --- 3. Tool: get_daily_wip ---
	s.AddTool(mcp.NewTool("get_daily_wip",
		mcp.WithDescription("Reconstruct daily work-in-progress counts per member over the analysis window."),
		mcp.WithString("project", mcp.Description("Project name.")),
		mcp.WithString("team", mcp.Description("Team name.")),
		mcp.WithString("lookback", mcp.Description("Time window ending now (e.g., '30d', '6m').")),
	), h.handleGetDailyWIP)

	// --- 4. Tool: get_sprint_report ---
	s.AddTool(mcp.NewTool("get_sprint_report",
		mcp.WithDescription("Aggregate per-sprint completion, unplanned work, carryover and velocity trend."),
		mcp.WithString("project", mcp.Description("Project name.")),
		mcp.WithString("team", mcp.Description("Team name.")),
		mcp.WithString("lookback", mcp.Description("Time window ending now (e.g., '6m', '1y').")),
	), h.handleGetSprintReport)

	return s
}

// StartMCPServer starts the TeamPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

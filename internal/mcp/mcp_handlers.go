package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arjaygg/teampulse/core"
	"github.com/arjaygg/teampulse/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configFromRequest clones the base config and applies the shared
// project, team and lookback arguments.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project", ""); p != "" {
		cfg.Project = p
	}
	if t := request.GetString("team", ""); t != "" {
		cfg.Team = t
	}
	if lookback := request.GetString("lookback", ""); lookback != "" {
		d, err := contract.ParseLookbackDuration(lookback)
		if err != nil {
			return nil, fmt.Errorf("invalid lookback: %w", err)
		}
		end := time.Now().UTC()
		cfg = cfg.CloneWithTimeWindow(end.Add(-d), end)
	}
	return cfg, nil
}

func (h *toolHandler) handleGetTeamReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetAnalysisResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFlowEfficiency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.GetAnalysisResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Flow == nil {
		return mcp.NewToolResultError("flow efficiency needs update events; provide --updates-file or an online dataset"), nil
	}

	jsonData, _ := json.MarshalIndent(result.Flow, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDailyWIP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.GetAnalysisResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.WIP == nil {
		return mcp.NewToolResultError("daily WIP needs update events; provide --updates-file or an online dataset"), nil
	}

	jsonData, _ := json.MarshalIndent(result.WIP, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprintReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.GetAnalysisResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Sprints == nil {
		return mcp.NewToolResultError("sprint analytics needs update events; provide --updates-file or an online dataset"), nil
	}

	jsonData, _ := json.MarshalIndent(result.Sprints, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/internal/contract"
	mcp_internal "github.com/arjaygg/teampulse/internal/mcp"
	"github.com/arjaygg/teampulse/schema"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Project:     "Platform",
		ResultLimit: 25,
		Workers:     1,
		Precision:   1,
		Output:      schema.JSONOut,
		Policy:      schema.DefaultStatePolicy(),
	}
}

func TestMCPServerToolRegistration(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	for _, name := range []string{"get_team_report", "get_flow_efficiency", "get_daily_wip", "get_sprint_report"} {
		assert.NotNil(t, s.GetTool(name), "tool %s should be registered", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	ctx := context.Background()

	t.Run("get_team_report invalid lookback", func(t *testing.T) {
		tool := s.GetTool("get_team_report")
		require.NotNil(t, tool, "Tool get_team_report should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_team_report",
				Arguments: map[string]any{
					"lookback": "soonish", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid lookback")
	})

	t.Run("get_flow_efficiency analysis failure surfaces as tool error", func(t *testing.T) {
		tool := s.GetTool("get_flow_efficiency")
		require.NotNil(t, tool)

		// No items file and no credentials: dataset materialization fails.
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_flow_efficiency"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

func TestMCPServerHandlers_OfflineDataset(t *testing.T) {
	dir := t.TempDir()
	itemsPath := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(itemsPath, []byte(`[
		{"id": 1, "fields": {
			"System.State": "Closed",
			"System.AssignedTo": "Jordan Rivera",
			"System.CreatedDate": "2025-01-01T00:00:00Z",
			"Microsoft.VSTS.Common.ClosedDate": "2025-01-10T00:00:00Z"
		}}
	]`), 0o644))

	cfg := baseConfig()
	cfg.ItemsFile = itemsPath

	s := mcp_internal.NewMCPServer(cfg, nil)
	ctx := context.Background()

	t.Run("get_team_report returns metrics JSON", func(t *testing.T) {
		tool := s.GetTool("get_team_report")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_team_report"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError, "a readable offline dataset should succeed")

		var result schema.AnalysisResult
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &result), "the payload should be the analysis result JSON")
		assert.Equal(t, 1, result.Items)
		assert.True(t, result.DeepSkipped, "no updates file means snapshot metrics only")
	})

	t.Run("get_daily_wip without update events", func(t *testing.T) {
		tool := s.GetTool("get_daily_wip")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_daily_wip"},
		})
		require.NoError(t, err)
		assert.True(t, res.IsError, "deep metrics need revision history")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "update events")
	})
}

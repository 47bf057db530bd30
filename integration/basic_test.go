//go:build basic

// Package integration contains end-to-end tests for the teampulse CLI.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineArgs points every command at the exported fixture dataset and
// disables persistence so the tests never touch the home directory.
func offlineArgs(extra ...string) []string {
	args := []string{
		"--items-file", "testdata/items.json",
		"--updates-file", "testdata/updates.json",
		"--start", "2025-01-01",
		"--end", "2025-02-01",
		"--cache-backend", "none",
		"--color", "no",
	}
	return append(args, extra...)
}

func TestReportCommandOffline(t *testing.T) {
	output, err := runTeampulseCommand(t, append([]string{"report"}, offlineArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Jordan R", "the report should list roster-free members by name")
}

func TestReportCommandJSON(t *testing.T) {
	output, err := runTeampulseCommand(t, append([]string{"report"}, offlineArgs("--output", "json")...)...)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result), "JSON output should be parseable")
	assert.EqualValues(t, 3, result["items"], "all fixture items should load")
}

func TestFlowCommandOffline(t *testing.T) {
	output, err := runTeampulseCommand(t, append([]string{"flow"}, offlineArgs()...)...)
	require.NoError(t, err)
	assert.NotEmpty(t, output)
}

func TestWIPCommandOffline(t *testing.T) {
	_, err := runTeampulseCommand(t, append([]string{"wip"}, offlineArgs()...)...)
	require.NoError(t, err)
}

func TestSprintsCommandOffline(t *testing.T) {
	output, err := runTeampulseCommand(t, append([]string{"sprints"}, offlineArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Sprint 1", "sprint names come from the iteration path")
}

func TestStatesCommandOffline(t *testing.T) {
	output, err := runTeampulseCommand(t, append([]string{"states"}, offlineArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Closed")
}

func TestVersionCommand(t *testing.T) {
	output, err := runTeampulseCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "teampulse")
}

func TestReportRejectsUpdatesWithoutItems(t *testing.T) {
	_, err := runTeampulseCommand(t, "report", "--updates-file", "testdata/updates.json")
	assert.Error(t, err, "an updates file without an items file must be rejected")
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func TestIsReworked(t *testing.T) {
	tests := []struct {
		reason string
		want   bool
	}{
		{"Reactivated by QA", true},
		{"reopened after review", true},
		{"REACTIVATED", true}, // matching is case-insensitive
		{"Completed", false},
		{"Moved to backlog", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			item := schema.WorkItem{Fields: map[string]any{schema.FieldReason: tt.reason}}
			assert.Equal(t, tt.want, isReworked(item), "isReworked with reason %q", tt.reason)
		})
	}
}

func TestReworkMetric(t *testing.T) {
	cfg := testConfig()
	items := []schema.WorkItem{
		testItem(3, "Jordan Rivera", "Active", map[string]any{schema.FieldReason: "Reactivated by QA"}),
		testItem(1, "Jordan Rivera", "Closed", map[string]any{schema.FieldReason: "Completed"}),
		testItem(2, "Sam Taylor", "Active", map[string]any{schema.FieldReason: "Reopened"}),
		testItem(4, "Sam Taylor", "Closed", nil),
	}

	result := reworkMetric(testDataset(items, nil), cfg)

	assert.Equal(t, 2, result.TotalReworked)
	assert.Equal(t, []int{2, 3}, result.ReworkedIDs, "reworked IDs should come back sorted")
	assert.Equal(t, 50.0, result.OverallPct)

	jordan, ok := result.Members["Jordan Rivera"]
	require.True(t, ok)
	assert.Equal(t, 2, jordan.Items)
	assert.Equal(t, 1, jordan.Reworked)
	assert.Equal(t, 50.0, jordan.RatePct)
}

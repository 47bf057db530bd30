package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func sprintItem(id int, member, state, sprint, created string) schema.WorkItem {
	return testItem(id, member, state, map[string]any{
		schema.FieldIterationPath: `Project\` + sprint,
		schema.FieldCreatedDate:   created,
	})
}

func sprintMove(id, rev int, at time.Time, sprint string) schema.UpdateEvent {
	return schema.UpdateEvent{
		WorkItemID:  id,
		Rev:         rev,
		RevisedDate: at,
		Fields: map[string]schema.FieldChange{
			schema.FieldIterationPath: {OldValue: `Project\Backlog`, NewValue: `Project\` + sprint},
		},
	}
}

func TestSprintsMetric(t *testing.T) {
	cfg := testConfig() // planning cutoff 3 days

	items := []schema.WorkItem{
		// Planned: moved into the sprint one day after creation.
		sprintItem(1, "Jordan Rivera", "Closed", "Sprint 1", "2025-01-01T00:00:00Z"),
		// Unplanned: moved in nine days after creation.
		sprintItem(2, "Jordan Rivera", "Active", "Sprint 1", "2025-01-01T00:00:00Z"),
		// Born in the sprint: no entry event, counts as planned.
		sprintItem(3, "Sam Taylor", "Closed", "Sprint 1", "2025-01-02T00:00:00Z"),
	}
	updates := []schema.UpdateEvent{
		sprintMove(1, 2, testDay(2), "Sprint 1"),
		sprintMove(2, 2, testDay(10), "Sprint 1"),
	}

	result := sprintsMetric(testDataset(items, updates), cfg)

	sprint, ok := result.Sprints["Sprint 1"]
	require.True(t, ok, "items should group under the sprint's short name")
	assert.Equal(t, 3, sprint.Total)
	assert.Equal(t, 2, sprint.Completed)
	assert.Equal(t, 1, sprint.Carryover)
	assert.Equal(t, 1, sprint.Unplanned, "only the late arrival counts as unplanned")
	assert.Equal(t, 2, sprint.Velocity)
	assert.InDelta(t, 66.7, sprint.CompletionRatePct, 0.05)
	assert.InDelta(t, 33.3, sprint.UnplannedRatioPct, 0.05)

	jordan, ok := result.Members["Jordan Rivera"]
	require.True(t, ok)
	assert.Equal(t, 1, jordan.Sprints)
	assert.Equal(t, 2.0, jordan.AvgItems)
	assert.Equal(t, 50.0, jordan.AvgCompletionRatePct)
	assert.Equal(t, "Sprint 1", jordan.BestSprint)

	assert.Equal(t, schema.StableTrend, result.VelocityTrend, "a single sprint reads as stable")
}

func TestSprintsMetricSkipsItemsOutsideSprints(t *testing.T) {
	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
	}

	result := sprintsMetric(testDataset(items, nil), testConfig())
	assert.Empty(t, result.Sprints, "items without an iteration path carry no sprint signal")
}

func TestVelocityTrendIncreasing(t *testing.T) {
	cfg := testConfig()

	// Four sprints, one week apart, with completions 1, 1, 3, 3.
	var items []schema.WorkItem
	id := 0
	for s := 1; s <= 4; s++ {
		sprint := fmt.Sprintf("Sprint %d", s)
		created := testDay(s * 7).Format(time.RFC3339)
		completed := 1
		if s > 2 {
			completed = 3
		}
		for i := 0; i < completed; i++ {
			id++
			items = append(items, sprintItem(id, "Jordan Rivera", "Closed", sprint, created))
		}
	}

	result := sprintsMetric(testDataset(items, nil), cfg)
	require.Len(t, result.Sprints, 4)
	assert.Equal(t, schema.IncreasingTrend, result.VelocityTrend, "second half mean 3 vs first half mean 1")
}

func TestVelocityTrendTooFewSprints(t *testing.T) {
	items := []schema.WorkItem{
		sprintItem(1, "Jordan Rivera", "Closed", "Sprint 1", "2025-01-01T00:00:00Z"),
		sprintItem(2, "Jordan Rivera", "Closed", "Sprint 2", "2025-01-08T00:00:00Z"),
		sprintItem(3, "Jordan Rivera", "Closed", "Sprint 3", "2025-01-15T00:00:00Z"),
	}

	result := sprintsMetric(testDataset(items, nil), testConfig())
	assert.Equal(t, schema.StableTrend, result.VelocityTrend, "fewer than four sprints is too little signal")
}

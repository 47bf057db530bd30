package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func TestTimeInStateMetric(t *testing.T) {
	cfg := testConfig()
	now := testDay(21)

	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
		testItem(2, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
		// No update history: excluded from the deep metric.
		testItem(3, "Jordan Rivera", "Active", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
	}
	updates := []schema.UpdateEvent{
		// Item 1: 2 days New, 8 days Active.
		testTransition(1, 2, testDay(3), "New", "Active"),
		testTransition(1, 3, testDay(11), "Active", "Closed"),
		// Item 2: 6 days New, 2 days Active.
		testTransition(2, 2, testDay(7), "New", "Active"),
		testTransition(2, 3, testDay(9), "Active", "Closed"),
	}

	result := timeInStateMetric(testDataset(items, updates), cfg, now)

	member, ok := result.Members["Jordan Rivera"]
	require.True(t, ok)
	assert.Equal(t, 2, member.Items)
	assert.Equal(t, 4.0, member.AvgDaysByState["New"], "average of 2 and 6")
	assert.Equal(t, 5.0, member.AvgDaysByState["Active"], "average of 8 and 2")

	// Closed averages (10+12)/2 = 11, the highest.
	assert.Equal(t, "Closed", member.Bottleneck)
	assert.Equal(t, 11.0, member.BottleneckAvgDays)

	assert.Equal(t, "Closed", result.TeamBottleneck)
	assert.Equal(t, 11.0, result.TeamAvgByState["Closed"])
}

func TestTimeInStateMetricNoTimelines(t *testing.T) {
	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Active", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
	}

	result := timeInStateMetric(testDataset(items, nil), testConfig(), testDay(10))
	assert.Empty(t, result.Members, "items without history carry no signal")
	assert.Empty(t, result.TeamAvgByState)
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func TestFlowMetric(t *testing.T) {
	cfg := testConfig()
	now := testDay(21)

	items := []schema.WorkItem{
		// 4 wait days (New), 6 active days, then 10 days sitting Closed.
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
		// Pure wait: created New, never progressed past the creation entry,
		// so the timeline stays below two entries and the item is excluded.
		testItem(2, "Jordan Rivera", "New", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
	}
	updates := []schema.UpdateEvent{
		testTransition(1, 2, testDay(5), "New", "Active"),
		testTransition(1, 3, testDay(11), "Active", "Closed"),
	}

	result := flowMetric(testDataset(items, updates), cfg, now)

	member, ok := result.Members["Jordan Rivera"]
	require.True(t, ok)
	assert.Equal(t, 1, member.Items, "items without a measurable timeline are excluded")
	assert.Equal(t, 6, member.ActiveDays)
	// 4 days in New plus 10 days in Closed, which is outside both allowlists
	// and therefore conservatively wait.
	assert.Equal(t, 14, member.WaitDays)
	assert.Equal(t, 30.0, member.AvgEfficiencyPct)
	assert.Equal(t, schema.GoodRating, member.Rating)

	assert.Equal(t, 30.0, result.AvgEfficiencyPct)
	assert.Equal(t, schema.GoodRating, result.Rating)
}

func TestFlowMetricEmpty(t *testing.T) {
	result := flowMetric(testDataset(nil, nil), testConfig(), testDay(1))
	assert.Empty(t, result.Members)
	assert.Zero(t, result.AvgEfficiencyPct)
	assert.Equal(t, schema.PoorRating, result.Rating, "no measurable items should rate Poor")
}

func TestFlowMetricExtremes(t *testing.T) {
	cfg := testConfig()
	now := testDay(11)

	items := []schema.WorkItem{
		// Every interval is an active state, so efficiency pins at 100.
		testItem(1, "Riley Chen", "Resolved", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
		// Every interval is a wait state, so efficiency pins at 0.
		testItem(2, "Sam Taylor", "Blocked", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		}),
	}
	updates := []schema.UpdateEvent{
		testTransition(1, 2, testDay(6), "In Progress", "Resolved"),
		testTransition(2, 2, testDay(6), "New", "Blocked"),
	}

	result := flowMetric(testDataset(items, updates), cfg, now)

	riley := result.Members["Riley Chen"]
	assert.Equal(t, 100.0, riley.AvgEfficiencyPct)
	assert.Equal(t, schema.ExcellentRating, riley.Rating)

	sam := result.Members["Sam Taylor"]
	assert.Equal(t, 0.0, sam.AvgEfficiencyPct)
	assert.Equal(t, schema.PoorRating, sam.Rating)
}

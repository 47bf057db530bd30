package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func TestEstimationMetric(t *testing.T) {
	cfg := testConfig() // threshold 20%
	items := []schema.WorkItem{
		// 8h estimated, 12h actual: +50% variance, underestimated.
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldOriginalEstimate: 8.0,
			schema.FieldCompletedWork:    12.0,
		}),
		// 10h estimated, 5h actual: -50% variance, overestimated.
		testItem(2, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldOriginalEstimate: 10.0,
			schema.FieldCompletedWork:    5.0,
		}),
		// 10h estimated, 11h actual: +10%, within threshold.
		testItem(3, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldOriginalEstimate: 10.0,
			schema.FieldCompletedWork:    11.0,
		}),
		// No estimate, must not count.
		testItem(4, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCompletedWork: 9.0,
		}),
	}

	result := estimationMetric(testDataset(items, nil), cfg)
	assert.Equal(t, 3, result.Overall.Count, "only items with both estimate and actual count")
	assert.Equal(t, 20.0, result.ThresholdPct)

	member, ok := result.Members["Jordan Rivera"]
	require.True(t, ok)
	assert.Equal(t, 3, member.Items)
	assert.Equal(t, 1, member.Underestimated, "+50% variance means the estimate was too low")
	assert.Equal(t, 1, member.Overestimated, "-50% variance means the estimate was too high")
	assert.Equal(t, 1, member.WithinRange)
	assert.InDelta(t, 36.7, member.AvgVariancePct, 0.05, "average of absolute variances 50, 50, 10")
}

func TestEstimationMetricEmptyDataset(t *testing.T) {
	result := estimationMetric(testDataset(nil, nil), testConfig())
	assert.Zero(t, result.Overall.Count)
	assert.Empty(t, result.Members)
}

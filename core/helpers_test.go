package core

import (
	"time"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// testConfig returns a config with stock policy and thresholds, windowed
// over January 2025.
func testConfig() *contract.Config {
	return &contract.Config{
		StartTime:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:              time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		ResultLimit:          100,
		Precision:            1,
		Policy:               schema.DefaultStatePolicy(),
		VarianceThresholdPct: 20,
		BacklogAgeDays:       30,
	}
}

func testDay(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

// testItem builds a work item snapshot assigned to the given member.
func testItem(id int, member, state string, fields map[string]any) schema.WorkItem {
	f := map[string]any{
		schema.FieldState: state,
	}
	if member != "" {
		f[schema.FieldAssignedTo] = member
	}
	for k, v := range fields {
		f[k] = v
	}
	return schema.WorkItem{ID: id, Fields: f}
}

// testTransition builds an update event moving one item between states.
func testTransition(id, rev int, at time.Time, from, to string) schema.UpdateEvent {
	return schema.UpdateEvent{
		WorkItemID:  id,
		Rev:         rev,
		RevisedDate: at,
		Fields: map[string]schema.FieldChange{
			schema.FieldState: {OldValue: from, NewValue: to},
		},
	}
}

// testDataset wires items and updates into a materialized dataset.
func testDataset(items []schema.WorkItem, updates []schema.UpdateEvent) *Dataset {
	return &Dataset{
		Items:   items,
		Updates: updates,
		ByItem:  timeline.GroupUpdates(updates),
	}
}

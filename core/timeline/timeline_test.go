package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func stateChange(rev int, at time.Time, from, to string) schema.UpdateEvent {
	return schema.UpdateEvent{
		WorkItemID:  1,
		Rev:         rev,
		RevisedDate: at,
		Fields: map[string]schema.FieldChange{
			schema.FieldState: {OldValue: from, NewValue: to},
		},
	}
}

func TestGroupUpdates(t *testing.T) {
	updates := []schema.UpdateEvent{
		{WorkItemID: 1, Rev: 3},
		{WorkItemID: 2, Rev: 1},
		{WorkItemID: 1, Rev: 1},
		{WorkItemID: 1, Rev: 2},
	}

	byItem := GroupUpdates(updates)
	require.Len(t, byItem, 2, "updates should be grouped by work item")
	require.Len(t, byItem[1], 3, "item 1 should have three updates")

	assert.Equal(t, 1, byItem[1][0].Rev, "updates should be sorted ascending by revision")
	assert.Equal(t, 2, byItem[1][1].Rev, "updates should be sorted ascending by revision")
	assert.Equal(t, 3, byItem[1][2].Rev, "updates should be sorted ascending by revision")
}

func TestBuildSeedsFromFirstRevision(t *testing.T) {
	item := schema.WorkItem{ID: 1, Fields: map[string]any{
		schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		schema.FieldState:       "Closed", // current snapshot, not the creation state
	}}
	updates := []schema.UpdateEvent{
		{WorkItemID: 1, Rev: 1, RevisedDate: day(1), Fields: map[string]schema.FieldChange{
			schema.FieldState: {NewValue: "New"},
		}},
		stateChange(2, day(3), "New", "Active"),
		stateChange(3, day(8), "Active", "Closed"),
	}

	tl := Build(item, updates)
	require.Len(t, tl, 3, "timeline should have creation entry plus two transitions")

	assert.Equal(t, "New", tl[0].State, "creation entry should use revision 1's state, not the snapshot")
	assert.Equal(t, day(1), tl[0].Start, "creation entry should start at the created date")
	assert.Equal(t, "Active", tl[1].State)
	assert.Equal(t, "Closed", tl[2].State)
}

func TestBuildSeedsFromSnapshotWithoutFirstRevision(t *testing.T) {
	item := schema.WorkItem{ID: 1, Fields: map[string]any{
		schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		schema.FieldState:       "Active",
	}}

	tl := Build(item, nil)
	require.Len(t, tl, 1, "timeline should still seed from the snapshot state")
	assert.Equal(t, "Active", tl[0].State)
}

func TestBuildSkipsIncompleteTransitions(t *testing.T) {
	item := schema.WorkItem{ID: 1, Fields: map[string]any{
		schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
		schema.FieldState:       "New",
	}}
	updates := []schema.UpdateEvent{
		// Creation artifact: no old value.
		{WorkItemID: 1, Rev: 2, RevisedDate: day(2), Fields: map[string]schema.FieldChange{
			schema.FieldState: {NewValue: "Active"},
		}},
		// Missing timestamp.
		stateChange(3, time.Time{}, "Active", "Closed"),
		// Unrelated field change.
		{WorkItemID: 1, Rev: 4, RevisedDate: day(4), Fields: map[string]schema.FieldChange{
			schema.FieldTitle: {OldValue: "a", NewValue: "b"},
		}},
		// The one real transition.
		stateChange(5, day(5), "New", "Active"),
	}

	tl := Build(item, updates)
	require.Len(t, tl, 2, "only the creation entry and the complete transition should survive")
	assert.Equal(t, "Active", tl[1].State)
	assert.Equal(t, day(5), tl[1].Start)
}

func TestBuildNoCreationDate(t *testing.T) {
	item := schema.WorkItem{ID: 1, Fields: map[string]any{schema.FieldState: "New"}}
	tl := Build(item, []schema.UpdateEvent{stateChange(2, day(3), "New", "Active")})

	require.Len(t, tl, 1, "without a created date only transitions appear")
	assert.Equal(t, "Active", tl[0].State)
}

func TestFold(t *testing.T) {
	tl := []schema.StateInterval{
		{State: "New", Start: day(1)},
		{State: "Active", Start: day(3)},    // New held 2 days
		{State: "Blocked", Start: day(8)},   // Active held 5 days
		{State: "Active", Start: day(10)},   // Blocked held 2 days
		{State: "Closed", Start: day(13)},   // Active held 3 more days
	}
	now := day(14) // Closed held 1 day

	out := Fold(tl, now, 365)
	assert.Equal(t, 2, out.DaysByState["New"])
	assert.Equal(t, 8, out.DaysByState["Active"], "revisited states should accumulate")
	assert.Equal(t, 2, out.DaysByState["Blocked"])
	assert.Equal(t, 1, out.DaysByState["Closed"])
	assert.Equal(t, 13, out.TotalDays)
	assert.Equal(t, "Active", out.Longest)
}

func TestFoldFloorsPartialDays(t *testing.T) {
	tl := []schema.StateInterval{
		{State: "Active", Start: day(1)},
	}
	now := day(3).Add(23 * time.Hour) // 2 days and 23 hours

	out := Fold(tl, now, 365)
	assert.Equal(t, 2, out.DaysByState["Active"], "partial days should floor to whole days")
}

func TestFoldDropsImplausibleIntervals(t *testing.T) {
	tl := []schema.StateInterval{
		{State: "New", Start: day(10)},
		{State: "Active", Start: day(5)},  // out of order: negative span for New
		{State: "Closed", Start: day(8)},  // Active held 3 days
	}
	now := day(8).AddDate(2, 0, 0) // Closed open for two years

	out := Fold(tl, now, 365)
	assert.Equal(t, 0, out.DaysByState["New"], "negative intervals should be dropped")
	assert.Equal(t, 3, out.DaysByState["Active"])
	assert.Equal(t, 0, out.DaysByState["Closed"], "intervals beyond the plausibility bound should be dropped")
	assert.Equal(t, 3, out.TotalDays)
}

func TestFoldLongestTieBreak(t *testing.T) {
	tl := []schema.StateInterval{
		{State: "New", Start: day(1)},
		{State: "Active", Start: day(4)},  // New held 3 days
		{State: "Closed", Start: day(7)},  // Active held 3 days
	}

	out := Fold(tl, day(7), 365)
	assert.Equal(t, "New", out.Longest, "ties should go to the state seen first")
}

func TestFoldEmpty(t *testing.T) {
	out := Fold(nil, day(1), 365)
	assert.Zero(t, out.TotalDays)
	assert.Empty(t, out.Longest)
	assert.Empty(t, out.DaysByState)
}

func TestFoldByClass(t *testing.T) {
	policy := schema.DefaultStatePolicy()
	tl := []schema.StateInterval{
		{State: "New", Start: day(1)},     // wait
		{State: "Active", Start: day(3)},  // active, 2 days wait so far
		{State: "Blocked", Start: day(7)}, // wait, 4 days active so far
		{State: "Closed", Start: day(9)},  // other, 2 more days wait
	}

	byClass := FoldByClass(tl, day(10), 365, policy.Classify)
	assert.Equal(t, 4, byClass[schema.ActiveClass])
	assert.Equal(t, 4, byClass[schema.WaitClass])
	assert.Equal(t, 1, byClass[schema.OtherClass])
}

// BenchmarkFold benchmarks interval folding over a year-long timeline.
func BenchmarkFold(b *testing.B) {
	states := []string{"New", "Active", "Code Review", "QA", "Blocked", "Resolved"}
	tl := make([]schema.StateInterval, 0, 120)
	for i := range 120 {
		tl = append(tl, schema.StateInterval{State: states[i%len(states)], Start: day(1 + i*3)})
	}

	for b.Loop() {
		Fold(tl, day(365), 365)
	}
}

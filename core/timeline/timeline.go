// Package timeline reconstructs ordered state histories for work items from
// their raw update events, and folds those histories into per-state
// durations. Every deep metric shares this one implementation and layers
// its own state classification on top.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// GroupUpdates indexes update events by work item and sorts each item's
// events ascending by revision number. The input order is irrelevant.
func GroupUpdates(updates []schema.UpdateEvent) map[int][]schema.UpdateEvent {
	byItem := make(map[int][]schema.UpdateEvent)
	for _, u := range updates {
		byItem[u.WorkItemID] = append(byItem[u.WorkItemID], u)
	}
	for id := range byItem {
		sort.Slice(byItem[id], func(i, j int) bool {
			return byItem[id][i].Rev < byItem[id][j].Rev
		})
	}
	return byItem
}

// Build reconstructs the ordered state timeline for one work item.
//
// The timeline is seeded with the item's initial state at its creation
// timestamp: the state field's new value in revision 1 when present, else
// the current snapshot state. Every later revision whose change map moves
// the state field from one value to another appends an entry. Revisions
// with a missing timestamp are skipped silently.
//
// A result with fewer than two entries carries no measurable duration and
// callers must exclude the item from timeline-dependent metrics.
func Build(item schema.WorkItem, updates []schema.UpdateEvent) []schema.StateInterval {
	var tl []schema.StateInterval

	// Seed with the creation entry.
	initial := initialState(item, updates)
	if created, ok := item.TimeField(schema.FieldCreatedDate); ok && initial != "" {
		tl = append(tl, schema.StateInterval{State: initial, Start: created})
	}

	for _, u := range updates {
		if u.Rev <= 1 {
			continue
		}
		fc, ok := u.Fields[schema.FieldState]
		if !ok {
			continue
		}
		// A real transition carries both sides; creation artifacts have no
		// old value and are not transitions.
		oldState := schema.AsString(fc.OldValue)
		newState := schema.AsString(fc.NewValue)
		if oldState == "" || newState == "" {
			continue
		}
		if u.RevisedDate.IsZero() {
			continue
		}
		tl = append(tl, schema.StateInterval{State: newState, Start: u.RevisedDate})
	}

	return tl
}

// initialState resolves the state the item was created in: revision 1's new
// state value when recorded, else the current snapshot state.
func initialState(item schema.WorkItem, updates []schema.UpdateEvent) string {
	for _, u := range updates {
		if u.Rev != 1 {
			continue
		}
		if fc, ok := u.Fields[schema.FieldState]; ok {
			if s := schema.AsString(fc.NewValue); s != "" {
				return s
			}
		}
	}
	return item.State()
}

// FoldOutput is the result of folding one timeline.
type FoldOutput struct {
	// DaysByState maps each state to its cumulative whole-day residency.
	DaysByState map[string]int

	// Longest is the state with the largest cumulative residency. Ties go
	// to the state encountered first in timeline order.
	Longest string

	// TotalDays is the sum over DaysByState. Callers exclude items whose
	// total is zero; they carry no usable signal.
	TotalDays int
}

// Fold walks an ordered timeline and accumulates whole-day durations per
// state. Each interval is attributed to its starting state; the trailing
// interval is measured against now. Intervals outside [0, maxDays] days are
// data-entry anomalies and are dropped without contributing anywhere.
func Fold(tl []schema.StateInterval, now time.Time, maxDays int) FoldOutput {
	out := FoldOutput{DaysByState: make(map[string]int)}
	if len(tl) == 0 {
		return out
	}

	var order []string
	add := func(state string, days int) {
		if days < 0 || days > maxDays {
			return
		}
		if _, seen := out.DaysByState[state]; !seen {
			order = append(order, state)
		}
		out.DaysByState[state] += days
		out.TotalDays += days
	}

	for i := 0; i < len(tl)-1; i++ {
		add(tl[i].State, wholeDays(tl[i].Start, tl[i+1].Start))
	}
	last := tl[len(tl)-1]
	add(last.State, wholeDays(last.Start, now))

	best := -1
	for _, state := range order {
		if out.DaysByState[state] > best {
			best = out.DaysByState[state]
			out.Longest = state
		}
	}
	return out
}

// FoldByClass folds a timeline into per-class durations using the supplied
// classifier, with the same [0, maxDays] plausibility filter as Fold.
func FoldByClass(tl []schema.StateInterval, now time.Time, maxDays int, classify func(string) schema.StateClass) map[schema.StateClass]int {
	byClass := make(map[schema.StateClass]int)
	if len(tl) == 0 {
		return byClass
	}

	add := func(state string, days int) {
		if days < 0 || days > maxDays {
			return
		}
		byClass[classify(state)] += days
	}

	for i := 0; i < len(tl)-1; i++ {
		add(tl[i].State, wholeDays(tl[i].Start, tl[i+1].Start))
	}
	last := tl[len(tl)-1]
	add(last.State, wholeDays(last.Start, now))

	return byClass
}

// wholeDays floors the elapsed time between two instants to whole days.
// Negative spans stay negative so the plausibility filter can reject them.
func wholeDays(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}

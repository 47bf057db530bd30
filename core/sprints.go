package core

import (
	"sort"
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// sprintEntry pairs one item with its sprint classification.
type sprintEntry struct {
	item      schema.WorkItem
	member    string
	completed bool
	unplanned bool
	enteredAt time.Time // first recorded move into the sprint, zero if born there
}

// sprintsMetric groups items by the final segment of their iteration path
// and derives per-sprint outcomes, per-member rollups and the team velocity
// trend.
func sprintsMetric(ds *Dataset, cfg *contract.Config) *schema.SprintResult {
	filter := newMemberFilter(cfg)
	cutoff := time.Duration(cfg.Policy.SprintPlanningCutoffDays) * 24 * time.Hour

	bySprint := make(map[string][]sprintEntry)
	for _, item := range ds.Items {
		sprint := schema.SprintName(item.StringField(schema.FieldIterationPath, ""))
		if sprint == "" {
			continue
		}
		entry := sprintEntry{
			item:      item,
			member:    item.AssigneeName(),
			completed: cfg.Policy.IsCompleted(item.State()),
		}
		entry.enteredAt = sprintEntryTime(sprint, ds.ByItem[item.ID])
		if created, ok := item.TimeField(schema.FieldCreatedDate); ok && !entry.enteredAt.IsZero() {
			entry.unplanned = entry.enteredAt.Sub(created) > cutoff
		}
		bySprint[sprint] = append(bySprint[sprint], entry)
	}

	result := &schema.SprintResult{
		Sprints:       make(map[string]schema.SprintStats, len(bySprint)),
		Members:       make(map[string]schema.MemberSprintStats),
		VelocityTrend: schema.StableTrend,
	}

	for sprint, entries := range bySprint {
		stats := schema.SprintStats{Total: len(entries)}
		for _, e := range entries {
			if e.completed {
				stats.Completed++
			}
			if e.unplanned {
				stats.Unplanned++
			}
		}
		stats.Carryover = stats.Total - stats.Completed
		stats.Velocity = stats.Completed
		stats.CompletionRatePct = roundTo(pct(float64(stats.Completed), float64(stats.Total)), 1)
		stats.UnplannedRatioPct = roundTo(pct(float64(stats.Unplanned), float64(stats.Total)), 1)
		result.Sprints[sprint] = stats
	}

	aggregateMembers(result, bySprint, filter)
	result.VelocityTrend = velocityTrend(result.Sprints, bySprint)
	return result
}

// sprintEntryTime finds the timestamp of the first update event that moved
// the item into the named sprint. Zero means the item never moved, which
// happens when it was created directly in the sprint.
func sprintEntryTime(sprint string, updates []schema.UpdateEvent) time.Time {
	for _, u := range updates {
		if u.Rev <= 1 || u.RevisedDate.IsZero() {
			continue
		}
		fc, ok := u.Fields[schema.FieldIterationPath]
		if !ok {
			continue
		}
		if schema.SprintName(schema.AsString(fc.NewValue)) == sprint {
			return u.RevisedDate
		}
	}
	return time.Time{}
}

// aggregateMembers rolls per-sprint outcomes up to each member.
func aggregateMembers(result *schema.SprintResult, bySprint map[string][]sprintEntry, filter memberFilter) {
	type sprintShare struct {
		items     int
		completed int
		unplanned int
	}
	byMember := make(map[string]map[string]*sprintShare)

	for sprint, entries := range bySprint {
		for _, e := range entries {
			if !filter.qualifies(e.member) {
				continue
			}
			shares := byMember[e.member]
			if shares == nil {
				shares = make(map[string]*sprintShare)
				byMember[e.member] = shares
			}
			share := shares[sprint]
			if share == nil {
				share = &sprintShare{}
				shares[sprint] = share
			}
			share.items++
			if e.completed {
				share.completed++
			}
			if e.unplanned {
				share.unplanned++
			}
		}
	}

	for member, shares := range byMember {
		// Sorted sprint names keep best/worst ties deterministic.
		names := make([]string, 0, len(shares))
		for name := range shares {
			names = append(names, name)
		}
		sort.Strings(names)

		var items, completionSum, unplannedSum float64
		best, worst := "", ""
		bestRate, worstRate := -1.0, 101.0
		for _, name := range names {
			share := shares[name]
			items += float64(share.items)
			rate := pct(float64(share.completed), float64(share.items))
			completionSum += rate
			unplannedSum += pct(float64(share.unplanned), float64(share.items))
			if rate > bestRate {
				bestRate, best = rate, name
			}
			if rate < worstRate {
				worstRate, worst = rate, name
			}
		}
		n := float64(len(names))
		result.Members[member] = schema.MemberSprintStats{
			Sprints:              len(names),
			AvgItems:             roundTo(items/n, 1),
			AvgCompletionRatePct: roundTo(completionSum/n, 1),
			AvgUnplannedRatioPct: roundTo(unplannedSum/n, 1),
			BestSprint:           best,
			WorstSprint:          worst,
		}
	}
}

// velocityTrend splits the sprints chronologically into two halves and
// compares mean velocities. Fewer than four sprints is too little signal
// and reads as stable.
func velocityTrend(sprints map[string]schema.SprintStats, bySprint map[string][]sprintEntry) schema.VelocityTrend {
	if len(sprints) < 4 {
		return schema.StableTrend
	}

	// Order sprints by the earliest moment any item entered or was created
	// into them, tie-breaking on name.
	type ordered struct {
		name  string
		start time.Time
	}
	seq := make([]ordered, 0, len(sprints))
	for name, entries := range bySprint {
		var earliest time.Time
		for _, e := range entries {
			t := e.enteredAt
			if t.IsZero() {
				t, _ = e.item.TimeField(schema.FieldCreatedDate)
			}
			if t.IsZero() {
				continue
			}
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
		}
		seq = append(seq, ordered{name: name, start: earliest})
	}
	sort.Slice(seq, func(i, j int) bool {
		if !seq[i].start.Equal(seq[j].start) {
			return seq[i].start.Before(seq[j].start)
		}
		return seq[i].name < seq[j].name
	})

	half := len(seq) / 2
	mean := func(part []ordered) float64 {
		var sum float64
		for _, o := range part {
			sum += float64(sprints[o.name].Velocity)
		}
		return sum / float64(len(part))
	}
	first := mean(seq[:half])
	second := mean(seq[half:])

	switch {
	case second > first*1.1:
		return schema.IncreasingTrend
	case second < first*0.9:
		return schema.DecreasingTrend
	default:
		return schema.StableTrend
	}
}

package core

import (
	"time"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// timeInStateMetric folds each qualifying item's timeline into per-state
// residencies and aggregates per-member averages. A member's bottleneck is
// the state with the highest average (not total) days across their items;
// the team bottleneck pools every per-item sample.
func timeInStateMetric(ds *Dataset, cfg *contract.Config, now time.Time) *schema.TimeInStateResult {
	filter := newMemberFilter(cfg)
	maxDays := cfg.Policy.MaxPlausibleIntervalDays

	type acc struct {
		items   int
		samples map[string][]float64 // state -> per-item day counts
		order   []string             // first-seen state order for tie-breaks
	}
	byMember := make(map[string]*acc)
	team := &acc{samples: make(map[string][]float64)}

	record := func(a *acc, folded timeline.FoldOutput) {
		a.items++
		for state, days := range folded.DaysByState {
			if _, seen := a.samples[state]; !seen {
				a.order = append(a.order, state)
			}
			a.samples[state] = append(a.samples[state], float64(days))
		}
	}

	for _, item := range ds.Items {
		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		tl := timeline.Build(item, ds.ByItem[item.ID])
		if len(tl) < 2 {
			continue
		}
		folded := timeline.Fold(tl, now, maxDays)
		if folded.TotalDays == 0 {
			continue
		}

		a := byMember[member]
		if a == nil {
			a = &acc{samples: make(map[string][]float64)}
			byMember[member] = a
		}
		record(a, folded)
		record(team, folded)
	}
	team.items = 0 // team items counted per member, not double

	averages := func(a *acc) (map[string]float64, string, float64) {
		avgs := make(map[string]float64, len(a.samples))
		var bottleneck string
		best := -1.0
		for _, state := range a.order {
			sample := a.samples[state]
			var sum float64
			for _, v := range sample {
				sum += v
			}
			avg := sum / float64(len(sample))
			avgs[state] = roundTo(avg, 1)
			if avg > best {
				best = avg
				bottleneck = state
			}
		}
		return avgs, bottleneck, best
	}

	result := &schema.TimeInStateResult{
		Members: make(map[string]schema.MemberTimeInState, len(byMember)),
	}
	for member, a := range byMember {
		avgs, bottleneck, avg := averages(a)
		result.Members[member] = schema.MemberTimeInState{
			Items:             a.items,
			AvgDaysByState:    avgs,
			Bottleneck:        bottleneck,
			BottleneckAvgDays: roundTo(avg, 1),
		}
	}
	result.TeamAvgByState, result.TeamBottleneck, _ = averages(team)
	return result
}

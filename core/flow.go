package core

import (
	"time"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// flowMetric computes flow efficiency: active days over active plus wait
// days, per item, then averaged per member as a mean of per-item
// percentages rather than duration-weighted. States outside both
// allowlists count as wait; ambiguous time is conservatively
// non-productive.
func flowMetric(ds *Dataset, cfg *contract.Config, now time.Time) *schema.FlowResult {
	filter := newMemberFilter(cfg)
	maxDays := cfg.Policy.MaxPlausibleIntervalDays

	classify := func(state string) schema.StateClass {
		if cfg.Policy.IsActive(state) {
			return schema.ActiveClass
		}
		return schema.WaitClass
	}

	type acc struct {
		pcts   []float64
		active int
		wait   int
	}
	byMember := make(map[string]*acc)
	var teamPcts []float64

	for _, item := range ds.Items {
		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		tl := timeline.Build(item, ds.ByItem[item.ID])
		if len(tl) < 2 {
			continue
		}
		byClass := timeline.FoldByClass(tl, now, maxDays, classify)
		active := byClass[schema.ActiveClass]
		wait := byClass[schema.WaitClass]
		total := active + wait
		if total == 0 {
			continue
		}
		efficiency := float64(active) / float64(total) * 100

		a := byMember[member]
		if a == nil {
			a = &acc{}
			byMember[member] = a
		}
		a.pcts = append(a.pcts, efficiency)
		a.active += active
		a.wait += wait
		teamPcts = append(teamPcts, efficiency)
	}

	result := &schema.FlowResult{
		Members: make(map[string]schema.MemberFlow, len(byMember)),
	}
	for member, a := range byMember {
		var sum float64
		for _, p := range a.pcts {
			sum += p
		}
		avg := sum / float64(len(a.pcts))
		result.Members[member] = schema.MemberFlow{
			Items:            len(a.pcts),
			AvgEfficiencyPct: roundTo(avg, 1),
			ActiveDays:       a.active,
			WaitDays:         a.wait,
			Rating:           schema.RateFlowEfficiency(avg),
		}
	}
	if len(teamPcts) > 0 {
		var sum float64
		for _, p := range teamPcts {
			sum += p
		}
		avg := sum / float64(len(teamPcts))
		result.AvgEfficiencyPct = roundTo(avg, 1)
		result.Rating = schema.RateFlowEfficiency(avg)
	} else {
		result.Rating = schema.PoorRating
	}
	return result
}

package core

import (
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// cycleTimeMetric measures creation-to-close elapsed days for items sitting
// in a completed state. Items missing either timestamp, or whose span falls
// outside the plausibility bound, are skipped.
func cycleTimeMetric(ds *Dataset, cfg *contract.Config) *schema.CycleTimeResult {
	filter := newMemberFilter(cfg)
	maxDays := float64(cfg.Policy.MaxPlausibleIntervalDays)

	byMember := make(map[string][]float64)
	byMonth := make(map[string][]float64)
	var overall []float64

	for _, item := range ds.Items {
		if !cfg.Policy.IsCompleted(item.State()) {
			continue
		}
		created, ok := item.TimeField(schema.FieldCreatedDate)
		if !ok {
			continue
		}
		closed, ok := item.TimeField(schema.FieldClosedDate)
		if !ok {
			continue
		}
		days := closed.Sub(created).Hours() / 24
		if days < 0 || days > maxDays {
			continue
		}

		overall = append(overall, days)
		byMonth[schema.MonthKey(closed)] = append(byMonth[schema.MonthKey(closed)], days)

		if member := item.AssigneeName(); filter.qualifies(member) {
			byMember[member] = append(byMember[member], days)
		}
	}

	result := &schema.CycleTimeResult{
		Members: make(map[string]schema.MemberCycleTime, len(byMember)),
		Monthly: make(map[string]schema.SampleStats, len(byMonth)),
		Overall: calcStats(overall),
	}
	for member, sample := range byMember {
		result.Members[member] = schema.MemberCycleTime{Stats: calcStats(sample)}
	}
	for month, sample := range byMonth {
		result.Monthly[month] = calcStats(sample)
	}
	return result
}

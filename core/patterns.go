package core

import (
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// workPatternsMetric counts item creation and closure by weekday and by
// calendar month. It answers "when does work actually land" rather than
// "how fast does it move".
func workPatternsMetric(ds *Dataset, cfg *contract.Config) *schema.WorkPatternsResult {
	filter := newMemberFilter(cfg)

	result := &schema.WorkPatternsResult{
		Members: make(map[string]schema.MemberWorkPattern),
		Monthly: make(map[string]schema.MonthActivity),
	}

	touch := func(member string) schema.MemberWorkPattern {
		mp, ok := result.Members[member]
		if !ok {
			mp = schema.MemberWorkPattern{
				CreatedByWeekday: make(map[string]int),
				ClosedByWeekday:  make(map[string]int),
			}
		}
		return mp
	}

	for _, item := range ds.Items {
		member := item.AssigneeName()
		track := filter.qualifies(member)

		if created, ok := item.TimeField(schema.FieldCreatedDate); ok {
			month := result.Monthly[schema.MonthKey(created)]
			month.Created++
			result.Monthly[schema.MonthKey(created)] = month
			if track {
				mp := touch(member)
				mp.CreatedByWeekday[created.Weekday().String()]++
				result.Members[member] = mp
			}
		}
		if closed, ok := item.TimeField(schema.FieldClosedDate); ok && cfg.Policy.IsCompleted(item.State()) {
			month := result.Monthly[schema.MonthKey(closed)]
			month.Closed++
			result.Monthly[schema.MonthKey(closed)] = month
			if track {
				mp := touch(member)
				mp.ClosedByWeekday[closed.Weekday().String()]++
				result.Members[member] = mp
			}
		}
	}

	// Busiest weekday per member, by created + closed volume. Ties break
	// on calendar order to stay deterministic over map iteration.
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for member, mp := range result.Members {
		best, bestCount := "", -1
		for _, wd := range weekdays {
			count := mp.CreatedByWeekday[wd] + mp.ClosedByWeekday[wd]
			if count > bestCount {
				best, bestCount = wd, count
			}
		}
		if bestCount > 0 {
			mp.BusiestWeekday = best
		}
		result.Members[member] = mp
	}
	return result
}

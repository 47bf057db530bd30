package core

import (
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// backlogAgeBucket buckets an open item's age in days for the aging
// histogram.
func backlogAgeBucket(days float64) string {
	switch {
	case days <= 7:
		return "0-7"
	case days <= 30:
		return "8-30"
	case days <= 90:
		return "31-90"
	default:
		return "90+"
	}
}

// backlogMetric measures how long not-yet-completed items have been
// sitting, as of the injected now.
func backlogMetric(ds *Dataset, cfg *contract.Config, now time.Time) *schema.BacklogResult {
	filter := newMemberFilter(cfg)

	type memberAcc struct {
		ages    []float64
		aging   int
		buckets map[string]int
	}
	byMember := make(map[string]*memberAcc)
	var overall []float64

	for _, item := range ds.Items {
		if cfg.Policy.IsCompleted(item.State()) {
			continue
		}
		created, ok := item.TimeField(schema.FieldCreatedDate)
		if !ok {
			continue
		}
		age := now.Sub(created).Hours() / 24
		if age < 0 {
			continue
		}
		overall = append(overall, age)

		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		acc := byMember[member]
		if acc == nil {
			acc = &memberAcc{buckets: make(map[string]int)}
			byMember[member] = acc
		}
		acc.ages = append(acc.ages, age)
		acc.buckets[backlogAgeBucket(age)]++
		if age > float64(cfg.BacklogAgeDays) {
			acc.aging++
		}
	}

	result := &schema.BacklogResult{
		Members:          make(map[string]schema.MemberBacklog, len(byMember)),
		Overall:          calcStats(overall),
		AgeThresholdDays: cfg.BacklogAgeDays,
	}
	for member, acc := range byMember {
		var sum, max float64
		for _, a := range acc.ages {
			sum += a
			if a > max {
				max = a
			}
		}
		result.Members[member] = schema.MemberBacklog{
			OpenItems:  len(acc.ages),
			AvgAgeDays: roundTo(sum/float64(len(acc.ages)), 1),
			MaxAgeDays: roundTo(max, 1),
			AgingItems: acc.aging,
			AgeBuckets: acc.buckets,
		}
	}
	return result
}

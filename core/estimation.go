package core

import (
	"math"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// estimationMetric compares completed work against the original estimate
// for items carrying both. Variance = (actual - estimate) / estimate * 100;
// positive means the work ran over.
func estimationMetric(ds *Dataset, cfg *contract.Config) *schema.EstimationResult {
	filter := newMemberFilter(cfg)
	threshold := cfg.VarianceThresholdPct

	type memberAcc struct {
		variances []float64
		over      int
		under     int
		within    int
	}
	byMember := make(map[string]*memberAcc)
	var overall []float64

	for _, item := range ds.Items {
		estimate := item.FloatField(schema.FieldOriginalEstimate, 0)
		actual := item.FloatField(schema.FieldCompletedWork, 0)
		if estimate <= 0 || actual <= 0 {
			continue
		}
		variance := (actual - estimate) / estimate * 100
		overall = append(overall, variance)

		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		acc := byMember[member]
		if acc == nil {
			acc = &memberAcc{}
			byMember[member] = acc
		}
		acc.variances = append(acc.variances, variance)
		switch {
		case variance > threshold:
			acc.under++ // estimated too low
		case variance < -threshold:
			acc.over++ // estimated too high
		default:
			acc.within++
		}
	}

	result := &schema.EstimationResult{
		Members:      make(map[string]schema.MemberEstimation, len(byMember)),
		Overall:      calcStats(overall),
		ThresholdPct: threshold,
	}
	for member, acc := range byMember {
		var sum float64
		for _, v := range acc.variances {
			sum += math.Abs(v)
		}
		result.Members[member] = schema.MemberEstimation{
			Items:          len(acc.variances),
			AvgVariancePct: roundTo(sum/float64(len(acc.variances)), 1),
			Overestimated:  acc.over,
			Underestimated: acc.under,
			WithinRange:    acc.within,
		}
	}
	return result
}

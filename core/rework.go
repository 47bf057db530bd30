package core

import (
	"sort"
	"strings"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// reworkReasonMarkers are the reason-field substrings that flag an item as
// reopened, matched case-insensitively.
var reworkReasonMarkers = []string{"reactivated", "reopened"}

// isReworked reports whether the item's reason field indicates it came back
// after being considered done.
func isReworked(item schema.WorkItem) bool {
	reason := strings.ToLower(item.StringField(schema.FieldReason, ""))
	if reason == "" {
		return false
	}
	for _, marker := range reworkReasonMarkers {
		if strings.Contains(reason, marker) {
			return true
		}
	}
	return false
}

// reworkMetric counts items whose reason field indicates reactivation.
func reworkMetric(ds *Dataset, cfg *contract.Config) *schema.ReworkResult {
	filter := newMemberFilter(cfg)

	type memberAcc struct {
		items    int
		reworked int
	}
	byMember := make(map[string]*memberAcc)
	var reworkedIDs []int

	for _, item := range ds.Items {
		reworked := isReworked(item)
		if reworked {
			reworkedIDs = append(reworkedIDs, item.ID)
		}

		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		acc := byMember[member]
		if acc == nil {
			acc = &memberAcc{}
			byMember[member] = acc
		}
		acc.items++
		if reworked {
			acc.reworked++
		}
	}
	sort.Ints(reworkedIDs)

	result := &schema.ReworkResult{
		Members:       make(map[string]schema.MemberRework, len(byMember)),
		ReworkedIDs:   reworkedIDs,
		OverallPct:    roundTo(pct(float64(len(reworkedIDs)), float64(len(ds.Items))), 1),
		TotalReworked: len(reworkedIDs),
	}
	for member, acc := range byMember {
		result.Members[member] = schema.MemberRework{
			Items:    acc.items,
			Reworked: acc.reworked,
			RatePct:  roundTo(pct(float64(acc.reworked), float64(acc.items)), 1),
		}
	}
	return result
}

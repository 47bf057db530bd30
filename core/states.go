package core

import (
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// stateDistributionMetric counts current items per workflow state, per
// member and per work item type. Pure snapshot, no history needed.
func stateDistributionMetric(ds *Dataset, cfg *contract.Config) *schema.StateDistributionResult {
	filter := newMemberFilter(cfg)

	result := &schema.StateDistributionResult{
		Members: make(map[string]map[string]int),
		ByType:  make(map[string]map[string]int),
		Total:   make(map[string]int),
	}

	for _, item := range ds.Items {
		state := item.State()
		if state == "" {
			continue
		}
		result.Total[state]++

		if itemType := item.Type(); itemType != "" {
			if result.ByType[itemType] == nil {
				result.ByType[itemType] = make(map[string]int)
			}
			result.ByType[itemType][state]++
		}

		member := item.AssigneeName()
		if !filter.qualifies(member) {
			continue
		}
		if result.Members[member] == nil {
			result.Members[member] = make(map[string]int)
		}
		result.Members[member][state]++
	}
	return result
}

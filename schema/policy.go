package schema

// StatePolicy gathers every workflow policy constant in one injectable
// value: state allowlists, plausibility bounds and threshold knobs. The
// engine never hardcodes these; tests and config files override them here.
type StatePolicy struct {
	// ActiveStates are in-progress style states that count as value-adding
	// time for flow efficiency and as "working" for daily WIP.
	ActiveStates []string

	// WaitStates are queue/blocked style states that count as non-productive
	// time. States in neither list are conservatively classified as wait.
	WaitStates []string

	// CompletedStates mark an item as done for cycle time, sprint completion
	// and carryover accounting.
	CompletedStates []string

	// MaxPlausibleIntervalDays rejects any timeline interval longer than
	// this many days as a data-entry anomaly. Negative intervals are always
	// rejected.
	MaxPlausibleIntervalDays int

	// SprintPlanningCutoffDays is the creation-to-sprint-entry gap beyond
	// which an item counts as added mid-sprint rather than planned.
	SprintPlanningCutoffDays int

	// WIPModerateThreshold and WIPHighThreshold are the daily concurrent
	// item counts reported as "over 3" and "over 5" in the WIP metric.
	WIPModerateThreshold int
	WIPHighThreshold     int
}

// DefaultStatePolicy returns the stock policy for a typical Agile process
// template. Callers clone-and-modify rather than mutate the shared lists.
func DefaultStatePolicy() StatePolicy {
	return StatePolicy{
		ActiveStates: []string{
			"Active", "In Progress", "Doing", "Committed", "Resolved",
		},
		WaitStates: []string{
			"New", "To Do", "Approved", "Blocked", "On Hold", "Proposed",
		},
		CompletedStates: []string{
			"Closed", "Done", "Completed", "Removed",
		},
		MaxPlausibleIntervalDays: 365,
		SprintPlanningCutoffDays: 3,
		WIPModerateThreshold:     3,
		WIPHighThreshold:         5,
	}
}

// Classify buckets a state label into active, wait or other. Matching is
// exact on the configured allowlists.
func (p StatePolicy) Classify(state string) StateClass {
	for _, s := range p.ActiveStates {
		if s == state {
			return ActiveClass
		}
	}
	for _, s := range p.WaitStates {
		if s == state {
			return WaitClass
		}
	}
	return OtherClass
}

// IsActive reports whether the state counts as in-progress work.
func (p StatePolicy) IsActive(state string) bool {
	return p.Classify(state) == ActiveClass
}

// IsCompleted reports whether the state marks the item as done.
func (p StatePolicy) IsCompleted(state string) bool {
	for _, s := range p.CompletedStates {
		if s == state {
			return true
		}
	}
	return false
}

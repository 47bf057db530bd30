package core

import (
	"fmt"
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// Metric module names, used for error reporting and run tracking.
const (
	ModuleCycleTime    = "cycle_time"
	ModuleEstimation   = "estimation"
	ModuleBacklog      = "backlog"
	ModuleWorkPatterns = "work_patterns"
	ModuleStates       = "state_distribution"
	ModuleRework       = "rework"
	ModuleTimeInState  = "time_in_state"
	ModuleFlow         = "flow_efficiency"
	ModuleWIP          = "daily_wip"
	ModuleSprints      = "sprints"
)

// RunAnalysis sequences every metric module over one materialized dataset.
// Modules are pure functions of (dataset, config, now); a panic in one is
// recovered and recorded without corrupting siblings. Deep metrics are
// skipped entirely when no update events are available, since a timeline
// cannot be reconstructed from snapshots alone.
func RunAnalysis(cfg *contract.Config, ds *Dataset, now time.Time) *schema.AnalysisResult {
	result := &schema.AnalysisResult{
		GeneratedAt:  now,
		Items:        len(ds.Items),
		Updates:      len(ds.Updates),
		ModuleErrors: make(map[string]string),
	}

	// --- 1. Snapshot metrics (always run) ---
	runModule(result, ModuleCycleTime, func() { result.CycleTime = cycleTimeMetric(ds, cfg) })
	runModule(result, ModuleEstimation, func() { result.Estimation = estimationMetric(ds, cfg) })
	runModule(result, ModuleBacklog, func() { result.Backlog = backlogMetric(ds, cfg, now) })
	runModule(result, ModuleWorkPatterns, func() { result.WorkPatterns = workPatternsMetric(ds, cfg) })
	runModule(result, ModuleStates, func() { result.States = stateDistributionMetric(ds, cfg) })
	runModule(result, ModuleRework, func() { result.Rework = reworkMetric(ds, cfg) })

	// --- 2. Deep metrics (require update events) ---
	if !ds.HasUpdates() {
		result.DeepSkipped = true
		return result
	}
	runModule(result, ModuleTimeInState, func() { result.TimeInState = timeInStateMetric(ds, cfg, now) })
	runModule(result, ModuleFlow, func() { result.Flow = flowMetric(ds, cfg, now) })
	runModule(result, ModuleWIP, func() { result.WIP = wipMetric(ds, cfg, now) })
	runModule(result, ModuleSprints, func() { result.Sprints = sprintsMetric(ds, cfg) })

	return result
}

// runModule isolates one metric module. A panic leaves the module's result
// nil with the failure recorded; sibling modules keep their outputs.
func runModule(result *schema.AnalysisResult, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("panic: %v", r)
			result.ModuleErrors[name] = msg
			contract.LogWarn(fmt.Sprintf("metric module %s failed", name), fmt.Errorf("%s", msg))
		}
	}()
	fn()
}

// moduleMemberCount reports how many members a module produced, for run
// tracking. Unknown or nil modules report zero.
func moduleMemberCount(result *schema.AnalysisResult, name string) int {
	switch name {
	case ModuleCycleTime:
		if result.CycleTime != nil {
			return len(result.CycleTime.Members)
		}
	case ModuleEstimation:
		if result.Estimation != nil {
			return len(result.Estimation.Members)
		}
	case ModuleBacklog:
		if result.Backlog != nil {
			return len(result.Backlog.Members)
		}
	case ModuleWorkPatterns:
		if result.WorkPatterns != nil {
			return len(result.WorkPatterns.Members)
		}
	case ModuleStates:
		if result.States != nil {
			return len(result.States.Members)
		}
	case ModuleRework:
		if result.Rework != nil {
			return len(result.Rework.Members)
		}
	case ModuleTimeInState:
		if result.TimeInState != nil {
			return len(result.TimeInState.Members)
		}
	case ModuleFlow:
		if result.Flow != nil {
			return len(result.Flow.Members)
		}
	case ModuleWIP:
		if result.WIP != nil {
			return len(result.WIP.Members)
		}
	case ModuleSprints:
		if result.Sprints != nil {
			return len(result.Sprints.Members)
		}
	}
	return 0
}

// AllModules lists the metric modules in report order.
var AllModules = []string{
	ModuleCycleTime,
	ModuleEstimation,
	ModuleBacklog,
	ModuleWorkPatterns,
	ModuleStates,
	ModuleRework,
	ModuleTimeInState,
	ModuleFlow,
	ModuleWIP,
	ModuleSprints,
}

package schema

import "time"

// SampleStats summarizes a numeric sample. Median follows the project's
// historical rule: the sorted sample's element at index floor(n/2), which
// for even counts is the upper of the two middle values.
type SampleStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// MemberCycleTime is one member's cycle time summary in days.
type MemberCycleTime struct {
	Stats SampleStats `json:"stats"`
}

// CycleTimeResult reports creation-to-completion elapsed days for items in
// a completed state.
type CycleTimeResult struct {
	Members map[string]MemberCycleTime `json:"members"`
	Monthly map[string]SampleStats     `json:"monthly,omitempty"` // keyed by close month, "2025-01"
	Overall SampleStats                `json:"overall"`
}

// MemberEstimation is one member's estimation accuracy summary.
type MemberEstimation struct {
	Items          int     `json:"items"`
	AvgVariancePct float64 `json:"avgVariancePct"`
	Overestimated  int     `json:"overestimated"`
	Underestimated int     `json:"underestimated"`
	WithinRange    int     `json:"withinRange"`
}

// EstimationResult reports (actual - estimate) / estimate variance for
// items carrying both an original estimate and completed work.
type EstimationResult struct {
	Members      map[string]MemberEstimation `json:"members"`
	Overall      SampleStats                 `json:"overall"` // variance percentages
	ThresholdPct float64                     `json:"thresholdPct"`
}

// MemberBacklog is one member's open-item aging summary.
type MemberBacklog struct {
	OpenItems  int            `json:"openItems"`
	AvgAgeDays float64        `json:"avgAgeDays"`
	MaxAgeDays float64        `json:"maxAgeDays"`
	AgingItems int            `json:"agingItems"` // older than the configured threshold
	AgeBuckets map[string]int `json:"ageBuckets"` // "0-7", "8-30", "31-90", "90+"
}

// BacklogResult reports how long open items have been sitting.
type BacklogResult struct {
	Members          map[string]MemberBacklog `json:"members"`
	Overall          SampleStats              `json:"overall"` // open item ages in days
	AgeThresholdDays int                      `json:"ageThresholdDays"`
}

// MemberWorkPattern is one member's created/closed activity by calendar.
type MemberWorkPattern struct {
	CreatedByWeekday map[string]int `json:"createdByWeekday"`
	ClosedByWeekday  map[string]int `json:"closedByWeekday"`
	BusiestWeekday   string         `json:"busiestWeekday"`
}

// WorkPatternsResult reports when work is created and closed.
type WorkPatternsResult struct {
	Members map[string]MemberWorkPattern `json:"members"`
	Monthly map[string]MonthActivity     `json:"monthly,omitempty"` // keyed "2025-01"
}

// MonthActivity is created/closed counts for one calendar month.
type MonthActivity struct {
	Created int `json:"created"`
	Closed  int `json:"closed"`
}

// StateDistributionResult reports current item counts per state.
type StateDistributionResult struct {
	Members map[string]map[string]int `json:"members"` // member -> state -> count
	ByType  map[string]map[string]int `json:"byType"`  // work item type -> state -> count
	Total   map[string]int            `json:"total"`   // state -> count
}

// MemberRework is one member's reopened-item summary.
type MemberRework struct {
	Items    int     `json:"items"`
	Reworked int     `json:"reworked"`
	RatePct  float64 `json:"ratePct"`
}

// ReworkResult reports items whose reason indicates reactivation.
type ReworkResult struct {
	Members       map[string]MemberRework `json:"members"`
	ReworkedIDs   []int                   `json:"reworkedIds"`
	OverallPct    float64                 `json:"overallPct"`
	TotalReworked int                     `json:"totalReworked"`
}

// MemberTimeInState is one member's average residency per state.
type MemberTimeInState struct {
	Items             int                `json:"items"`
	AvgDaysByState    map[string]float64 `json:"avgDaysByState"`
	Bottleneck        string             `json:"bottleneck"`
	BottleneckAvgDays float64            `json:"bottleneckAvgDays"`
}

// TimeInStateResult reports how long items spend in each workflow state.
type TimeInStateResult struct {
	Members        map[string]MemberTimeInState `json:"members"`
	TeamAvgByState map[string]float64           `json:"teamAvgByState"`
	TeamBottleneck string                       `json:"teamBottleneck"`
}

// MemberFlow is one member's flow efficiency summary.
type MemberFlow struct {
	Items            int        `json:"items"`
	AvgEfficiencyPct float64    `json:"avgEfficiencyPct"`
	ActiveDays       int        `json:"activeDays"`
	WaitDays         int        `json:"waitDays"`
	Rating           FlowRating `json:"rating"`
}

// FlowResult reports active time as a share of total elapsed time.
type FlowResult struct {
	Members          map[string]MemberFlow `json:"members"`
	AvgEfficiencyPct float64               `json:"avgEfficiencyPct"`
	Rating           FlowRating            `json:"rating"`
}

// MemberWIP is one member's daily concurrent-item load.
type MemberWIP struct {
	AvgWIP           float64     `json:"avgWip"`
	MaxWIP           int         `json:"maxWip"`
	DaysOverModerate int         `json:"daysOverModerate"`
	DaysOverHigh     int         `json:"daysOverHigh"`
	Distribution     map[int]int `json:"distribution"` // daily WIP count -> number of days
}

// WIPResult reports daily work-in-progress per member over a date range.
type WIPResult struct {
	Members          map[string]MemberWIP `json:"members"`
	PeakDay          string               `json:"peakDay"` // "2025-03-05"
	PeakWIP          int                  `json:"peakWip"` // team total on the peak day
	DaysTeamAvgOver3 int                  `json:"daysTeamAvgOver3"`
	RangeStart       string               `json:"rangeStart"`
	RangeEnd         string               `json:"rangeEnd"`
}

// SprintStats is the outcome of a single sprint.
type SprintStats struct {
	Total             int     `json:"total"`
	Completed         int     `json:"completed"`
	CompletionRatePct float64 `json:"completionRatePct"`
	Unplanned         int     `json:"unplanned"`
	UnplannedRatioPct float64 `json:"unplannedRatioPct"`
	Carryover         int     `json:"carryover"`
	Velocity          int     `json:"velocity"` // completed count
}

// MemberSprintStats aggregates one member's outcomes across sprints.
type MemberSprintStats struct {
	Sprints              int     `json:"sprints"`
	AvgItems             float64 `json:"avgItems"`
	AvgCompletionRatePct float64 `json:"avgCompletionRatePct"`
	AvgUnplannedRatioPct float64 `json:"avgUnplannedRatioPct"`
	BestSprint           string  `json:"bestSprint"`
	WorstSprint          string  `json:"worstSprint"`
}

// SprintResult reports per-sprint and per-member iteration analytics.
type SprintResult struct {
	Sprints       map[string]SprintStats       `json:"sprints"`
	Members       map[string]MemberSprintStats `json:"members"`
	VelocityTrend VelocityTrend                `json:"velocityTrend"`
}

// AnalysisResult is the merged output of one full analysis run. Deep
// metrics are nil when no update events were available; a module that
// failed structurally is nil with its error recorded in ModuleErrors.
type AnalysisResult struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Items       int       `json:"items"`
	Updates     int       `json:"updates"`

	CycleTime    *CycleTimeResult         `json:"cycleTime,omitempty"`
	Estimation   *EstimationResult        `json:"estimation,omitempty"`
	Backlog      *BacklogResult           `json:"backlog,omitempty"`
	WorkPatterns *WorkPatternsResult      `json:"workPatterns,omitempty"`
	States       *StateDistributionResult `json:"states,omitempty"`
	Rework       *ReworkResult            `json:"rework,omitempty"`
	TimeInState  *TimeInStateResult       `json:"timeInState,omitempty"`
	Flow         *FlowResult              `json:"flow,omitempty"`
	WIP          *WIPResult               `json:"wip,omitempty"`
	Sprints      *SprintResult            `json:"sprints,omitempty"`
	ModuleErrors map[string]string        `json:"moduleErrors,omitempty"`
	DeepSkipped  bool                     `json:"deepSkipped"` // true when update events were empty
}

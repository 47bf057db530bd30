package outwriter

import (
	"github.com/arjaygg/teampulse/schema"
)

// memberSummary is one member's merged view across every metric module,
// shared by the table, CSV and parquet renderings of the full report.
type memberSummary struct {
	Member            string
	CompletedItems    int
	AvgCycleTimeDays  float64
	MedianCycleDays   float64
	AvgVariancePct    float64
	OpenItems         int
	AvgBacklogAgeDays float64
	ReworkRatePct     float64
	FlowEfficiencyPct float64
	FlowRating        schema.FlowRating
	AvgDailyWIP       float64
	MaxDailyWIP       int
	BottleneckState   string
	SprintCount       int
	AvgCompletionPct  float64
}

// buildMemberSummaries merges per-module member maps into one row per
// member, ordered by name. Members appearing in any module get a row;
// modules that skipped them leave zero values.
func buildMemberSummaries(result *schema.AnalysisResult) []memberSummary {
	names := make(map[string]bool)
	collect := func(keys []string) {
		for _, k := range keys {
			names[k] = true
		}
	}
	if result.CycleTime != nil {
		collect(sortedKeys(result.CycleTime.Members))
	}
	if result.Estimation != nil {
		collect(sortedKeys(result.Estimation.Members))
	}
	if result.Backlog != nil {
		collect(sortedKeys(result.Backlog.Members))
	}
	if result.Rework != nil {
		collect(sortedKeys(result.Rework.Members))
	}
	if result.TimeInState != nil {
		collect(sortedKeys(result.TimeInState.Members))
	}
	if result.Flow != nil {
		collect(sortedKeys(result.Flow.Members))
	}
	if result.WIP != nil {
		collect(sortedKeys(result.WIP.Members))
	}
	if result.Sprints != nil {
		collect(sortedKeys(result.Sprints.Members))
	}

	rows := make([]memberSummary, 0, len(names))
	for _, name := range sortedKeys(names) {
		row := memberSummary{Member: name}
		if result.CycleTime != nil {
			if m, ok := result.CycleTime.Members[name]; ok {
				row.CompletedItems = m.Stats.Count
				row.AvgCycleTimeDays = m.Stats.Mean
				row.MedianCycleDays = m.Stats.Median
			}
		}
		if result.Estimation != nil {
			if m, ok := result.Estimation.Members[name]; ok {
				row.AvgVariancePct = m.AvgVariancePct
			}
		}
		if result.Backlog != nil {
			if m, ok := result.Backlog.Members[name]; ok {
				row.OpenItems = m.OpenItems
				row.AvgBacklogAgeDays = m.AvgAgeDays
			}
		}
		if result.Rework != nil {
			if m, ok := result.Rework.Members[name]; ok {
				row.ReworkRatePct = m.RatePct
			}
		}
		if result.TimeInState != nil {
			if m, ok := result.TimeInState.Members[name]; ok {
				row.BottleneckState = m.Bottleneck
			}
		}
		if result.Flow != nil {
			if m, ok := result.Flow.Members[name]; ok {
				row.FlowEfficiencyPct = m.AvgEfficiencyPct
				row.FlowRating = m.Rating
			}
		}
		if result.WIP != nil {
			if m, ok := result.WIP.Members[name]; ok {
				row.AvgDailyWIP = m.AvgWIP
				row.MaxDailyWIP = m.MaxWIP
			}
		}
		if result.Sprints != nil {
			if m, ok := result.Sprints.Members[name]; ok {
				row.SprintCount = m.Sprints
				row.AvgCompletionPct = m.AvgCompletionRatePct
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Package parquet provides data structures and functions for exporting team
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

// MemberReportRow is one member's merged metrics for a single analysis run.
// Columns missing from a run (deep metrics without update events) stay at
// their zero value.
type MemberReportRow struct {
	// GeneratedAt is the analysis "now" shared by every row of one export
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Member is the display name used as the join key
	Member string `parquet:"member,snappy"`

	CompletedItems     int32   `parquet:"completed_items,snappy"`
	AvgCycleTimeDays   float64 `parquet:"avg_cycle_time_days,snappy"`
	MedianCycleDays    float64 `parquet:"median_cycle_time_days,snappy"`
	AvgVariancePct     float64 `parquet:"avg_variance_pct,snappy"`
	OpenItems          int32   `parquet:"open_items,snappy"`
	AvgBacklogAgeDays  float64 `parquet:"avg_backlog_age_days,snappy"`
	ReworkRatePct      float64 `parquet:"rework_rate_pct,snappy"`
	FlowEfficiencyPct  float64 `parquet:"flow_efficiency_pct,snappy"`
	FlowRating         string  `parquet:"flow_rating,snappy"`
	AvgDailyWIP        float64 `parquet:"avg_daily_wip,snappy"`
	MaxDailyWIP        int32   `parquet:"max_daily_wip,snappy"`
	BottleneckState    *string `parquet:"bottleneck_state,optional,snappy"`
	SprintCount        int32   `parquet:"sprint_count,snappy"`
	AvgCompletionPct   float64 `parquet:"avg_completion_pct,snappy"`
}

// AnalysisRunRow is one tracked analysis run. This struct maps to the
// teampulse_analysis_runs database table.
type AnalysisRunRow struct {
	RunID        int64      `parquet:"run_id,snappy"`
	StartTime    time.Time  `parquet:"start_time,snappy"`
	EndTime      *time.Time `parquet:"end_time,optional,snappy"`
	Items        int32      `parquet:"items,snappy"`
	Updates      int32      `parquet:"updates,snappy"`
	Members      int32      `parquet:"members,snappy"`
	ConfigParams *string    `parquet:"config_params,optional,snappy"`
}

// ModuleRecordRow is one metric module's outcome within a run. This struct
// maps to the teampulse_module_records database table.
type ModuleRecordRow struct {
	RunID     int64     `parquet:"run_id,snappy"`
	Module    string    `parquet:"module,snappy"`
	Members   int32     `parquet:"members,snappy"`
	Succeeded bool      `parquet:"succeeded,snappy"`
	Error     *string   `parquet:"error,optional,snappy"`
	Recorded  time.Time `parquet:"recorded,snappy"`
}

// WriteMemberReportParquet writes a slice of MemberReportRow structs to a
// Parquet file.
func WriteMemberReportParquet(data []MemberReportRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRunRow structs to a
// Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteModuleRecordsParquet writes a slice of ModuleRecordRow structs to a
// Parquet file.
func WriteModuleRecordsParquet(data []ModuleRecordRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows creates the output file and streams rows through a generic
// writer whose schema is inferred from the row struct's tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

package iocache

import (
	"errors"
	"fmt"

	"github.com/arjaygg/teampulse/internal/parquet"
	"github.com/arjaygg/teampulse/schema"
)

// ExecuteAnalysisExport performs the actual export of run tracking data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not configured; set --analysis-backend")
	}

	// Retrieve all analysis runs
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	if len(runs) == 0 {
		return errors.New("no analysis data found to export")
	}

	// Retrieve all module records across runs
	records, err := store.ListModuleRecords(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve module records: %w", err)
	}

	// Convert to Parquet format
	runRows := convertAnalysisRuns(runs)
	recordRows := convertModuleRecords(records)

	// Write analysis runs to Parquet
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(runRows), runsFile)

	// Write module records to Parquet
	recordsFile := outputFile + ".module_records.parquet"
	if err := parquet.WriteModuleRecordsParquet(recordRows, recordsFile); err != nil {
		return fmt.Errorf("failed to write module records: %w", err)
	}
	fmt.Printf("Exported %d module records to: %s\n", len(recordRows), recordsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

func convertAnalysisRuns(runs []schema.AnalysisRun) []parquet.AnalysisRunRow {
	rows := make([]parquet.AnalysisRunRow, 0, len(runs))
	for _, run := range runs {
		row := parquet.AnalysisRunRow{
			RunID:     run.ID,
			StartTime: run.StartTime,
			EndTime:   run.EndTime,
			Items:     int32(run.Items),
			Updates:   int32(run.Updates),
			Members:   int32(run.Members),
		}
		if run.ConfigParams != "" {
			params := run.ConfigParams
			row.ConfigParams = &params
		}
		rows = append(rows, row)
	}
	return rows
}

func convertModuleRecords(records []schema.ModuleRecord) []parquet.ModuleRecordRow {
	rows := make([]parquet.ModuleRecordRow, 0, len(records))
	for _, rec := range records {
		row := parquet.ModuleRecordRow{
			RunID:     rec.RunID,
			Module:    rec.Module,
			Members:   int32(rec.Members),
			Succeeded: rec.Succeeded,
			Recorded:  rec.Recorded,
		}
		if rec.Error != "" {
			errMsg := rec.Error
			row.Error = &errMsg
		}
		rows = append(rows, row)
	}
	return rows
}

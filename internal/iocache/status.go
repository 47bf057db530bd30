package iocache

import (
	"errors"
	"fmt"
)

// PrintCacheStatus prints dataset cache status information.
func PrintCacheStatus() error {
	store := Manager.GetDatasetStore()
	if store == nil {
		return errors.New("dataset caching is not configured; set --cache-backend")
	}
	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get cache status: %w", err)
	}
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Total Entries: %d\n", status.Entries)
	fmt.Printf("Table Size: %d bytes\n", status.Bytes)
	if status.Path != "" {
		fmt.Printf("Database File: %s\n", status.Path)
	}
	return nil
}

// PrintAnalysisStatus prints run tracking status information.
func PrintAnalysisStatus(limit int) error {
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not configured; set --analysis-backend")
	}
	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list analysis runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No analysis runs recorded.")
		return nil
	}

	fmt.Printf("Showing %d most recent runs:\n", len(runs))
	for _, run := range runs {
		end := "in progress"
		if run.EndTime != nil {
			end = run.EndTime.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("  Run %d: started %s, ended %s, %d items, %d updates, %d members\n",
			run.ID, run.StartTime.Format("2006-01-02 15:04:05"), end,
			run.Items, run.Updates, run.Members)

		records, err := store.ListModuleRecords(run.ID)
		if err != nil {
			return fmt.Errorf("failed to list module records for run %d: %w", run.ID, err)
		}
		failed := 0
		for _, rec := range records {
			if !rec.Succeeded {
				failed++
				fmt.Printf("    %s failed: %s\n", rec.Module, rec.Error)
			}
		}
		if len(records) > 0 && failed == 0 {
			fmt.Printf("    %d modules succeeded\n", len(records))
		}
	}
	return nil
}

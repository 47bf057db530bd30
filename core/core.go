// Package core has the orchestration, snapshot metrics and deep metrics
// that turn a materialized work item dataset into team performance reports.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/arjaygg/teampulse/internal/azdo"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/internal/outwriter"
	"github.com/arjaygg/teampulse/schema"
)

// ExecutorFunc defines the function signature for executing different
// report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteReport runs the full analysis and prints every module's results.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := runFullAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintReport(result, cfg, time.Since(start))
}

// ExecuteFlow runs the analysis and prints the flow efficiency view.
func ExecuteFlow(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := runFullAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.Flow == nil {
		return errors.New("flow efficiency needs update events; provide --updates-file or an online dataset")
	}
	return outwriter.PrintFlow(result.Flow, cfg)
}

// ExecuteWIP runs the analysis and prints the daily WIP view.
func ExecuteWIP(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := runFullAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.WIP == nil {
		return errors.New("daily WIP needs update events; provide --updates-file or an online dataset")
	}
	return outwriter.PrintWIP(result.WIP, cfg)
}

// ExecuteSprints runs the analysis and prints the sprint analytics view.
func ExecuteSprints(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := runFullAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.Sprints == nil {
		return errors.New("sprint analytics needs update events; provide --updates-file or an online dataset")
	}
	return outwriter.PrintSprints(result.Sprints, cfg)
}

// ExecuteStates runs the analysis and prints the state distribution view.
func ExecuteStates(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := runFullAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.States == nil {
		return errors.New("state distribution produced no results")
	}
	return outwriter.PrintStates(result.States, cfg)
}

// GetAnalysisResults runs the full analysis and returns the raw result
// without printing it. This is the entry point for the MCP server.
func GetAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisResult, error) {
	return runFullAnalysis(ctx, cfg, mgr)
}

// NewTrackerClient picks the dataset source: local JSON files when
// configured, else the REST API.
func NewTrackerClient(cfg *contract.Config) contract.TrackerClient {
	if cfg.OfflineMode() {
		return azdo.NewFileClient(cfg.ItemsFile, cfg.UpdatesFile)
	}
	return azdo.NewClient(cfg)
}

// runFullAnalysis performs the common load-then-analyze sequence shared by
// every report command, with optional run tracking.
func runFullAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisResult, error) {
	client := NewTrackerClient(cfg)

	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"project": cfg.Project,
			"team":    cfg.Team,
			"start":   cfg.StartTime.Format(contract.DateTimeFormat),
			"end":     cfg.EndTime.Format(contract.DateTimeFormat),
			"offline": cfg.OfflineMode(),
		}
		var err error
		runID, err = analysisStore.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Dataset materialization (with caching) ---
	ds, err := cachedBuildDataset(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}

	// --- 2. Metric derivation ---
	result := RunAnalysis(cfg, ds, time.Now().UTC())

	// --- 3. End run tracking ---
	if analysisStore != nil && runID > 0 {
		for _, module := range AllModules {
			errMsg, failed := result.ModuleErrors[module]
			if recErr := analysisStore.RecordModule(runID, module, moduleMemberCount(result, module), !failed, errMsg); recErr != nil {
				contract.LogWarn("failed to record module outcome", recErr)
				break
			}
		}
		if err := analysisStore.EndRun(runID, time.Now(), len(ds.Items), len(ds.Updates), len(cfg.Members)); err != nil {
			contract.LogWarn("failed to finalize run tracking", err)
		}
	}

	return result, nil
}

// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// TrackerClient defines the operations needed to materialize a dataset from
// the work tracking system. This allows the core analysis logic to be
// tested without a live server; a file-backed implementation serves offline
// datasets through the same interface.
type TrackerClient interface {
	// FetchWorkItems returns the snapshots of every work item changed
	// within the window for the configured project and team.
	FetchWorkItems(ctx context.Context, start, end time.Time) ([]schema.WorkItem, error)

	// FetchUpdates returns the full revision history for the given item
	// IDs. The result is unordered; callers group and sort it.
	FetchUpdates(ctx context.Context, ids []int) ([]schema.UpdateEvent, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cached dataset storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Clear() error
	Status() (schema.StoreStatus, error)
	Close() error
}

// AnalysisStore records analysis runs and per-module outcomes for
// longitudinal tracking.
type AnalysisStore interface {
	BeginRun(start time.Time, configParams map[string]any) (int64, error)
	EndRun(id int64, end time.Time, items, updates, members int) error
	RecordModule(runID int64, module string, members int, succeeded bool, errMsg string) error
	ListRuns(limit int) ([]schema.AnalysisRun, error)
	ListModuleRecords(runID int64) ([]schema.ModuleRecord, error)
	Clear() error
	Close() error
}

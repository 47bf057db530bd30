package iocache

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

// resetGlobals rewinds the once guards so each test can initialize the
// global manager from scratch.
func resetGlobals() {
	Manager = &StoreManager{}
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple name", "teampulse_dataset_cache", false},
		{"leading underscore", "_cache", false},
		{"mixed case", "CacheTable1", false},
		{"empty", "", true},
		{"leading digit", "1cache", true},
		{"injection attempt", "cache; DROP TABLE users", true},
		{"quoted", `cache"`, true},
		{"hyphen", "cache-table", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName(%q) should fail", tt.table)
			} else {
				assert.NoError(t, err, "validateTableName(%q) should pass", tt.table)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`cache`", quoteTableName("cache", schema.MySQLBackend))
	assert.Equal(t, `"cache"`, quoteTableName("cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"cache"`, quoteTableName("cache", schema.SQLiteBackend))
}

func TestCacheStoreSQLiteRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.Error(t, err, "an absent key should miss")

	ts := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"items":[]}`), 1, ts))

	data, version, got, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), data)
	assert.Equal(t, 1, version)
	assert.Equal(t, ts, got)

	// Overwrite the same key.
	require.NoError(t, store.Set("k1", []byte("v2"), 2, ts+1))
	data, version, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	assert.Equal(t, 2, version)

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 1, status.Entries)
	assert.Equal(t, path, status.Path)
	assert.Positive(t, status.Bytes)

	require.NoError(t, store.Clear())
	_, _, _, err = store.Get("k1")
	assert.Error(t, err, "cleared entries should miss")
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 0), "Set should be a no-op")
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows, "Get should always miss")
	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.Zero(t, status.Entries)
}

func TestNewCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad; name", schema.SQLiteBackend, filepath.Join(t.TempDir(), "c.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

func TestNewCacheStoreRejectsUnknownBackend(t *testing.T) {
	_, err := NewCacheStore("cache", schema.DatabaseBackend("redis"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache backend")
}

func TestAnalysisStoreSQLiteRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"project": "Platform"})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordModule(runID, "cycle_time", 4, true, ""))
	require.NoError(t, store.RecordModule(runID, "daily_wip", 0, false, "panic: boom"))
	require.NoError(t, store.EndRun(runID, start.Add(2*time.Second), 100, 500, 4))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 100, runs[0].Items)
	assert.Equal(t, 500, runs[0].Updates)
	assert.Equal(t, 4, runs[0].Members)
	require.NotNil(t, runs[0].EndTime, "ended runs carry an end time")
	assert.Contains(t, runs[0].ConfigParams, "Platform")

	records, err := store.ListModuleRecords(runID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cycle_time", records[0].Module)
	assert.True(t, records[0].Succeeded)
	assert.Empty(t, records[0].Error)
	assert.False(t, records[1].Succeeded)
	assert.Equal(t, "panic: boom", records[1].Error)

	require.NoError(t, store.Clear())
	runs, err = store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestAnalysisStoreListRunsOrderAndLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var last int64
	for i := 0; i < 3; i++ {
		last, err = store.BeginRun(start.Add(time.Duration(i)*time.Hour), nil)
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2, "the limit should cap the result")
	assert.Equal(t, last, runs[0].ID, "runs should come back newest first")
}

func TestAnalysisStoreNoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	assert.NoError(t, err, "BeginRun should be a no-op")
	assert.NoError(t, store.RecordModule(runID, "cycle_time", 0, true, ""))
	assert.NoError(t, store.EndRun(runID, time.Now(), 0, 0, 0))

	runs, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestInitStores(t *testing.T) {
	resetGlobals()
	defer resetGlobals()

	dir := t.TempDir()
	err := InitStores(
		schema.SQLiteBackend, filepath.Join(dir, "cache.db"),
		schema.SQLiteBackend, filepath.Join(dir, "analysis.db"),
	)
	require.NoError(t, err)
	assert.NotNil(t, Manager.GetDatasetStore())
	assert.NotNil(t, Manager.GetAnalysisStore())

	// A second call must be a no-op thanks to the once guard.
	err = InitStores(schema.SQLiteBackend, filepath.Join(dir, "other.db"), "", "")
	assert.NoError(t, err)
	assert.NotNil(t, Manager.GetAnalysisStore(), "re-initialization must not replace the stores")

	CloseStores()
}

func TestInitStoresDisabled(t *testing.T) {
	resetGlobals()
	defer resetGlobals()

	require.NoError(t, InitStores("", "", "", ""))
	assert.Nil(t, Manager.GetDatasetStore(), "empty backends leave the stores disabled")
	assert.Nil(t, Manager.GetAnalysisStore())
}

func TestClearCacheSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	assert.NoError(t, ClearCache(schema.SQLiteBackend, path, ""), "clearing an already-missing file is fine")

	err = ClearCache(schema.SQLiteBackend, "", "")
	require.Error(t, err, "SQLite clearing needs a file path")
}

func TestClearCacheNoneBackend(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.NoError(t, ClearAnalysis(schema.NoneBackend, "", ""))
}

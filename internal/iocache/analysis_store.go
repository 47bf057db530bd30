package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// Table names for analysis run tracking.
const (
	analysisRunsTable  = "teampulse_analysis_runs"
	moduleRecordsTable = "teampulse_module_records"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	path    string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	var db *sql.DB
	var err error
	var path string

	switch backend {
	case schema.SQLiteBackend:
		path = connStr
		if path == "" {
			path = contract.GetAnalysisDBFilePath()
		}
		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", path, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend, path: path}, nil
}

// createAnalysisTables creates the run tracking tables when migrations have
// not been run yet. The embedded migrations produce the same schema.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{moduleRecordsTable, getCreateModuleRecordsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(analysisRunsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP NULL,
				items INT NOT NULL DEFAULT 0,
				updates INT NOT NULL DEFAULT 0,
				members INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				items INTEGER NOT NULL DEFAULT 0,
				updates INTEGER NOT NULL DEFAULT 0,
				members INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP,
				items INTEGER NOT NULL DEFAULT 0,
				updates INTEGER NOT NULL DEFAULT 0,
				members INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	}
}

func getCreateModuleRecordsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(moduleRecordsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id BIGINT NOT NULL,
				module VARCHAR(64) NOT NULL,
				members INT NOT NULL DEFAULT 0,
				succeeded BOOLEAN NOT NULL,
				error TEXT,
				recorded TIMESTAMP NOT NULL
			);
		`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL,
				module TEXT NOT NULL,
				members INTEGER NOT NULL DEFAULT 0,
				succeeded BOOLEAN NOT NULL,
				error TEXT,
				recorded TIMESTAMPTZ NOT NULL
			);
		`, quoted)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				module TEXT NOT NULL,
				members INTEGER NOT NULL DEFAULT 0,
				succeeded BOOLEAN NOT NULL,
				error TEXT,
				recorded TIMESTAMP NOT NULL
			);
		`, quoted)
	}
}

// BeginRun records the start of an analysis run and returns its ID.
func (as *AnalysisStoreImpl) BeginRun(start time.Time, configParams map[string]any) (int64, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	var paramsJSON *string
	if configParams != nil {
		if data, err := json.Marshal(configParams); err == nil {
			s := string(data)
			paramsJSON = &s
		}
	}

	quoted := quoteTableName(analysisRunsTable, as.backend)
	if as.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quoted)
		var id int64
		if err := as.db.QueryRow(query, start, paramsJSON).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to begin run: %w", err)
		}
		return id, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quoted)
	res, err := as.db.Exec(query, start, paramsJSON)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return res.LastInsertId()
}

// EndRun finalizes an analysis run with its dataset dimensions.
func (as *AnalysisStoreImpl) EndRun(id int64, end time.Time, items, updates, members int) error {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}
	quoted := quoteTableName(analysisRunsTable, as.backend)
	var query string
	if as.backend == schema.PostgreSQLBackend {
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, items = $2, updates = $3, members = $4 WHERE run_id = $5`, quoted)
	} else {
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, items = ?, updates = ?, members = ? WHERE run_id = ?`, quoted)
	}
	_, err := as.db.Exec(query, end, items, updates, members, id)
	return err
}

// RecordModule stores one metric module's outcome within a run.
func (as *AnalysisStoreImpl) RecordModule(runID int64, module string, members int, succeeded bool, errMsg string) error {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}
	var errVal *string
	if errMsg != "" {
		errVal = &errMsg
	}
	quoted := quoteTableName(moduleRecordsTable, as.backend)
	var query string
	if as.backend == schema.PostgreSQLBackend {
		query = fmt.Sprintf(`INSERT INTO %s (run_id, module, members, succeeded, error, recorded) VALUES ($1, $2, $3, $4, $5, $6)`, quoted)
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (run_id, module, members, succeeded, error, recorded) VALUES (?, ?, ?, ?, ?, ?)`, quoted)
	}
	_, err := as.db.Exec(query, runID, module, members, succeeded, errVal, time.Now())
	return err
}

// ListRuns returns recorded runs, newest first. A non-positive limit
// returns every run.
func (as *AnalysisStoreImpl) ListRuns(limit int) ([]schema.AnalysisRun, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}
	quoted := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, items, updates, members, COALESCE(config_params, '') FROM %s ORDER BY run_id DESC`, quoted)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.AnalysisRun
	for rows.Next() {
		var run schema.AnalysisRun
		if err := rows.Scan(&run.ID, &run.StartTime, &run.EndTime, &run.Items, &run.Updates, &run.Members, &run.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListModuleRecords returns per-module outcomes. A non-positive runID
// returns records across every run.
func (as *AnalysisStoreImpl) ListModuleRecords(runID int64) ([]schema.ModuleRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}
	quoted := quoteTableName(moduleRecordsTable, as.backend)

	var rows *sql.Rows
	var err error
	if runID > 0 {
		placeholder := "?"
		if as.backend == schema.PostgreSQLBackend {
			placeholder = "$1"
		}
		query := fmt.Sprintf(`SELECT run_id, module, members, succeeded, COALESCE(error, ''), recorded FROM %s WHERE run_id = %s ORDER BY record_id`, quoted, placeholder)
		rows, err = as.db.Query(query, runID)
	} else {
		query := fmt.Sprintf(`SELECT run_id, module, members, succeeded, COALESCE(error, ''), recorded FROM %s ORDER BY record_id`, quoted)
		rows, err = as.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list module records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ModuleRecord
	for rows.Next() {
		var rec schema.ModuleRecord
		if err := rows.Scan(&rec.RunID, &rec.Module, &rec.Members, &rec.Succeeded, &rec.Error, &rec.Recorded); err != nil {
			return nil, fmt.Errorf("failed to scan module record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all run tracking data without dropping the tables.
func (as *AnalysisStoreImpl) Clear() error {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}
	for _, table := range []string{moduleRecordsTable, analysisRunsTable} {
		quoted := quoteTableName(table, as.backend)
		if _, err := as.db.Exec(fmt.Sprintf("DELETE FROM %s", quoted)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying DB connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

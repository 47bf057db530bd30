//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// databaseArgs points the report command at the fixture dataset without
// pinning a cache backend, so the TEAMPULSE_* env vars take effect.
func databaseArgs() []string {
	return []string{
		"report",
		"--items-file", "testdata/items.json",
		"--updates-file", "testdata/updates.json",
		"--start", "2025-01-01",
		"--end", "2025-02-01",
		"--color", "no",
	}
}

// TestTeampulseWithMySQL tests the teampulse CLI with a MySQL backend.
func TestTeampulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "teampulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/teampulse?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("TEAMPULSE_CACHE_BACKEND", "mysql")
	_ = os.Setenv("TEAMPULSE_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("TEAMPULSE_ANALYSIS_BACKEND", "mysql")
	_ = os.Setenv("TEAMPULSE_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TEAMPULSE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_ANALYSIS_DB_CONNECT") }()

	// Run teampulse cache clear
	_, err = runTeampulseCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run teampulse analysis clear
	_, err = runTeampulseCommand(t, "analysis", "clear")
	require.NoError(t, err)

	// Run teampulse report (records a run against the MySQL backend)
	_, err = runTeampulseCommand(t, databaseArgs()...)
	require.NoError(t, err)

	// Run teampulse cache status
	_, err = runTeampulseCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run teampulse analysis status
	_, err = runTeampulseCommand(t, "analysis", "status")
	require.NoError(t, err)
}

// TestTeampulseWithPostgres tests the teampulse CLI with a PostgreSQL backend.
func TestTeampulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("TEAMPULSE_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("TEAMPULSE_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("TEAMPULSE_ANALYSIS_BACKEND", "postgresql")
	_ = os.Setenv("TEAMPULSE_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TEAMPULSE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("TEAMPULSE_ANALYSIS_DB_CONNECT") }()

	// Run teampulse cache clear
	_, err = runTeampulseCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run teampulse analysis clear
	_, err = runTeampulseCommand(t, "analysis", "clear")
	require.NoError(t, err)

	// Run teampulse report (records a run against the Postgres backend)
	_, err = runTeampulseCommand(t, databaseArgs()...)
	require.NoError(t, err)

	// Run teampulse cache status
	_, err = runTeampulseCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run teampulse analysis status
	_, err = runTeampulseCommand(t, "analysis", "status")
	require.NoError(t, err)
}

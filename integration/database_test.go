//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bekerk/hotspot/internal/iocache"
	"github.com/bekerk/hotspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// rankedFixCounts extracts "path:fixes" pairs in rank order from JSON output.
func rankedFixCounts(t *testing.T, out string) []string {
	t.Helper()
	var files []schema.EnrichedFileResult
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	pairs := make([]string, len(files))
	for i, f := range files {
		pairs[i] = fmt.Sprintf("%s:%d", f.Path, f.Fixes)
	}
	return pairs
}

// exerciseBackend runs the CLI against a fixture repo with the given cache backend,
// then checks the store directly.
func exerciseBackend(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	repo := newFixtureRepo(t)

	t.Setenv("HOTSPOT_CACHE_BACKEND", string(backend))
	t.Setenv("HOTSPOT_CACHE_DB_CONNECT", connStr)

	_, err := runHotspotCommand(t, repo.Dir, "cache", "clear")
	require.NoError(t, err)

	// First run fills the cache, second run reads it. Scores drift with the
	// clock, so only ranking and fix counts are compared.
	first, err := runHotspotCommand(t, repo.Dir, "files", "--output", "json")
	require.NoError(t, err)
	second, err := runHotspotCommand(t, repo.Dir, "files", "--output", "json")
	require.NoError(t, err)
	assert.Equal(t, rankedFixCounts(t, first), rankedFixCounts(t, second))

	out, err := runHotspotCommand(t, repo.Dir, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Total Entries: 1")

	store, err := iocache.NewCacheStore("fix_history_cache", backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now().Unix()
	require.NoError(t, store.Set("integration-key", []byte(`{"fixes":[],"skipped":0}`), 1, now))
	value, version, ts, err := store.Get("integration-key")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fixes":[],"skipped":0}`, string(value))
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)
}

// TestHotspotWithMySQL tests the hotspot CLI with a MySQL backend.
func TestHotspotWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "hotspot",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/hotspot?parseTime=true", host, port.Port())
	exerciseBackend(t, schema.MySQLBackend, connStr)
}

// TestHotspotWithPostgres tests the hotspot CLI with a PostgreSQL backend.
func TestHotspotWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		// The server restarts once after init; wait for the second ready line.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, schema.PostgreSQLBackend, connStr)
}

// TestHotspotWithSQLiteFile tests the CLI against an explicit SQLite file path.
func TestHotspotWithSQLiteFile(t *testing.T) {
	dbPath := t.TempDir() + string(os.PathSeparator) + "cache.db"
	exerciseBackend(t, schema.SQLiteBackend, dbPath)
}

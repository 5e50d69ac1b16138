// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/bekerk/hotspot/schema"
)

// GitClient defines the history operations needed for fix hotspot analysis.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// GetRepoHash returns the commit hash that ref (e.g. HEAD, a branch or tag) points to.
	// HEAD of a repository without commits yields "" and no error.
	GetRepoHash(ctx context.Context, repoPath string, ref string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListCommits returns every commit reachable from ref, newest first.
	// HEAD of a repository without commits yields an empty list.
	ListCommits(ctx context.Context, repoPath string, ref string) ([]schema.Commit, error)

	// ChangedFiles returns the paths changed between the commit's first parent and the commit.
	// Root commits have no first parent and yield no paths.
	ChangedFiles(ctx context.Context, repoPath string, commit schema.Commit) ([]string, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetHistoryStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

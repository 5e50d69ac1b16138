//go:build integration

// Package integration contains integration tests for hotspot.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/csv"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseFixCounts reads the CSV output of `hotspot files` into path -> fixes.
func parseFixCounts(t *testing.T, output string) map[string]int {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	require.Equal(t, []string{"rank", "file", "score", "label", "fixes", "last_fix"}, records[0])

	counts := make(map[string]int, len(records)-1)
	for _, rec := range records[1:] {
		fixes, err := strconv.Atoi(rec[4])
		require.NoError(t, err)
		counts[rec[1]] = fixes
	}
	return counts
}

// TestHotspotFilesVerification checks fix counts against git's own message grep.
// The fixture history is linear, so first-parent diffs and `git log -- path` agree.
func TestHotspotFilesVerification(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	repo := newFixtureRepo(t)

	for _, backend := range []string{"git", "gogit"} {
		t.Run(backend, func(t *testing.T) {
			out, err := runHotspotCommand(t, repo.Dir, "files",
				"--output", "csv", "--cache-backend", "none", "--history-backend", backend)
			require.NoError(t, err)

			counts := parseFixCounts(t, out)
			assert.Equal(t, map[string]int{
				"api/server.go":  3,
				"api/routes.go":  1,
				"docs/README.md": 1,
			}, counts)

			for file, fixes := range counts {
				gitCmd := exec.Command("git", "log", "-i", "--grep=bug", "--format=%H", "--", file)
				gitCmd.Dir = repo.Dir
				gitOutput, err := gitCmd.Output()
				require.NoError(t, err)
				lines := strings.Fields(string(gitOutput))
				assert.Len(t, lines, fixes, "fix count mismatch for %s", file)
			}
		})
	}
}

// TestHotspotCheckExitCode verifies the policy gate's exit status.
func TestHotspotCheckExitCode(t *testing.T) {
	repo := newFixtureRepo(t)

	out, err := runHotspotCommand(t, repo.Dir, "check", "--cache-backend", "none", "--threshold", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "All files passed policy checks")

	out, err = runHotspotCommand(t, repo.Dir, "check", "--cache-backend", "none", "--threshold", "0.01")
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, out, "api/server.go")
}

// TestHotspotMarkerFlag verifies that a custom marker changes which commits count.
func TestHotspotMarkerFlag(t *testing.T) {
	repo := newFixtureRepo(t)

	out, err := runHotspotCommand(t, repo.Dir, "files",
		"--output", "csv", "--cache-backend", "none", "--marker", "health")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"api/routes.go": 1}, parseFixCounts(t, out))
}

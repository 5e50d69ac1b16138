// Package algo holds the pure functions behind hotspot scoring.
package algo

import (
	"strings"

	"github.com/bekerk/hotspot/schema"
)

// IsFixMessage reports whether message contains marker, ignoring case.
// The match is a plain substring match, so "debugging" matches "bug".
func IsFixMessage(message, marker string) bool {
	return strings.Contains(strings.ToLower(message), strings.ToLower(marker))
}

// FilterFixCommits returns the commits whose message matches marker,
// preserving traversal order.
func FilterFixCommits(commits []schema.Commit, marker string) []schema.Commit {
	var out []schema.Commit
	for _, c := range commits {
		if IsFixMessage(c.Message, marker) {
			out = append(out, c)
		}
	}
	return out
}

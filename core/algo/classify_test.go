package algo

import (
	"testing"

	"github.com/bekerk/hotspot/schema"
	"github.com/stretchr/testify/assert"
)

// TestIsFixMessage validates the case-insensitive substring match.
func TestIsFixMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		marker  string
		want    bool
	}{
		{"lowercase", "fix bug in parser", "bug", true},
		{"uppercase", "BUG: crash on start", "bug", true},
		{"mixed case marker", "fix Bug", "BUG", true},
		{"substring of word", "debugging output", "bug", true},
		{"no match", "add feature", "bug", false},
		{"empty message", "", "bug", false},
		{"multiline body", "refactor\n\nalso squashes a bug", "bug", true},
		{"custom marker", "fix: null deref", "fix", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFixMessage(tt.message, tt.marker))
		})
	}
}

// TestIsFixMessage_Idempotent ensures repeated classification is stable.
func TestIsFixMessage_Idempotent(t *testing.T) {
	msg := "Fixes BUG-123 in cache eviction"
	first := IsFixMessage(msg, schema.DefaultFixMarker)
	for range 10 {
		assert.Equal(t, first, IsFixMessage(msg, schema.DefaultFixMarker))
	}
}

func TestFilterFixCommits(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "c3", Message: "bug: off by one"},
		{Hash: "c2", Message: "docs"},
		{Hash: "c1", Message: "Bugfix for login"},
	}

	fixes := FilterFixCommits(commits, "bug")

	assert.Len(t, fixes, 2)
	assert.Equal(t, "c3", fixes[0].Hash)
	assert.Equal(t, "c1", fixes[1].Hash)
	assert.Empty(t, FilterFixCommits(nil, "bug"))
}

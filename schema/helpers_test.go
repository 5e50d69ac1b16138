package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		max      float64
		expected float64
	}{
		{"top file", 2.5, 2.5, 100},
		{"half of top", 1.0, 2.0, 50},
		{"zero max", 1.0, 0, 0},
		{"negative max", 1.0, -1, 0},
		{"top file below floor", 1e-11, 1e-11, 0},
		{"at floor", LabelScoreFloor, LabelScoreFloor, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RelativeScore(tt.score, tt.max), 1e-9)
		})
	}
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, CriticalValue, GetPlainLabel(100))
	assert.Equal(t, CriticalValue, GetPlainLabel(80))
	assert.Equal(t, HighValue, GetPlainLabel(79.9))
	assert.Equal(t, HighValue, GetPlainLabel(60))
	assert.Equal(t, ModerateValue, GetPlainLabel(40))
	assert.Equal(t, LowValue, GetPlainLabel(39.9))
	assert.Equal(t, LowValue, GetPlainLabel(0))
	assert.Equal(t, LowValue, GetPlainLabel(-10))
}

func TestEnrichFiles(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	files := []FileResult{
		{Path: "a.go", Score: 2.0, Fixes: 4, LastFix: now},
		{Path: "b.go", Score: 1.0, Fixes: 2, LastFix: now},
		{Path: "c.go", Score: 0.1, Fixes: 1, LastFix: now},
	}

	enriched := EnrichFiles(files)

	assert.Len(t, enriched, 3)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, CriticalValue, enriched[0].Label)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, ModerateValue, enriched[1].Label)
	assert.Equal(t, LowValue, enriched[2].Label)
	assert.Equal(t, "c.go", enriched[2].Path)
}

func TestEnrichFiles_StaleFixes(t *testing.T) {
	files := []FileResult{
		{Path: "old.go", Score: 3e-11, Fixes: 3},
		{Path: "older.go", Score: 1e-11, Fixes: 1},
	}

	enriched := EnrichFiles(files)

	assert.Equal(t, 1, enriched[0].Rank)
	for _, f := range enriched {
		assert.Equal(t, LowValue, f.Label, f.Path)
	}
}

func TestEnrichFiles_Empty(t *testing.T) {
	assert.Empty(t, EnrichFiles(nil))
}

func TestCommitParents(t *testing.T) {
	root := Commit{Hash: "aaa"}
	assert.True(t, root.IsRoot())
	assert.Equal(t, "", root.FirstParent())

	merge := Commit{Hash: "bbb", Parents: []string{"p1", "p2"}}
	assert.False(t, merge.IsRoot())
	assert.Equal(t, "p1", merge.FirstParent())
}

func TestFixCommitTimeMillis(t *testing.T) {
	fix := FixCommit{Time: time.Unix(1700000000, 999_000_000)}
	// Sub-second precision is dropped before scaling.
	assert.Equal(t, 1700000000000.0, fix.TimeMillis())
}

func TestTimeWindowSpan(t *testing.T) {
	w := TimeWindow{Now: 5000, OldestFixTime: 2000}
	assert.Equal(t, 3000.0, w.Span())
	assert.Equal(t, int64(5000), w.NowTime().UnixMilli())
	assert.Equal(t, int64(2000), w.OldestTime().UnixMilli())
}

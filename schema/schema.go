// Package schema has configs, models and global variables for all parts of hotspot.
package schema

import "time"

// Commit is a single commit read from the history source.
// The zone offset carried by Time is kept for display only; scoring uses Unix seconds.
type Commit struct {
	Hash    string    // Full object hash
	Message string    // Raw commit message
	Time    time.Time // Committer timestamp
	Parents []string  // Parent hashes in order; Parents[0] is the first parent
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// FirstParent returns the first parent hash, or "" for a root commit.
func (c Commit) FirstParent() string {
	if c.IsRoot() {
		return ""
	}
	return c.Parents[0]
}

// FixCommit is a commit whose message matched the fix marker, together with
// the paths it changed relative to its first parent.
type FixCommit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Files   []string  `json:"files"`
}

// TimeMillis returns the fix timestamp as whole seconds scaled to milliseconds.
func (f FixCommit) TimeMillis() float64 {
	return float64(f.Time.Unix()) * 1000
}

// FixHistory is the outcome of one history scan: fix commits in traversal order,
// plus how many candidate commits were skipped because their diff failed.
type FixHistory struct {
	Fixes   []FixCommit `json:"fixes"`
	Skipped int         `json:"skipped"`
}

// TimeWindow bounds the decay computation. Both values are milliseconds since the Unix epoch.
type TimeWindow struct {
	Now           float64 `json:"now_ms"`
	OldestFixTime float64 `json:"oldest_fix_ms"`
}

// Span returns the width of the window in milliseconds.
func (w TimeWindow) Span() float64 {
	return w.Now - w.OldestFixTime
}

// NowTime returns Now as a time.Time.
func (w TimeWindow) NowTime() time.Time {
	return time.UnixMilli(int64(w.Now))
}

// OldestTime returns OldestFixTime as a time.Time.
func (w TimeWindow) OldestTime() time.Time {
	return time.UnixMilli(int64(w.OldestFixTime))
}

// FileResult holds the accumulated decayed-fix score for one path.
type FileResult struct {
	Path    string    `json:"path"`
	Score   float64   `json:"score"`
	Fixes   int       `json:"fixes"`    // Number of fix commits touching the path
	LastFix time.Time `json:"last_fix"` // Most recent fix touching the path
}

// AnalysisOutput is everything produced by one analysis run.
type AnalysisOutput struct {
	Window      TimeWindow   `json:"window"`
	FixCommits  int          `json:"fix_commits"`
	Skipped     int          `json:"skipped"`
	FileResults []FileResult `json:"files"`
}

package outwriter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
)

// WriteAnalysisHeader prints a concise, 2-line header for an analysis run.
func WriteAnalysisHeader(w io.Writer, cfg *contract.Config, window schema.TimeWindow) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	repoPrefix, rangePrefix := "Repo:", "Range:"
	if cfg.UseEmojis {
		repoPrefix, rangePrefix = "🔎 Repo:", "📅 Range:"
	}

	// Line 1: The analysis summary (Repo, Ref and Marker)
	_, _ = fmt.Fprintf(w, "%s %s (Ref: %s, Marker: %q)\n", repoPrefix, repoName, cfg.Ref, cfg.Marker)

	// Line 2: The decay window from the oldest fix to now
	_, _ = fmt.Fprintf(w, "%s %s → %s\n", rangePrefix,
		window.OldestTime().Format(contract.DateTimeFormat),
		window.NowTime().Format(contract.DateTimeFormat))
}

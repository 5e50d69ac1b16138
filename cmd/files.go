package cmd

import (
	"github.com/bekerk/hotspot/core"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/spf13/cobra"
)

// filesCmd performs file-level fix hotspot analysis.
var filesCmd = &cobra.Command{
	Use:   "files [repo-path]",
	Short: "Show the files most touched by recent bug fixes.",
	Long: `Walk the history reachable from --ref, keep commits whose message contains
the fix marker (case-insensitive, "bug" by default) and rank every file those
commits changed.

Each fix contributes a weight between 0 and 1 to every file it touched. The
weight grows with the fix's recency inside the window spanning the oldest fix
to now, so a file fixed often and lately ranks above one fixed long ago.
Labels compare each file with the top score. A file scoring less than one fix
from the middle of the window is always labelled Low.

Examples:
  # Top 20 bug-fix hotspots of the current repository
  hotspot files --limit 20

  # Treat commits mentioning "fix" as fixes, on the release branch
  hotspot files --marker fix --ref release/1.x

  # Show fix counts and last fix time
  hotspot files --detail

  # Export findings to Parquet for tracking
  hotspot files --output parquet --output-file hotspots.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runAnalysis(core.ExecuteHotspotFiles); err != nil {
			contract.LogFatal("Cannot run files analysis", err)
		}
	},
}

package cmd

import (
	"errors"
	"os"

	"github.com/bekerk/hotspot/core"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/iocache"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path]",
	Short: "Fail when any file's fix score reaches a threshold (for CI/CD)",
	Long: `Run the fix hotspot analysis and exit non-zero when any file scores at or
above --threshold (default 1.0, roughly two fixes at the present moment).

Use cases:
- Pull request gates - flag files that keep needing fixes
- Release validation - catch areas with a burst of recent fixes

Examples:
  # Fail when any file has a score of 1.5 or more
  hotspot check --threshold 1.5

  # Gate on fixes labelled with a ticket prefix
  hotspot check --marker "BUG-" --threshold 2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := runAnalysis(core.ExecuteHotspotCheck)
		if errors.Is(err, core.ErrPolicyViolation) {
			// The report is already printed; only the exit code is left.
			iocache.CloseCaching()
			_ = StopProfiling()
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}

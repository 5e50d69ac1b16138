// Package core has core logic for analysis, scoring and ranking.
package core

import (
	"context"
	"time"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/outwriter"
)

// ExecutorFunc defines the function signature shared by the command entry points.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error

// ExecuteHotspotFiles runs the file-level analysis and prints results.
// It serves as the main entry point for the 'files' mode.
func ExecuteHotspotFiles(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := runSingleAnalysisCore(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteFiles(output, cfg, duration)
}

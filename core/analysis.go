package core

import (
	"context"
	"fmt"
	"os"

	"github.com/bekerk/hotspot/core/agg"
	"github.com/bekerk/hotspot/core/algo"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/outwriter"
	"github.com/bekerk/hotspot/schema"
	"github.com/sirupsen/logrus"
)

// runSingleAnalysisCore performs the collection, windowing, scoring, filtering and ranking steps.
func runSingleAnalysisCore(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	// --- 0. Capture "now" exactly once for the whole run ---
	now, err := algo.NowMillis(cfg.Now())
	if err != nil {
		return nil, err
	}

	// --- 1. Collection Phase (with caching) ---
	history, err := agg.CachedCollectFixCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to collect fix commits: %w", err)
	}

	// --- 2. Time Window over every fix, before any scoring ---
	window := algo.EstimateTimeWindow(history.Fixes, now)
	if shouldPrintHeader(ctx, cfg) {
		outwriter.NewOutWriter().WriteHeader(os.Stdout, cfg, window)
	}

	// --- 3. Scoring ---
	acc := algo.ScoreHotspots(history.Fixes, window)
	results := algo.BuildFileResults(acc, history.Fixes)

	// --- 4. Filtering and Ranking ---
	results = agg.FilterFileResults(cfg, results)
	ranked := algo.RankFiles(results, cfg.ResultLimit)

	contract.LogDebug("Scored fix history", logrus.Fields{
		"fixes":   len(history.Fixes),
		"skipped": history.Skipped,
		"files":   len(acc),
		"kept":    len(ranked),
	})

	return &schema.AnalysisOutput{
		Window:      window,
		FixCommits:  len(history.Fixes),
		Skipped:     history.Skipped,
		FileResults: ranked,
	}, nil
}

// GetHotspotFilesResults runs the analysis and returns the ranked output without printing anything.
// It is the entry point for programmatic callers such as the MCP server.
func GetHotspotFilesResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	return runSingleAnalysisCore(withSuppressHeader(ctx), cfg, client, mgr)
}

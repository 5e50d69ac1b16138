// Package agg has aggregation logic for Git fix history.
package agg

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bekerk/hotspot/core/algo"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
	"github.com/sirupsen/logrus"
)

// outcomeKind classifies what happened to one fix commit during extraction.
type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeSkip
	outcomeFatal
)

// extractOutcome is the per-commit result consumed by the collecting loop.
type extractOutcome struct {
	kind outcomeKind
	fix  schema.FixCommit
	err  error
}

// CollectFixCommits performs a single history scan from cfg.Ref, keeps the commits
// whose message contains cfg.Marker, and resolves the paths each one changed.
// A commit whose diff fails is skipped with a warning; cancellation aborts the scan.
func CollectFixCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.FixHistory, error) {
	// 1. Read the full history once
	commits, err := client.ListCommits(ctx, cfg.RepoPath, cfg.Ref)
	if err != nil {
		return nil, err
	}

	// 2. Classify
	candidates := algo.FilterFixCommits(commits, cfg.Marker)
	contract.LogDebug("Classified history", logrus.Fields{
		"commits": len(commits),
		"fixes":   len(candidates),
		"marker":  cfg.Marker,
	})

	// 3. Resolve changed paths in parallel, preserving traversal order
	outcomes := extractChanges(ctx, cfg, client, candidates)

	history := &schema.FixHistory{Fixes: make([]schema.FixCommit, 0, len(outcomes))}
	for _, o := range outcomes {
		switch o.kind {
		case outcomeOK:
			history.Fixes = append(history.Fixes, o.fix)
		case outcomeSkip:
			history.Skipped++
			contract.LogWarn(fmt.Sprintf("Skipping commit %s", o.fix.Hash), o.err)
		case outcomeFatal:
			return nil, o.err
		}
	}
	return history, nil
}

// extractChanges runs ChangedFiles for every commit on a pool of cfg.Workers goroutines.
// Each worker writes to a unique index of the result slice.
func extractChanges(ctx context.Context, cfg *contract.Config, client contract.GitClient, commits []schema.Commit) []extractOutcome {
	outcomes := make([]extractOutcome, len(commits))
	idxCh := make(chan int, len(commits))
	var wg sync.WaitGroup

	workers := max(1, min(cfg.Workers, len(commits)))
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				outcomes[i] = extractOne(ctx, cfg, client, commits[i])
			}
		})
	}

	for i := range commits {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return outcomes
}

// extractOne resolves the changed paths of a single fix commit.
func extractOne(ctx context.Context, cfg *contract.Config, client contract.GitClient, c schema.Commit) extractOutcome {
	fix := schema.FixCommit{Hash: c.Hash, Message: c.Message, Time: c.Time}

	if err := ctx.Err(); err != nil {
		return extractOutcome{kind: outcomeFatal, fix: fix, err: err}
	}
	if c.IsRoot() {
		contract.LogDebug("Root commit has no parent to diff against", logrus.Fields{"hash": c.Hash})
		return extractOutcome{kind: outcomeOK, fix: fix}
	}

	files, err := client.ChangedFiles(ctx, cfg.RepoPath, c)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return extractOutcome{kind: outcomeFatal, fix: fix, err: ctxErr}
		}
		return extractOutcome{kind: outcomeSkip, fix: fix, err: err}
	}
	fix.Files = files
	return extractOutcome{kind: outcomeOK, fix: fix}
}

// FilterFileResults applies the path filter and exclude patterns to scored files.
// It runs after accumulation so excluded paths never change another file's total.
func FilterFileResults(cfg *contract.Config, results []schema.FileResult) []schema.FileResult {
	pathFilterSet := cfg.PathFilter != ""
	out := make([]schema.FileResult, 0, len(results))
	for _, r := range results {
		if pathFilterSet && !strings.HasPrefix(r.Path, cfg.PathFilter) {
			continue
		}
		if contract.ShouldIgnore(r.Path, cfg.Excludes) {
			continue
		}
		out = append(out, r)
	}
	return out
}

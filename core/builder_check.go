package core

import (
	"context"
	"fmt"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	cfg         *contract.Config
	client      contract.GitClient
	mgr         contract.CacheManager
	ctx         context.Context
	output      *schema.AnalysisOutput
	maxScore    float64
	maxPath     string
	avgScore    float64
	failedFiles []schema.CheckFailedFile
	result      *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg:    cfg,
		client: client,
		mgr:    mgr,
		ctx:    ctx,
	}
}

// RunAnalysis scores every file; the result limit does not apply to a policy check.
func (b *CheckResultBuilder) RunAnalysis() (*CheckResultBuilder, error) {
	cfgAll := b.cfg.Clone()
	cfgAll.ResultLimit = 0

	output, err := GetHotspotFilesResults(b.ctx, cfgAll, b.client, b.mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze repository history: %w. Verify the repository has Git history and is readable", err)
	}
	b.output = output
	return b, nil
}

// ComputeMetrics calculates the max and average scores and identifies failed files.
// Files arrive ranked, so the first one holds the max score.
func (b *CheckResultBuilder) ComputeMetrics() *CheckResultBuilder {
	files := b.output.FileResults
	b.failedFiles = []schema.CheckFailedFile{}
	if len(files) == 0 {
		return b
	}

	b.maxScore = files[0].Score
	b.maxPath = files[0].Path

	sumScore := 0.0
	for _, file := range files {
		sumScore += file.Score
		if file.Score >= b.cfg.Threshold {
			b.failedFiles = append(b.failedFiles, schema.CheckFailedFile{
				Path:      file.Path,
				Score:     file.Score,
				Fixes:     file.Fixes,
				Threshold: b.cfg.Threshold,
			})
		}
	}
	b.avgScore = sumScore / float64(len(files))
	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		Passed:      len(b.failedFiles) == 0,
		FailedFiles: b.failedFiles,
		TotalFiles:  len(b.output.FileResults),
		FixCommits:  b.output.FixCommits,
		Ref:         b.cfg.Ref,
		Marker:      b.cfg.Marker,
		Threshold:   b.cfg.Threshold,
		MaxScore:    b.maxScore,
		MaxPath:     b.maxPath,
		AvgScore:    b.avgScore,
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

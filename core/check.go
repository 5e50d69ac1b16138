package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/outwriter"
)

// ErrPolicyViolation is returned when at least one file reaches the check threshold.
var ErrPolicyViolation = errors.New("policy check failed")

// ExecuteHotspotCheck runs the check command for CI/CD gating.
// It scores the whole history and returns ErrPolicyViolation if any file reaches the threshold.
func ExecuteHotspotCheck(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, client, mgr)
	if _, err := builder.RunAnalysis(); err != nil {
		return err
	}
	result := builder.ComputeMetrics().BuildResult().GetResult()

	if err := outwriter.NewOutWriter().WriteCheck(os.Stdout, result, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%w: %d violation(s) found", ErrPolicyViolation, len(result.FailedFiles))
	}
	return nil
}

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/bekerk/hotspot/internal/gitclient"
	"github.com/bekerk/hotspot/internal/gitfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkRepo(t *testing.T) *gitfixture.Repo {
	t.Helper()
	repo := newRepo(t)
	repo.Commit("bug one", analysisNow.AddDate(0, 0, -20), gitfixture.Change{
		Write: map[string]string{"a.txt": "a1", "b.txt": "b1"},
	})
	repo.Commit("bug two", analysisNow, gitfixture.Change{
		Write: map[string]string{"a.txt": "a2"},
	})
	return repo
}

func TestCheckResultBuilder(t *testing.T) {
	repo := checkRepo(t)
	cfg := testConfig(repo.Dir)
	cfg.Threshold = 0.4
	cfg.ResultLimit = 1 // ignored by the check

	b := NewCheckResultBuilder(context.Background(), cfg, gitclient.NewGoGitClient(), nil)
	_, err := b.RunAnalysis()
	require.NoError(t, err)
	result := b.ComputeMetrics().BuildResult().GetResult()

	assert.False(t, result.Passed)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 2, result.FixCommits)
	assert.Equal(t, "a.txt", result.MaxPath)
	assert.InDelta(t, 0.5, result.MaxScore, 1e-6)
	require.Len(t, result.FailedFiles, 1)
	assert.Equal(t, "a.txt", result.FailedFiles[0].Path)
	assert.Equal(t, 2, result.FailedFiles[0].Fixes)
	assert.Equal(t, 0.4, result.FailedFiles[0].Threshold)
	assert.InDelta(t, result.MaxScore/2, result.AvgScore, 1e-6)
}

func TestCheckResultBuilder_NoFiles(t *testing.T) {
	repo := newRepo(t)
	cfg := testConfig(repo.Dir)

	b := NewCheckResultBuilder(context.Background(), cfg, gitclient.NewGoGitClient(), nil)
	_, err := b.RunAnalysis()
	require.NoError(t, err)
	result := b.ComputeMetrics().BuildResult().GetResult()

	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.TotalFiles)
	assert.Empty(t, result.FailedFiles)
	assert.Zero(t, result.AvgScore)
}

func TestExecuteHotspotCheck(t *testing.T) {
	repo := checkRepo(t)

	t.Run("passes under threshold", func(t *testing.T) {
		cfg := testConfig(repo.Dir)
		err := ExecuteHotspotCheck(context.Background(), cfg, gitclient.NewGoGitClient(), nil)
		assert.NoError(t, err)
	})

	t.Run("fails at threshold", func(t *testing.T) {
		cfg := testConfig(repo.Dir)
		cfg.Threshold = 0.5
		err := ExecuteHotspotCheck(context.Background(), cfg, gitclient.NewGoGitClient(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPolicyViolation))
	})

	t.Run("analysis error", func(t *testing.T) {
		cfg := testConfig("/nonexistent/repo")
		err := ExecuteHotspotCheck(context.Background(), cfg, gitclient.NewGoGitClient(), nil)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrPolicyViolation))
	})
}

func TestExecuteHotspotCheck_CancelledContext(t *testing.T) {
	repo := checkRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteHotspotCheck(ctx, testConfig(repo.Dir), gitclient.NewGoGitClient(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

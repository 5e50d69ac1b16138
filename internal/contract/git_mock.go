package contract

import (
	"context"

	"github.com/bekerk/hotspot/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string, ref string) (string, error) {
	ret := m.Called(ctx, repoPath, ref)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// ListCommits implements the GitClient interface.
func (m *MockGitClient) ListCommits(ctx context.Context, repoPath string, ref string) ([]schema.Commit, error) {
	ret := m.Called(ctx, repoPath, ref)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}

// ChangedFiles implements the GitClient interface.
func (m *MockGitClient) ChangedFiles(ctx context.Context, repoPath string, commit schema.Commit) ([]string, error) {
	ret := m.Called(ctx, repoPath, commit)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

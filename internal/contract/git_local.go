package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bekerk/hotspot/schema"
	"github.com/sirupsen/logrus"
)

// Field and record separators used in the git log format string.
const (
	logFieldSep  = "\x00"
	logRecordSep = "\x1e"
)

// commitLogFormat renders hash, parents, committer date and raw body for each commit.
var commitLogFormat = "--format=%H%x00%P%x00%cI%x00%B%x1e"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. Verify that the path is inside a Git repository and the ref exists", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string, ref string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		if c.isUnbornHead(ctx, repoPath, ref) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListCommits implements the GitClient interface.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, ref string) ([]schema.Commit, error) {
	out, err := c.Run(ctx, repoPath, "log", commitLogFormat, ref, "--")
	if err != nil {
		if c.isUnbornHead(ctx, repoPath, ref) {
			return nil, nil
		}
		return nil, err
	}
	return ParseCommitLog(out), nil
}

// isUnbornHead reports whether ref is HEAD of an existing repository that has no commits yet.
func (c *LocalGitClient) isUnbornHead(ctx context.Context, repoPath string, ref string) bool {
	if ref != "HEAD" {
		return false
	}
	if _, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "HEAD"); err == nil {
		return false
	}
	_, err := c.Run(ctx, repoPath, "rev-parse", "--git-dir")
	return err == nil
}

// ChangedFiles implements the GitClient interface.
func (c *LocalGitClient) ChangedFiles(ctx context.Context, repoPath string, commit schema.Commit) ([]string, error) {
	if commit.IsRoot() {
		return nil, nil
	}
	out, err := c.Run(ctx, repoPath,
		"diff-tree", "-r", "-z", "--no-renames", "--name-only",
		commit.FirstParent(), commit.Hash,
	)
	if err != nil {
		return nil, err
	}
	var files []string
	for p := range strings.SplitSeq(string(out), "\x00") {
		if p != "" {
			files = append(files, p)
		}
	}
	return files, nil
}

// ParseCommitLog decodes the output of 'git log' rendered with commitLogFormat.
// Records that cannot be decoded are skipped with a warning.
func ParseCommitLog(out []byte) []schema.Commit {
	var commits []schema.Commit
	for raw := range bytes.SplitSeq(out, []byte(logRecordSep)) {
		record := strings.TrimLeft(string(raw), "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		commit, err := parseCommitRecord(record)
		if err != nil {
			LogWarn("Skipping malformed commit record", err)
			continue
		}
		commits = append(commits, commit)
	}
	return commits
}

// parseCommitRecord decodes a single hash/parents/date/body record.
func parseCommitRecord(record string) (schema.Commit, error) {
	fields := strings.SplitN(record, logFieldSep, 4)
	if len(fields) != 4 {
		return schema.Commit{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	hash := strings.TrimSpace(fields[0])
	if hash == "" {
		return schema.Commit{}, errors.New("missing commit hash")
	}
	when, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[2]))
	if err != nil {
		return schema.Commit{}, fmt.Errorf("commit %s: invalid date: %w", hash, err)
	}
	LogDebug("Parsed commit", logrus.Fields{"hash": hash})
	return schema.Commit{
		Hash:    hash,
		Message: strings.TrimRight(fields[3], "\n"),
		Time:    when,
		Parents: strings.Fields(fields[1]),
	}, nil
}

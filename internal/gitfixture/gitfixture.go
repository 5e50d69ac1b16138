// Package gitfixture builds throwaway Git repositories for tests.
package gitfixture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a temporary on-disk repository with a worktree.
type Repo struct {
	t    testing.TB
	Dir  string
	repo *git.Repository
}

// Change describes the worktree edits made before one commit.
type Change struct {
	Write   map[string]string // path -> content
	Remove  []string
	Parents []string // explicit parents; HEAD when empty
}

// New initializes an empty repository in a temporary directory.
func New(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	// Resolve symlinks so paths match what git reports as the top level.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return &Repo{t: t, Dir: dir, repo: repo}
}

// Commit applies change to the worktree and records a commit at when.
// It returns the new commit hash.
func (r *Repo) Commit(message string, when time.Time, change Change) string {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	for path, content := range change.Write {
		full := filepath.Join(r.Dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			r.t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			r.t.Fatalf("write %s: %v", path, err)
		}
		if _, err := wt.Add(path); err != nil {
			r.t.Fatalf("add %s: %v", path, err)
		}
	}
	for _, path := range change.Remove {
		if _, err := wt.Remove(path); err != nil {
			r.t.Fatalf("remove %s: %v", path, err)
		}
	}
	sig := &object.Signature{Name: "Test Author", Email: "author@example.com", When: when}
	opts := &git.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true}
	for _, p := range change.Parents {
		opts.Parents = append(opts.Parents, plumbing.NewHash(p))
	}
	hash, err := wt.Commit(message, opts)
	if err != nil {
		r.t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

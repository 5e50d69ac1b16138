// Package gitclient reads Git history in-process through go-git.
package gitclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitClient implements contract.GitClient without a git binary.
// Opened repositories are kept for the lifetime of the client.
type GoGitClient struct {
	mu    sync.Mutex
	repos map[string]*git.Repository

	// readMu serializes object reads; go-git storage is not safe for concurrent use.
	readMu sync.Mutex
}

var _ contract.GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{repos: make(map[string]*git.Repository)}
}

// open returns the repository containing path, walking up to find .git.
func (c *GoGitClient) open(path string) (*git.Repository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if repo, ok := c.repos[path]; ok {
		return repo, nil
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("cannot open repository at %q: %w", path, err)
	}
	c.repos[path] = repo
	return repo, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := c.open(contextPath)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository at %q has no worktree: %w", contextPath, err)
	}
	return wt.Filesystem.Root(), nil
}

// GetRepoHash implements the GitClient interface.
func (c *GoGitClient) GetRepoHash(_ context.Context, repoPath string, ref string) (string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if isUnbornHead(ref, err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", ref, err)
	}
	return hash.String(), nil
}

// isUnbornHead reports whether err comes from resolving HEAD in a repository with no commits.
func isUnbornHead(ref string, err error) bool {
	return ref == "HEAD" && errors.Is(err, plumbing.ErrReferenceNotFound)
}

// ListCommits implements the GitClient interface.
func (c *GoGitClient) ListCommits(ctx context.Context, repoPath string, ref string) ([]schema.Commit, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, err
	}
	from, err := repo.ResolveRevision(plumbing.Revision(ref))
	if isUnbornHead(ref, err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %q: %w", ref, err)
	}
	iter, err := repo.Log(&git.LogOptions{From: *from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("cannot walk history from %q: %w", ref, err)
	}
	defer iter.Close()

	c.readMu.Lock()
	defer c.readMu.Unlock()

	var commits []schema.Commit
	err = iter.ForEach(func(obj *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, toCommit(obj))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// ChangedFiles implements the GitClient interface.
func (c *GoGitClient) ChangedFiles(ctx context.Context, repoPath string, commit schema.Commit) ([]string, error) {
	if commit.IsRoot() {
		return nil, nil
	}
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, err
	}
	c.readMu.Lock()
	defer c.readMu.Unlock()

	obj, err := repo.CommitObject(plumbing.NewHash(commit.Hash))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", commit.Hash, err)
	}
	parent, err := repo.CommitObject(plumbing.NewHash(commit.FirstParent()))
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", commit.Hash, err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %s: %w", parent.Hash, err)
	}
	tree, err := obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %s: %w", commit.Hash, err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, &object.DiffTreeOptions{DetectRenames: false})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", commit.Hash, err)
	}

	files := make([]string, 0, len(changes))
	for _, ch := range changes {
		// Additions have no pre-change path and are tracked under the new one.
		name := ch.From.Name
		if name == "" {
			name = ch.To.Name
		}
		files = append(files, name)
	}
	return files, nil
}

func toCommit(obj *object.Commit) schema.Commit {
	parents := make([]string, len(obj.ParentHashes))
	for i, h := range obj.ParentHashes {
		parents[i] = h.String()
	}
	return schema.Commit{
		Hash:    obj.Hash.String(),
		Message: strings.TrimRight(obj.Message, "\n"),
		Time:    obj.Committer.When,
		Parents: parents,
	}
}

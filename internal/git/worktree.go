package git

import (
	"context"
	"strings"
)

// WorktreeInfo holds metadata about a single git worktree.
type WorktreeInfo struct {
	Path   string
	Commit string
	Branch string
	Bare   bool
}

// CreateWorktree adds a linked worktree at path with branch checked out.
func (r *Repo) CreateWorktree(ctx context.Context, path, branch string) error {
	_, err := r.run(ctx, "worktree", "add", path, branch)
	return err
}

// ListWorktrees returns every worktree of the repository, parsed from
// `git worktree list --porcelain`.
func (r *Repo) ListWorktrees(ctx context.Context) ([]WorktreeInfo, error) {
	out, err := r.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktrees(out), nil
}

func parseWorktrees(out string) []WorktreeInfo {
	if out == "" {
		return nil
	}

	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			current.Commit = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			current.Bare = true
		}
	}

	if current.Path != "" {
		worktrees = append(worktrees, current)
	}
	return worktrees
}

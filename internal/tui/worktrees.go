package tui

import (
	"context"
	"path/filepath"

	"agent-workflow/internal/git"
	"agent-workflow/internal/roles"
)

// WorktreeBranches maps each role directory that git knows as a worktree to
// its checked-out branch. Lookup failures yield an empty map; the menu then
// falls back to plain directory existence.
func WorktreeBranches(ctx context.Context, repo *git.Repo, reg roles.Registry) map[string]string {
	out := make(map[string]string)
	if repo == nil {
		return out
	}

	wts, err := repo.ListWorktrees(ctx)
	if err != nil {
		return out
	}

	known := make(map[string]string, len(wts))
	for _, wt := range wts {
		known[resolve(wt.Path)] = wt.Branch
	}

	for _, cfg := range reg.Configs() {
		if branch, ok := known[resolve(cfg.Directory)]; ok && branch != "" {
			out[cfg.Directory] = branch
		}
	}
	return out
}

// resolve follows symlinks when it can, so /tmp and /private/tmp style
// aliases compare equal.
func resolve(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return filepath.Clean(p)
}

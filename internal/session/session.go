// Package session starts an agent session inside a role worktree: it writes
// the session log the generated coordinator script would write and returns
// the readiness guidance.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"agent-workflow/internal/roles"
)

// LogName is the session log file written at the root of a worktree.
const LogName = "SESSION_LOG.txt"

// dateLayout matches the default output of date(1) in the C locale.
const dateLayout = "Mon Jan _2 15:04:05 MST 2006"

// Start overwrites <worktree>/SESSION_LOG.txt with the start time, agent name
// and focus. The worktree must already exist; nothing is written otherwise.
func Start(cfg roles.Config, now time.Time) (string, error) {
	info, err := os.Stat(cfg.Directory)
	if err != nil {
		return "", fmt.Errorf("session: worktree not found: %s: %w", cfg.Directory, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("session: worktree is not a directory: %s", cfg.Directory)
	}

	path := filepath.Join(cfg.Directory, LogName)
	if err := os.WriteFile(path, Log(cfg, now), 0o644); err != nil {
		return "", fmt.Errorf("session: write %s: %w", path, err)
	}
	return path, nil
}

// Log returns the session log content for cfg started at now.
func Log(cfg roles.Config, now time.Time) []byte {
	return []byte(fmt.Sprintf("Session started: %s\nAgent: %s\nFocus: %s\n",
		now.Format(dateLayout), cfg.Name, cfg.Focus))
}

// Guidance returns the lines printed once a session is ready.
func Guidance(cfg roles.Config) []string {
	return []string{
		fmt.Sprintf("Starting %s session...", cfg.Name),
		"Directory: " + cfg.Directory,
		"Focus: " + cfg.Focus,
		"----------------------------------------",
		fmt.Sprintf("Ready for %s tasks", cfg.Name),
		"Use PROJECT_CONTEXT.md for full context",
		fmt.Sprintf("See .claude/agents/%s.yaml for configuration", cfg.Name),
	}
}

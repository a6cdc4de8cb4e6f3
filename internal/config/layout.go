package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScriptName is the file name of the generated coordinator script.
const ScriptName = "agent-coordinator.sh"

// Layout holds the resolved paths of one project. It is an immutable value
// built once per invocation and passed to every phase.
type Layout struct {
	Root       string // absolute project root
	Parent     string // directory that holds the role worktrees
	AgentsDir  string // <root>/.claude/agents
	ScriptsDir string // <root>/scripts
	ScriptPath string // <root>/scripts/agent-coordinator.sh
}

// NewLayout resolves root to an absolute, clean path and derives the rest of
// the layout from it. An empty root means the current working directory.
func NewLayout(root string) (Layout, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Layout{}, fmt.Errorf("config: working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("config: resolve project root: %w", err)
	}

	scripts := filepath.Join(abs, "scripts")
	return Layout{
		Root:       abs,
		Parent:     filepath.Dir(abs),
		AgentsDir:  filepath.Join(abs, ".claude", "agents"),
		ScriptsDir: scripts,
		ScriptPath: filepath.Join(scripts, ScriptName),
	}, nil
}

// Path joins a slash-separated project-relative path onto the root.
func (l Layout) Path(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

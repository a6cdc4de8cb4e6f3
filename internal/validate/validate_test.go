package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"agent-workflow/internal/config"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, withAgents bool) config.Layout {
	t.Helper()
	root := filepath.Join(t.TempDir(), "esm")
	for _, rel := range []string{"PROJECT_CONTEXT.md", "NEXT_SESSION_BRIEFING.md", "database/schema.sql", "lib/migration-utils.ts"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0o755))
	if withAgents {
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude", "agents"), 0o755))
	}
	layout, err := config.NewLayout(root)
	require.NoError(t, err)
	return layout
}

func TestRunPassesWithoutWorktrees(t *testing.T) {
	layout := fixture(t, true)
	reg := roles.NewRegistry(layout.Root)
	var buf bytes.Buffer

	res := Run(layout, reg, report.New(&buf))

	assert.True(t, res.Passed)
	assert.Len(t, res.Messages, 11)
	assert.Equal(t, 6, res.Count(report.Success))
	assert.Equal(t, 5, res.Count(report.Warning))
	assert.Contains(t, buf.String(), "ESM Platform - Setup Validation")
	assert.Contains(t, buf.String(), "⚠ Worktree database-expert: ✗")
}

func TestRunFailsWithoutAgentConfigs(t *testing.T) {
	layout := fixture(t, false)
	var buf bytes.Buffer

	res := Run(layout, roles.NewRegistry(layout.Root), report.New(&buf))

	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Count(report.Error))
	assert.Contains(t, buf.String(), "✗ Agent configurations: ✗")
}

func TestRunReportsPresentWorktrees(t *testing.T) {
	layout := fixture(t, true)
	reg := roles.NewRegistry(layout.Root)
	for _, cfg := range reg.Configs() {
		require.NoError(t, os.MkdirAll(cfg.Directory, 0o755))
	}

	res := Run(layout, reg, report.New(&bytes.Buffer{}))

	assert.True(t, res.Passed)
	assert.Equal(t, 11, res.Count(report.Success))
	assert.Equal(t, "Worktree testing-specialist: ✓", res.Messages[10].Text)
}

func TestItemsOrder(t *testing.T) {
	layout := fixture(t, true)
	items := Items(layout)
	require.Len(t, items, 6)
	assert.Equal(t, "Project context file", items[0].Label)
	assert.Equal(t, layout.AgentsDir, items[4].Path)
	assert.Equal(t, layout.ScriptsDir, items[5].Path)
}

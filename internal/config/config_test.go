package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir so no real config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.RotationMB)
	assert.False(t, cfg.Logging.ToConsole)
	assert.True(t, cfg.State.Ledger)
	assert.True(t, cfg.UI.Color)
	assert.Equal(t, filepath.Join(home, ".agent-workflow"), cfg.State.Dir)
	assert.Equal(t, filepath.Join(home, ".agent-workflow", "logs"), cfg.LogDir())
	assert.Equal(t, filepath.Join(home, ".agent-workflow", "ledger.db"), cfg.LedgerPath())
}

func TestLoadFileAndEnvLayering(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  rotation_mb: 3
state:
  dir: `+dir+`
  ledger: false
ui:
  color: false
`), 0o644))

	t.Setenv("AGENT_WORKFLOW_LOGGING_LEVEL", "warn")
	t.Setenv("AGENT_WORKFLOW_LOGGING_ROTATION_MB", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Logging.RotationMB)
	assert.Equal(t, dir, cfg.State.Dir)
	assert.False(t, cfg.State.Ledger)
	assert.False(t, cfg.UI.Color)
}

func TestLoadPicksUpDefaultFile(t *testing.T) {
	home := isolate(t)
	stateDir := filepath.Join(home, ".agent-workflow")
	require.NoError(t, os.MkdirAll(stateDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte("logging:\n  level: error\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultSettings()
	cfg.Logging.Level = "verbose"
	cfg.Logging.RotationMB = 0
	cfg.State.Dir = ""

	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "logging.rotation_mb")
	assert.Contains(t, err.Error(), "state.dir")
}

func TestEnsureDefaults(t *testing.T) {
	cfg := Settings{Logging: LoggingConfig{Level: "DEBUG"}}
	EnsureDefaults(&cfg)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.State.Dir)
	assert.Equal(t, 0, cfg.Logging.RotationMB)
}

func TestNewLayout(t *testing.T) {
	root := t.TempDir()

	l, err := NewLayout(root)
	require.NoError(t, err)

	assert.Equal(t, root, l.Root)
	assert.Equal(t, filepath.Dir(root), l.Parent)
	assert.Equal(t, filepath.Join(root, ".claude", "agents"), l.AgentsDir)
	assert.Equal(t, filepath.Join(root, "scripts"), l.ScriptsDir)
	assert.Equal(t, filepath.Join(root, "scripts", ScriptName), l.ScriptPath)
	assert.Equal(t, filepath.Join(root, "database", "schema.sql"), l.Path("database/schema.sql"))
}

func TestNewLayoutDefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	l, err := NewLayout("")
	require.NoError(t, err)
	assert.Equal(t, wd, l.Root)
}

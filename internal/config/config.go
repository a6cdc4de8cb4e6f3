package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
// AGENT_WORKFLOW_LOGGING_LEVEL maps to logging.level.
const EnvPrefix = "AGENT_WORKFLOW_"

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `koanf:"level"`
	ToConsole  bool   `koanf:"to_console"`
	RotationMB int    `koanf:"rotation_mb"`
}

// StateConfig controls where the tool keeps its own files.
type StateConfig struct {
	Dir    string `koanf:"dir"`
	Ledger bool   `koanf:"ledger"`
}

// UIConfig holds console presentation settings.
type UIConfig struct {
	Color bool `koanf:"color"`
}

// Settings is the top-level configuration for agent-workflow. None of it
// describes the roles themselves; those are fixed in package roles.
type Settings struct {
	Logging LoggingConfig `koanf:"logging"`
	State   StateConfig   `koanf:"state"`
	UI      UIConfig      `koanf:"ui"`
}

// DefaultStateDir returns $HOME/.agent-workflow, falling back to the system
// temp directory when the home directory cannot be resolved.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "agent-workflow")
	}
	return filepath.Join(home, ".agent-workflow")
}

// DefaultSettings returns Settings populated with all default values.
func DefaultSettings() Settings {
	return Settings{
		Logging: LoggingConfig{
			Level:      "info",
			ToConsole:  false,
			RotationMB: 10,
		},
		State: StateConfig{
			Dir:    DefaultStateDir(),
			Ledger: true,
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// Load layers defaults, an optional YAML file and AGENT_WORKFLOW_*
// environment variables, in that order. When path is empty the file
// <state dir>/config.yaml is used if it exists; an explicit path must exist.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	d := DefaultSettings()

	k.Set("logging.level", d.Logging.Level)
	k.Set("logging.to_console", d.Logging.ToConsole)
	k.Set("logging.rotation_mb", d.Logging.RotationMB)
	k.Set("state.dir", d.State.Dir)
	k.Set("state.ledger", d.State.Ledger)
	k.Set("ui.color", d.UI.Color)

	if path == "" {
		candidate := filepath.Join(d.State.Dir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Only the first underscore separates section from key, so
	// AGENT_WORKFLOW_LOGGING_ROTATION_MB becomes logging.rotation_mb.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Settings
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	EnsureDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isValidLogLevel reports whether s is an acceptable logging.level value.
func isValidLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// Validate checks cfg for constraint violations and returns a combined error
// describing every problem found, or nil if the config is valid.
func Validate(cfg *Settings) error {
	var errs []string

	if !isValidLogLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level))
	}

	if cfg.Logging.RotationMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.rotation_mb must be >= 1; got %d", cfg.Logging.RotationMB))
	}

	if cfg.State.Dir == "" {
		errs = append(errs, "state.dir must not be empty")
	}

	if len(errs) > 0 {
		return errors.New("config: " + strings.Join(errs, "; "))
	}

	return nil
}

// EnsureDefaults fills in zero-value string fields in cfg with their default
// values. Numeric and boolean fields are left alone.
func EnsureDefaults(cfg *Settings) {
	d := DefaultSettings()

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if cfg.State.Dir == "" {
		cfg.State.Dir = d.State.Dir
	}
}

// LogDir returns the directory that holds the tool's log files.
func (s *Settings) LogDir() string {
	return filepath.Join(s.State.Dir, "logs")
}

// LedgerPath returns the path of the run history database.
func (s *Settings) LedgerPath() string {
	return filepath.Join(s.State.Dir, "ledger.db")
}

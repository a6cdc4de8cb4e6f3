package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"agent-workflow/internal/roles"
)

// Manager owns every log file written by one agent-workflow invocation:
//
//	<logDir>/workflow.log          run log, mirrors console status lines
//	<logDir>/roles/<role>.log      per-role provisioning detail (git stderr)
type Manager struct {
	mu sync.Mutex

	// Workflow is the run log.
	Workflow *Logger

	roleLogs map[roles.Role]*Logger

	rolesDir   string
	level      string
	rotationMB int
	toConsole  bool
}

// NewManager creates logDir and opens the run log inside it.
func NewManager(logDir string, level string, rotationMB int, toConsole bool) (*Manager, error) {
	rolesDir := filepath.Join(logDir, "roles")
	for _, dir := range []string{logDir, rolesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: mkdir %s: %w", dir, err)
		}
	}

	wf, err := NewLogger(filepath.Join(logDir, "workflow.log"), level, rotationMB, toConsole)
	if err != nil {
		return nil, fmt.Errorf("logging: workflow logger: %w", err)
	}

	return &Manager{
		Workflow:   wf,
		roleLogs:   make(map[roles.Role]*Logger),
		rolesDir:   rolesDir,
		level:      level,
		rotationMB: rotationMB,
		toConsole:  toConsole,
	}, nil
}

// RoleLogger returns the logger for role, opening it on first use. A nil
// Manager returns a nil (discarding) Logger.
func (m *Manager) RoleLogger(role roles.Role) (*Logger, error) {
	if m == nil {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.roleLogs[role]; ok {
		return l, nil
	}

	path := filepath.Join(m.rolesDir, role.String()+".log")
	l, err := NewLogger(path, m.level, m.rotationMB, m.toConsole)
	if err != nil {
		return nil, fmt.Errorf("logging: role logger %s: %w", role, err)
	}

	if m.roleLogs == nil {
		m.roleLogs = make(map[roles.Role]*Logger)
	}
	m.roleLogs[role] = l
	return l, nil
}

// WorkflowLogger returns the run log, or nil for a nil Manager.
func (m *Manager) WorkflowLogger() *Logger {
	if m == nil {
		return nil
	}
	return m.Workflow
}

// Close closes the run log and every role log opened so far.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	wf := m.Workflow
	logs := make([]*Logger, 0, len(m.roleLogs))
	for _, l := range m.roleLogs {
		logs = append(logs, l)
	}
	m.roleLogs = nil
	m.mu.Unlock()

	var errs []error
	if err := wf.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, l := range logs {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

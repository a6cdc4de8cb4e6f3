// Package app owns the long-lived resources of one agent-workflow
// invocation and builds the pieces each command needs.
package app

import (
	"errors"
	"fmt"
	"io"

	"agent-workflow/internal/config"
	"agent-workflow/internal/git"
	"agent-workflow/internal/ledger"
	"agent-workflow/internal/logging"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/workflow"
)

// App holds the settings, logs, ledger and reporter shared by commands.
type App struct {
	settings *config.Settings
	logs     *logging.Manager
	ledger   *ledger.Ledger
	reporter *report.Reporter
}

// Settings returns the loaded settings.
func (a *App) Settings() *config.Settings { return a.settings }

// Logs returns the logging manager.
func (a *App) Logs() *logging.Manager { return a.logs }

// Ledger returns the run history, or nil when it is disabled or could not
// be opened.
func (a *App) Ledger() *ledger.Ledger { return a.ledger }

// Reporter returns the console reporter.
func (a *App) Reporter() *report.Reporter { return a.reporter }

// Open creates the App. Logging failures are fatal; a ledger that cannot be
// opened is logged and left nil so a run can still proceed.
func Open(settings *config.Settings, out io.Writer) (*App, error) {
	logs, err := logging.NewManager(settings.LogDir(), settings.Logging.Level, settings.Logging.RotationMB, settings.Logging.ToConsole)
	if err != nil {
		return nil, fmt.Errorf("app: init logging: %w", err)
	}

	a := &App{
		settings: settings,
		logs:     logs,
		reporter: report.New(out,
			report.WithColor(settings.UI.Color),
			report.WithLogger(logs.Workflow),
		),
	}

	if settings.State.Ledger {
		l, err := ledger.Open(settings.LedgerPath())
		if err != nil {
			logs.Workflow.Warn("app: ledger disabled: %v", err)
		} else {
			a.ledger = l
		}
	}

	logs.Workflow.Debug("app: state dir %s", settings.State.Dir)
	return a, nil
}

// Workflow builds a Runner for the project at layout.
func (a *App) Workflow(layout config.Layout) (*workflow.Runner, error) {
	repo, err := git.NewRepo(layout.Root, nil)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return &workflow.Runner{
		Layout:   layout,
		Registry: roles.NewRegistry(layout.Root),
		Repo:     repo,
		Reporter: a.reporter,
		Logs:     a.logs,
		Ledger:   a.ledger,
	}, nil
}

// Close releases the ledger and every log file.
func (a *App) Close() error {
	var errs []error

	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close ledger: %w", err))
		}
	}

	if a.logs != nil {
		if err := a.logs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close logs: %w", err))
		}
	}

	return errors.Join(errs...)
}

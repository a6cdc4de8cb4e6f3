// Package workflow sequences the setup phases for one project: prerequisite
// check, worktree provisioning, task advice, coordinator script generation
// and final validation.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-workflow/internal/advisor"
	"agent-workflow/internal/config"
	"agent-workflow/internal/coordinator"
	"agent-workflow/internal/ledger"
	"agent-workflow/internal/logging"
	"agent-workflow/internal/prereq"
	"agent-workflow/internal/provision"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/validate"
)

var (
	// ErrPrerequisites means a required project file is missing. Nothing
	// was mutated.
	ErrPrerequisites = errors.New("workflow: prerequisites check failed")

	// ErrValidation means setup ran but a required item is still missing.
	ErrValidation = errors.New("workflow: setup validation failed")
)

// Result collects what each phase produced.
type Result struct {
	RunID         string
	Prerequisites report.CheckResult
	Outcomes      []provision.Outcome
	ScriptPath    string
	Validation    report.CheckResult
}

// Runner holds everything one run needs. Layout and Registry are fixed for
// the run; Logs and Ledger may be nil.
type Runner struct {
	Layout   config.Layout
	Registry roles.Registry
	Repo     provision.Repo
	Reporter *report.Reporter
	Logs     *logging.Manager
	Ledger   *ledger.Ledger
	Now      func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run executes the pipeline. It returns ErrPrerequisites or ErrValidation
// for the two checkpoint failures, another error if the coordinator script
// could not be written, and nil when everything is in place.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	rep := r.Reporter
	log := r.Logs.WorkflowLogger()

	rep.Header("Agent Workflow Manager")
	rep.Println("Orchestrating parallel development for ESM Platform")
	log.Info("workflow: project root %s", r.Layout.Root)

	var res Result
	res.RunID = r.startRun(ctx)

	res.Prerequisites = prereq.Check(r.Layout, rep)
	if !res.Prerequisites.Passed {
		rep.Status(report.Error, "Prerequisites check failed")
		r.finishRun(ctx, res.RunID, ledger.StatusFailed, "")
		return res, ErrPrerequisites
	}

	res.Outcomes = provision.New(r.Repo, rep, r.Logs).Run(ctx, r.Registry)
	r.recordOutcomes(ctx, res.RunID, res.Outcomes)

	advisor.Print(rep, r.Registry)

	rep.Header("Session Coordination Script")
	path, err := coordinator.Write(r.Layout, r.Registry)
	if err != nil {
		rep.Statusf(report.Error, "Failed to create agent coordinator: %v", err)
		r.finishRun(ctx, res.RunID, ledger.StatusFailed, "")
		return res, fmt.Errorf("workflow: %w", err)
	}
	res.ScriptPath = path
	rep.Statusf(report.Success, "Created agent coordinator: %s", path)

	res.Validation = validate.Run(r.Layout, r.Registry, rep)
	if !res.Validation.Passed {
		rep.Status(report.Error, "Setup validation failed")
		r.finishRun(ctx, res.RunID, ledger.StatusFailed, path)
		return res, ErrValidation
	}

	rep.Status(report.Success, "All systems ready for parallel development!")
	rep.Println("")
	rep.Println("🚀 READY FOR MAXIMUM EFFICIENCY!")
	rep.Println("Use scripts/" + config.ScriptName + " to start specialized workflows")
	r.finishRun(ctx, res.RunID, ledger.StatusSucceeded, path)
	return res, nil
}

// The ledger is history only: its failures are logged and never change
// the outcome of a run.

func (r *Runner) startRun(ctx context.Context) string {
	if r.Ledger == nil {
		return ""
	}
	run, err := r.Ledger.StartRun(ctx, r.Layout.Root, r.now())
	if err != nil {
		r.Logs.WorkflowLogger().Warn("workflow: %v", err)
		return ""
	}
	return run.ID
}

func (r *Runner) recordOutcomes(ctx context.Context, runID string, outcomes []provision.Outcome) {
	if r.Ledger == nil || runID == "" {
		return
	}
	for i, o := range outcomes {
		ro := ledger.RoleOutcome{
			RunID:    runID,
			Position: i + 1,
			Role:     o.Role.String(),
			Status:   o.Status.String(),
			Branch:   o.Branch.String(),
			Path:     o.Path,
		}
		if o.Err != nil {
			msg := o.Err.Error()
			ro.Error = &msg
		}
		if err := r.Ledger.RecordOutcome(ctx, ro); err != nil {
			r.Logs.WorkflowLogger().Warn("workflow: %v", err)
		}
	}
}

func (r *Runner) finishRun(ctx context.Context, runID, status, scriptPath string) {
	if r.Ledger == nil || runID == "" {
		return
	}
	if err := r.Ledger.FinishRun(ctx, runID, status, scriptPath, r.now()); err != nil {
		r.Logs.WorkflowLogger().Warn("workflow: finish run %s: %v", runID, err)
	}
}

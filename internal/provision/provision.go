// Package provision creates one branch and linked worktree per role.
package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"agent-workflow/internal/git"
	"agent-workflow/internal/logging"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
)

// Status is the per-role result of provisioning.
type Status int

const (
	Created Status = iota + 1
	AlreadyExists
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case AlreadyExists:
		return "already_exists"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// BranchStatus records what happened to the role's branch.
type BranchStatus int

const (
	// BranchSkipped means no branch work was attempted because the
	// worktree directory was already present.
	BranchSkipped BranchStatus = iota
	BranchCreated
	BranchExisted
	BranchFailed
)

func (b BranchStatus) String() string {
	switch b {
	case BranchCreated:
		return "created"
	case BranchExisted:
		return "existed"
	case BranchFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Outcome is the typed result for one role.
type Outcome struct {
	Role   roles.Role
	Path   string
	Status Status
	Branch BranchStatus
	Err    error
}

// Repo is the subset of *git.Repo the provisioner uses.
type Repo interface {
	BranchExists(ctx context.Context, name string) (bool, error)
	CreateBranch(ctx context.Context, name, base string) error
	CreateWorktree(ctx context.Context, path, branch string) error
}

// Provisioner creates worktrees for every role in a registry.
type Provisioner struct {
	repo Repo
	rep  *report.Reporter
	logs *logging.Manager
}

// New returns a Provisioner. logs may be nil.
func New(repo Repo, rep *report.Reporter, logs *logging.Manager) *Provisioner {
	return &Provisioner{repo: repo, rep: rep, logs: logs}
}

// Run provisions every role in registry order and returns one Outcome per
// role in the same order. A failure for one role never stops the others.
func (p *Provisioner) Run(ctx context.Context, reg roles.Registry) []Outcome {
	p.rep.Header("Git Worktrees Setup")

	configs := reg.Configs()
	outcomes := make([]Outcome, 0, len(configs))
	for _, cfg := range configs {
		outcomes = append(outcomes, p.provision(ctx, cfg))
	}
	return outcomes
}

func (p *Provisioner) provision(ctx context.Context, cfg roles.Config) (out Outcome) {
	out = Outcome{Role: cfg.Role, Path: cfg.Directory}

	log, err := p.logs.RoleLogger(cfg.Role)
	if err != nil {
		p.logs.WorkflowLogger().Warn("provision: %v", err)
	}

	defer func() {
		if v := recover(); v != nil {
			out.Status = Failed
			out.Err = fmt.Errorf("provision: %s: panic: %v", cfg.Name, v)
			log.Error("%v", out.Err)
			p.rep.Statusf(report.Error, "Error creating worktree %s: %v", cfg.Name, v)
		}
	}()

	_, err = os.Stat(cfg.Directory)
	switch {
	case err == nil:
		out.Status = AlreadyExists
		log.Info("worktree already exists at %s", cfg.Directory)
		p.rep.Statusf(report.Warning, "Worktree already exists: %s", cfg.Name)
		return out
	case !os.IsNotExist(err):
		return p.unexpected(out, cfg, log, err)
	}

	out.Branch = p.ensureBranch(ctx, cfg, log)

	if err := p.repo.CreateWorktree(ctx, cfg.Directory, cfg.Branch); err != nil {
		var cmdErr *git.CommandError
		if !errors.As(err, &cmdErr) {
			return p.unexpected(out, cfg, log, err)
		}
		out.Status = Failed
		out.Err = err
		log.Error("worktree add failed: %v", err)
		p.rep.Statusf(report.Error, "Failed to create worktree: %s", cfg.Name)
		return out
	}

	out.Status = Created
	log.Info("created worktree %s on branch %s", cfg.Directory, cfg.Branch)
	p.rep.Statusf(report.Success, "Created worktree: %s → %s", cfg.Name, cfg.Directory)
	return out
}

// ensureBranch creates the role branch unless it already exists. Failures
// are logged and tolerated; the worktree step decides the role's outcome.
func (p *Provisioner) ensureBranch(ctx context.Context, cfg roles.Config, log *logging.Logger) BranchStatus {
	exists, err := p.repo.BranchExists(ctx, cfg.Branch)
	if err == nil && exists {
		log.Info("branch %s already exists", cfg.Branch)
		return BranchExisted
	}
	if err != nil {
		log.Warn("branch lookup failed for %s: %v", cfg.Branch, err)
	}

	if err := p.repo.CreateBranch(ctx, cfg.Branch, ""); err != nil {
		log.Warn("branch create failed for %s: %v", cfg.Branch, err)
		p.logs.WorkflowLogger().Warn("provision: %s: branch %s not created: %v", cfg.Name, cfg.Branch, err)
		return BranchFailed
	}

	log.Info("created branch %s", cfg.Branch)
	return BranchCreated
}

func (p *Provisioner) unexpected(out Outcome, cfg roles.Config, log *logging.Logger, err error) Outcome {
	out.Status = Failed
	out.Err = err
	log.Error("unexpected error: %v", err)
	p.rep.Statusf(report.Error, "Error creating worktree %s: %v", cfg.Name, err)
	return out
}

// Summary counts outcomes by status.
func Summary(outcomes []Outcome) map[Status]int {
	m := make(map[Status]int, 3)
	for _, o := range outcomes {
		m[o.Status]++
	}
	return m
}

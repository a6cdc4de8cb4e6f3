package provision

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agent-workflow/internal/git"
	"agent-workflow/internal/logging"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo creates worktree directories on disk so a second run observes
// them, and fails on demand per branch.
type fakeRepo struct {
	branches      map[string]bool
	lookupErr     error
	branchErr     map[string]error
	worktreeErr   map[string]error
	worktreePanic string
	createdBranch []string
	createdTrees  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches:    map[string]bool{},
		branchErr:   map[string]error{},
		worktreeErr: map[string]error{},
	}
}

func (f *fakeRepo) BranchExists(_ context.Context, name string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.branches[name], nil
}

func (f *fakeRepo) CreateBranch(_ context.Context, name, _ string) error {
	if err := f.branchErr[name]; err != nil {
		return err
	}
	f.branches[name] = true
	f.createdBranch = append(f.createdBranch, name)
	return nil
}

func (f *fakeRepo) CreateWorktree(_ context.Context, path, branch string) error {
	if branch == f.worktreePanic {
		panic("boom")
	}
	if err := f.worktreeErr[branch]; err != nil {
		return err
	}
	f.createdTrees = append(f.createdTrees, path)
	return os.MkdirAll(path, 0o755)
}

func newRegistry(t *testing.T) roles.Registry {
	t.Helper()
	root := filepath.Join(t.TempDir(), "esm")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return roles.NewRegistry(root)
}

func branchOf(t *testing.T, reg roles.Registry, r roles.Role) string {
	t.Helper()
	cfg, ok := reg.Lookup(r)
	require.True(t, ok)
	return cfg.Branch
}

func TestRunCreatesEveryWorktree(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	var buf bytes.Buffer

	outcomes := New(repo, report.New(&buf), nil).Run(context.Background(), reg)

	require.Len(t, outcomes, 5)
	for i, cfg := range reg.Configs() {
		assert.Equal(t, cfg.Role, outcomes[i].Role)
		assert.Equal(t, cfg.Directory, outcomes[i].Path)
		assert.Equal(t, Created, outcomes[i].Status)
		assert.Equal(t, BranchCreated, outcomes[i].Branch)
		assert.NoError(t, outcomes[i].Err)
		assert.DirExists(t, cfg.Directory)
	}
	assert.Len(t, repo.createdBranch, 5)
	assert.Contains(t, buf.String(), "ESM Platform - Git Worktrees Setup")
	assert.Equal(t, 5, strings.Count(buf.String(), "✓ Created worktree: "))
}

func TestRunIsIdempotent(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	p := New(repo, report.New(&bytes.Buffer{}), nil)
	p.Run(context.Background(), reg)

	var buf bytes.Buffer
	second := New(repo, report.New(&buf), nil).Run(context.Background(), reg)

	assert.Equal(t, map[Status]int{AlreadyExists: 5}, Summary(second))
	for _, o := range second {
		assert.Equal(t, BranchSkipped, o.Branch)
	}
	assert.Len(t, repo.createdTrees, 5)
	assert.Equal(t, 5, strings.Count(buf.String(), "⚠ Worktree already exists: "))
}

func TestExistingBranchIsReused(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	repo.branches[branchOf(t, reg, roles.FrontendSpecialist)] = true

	outcomes := New(repo, report.New(&bytes.Buffer{}), nil).Run(context.Background(), reg)

	assert.Equal(t, BranchExisted, outcomes[2].Branch)
	assert.Equal(t, Created, outcomes[2].Status)
	assert.Len(t, repo.createdBranch, 4)
}

func TestBranchFailureIsTolerated(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	b := branchOf(t, reg, roles.MigrationSpecialist)
	repo.branchErr[b] = &git.CommandError{Args: []string{"branch", b}, ExitCode: 128}
	repo.branches[b] = false

	outcomes := New(repo, report.New(&bytes.Buffer{}), nil).Run(context.Background(), reg)

	assert.Equal(t, BranchFailed, outcomes[1].Branch)
	assert.Equal(t, Created, outcomes[1].Status)
}

func TestWorktreeFailureDoesNotStopOthers(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	b := branchOf(t, reg, roles.DatabaseExpert)
	repo.worktreeErr[b] = &git.CommandError{Args: []string{"worktree", "add"}, ExitCode: 128, Stderr: "fatal"}
	var buf bytes.Buffer

	outcomes := New(repo, report.New(&buf), nil).Run(context.Background(), reg)

	assert.Equal(t, Failed, outcomes[0].Status)
	var cmdErr *git.CommandError
	assert.True(t, errors.As(outcomes[0].Err, &cmdErr))
	assert.Equal(t, map[Status]int{Failed: 1, Created: 4}, Summary(outcomes))
	assert.Contains(t, buf.String(), "✗ Failed to create worktree: database-expert")
}

func TestUnexpectedErrorIsReported(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	repo.worktreeErr[branchOf(t, reg, roles.DocumentationSpecialist)] = errors.New("git not installed")
	var buf bytes.Buffer

	outcomes := New(repo, report.New(&buf), nil).Run(context.Background(), reg)

	assert.Equal(t, Failed, outcomes[3].Status)
	assert.Contains(t, buf.String(), "✗ Error creating worktree documentation-specialist: git not installed")
	assert.Equal(t, Created, outcomes[4].Status)
}

func TestPanicIsContainedPerRole(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	repo.worktreePanic = branchOf(t, reg, roles.TestingSpecialist)
	var buf bytes.Buffer

	var outcomes []Outcome
	require.NotPanics(t, func() {
		outcomes = New(repo, report.New(&buf), nil).Run(context.Background(), reg)
	})

	require.Len(t, outcomes, 5)
	assert.Equal(t, Failed, outcomes[4].Status)
	assert.ErrorContains(t, outcomes[4].Err, "panic: boom")
	assert.Contains(t, buf.String(), "Error creating worktree testing-specialist: boom")
}

func TestRoleLogsReceiveDetail(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	dir := t.TempDir()
	logs, err := logging.NewManager(dir, "info", 1, false)
	require.NoError(t, err)

	New(repo, report.New(&bytes.Buffer{}), logs).Run(context.Background(), reg)
	require.NoError(t, logs.Close())

	data, err := os.ReadFile(filepath.Join(dir, "roles", "database-expert.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "created branch feature/database-implementation")
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "already_exists", AlreadyExists.String())
	assert.Equal(t, "skipped", BranchSkipped.String())
	assert.Equal(t, "existed", BranchExisted.String())
}

func TestBranchLookupErrorFallsBackToCreate(t *testing.T) {
	reg := newRegistry(t)
	repo := newFakeRepo()
	repo.lookupErr = errors.New("show-ref unavailable")

	outcomes := New(repo, report.New(&bytes.Buffer{}), nil).Run(context.Background(), reg)

	for _, o := range outcomes {
		assert.Equal(t, BranchCreated, o.Branch)
		assert.Equal(t, Created, o.Status)
	}
}

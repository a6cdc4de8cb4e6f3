// Package git wraps the git command line for the branch and worktree
// operations agent-workflow needs.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the captured output of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes git. It returns a Result with ExitCode set whenever the
// process ran, even if it exited non-zero; the error is reserved for
// failures to run at all (binary missing, context canceled).
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Binary overrides the executable name. Empty means "git".
	Binary string
}

// Run executes git with args and captures stdout and stderr.
func (e ExecRunner) Run(ctx context.Context, args ...string) (Result, error) {
	bin := e.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

// CommandError reports a git invocation that ran but exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Repo represents a git repository at a given path.
type Repo struct {
	Path   string
	runner Runner
}

// NewRepo creates a Repo pointing at the given directory. It returns an
// error if the path does not exist. A nil runner means ExecRunner{}.
func NewRepo(path string, runner Runner) (*Repo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("git: repo path: %w", err)
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Repo{Path: path, runner: runner}, nil
}

// run executes a git command against the repo root and returns the
// trimmed stdout. A non-zero exit is returned as *CommandError.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return r.runInDir(ctx, r.Path, args...)
}

// runInDir executes a git command with -C targeting dir.
func (r *Repo) runInDir(ctx context.Context, dir string, args ...string) (string, error) {
	cmdArgs := make([]string, 0, 2+len(args))
	cmdArgs = append(cmdArgs, "-C", dir)
	cmdArgs = append(cmdArgs, args...)

	res, err := r.runner.Run(ctx, cmdArgs...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	if res.ExitCode != 0 {
		return "", &CommandError{
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(res.Stderr),
		}
	}

	return strings.TrimSpace(res.Stdout), nil
}

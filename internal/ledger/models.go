package ledger

import "time"

// Run status values.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one invocation of the workflow against a project root.
type Run struct {
	ID          string
	ProjectRoot string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      string
	ScriptPath  *string
}

// RoleOutcome is the provisioning result for one role within a run.
type RoleOutcome struct {
	RunID    string
	Position int
	Role     string
	Status   string
	Branch   string
	Path     string
	Error    *string
}

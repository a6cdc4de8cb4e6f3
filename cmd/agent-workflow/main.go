// Command agent-workflow prepares a project for parallel agent development:
// one git worktree per role, task checklists and a coordinator script.
package main

import (
	"errors"
	"fmt"
	"os"

	"agent-workflow/internal/workflow"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Checkpoint failures have already been reported line by line.
		if !errors.Is(err, workflow.ErrPrerequisites) && !errors.Is(err, workflow.ErrValidation) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

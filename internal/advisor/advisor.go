// Package advisor prints the suggested task checklist for each role.
package advisor

import (
	"fmt"
	"strings"

	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
)

// Print writes, per role in registry order, its focus, worktree directory
// and a 1-indexed task checklist. It has no side effects beyond output.
func Print(rep *report.Reporter, reg roles.Registry) {
	rep.Header("Agent Task Recommendations")

	styles := rep.Styles()
	for _, cfg := range reg.Configs() {
		rep.Println("")
		rep.Println("🤖 " + rep.Render(styles.RoleName, strings.ToUpper(cfg.Name)))
		rep.Println("Focus: " + cfg.Focus)
		rep.Println("Directory: " + cfg.Directory)
		rep.Println("Tasks:")
		for _, line := range Checklist(cfg.Tasks) {
			rep.Println(line)
		}
	}
}

// Checklist renders tasks as indented "N. task" lines starting at 1.
func Checklist(tasks []string) []string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, t)
	}
	return lines
}

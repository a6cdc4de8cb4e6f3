// Package validate re-checks a provisioned project after setup.
package validate

import (
	"os"

	"agent-workflow/internal/config"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
)

// Item is one required path checked during validation.
type Item struct {
	Label string
	Path  string
}

// Items returns the required paths for layout, in report order.
func Items(layout config.Layout) []Item {
	return []Item{
		{Label: "Project context file", Path: layout.Path("PROJECT_CONTEXT.md")},
		{Label: "Session briefing", Path: layout.Path("NEXT_SESSION_BRIEFING.md")},
		{Label: "Database schema", Path: layout.Path("database/schema.sql")},
		{Label: "Migration utilities", Path: layout.Path("lib/migration-utils.ts")},
		{Label: "Agent configurations", Path: layout.AgentsDir},
		{Label: "Scripts directory", Path: layout.ScriptsDir},
	}
}

// Run checks every required item and every role worktree. A missing
// worktree is a warning only: the result passes iff every required item
// exists.
func Run(layout config.Layout, reg roles.Registry, rep *report.Reporter) report.CheckResult {
	rep.Header("Setup Validation")

	res := report.CheckResult{Passed: true}

	for _, item := range Items(layout) {
		if exists(item.Path) {
			rep.Record(&res, report.Success, "%s: ✓", item.Label)
		} else {
			rep.Record(&res, report.Error, "%s: ✗", item.Label)
			res.Passed = false
		}
	}

	for _, cfg := range reg.Configs() {
		if exists(cfg.Directory) {
			rep.Record(&res, report.Success, "Worktree %s: ✓", cfg.Name)
		} else {
			rep.Record(&res, report.Warning, "Worktree %s: ✗", cfg.Name)
		}
	}

	return res
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

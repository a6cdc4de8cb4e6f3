// Package prereq checks that a project root holds the files the workflow
// depends on before anything is mutated.
package prereq

import (
	"os"

	"agent-workflow/internal/config"
	"agent-workflow/internal/report"
)

// RequiredFiles are the project-relative paths that must exist.
var RequiredFiles = []string{
	"PROJECT_CONTEXT.md",
	"NEXT_SESSION_BRIEFING.md",
	"database/schema.sql",
	"lib/migration-utils.ts",
}

// Check reports one line per required file, then the optional git and
// node_modules indicators. Every item is checked even after a miss. The
// result passes iff every required file exists; optional indicators only
// ever produce warnings.
func Check(layout config.Layout, rep *report.Reporter) report.CheckResult {
	rep.Header("Prerequisites Check")

	res := report.CheckResult{Passed: true}

	for _, rel := range RequiredFiles {
		if exists(layout.Path(rel)) {
			rep.Record(&res, report.Success, "Found: %s", rel)
		} else {
			rep.Record(&res, report.Error, "Missing: %s", rel)
			res.Passed = false
		}
	}

	if exists(layout.Path(".git")) {
		rep.Record(&res, report.Success, "Git repository detected")
	} else {
		rep.Record(&res, report.Warning, "No git repository found")
	}

	if exists(layout.Path("node_modules")) {
		rep.Record(&res, report.Success, "Node modules installed")
	} else {
		rep.Record(&res, report.Warning, "Node modules missing - run npm install")
	}

	return res
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

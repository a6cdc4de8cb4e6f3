package main

import (
	"agent-workflow/internal/app"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/validate"
	"agent-workflow/internal/workflow"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project-root]",
	Short: "Check required files, directories and role worktrees",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := projectLayout(args)
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			rep := a.Reporter()
			res := validate.Run(layout, roles.NewRegistry(layout.Root), rep)
			if !res.Passed {
				rep.Status(report.Error, "Setup validation failed")
				return workflow.ErrValidation
			}
			rep.Status(report.Success, "Setup is valid")
			return nil
		})
	},
}

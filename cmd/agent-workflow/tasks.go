package main

import (
	"agent-workflow/internal/advisor"
	"agent-workflow/internal/app"
	"agent-workflow/internal/roles"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [project-root]",
	Short: "Print the task checklist of every role",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := projectLayout(args)
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			advisor.Print(a.Reporter(), roles.NewRegistry(layout.Root))
			return nil
		})
	},
}

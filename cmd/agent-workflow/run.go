package main

import (
	"agent-workflow/internal/app"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [project-root]",
	Short: "Run the full setup workflow (default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorkflow,
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	layout, err := projectLayout(args)
	if err != nil {
		return err
	}

	return withApp(cmd, func(a *app.App) error {
		runner, err := a.Workflow(layout)
		if err != nil {
			return err
		}
		_, err = runner.Run(cmd.Context())
		return err
	})
}

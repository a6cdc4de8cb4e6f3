package main

import (
	"os"

	"agent-workflow/internal/app"
	"agent-workflow/internal/config"

	"github.com/spf13/cobra"
)

var (
	configFile string
	noColor    bool
)

// rootCmd runs the full setup workflow when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "agent-workflow [project-root]",
	Short: "Set up git worktrees and session tooling for parallel agent development",
	Long: `agent-workflow prepares a project for parallel development by five
specialised agent roles:

- checks that the project's context, briefing, schema and migration files exist
- creates one git branch and linked worktree per role next to the project root
- prints a task checklist for every role
- writes scripts/agent-coordinator.sh, an interactive session menu
- validates the resulting setup

The project root defaults to the current directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWorkflow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (YAML); defaults to ~/.agent-workflow/config.yaml when present")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd, validateCmd, tasksCmd, menuCmd, historyCmd)
}

// projectLayout resolves the optional positional project root.
func projectLayout(args []string) (config.Layout, error) {
	root := ""
	if len(args) > 0 {
		root = args[0]
	}
	return config.NewLayout(root)
}

// withApp loads settings, opens the App for the duration of fn and closes
// it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	settings, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		settings.UI.Color = false
	}

	a, err := app.Open(settings, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(a)
}

package main

import (
	"fmt"
	"time"

	"agent-workflow/internal/app"
	"agent-workflow/internal/coordinator"
	"agent-workflow/internal/git"
	"agent-workflow/internal/report"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/session"
	"agent-workflow/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu [project-root]",
	Short: "Pick a role interactively and start its session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := projectLayout(args)
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			reg := roles.NewRegistry(layout.Root)

			var branches map[string]string
			if repo, err := git.NewRepo(layout.Root, nil); err == nil {
				branches = tui.WorktreeBranches(cmd.Context(), repo, reg)
			}

			final, err := tea.NewProgram(tui.NewModel(reg, branches), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("menu: %w", err)
			}

			choice := final.(tui.Model).Choice()
			return startChoice(a.Reporter(), choice, time.Now())
		})
	},
}

// startChoice acts on a menu selection the way the generated script does.
func startChoice(rep *report.Reporter, choice tui.Choice, now time.Time) error {
	switch {
	case !choice.Selected:
		return nil
	case choice.Parallel:
		rep.Println(coordinator.ParallelAdvice)
		return nil
	}

	path, err := session.Start(choice.Config, now)
	if err != nil {
		rep.Status(report.Error, err.Error())
		return err
	}

	for _, line := range session.Guidance(choice.Config) {
		rep.Println(line)
	}
	rep.Statusf(report.Success, "Session log written: %s", path)
	return nil
}

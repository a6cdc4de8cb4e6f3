package main

import (
	"errors"
	"fmt"

	"agent-workflow/internal/app"
	"agent-workflow/internal/provision"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [project-root]",
	Short: "List recent workflow runs for a project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := projectLayout(args)
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			l := a.Ledger()
			if l == nil {
				return errors.New("history: run ledger is disabled or unavailable")
			}

			runs, err := l.ListRuns(cmd.Context(), layout.Root, historyLimit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintf(out, "No runs recorded for %s\n", layout.Root)
				return nil
			}

			for _, run := range runs {
				outcomes, err := l.ListOutcomes(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				counts := map[string]int{}
				for _, o := range outcomes {
					counts[o.Status]++
				}
				fmt.Fprintf(out, "%s  %-14s %-9s  %d created, %d existing, %d failed\n",
					run.ID[:8],
					humanize.Time(run.StartedAt),
					run.Status,
					counts[provision.Created.String()],
					counts[provision.AlreadyExists.String()],
					counts[provision.Failed.String()],
				)
			}
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
}

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/denizydmr07/stubrun/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded pipeline runs",
	Long:  "Show recorded pipeline runs, newest first, with per-step exit codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbConn, err := history.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		repo := history.NewRepository(dbConn)
		runs, err := repo.ListRuns(limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "no recorded runs")
			return nil
		}

		ok := color.New(color.FgGreen)
		bad := color.New(color.FgRed)
		for _, run := range runs {
			status := ok.Sprint(run.Status)
			if run.Status != history.StatusSucceeded {
				status = bad.Sprint(run.Status)
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", run.ID, run.StartedAt, status)
			for _, s := range run.Steps {
				fmt.Fprintf(out, "  %d. %s\texit=%d\t%dms\n", s.Position, s.Name, s.ExitCode, s.DurationMS)
				if s.StderrTail.Valid && s.ExitCode != 0 {
					fmt.Fprintf(out, "     stderr: %s\n", s.StderrTail.String)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}

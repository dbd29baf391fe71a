package cmd

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/denizydmr07/stubrun/internal/executor"
	"github.com/denizydmr07/stubrun/internal/history"
	"github.com/denizydmr07/stubrun/internal/pipeline"
)

// execFactory builds the Runner used by `run`. Tests replace it with a fake.
var execFactory = func(dry bool, out io.Writer) executor.Runner {
	return &executor.Executor{DryRun: dry, Out: out}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stub generator pipeline",
	Long:  "Run the server stub generator followed by the client stub generator, stopping at the first failure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		noHistory, _ := cmd.Flags().GetBool("no-history")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		steps, err := resolveSteps(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		started := time.Now()
		p := pipeline.New(steps)
		results, runErr := p.Run(ctx, execFactory(dry, cmd.OutOrStdout()), cmd.OutOrStdout())

		if !dry && !noHistory {
			recordRun(started, results, runErr)
		}
		return runErr
	},
}

// recordRun persists the run outcome. History failures are logged and
// swallowed: they must not disturb the pipeline's exit code or output.
func recordRun(started time.Time, results []pipeline.StepResult, runErr error) {
	dbConn, err := history.InitDB()
	if err != nil {
		logrus.WithError(err).Warn("history disabled: cannot open database")
		return
	}
	defer func() { _ = dbConn.Close() }()

	repo := history.NewRepository(dbConn)
	id, err := repo.RecordRun(started, results, runErr)
	if err != nil {
		logrus.WithError(err).Warn("failed to record run history")
		return
	}
	logrus.WithFields(logrus.Fields{"run_id": id}).Debug("recorded run")
}

func init() {
	runCmd.Flags().String("base-dir", "", "Base directory containing the generator directories (default: parent of the executable's directory)")
	runCmd.Flags().String("pipeline", "", "YAML pipeline manifest overriding the built-in steps")
	runCmd.Flags().Bool("dry-run", false, "Print the commands without executing them")
	runCmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
	runCmd.Flags().Duration("timeout", 0, "Abort the pipeline after this duration (0 waits indefinitely)")
	rootCmd.AddCommand(runCmd)
}

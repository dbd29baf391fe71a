package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/denizydmr07/stubrun/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "stubrun",
	Short: "stubrun orchestrates the RPC stub generator pipeline",
	Long:  "stubrun runs the server and client stub generators in order, failing fast on the first error",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		switch {
		case verbose:
			logrus.SetLevel(logrus.DebugLevel)
		case quiet:
			logrus.SetLevel(logrus.ErrorLevel)
		default:
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stubrun: run 'stubrun --help' to see available commands")
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// Execute executes the root command. A step failure has already been fully
// reported on the pipeline's output, so it only sets the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var stepErr *pipeline.StepError
		if !errors.As(err, &stepErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

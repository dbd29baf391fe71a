package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the resolved pipeline without running it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := resolveSteps(cmd)
		if err != nil {
			return err
		}
		name := color.New(color.FgCyan, color.Bold)
		out := cmd.OutOrStdout()
		for i, s := range steps {
			fmt.Fprintf(out, "%d. %s\n", i+1, name.Sprint(s.Name))
			fmt.Fprintf(out, "   dir:     %s\n", s.Dir)
			fmt.Fprintf(out, "   command: %s\n", shellquote.Join(s.Argv()...))
		}
		return nil
	},
}

func init() {
	stepsCmd.Flags().String("base-dir", "", "Base directory containing the generator directories (default: parent of the executable's directory)")
	stepsCmd.Flags().String("pipeline", "", "YAML pipeline manifest overriding the built-in steps")
	rootCmd.AddCommand(stepsCmd)
}

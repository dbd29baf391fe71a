package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denizydmr07/stubrun/internal/config"
	"github.com/denizydmr07/stubrun/internal/pipeline"
)

// resolveSteps builds the pipeline from the --pipeline manifest when given,
// otherwise from the built-in two generator steps under --base-dir.
func resolveSteps(cmd *cobra.Command) ([]pipeline.Step, error) {
	manifest, _ := cmd.Flags().GetString("pipeline")
	if manifest != "" {
		return config.LoadManifest(manifest)
	}

	baseDir, _ := cmd.Flags().GetString("base-dir")
	if baseDir == "" {
		var err error
		baseDir, err = config.DefaultBaseDir()
		if err != nil {
			return nil, err
		}
	}
	return config.DefaultPipeline(baseDir), nil
}

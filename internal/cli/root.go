package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cogsnet",
	Short: "Cognitive temporal social network modelling",
	Long: "CogSNet models how social ties strengthen with interaction and fade with time.\n" +
		"It folds a chronological event stream into periodically sampled weighted networks.",
}

var configPath string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cogsnet.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

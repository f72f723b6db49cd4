package cmd

import (
	"fmt"

	"treesnap/pkg/console"
	"treesnap/pkg/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags struct {
	configFile string
	output     string
}

// appLogger is the logger handed to Execute and used by all commands.
var appLogger *zap.Logger

// RootCmd is the base command when called without any subcommands.
// Running it snapshots the current working directory.
var RootCmd = &cobra.Command{
	Use:   "treesnap",
	Short: "Treesnap flattens a source tree into a single context file",
	Long: `Treesnap walks the current working directory, filters files through
exclusion globs, truncates oversized files per configured rules, and writes
one delimited text artifact suitable for large-context consumers.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := snapshot.LoadConfig(".", rootFlags.configFile)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if rootFlags.output != "" {
			cfg.Output = rootFlags.output
		}
		summary, err := snapshot.Run(cmd.Context(), cfg, appLogger)
		if err != nil {
			return err
		}
		console.Summary(summary.Included, summary.Truncated, summary.Excluded)
		return nil
	},
}

// Execute runs the root command with the provided logger.
func Execute(logger *zap.Logger) error {
	appLogger = logger
	if err := RootCmd.Execute(); err != nil {
		console.Errorf("%v", err)
		logger.Error("treesnap execution failed", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	RootCmd.Flags().StringVarP(&rootFlags.configFile, "config", "c", "", "Path to a .treesnap.yaml configuration file")
	RootCmd.Flags().StringVarP(&rootFlags.output, "output", "o", "", "Override the output artifact path")
}

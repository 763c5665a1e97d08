package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"subtrellis/internal/version"
	"subtrellis/pkg/logger"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "subtrellis",
	Short:   "Dual-language subtitle merging pipeline",
	Long:    "subtrellis turns a pair of monolingual subtitle candidates into a single merged, dual-language SRT file.",
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
}

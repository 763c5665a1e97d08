package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subtrellis/internal/codectables"
	"subtrellis/internal/merge"
	"subtrellis/internal/orchestrator"
	"subtrellis/pkg/logger"
)

var pipelineOpts struct {
	MainFile    string
	TransFile   string
	MainLang    string
	TransLang   string
	ThresholdMS int64
	OutputFile  string
}

// pipelineCmd drives the core pipeline directly against two local subtitle
// files, for manual testing without standing up any catalog adapters.
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Merge two local SRT files into one dual-language file",
	Long:  "Runs decode, language verification, parsing, merging and serialization directly against two local subtitle files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mainBytes, err := os.ReadFile(pipelineOpts.MainFile)
		if err != nil {
			return fmt.Errorf("reading main file: %w", err)
		}
		transBytes, err := os.ReadFile(pipelineOpts.TransFile)
		if err != nil {
			return fmt.Errorf("reading translation file: %w", err)
		}

		out, err := orchestrator.LocalPipeline(
			mainBytes, transBytes,
			codectables.LanguageTag(pipelineOpts.MainLang),
			codectables.LanguageTag(pipelineOpts.TransLang),
			pipelineOpts.ThresholdMS,
		)
		if err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}

		if pipelineOpts.OutputFile == "" || pipelineOpts.OutputFile == "-" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(pipelineOpts.OutputFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		logger.Log().Info("merged subtitle written", "file", pipelineOpts.OutputFile)
		return nil
	},
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineOpts.MainFile, "main-file", "", "path to the main-language SRT file")
	pipelineCmd.Flags().StringVar(&pipelineOpts.TransFile, "trans-file", "", "path to the translation-language SRT file")
	pipelineCmd.Flags().StringVar(&pipelineOpts.MainLang, "main-lang", "", "expected main language tag")
	pipelineCmd.Flags().StringVar(&pipelineOpts.TransLang, "trans-lang", "", "expected translation language tag")
	pipelineCmd.Flags().Int64Var(&pipelineOpts.ThresholdMS, "merge-threshold-ms", merge.DefaultThresholdMS, "merge proximity threshold in milliseconds")
	pipelineCmd.Flags().StringVar(&pipelineOpts.OutputFile, "output", "-", "output file path, or - for stdout")
	_ = pipelineCmd.MarkFlagRequired("main-file")
	_ = pipelineCmd.MarkFlagRequired("trans-file")
	_ = pipelineCmd.MarkFlagRequired("main-lang")
	_ = pipelineCmd.MarkFlagRequired("trans-lang")

	rootCmd.AddCommand(pipelineCmd)
}

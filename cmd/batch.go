package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtrellis/internal/artifact"
	"subtrellis/internal/codectables"
	"subtrellis/internal/merge"
	"subtrellis/internal/orchestrator"
	"subtrellis/pkg/logger"
	"subtrellis/pkg/pathx"
)

var batchOpts struct {
	InputDir    string
	OutputDir   string
	MainLang    string
	TransLang   string
	ThresholdMS int64
}

// batchCmd walks a directory for main/translation SRT pairs sharing a
// content-id stem (<id>.<lang>.srt) and merges each pair found, skipping
// stems missing either language.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Merge every main/translation SRT pair found under a directory",
	Long:  "Scans --input-dir for <content-id>.<lang>.srt files and merges each pair that has both the main and translation language present.",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := pathx.CollectFiles([]string{batchOpts.InputDir}, -1, []string{".srt"}, true)
		if err != nil {
			return fmt.Errorf("collecting input files: %w", err)
		}

		mainTag := codectables.LanguageTag(batchOpts.MainLang)
		transTag := codectables.LanguageTag(batchOpts.TransLang)
		pairs := groupByStem(files, batchOpts.MainLang, batchOpts.TransLang)

		if len(pairs) == 0 {
			logger.Log().Warn("no complete main/translation pairs found", "dir", batchOpts.InputDir)
			return nil
		}

		if err := os.MkdirAll(batchOpts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}

		for contentID, pair := range pairs {
			mainBytes, _, err := pathx.ReadFile(pair.main)
			if err != nil {
				logger.Log().Error("reading main file", "content_id", contentID, "error", err)
				continue
			}
			transBytes, _, err := pathx.ReadFile(pair.trans)
			if err != nil {
				logger.Log().Error("reading translation file", "content_id", contentID, "error", err)
				continue
			}

			out, err := orchestrator.LocalPipeline(mainBytes, transBytes, mainTag, transTag, batchOpts.ThresholdMS)
			if err != nil {
				logger.Log().Warn("merge failed", "content_id", contentID, "error", err)
				continue
			}

			name := artifact.Name(contentID, artifact.Episode{}, string(mainTag), string(transTag), 1)
			dest := filepath.Join(batchOpts.OutputDir, name)
			if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
				logger.Log().Error("writing merged file", "content_id", contentID, "error", err)
				continue
			}
			logger.Log().Info("merged", "content_id", contentID, "file", dest)
		}
		return nil
	},
}

type srtPair struct {
	main  string
	trans string
}

// groupByStem groups files named <stem>.<lang>.srt by stem, keeping only
// stems that have both the main and translation language present.
func groupByStem(files []string, mainLang, transLang string) map[string]srtPair {
	byStem := make(map[string]srtPair)
	for _, f := range files {
		base := filepath.Base(f)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		idx := strings.LastIndex(base, ".")
		if idx < 0 {
			continue
		}
		stem, lang := base[:idx], strings.ToLower(base[idx+1:])
		pair := byStem[stem]
		switch lang {
		case strings.ToLower(mainLang):
			pair.main = f
		case strings.ToLower(transLang):
			pair.trans = f
		default:
			byStem[stem] = pair
			continue
		}
		byStem[stem] = pair
	}
	complete := make(map[string]srtPair)
	for stem, pair := range byStem {
		if pair.main != "" && pair.trans != "" {
			complete[stem] = pair
		}
	}
	return complete
}

func init() {
	batchCmd.Flags().StringVar(&batchOpts.InputDir, "input-dir", "", "directory to scan for <content-id>.<lang>.srt files")
	batchCmd.Flags().StringVar(&batchOpts.OutputDir, "output-dir", "", "directory to write merged files into")
	batchCmd.Flags().StringVar(&batchOpts.MainLang, "main-lang", "", "main language tag to look for")
	batchOpts.ThresholdMS = merge.DefaultThresholdMS
	batchCmd.Flags().StringVar(&batchOpts.TransLang, "trans-lang", "", "translation language tag to look for")
	batchCmd.Flags().Int64Var(&batchOpts.ThresholdMS, "merge-threshold-ms", merge.DefaultThresholdMS, "merge proximity threshold in milliseconds")
	_ = batchCmd.MarkFlagRequired("input-dir")
	_ = batchCmd.MarkFlagRequired("output-dir")
	_ = batchCmd.MarkFlagRequired("main-lang")
	_ = batchCmd.MarkFlagRequired("trans-lang")

	rootCmd.AddCommand(batchCmd)
}

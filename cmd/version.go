package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrellis/internal/version"
)

// aboutCmd prints build metadata.
var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Display build information",
	Long:  "Display version, commit and build date for subtrellis.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetAbout())
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

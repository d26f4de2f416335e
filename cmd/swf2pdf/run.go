package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render all source files and assemble the PDF",
	Long: `Run executes both pipeline stages: every SWF (or SVG) file in the
directory is rasterized to a PNG page, then the pages are merged into a
single PDF in filename order. Equivalent to invoking swf2pdf without a
subcommand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

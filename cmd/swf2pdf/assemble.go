package main

import (
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Merge existing PNG pages into a single PDF",
	Long: `Assemble merges the PNG files in the directory into one PDF document,
one page per image, ordered by filename (shorter names first, then
lexicographically). Each page is sized to its image. Without any PNGs
no PDF is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return assembleStage(cmd, loadConfig())
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Rasterize source files to PNG pages",
	Long: `Render converts every SWF (or SVG) file in the directory into a PNG page
at the configured size, flattening transparency onto the background color
and applying the crop window when one is set. The PDF is not touched;
use assemble for that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := renderStage(cmd, loadConfig())
		if err != nil {
			return err
		}
		if batch.HasFailures() {
			return fmt.Errorf("%d of %d files failed to render", batch.Failed, batch.Total())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

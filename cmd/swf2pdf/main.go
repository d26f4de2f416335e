// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the swf2pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Invoking it without a subcommand runs the
// full pipeline, the behavior of the original no-argument script.
var rootCmd = &cobra.Command{
	Use:   "swf2pdf",
	Short: "Convert SWF or SVG files to PNG pages and merge them into a PDF",
	Long: `swf2pdf rasterizes every SWF (or SVG) file in a directory to a PNG page
and merges the pages into a single PDF document, in filename order.

SWF files are rendered through the external swfrender binary from swftools;
SVG files are rendered in-process. Pages can be resized and cropped before
assembly. Run without a subcommand to render and assemble in one go, or use
the render and assemble subcommands for the individual stages.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./swf2pdf.yaml or ~/.config/swf2pdf/config.yaml)")
	pf.String("dir", ".", "directory containing the source files")
	pf.Int("x_size", types.DefaultXSize, "X size of images and pdf in pixels")
	pf.Int("y_size", types.DefaultYSize, "Y size of images and pdf in pixels")
	pf.Int("crop_top", 0, "crop window top edge in pixels")
	pf.Int("crop_left", 0, "crop window left edge in pixels")
	pf.Int("crop_bottom", 0, "crop window bottom edge in pixels")
	pf.Int("crop_right", 0, "crop window right edge in pixels")
	pf.String("source_format", string(types.SourceSWF), "source format: swf or svg")
	pf.String("image_format", "png", "raster image format (only png is supported)")
	pf.String("background_color", types.DefaultBackgroundColor, "background R.G.B used when flattening transparency")
	pf.String("out", "", "output PDF name (default: <directory name>.pdf)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("swf2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "swf2pdf"))
		}
	}

	viper.SetEnvPrefix("SWF2PDF")
	viper.AutomaticEnv()

	// Flags win over config file values, config over defaults.
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "binding flags:", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the pipeline configuration from viper.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Dir: viper.GetString("dir"),
		Render: types.RenderConfig{
			XSize:           viper.GetInt("x_size"),
			YSize:           viper.GetInt("y_size"),
			SourceFormat:    types.SourceFormat(viper.GetString("source_format")),
			BackgroundColor: viper.GetString("background_color"),
			ImageFormat:     viper.GetString("image_format"),
		},
		Crop: types.CropConfig{
			Top:    viper.GetInt("crop_top"),
			Left:   viper.GetInt("crop_left"),
			Bottom: viper.GetInt("crop_bottom"),
			Right:  viper.GetInt("crop_right"),
		},
		Assemble: types.AssembleConfig{
			Out: viper.GetString("out"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

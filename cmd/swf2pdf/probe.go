package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/szebenyib/swf-to-pdf/internal/scan"
	"github.com/szebenyib/swf-to-pdf/internal/swf"
	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Inspect SWF container headers without rendering",
	Long: `Probe reads the container header of every SWF file in the directory and
prints the signature, format version and stage size. Useful for picking
raster dimensions before a run. No files are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		sources, err := scan.Sources(cfg.Dir, types.SourceSWF.Ext())
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No swf files were found.")
			return nil
		}

		var infos []types.SWFInfo
		for _, src := range sources {
			info, err := swf.Probe(src)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			data, err := yaml.Marshal(infos)
			if err != nil {
				return fmt.Errorf("encoding probe results: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"File", "Signature", "Version", "Stage", "Compressed"})
		for _, info := range infos {
			t.AppendRow(table.Row{
				info.Name,
				info.Signature,
				info.Version,
				fmt.Sprintf("%dx%d", info.FrameWidth, info.FrameHeight),
				info.Compressed(),
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	probeCmd.Flags().Bool("yaml", false, "output probe results as YAML")

	rootCmd.AddCommand(probeCmd)
}

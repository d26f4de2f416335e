package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/szebenyib/swf-to-pdf/internal/manifest"
	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show recorded pipeline runs from the manifest",
	Long: `Report reads the run manifest kept next to the processed files and lists
previous render and assemble runs. Pass --run to see the per-file outcome
of a specific run, or --last for the most recent one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		store, err := manifest.Open(cfg.Dir)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, _ := cmd.Flags().GetInt64("run")
		last, _ := cmd.Flags().GetBool("last")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		if runID > 0 || last {
			run, err := store.Run(runID)
			if err != nil {
				return err
			}
			if run == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			return printRun(cmd, *run, asYAML)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Runs(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}
		return printRuns(cmd, runs, asYAML)
	},
}

func printRuns(cmd *cobra.Command, runs []types.RunRecord, asYAML bool) error {
	if asYAML {
		data, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("encoding runs: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Run", "Started", "Stage", "Directory", "Size"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Stage,
			run.Dir,
			fmt.Sprintf("%dx%d", run.XSize, run.YSize),
		})
	}
	t.Render()
	return nil
}

func printRun(cmd *cobra.Command, run types.RunRecord, asYAML bool) error {
	if asYAML {
		data, err := yaml.Marshal(run)
		if err != nil {
			return fmt.Errorf("encoding run: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %d (%s) in %s, started %s\n\n",
		run.ID, run.Stage, run.Dir, run.StartedAt.Local().Format(time.DateTime))

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"File", "Status", "Size", "Duration", "Error"})
	for _, f := range run.Files {
		size := ""
		if f.Width > 0 || f.Height > 0 {
			size = fmt.Sprintf("%dx%d", f.Width, f.Height)
		}
		t.AppendRow(table.Row{f.Name, f.Status, size, f.Duration.Round(time.Millisecond), f.Error})
	}
	t.Render()
	return nil
}

func init() {
	reportCmd.Flags().Int64("run", 0, "show the per-file outcome of the given run")
	reportCmd.Flags().Bool("last", false, "show the per-file outcome of the most recent run")
	reportCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	reportCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(reportCmd)
}

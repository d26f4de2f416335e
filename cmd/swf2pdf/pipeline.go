// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/szebenyib/swf-to-pdf/internal/manifest"
	"github.com/szebenyib/swf-to-pdf/internal/pdfout"
	"github.com/szebenyib/swf-to-pdf/internal/render"
	"github.com/szebenyib/swf-to-pdf/internal/scan"
	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// runPipeline renders all sources and assembles the resulting PNGs,
// the original's mode 3 and its no-argument default.
func runPipeline(cmd *cobra.Command) error {
	cfg := loadConfig()

	batch, err := renderStage(cmd, cfg)
	if err != nil {
		return err
	}

	if err := assembleStage(cmd, cfg); err != nil {
		return err
	}

	if batch.HasFailures() {
		return fmt.Errorf("%d of %d files failed to render", batch.Failed, batch.Total())
	}
	return nil
}

// renderStage rasterizes every source file in the configured directory.
// Per-file failures are reported and recorded but do not stop the batch.
func renderStage(cmd *cobra.Command, cfg types.PipelineConfig) (render.BatchResult, error) {
	if err := render.ValidateImageFormat(cfg.Render.ImageFormat); err != nil {
		return render.BatchResult{}, err
	}
	if !cfg.Render.SourceFormat.Valid() {
		return render.BatchResult{}, fmt.Errorf("source format %q not supported, want swf or svg", cfg.Render.SourceFormat)
	}

	rasterizer, err := render.NewRasterizer(cfg.Render.SourceFormat)
	if err != nil {
		return render.BatchResult{}, err
	}

	sources, err := scan.Sources(cfg.Dir, cfg.Render.SourceFormat.Ext())
	if err != nil {
		return render.BatchResult{}, err
	}

	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintf(out, "No %s files were found.\n", cfg.Render.SourceFormat)
		return render.BatchResult{}, nil
	}

	fmt.Fprintln(out, "* Generating images *")
	batch := render.RenderBatch(rasterizer, sources, cfg.Render, cfg.Crop, out)

	recs := make([]types.FileRecord, len(batch.Results))
	for i, res := range batch.Results {
		recs[i] = res.Record()
	}
	recordRun(cfg, "render", recs)

	return batch, nil
}

// assembleStage merges the PNGs in the configured directory into one PDF.
func assembleStage(cmd *cobra.Command, cfg types.PipelineConfig) error {
	outName := cfg.Assemble.Out
	if outName == "" {
		var err error
		outName, err = pdfout.DefaultOutputName(cfg.Dir)
		if err != nil {
			return err
		}
	}
	outPath := outName
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(cfg.Dir, outName)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "* Generating pdf from images *")

	pages, err := pdfout.AssembleDir(cfg.Dir, outPath, out)
	if err != nil {
		return err
	}

	if len(pages) > 0 {
		recs := make([]types.FileRecord, len(pages))
		for i, page := range pages {
			recs[i] = types.FileRecord{
				Name:   filepath.Base(page),
				Status: types.StatusAssembled,
			}
		}
		recordRun(cfg, "assemble", recs)
	}
	return nil
}

// recordRun appends a run with its file records to the manifest. Manifest
// trouble must never fail a conversion, so errors only warn on stderr.
func recordRun(cfg types.PipelineConfig, stage string, files []types.FileRecord) {
	store, err := manifest.Open(cfg.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: manifest unavailable:", err)
		return
	}
	defer store.Close()

	runID, err := store.BeginRun(types.RunRecord{
		StartedAt: time.Now(),
		Stage:     stage,
		Dir:       cfg.Dir,
		XSize:     cfg.Render.XSize,
		YSize:     cfg.Render.YSize,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		return
	}

	for _, rec := range files {
		if err := store.RecordFile(runID, rec); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
			return
		}
	}
}

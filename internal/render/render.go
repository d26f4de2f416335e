// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes vector source files to PNG pages.
package render

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/kovidgoyal/imaging"

	"github.com/szebenyib/swf-to-pdf/internal/raster"
	"github.com/szebenyib/swf-to-pdf/internal/scan"
	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// Rasterizer renders one vector source file at the requested pixel size.
// Backends exist for swfrender (SWF) and oksvg (SVG).
type Rasterizer interface {
	// Rasterize renders the file at srcPath into an image of roughly
	// width x height pixels. Exact dimensions are enforced afterwards.
	Rasterize(srcPath string, width, height int) (image.Image, error)
}

// NewRasterizer returns the backend for the configured source format.
func NewRasterizer(format types.SourceFormat) (Rasterizer, error) {
	switch format {
	case types.SourceSWF:
		return NewSWFRasterizer()
	case types.SourceSVG:
		return &SVGRasterizer{}, nil
	}
	return nil, fmt.Errorf("unsupported source format %q (want swf or svg)", format)
}

// Result holds the outcome of rendering a single source file.
type Result struct {
	Source   string
	Output   string
	Width    int
	Height   int
	Duration time.Duration
	Err      error
}

// Record converts the result into a manifest file record.
func (r Result) Record() types.FileRecord {
	rec := types.FileRecord{
		Name:     filepath.Base(r.Source),
		Status:   types.StatusRendered,
		Width:    r.Width,
		Height:   r.Height,
		Duration: r.Duration,
	}
	if r.Err != nil {
		rec.Status = types.StatusFailed
		rec.Error = r.Err.Error()
	}
	return rec
}

// BatchResult holds the outcome of a batch render run.
type BatchResult struct {
	Rendered int
	Failed   int
	Results  []Result
}

// Total returns the total number of source files processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Failed
}

// HasFailures reports whether any file failed to render.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the PNG path for a source file: same directory, same
// stem, .png extension.
func OutputPath(srcPath string) string {
	return filepath.Join(filepath.Dir(srcPath), scan.Stem(srcPath)+".png")
}

// RenderFile rasterizes a single source file, post-processes the page and
// writes it next to the source as <stem>.png. Existing output is
// overwritten so that re-runs reflect the current parameters.
func RenderFile(r Rasterizer, srcPath string, cfg types.RenderConfig, crop types.CropConfig) Result {
	start := time.Now()
	res := Result{Source: srcPath, Output: OutputPath(srcPath)}

	img, err := r.Rasterize(srcPath, cfg.XSize, cfg.YSize)
	if err != nil {
		res.Err = fmt.Errorf("rasterizing %s: %w", srcPath, err)
		res.Duration = time.Since(start)
		return res
	}

	out, err := raster.Process(img, cfg, crop)
	if err != nil {
		res.Err = fmt.Errorf("processing %s: %w", srcPath, err)
		res.Duration = time.Since(start)
		return res
	}

	if err := imaging.Save(out, res.Output); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", res.Output, err)
		res.Duration = time.Since(start)
		return res
	}

	res.Width = out.Bounds().Dx()
	res.Height = out.Bounds().Dy()
	res.Duration = time.Since(start)
	return res
}

var (
	okLine   = color.New(color.FgGreen)
	failLine = color.New(color.FgRed)
)

// RenderBatch rasterizes all sources in order, printing one status line per
// file to w. A failed file is reported and counted; the batch continues.
func RenderBatch(r Rasterizer, sources []string, cfg types.RenderConfig, crop types.CropConfig, w io.Writer) BatchResult {
	var batch BatchResult
	for i, src := range sources {
		res := RenderFile(r, src, cfg, crop)
		batch.Results = append(batch.Results, res)

		prefix := fmt.Sprintf("%04d/%04d", i+1, len(sources))
		if res.Err != nil {
			batch.Failed++
			failLine.Fprintf(w, "%s: %s could not be created (%v)\n",
				prefix, filepath.Base(res.Output), res.Err)
			continue
		}
		batch.Rendered++
		okLine.Fprintf(w, "%s: %s created (%dx%d, %.1fs)\n",
			prefix, filepath.Base(res.Output), res.Width, res.Height, res.Duration.Seconds())
	}

	fmt.Fprintf(w, "\nRender summary: %d rendered, %d failed (total: %d)\n",
		batch.Rendered, batch.Failed, batch.Total())
	return batch
}

// ValidateImageFormat rejects raster formats other than PNG. The flag is
// kept for CLI compatibility; swfrender only emits PNG.
func ValidateImageFormat(format string) error {
	if format == "" || strings.EqualFold(format, "png") {
		return nil
	}
	return fmt.Errorf("image format %q not supported, only png", format)
}

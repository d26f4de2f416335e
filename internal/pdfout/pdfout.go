// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfout merges rendered PNG pages into a single PDF document.
package pdfout

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/szebenyib/swf-to-pdf/internal/scan"
)

// DefaultOutputName derives the PDF filename from the processed directory,
// matching the original tool: the directory's basename plus ".pdf". For
// "." the absolute path is resolved first so the name is never ".pdf".
func DefaultOutputName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return filepath.Base(abs) + ".pdf", nil
}

// Assemble imports the PNG pages into a single PDF at outPath, one page
// per image in the given order. Each page is sized to its image at 72 dpi
// (one pixel to one point) with the image at the origin. An existing
// output file is replaced, not appended to.
func Assemble(pngs []string, outPath string, w io.Writer) error {
	if len(pngs) == 0 {
		fmt.Fprintln(w, "No images were found.")
		return nil
	}

	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale %s: %w", outPath, err)
	}

	if err := api.ImportImagesFile(pngs, outPath, nil, nil); err != nil {
		return fmt.Errorf("importing %d images into %s: %w", len(pngs), outPath, err)
	}

	for i, png := range pngs {
		fmt.Fprintf(w, "%d/%d: %s\n", i+1, len(pngs), filepath.Base(png))
	}
	fmt.Fprintf(w, "\nWrote %s (%d pages)\n", outPath, len(pngs))
	return nil
}

// AssembleDir collects the PNGs in dir in processing order and merges them
// into outPath. It returns the pages written, in order; an empty slice
// means no images were found and no PDF was created.
func AssembleDir(dir, outPath string, w io.Writer) ([]string, error) {
	pngs, err := scan.Sources(dir, ".png")
	if err != nil {
		return nil, err
	}
	if err := Assemble(pngs, outPath, w); err != nil {
		return nil, err
	}
	return pngs, nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Validate runs pdfcpu's structural validation against the PDF at path.
func Validate(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	return nil
}

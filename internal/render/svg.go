// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGRasterizer renders SVG files with the pure-Go oksvg/rasterx stack.
// No external tooling is involved.
type SVGRasterizer struct{}

// Rasterize parses the SVG at srcPath and draws it onto a width x height
// canvas. The icon is stretched to the full target, matching how the SWF
// backend fits pages.
func (s *SVGRasterizer) Rasterize(srcPath string, width, height int) (image.Image, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parsing SVG %s: %w", srcPath, err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return rgba, nil
}

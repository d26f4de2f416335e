// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster post-processes rasterized pages: flattening alpha onto a
// background color, enforcing the target size and applying the crop window.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/kovidgoyal/imaging"

	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// ParseBackground parses a dot-separated R.G.B triple such as
// "255.255.255" into an opaque color.
func ParseBackground(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return color.NRGBA{}, fmt.Errorf("background color %q: want R.G.B", s)
	}

	var channels [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("background color %q: channel %q: %w", s, p, err)
		}
		channels[i] = uint8(v)
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}

// Flatten composites img over an opaque background of the given color.
// PDF pages have no alpha channel, so transparent regions must be filled
// before assembly.
func Flatten(img image.Image, bg color.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// EnsureSize resizes img to width x height unless it already has those
// dimensions. Rasterizer backends are asked for the target size directly;
// this catches backends that round or preserve aspect ratio.
func EnsureSize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Crop extracts the configured window from img. The result is
// (Right-Left) x (Bottom-Top) pixels.
func Crop(img image.Image, crop types.CropConfig) (*image.NRGBA, error) {
	// image.Rect swaps inverted corners, which would silently turn a
	// negative-sized window into a valid one. Reject before building it.
	if crop.Right <= crop.Left || crop.Bottom <= crop.Top {
		return nil, fmt.Errorf("crop window is inverted or empty: left %d right %d top %d bottom %d",
			crop.Left, crop.Right, crop.Top, crop.Bottom)
	}
	win := crop.Window()
	if !win.In(img.Bounds()) {
		return nil, fmt.Errorf("crop window %v exceeds image bounds %v", win, img.Bounds())
	}
	return imaging.Crop(img, win), nil
}

// Process applies the full post-raster chain: size enforcement, alpha
// flattening and an optional crop.
func Process(img image.Image, cfg types.RenderConfig, crop types.CropConfig) (image.Image, error) {
	bg, err := ParseBackground(cfg.BackgroundColor)
	if err != nil {
		return nil, err
	}

	out := EnsureSize(img, cfg.XSize, cfg.YSize)
	flat := Flatten(out, bg)

	if !crop.Enabled() {
		return flat, nil
	}
	return Crop(flat, crop)
}

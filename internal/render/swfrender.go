// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/kovidgoyal/imaging"
)

// binSwfrender is the swftools rasterizer binary.
const binSwfrender = "swfrender"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Command output
// is folded into the returned error so swfrender diagnostics surface.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// SWFRasterizer renders SWF files by invoking the external swfrender
// binary, which writes a PNG that is then loaded back.
type SWFRasterizer struct {
	exec executor
}

// NewSWFRasterizer returns a rasterizer backed by swfrender. It verifies
// that the binary is on PATH before returning.
func NewSWFRasterizer() (*SWFRasterizer, error) {
	return newSWFRasterizer(defaultExec)
}

func newSWFRasterizer(exec executor) (*SWFRasterizer, error) {
	if _, err := exec.LookPath(binSwfrender); err != nil {
		return nil, fmt.Errorf("%s not found on PATH (install swftools): %w", binSwfrender, err)
	}
	return &SWFRasterizer{exec: exec}, nil
}

// Rasterize runs swfrender on srcPath at the given size and loads the
// resulting PNG. The intermediate file lives in a temp directory so a
// crashed run leaves no partial output next to the sources.
func (r *SWFRasterizer) Rasterize(srcPath string, width, height int) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "swf2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpPNG := filepath.Join(tmpDir, "page.png")
	err = r.exec.Run(binSwfrender, srcPath,
		"-X", strconv.Itoa(width),
		"-Y", strconv.Itoa(height),
		"-o", tmpPNG)
	if err != nil {
		return nil, fmt.Errorf("swfrender %s: %w", srcPath, err)
	}

	img, err := imaging.Open(tmpPNG)
	if err != nil {
		return nil, fmt.Errorf("reading swfrender output for %s: %w", srcPath, err)
	}
	return img, nil
}

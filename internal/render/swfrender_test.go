// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"image/color"
	"strconv"
	"testing"

	"github.com/kovidgoyal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor simulates swfrender: when run, it writes a PNG of the
// requested size to the -o argument.
type fakeExecutor struct {
	missing bool
	runErr  error
	calls   [][]string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.runErr != nil {
		return f.runErr
	}

	var width, height int
	var out string
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-X":
			width, _ = strconv.Atoi(args[i+1])
		case "-Y":
			height, _ = strconv.Atoi(args[i+1])
		case "-o":
			out = args[i+1]
		}
	}
	img := imaging.New(width, height, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	return imaging.Save(img, out)
}

func TestSWFRasterizer(t *testing.T) {
	exec := &fakeExecutor{}
	r, err := newSWFRasterizer(exec)
	require.NoError(t, err)

	img, err := r.Rasterize("page.swf", 640, 480)
	require.NoError(t, err)

	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	require.Len(t, exec.calls, 1)
	call := exec.calls[0]
	assert.Equal(t, binSwfrender, call[0])
	assert.Equal(t, "page.swf", call[1])
	assert.Contains(t, call, "-X")
	assert.Contains(t, call, "640")
	assert.Contains(t, call, "-Y")
	assert.Contains(t, call, "480")
}

func TestSWFRasterizer_BinaryMissing(t *testing.T) {
	_, err := newSWFRasterizer(&fakeExecutor{missing: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swftools")
}

func TestSWFRasterizer_RunFails(t *testing.T) {
	exec := &fakeExecutor{runErr: errors.New("rendering failed")}
	r, err := newSWFRasterizer(exec)
	require.NoError(t, err)

	_, err = r.Rasterize("page.swf", 100, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page.swf")
}

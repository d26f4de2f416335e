// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kovidgoyal/imaging"

	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// fakeRasterizer returns a solid image of the requested size, or an error
// for sources listed in fail.
type fakeRasterizer struct {
	fail map[string]error
}

func (f *fakeRasterizer) Rasterize(srcPath string, width, height int) (image.Image, error) {
	if err, ok := f.fail[filepath.Base(srcPath)]; ok {
		return nil, err
	}
	return imaging.New(width, height, color.NRGBA{R: 50, G: 100, B: 150, A: 255}), nil
}

func testConfig() types.RenderConfig {
	return types.RenderConfig{
		XSize:           120,
		YSize:           80,
		SourceFormat:    types.SourceSWF,
		BackgroundColor: types.DefaultBackgroundColor,
	}
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("swf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "page1.swf")

	res := RenderFile(&fakeRasterizer{}, src, testConfig(), types.CropConfig{})
	if res.Err != nil {
		t.Fatalf("RenderFile: %v", res.Err)
	}

	if res.Output != filepath.Join(dir, "page1.png") {
		t.Errorf("output = %q, want page1.png next to source", res.Output)
	}
	img, err := imaging.Open(res.Output)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("output is %dx%d, want 120x80", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderFile_Crop(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "page1.swf")
	crop := types.CropConfig{Top: 10, Left: 20, Bottom: 70, Right: 100}

	res := RenderFile(&fakeRasterizer{}, src, testConfig(), crop)
	if res.Err != nil {
		t.Fatalf("RenderFile: %v", res.Err)
	}
	if res.Width != 80 || res.Height != 60 {
		t.Errorf("cropped size = %dx%d, want 80x60", res.Width, res.Height)
	}
}

func TestRenderFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "page1.swf")
	cfg := testConfig()

	res := RenderFile(&fakeRasterizer{}, src, cfg, types.CropConfig{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	first, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatal(err)
	}

	res = RenderFile(&fakeRasterizer{}, src, cfg, types.CropConfig{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	second, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("re-render produced different PNG bytes")
	}
}

func TestRenderFile_RecordsFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "broken.swf")
	r := &fakeRasterizer{fail: map[string]error{"broken.swf": errors.New("bad tag")}}

	res := RenderFile(r, src, testConfig(), types.CropConfig{})
	if res.Err == nil {
		t.Fatal("expected error")
	}

	rec := res.Record()
	if rec.Status != types.StatusFailed {
		t.Errorf("status = %q, want %q", rec.Status, types.StatusFailed)
	}
	if !strings.Contains(rec.Error, "bad tag") {
		t.Errorf("record error %q should mention the cause", rec.Error)
	}
}

func TestRenderBatch(t *testing.T) {
	dir := t.TempDir()
	sources := []string{
		writeSource(t, dir, "1.swf"),
		writeSource(t, dir, "2.swf"),
		writeSource(t, dir, "3.swf"),
	}
	r := &fakeRasterizer{fail: map[string]error{"2.swf": errors.New("boom")}}

	var log bytes.Buffer
	batch := RenderBatch(r, sources, testConfig(), types.CropConfig{}, &log)

	if batch.Rendered != 2 {
		t.Errorf("rendered = %d, want 2", batch.Rendered)
	}
	if batch.Failed != 1 {
		t.Errorf("failed = %d, want 1", batch.Failed)
	}
	if !batch.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if batch.Total() != 3 {
		t.Errorf("total = %d, want 3", batch.Total())
	}

	out := log.String()
	if !strings.Contains(out, "0001/0003") {
		t.Errorf("output %q should carry per-file counters", out)
	}
	if !strings.Contains(out, "could not be created") {
		t.Error("output should report the failed file")
	}
	if !strings.Contains(out, "Render summary: 2 rendered, 1 failed") {
		t.Errorf("output %q should end with a summary", out)
	}

	// One PNG per successful source.
	for _, name := range []string{"1.png", "3.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "2.png")); err == nil {
		t.Error("failed source should not leave a PNG behind")
	}
}

func TestNewRasterizer_Unsupported(t *testing.T) {
	if _, err := NewRasterizer(types.SourceFormat("gif")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidateImageFormat(t *testing.T) {
	for _, ok := range []string{"", "png", "PNG"} {
		if err := ValidateImageFormat(ok); err != nil {
			t.Errorf("ValidateImageFormat(%q) = %v, want nil", ok, err)
		}
	}
	if err := ValidateImageFormat("jpeg"); err == nil {
		t.Error("jpeg should be rejected")
	}
}

package types

import "image"

// SourceFormat identifies the vector input format.
type SourceFormat string

const (
	SourceSWF SourceFormat = "swf"
	SourceSVG SourceFormat = "svg"
)

// Valid reports whether the format is one the pipeline can rasterize.
func (f SourceFormat) Valid() bool {
	return f == SourceSWF || f == SourceSVG
}

// Ext returns the filename extension for the format, including the dot.
func (f SourceFormat) Ext() string {
	return "." + string(f)
}

// Default raster dimensions, matching A4 at 300 dpi.
const (
	DefaultXSize = 2480
	DefaultYSize = 3508
)

// DefaultBackgroundColor is the flattening background when none is configured.
const DefaultBackgroundColor = "255.255.255"

// RenderConfig holds settings for the rasterization stage.
type RenderConfig struct {
	// XSize and YSize are the target raster dimensions in pixels,
	// applied before any crop.
	XSize int `json:"x_size" yaml:"x_size"`
	YSize int `json:"y_size" yaml:"y_size"`

	// SourceFormat selects the input format: swf or svg.
	SourceFormat SourceFormat `json:"source_format" yaml:"source_format"`

	// BackgroundColor is a dot-separated R.G.B triple (e.g. "255.255.255")
	// used when flattening alpha onto an opaque background.
	BackgroundColor string `json:"background_color" yaml:"background_color"`

	// ImageFormat is the raster output format. Only "png" is supported;
	// the flag exists for compatibility with the original CLI.
	ImageFormat string `json:"image_format" yaml:"image_format"`
}

// CropConfig describes a pixel-space crop window applied after
// rasterization. The zero value means no cropping.
type CropConfig struct {
	Top    int `json:"crop_top" yaml:"crop_top"`
	Left   int `json:"crop_left" yaml:"crop_left"`
	Bottom int `json:"crop_bottom" yaml:"crop_bottom"`
	Right  int `json:"crop_right" yaml:"crop_right"`
}

// Enabled reports whether a crop window has been configured.
func (c CropConfig) Enabled() bool {
	return c != CropConfig{}
}

// Window returns the crop window as an image rectangle. The cropped
// image is (Right-Left) x (Bottom-Top) pixels.
func (c CropConfig) Window() image.Rectangle {
	return image.Rect(c.Left, c.Top, c.Right, c.Bottom)
}

// AssembleConfig holds settings for the PDF assembly stage.
type AssembleConfig struct {
	// Out is the output PDF filename. Empty means the basename of the
	// processed directory plus ".pdf".
	Out string `json:"out" yaml:"out"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	// Dir is the directory whose files are processed (default ".").
	Dir string `json:"dir" yaml:"dir"`

	Render   RenderConfig   `json:"render" yaml:"render"`
	Crop     CropConfig     `json:"crop" yaml:"crop"`
	Assemble AssembleConfig `json:"assemble" yaml:"assemble"`
}

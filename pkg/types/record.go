package types

import "time"

// SWFInfo describes the container header of one SWF file.
type SWFInfo struct {
	// Name is the filename the header was read from.
	Name string `json:"name" yaml:"name"`

	// Signature is the three-byte container signature: FWS (uncompressed),
	// CWS (zlib) or ZWS (LZMA).
	Signature string `json:"signature" yaml:"signature"`

	// Version is the SWF file format version.
	Version uint8 `json:"version" yaml:"version"`

	// FileLength is the uncompressed file length from the header, in bytes.
	FileLength uint32 `json:"file_length" yaml:"file_length"`

	// FrameWidth and FrameHeight are the stage dimensions in pixels
	// (the header stores twips; 20 twips per pixel).
	FrameWidth  int `json:"frame_width" yaml:"frame_width"`
	FrameHeight int `json:"frame_height" yaml:"frame_height"`
}

// Compressed reports whether the container body is compressed.
func (i SWFInfo) Compressed() bool {
	return i.Signature != "FWS"
}

// FileStatus is the recorded outcome for one processed file.
type FileStatus string

const (
	StatusRendered  FileStatus = "rendered"
	StatusAssembled FileStatus = "assembled"
	StatusFailed    FileStatus = "failed"
)

// FileRecord is one file's outcome within a run, as stored in the
// run manifest.
type FileRecord struct {
	Name     string        `json:"name" yaml:"name"`
	Status   FileStatus    `json:"status" yaml:"status"`
	Width    int           `json:"width" yaml:"width"`
	Height   int           `json:"height" yaml:"height"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunRecord is one pipeline invocation, as stored in the run manifest.
type RunRecord struct {
	ID        int64        `json:"id" yaml:"id"`
	StartedAt time.Time    `json:"started_at" yaml:"started_at"`
	Stage     string       `json:"stage" yaml:"stage"`
	Dir       string       `json:"dir" yaml:"dir"`
	XSize     int          `json:"x_size" yaml:"x_size"`
	YSize     int          `json:"y_size" yaml:"y_size"`
	Files     []FileRecord `json:"files,omitempty" yaml:"files,omitempty"`
}

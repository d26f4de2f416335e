// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package swf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"
)

// bitWriter packs big-endian bit fields the way SWF RECTs are stored.
type bitWriter struct {
	data []byte
	pos  int
}

func (w *bitWriter) write(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.pos&7 == 0 {
			w.data = append(w.data, 0)
		}
		bit := byte(v>>uint(i)) & 1
		w.data[len(w.data)-1] |= bit << (7 - uint(w.pos&7))
		w.pos++
	}
}

// encodeRect builds a stage RECT for the given pixel dimensions.
func encodeRect(widthPx, heightPx int) []byte {
	var w bitWriter
	const nbits = 16
	w.write(nbits, 5)
	// xmin, xmax, ymin, ymax in twips.
	w.write(0, nbits)
	w.write(uint32(widthPx*twipsPerPixel), nbits)
	w.write(0, nbits)
	w.write(uint32(heightPx*twipsPerPixel), nbits)
	return w.data
}

// buildSWF assembles a synthetic SWF with the given signature and stage size.
func buildSWF(t *testing.T, sig string, version uint8, widthPx, heightPx int) []byte {
	t.Helper()

	body := encodeRect(widthPx, heightPx)
	// Frame rate and count follow the RECT in a real file.
	body = append(body, 0x00, 0x18, 0x01, 0x00)

	fileLen := uint32(headerSize + len(body))
	out := []byte(sig)
	out = append(out, version)
	out = binary.LittleEndian.AppendUint32(out, fileLen)

	switch sig {
	case "FWS":
		out = append(out, body...)
	case "CWS":
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		_, err := zw.Write(body)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		out = append(out, buf.Bytes()...)
	case "ZWS":
		var buf bytes.Buffer
		lw, err := lzma.WriterConfig{Size: int64(len(body))}.NewWriter(&buf)
		require.NoError(t, err)
		_, err = lw.Write(body)
		require.NoError(t, err)
		require.NoError(t, lw.Close())
		// Classic LZMA output is 5 property bytes, an 8-byte size,
		// then the stream; ZWS stores a compressed length, the
		// properties and the stream without the size field.
		raw := buf.Bytes()
		out = binary.LittleEndian.AppendUint32(out, uint32(len(raw)-8))
		out = append(out, raw[:5]...)
		out = append(out, raw[13:]...)
	default:
		t.Fatalf("unknown signature %q", sig)
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		sig     string
		version uint8
	}{
		{"FWS", 5},
		{"CWS", 9},
		{"ZWS", 13},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			data := buildSWF(t, tt.sig, tt.version, 550, 400)

			info, err := Decode(data)
			require.NoError(t, err)

			assert.Equal(t, tt.sig, info.Signature)
			assert.Equal(t, tt.version, info.Version)
			assert.Equal(t, 550, info.FrameWidth)
			assert.Equal(t, 400, info.FrameHeight)
			assert.Equal(t, tt.sig != "FWS", info.Compressed())
		})
	}
}

func TestDecode_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		errMsg string
	}{
		{
			name:   "too short",
			data:   []byte("FWS"),
			errMsg: "too short",
		},
		{
			name:   "wrong signature",
			data:   append([]byte("PNG\x0d"), make([]byte, 16)...),
			errMsg: `signature "PNG"`,
		},
		{
			name:   "truncated rect",
			data:   []byte{'F', 'W', 'S', 5, 9, 0, 0, 0, 0x80},
			errMsg: "stage RECT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.swf")
	require.NoError(t, os.WriteFile(path, buildSWF(t, "CWS", 10, 1024, 768), 0o644))

	info, err := Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "page.swf", info.Name)
	assert.Equal(t, 1024, info.FrameWidth)
	assert.Equal(t, 768, info.FrameHeight)
}

func TestProbe_MissingFile(t *testing.T) {
	_, err := Probe(filepath.Join(t.TempDir(), "nope.swf"))
	require.Error(t, err)
}

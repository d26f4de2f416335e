// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package swf reads SWF container headers: signature, version, declared
// length and the stage RECT that carries the frame size in twips.
package swf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz/lzma"

	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// Container signatures. FWS is uncompressed, CWS compresses the body with
// zlib (SWF >= 6), ZWS with LZMA (SWF >= 13).
const (
	sigUncompressed = "FWS"
	sigZlib         = "CWS"
	sigLZMA         = "ZWS"
)

// headerSize is the uncompressed portion of every SWF file: signature,
// version byte and file length.
const headerSize = 8

// twipsPerPixel converts RECT coordinates to pixels.
const twipsPerPixel = 20

// Probe reads the container header of the SWF file at path.
func Probe(path string) (types.SWFInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SWFInfo{}, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := Decode(data)
	if err != nil {
		return types.SWFInfo{}, fmt.Errorf("probing %s: %w", path, err)
	}
	info.Name = filepath.Base(path)
	return info, nil
}

// Decode parses a complete SWF file image and returns its header info.
func Decode(data []byte) (types.SWFInfo, error) {
	if len(data) < headerSize {
		return types.SWFInfo{}, fmt.Errorf("file too short for SWF header (%d bytes)", len(data))
	}

	sig := string(data[:3])
	switch sig {
	case sigUncompressed, sigZlib, sigLZMA:
	default:
		return types.SWFInfo{}, fmt.Errorf("not an SWF file: signature %q", sig)
	}

	info := types.SWFInfo{
		Signature:  sig,
		Version:    data[3],
		FileLength: binary.LittleEndian.Uint32(data[4:8]),
	}
	if info.FileLength < headerSize {
		return types.SWFInfo{}, fmt.Errorf("declared file length %d below header size", info.FileLength)
	}

	body, err := decompressBody(sig, info.FileLength, data[headerSize:])
	if err != nil {
		return types.SWFInfo{}, err
	}

	w, h, err := decodeStageRect(body)
	if err != nil {
		return types.SWFInfo{}, err
	}
	info.FrameWidth = w
	info.FrameHeight = h

	return info, nil
}

// decompressBody returns the leading bytes of the uncompressed body, enough
// to hold the stage RECT. fileLen is the declared uncompressed length of
// the whole file including the 8-byte header.
func decompressBody(sig string, fileLen uint32, body []byte) ([]byte, error) {
	switch sig {
	case sigUncompressed:
		return body, nil

	case sigZlib:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("opening zlib body: %w", err)
		}
		defer zr.Close()
		return readPrefix(zr)

	case sigLZMA:
		// The ZWS layout is: 4 bytes of compressed length, 5 LZMA
		// property bytes, then the raw stream. A classic LZMA header
		// wants the properties followed by a 64-bit uncompressed size,
		// so the header is rebuilt before handing off to the decoder.
		if len(body) < 9 {
			return nil, fmt.Errorf("truncated LZMA header (%d bytes)", len(body))
		}
		props, stream := body[4:9], body[9:]

		hdr := make([]byte, 0, 13+len(stream))
		hdr = append(hdr, props...)
		hdr = binary.LittleEndian.AppendUint64(hdr, uint64(fileLen)-headerSize)
		hdr = append(hdr, stream...)

		lr, err := lzma.NewReader(bytes.NewReader(hdr))
		if err != nil {
			return nil, fmt.Errorf("opening LZMA body: %w", err)
		}
		return readPrefix(lr)
	}
	return nil, fmt.Errorf("unknown signature %q", sig)
}

// rectPrefixSize bounds the bytes needed for the stage RECT: 5 bits for
// the field width plus four fields of at most 31 bits each.
const rectPrefixSize = 17

func readPrefix(r io.Reader) ([]byte, error) {
	buf := make([]byte, rectPrefixSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("decompressing body: %w", err)
	}
	return buf[:n], nil
}

// decodeStageRect reads the RECT record at the start of the body and
// returns the stage size in pixels.
func decodeStageRect(body []byte) (width, height int, err error) {
	br := bitReader{data: body}

	nbits, err := br.read(5)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding stage RECT: %w", err)
	}

	var fields [4]int32 // xmin, xmax, ymin, ymax in twips
	for i := range fields {
		v, err := br.read(int(nbits))
		if err != nil {
			return 0, 0, fmt.Errorf("decoding stage RECT: %w", err)
		}
		fields[i] = signExtend(v, int(nbits))
	}

	width = int(fields[1]-fields[0]) / twipsPerPixel
	height = int(fields[3]-fields[2]) / twipsPerPixel
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("implausible stage size %dx%d twips", fields[1]-fields[0], fields[3]-fields[2])
	}
	return width, height, nil
}

// signExtend interprets the low nbits of v as a two's-complement value.
func signExtend(v uint32, nbits int) int32 {
	if nbits == 0 {
		return 0
	}
	if v&(1<<(nbits-1)) != 0 {
		v |= ^uint32(0) << nbits
	}
	return int32(v)
}

// bitReader reads big-endian bit fields, the packing SWF uses for RECTs.
type bitReader struct {
	data []byte
	pos  int // bit offset from the start of data
}

func (b *bitReader) read(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := b.pos >> 3
		if byteIdx >= len(b.data) {
			return 0, io.ErrUnexpectedEOF
		}
		bit := (b.data[byteIdx] >> (7 - uint(b.pos&7))) & 1
		v = v<<1 | uint32(bit)
		b.pos++
	}
	return v, nil
}

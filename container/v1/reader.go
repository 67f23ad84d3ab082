package v1

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/octa3d/octa3d/codec"
)

// Reader parses and validates the file header and all frame headers
// up-front, then exposes frames one at a time via NextFrame.
type Reader struct {
	source    io.Reader
	registry  *codec.Registry
	headers   []frameHeader
	nextIndex int
}

// Open parses source's file header (validating magic, version, and frame
// count) and all frame headers, and returns a Reader positioned to read
// the first frame's payload.
func Open(source io.Reader, registry *codec.Registry) (*Reader, error) {
	if registry == nil {
		registry = codec.Default()
	}

	var fileHdr [fileHeaderSize]byte
	if _, err := io.ReadFull(source, fileHdr[:]); err != nil {
		return nil, &InvalidFormatError{Reason: "short file header: " + err.Error()}
	}
	if !bytes.Equal(fileHdr[0:8], Magic[:]) {
		return nil, &InvalidFormatError{Reason: "bad magic"}
	}
	if fileHdr[8] != Version {
		return nil, &InvalidFormatError{Reason: "unsupported version byte"}
	}
	frameCount := binary.BigEndian.Uint32(fileHdr[10:14])
	if frameCount > MaxFrameCount {
		return nil, &InvalidFormatError{Reason: "frame count exceeds MaxFrameCount"}
	}

	headers := make([]frameHeader, frameCount)
	for i := range headers {
		var buf [frameHeaderSize]byte
		if _, err := io.ReadFull(source, buf[:]); err != nil {
			return nil, &InvalidFormatError{Reason: "short frame header: " + err.Error()}
		}
		headers[i] = frameHeader{
			CodecID:         buf[0],
			CodecVersion:    buf[1],
			GraphID:         binary.BigEndian.Uint16(buf[2:4]),
			UncompressedLen: binary.BigEndian.Uint32(buf[4:8]),
			CompressedLen:   binary.BigEndian.Uint32(buf[8:12]),
			CRC32C:          binary.BigEndian.Uint32(buf[12:16]),
		}
		if headers[i].CompressedLen > MaxCompressedFrameBytes {
			return nil, &InvalidFormatError{Reason: "frame header declares oversized compressed length"}
		}
		if headers[i].UncompressedLen > MaxUncompressedFrameBytes {
			return nil, &InvalidFormatError{Reason: "frame header declares oversized uncompressed length"}
		}
	}

	return &Reader{source: source, registry: registry, headers: headers}, nil
}

// FrameCount returns the number of frames declared in the file header.
func (r *Reader) FrameCount() int { return len(r.headers) }

// NextFrame reads, CRC-checks, and decompresses the next frame's payload.
// It returns (nil, 0, io.EOF) once all frames have been read.
func (r *Reader) NextFrame() ([]byte, uint16, error) {
	if r.nextIndex >= len(r.headers) {
		return nil, 0, io.EOF
	}
	hdr := r.headers[r.nextIndex]
	r.nextIndex++

	compressed := make([]byte, hdr.CompressedLen)
	if _, err := io.ReadFull(r.source, compressed); err != nil {
		return nil, 0, &InvalidFormatError{Reason: "short frame payload: " + err.Error()}
	}

	if got := codec.CRC32C(compressed); got != hdr.CRC32C {
		return nil, 0, &CrcMismatchError{Expected: hdr.CRC32C, Actual: got}
	}

	c, err := r.registry.Get(hdr.CodecID)
	if err != nil {
		return nil, 0, err
	}
	data, err := c.Decompress(compressed)
	if err != nil {
		return nil, 0, err
	}
	return data, hdr.GraphID, nil
}

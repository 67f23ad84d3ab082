// Package v1 implements the sealed container format (§3.6, §4.F): a file
// header, a contiguous block of fixed-size frame headers, then all
// compressed payloads back-to-back. The format is all-or-nothing — Finish
// is the only externally observable commit point.
package v1

import "fmt"

// Magic is the 8-byte v1 file magic.
var Magic = [8]byte{'O', 'C', 'T', 'A', '3', 'D', 0, 0}

// Version is the v1 format version byte.
const Version byte = 1

const (
	fileHeaderSize  = 16
	frameHeaderSize = 16

	// MaxFrameCount is the maximum number of frames a v1 container may hold.
	MaxFrameCount = 100_000
	// MaxCompressedFrameBytes is the maximum compressed size of one frame.
	MaxCompressedFrameBytes = 64 * 1024 * 1024
	// MaxUncompressedFrameBytes is the maximum uncompressed size of one frame.
	MaxUncompressedFrameBytes = 256 * 1024 * 1024
)

// InvalidFormatError indicates a malformed container header or a frame
// that violates the format's size limits.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid container v1 format: %s", e.Reason)
}

// CrcMismatchError indicates a frame's stored CRC32C does not match the
// CRC32C computed over its compressed bytes on read.
type CrcMismatchError struct {
	Expected, Actual uint32
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("crc32c mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

// frameHeader is the 16-byte on-disk per-frame header.
type frameHeader struct {
	CodecID         uint8
	CodecVersion    uint8
	GraphID         uint16
	UncompressedLen uint32
	CompressedLen   uint32
	CRC32C          uint32
}

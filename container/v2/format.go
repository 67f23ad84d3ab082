// Package v2 implements the streaming, append-friendly container format
// (§3.6, §4.G): frames are appended as they are produced, with periodic
// checkpoints writing a table of contents (TOC) and footer so a reader can
// recover the set of frames committed as of the last intact checkpoint
// even if the file was truncated afterward (a crash mid-write).
package v2

import "fmt"

// Magic is the 8-byte v2 file magic.
var Magic = [8]byte{'O', 'C', 'T', 'A', '3', 'D', '2', 0}

// FooterMagic marks the start of a 32-byte footer record.
var FooterMagic = [8]byte{'O', 'C', '3', 'D', 'F', 'T', 'R', 0}

// Version is the v2 format version byte.
const Version byte = 2

const (
	// FlagSHA256 indicates each frame is followed by a 32-byte SHA-256 hash.
	FlagSHA256 byte = 1 << 0
)

const (
	fileHeaderSize  = 32
	frameHeaderSize = 16
	tocEntrySize    = 32
	footerSize      = 32
	sha256Size      = 32
)

// InvalidFormatError indicates a malformed v2 header, frame, or TOC entry.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid container v2 format: %s", e.Reason)
}

// FooterNotFoundError indicates recovery could not locate any valid footer.
type FooterNotFoundError struct{}

func (e *FooterNotFoundError) Error() string { return "no valid v2 footer found during recovery" }

// TocCorruptError indicates the TOC referenced by a footer failed to parse.
type TocCorruptError struct {
	Reason string
}

func (e *TocCorruptError) Error() string {
	return fmt.Sprintf("container v2 TOC corrupt: %s", e.Reason)
}

// CrcMismatchError indicates a frame's stored CRC32C does not match its
// compressed bytes.
type CrcMismatchError struct {
	Expected, Actual uint32
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("crc32c mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

// Sha256MismatchError indicates a frame's optional SHA-256 hash does not
// match its compressed bytes.
type Sha256MismatchError struct{}

func (e *Sha256MismatchError) Error() string { return "sha256 mismatch on frame payload" }

// frameHeader is the 16-byte on-disk per-frame header, identical in shape
// to container v1's.
type frameHeader struct {
	CodecID         uint8
	CodecVersion    uint8
	GraphID         uint16
	UncompressedLen uint32
	CompressedLen   uint32
	CRC32C          uint32
}

// TocEntry is one 32-byte table-of-contents record (§3.6).
type TocEntry struct {
	Offset          uint64
	UncompressedLen uint32
	CompressedLen   uint32
	CodecID         uint8
	GraphID         uint16
	LOD             uint8
	Tier            uint8
	Seq             uint64
}

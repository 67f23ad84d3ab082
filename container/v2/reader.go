package v2

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/octa3d/octa3d/codec"
)

// maxFooterScanBytes bounds the backward scan recoverFooter performs
// looking for a valid footer when the trailing bytes are corrupt or
// truncated. A stream with no intact checkpoint in its last 1 MiB is
// treated as unrecoverable rather than scanned to the beginning.
const maxFooterScanBytes = 1 << 20

// Reader recovers the frame set committed as of the last intact checkpoint
// in a v2 stream, tolerating a truncated or partially-written tail.
type Reader struct {
	source   io.ReadSeeker
	registry *codec.Registry
	logger   *slog.Logger

	streamID uint64
	sha256   bool
	entries  []TocEntry
}

// OpenRecover parses the file header and scans backward from the end of
// source for the last valid footer, then loads the TOC it references. It
// returns FooterNotFoundError if no valid footer is found within the scan
// window, and TocCorruptError if a footer is found but its TOC cannot be
// parsed.
func OpenRecover(source io.ReadSeeker, registry *codec.Registry) (*Reader, error) {
	if registry == nil {
		registry = codec.Default()
	}

	var hdr [fileHeaderSize]byte
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(source, hdr[:]); err != nil {
		return nil, &InvalidFormatError{Reason: "short file header: " + err.Error()}
	}
	if !bytes.Equal(hdr[0:8], Magic[:]) {
		return nil, &InvalidFormatError{Reason: "bad magic"}
	}
	if hdr[8] != Version {
		return nil, &InvalidFormatError{Reason: "unsupported version byte"}
	}
	streamID := binary.BigEndian.Uint64(hdr[10:18])

	size, err := source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	ftr, ftrEnd, err := recoverFooter(source, size)
	if err != nil {
		return nil, err
	}

	tocBytes := make([]byte, ftr.TocLen)
	if _, err := source.Seek(int64(ftr.TocOffset), io.SeekStart); err != nil {
		return nil, &TocCorruptError{Reason: err.Error()}
	}
	if _, err := io.ReadFull(source, tocBytes); err != nil {
		return nil, &TocCorruptError{Reason: "short toc: " + err.Error()}
	}
	if uint64(len(tocBytes)) != uint64(ftr.EntryCount)*tocEntrySize {
		return nil, &TocCorruptError{Reason: "entry_count does not match toc_len"}
	}
	if ftr.TocOffset+ftr.TocLen+footerSize != uint64(ftrEnd) {
		return nil, &TocCorruptError{Reason: "footer does not immediately follow toc"}
	}

	entries := make([]TocEntry, ftr.EntryCount)
	for i := range entries {
		entries[i] = decodeTocEntry(tocBytes[i*tocEntrySize : (i+1)*tocEntrySize])
	}

	return &Reader{
		source:   source,
		registry: registry,
		logger:   slog.Default(),
		streamID: streamID,
		sha256:   ftr.FlagsCopy&FlagSHA256 != 0,
		entries:  entries,
	}, nil
}

// recoverFooter scans backward from the end of a stream of total length
// size looking for a 32-byte record matching FooterMagic whose toc_offset
// and toc_len describe a TOC that fits within the file and ends exactly
// where the candidate footer begins. It returns the decoded footer and the
// file offset immediately after it.
func recoverFooter(source io.ReadSeeker, size int64) (footer, int64, error) {
	var buf [footerSize]byte
	limit := size - maxFooterScanBytes
	if limit < fileHeaderSize {
		limit = fileHeaderSize
	}

	for pos := size - footerSize; pos >= limit; pos-- {
		if _, err := source.Seek(pos, io.SeekStart); err != nil {
			return footer{}, 0, err
		}
		if _, err := io.ReadFull(source, buf[:]); err != nil {
			continue
		}
		f, ok := decodeFooter(buf[:])
		if !ok {
			continue
		}
		ftrEnd := pos + footerSize
		if f.TocOffset < fileHeaderSize || f.TocLen == 0 {
			continue
		}
		if f.TocOffset+f.TocLen+footerSize != uint64(ftrEnd) {
			continue
		}
		if f.TocLen != uint64(f.EntryCount)*tocEntrySize {
			continue
		}
		return f, ftrEnd, nil
	}
	return footer{}, 0, &FooterNotFoundError{}
}

// FrameCount returns the number of frames recovered from the last valid
// checkpoint's TOC.
func (r *Reader) FrameCount() int { return len(r.entries) }

// StreamID returns the stream identifier from the file header.
func (r *Reader) StreamID() uint64 { return r.streamID }

// ReadFrame decompresses and returns the i'th recovered frame, verifying
// its CRC32C and, if the stream was written with EnableSHA256, its
// SHA-256 hash.
func (r *Reader) ReadFrame(i int) ([]byte, TocEntry, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, TocEntry{}, &InvalidFormatError{Reason: "frame index out of range"}
	}
	e := r.entries[i]

	if _, err := r.source.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, e, err
	}
	var hdrBuf [frameHeaderSize]byte
	if _, err := io.ReadFull(r.source, hdrBuf[:]); err != nil {
		return nil, e, &InvalidFormatError{Reason: "short frame header: " + err.Error()}
	}
	hdr := decodeFrameHeader(hdrBuf[:])

	compressed := make([]byte, hdr.CompressedLen)
	if _, err := io.ReadFull(r.source, compressed); err != nil {
		return nil, e, &InvalidFormatError{Reason: "short frame payload: " + err.Error()}
	}
	if got := codec.CRC32C(compressed); got != hdr.CRC32C {
		return nil, e, &CrcMismatchError{Expected: hdr.CRC32C, Actual: got}
	}

	if r.sha256 {
		var sum [sha256Size]byte
		if _, err := io.ReadFull(r.source, sum[:]); err != nil {
			return nil, e, &InvalidFormatError{Reason: "short sha256: " + err.Error()}
		}
		want := sha256.Sum256(compressed)
		if sum != want {
			return nil, e, &Sha256MismatchError{}
		}
	}

	c, err := r.registry.Get(hdr.CodecID)
	if err != nil {
		return nil, e, err
	}
	data, err := c.Decompress(compressed)
	if err != nil {
		return nil, e, err
	}
	return data, e, nil
}

// Entries returns the recovered TOC, in write order.
func (r *Reader) Entries() []TocEntry {
	out := make([]TocEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

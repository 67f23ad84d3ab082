package v2

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/octa3d/octa3d/codec"
)

func TestStreamRecoverAfterCheckpoint(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, nil, Options{CheckpointFrames: 2})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	payloads := [][]byte{
		[]byte(strings.Repeat("a", 64)),
		[]byte(strings.Repeat("b", 64)),
		[]byte(strings.Repeat("c", 64)),
		[]byte(strings.Repeat("d", 64)),
	}
	for i, p := range payloads {
		if err := w.WriteFrame(p, codec.IDLZ4, uint16(i), 0, 0); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r, err := OpenRecover(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("OpenRecover: %v", err)
	}
	if r.FrameCount() != len(payloads) {
		t.Fatalf("FrameCount() = %d, want %d", r.FrameCount(), len(payloads))
	}
	for i, want := range payloads {
		got, _, err := r.ReadFrame(i)
		if err != nil {
			t.Fatalf("ReadFrame(%d): %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("frame %d mismatch", i)
		}
	}
}

func TestStreamRecoverFromTruncatedTail(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, nil, Options{CheckpointFrames: 1})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFrame([]byte("first frame, checkpointed"), codec.IDNone, 1, 0, 0); err != nil {
		t.Fatalf("WriteFrame 1: %v", err)
	}
	// This one is written but its checkpoint will be truncated away, so it
	// must NOT be recoverable.
	if err := w.WriteFrame([]byte("second frame, lost"), codec.IDNone, 2, 0, 0); err != nil {
		t.Fatalf("WriteFrame 2: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	full := buf.Bytes()
	// Truncate everything after the first checkpoint's footer, simulating a
	// crash between the two checkpoints.
	firstFooterEnd := fileHeaderSize + frameHeaderSize + len("first frame, checkpointed") + tocEntrySize + footerSize
	truncated := full[:firstFooterEnd]

	r, err := OpenRecover(bytes.NewReader(truncated), nil)
	if err != nil {
		t.Fatalf("OpenRecover on truncated stream: %v", err)
	}
	if r.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1 (only the checkpointed frame)", r.FrameCount())
	}
	got, _, err := r.ReadFrame(0)
	if err != nil {
		t.Fatalf("ReadFrame(0): %v", err)
	}
	if string(got) != "first frame, checkpointed" {
		t.Fatalf("recovered frame mismatch: %q", got)
	}
}

func TestNoFooterFound(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, nil, Options{CheckpointFrames: 1000})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFrame([]byte("never checkpointed"), codec.IDNone, 0, 0, 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	// Deliberately do not call Finish, so no checkpoint is ever written.

	_, err = OpenRecover(bytes.NewReader(buf.Bytes()), nil)
	var notFound *FooterNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FooterNotFoundError, got %v", err)
	}
}

func TestCorruptPayloadWithSHA256ReportsCrcMismatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, nil, Options{CheckpointFrames: 1, EnableSHA256: true})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFrame([]byte("hash me"), codec.IDNone, 0, 0, 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	raw := buf.Bytes()
	corruptAt := fileHeaderSize + frameHeaderSize
	raw[corruptAt] ^= 0xFF

	r, err := OpenRecover(bytes.NewReader(raw), nil)
	if err != nil {
		t.Fatalf("OpenRecover: %v", err)
	}
	_, _, err = r.ReadFrame(0)
	var crcErr *CrcMismatchError
	if !errors.As(err, &crcErr) {
		t.Fatalf("expected CrcMismatchError (CRC is checked before SHA-256), got %v", err)
	}
}

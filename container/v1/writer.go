package v1

import (
	"encoding/binary"
	"io"
	"runtime"
	"sync"

	"github.com/octa3d/octa3d/codec"
)

// Writer buffers frames in memory and writes the complete sealed container
// only on Finish — the only externally observable commit point for v1
// (§5). Writer is not safe for concurrent use by multiple goroutines; v1
// assumes a single writer per sink.
type Writer struct {
	sink     io.Writer
	registry *codec.Registry
	frames   []bufferedFrame
}

type bufferedFrame struct {
	header  frameHeader
	payload []byte
}

// NewWriter returns a Writer that will emit a sealed container to sink
// when Finish is called, compressing frames with registry's codecs.
func NewWriter(sink io.Writer, registry *codec.Registry) *Writer {
	if registry == nil {
		registry = codec.Default()
	}
	return &Writer{sink: sink, registry: registry}
}

// WriteFrame compresses data with codecID, computes its CRC32C over the
// compressed bytes, and buffers the frame for Finish. It enforces the
// per-frame size limits (§3.6) eagerly so a caller notices an oversized
// frame immediately rather than at Finish.
func (w *Writer) WriteFrame(data []byte, codecID uint8, graphID uint16) error {
	if len(w.frames) >= MaxFrameCount {
		return &InvalidFormatError{Reason: "frame count exceeds MaxFrameCount"}
	}
	hdr, compressed, err := w.compressFrame(data, codecID, graphID)
	if err != nil {
		return err
	}
	w.frames = append(w.frames, bufferedFrame{header: hdr, payload: compressed})
	return nil
}

// FrameInput is one caller-supplied frame awaiting compression.
type FrameInput struct {
	Data    []byte
	CodecID uint8
	GraphID uint16
}

// WriteFramesParallel compresses every item concurrently using a worker
// pool (modeled on the teacher's LoadCellsParallel: a shared job channel,
// a fixed number of workers, each result written into the output slot its
// job index was given) and, when every item succeeds, buffers them in input
// order exactly as if WriteFrame had been called for each in turn. Every
// item is compressed even if one fails; the first failing item's error in
// input order is returned and none of the items are buffered.
func (w *Writer) WriteFramesParallel(items []FrameInput) error {
	n := len(items)
	if n == 0 {
		return nil
	}
	if len(w.frames)+n > MaxFrameCount {
		return &InvalidFormatError{Reason: "frame count exceeds MaxFrameCount"}
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	results := make([]bufferedFrame, n)
	errs := make([]error, n)

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for wk := 0; wk < workers; wk++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				hdr, payload, err := w.compressFrame(items[i].Data, items[i].CodecID, items[i].GraphID)
				if err != nil {
					errs[i] = err
					continue
				}
				results[i] = bufferedFrame{header: hdr, payload: payload}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	w.frames = append(w.frames, results...)
	return nil
}

// compressFrame performs WriteFrame's validation and compression without
// mutating w, so it can run concurrently across workers.
func (w *Writer) compressFrame(data []byte, codecID uint8, graphID uint16) (frameHeader, []byte, error) {
	if len(data) > MaxUncompressedFrameBytes {
		return frameHeader{}, nil, &InvalidFormatError{Reason: "uncompressed frame exceeds MaxUncompressedFrameBytes"}
	}
	c, err := w.registry.Get(codecID)
	if err != nil {
		return frameHeader{}, nil, err
	}
	compressed, err := c.Compress(data)
	if err != nil {
		return frameHeader{}, nil, err
	}
	if len(compressed) > MaxCompressedFrameBytes {
		return frameHeader{}, nil, &InvalidFormatError{Reason: "compressed frame exceeds MaxCompressedFrameBytes"}
	}
	hdr := frameHeader{
		CodecID:         codecID,
		CodecVersion:    1,
		GraphID:         graphID,
		UncompressedLen: uint32(len(data)),
		CompressedLen:   uint32(len(compressed)),
		CRC32C:          codec.CRC32C(compressed),
	}
	return hdr, compressed, nil
}

// Finish writes the file header, then all frame headers, then all frame
// payloads, in that order, to sink. After Finish returns successfully the
// container is sealed and complete; an error during Finish leaves sink
// partially written and the container invalid.
func (w *Writer) Finish() error {
	if len(w.frames) > MaxFrameCount {
		return &InvalidFormatError{Reason: "frame count exceeds MaxFrameCount"}
	}

	var fileHdr [fileHeaderSize]byte
	copy(fileHdr[0:8], Magic[:])
	fileHdr[8] = Version
	binary.BigEndian.PutUint32(fileHdr[10:14], uint32(len(w.frames)))
	if _, err := w.sink.Write(fileHdr[:]); err != nil {
		return err
	}

	for _, f := range w.frames {
		var buf [frameHeaderSize]byte
		buf[0] = f.header.CodecID
		buf[1] = f.header.CodecVersion
		binary.BigEndian.PutUint16(buf[2:4], f.header.GraphID)
		binary.BigEndian.PutUint32(buf[4:8], f.header.UncompressedLen)
		binary.BigEndian.PutUint32(buf[8:12], f.header.CompressedLen)
		binary.BigEndian.PutUint32(buf[12:16], f.header.CRC32C)
		if _, err := w.sink.Write(buf[:]); err != nil {
			return err
		}
	}

	for _, f := range w.frames {
		if _, err := w.sink.Write(f.payload); err != nil {
			return err
		}
	}
	return nil
}

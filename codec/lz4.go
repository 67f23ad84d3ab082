package codec

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 is the mandatory codec (id 0), backed by the pure-Go pierrec/lz4
// implementation.
type LZ4 struct{}

// ID returns 0.
func (LZ4) ID() uint8 { return IDLZ4 }

// Compress returns the LZ4 block-framed compression of data.
func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, &CodecError{Codec: IDLZ4, Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &CodecError{Codec: IDLZ4, Err: err}
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress, returning CodecError on malformed input.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &CodecError{Codec: IDLZ4, Err: err}
	}
	return out, nil
}

package codec

import (
	"github.com/klauspost/compress/zstd"
)

// Zstd is the optional codec (id 1), backed by klauspost/compress/zstd.
type Zstd struct{}

// ID returns 1.
func (Zstd) ID() uint8 { return IDZstd }

// Compress returns the Zstd compression of data at the default level.
func (Zstd) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, &CodecError{Codec: IDZstd, Err: err}
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress reverses Compress, returning CodecError on malformed input.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, &CodecError{Codec: IDZstd, Err: err}
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, &CodecError{Codec: IDZstd, Err: err}
	}
	return out, nil
}

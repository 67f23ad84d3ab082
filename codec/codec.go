// Package codec implements the compression codecs and CRC32C checksum used
// by the container formats (§4.E): LZ4 (mandatory), Zstd (optional), and an
// identity pass-through, addressed by a small numeric codec id registry.
package codec

import "fmt"

// Codec ids (§4.E, §7).
const (
	IDLZ4   uint8 = 0
	IDZstd  uint8 = 1
	IDNone  uint8 = 3
)

// Codec compresses and decompresses byte slices losslessly.
type Codec interface {
	ID() uint8
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CodecError wraps a decompression failure on malformed input.
type CodecError struct {
	Codec uint8
	Err   error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec %d: %v", e.Codec, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// UnsupportedCodecError indicates an unknown codec id in a container frame.
type UnsupportedCodecError struct {
	ID uint8
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported codec id %d", e.ID)
}

// Registry maps codec id to implementation.
type Registry struct {
	codecs map[uint8]Codec
}

// NewRegistry returns a Registry pre-populated with LZ4, Zstd, and None.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[uint8]Codec, 3)}
	r.Register(LZ4{})
	r.Register(Zstd{})
	r.Register(None{})
	return r
}

// Register installs (or replaces) the codec under its own ID().
func (r *Registry) Register(c Codec) {
	r.codecs[c.ID()] = c
}

// Get returns the codec registered for id, or UnsupportedCodecError.
func (r *Registry) Get(id uint8) (Codec, error) {
	c, ok := r.codecs[id]
	if !ok {
		return nil, &UnsupportedCodecError{ID: id}
	}
	return c, nil
}

var defaultRegistry = NewRegistry()

// Default returns the package-wide default codec registry.
func Default() *Registry { return defaultRegistry }

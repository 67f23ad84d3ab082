package codec

// None is the identity codec (id 3): compress and decompress are both
// no-ops over a defensive copy.
type None struct{}

// ID returns 3.
func (None) ID() uint8 { return IDNone }

// Compress returns a copy of data unchanged.
func (None) Compress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Decompress returns a copy of data unchanged.
func (None) Decompress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

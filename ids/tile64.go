package ids

import "github.com/octa3d/octa3d/morton"

// tile64 is the shared envelope of Index64 and Hilbert64: a 64-bit value
// of header(2) + scale tier(2) + frame(8) + lod(4) + 48-bit payload, the
// payload being a Morton or Hilbert code of three 16-bit coordinates.
const (
	tileHeaderOffset  = 62
	tileTierOffset    = 60
	tileFrameOffset   = 52
	tileLODOffset     = 48
	tilePayloadOffset = 0

	tileHeaderWidth  = 2
	tileTierWidth    = 2
	tileFrameWidth   = 8
	tileLODWidth     = 4
	tilePayloadWidth = 48
)

func packTile(header, tier, frame, lod uint8, payload uint64) uint64 {
	var v uint64
	v |= uint64(header&0x3) << tileHeaderOffset
	v |= uint64(tier&0x3) << tileTierOffset
	v |= uint64(frame) << tileFrameOffset
	v |= uint64(lod&0xF) << tileLODOffset
	v |= payload & mask64(tilePayloadWidth)
	return v
}

func unpackTileHeader(raw uint64) uint8 { return uint8(raw>>tileHeaderOffset) & 0x3 }
func unpackTileTier(raw uint64) uint8   { return uint8(raw>>tileTierOffset) & 0x3 }
func unpackTileFrame(raw uint64) uint8  { return uint8(raw >> tileFrameOffset) }
func unpackTileLOD(raw uint64) uint8    { return uint8(raw>>tileLODOffset) & 0xF }
func unpackTilePayload(raw uint64) uint64 {
	return raw & mask64(tilePayloadWidth)
}

func validateTileFields(tier, lod uint8, x, y, z int64) error {
	if tier > 3 {
		return &InvalidScaleTierError{Tier: tier}
	}
	if lod > 15 {
		return &InvalidLODError{LOD: lod}
	}
	if err := checkUnsignedRange("x", x, 16); err != nil {
		return err
	}
	if err := checkUnsignedRange("y", y, 16); err != nil {
		return err
	}
	if err := checkUnsignedRange("z", z, 16); err != nil {
		return err
	}
	return nil
}

// Index64 is the Morton space-filling tile key (§3.2): header=0b00.
type Index64 struct {
	raw uint64
}

const index64Header = 0b00

// NewIndex64 constructs an Index64 from its fields, validating bit widths.
func NewIndex64(frame uint8, tier uint8, lod uint8, x, y, z uint16) (Index64, error) {
	if err := validateTileFields(tier, lod, int64(x), int64(y), int64(z)); err != nil {
		return Index64{}, err
	}
	payload := morton.EncodeMorton3(x, y, z)
	return Index64{raw: packTile(index64Header, tier, frame, lod, payload)}, nil
}

// Index64FromRaw reconstructs an Index64 from its raw 64-bit value.
func Index64FromRaw(raw uint64) Index64 { return Index64{raw: raw} }

// Raw returns the raw 64-bit value.
func (id Index64) Raw() uint64 { return id.raw }

// Header returns the 2-bit type tag, 0b00 for a well-formed Index64.
func (id Index64) Header() uint8 { return unpackTileHeader(id.raw) }

// ScaleTier returns the 2-bit scale tier.
func (id Index64) ScaleTier() uint8 { return unpackTileTier(id.raw) }

// FrameID returns the 8-bit frame registry index.
func (id Index64) FrameID() uint8 { return unpackTileFrame(id.raw) }

// LOD returns the 4-bit level of detail.
func (id Index64) LOD() uint8 { return unpackTileLOD(id.raw) }

// DecodeCoords returns the (x, y, z) coordinates packed in the Morton payload.
func (id Index64) DecodeCoords() (x, y, z uint16) {
	return morton.DecodeMorton3(unpackTilePayload(id.raw))
}

// CheckFrame validates FrameID against fc.
func (id Index64) CheckFrame(fc FrameChecker) error {
	if !fc.Has(id.FrameID()) {
		return &InvalidFrameIDError{FrameID: id.FrameID()}
	}
	return nil
}

// Parent returns id's parent: lod-1, coordinates halved per §3.1's
// hierarchy rule applied to the 16-bit unsigned grid. NoParentTileError at lod 0.
func (id Index64) Parent() (Index64, error) {
	if id.LOD() == 0 {
		return Index64{}, &NoParentTileError{}
	}
	x, y, z := id.DecodeCoords()
	return NewIndex64(id.FrameID(), id.ScaleTier(), id.LOD()-1, x/2, y/2, z/2)
}

// Children returns the 8 child Index64 ids at lod+1. NoChildrenTileError at lod 15.
func (id Index64) Children() ([]Index64, error) {
	if id.LOD() >= 15 {
		return nil, &NoChildrenTileError{}
	}
	x, y, z := id.DecodeCoords()
	out := make([]Index64, 0, 8)
	for dx := uint16(0); dx <= 1; dx++ {
		for dy := uint16(0); dy <= 1; dy++ {
			for dz := uint16(0); dz <= 1; dz++ {
				child, err := NewIndex64(id.FrameID(), id.ScaleTier(), id.LOD()+1, 2*x+dx, 2*y+dy, 2*z+dz)
				if err != nil {
					return nil, err
				}
				out = append(out, child)
			}
		}
	}
	return out, nil
}

// ToBech32m encodes id with HRP "i3d1".
func (id Index64) ToBech32m() (string, error) {
	return encodeBech32m(hrpIndex, 0, id.raw, 64)
}

// Index64FromBech32m decodes a Bech32m string with HRP "i3d1".
func Index64FromBech32m(s string) (Index64, error) {
	_, lo, err := decodeBech32m(s, hrpIndex, 64)
	if err != nil {
		return Index64{}, err
	}
	return Index64FromRaw(lo), nil
}

// ToHilbert64 converts id to the Hilbert64 sharing the same frame, tier,
// lod, and (x, y, z), per the I5 cross-codec invariant.
func (id Index64) ToHilbert64() (Hilbert64, error) {
	x, y, z := id.DecodeCoords()
	return NewHilbert64(id.FrameID(), id.ScaleTier(), id.LOD(), x, y, z)
}

// Hilbert64 is the optional 48-bit 3-D Hilbert tile key (§3.2): header=0b11.
type Hilbert64 struct {
	raw uint64
}

const hilbert64Header = 0b11

// NewHilbert64 constructs a Hilbert64 from its fields.
func NewHilbert64(frame uint8, tier uint8, lod uint8, x, y, z uint16) (Hilbert64, error) {
	if err := validateTileFields(tier, lod, int64(x), int64(y), int64(z)); err != nil {
		return Hilbert64{}, err
	}
	payload := morton.EncodeHilbert3(x, y, z)
	return Hilbert64{raw: packTile(hilbert64Header, tier, frame, lod, payload)}, nil
}

// Hilbert64FromRaw reconstructs a Hilbert64 from its raw 64-bit value.
func Hilbert64FromRaw(raw uint64) Hilbert64 { return Hilbert64{raw: raw} }

// Raw returns the raw 64-bit value.
func (id Hilbert64) Raw() uint64 { return id.raw }

// Header returns the 2-bit type tag, 0b11 for a well-formed Hilbert64.
func (id Hilbert64) Header() uint8 { return unpackTileHeader(id.raw) }

// ScaleTier returns the 2-bit scale tier.
func (id Hilbert64) ScaleTier() uint8 { return unpackTileTier(id.raw) }

// FrameID returns the 8-bit frame registry index.
func (id Hilbert64) FrameID() uint8 { return unpackTileFrame(id.raw) }

// LOD returns the 4-bit level of detail.
func (id Hilbert64) LOD() uint8 { return unpackTileLOD(id.raw) }

// DecodeCoords returns the (x, y, z) coordinates packed in the Hilbert payload.
func (id Hilbert64) DecodeCoords() (x, y, z uint16) {
	return morton.DecodeHilbert3(unpackTilePayload(id.raw))
}

// CheckFrame validates FrameID against fc.
func (id Hilbert64) CheckFrame(fc FrameChecker) error {
	if !fc.Has(id.FrameID()) {
		return &InvalidFrameIDError{FrameID: id.FrameID()}
	}
	return nil
}

// ToBech32m encodes id with Index64's HRP "i3d1"; Hilbert64 has no HRP of
// its own. The two kinds differ only in the header bits of the payload,
// and neither Index64FromBech32m nor Hilbert64FromBech32m checks them.
func (id Hilbert64) ToBech32m() (string, error) {
	return encodeBech32m(hrpIndex, 0, id.raw, 64)
}

// Hilbert64FromBech32m decodes a Bech32m string back into a Hilbert64.
func Hilbert64FromBech32m(s string) (Hilbert64, error) {
	_, lo, err := decodeBech32m(s, hrpIndex, 64)
	if err != nil {
		return Hilbert64{}, err
	}
	return Hilbert64FromRaw(lo), nil
}

// ToIndex64 converts id to the Index64 sharing the same frame, tier, lod,
// and (x, y, z), per the I5 cross-codec invariant.
func (id Hilbert64) ToIndex64() (Index64, error) {
	x, y, z := id.DecodeCoords()
	return NewIndex64(id.FrameID(), id.ScaleTier(), id.LOD(), x, y, z)
}

// NoParentTileError indicates a request for the parent of a tile id
// already at LOD 0.
type NoParentTileError struct{}

func (e *NoParentTileError) Error() string { return "no parent: already at LOD 0" }

// NoChildrenTileError indicates a request for children of a tile id
// already at the maximum LOD.
type NoChildrenTileError struct{}

func (e *NoChildrenTileError) Error() string { return "no children: already at maximum LOD" }

package ids

import "github.com/octa3d/octa3d/lattice"

const galacticHeader = 0b10

// Galactic128 is the global, attribute-rich 128-bit identifier (§3.2).
// Bit layout (MSB to LSB): header(2)=0b10, frame(8), scale mantissa(6),
// scale tier(2), lod(4), attr-usr(16), x(30), y(30), z(30).
type Galactic128 struct {
	raw bits128
}

const (
	galHeaderOffset  = 126
	galFrameOffset   = 118
	galMantOffset    = 112
	galTierOffset    = 110
	galLODOffset     = 106
	galAttrOffset    = 90
	galXOffset       = 60
	galYOffset       = 30
	galZOffset       = 0
	galCoordWidth    = 30
	galFrameWidth    = 8
	galMantWidth     = 6
	galTierWidth     = 2
	galLODWidth      = 4
	galAttrWidth     = 16
	galHeaderWidth   = 2
)

// NewGalactic128 validates the supplied fields against §3.2's bit widths
// (and, when tiedToLattice is true, BCC parity) and constructs a Galactic128.
func NewGalactic128(frame uint8, scaleMantissa uint8, scaleTier uint8, lod uint8, attrUsr uint16, x, y, z int64, tiedToLattice bool) (Galactic128, error) {
	if err := checkUnsignedRange("scale_mantissa", int64(scaleMantissa), galMantWidth); err != nil {
		return Galactic128{}, err
	}
	if scaleTier > 3 {
		return Galactic128{}, &InvalidScaleTierError{Tier: scaleTier}
	}
	if lod > 15 {
		return Galactic128{}, &InvalidLODError{LOD: lod}
	}
	if err := checkSignedRange("x", x, galCoordWidth); err != nil {
		return Galactic128{}, err
	}
	if err := checkSignedRange("y", y, galCoordWidth); err != nil {
		return Galactic128{}, err
	}
	if err := checkSignedRange("z", z, galCoordWidth); err != nil {
		return Galactic128{}, err
	}
	if tiedToLattice {
		if _, err := lattice.ParityOf(x, y, z); err != nil {
			return Galactic128{}, &InvalidParityError{X: x, Y: y, Z: z}
		}
	}

	var b bits128
	b = b.setBits(galHeaderOffset, galHeaderWidth, galacticHeader)
	b = b.setBits(galFrameOffset, galFrameWidth, uint64(frame))
	b = b.setBits(galMantOffset, galMantWidth, uint64(scaleMantissa))
	b = b.setBits(galTierOffset, galTierWidth, uint64(scaleTier))
	b = b.setBits(galLODOffset, galLODWidth, uint64(lod))
	b = b.setBits(galAttrOffset, galAttrWidth, uint64(attrUsr))
	b = b.setBits(galXOffset, galCoordWidth, truncateSigned(x, galCoordWidth))
	b = b.setBits(galYOffset, galCoordWidth, truncateSigned(y, galCoordWidth))
	b = b.setBits(galZOffset, galCoordWidth, truncateSigned(z, galCoordWidth))

	return Galactic128{raw: b}, nil
}

// GalacticFromRaw reconstructs a Galactic128 from its raw 128-bit value
// (hi, lo), without re-validating the header tag.
func GalacticFromRaw(hi, lo uint64) Galactic128 {
	return Galactic128{raw: bits128{Hi: hi, Lo: lo}}
}

// Raw returns the raw 128-bit value as (hi, lo).
func (id Galactic128) Raw() (hi, lo uint64) {
	return id.raw.Hi, id.raw.Lo
}

// Header returns the 2-bit type tag, always 0b10 for a well-formed value.
func (id Galactic128) Header() uint8 { return uint8(id.raw.getBits(galHeaderOffset, galHeaderWidth)) }

// FrameID returns the 8-bit frame registry index.
func (id Galactic128) FrameID() uint8 { return uint8(id.raw.getBits(galFrameOffset, galFrameWidth)) }

// ScaleMantissa returns the 6-bit scale mantissa.
func (id Galactic128) ScaleMantissa() uint8 { return uint8(id.raw.getBits(galMantOffset, galMantWidth)) }

// ScaleTier returns the 2-bit scale tier.
func (id Galactic128) ScaleTier() uint8 { return uint8(id.raw.getBits(galTierOffset, galTierWidth)) }

// LOD returns the 4-bit level of detail.
func (id Galactic128) LOD() uint8 { return uint8(id.raw.getBits(galLODOffset, galLODWidth)) }

// AttrUsr returns the 16-bit user-defined tag.
func (id Galactic128) AttrUsr() uint16 { return uint16(id.raw.getBits(galAttrOffset, galAttrWidth)) }

// X returns the signed 30-bit X coordinate.
func (id Galactic128) X() int64 { return signExtend(id.raw.getBits(galXOffset, galCoordWidth), galCoordWidth) }

// Y returns the signed 30-bit Y coordinate.
func (id Galactic128) Y() int64 { return signExtend(id.raw.getBits(galYOffset, galCoordWidth), galCoordWidth) }

// Z returns the signed 30-bit Z coordinate.
func (id Galactic128) Z() int64 { return signExtend(id.raw.getBits(galZOffset, galCoordWidth), galCoordWidth) }

// CheckFrame validates FrameID against fc, returning InvalidFrameIDError
// when the frame is not registered.
func (id Galactic128) CheckFrame(fc FrameChecker) error {
	if !fc.Has(id.FrameID()) {
		return &InvalidFrameIDError{FrameID: id.FrameID()}
	}
	return nil
}

// Parent returns the Galactic128 whose x/y/z are the BCC parent of id's,
// with lod decremented by one and the rest of the envelope preserved.
// Returns NoParentError when id is already at LOD 0.
func (id Galactic128) Parent() (Galactic128, error) {
	if id.LOD() == 0 {
		return Galactic128{}, &lattice.NoParentError{}
	}
	p := lattice.Parent(lattice.Point{X: id.X(), Y: id.Y(), Z: id.Z()})
	return NewGalactic128(id.FrameID(), id.ScaleMantissa(), id.ScaleTier(), id.LOD()-1, id.AttrUsr(), p.X, p.Y, p.Z, false)
}

// Children returns the Galactic128 ids for id's BCC-valid children, lod
// incremented by one, rest of the envelope preserved. Returns
// NoChildrenError at the maximum LOD (15).
func (id Galactic128) Children() ([]Galactic128, error) {
	if id.LOD() >= 15 {
		return nil, &lattice.NoChildrenError{}
	}
	pts := lattice.ValidChildren(lattice.Point{X: id.X(), Y: id.Y(), Z: id.Z()})
	out := make([]Galactic128, 0, len(pts))
	for _, p := range pts {
		child, err := NewGalactic128(id.FrameID(), id.ScaleMantissa(), id.ScaleTier(), id.LOD()+1, id.AttrUsr(), p.X, p.Y, p.Z, true)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// ToBech32m encodes id with HRP "g3d1".
func (id Galactic128) ToBech32m() (string, error) {
	return encodeBech32m(hrpGalactic, id.raw.Hi, id.raw.Lo, 128)
}

// GalacticFromBech32m decodes a Bech32m string with HRP "g3d1" into a
// Galactic128.
func GalacticFromBech32m(s string) (Galactic128, error) {
	hi, lo, err := decodeBech32m(s, hrpGalactic, 128)
	if err != nil {
		return Galactic128{}, err
	}
	return GalacticFromRaw(hi, lo), nil
}

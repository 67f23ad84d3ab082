package ids

import "github.com/octa3d/octa3d/lattice"

const (
	routeHeaderOffset = 62
	routeTierOffset   = 60
	routeXOffset      = 40
	routeYOffset      = 20
	routeZOffset      = 0
	routeCoordWidth   = 20
	route64Header     = 0b01
)

// Route64 is the local, signed, fast-math identifier (§3.2): header=0b01,
// tier(2), then packed signed X/Y/Z at 20 bits each (two's complement).
type Route64 struct {
	raw uint64
}

// NewRoute64 constructs a Route64, validating coordinate range and (when
// tiedToLattice is true) BCC parity.
func NewRoute64(tier uint8, x, y, z int64, tiedToLattice bool) (Route64, error) {
	if tier > 3 {
		return Route64{}, &InvalidScaleTierError{Tier: tier}
	}
	if err := checkSignedRange("x", x, routeCoordWidth); err != nil {
		return Route64{}, err
	}
	if err := checkSignedRange("y", y, routeCoordWidth); err != nil {
		return Route64{}, err
	}
	if err := checkSignedRange("z", z, routeCoordWidth); err != nil {
		return Route64{}, err
	}
	if tiedToLattice {
		if _, err := lattice.ParityOf(x, y, z); err != nil {
			return Route64{}, &InvalidParityError{X: x, Y: y, Z: z}
		}
	}

	var v uint64
	v |= uint64(route64Header) << routeHeaderOffset
	v |= uint64(tier&0x3) << routeTierOffset
	v |= truncateSigned(x, routeCoordWidth) << routeXOffset
	v |= truncateSigned(y, routeCoordWidth) << routeYOffset
	v |= truncateSigned(z, routeCoordWidth) << routeZOffset
	return Route64{raw: v}, nil
}

// Route64FromRaw reconstructs a Route64 from its raw 64-bit value.
func Route64FromRaw(raw uint64) Route64 { return Route64{raw: raw} }

// Raw returns the raw 64-bit value.
func (id Route64) Raw() uint64 { return id.raw }

// Header returns the 2-bit type tag, 0b01 for a well-formed Route64.
func (id Route64) Header() uint8 { return uint8(id.raw>>routeHeaderOffset) & 0x3 }

// ScaleTier returns the 2-bit scale tier.
func (id Route64) ScaleTier() uint8 { return uint8(id.raw>>routeTierOffset) & 0x3 }

// X returns the signed 20-bit X coordinate.
func (id Route64) X() int64 { return signExtend(id.raw>>routeXOffset, routeCoordWidth) }

// Y returns the signed 20-bit Y coordinate.
func (id Route64) Y() int64 { return signExtend(id.raw>>routeYOffset, routeCoordWidth) }

// Z returns the signed 20-bit Z coordinate.
func (id Route64) Z() int64 { return signExtend(id.raw>>routeZOffset, routeCoordWidth) }

// ToBech32m encodes id with HRP "r3d1".
func (id Route64) ToBech32m() (string, error) {
	return encodeBech32m(hrpRoute, 0, id.raw, 64)
}

// Route64FromBech32m decodes a Bech32m string with HRP "r3d1".
func Route64FromBech32m(s string) (Route64, error) {
	_, lo, err := decodeBech32m(s, hrpRoute, 64)
	if err != nil {
		return Route64{}, err
	}
	return Route64FromRaw(lo), nil
}

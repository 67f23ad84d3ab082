package ids

import (
	"encoding/binary"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

// HRPs for the three primary identifier types (§I4, §6).
const (
	hrpGalactic = "g3d1"
	hrpIndex    = "i3d1"
	hrpRoute    = "r3d1"
)

// encodeBech32m encodes a 64- or 128-bit raw value as Bech32m text with the
// given human-readable part, using the 8-bit-to-5-bit group conversion
// standard to bech32 (the same technique used for segwit address encoding).
func encodeBech32m(hrp string, hi, lo uint64, bitWidth int) (string, error) {
	raw := make([]byte, bitWidth/8)
	if bitWidth == 128 {
		binary.BigEndian.PutUint64(raw[0:8], hi)
		binary.BigEndian.PutUint64(raw[8:16], lo)
	} else {
		binary.BigEndian.PutUint64(raw, lo)
	}

	data, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", &InvalidBech32Error{Reason: err.Error()}
	}
	s, err := bech32.EncodeM(hrp, data)
	if err != nil {
		return "", &InvalidBech32Error{Reason: err.Error()}
	}
	return s, nil
}

// decodeBech32m decodes a Bech32m string, verifying it is bech32m (not
// bech32) and that the HRP matches wantHRP case-insensitively, returning
// the raw value as (hi, lo) for bitWidth 128, or (0, lo) for bitWidth 64.
func decodeBech32m(s, wantHRP string, bitWidth int) (hi, lo uint64, err error) {
	gotHRP, data, ver, derr := bech32.DecodeGeneric(s)
	if derr != nil {
		return 0, 0, &InvalidBech32Error{Reason: derr.Error()}
	}
	if ver != bech32.VersionM {
		return 0, 0, &InvalidBech32Error{Reason: "checksum is bech32, not bech32m"}
	}
	if !strings.EqualFold(gotHRP, wantHRP) {
		return 0, 0, &InvalidBech32Error{Reason: "hrp mismatch: got " + gotHRP + ", want " + wantHRP}
	}

	raw, cerr := bech32.ConvertBits(data, 5, 8, false)
	if cerr != nil {
		return 0, 0, &InvalidBech32Error{Reason: cerr.Error()}
	}
	want := bitWidth / 8
	if len(raw) != want {
		return 0, 0, &InvalidBech32Error{Reason: "unexpected payload length"}
	}

	if bitWidth == 128 {
		hi = binary.BigEndian.Uint64(raw[0:8])
		lo = binary.BigEndian.Uint64(raw[8:16])
		return hi, lo, nil
	}
	lo = binary.BigEndian.Uint64(raw)
	return 0, lo, nil
}

package ids

import "testing"

type fakeFrameChecker map[uint8]bool

func (f fakeFrameChecker) Has(id uint8) bool { return f[id] }

func TestIndex64Scenario(t *testing.T) {
	// S1
	id, err := NewIndex64(0, 0, 5, 100, 200, 300)
	if err != nil {
		t.Fatalf("NewIndex64: %v", err)
	}
	x, y, z := id.DecodeCoords()
	if x != 100 || y != 200 || z != 300 {
		t.Fatalf("DecodeCoords = (%d,%d,%d), want (100,200,300)", x, y, z)
	}
	s, err := id.ToBech32m()
	if err != nil {
		t.Fatalf("ToBech32m: %v", err)
	}
	if s[:4] != "i3d1" {
		t.Fatalf("expected bech32m to begin with i3d1, got %q", s)
	}
}

func TestGalactic128RoundTrip(t *testing.T) {
	// P1: accessors return exactly the constructed fields.
	id, err := NewGalactic128(42, 7, 2, 9, 0xBEEF, 100, -200, 300, false)
	if err != nil {
		t.Fatalf("NewGalactic128: %v", err)
	}
	if id.FrameID() != 42 || id.ScaleMantissa() != 7 || id.ScaleTier() != 2 ||
		id.LOD() != 9 || id.AttrUsr() != 0xBEEF ||
		id.X() != 100 || id.Y() != -200 || id.Z() != 300 {
		t.Fatalf("accessors did not round-trip constructed fields: %+v", id)
	}
	if id.Header() != galacticHeader {
		t.Fatalf("header = %b, want %b", id.Header(), galacticHeader)
	}
}

func TestGalactic128Bech32mRoundTrip(t *testing.T) {
	id, err := NewGalactic128(1, 2, 3, 4, 5, -10, 11, -12, false)
	if err != nil {
		t.Fatalf("NewGalactic128: %v", err)
	}
	s, err := id.ToBech32m()
	if err != nil {
		t.Fatalf("ToBech32m: %v", err)
	}
	got, err := GalacticFromBech32m(s)
	if err != nil {
		t.Fatalf("GalacticFromBech32m: %v", err)
	}
	if got.X() != id.X() || got.Y() != id.Y() || got.Z() != id.Z() || got.FrameID() != id.FrameID() {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, id)
	}
}

func TestBech32mWrongHRP(t *testing.T) {
	idx, _ := NewIndex64(0, 0, 0, 1, 2, 3)
	s, _ := idx.ToBech32m()
	if _, err := Route64FromBech32m(s); err == nil {
		t.Fatal("expected InvalidBech32 when decoding an i3d1 string as r3d1")
	}
}

func TestRoute64RangeValidation(t *testing.T) {
	if _, err := NewRoute64(0, 1<<20, 0, 0, false); err == nil {
		t.Fatal("expected OutOfRange for x = 2^20")
	}
	if _, err := NewRoute64(0, -(1 << 19) - 1, 0, 0, false); err == nil {
		t.Fatal("expected OutOfRange for x below -2^19")
	}
}

func TestRoute64Parity(t *testing.T) {
	if _, err := NewRoute64(0, 1, 0, 0, true); err == nil {
		t.Fatal("expected InvalidParity for mixed-parity coordinates")
	}
	if _, err := NewRoute64(0, 2, 2, 2, true); err != nil {
		t.Fatalf("all-even coordinates should be valid BCC: %v", err)
	}
}

func TestIndex64HilbertConversion(t *testing.T) {
	// I5: Index64 and Hilbert64 with identical frame/tier/lod/coord decode
	// to the same (x,y,z).
	idx, err := NewIndex64(5, 1, 3, 111, 222, 333)
	if err != nil {
		t.Fatalf("NewIndex64: %v", err)
	}
	hil, err := idx.ToHilbert64()
	if err != nil {
		t.Fatalf("ToHilbert64: %v", err)
	}
	x, y, z := hil.DecodeCoords()
	if x != 111 || y != 222 || z != 333 {
		t.Fatalf("hilbert decode = (%d,%d,%d), want (111,222,333)", x, y, z)
	}
	if hil.FrameID() != 5 || hil.ScaleTier() != 1 || hil.LOD() != 3 {
		t.Fatalf("hilbert envelope mismatch: %+v", hil)
	}

	back, err := hil.ToIndex64()
	if err != nil {
		t.Fatalf("ToIndex64: %v", err)
	}
	if back.Raw() != idx.Raw() {
		t.Fatalf("round trip through hilbert changed raw value: %x != %x", back.Raw(), idx.Raw())
	}
}

func TestIndex64ParentChild(t *testing.T) {
	id, err := NewIndex64(0, 0, 5, 100, 100, 100)
	if err != nil {
		t.Fatalf("NewIndex64: %v", err)
	}
	children, err := id.Children()
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(children) != 8 {
		t.Fatalf("expected 8 children, got %d", len(children))
	}
	for _, c := range children {
		parent, err := c.Parent()
		if err != nil {
			t.Fatalf("Parent: %v", err)
		}
		if parent.Raw() != id.Raw() {
			t.Fatalf("Parent(child) = %x, want %x", parent.Raw(), id.Raw())
		}
	}
}

func TestCheckFrame(t *testing.T) {
	id, _ := NewIndex64(9, 0, 0, 1, 2, 3)
	if err := id.CheckFrame(fakeFrameChecker{9: true}); err != nil {
		t.Fatalf("CheckFrame should succeed for registered frame: %v", err)
	}
	if err := id.CheckFrame(fakeFrameChecker{}); err == nil {
		t.Fatal("CheckFrame should fail for unregistered frame")
	}
}

package lattice

import "testing"

func TestParityOf(t *testing.T) {
	if p, err := ParityOf(0, 0, 0); err != nil || p != Even {
		t.Fatalf("ParityOf(0,0,0) = %v, %v; want Even, nil", p, err)
	}
	if p, err := ParityOf(1, 1, 1); err != nil || p != Odd {
		t.Fatalf("ParityOf(1,1,1) = %v, %v; want Odd, nil", p, err)
	}
	if _, err := ParityOf(1, 0, 0); err == nil {
		t.Fatal("ParityOf(1,0,0) should fail with InvalidParity")
	}
	if _, err := ParityOf(-1, -1, -1); err != nil {
		t.Fatalf("ParityOf(-1,-1,-1) should be valid odd parity: %v", err)
	}
}

func TestNeighbors14(t *testing.T) {
	n := Neighbors14(Point{0, 0, 0})
	if len(n) != 14 {
		t.Fatalf("expected 14 neighbors, got %d", len(n))
	}

	var foundDiag, foundAxial bool
	diagCount, axialCount := 0, 0
	for i, p := range n {
		if p == (Point{1, 1, 1}) {
			foundDiag = true
		}
		if p == (Point{2, 0, 0}) {
			foundAxial = true
		}
		if IsDiagonalOffset(i) {
			diagCount++
		} else {
			axialCount++
		}
	}
	if !foundDiag || !foundAxial {
		t.Fatalf("neighbors_14((0,0,0)) must contain (1,1,1) and (2,0,0); got %v", n)
	}
	if diagCount != 8 || axialCount != 6 {
		t.Fatalf("expected 8 diagonal + 6 axial offsets, got %d + %d", diagCount, axialCount)
	}
}

func TestParentChildRoundTrip(t *testing.T) {
	p := Point{6, -4, 10}
	for _, c := range ValidChildren(p) {
		if got := Parent(c); got != p {
			t.Errorf("Parent(child %v) = %v, want %v", c, got, p)
		}
	}
}

func TestValidChildrenCount(t *testing.T) {
	p := Point{3, 3, 3}
	if got := len(ValidChildren(p)); got != 2 {
		t.Fatalf("expected 2 parity-valid children, got %d", got)
	}
}

func TestSnapToNearestBCC(t *testing.T) {
	got := SnapToNearestBCC(0, 1, 0)
	want := Point{0, 0, 0}
	if got != want {
		t.Fatalf("SnapToNearestBCC(0,1,0) = %v, want %v", got, want)
	}
}

func TestSnapToNearestBCCErrorBound(t *testing.T) {
	// No point is farther than the lattice's squared covering radius, 5/4,
	// from its nearest all-even or all-odd point.
	for x := 0.0; x < 1.0; x += 0.1 {
		for y := 0.0; y < 1.0; y += 0.1 {
			for z := 0.0; z < 1.0; z += 0.1 {
				p := SnapToNearestBCC(x, y, z)
				d := sqDist(x, y, z, p)
				if d > 1.25+1e-9 {
					t.Fatalf("SnapToNearestBCC(%v,%v,%v) = %v, squared dist %f exceeds 1.25", x, y, z, p, d)
				}
			}
		}
	}
}

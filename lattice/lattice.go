// Package lattice implements the Body-Centered Cubic (BCC) lattice that
// underlies every other package in octa3d: parity checking, the 14-neighbor
// offset set, parent/child hierarchy, and nearest-point snapping.
package lattice

import "math"

// Parity is the shared parity of a BCC lattice point's coordinates.
type Parity int

const (
	// Even means x, y, and z are all even.
	Even Parity = iota
	// Odd means x, y, and z are all odd.
	Odd
)

// Point is a BCC lattice point: three signed integer coordinates sharing
// identical parity. Mixed parity is not a valid Point; use New to construct
// one safely.
type Point struct {
	X, Y, Z int64
}

// OFFSETS is the fixed 14-neighbor offset set, in the order specified: the
// 8 diagonal (parity-flipping) offsets first, then the 6 axial
// (parity-preserving) offsets.
var OFFSETS = [14]Point{
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
	{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	{2, 0, 0}, {-2, 0, 0}, {0, 2, 0}, {0, -2, 0}, {0, 0, 2}, {0, 0, -2},
}

// ParityOf reports the shared parity of x, y, z, or InvalidParity when the
// three coordinates do not all share the same parity.
func ParityOf(x, y, z int64) (Parity, error) {
	px, py, pz := mod2(x), mod2(y), mod2(z)
	if px != py || py != pz {
		return 0, &InvalidParityError{X: x, Y: y, Z: z}
	}
	if px == 0 {
		return Even, nil
	}
	return Odd, nil
}

func mod2(v int64) int64 {
	r := v % 2
	if r < 0 {
		r += 2
	}
	return r
}

// New validates x, y, z share a parity and returns the corresponding Point.
func New(x, y, z int64) (Point, error) {
	if _, err := ParityOf(x, y, z); err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y, Z: z}, nil
}

// Neighbors14 returns the 14 neighbors of p in the fixed order of OFFSETS:
// the 8 diagonal neighbors (which flip parity) followed by the 6 axial
// neighbors (which preserve parity).
func Neighbors14(p Point) [14]Point {
	var out [14]Point
	for i, o := range OFFSETS {
		out[i] = Point{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
	}
	return out
}

// IsDiagonalOffset reports whether offset index i (into OFFSETS /
// Neighbors14's result) is one of the 8 parity-flipping diagonal offsets,
// as opposed to one of the 6 parity-preserving axial offsets.
func IsDiagonalOffset(i int) bool {
	return i < 8
}

// Parent returns the parent of p under floor-division hierarchy:
// (floor(x/2), floor(y/2), floor(z/2)).
func Parent(p Point) Point {
	return Point{floorDiv2(p.X), floorDiv2(p.Y), floorDiv2(p.Z)}
}

func floorDiv2(v int64) int64 {
	if v >= 0 {
		return v / 2
	}
	return -((-v + 1) / 2)
}

// Children returns all 8 octants obtained by doubling p and adding {0,1}
// per axis. Not every octant shares a parity at the finer level; callers
// that need only BCC-valid children should filter with ParityOf.
func Children(p Point) [8]Point {
	var out [8]Point
	i := 0
	for dx := int64(0); dx <= 1; dx++ {
		for dy := int64(0); dy <= 1; dy++ {
			for dz := int64(0); dz <= 1; dz++ {
				out[i] = Point{2*p.X + dx, 2*p.Y + dy, 2*p.Z + dz}
				i++
			}
		}
	}
	return out
}

// ValidChildren returns only the children of p sharing a single parity,
// i.e. the BCC-valid subset of Children(p). Exactly 2 of the 8 octants
// qualify: the all-even (2x, 2y, 2z) and the all-odd (2x+1, 2y+1, 2z+1).
func ValidChildren(p Point) []Point {
	all := Children(p)
	out := make([]Point, 0, 4)
	for _, c := range all {
		if _, err := ParityOf(c.X, c.Y, c.Z); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// SnapToNearestBCC finds the BCC lattice point nearest x, y, z in squared
// Euclidean distance. It enumerates the eight all-even and eight all-odd
// candidates formed by rounding each axis up or down to the nearest
// same-parity integer, and returns the candidate of minimum squared
// distance; ties are broken in favor of the even candidate.
//
// Contract: the returned point is the nearest BCC point, so its squared
// distance to (x, y, z) is at most 5/4, the squared covering radius of the
// all-even/all-odd lattice. The bound is reached, for example, at
// (1, 0.5, 0), which is 5/4 from (0,0,0), (2,0,0) and (1,1,1) alike.
func SnapToNearestBCC(x, y, z float64) Point {
	var best Point
	bestDist := math.Inf(1)
	haveBest := false

	// Even candidates first so that on an exact tie the even candidate,
	// having been seen first, is kept (strict "<" below never displaces it).
	for _, cand := range candidates(x, y, z, true) {
		d := sqDist(x, y, z, cand)
		if !haveBest || d < bestDist {
			bestDist, best, haveBest = d, cand, true
		}
	}
	for _, cand := range candidates(x, y, z, false) {
		d := sqDist(x, y, z, cand)
		if d < bestDist {
			bestDist, best = d, cand
		}
	}
	return best
}

// candidates returns the 8 same-parity candidates (even=true for all-even,
// false for all-odd) formed by rounding each axis independently up or down
// to the nearest integer of the requested parity.
func candidates(x, y, z float64, even bool) [8]Point {
	axis := func(v float64) (lo, hi int64) {
		fl := math.Floor(v)
		lo = int64(fl)
		if mod2(lo) != parityTarget(even) {
			lo--
		}
		hi = lo + 2
		return
	}
	xlo, xhi := axis(x)
	ylo, yhi := axis(y)
	zlo, zhi := axis(z)

	var out [8]Point
	i := 0
	for _, xv := range [2]int64{xlo, xhi} {
		for _, yv := range [2]int64{ylo, yhi} {
			for _, zv := range [2]int64{zlo, zhi} {
				out[i] = Point{xv, yv, zv}
				i++
			}
		}
	}
	return out
}

func parityTarget(even bool) int64 {
	if even {
		return 0
	}
	return 1
}

func sqDist(x, y, z float64, p Point) float64 {
	dx := x - float64(p.X)
	dy := y - float64(p.Y)
	dz := z - float64(p.Z)
	return dx*dx + dy*dy + dz*dz
}

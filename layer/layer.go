// Package layer implements the three sparse voxel layer kinds (TSDF, ESDF,
// occupancy) that sit atop the BCC lattice, plus the mesh extractor and the
// LayeredMap that owns up to one of each per map (§3.4, §4.H-§4.L).
package layer

import (
	"fmt"
	"math"

	"github.com/octa3d/octa3d/ids"
	"github.com/octa3d/octa3d/lattice"
)

// InvalidFormatError is returned by LayeredMap when an operation targets a
// layer kind that has not been added to the map. It is the layer package's
// instance of the InvalidFormat error kind (§7): malformed or missing
// structure, here a missing layer rather than a malformed container.
type InvalidFormatError struct {
	Kind string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s layer not initialized", e.Kind)
}

// toPoint converts idx's Morton-decoded coordinates to a lattice.Point.
// Index64 coordinates are unsigned 16-bit; they are always representable as
// int64.
func toPoint(idx ids.Index64) lattice.Point {
	x, y, z := idx.DecodeCoords()
	return lattice.Point{X: int64(x), Y: int64(y), Z: int64(z)}
}

// fromPoint rebuilds an Index64 sharing idx's frame/tier/lod envelope, at
// lattice point p. It reports ok=false when p falls outside the uint16
// coordinate range representable by that envelope (e.g. a neighbor offset
// that walks off the edge of the addressable tile).
func fromPoint(idx ids.Index64, p lattice.Point) (ids.Index64, bool) {
	if p.X < 0 || p.Y < 0 || p.Z < 0 || p.X > math.MaxUint16 || p.Y > math.MaxUint16 || p.Z > math.MaxUint16 {
		return ids.Index64{}, false
	}
	next, err := ids.NewIndex64(idx.FrameID(), idx.ScaleTier(), idx.LOD(), uint16(p.X), uint16(p.Y), uint16(p.Z))
	if err != nil {
		return ids.Index64{}, false
	}
	return next, true
}

// neighbors14 returns idx's 14 BCC neighbors that remain representable
// within idx's envelope.
func neighbors14(idx ids.Index64) []ids.Index64 {
	out := make([]ids.Index64, 0, 14)
	for _, e := range neighbors14Edges(idx) {
		out = append(out, e.Idx)
	}
	return out
}

// neighborEdge pairs a BCC neighbor with whether it sits across a diagonal
// (parity-flipping) or axial (parity-preserving) offset, which determines
// its edge length in lattice units for ESDF propagation (§4.I): √3 for
// diagonal, 2 for axial.
type neighborEdge struct {
	Idx      ids.Index64
	Diagonal bool
}

func (e neighborEdge) edgeLen() float64 {
	if e.Diagonal {
		return math.Sqrt(3)
	}
	return 2
}

func neighbors14Edges(idx ids.Index64) []neighborEdge {
	p := toPoint(idx)
	out := make([]neighborEdge, 0, 14)
	for i, o := range lattice.OFFSETS {
		np := lattice.Point{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
		if n, ok := fromPoint(idx, np); ok {
			out = append(out, neighborEdge{Idx: n, Diagonal: lattice.IsDiagonalOffset(i)})
		}
	}
	return out
}

// worldPos returns idx's world-space position given voxel_size.
func worldPos(idx ids.Index64, voxelSize float64) [3]float64 {
	x, y, z := idx.DecodeCoords()
	return [3]float64{float64(x) * voxelSize, float64(y) * voxelSize, float64(z) * voxelSize}
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func add(a, b [3]float64) [3]float64 { return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func scale(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}
func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func norm(a [3]float64) float64   { return math.Sqrt(dot(a, a)) }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// canonicalPair orders (a, b) so raw(a) < raw(b), the canonical ordering
// used for zero-crossing edges and mesh vertex keys (§4.H, §4.K).
func canonicalPair(a, b ids.Index64) (ids.Index64, ids.Index64) {
	if a.Raw() < b.Raw() {
		return a, b
	}
	return b, a
}

// estimateGradient computes the unnormalised mean of Δd·Δpos over idx's
// 14-neighbor stencil, where distanceAt supplies a voxel's distance value
// (ok=false when unobserved). It returns ok=false when the resulting
// magnitude is below 1e-6, per §4.I. The same stencil is reused by the mesh
// extractor's normal estimation (§4.K).
func estimateGradient(idx ids.Index64, voxelSize float64, distanceAt func(ids.Index64) (float64, bool)) ([3]float64, bool) {
	d0, ok := distanceAt(idx)
	if !ok {
		return [3]float64{}, false
	}
	pos0 := worldPos(idx, voxelSize)

	var grad [3]float64
	count := 0
	for _, n := range neighbors14(idx) {
		dn, ok := distanceAt(n)
		if !ok {
			continue
		}
		deltaD := dn - d0
		deltaPos := sub(worldPos(n, voxelSize), pos0)
		grad = add(grad, scale(deltaPos, deltaD))
		count++
	}
	if count > 0 {
		grad = scale(grad, 1/float64(count))
	}
	if norm(grad) < 1e-6 {
		return [3]float64{}, false
	}
	return grad, true
}

// Package spatialindex provides a coarse R-tree accelerator over the
// sparse chunks of a layered map, for viewport/region queries that should
// not have to scan every voxel (§4.M). It never changes layer semantics;
// it only answers "which chunks intersect this box" faster than a linear
// scan.
package spatialindex

import (
	"github.com/dhconnelly/rtreego"
)

// WorldBounds is an axis-aligned bounding box in world (metric) space,
// expressed in the same frame as the chunks it bounds.
type WorldBounds struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Intersects reports whether b and o overlap on every axis.
func (b WorldBounds) Intersects(o WorldBounds) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY &&
		b.MinZ <= o.MaxZ && o.MinZ <= b.MaxZ
}

// Union returns the smallest WorldBounds containing both b and o.
func (b WorldBounds) Union(o WorldBounds) WorldBounds {
	return WorldBounds{
		MinX: min(b.MinX, o.MinX), MinY: min(b.MinY, o.MinY), MinZ: min(b.MinZ, o.MinZ),
		MaxX: max(b.MaxX, o.MaxX), MaxY: max(b.MaxY, o.MaxY), MaxZ: max(b.MaxZ, o.MaxZ),
	}
}

// ChunkCoord identifies a chunk: a cube of voxels sharing a fixed Index64
// prefix above some LOD.
type ChunkCoord struct {
	FrameID uint16
	LOD     uint8
	X, Y, Z int64
}

// ChunkEntry is one indexed chunk: its coordinate plus the world-space box
// it occupies.
type ChunkEntry struct {
	Coord  ChunkCoord
	Bounds WorldBounds
}

// rect converts e's WorldBounds to an rtreego.Rect; spatialEntry.Bounds
// uses it to implement rtreego.Spatial.
func (e ChunkEntry) rect() rtreego.Rect {
	point := rtreego.Point{e.Bounds.MinX, e.Bounds.MinY, e.Bounds.MinZ}
	lengths := []float64{
		nonZero(e.Bounds.MaxX - e.Bounds.MinX),
		nonZero(e.Bounds.MaxY - e.Bounds.MinY),
		nonZero(e.Bounds.MaxZ - e.Bounds.MinZ),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// nonZero nudges a zero extent up to a tiny positive value: rtreego
// rejects degenerate (zero-length) rectangles, but a single-voxel chunk is
// a legitimate point-like entry.
func nonZero(v float64) float64 {
	if v <= 0 {
		return 1e-9
	}
	return v
}

type spatialEntry struct{ ChunkEntry }

func (s spatialEntry) Bounds() rtreego.Rect { return s.rect() }

// RegionIndex answers "which chunks intersect this box" in O(log N) via an
// R-tree, mirroring the teacher's ChartIndex.
type RegionIndex struct {
	entries []ChunkEntry
	rtree   *rtreego.Rtree
	bounds  WorldBounds
	hasAny  bool
}

// BuildRegionIndex builds an R-tree (3-D, min 25 / max 50 children per
// node, matching the teacher's 2-D chart index sizing) over chunks.
func BuildRegionIndex(chunks []ChunkEntry) *RegionIndex {
	idx := &RegionIndex{
		entries: append([]ChunkEntry(nil), chunks...),
		rtree:   rtreego.NewTree(3, 25, 50),
	}
	for _, c := range chunks {
		idx.rtree.Insert(spatialEntry{c})
		if !idx.hasAny {
			idx.bounds = c.Bounds
			idx.hasAny = true
		} else {
			idx.bounds = idx.bounds.Union(c.Bounds)
		}
	}
	return idx
}

// QueryRegion returns every indexed chunk whose bounds intersect bounds.
// It queries the R-tree when one was built, falling back to a linear scan
// over the entries otherwise (mirrors the teacher's dual-path Query).
func (idx *RegionIndex) QueryRegion(bounds WorldBounds) []ChunkEntry {
	var result []ChunkEntry
	if idx.rtree != nil {
		q := (ChunkEntry{Bounds: bounds}).rect()
		for _, sp := range idx.rtree.SearchIntersect(q) {
			result = append(result, sp.(spatialEntry).ChunkEntry)
		}
		return result
	}
	for _, e := range idx.entries {
		if e.Bounds.Intersects(bounds) {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the number of indexed chunks.
func (idx *RegionIndex) Count() int { return len(idx.entries) }

// Bounds returns the union of every indexed chunk's bounds. The second
// return value is false if the index is empty.
func (idx *RegionIndex) Bounds() (WorldBounds, bool) { return idx.bounds, idx.hasAny }

package layer

import (
	"container/heap"
	"math"

	"github.com/octa3d/octa3d/ids"
)

// ESDFVoxel is a non-truncated Euclidean signed distance sample, computed
// from a TSDF by Fast Marching on the BCC graph (§4.I).
type ESDFVoxel struct {
	Distance float64
	Fixed    bool
}

// ESDFLayer is a sparse map of ESDFVoxel keyed by Index64.
type ESDFLayer struct {
	voxels      map[ids.Index64]ESDFVoxel
	voxelSize   float64
	maxDistance float64
}

// NewESDFLayer constructs an empty ESDF layer.
func NewESDFLayer(voxelSize, maxDistance float64) *ESDFLayer {
	return &ESDFLayer{voxels: make(map[ids.Index64]ESDFVoxel), voxelSize: voxelSize, maxDistance: maxDistance}
}

// pqItem is one entry in the Fast Marching priority queue, ordered by the
// absolute value of its optimistic distance bound.
type pqItem struct {
	idx   ids.Index64
	bound float64
}

type pq []pqItem

func (p pq) Len() int            { return len(p) }
func (p pq) Less(i, j int) bool  { return math.Abs(p[i].bound) < math.Abs(p[j].bound) }
func (p pq) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *pq) Push(x interface{}) { *p = append(*p, x.(pqItem)) }
func (p *pq) Pop() interface{} {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// ComputeFromTSDF seeds every surface voxel of tsdf (|d| < surfaceThreshold
// and weighted) with its TSDF distance, fixed, then propagates distance to
// every reachable unfixed BCC neighbor via Fast Marching (§4.I).
func (l *ESDFLayer) ComputeFromTSDF(tsdf *TSDFLayer, surfaceThreshold float64) {
	l.voxels = make(map[ids.Index64]ESDFVoxel)
	queue := &pq{}
	heap.Init(queue)

	for _, idx := range tsdf.GetSurfaceVoxels(surfaceThreshold) {
		d, _ := tsdf.GetDistance(idx)
		l.voxels[idx] = ESDFVoxel{Distance: d, Fixed: true}
		for _, n := range neighbors14Edges(idx) {
			if _, fixed := l.voxels[n.Idx]; fixed {
				continue
			}
			heap.Push(queue, pqItem{idx: n.Idx, bound: math.Abs(d) + n.edgeLen()*l.voxelSize})
		}
	}

	for queue.Len() > 0 {
		item := heap.Pop(queue).(pqItem)
		if math.Abs(item.bound) > l.maxDistance {
			break
		}
		if v, ok := l.voxels[item.idx]; ok && v.Fixed {
			continue
		}

		var best float64
		haveBest := false
		for _, n := range neighbors14Edges(item.idx) {
			nv, ok := l.voxels[n.Idx]
			if !ok || !nv.Fixed {
				continue
			}
			candidate := math.Copysign(math.Abs(nv.Distance)+n.edgeLen()*l.voxelSize, nv.Distance)
			if !haveBest || math.Abs(candidate) < math.Abs(best) {
				best = candidate
				haveBest = true
			}
		}
		if !haveBest {
			continue
		}
		best = clamp(best, -l.maxDistance, l.maxDistance)
		l.voxels[item.idx] = ESDFVoxel{Distance: best, Fixed: true}

		for _, n := range neighbors14Edges(item.idx) {
			if v, ok := l.voxels[n.Idx]; ok && v.Fixed {
				continue
			}
			heap.Push(queue, pqItem{idx: n.Idx, bound: math.Abs(best) + n.edgeLen()*l.voxelSize})
		}
	}
}

// GetDistance returns idx's propagated distance and whether it has been
// fixed.
func (l *ESDFLayer) GetDistance(idx ids.Index64) (float64, bool) {
	v, ok := l.voxels[idx]
	return v.Distance, ok && v.Fixed
}

// GetGradient returns the gradient estimated over idx's 14-neighbor
// stencil (the mean of Δd·Δpos over fixed neighbors; the vector is not
// scaled to unit length), or ok=false when the magnitude falls below 1e-6
// (§4.I).
func (l *ESDFLayer) GetGradient(idx ids.Index64) ([3]float64, bool) {
	return estimateGradient(idx, l.voxelSize, func(n ids.Index64) (float64, bool) {
		v, ok := l.voxels[n]
		if !ok || !v.Fixed {
			return 0, false
		}
		return v.Distance, true
	})
}

// VoxelCount returns the number of fixed voxels.
func (l *ESDFLayer) VoxelCount() int { return len(l.voxels) }

// MemoryUsage estimates the layer's heap footprint in bytes.
func (l *ESDFLayer) MemoryUsage() int {
	const perEntry = 8 + 16 // Index64 key + ESDFVoxel (float64 + bool, padded)
	return len(l.voxels) * perEntry
}

// Clear drops every fixed voxel.
func (l *ESDFLayer) Clear() { l.voxels = make(map[ids.Index64]ESDFVoxel) }

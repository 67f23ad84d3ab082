package layer

import (
	"math"

	"github.com/octa3d/octa3d/ids"
)

// TSDFVoxel is a truncated signed distance field sample (§3.4): distance in
// the same metric units as the truncation distance, and an accumulated
// confidence weight.
type TSDFVoxel struct {
	Distance float64
	Weight   float64
}

// TSDFLayer is a sparse map of TSDFVoxel keyed by Index64, fused by the
// weighted running average of Curless & Levoy 1996 (§4.H).
type TSDFLayer struct {
	voxels             map[ids.Index64]TSDFVoxel
	voxelSize          float64
	truncationDistance float64
	maxWeight          float64
}

// NewTSDFLayer constructs an empty TSDF layer. maxWeight defaults to 100
// when zero.
func NewTSDFLayer(voxelSize, truncationDistance, maxWeight float64) *TSDFLayer {
	if maxWeight == 0 {
		maxWeight = 100
	}
	return &TSDFLayer{
		voxels:             make(map[ids.Index64]TSDFVoxel),
		voxelSize:          voxelSize,
		truncationDistance: truncationDistance,
		maxWeight:          maxWeight,
	}
}

// UpdateFromDepth fuses a single SDF observation into idx's voxel via the
// weighted running average. Observations whose magnitude exceeds the
// truncation distance are discarded.
func (l *TSDFLayer) UpdateFromDepth(idx ids.Index64, sdfValue, confidence float64) {
	if math.Abs(sdfValue) > l.truncationDistance {
		return
	}
	clamped := clamp(sdfValue, -l.truncationDistance, l.truncationDistance)

	v := l.voxels[idx]
	newWeight := math.Min(v.Weight+confidence, l.maxWeight)
	var newDistance float64
	if newWeight > 0 {
		newDistance = (v.Distance*v.Weight + clamped*confidence) / newWeight
	} else {
		newDistance = clamped
	}
	l.voxels[idx] = TSDFVoxel{Distance: newDistance, Weight: newWeight}
}

// UpdateFromDepthRay derives an SDF observation from a sensor position and
// a measured ray depth at idx, then dispatches to UpdateFromDepth.
func (l *TSDFLayer) UpdateFromDepthRay(idx ids.Index64, sensorPos [3]float64, rayDepth, confidence float64) {
	voxelPos := worldPos(idx, l.voxelSize)
	sdf := rayDepth - norm(sub(voxelPos, sensorPos))
	l.UpdateFromDepth(idx, sdf, confidence)
}

// GetDistance returns idx's fused distance and whether it has been
// observed at all.
func (l *TSDFLayer) GetDistance(idx ids.Index64) (float64, bool) {
	v, ok := l.voxels[idx]
	return v.Distance, ok
}

// GetWeight returns idx's accumulated weight and whether it has been
// observed at all.
func (l *TSDFLayer) GetWeight(idx ids.Index64) (float64, bool) {
	v, ok := l.voxels[idx]
	return v.Weight, ok
}

// GetSurfaceVoxels returns every voxel with positive weight whose distance
// magnitude is below thresh.
func (l *TSDFLayer) GetSurfaceVoxels(thresh float64) []ids.Index64 {
	var out []ids.Index64
	for idx, v := range l.voxels {
		if v.Weight > 0 && math.Abs(v.Distance) < thresh {
			out = append(out, idx)
		}
	}
	return out
}

// GetZeroCrossingEdges returns every undirected pair of 14-adjacent,
// weighted voxels whose distances have opposite sign, each emitted once in
// canonical (raw(a) < raw(b)) order.
func (l *TSDFLayer) GetZeroCrossingEdges() [][2]ids.Index64 {
	seen := make(map[[2]ids.Index64]bool)
	var out [][2]ids.Index64
	for idx, v := range l.voxels {
		if v.Weight <= 0 {
			continue
		}
		for _, n := range neighbors14(idx) {
			nv, ok := l.voxels[n]
			if !ok || nv.Weight <= 0 {
				continue
			}
			if v.Distance*nv.Distance >= 0 {
				continue
			}
			a, b := canonicalPair(idx, n)
			key := [2]ids.Index64{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// VoxelCount returns the number of observed voxels.
func (l *TSDFLayer) VoxelCount() int { return len(l.voxels) }

// MemoryUsage estimates the layer's heap footprint in bytes.
func (l *TSDFLayer) MemoryUsage() int {
	const perEntry = 8 /* map key (Index64 is one uint64) */ + 16 /* TSDFVoxel */
	return len(l.voxels) * perEntry
}

// Clear drops every observed voxel.
func (l *TSDFLayer) Clear() { l.voxels = make(map[ids.Index64]TSDFVoxel) }

// VoxelSize returns the layer's metres-per-voxel scale.
func (l *TSDFLayer) VoxelSize() float64 { return l.voxelSize }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

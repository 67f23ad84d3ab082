package layer

import (
	"math"

	"github.com/octa3d/octa3d/ids"
	"github.com/octa3d/octa3d/lattice"
)

// OccupancyState classifies a voxel's log-odds value (§4.J).
type OccupancyState int

const (
	Unknown OccupancyState = iota
	Occupied
	Free
)

// OccupancyVoxel is a log-odds occupancy sample.
type OccupancyVoxel struct {
	LogOdds          float64
	MeasurementCount uint32
}

// OccupancyLayer fuses binary occupancy observations by log-odds Bayesian
// update (§4.J).
type OccupancyLayer struct {
	voxels   map[ids.Index64]OccupancyVoxel
	LMin     float64
	LMax     float64
	LOcc     float64
	LFree    float64
	FrameID  uint8
	Tier     uint8
	LOD      uint8
}

// NewOccupancyLayer constructs an empty occupancy layer with the default
// clamp limits (±3.5) and classification thresholds (+0.85, -0.85).
func NewOccupancyLayer(frameID, tier, lod uint8) *OccupancyLayer {
	return &OccupancyLayer{
		voxels:  make(map[ids.Index64]OccupancyVoxel),
		LMin:    -3.5,
		LMax:    3.5,
		LOcc:    0.85,
		LFree:   -0.85,
		FrameID: frameID,
		Tier:    tier,
		LOD:     lod,
	}
}

// UpdateOccupancy fuses a binary observation (occupied or free) at idx with
// the given confidence in [0, 1] into its log-odds value.
func (l *OccupancyLayer) UpdateOccupancy(idx ids.Index64, occupied bool, confidence float64) {
	p := confidence
	if !occupied {
		p = 1 - confidence
	}
	p = clamp(p, 0.001, 0.999)
	delta := math.Log(p / (1 - p))

	v := l.voxels[idx]
	v.LogOdds = clamp(v.LogOdds+delta, l.LMin, l.LMax)
	v.MeasurementCount++
	l.voxels[idx] = v
}

// GetState classifies idx's current log-odds value.
func (l *OccupancyLayer) GetState(idx ids.Index64) OccupancyState {
	v, ok := l.voxels[idx]
	if !ok {
		return Unknown
	}
	switch {
	case v.LogOdds > l.LOcc:
		return Occupied
	case v.LogOdds < l.LFree:
		return Free
	default:
		return Unknown
	}
}

// GetProbability converts idx's log-odds value to a probability in (0, 1).
func (l *OccupancyLayer) GetProbability(idx ids.Index64) float64 {
	v := l.voxels[idx]
	return 1 / (1 + math.Exp(-v.LogOdds))
}

// IntegrateRay walks samples spaced voxel_size/2 apart from origin to
// endpoint, snapping each to the nearest BCC lattice point and applying a
// free-space update; the endpoint's voxel receives an occupied update and
// no free update. No voxel is updated twice within one ray (first visit
// wins).
func (l *OccupancyLayer) IntegrateRay(origin, endpoint [3]float64, voxelSize, freeConf, occConf float64) {
	dir := sub(endpoint, origin)
	length := norm(dir)
	if length == 0 {
		return
	}
	step := voxelSize / 2
	nSamples := int(math.Ceil(length / step))
	seed := indexSeed(l.FrameID, l.Tier, l.LOD)
	endIdx, endOK := fromPoint(seed, lattice.SnapToNearestBCC(endpoint[0]/voxelSize, endpoint[1]/voxelSize, endpoint[2]/voxelSize))

	// The endpoint's voxel is reserved for the occupied update, so free
	// samples that snap onto it are skipped.
	visited := make(map[ids.Index64]bool)
	if endOK {
		visited[endIdx] = true
	}
	for i := 0; i < nSamples; i++ {
		t := float64(i) * step
		sample := add(origin, scale(dir, t/length))
		lx, ly, lz := sample[0]/voxelSize, sample[1]/voxelSize, sample[2]/voxelSize
		snapped := lattice.SnapToNearestBCC(lx, ly, lz)
		idx, ok := fromPoint(seed, snapped)
		if !ok || visited[idx] {
			continue
		}
		visited[idx] = true
		l.UpdateOccupancy(idx, false, freeConf)
	}
	if endOK {
		l.UpdateOccupancy(endIdx, true, occConf)
	}
}

// indexSeed builds a zero-coordinate Index64 purely to carry the
// frame/tier/lod envelope into fromPoint.
func indexSeed(frame, tier, lod uint8) ids.Index64 {
	seed, _ := ids.NewIndex64(frame, tier, lod, 0, 0, 0)
	return seed
}

// VoxelCount returns the number of observed voxels.
func (l *OccupancyLayer) VoxelCount() int { return len(l.voxels) }

// MemoryUsage estimates the layer's heap footprint in bytes.
func (l *OccupancyLayer) MemoryUsage() int {
	const perEntry = 8 + 16 // Index64 key + OccupancyVoxel (float64 + uint32, padded)
	return len(l.voxels) * perEntry
}

// Clear drops every observed voxel.
func (l *OccupancyLayer) Clear() { l.voxels = make(map[ids.Index64]OccupancyVoxel) }

package layer

import (
	"math"
	"testing"

	"github.com/octa3d/octa3d/lattice"
)

func TestOccupancyUpdateAndClassify(t *testing.T) {
	l := NewOccupancyLayer(0, 0, 0)
	idx := mustIdx(t, 10, 10, 10)

	for i := 0; i < 5; i++ {
		l.UpdateOccupancy(idx, true, 0.9)
	}
	if got := l.GetState(idx); got != Occupied {
		t.Fatalf("GetState() = %v, want Occupied", got)
	}

	idx2 := mustIdx(t, 20, 20, 20)
	for i := 0; i < 5; i++ {
		l.UpdateOccupancy(idx2, false, 0.9)
	}
	if got := l.GetState(idx2); got != Free {
		t.Fatalf("GetState() = %v, want Free", got)
	}
}

func TestOccupancyUnknownByDefault(t *testing.T) {
	l := NewOccupancyLayer(0, 0, 0)
	idx := mustIdx(t, 1, 1, 1)
	if got := l.GetState(idx); got != Unknown {
		t.Fatalf("GetState() = %v, want Unknown for unobserved voxel", got)
	}
}

func TestOccupancyClampsToLimits(t *testing.T) {
	l := NewOccupancyLayer(0, 0, 0)
	idx := mustIdx(t, 1, 1, 1)
	for i := 0; i < 1000; i++ {
		l.UpdateOccupancy(idx, true, 0.999)
	}
	v := l.voxels[idx]
	if v.LogOdds != l.LMax {
		t.Fatalf("LogOdds = %v, want clamped to LMax %v", v.LogOdds, l.LMax)
	}
}

func TestOccupancyProbability(t *testing.T) {
	l := NewOccupancyLayer(0, 0, 0)
	idx := mustIdx(t, 1, 1, 1)
	p := l.GetProbability(idx)
	if math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("GetProbability() = %v, want 0.5 for an unobserved voxel", p)
	}
}

func TestOccupancyIntegrateRayFirstVisitWins(t *testing.T) {
	l := NewOccupancyLayer(0, 0, 0)
	origin := [3]float64{0, 0, 0}
	endpoint := [3]float64{10, 10, 10}
	l.IntegrateRay(origin, endpoint, 1.0, 0.7, 0.9)

	total := l.VoxelCount()
	if total == 0 {
		t.Fatal("expected IntegrateRay to touch at least one voxel")
	}

	snapped := lattice.SnapToNearestBCC(endpoint[0], endpoint[1], endpoint[2])
	endIdx, ok := fromPoint(indexSeed(l.FrameID, l.Tier, l.LOD), snapped)
	if !ok {
		t.Skip("endpoint not representable in this envelope")
	}
	if got := l.GetState(endIdx); got != Occupied {
		t.Fatalf("GetState(endpoint) = %v, want Occupied", got)
	}
}

package layer

import (
	"math"
	"testing"
)

func TestESDFSeedsFromTSDFSurface(t *testing.T) {
	tsdf := NewTSDFLayer(1.0, 10.0, 100)
	a := mustIdx(t, 4, 4, 4)
	b := mustIdx(t, 5, 5, 5)
	tsdf.UpdateFromDepth(a, 0.5, 10)
	tsdf.UpdateFromDepth(b, -0.5, 10)

	esdf := NewESDFLayer(1.0, 10.0)
	esdf.ComputeFromTSDF(tsdf, 5.0)

	da, ok := esdf.GetDistance(a)
	if !ok {
		t.Fatal("expected surface voxel a to be fixed")
	}
	if da != 0.5 {
		t.Fatalf("GetDistance(a) = %v, want 0.5 (seeded from TSDF)", da)
	}
}

func TestESDFPropagatesToNeighbor(t *testing.T) {
	tsdf := NewTSDFLayer(1.0, 10.0, 100)
	surface := mustIdx(t, 4, 4, 4)
	tsdf.UpdateFromDepth(surface, 0.2, 10)

	esdf := NewESDFLayer(1.0, 10.0)
	esdf.ComputeFromTSDF(tsdf, 5.0)

	// Axial neighbor at offset (2,0,0): edge length 2, voxel_size 1.
	neighbor := mustIdx(t, 6, 4, 4)
	d, ok := esdf.GetDistance(neighbor)
	if !ok {
		t.Fatal("expected axial neighbor to be reached by propagation")
	}
	want := 0.2 + 2.0
	if math.Abs(d-want) > 1e-9 {
		t.Fatalf("GetDistance(neighbor) = %v, want %v", d, want)
	}
}

func TestESDFClampsToMaxDistance(t *testing.T) {
	tsdf := NewTSDFLayer(1.0, 10.0, 100)
	surface := mustIdx(t, 100, 100, 100)
	tsdf.UpdateFromDepth(surface, 0.0, 10)

	esdf := NewESDFLayer(1.0, 3.0)
	esdf.ComputeFromTSDF(tsdf, 5.0)

	for idx, v := range esdf.voxels {
		_ = idx
		if math.Abs(v.Distance) > 3.0+1e-9 {
			t.Fatalf("distance %v exceeds max_distance 3.0", v.Distance)
		}
	}
}

func TestESDFGradientBelowThresholdIsNone(t *testing.T) {
	tsdf := NewTSDFLayer(1.0, 10.0, 100)
	idx := mustIdx(t, 4, 4, 4)
	tsdf.UpdateFromDepth(idx, 0.5, 10)
	esdf := NewESDFLayer(1.0, 10.0)
	esdf.ComputeFromTSDF(tsdf, 5.0)

	if _, ok := esdf.GetGradient(idx); ok {
		t.Fatal("expected no gradient at a lone seed, whose propagated neighbors are symmetric")
	}
}

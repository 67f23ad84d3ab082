package layer

import (
	"errors"
	"testing"
)

func TestLayeredMapRequireAbsentLayer(t *testing.T) {
	m := NewLayeredMap()
	_, err := m.RequireTSDF()
	var notInit *InvalidFormatError
	if !errors.As(err, &notInit) {
		t.Fatalf("expected InvalidFormatError, got %v", err)
	}
}

func TestLayeredMapLayerTypesOrder(t *testing.T) {
	m := NewLayeredMap()
	m.AddOccupancy(NewOccupancyLayer(0, 0, 0))
	m.AddTSDF(NewTSDFLayer(1.0, 1.0, 100))

	got := m.LayerTypes()
	want := []LayerKind{KindTSDF, KindOccupancy}
	if len(got) != len(want) {
		t.Fatalf("LayerTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayerTypes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLayeredMapTotalVoxelsAndClear(t *testing.T) {
	m := NewLayeredMap()
	tsdf := NewTSDFLayer(1.0, 10.0, 100)
	idx := mustIdx(t, 1, 1, 1)
	tsdf.UpdateFromDepth(idx, 0.1, 10)
	m.AddTSDF(tsdf)

	if m.TotalVoxels() != 1 {
		t.Fatalf("TotalVoxels() = %d, want 1", m.TotalVoxels())
	}
	m.Clear()
	if m.TotalVoxels() != 0 {
		t.Fatalf("TotalVoxels() after Clear() = %d, want 0", m.TotalVoxels())
	}
	if !m.HasLayer(KindTSDF) {
		t.Fatal("Clear() should not detach the layer")
	}
}

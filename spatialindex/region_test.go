package spatialindex

import "testing"

func box(x, y, z float64) WorldBounds {
	return WorldBounds{MinX: x, MinY: y, MinZ: z, MaxX: x + 1, MaxY: y + 1, MaxZ: z + 1}
}

func TestQueryRegionFindsIntersecting(t *testing.T) {
	chunks := []ChunkEntry{
		{Coord: ChunkCoord{X: 0, Y: 0, Z: 0}, Bounds: box(0, 0, 0)},
		{Coord: ChunkCoord{X: 10, Y: 10, Z: 10}, Bounds: box(10, 10, 10)},
		{Coord: ChunkCoord{X: 100, Y: 100, Z: 100}, Bounds: box(100, 100, 100)},
	}
	idx := BuildRegionIndex(chunks)
	if idx.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", idx.Count())
	}

	got := idx.QueryRegion(WorldBounds{MinX: -5, MinY: -5, MinZ: -5, MaxX: 15, MaxY: 15, MaxZ: 15})
	if len(got) != 2 {
		t.Fatalf("QueryRegion returned %d chunks, want 2", len(got))
	}
	for _, c := range got {
		if c.Coord.X == 100 {
			t.Fatal("far chunk should not be in result")
		}
	}
}

func TestQueryRegionEmptyIndex(t *testing.T) {
	idx := BuildRegionIndex(nil)
	if idx.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", idx.Count())
	}
	if _, ok := idx.Bounds(); ok {
		t.Fatal("Bounds() should report false on an empty index")
	}
	if got := idx.QueryRegion(box(0, 0, 0)); len(got) != 0 {
		t.Fatalf("QueryRegion on empty index returned %d results", len(got))
	}
}

func TestBoundsUnion(t *testing.T) {
	chunks := []ChunkEntry{
		{Bounds: box(0, 0, 0)},
		{Bounds: box(10, -5, 3)},
	}
	idx := BuildRegionIndex(chunks)
	b, ok := idx.Bounds()
	if !ok {
		t.Fatal("expected Bounds() ok=true")
	}
	if b.MinY != -5 || b.MaxX != 11 {
		t.Fatalf("unexpected union bounds: %+v", b)
	}
}

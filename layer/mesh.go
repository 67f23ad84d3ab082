package layer

import (
	"math"
	"sort"

	"github.com/octa3d/octa3d/ids"
)

// Vertex is a mesh vertex: a position and an optional normal (§3.5).
type Vertex struct {
	Position  [3]float64
	Normal    [3]float64
	HasNormal bool
}

// Triangle is three indices into a Mesh's Vertices.
type Triangle struct {
	A, B, C int
}

// Mesh owns its vertex and triangle slices exclusively (§3.5).
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// ExtractMesh builds a Mesh from a TSDF's zero-crossing edges: one
// interpolated vertex per edge, then a deliberately simple per-voxel
// triangulation over triples of edges sharing a voxel (§4.K). The emitted
// triangle set is deterministic and free of duplicates; it is not
// guaranteed to be globally manifold.
func ExtractMesh(tsdf *TSDFLayer) *Mesh {
	edges := tsdf.GetZeroCrossingEdges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0].Raw() < edges[j][0].Raw()
		}
		return edges[i][1].Raw() < edges[j][1].Raw()
	})

	mesh := &Mesh{}
	edgesByVoxel := make(map[ids.Index64][]int)

	for _, e := range edges {
		a, b := e[0], e[1]
		da, _ := tsdf.GetDistance(a)
		db, _ := tsdf.GetDistance(b)

		denom := db - da
		t := 0.0
		if denom != 0 {
			t = clamp(-da/denom, 0, 1)
		}
		posA := worldPos(a, tsdf.voxelSize)
		posB := worldPos(b, tsdf.voxelSize)
		pos := add(posA, scale(sub(posB, posA), t))

		v := Vertex{Position: pos}
		if grad, ok := estimateGradient(a, tsdf.voxelSize, tsdf.GetDistance); ok {
			v.Normal = grad
			v.HasNormal = true
		}

		idx := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, v)

		edgesByVoxel[a] = append(edgesByVoxel[a], idx)
		edgesByVoxel[b] = append(edgesByVoxel[b], idx)
	}

	voxels := make([]ids.Index64, 0, len(edgesByVoxel))
	for v := range edgesByVoxel {
		voxels = append(voxels, v)
	}
	sort.Slice(voxels, func(i, j int) bool { return voxels[i].Raw() < voxels[j].Raw() })

	seen := make(map[Triangle]bool)
	for _, voxel := range voxels {
		vertIdxs := edgesByVoxel[voxel]
		if len(vertIdxs) < 3 {
			continue
		}
		for i := 0; i < len(vertIdxs); i++ {
			for j := i + 1; j < len(vertIdxs); j++ {
				for k := j + 1; k < len(vertIdxs); k++ {
					a, b, c := vertIdxs[i], vertIdxs[j], vertIdxs[k]
					if a == b || b == c || a == c {
						continue
					}
					tri := canonicalTriangle(a, b, c)
					if seen[tri] {
						continue
					}
					seen[tri] = true
					mesh.Triangles = append(mesh.Triangles, tri)
				}
			}
		}
	}
	return mesh
}

func canonicalTriangle(a, b, c int) Triangle {
	s := []int{a, b, c}
	sort.Ints(s)
	return Triangle{A: s[0], B: s[1], C: s[2]}
}

// SurfaceArea sums ½·‖(v1−v0) × (v2−v0)‖ over every triangle.
func SurfaceArea(m *Mesh) float64 {
	var total float64
	for _, tri := range m.Triangles {
		v0, v1, v2 := m.Vertices[tri.A].Position, m.Vertices[tri.B].Position, m.Vertices[tri.C].Position
		c := cross(sub(v1, v0), sub(v2, v0))
		total += 0.5 * norm(c)
	}
	return total
}

// BoundingBox returns the componentwise min/max over m's vertices. ok is
// false when m has no vertices.
func BoundingBox(m *Mesh) (min, max [3]float64, ok bool) {
	if len(m.Vertices) == 0 {
		return min, max, false
	}
	min = m.Vertices[0].Position
	max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			min[axis] = math.Min(min[axis], v.Position[axis])
			max[axis] = math.Max(max[axis], v.Position[axis])
		}
	}
	return min, max, true
}

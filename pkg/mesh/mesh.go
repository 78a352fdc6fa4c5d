// Package mesh provides triangulated surface meshes and enclosed-volume
// estimation with tiered fallbacks for unclean geometry.
package mesh

import "github.com/rverbeek/ifctakeoff/pkg/geometry"

// TriangleMesh is an indexed triangle mesh in world coordinates.
// Triangles index into Vertices. The mesh may be a raw triangle soup:
// non-manifold, inconsistently wound, or open.
type TriangleMesh struct {
	Vertices  []geometry.Vector3
	Triangles [][3]int
}

// NewTriangleMesh creates an empty mesh
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{}
}

// AddTriangle appends a triangle by vertex indices
func (m *TriangleMesh) AddTriangle(a, b, c int) {
	m.Triangles = append(m.Triangles, [3]int{a, b, c})
}

// AddVertex appends a vertex and returns its index
func (m *TriangleMesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// IsEmpty reports whether the mesh carries no usable geometry
func (m *TriangleMesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Triangles) == 0
}

// VertexCount returns the number of vertices
func (m *TriangleMesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles
func (m *TriangleMesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Triangles)
}

// Triangle materializes the i-th triangle
func (m *TriangleMesh) Triangle(i int) geometry.Triangle {
	t := m.Triangles[i]
	return geometry.NewTriangle(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])
}

// BoundingBox calculates the axis-aligned bounds of all vertices
func (m *TriangleMesh) BoundingBox() geometry.BoundingBox {
	if m == nil {
		return geometry.NewBoundingBox()
	}
	return geometry.BoundingBoxOf(m.Vertices)
}

// SurfaceArea calculates the total area of all triangles
func (m *TriangleMesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Triangles {
		total += m.Triangle(i).Area()
	}
	return total
}

// Merge appends another mesh's geometry to this one
func (m *TriangleMesh) Merge(other *TriangleMesh) {
	if other == nil || len(other.Vertices) == 0 {
		return
	}
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, [3]int{t[0] + offset, t[1] + offset, t[2] + offset})
	}
}

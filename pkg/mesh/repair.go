package mesh

import (
	"math"

	"github.com/rverbeek/ifctakeoff/pkg/geometry"
)

// ProcessedSolidVolume builds a cleaned solid from a triangle soup and
// returns its enclosed volume. Duplicate vertices are welded, degenerate
// triangles dropped. The volume is only trusted (ok=true) when the
// cleaned surface is closed and consistently wound: every directed edge
// must be matched by exactly one reverse edge. Anything else falls back
// to the caller's next tier.
func ProcessedSolidVolume(m *TriangleMesh) (float64, bool) {
	if m.IsEmpty() {
		return 0.0, false
	}

	welded := weld(m)
	if welded.IsEmpty() {
		return 0.0, false
	}
	if !isClosedSurface(welded) {
		return 0.0, false
	}
	return SignedVolume(welded), true
}

// weld merges vertices that coincide within a tolerance scaled to the
// mesh extent, and drops triangles that collapse in the process
func weld(m *TriangleMesh) *TriangleMesh {
	diag := m.BoundingBox().Size().Length()
	scale := 1.0 / (1e-7 * math.Max(1.0, diag))

	type key [3]int64
	seen := make(map[key]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))

	out := NewTriangleMesh()
	for i, v := range m.Vertices {
		k := key{
			int64(math.Round(v.X * scale)),
			int64(math.Round(v.Y * scale)),
			int64(math.Round(v.Z * scale)),
		}
		if idx, ok := seen[k]; ok {
			remap[i] = idx
			continue
		}
		idx := out.AddVertex(v)
		seen[k] = idx
		remap[i] = idx
	}

	areaEps := 1e-12 * math.Max(1.0, diag*diag)
	for _, t := range m.Triangles {
		a, b, c := remap[t[0]], remap[t[1]], remap[t[2]]
		if a == b || b == c || c == a {
			continue
		}
		tri := geometry.NewTriangle(out.Vertices[a], out.Vertices[b], out.Vertices[c])
		if tri.Area() <= areaEps {
			continue
		}
		out.AddTriangle(a, b, c)
	}
	return out
}

// isClosedSurface reports whether every directed edge is matched by
// exactly one reverse edge, the manifold condition that makes the
// signed tetrahedron sum exact
func isClosedSurface(m *TriangleMesh) bool {
	type edge [2]int
	count := make(map[edge]int, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		count[edge{t[0], t[1]}]++
		count[edge{t[1], t[2]}]++
		count[edge{t[2], t[0]}]++
	}
	for e, n := range count {
		if n != 1 || count[edge{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

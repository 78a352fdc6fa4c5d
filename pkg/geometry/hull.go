package geometry

import "math"

// hullFace is an outward-oriented triangular face of a convex hull,
// indexing into the hull's point set.
type hullFace struct {
	a, b, c int
}

// ConvexHullVolume computes the enclosed volume of the convex hull of a
// point set using an incremental construction. It returns 0 when the
// set is degenerate: fewer than four distinct points, all points
// collinear, or all points coplanar.
func ConvexHullVolume(points []Vector3) float64 {
	if len(points) < 4 {
		return 0
	}

	// Tolerance scaled to the extent of the data
	diag := BoundingBoxOf(points).Size().Length()
	if diag == 0 {
		return 0
	}
	eps := 1e-9 * math.Max(1.0, diag)

	simplex, ok := initialSimplex(points, eps)
	if !ok {
		return 0
	}

	// Interior reference point; stays interior as the hull only grows
	interior := points[simplex[0]].
		Add(points[simplex[1]]).
		Add(points[simplex[2]]).
		Add(points[simplex[3]]).Mul(0.25)

	faces := []hullFace{
		{simplex[0], simplex[1], simplex[2]},
		{simplex[0], simplex[1], simplex[3]},
		{simplex[0], simplex[2], simplex[3]},
		{simplex[1], simplex[2], simplex[3]},
	}
	for i := range faces {
		faces[i] = orientOutward(faces[i], points, interior)
	}

	used := map[int]bool{
		simplex[0]: true, simplex[1]: true, simplex[2]: true, simplex[3]: true,
	}

	for i := range points {
		if used[i] {
			continue
		}
		faces = addPoint(faces, points, interior, i, eps)
	}

	volume := 0.0
	for _, f := range faces {
		a := points[f.a].Sub(interior)
		b := points[f.b].Sub(interior)
		c := points[f.c].Sub(interior)
		volume += a.Dot(b.Cross(c)) / 6.0
	}
	return math.Abs(volume)
}

// initialSimplex finds four points spanning a non-degenerate tetrahedron
func initialSimplex(points []Vector3, eps float64) ([4]int, bool) {
	var s [4]int

	// Farthest pair from the first point
	s[0] = 0
	best := 0.0
	for i, p := range points {
		if d := p.Sub(points[s[0]]).Length(); d > best {
			best = d
			s[1] = i
		}
	}
	if best <= eps {
		return s, false
	}

	// Farthest point from the line s0-s1
	dir := points[s[1]].Sub(points[s[0]]).Normalize()
	best = 0.0
	for i, p := range points {
		rel := p.Sub(points[s[0]])
		if d := rel.Sub(dir.Mul(rel.Dot(dir))).Length(); d > best {
			best = d
			s[2] = i
		}
	}
	if best <= eps {
		return s, false
	}

	// Farthest point from the plane s0-s1-s2
	normal := points[s[1]].Sub(points[s[0]]).
		Cross(points[s[2]].Sub(points[s[0]])).Normalize()
	best = 0.0
	for i, p := range points {
		if d := math.Abs(p.Sub(points[s[0]]).Dot(normal)); d > best {
			best = d
			s[3] = i
		}
	}
	if best <= eps {
		return s, false
	}
	return s, true
}

// orientOutward flips a face so its normal points away from the interior
func orientOutward(f hullFace, points []Vector3, interior Vector3) hullFace {
	normal := points[f.b].Sub(points[f.a]).Cross(points[f.c].Sub(points[f.a]))
	if normal.Dot(interior.Sub(points[f.a])) > 0 {
		return hullFace{f.a, f.c, f.b}
	}
	return f
}

// addPoint grows the hull to include points[idx], replacing all faces
// visible from the point with a cone of faces over the horizon edges
func addPoint(faces []hullFace, points []Vector3, interior Vector3, idx int, eps float64) []hullFace {
	p := points[idx]

	var kept, visible []hullFace
	for _, f := range faces {
		normal := points[f.b].Sub(points[f.a]).Cross(points[f.c].Sub(points[f.a]))
		if normal.Dot(p.Sub(points[f.a])) > eps {
			visible = append(visible, f)
		} else {
			kept = append(kept, f)
		}
	}
	if len(visible) == 0 {
		return faces
	}

	// A horizon edge is a directed edge of a visible face whose reverse
	// is not an edge of any other visible face
	edges := make(map[[2]int]bool, len(visible)*3)
	for _, f := range visible {
		edges[[2]int{f.a, f.b}] = true
		edges[[2]int{f.b, f.c}] = true
		edges[[2]int{f.c, f.a}] = true
	}
	for e := range edges {
		if edges[[2]int{e[1], e[0]}] {
			continue
		}
		kept = append(kept, orientOutward(hullFace{e[0], e[1], idx}, points, interior))
	}
	return kept
}

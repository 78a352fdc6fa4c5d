package mesh

import "math"

// EstimateVolume computes a best-effort enclosed volume in cubic meters.
// Tiers, first positive result wins:
//
//  1. processed solid: weld and clean the triangle soup, and take its
//     enclosed volume if the cleaned surface is closed (only when
//     repair is enabled)
//  2. signed tetrahedron sum over the raw triangles
//  3. axis-aligned bounding box of all vertices
//
// The signed sum is exact for any closed, consistently wound surface
// but silently underestimates open or mixed-winding soups, which is why
// it ranks below the processed-solid tier. An empty mesh returns 0
// without consulting any tier.
func EstimateVolume(m *TriangleMesh, repair bool) float64 {
	if m.IsEmpty() {
		return 0.0
	}

	if repair {
		if v, ok := ProcessedSolidVolume(m); ok && v > 0 {
			return v
		}
	}

	if v := SignedVolume(m); v > 0 {
		return v
	}

	return m.BoundingBox().Volume()
}

// SignedVolume accumulates the divergence-theorem volume of the raw
// triangle set: dot(a, cross(b, c)) / 6 per triangle, absolute total.
func SignedVolume(m *TriangleMesh) float64 {
	volume := 0.0
	for i := range m.Triangles {
		volume += m.Triangle(i).SignedVolume()
	}
	return math.Abs(volume)
}

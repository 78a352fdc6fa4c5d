package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	A, B, C Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal computes the (unnormalized winding) normal vector of the triangle
func (t Triangle) Normal() Vector3 {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	return edge1.Cross(edge2)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.Normal().Length() / 2.0
}

// SignedVolume returns the signed volume of the tetrahedron spanned by
// the triangle and the coordinate origin. Summed over a closed,
// consistently wound surface this yields the enclosed volume
// (divergence theorem).
func (t Triangle) SignedVolume() float64 {
	return t.A.Dot(t.B.Cross(t.C)) / 6.0
}

package kernel

import (
	"github.com/rverbeek/ifctakeoff/pkg/geometry"
	"github.com/rverbeek/ifctakeoff/pkg/ifc"
	"github.com/rverbeek/ifctakeoff/pkg/mesh"
)

// tessellateItem dispatches on a representation item and appends its
// triangles, placed into world coordinates, to out. Unsupported or
// malformed items contribute nothing.
func (k *SPF) tessellateItem(inst *ifc.Instance, placement transform, out *mesh.TriangleMesh) {
	if inst == nil {
		return
	}

	switch inst.Type {
	case "IFCTRIANGULATEDFACESET":
		k.tessellateFaceSet(inst, placement, out)
	case "IFCFACETEDBREP":
		k.tessellateBrep(inst, placement, out)
	case "IFCEXTRUDEDAREASOLID":
		k.tessellateExtrusion(inst, placement, out)
	}
}

// tessellateFaceSet reads an IfcTriangulatedFaceSet: Coordinates(0)
// referencing an IfcCartesianPointList3D, CoordIndex(3) with 1-based
// vertex triples
func (k *SPF) tessellateFaceSet(inst *ifc.Instance, placement transform, out *mesh.TriangleMesh) {
	pointList := k.model.Deref(inst.Attr(0))
	if pointList == nil || pointList.Type != "IFCCARTESIANPOINTLIST3D" {
		return
	}

	base := out.VertexCount()
	var count int
	for _, coord := range pointList.Attr(0).Items() {
		p, ok := coordinates(coord)
		if !ok {
			return
		}
		out.AddVertex(placement.apply(p))
		count++
	}

	for _, triple := range inst.Attr(3).Items() {
		idx := triple.Items()
		if len(idx) != 3 {
			continue
		}
		var tri [3]int
		valid := true
		for i, a := range idx {
			n, ok := a.Float()
			j := int(n) - 1
			if !ok || j < 0 || j >= count {
				valid = false
				break
			}
			tri[i] = base + j
		}
		if valid {
			out.AddTriangle(tri[0], tri[1], tri[2])
		}
	}
}

// tessellateBrep fan-triangulates the outer closed shell of an
// IfcFacetedBrep: Outer(0) -> IfcClosedShell CfsFaces(0) -> IfcFace
// Bounds(0) -> IfcFaceBound Bound(0)/Orientation(1) -> IfcPolyLoop
// Polygon(0)
func (k *SPF) tessellateBrep(inst *ifc.Instance, placement transform, out *mesh.TriangleMesh) {
	shell := k.model.Deref(inst.Attr(0))
	if shell == nil || shell.Type != "IFCCLOSEDSHELL" {
		return
	}

	for _, faceRef := range shell.Attr(0).Items() {
		face := k.model.Deref(faceRef)
		if face == nil || face.Type != "IFCFACE" {
			continue
		}
		for _, boundRef := range face.Attr(0).Items() {
			bound := k.model.Deref(boundRef)
			if bound == nil {
				continue
			}
			loop := k.model.Deref(bound.Attr(0))
			if loop == nil || loop.Type != "IFCPOLYLOOP" {
				continue
			}

			var points []geometry.Vector3
			for _, ptRef := range loop.Attr(0).Items() {
				p, ok := k.cartesianPoint(ptRef)
				if !ok {
					points = nil
					break
				}
				points = append(points, placement.apply(p))
			}
			if len(points) < 3 {
				continue
			}
			if sense, ok := bound.Attr(1).Bool(); ok && !sense {
				reverse(points)
			}

			base := out.VertexCount()
			for _, p := range points {
				out.AddVertex(p)
			}
			for i := 1; i < len(points)-1; i++ {
				out.AddTriangle(base, base+i, base+i+1)
			}
		}
	}
}

func reverse(points []geometry.Vector3) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// tessellateExtrusion boxes out an IfcExtrudedAreaSolid over a
// rectangle profile: SweptArea(0), Position(1), ExtrudedDirection(2),
// Depth(3). Non-rectangle profiles are unsupported and skipped.
func (k *SPF) tessellateExtrusion(inst *ifc.Instance, placement transform, out *mesh.TriangleMesh) {
	profile := k.model.Deref(inst.Attr(0))
	if profile == nil || profile.Type != "IFCRECTANGLEPROFILEDEF" {
		return
	}
	// IfcRectangleProfileDef: Position(2), XDim(3), YDim(4)
	xdim, okX := profile.Attr(3).Float()
	ydim, okY := profile.Attr(4).Float()
	if !okX || !okY || xdim <= 0 || ydim <= 0 {
		return
	}
	var offset geometry.Vector3
	if pos := k.model.Deref(profile.Attr(2)); pos != nil && pos.Type == "IFCAXIS2PLACEMENT2D" {
		if p, ok := k.cartesianPoint(pos.Attr(0)); ok {
			offset = p
		}
	}

	depth, ok := inst.Attr(3).Float()
	if !ok || depth <= 0 {
		return
	}
	dir := geometry.NewVector3(0, 0, 1)
	if d, ok := k.direction(inst.Attr(2)); ok && d.Length() > 0 {
		dir = d.Normalize()
	}
	extrusion := dir.Mul(depth)

	full := placement.compose(k.axis2Placement3D(k.model.Deref(inst.Attr(1))))

	hx, hy := xdim/2, ydim/2
	bottom := []geometry.Vector3{
		{X: offset.X - hx, Y: offset.Y - hy},
		{X: offset.X + hx, Y: offset.Y - hy},
		{X: offset.X + hx, Y: offset.Y + hy},
		{X: offset.X - hx, Y: offset.Y + hy},
	}

	base := out.VertexCount()
	for _, p := range bottom {
		out.AddVertex(full.apply(p))
	}
	for _, p := range bottom {
		out.AddVertex(full.apply(p.Add(extrusion)))
	}

	// Quads of the box as triangle pairs, wound outward for an
	// extrusion along +z
	quads := [][4]int{
		{3, 2, 1, 0}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	for _, q := range quads {
		out.AddTriangle(base+q[0], base+q[1], base+q[2])
		out.AddTriangle(base+q[0], base+q[2], base+q[3])
	}
}

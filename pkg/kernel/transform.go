package kernel

import (
	"math"

	"github.com/rverbeek/ifctakeoff/pkg/geometry"
	"github.com/rverbeek/ifctakeoff/pkg/ifc"
)

// transform is a rigid placement: an origin and an orthonormal basis
type transform struct {
	origin  geometry.Vector3
	x, y, z geometry.Vector3
}

func identity() transform {
	return transform{
		x: geometry.NewVector3(1, 0, 0),
		y: geometry.NewVector3(0, 1, 0),
		z: geometry.NewVector3(0, 0, 1),
	}
}

// apply maps a local point into the parent frame
func (t transform) apply(p geometry.Vector3) geometry.Vector3 {
	return t.origin.
		Add(t.x.Mul(p.X)).
		Add(t.y.Mul(p.Y)).
		Add(t.z.Mul(p.Z))
}

// rotate maps a local direction into the parent frame
func (t transform) rotate(v geometry.Vector3) geometry.Vector3 {
	return t.x.Mul(v.X).Add(t.y.Mul(v.Y)).Add(t.z.Mul(v.Z))
}

// compose returns the transform that applies child first, then t
func (t transform) compose(child transform) transform {
	return transform{
		origin: t.apply(child.origin),
		x:      t.rotate(child.x),
		y:      t.rotate(child.y),
		z:      t.rotate(child.z),
	}
}

// maxPlacementDepth bounds IfcLocalPlacement chains so a cyclic model
// cannot hang the tessellator
const maxPlacementDepth = 64

// placementTransform resolves an IfcLocalPlacement chain into a single
// world transform. Anything unresolvable degrades to identity.
func (k *SPF) placementTransform(a ifc.Attr, depth int) transform {
	inst := k.model.Deref(a)
	if inst == nil || depth > maxPlacementDepth {
		return identity()
	}

	switch inst.Type {
	case "IFCLOCALPLACEMENT":
		// PlacementRelTo(0), RelativePlacement(1)
		parent := k.placementTransform(inst.Attr(0), depth+1)
		local := k.axis2Placement3D(k.model.Deref(inst.Attr(1)))
		return parent.compose(local)
	case "IFCAXIS2PLACEMENT3D":
		return k.axis2Placement3D(inst)
	default:
		return identity()
	}
}

// axis2Placement3D builds a frame from an IfcAxis2Placement3D:
// Location(0), Axis(1, local z, default +z), RefDirection(2, local x,
// default +x), with the x axis orthogonalized against z.
func (k *SPF) axis2Placement3D(inst *ifc.Instance) transform {
	t := identity()
	if inst == nil || inst.Type != "IFCAXIS2PLACEMENT3D" {
		return t
	}

	if p, ok := k.cartesianPoint(inst.Attr(0)); ok {
		t.origin = p
	}

	axis := geometry.NewVector3(0, 0, 1)
	if d, ok := k.direction(inst.Attr(1)); ok {
		axis = d.Normalize()
	}
	ref := geometry.NewVector3(1, 0, 0)
	if d, ok := k.direction(inst.Attr(2)); ok {
		ref = d
	}

	x := ref.Sub(axis.Mul(ref.Dot(axis)))
	if x.Length() < 1e-9 {
		x = perpendicular(axis)
	}
	t.x = x.Normalize()
	t.z = axis
	t.y = axis.Cross(t.x)
	return t
}

// perpendicular picks an arbitrary vector orthogonal to v
func perpendicular(v geometry.Vector3) geometry.Vector3 {
	if math.Abs(v.X) <= math.Abs(v.Y) && math.Abs(v.X) <= math.Abs(v.Z) {
		return geometry.NewVector3(0, -v.Z, v.Y)
	}
	if math.Abs(v.Y) <= math.Abs(v.Z) {
		return geometry.NewVector3(-v.Z, 0, v.X)
	}
	return geometry.NewVector3(-v.Y, v.X, 0)
}

// cartesianPoint reads an IfcCartesianPoint reference (2D or 3D)
func (k *SPF) cartesianPoint(a ifc.Attr) (geometry.Vector3, bool) {
	inst := k.model.Deref(a)
	if inst == nil || inst.Type != "IFCCARTESIANPOINT" {
		return geometry.Vector3{}, false
	}
	return coordinates(inst.Attr(0))
}

// direction reads an IfcDirection reference
func (k *SPF) direction(a ifc.Attr) (geometry.Vector3, bool) {
	inst := k.model.Deref(a)
	if inst == nil || inst.Type != "IFCDIRECTION" {
		return geometry.Vector3{}, false
	}
	return coordinates(inst.Attr(0))
}

// coordinates converts a 2- or 3-element number list into a vector
func coordinates(a ifc.Attr) (geometry.Vector3, bool) {
	items := a.Items()
	if len(items) < 2 {
		return geometry.Vector3{}, false
	}
	var v geometry.Vector3
	var ok bool
	if v.X, ok = items[0].Float(); !ok {
		return geometry.Vector3{}, false
	}
	if v.Y, ok = items[1].Float(); !ok {
		return geometry.Vector3{}, false
	}
	if len(items) > 2 {
		if v.Z, ok = items[2].Float(); !ok {
			return geometry.Vector3{}, false
		}
	}
	return v, true
}

// Package kernel turns the parametric geometry of IFC products into
// triangulated surface meshes in world coordinates. The Tessellator
// interface is the seam between the takeoff engine and the geometry
// backend: availability is decided once at startup and threaded through
// as a capability, never re-probed per call.
package kernel

import (
	"errors"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
	"github.com/rverbeek/ifctakeoff/pkg/mesh"
)

// Tessellator produces a world-coordinate triangle mesh for a model
// entity. A per-call failure (malformed or unsupported geometry) yields
// an empty mesh, never an error.
type Tessellator interface {
	Tessellate(e *ifc.Entity) *mesh.TriangleMesh
}

// SPF tessellates geometry encoded directly in the STEP file:
// triangulated face sets, faceted breps, and rectangle-profile
// extrusions, each placed through its local placement chain.
type SPF struct {
	model *ifc.Model
}

// NewSPF creates a tessellator over a loaded model
func NewSPF(m *ifc.Model) (*SPF, error) {
	if m == nil {
		return nil, errors.New("kernel: nil model")
	}
	return &SPF{model: m}, nil
}

// Product attribute positions (IfcProduct): ObjectPlacement(5),
// Representation(6).
const (
	productPlacementAttr      = 5
	productRepresentationAttr = 6
)

// Tessellate implements Tessellator
func (k *SPF) Tessellate(e *ifc.Entity) *mesh.TriangleMesh {
	out := mesh.NewTriangleMesh()
	if e == nil {
		return out
	}
	inst := e.Instance()

	placement := k.placementTransform(inst.Attr(productPlacementAttr), 0)

	shape := k.model.Deref(inst.Attr(productRepresentationAttr))
	if shape == nil || shape.Type != "IFCPRODUCTDEFINITIONSHAPE" {
		return out
	}

	// IfcProductDefinitionShape: Representations(2);
	// IfcShapeRepresentation: Items(3)
	for _, repRef := range shape.Attr(2).Items() {
		rep := k.model.Deref(repRef)
		if rep == nil || rep.Type != "IFCSHAPEREPRESENTATION" {
			continue
		}
		for _, itemRef := range rep.Attr(3).Items() {
			k.tessellateItem(k.model.Deref(itemRef), placement, out)
		}
	}
	return out
}

package takeoff

import (
	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/pkg/geometry"
	"github.com/rverbeek/ifctakeoff/pkg/ifc"
)

// grossVolumeCandidates are the quantity names accepted as a gross
// building or storey volume
var grossVolumeCandidates = []string{"GrossVolume", "BrutoInhoud", "Volume"}

// EstimateGrossVolume resolves the gross enclosed volume of the
// building envelope. Tiers are consulted in order and the first
// positive result wins:
//
//  1. a gross volume quantity on a building entity
//  2. the sum of gross volume quantities over all storeys
//  3. the convex hull of the envelope element vertices
//  4. the bounding box of the envelope element vertices
//
// With no quantities and no envelope geometry the result is (0, None).
func EstimateGrossVolume(model *ifc.Model, caps Capabilities, logger *zap.Logger) (float64, string) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, building := range model.ByType(buildingTypes...) {
		if v, ok := ResolveQuantity(building, grossVolumeCandidates); ok {
			return v, MethodBuildingQuantity
		}
	}

	storeySum, found := 0.0, false
	for _, storey := range model.ByType(storeyTypes...) {
		if v, ok := ResolveQuantity(storey, grossVolumeCandidates); ok {
			storeySum += v
			found = true
		}
	}
	if found && storeySum > 0 {
		return storeySum, MethodStoreySum
	}

	vertices := collectEnvelopeVertices(model, caps)
	if len(vertices) == 0 {
		return 0.0, MethodNone
	}

	if caps.ConvexHull {
		if v := geometry.ConvexHullVolume(vertices); v > 0 {
			return v, MethodConvexHull
		}
		logger.Debug("degenerate envelope hull, falling back to bounding box",
			zap.Int("vertices", len(vertices)))
	}
	return geometry.BoundingBoxOf(vertices).Volume(), MethodBoundingBox
}

// collectEnvelopeVertices gathers the mesh vertices of all envelope
// elements: walls that are external or carry no IsExternal flag (absent
// means assume external), plus every slab and roof
func collectEnvelopeVertices(model *ifc.Model, caps Capabilities) []geometry.Vector3 {
	if !caps.GeometryAvailable() {
		return nil
	}

	var vertices []geometry.Vector3
	add := func(e *ifc.Entity) {
		m := caps.Tessellator.Tessellate(e)
		vertices = append(vertices, m.Vertices...)
	}

	for _, wall := range model.ByType(wallTypes...) {
		if external, known := wall.IsExternal(); known && !external {
			continue
		}
		add(wall)
	}
	for _, slab := range model.ByType(slabTypes...) {
		add(slab)
	}
	for _, roof := range model.ByType(roofTypes...) {
		add(roof)
	}
	return vertices
}

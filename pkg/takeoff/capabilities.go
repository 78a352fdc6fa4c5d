package takeoff

import "github.com/rverbeek/ifctakeoff/pkg/kernel"

// Capabilities is the enumerated capability set of one takeoff run,
// resolved once at startup and threaded into every component that needs
// it. A nil Tessellator means geometry is unavailable for the whole
// run; callers never re-probe per entity.
type Capabilities struct {
	Tessellator kernel.Tessellator
	MeshRepair  bool
	ConvexHull  bool
}

// FullCapabilities enables every estimation tier on top of the given
// tessellator
func FullCapabilities(t kernel.Tessellator) Capabilities {
	return Capabilities{Tessellator: t, MeshRepair: true, ConvexHull: true}
}

// GeometryAvailable reports whether geometric fallbacks can run
func (c Capabilities) GeometryAvailable() bool {
	return c.Tessellator != nil
}

package takeoff

import (
	"strings"

	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
	"github.com/rverbeek/ifctakeoff/pkg/mesh"
)

// netVolumeCandidates are the quantity names accepted as a net space
// volume, in preference order
var netVolumeCandidates = []string{"NetVolume", "Volume"}

// AggregateNetVolume resolves a net volume for every space entity and
// sums them. Each space yields exactly one row: an authoritative
// quantity when present, a geometric estimate when the tessellator is
// available, and a zero-valued Unavail row otherwise. The total is the
// sum of the resolved (unrounded) volumes.
func AggregateNetVolume(model *ifc.Model, caps Capabilities, logger *zap.Logger) (float64, []SpaceRow) {
	if logger == nil {
		logger = zap.NewNop()
	}

	total := 0.0
	var rows []SpaceRow

	for _, space := range model.ByType(spaceTypes...) {
		name := strings.TrimSpace(space.Name())
		if name == "" {
			name = space.GlobalID()
		}

		volume, ok := ResolveQuantity(space, netVolumeCandidates)
		method := MethodQuantity
		switch {
		case ok:
		case caps.GeometryAvailable():
			m := caps.Tessellator.Tessellate(space)
			if m.IsEmpty() {
				volume = 0.0
				method = MethodUnavailable
				logger.Debug("space has no usable geometry",
					zap.String("space", name))
				break
			}
			volume = mesh.EstimateVolume(m, caps.MeshRepair)
			method = MethodGeometry
			logger.Debug("space volume estimated from geometry",
				zap.String("space", name),
				zap.Int("triangles", m.TriangleCount()),
				zap.Float64("volume", volume))
		default:
			volume = 0.0
			method = MethodUnavailable
			logger.Debug("no quantity data and no geometry for space",
				zap.String("space", name))
		}

		total += volume
		rows = append(rows, SpaceRow{
			IfcType:  "IfcSpace",
			Name:     name,
			GlobalID: space.GlobalID(),
			Volume:   Round3(volume),
			Method:   method,
		})
	}
	return total, rows
}

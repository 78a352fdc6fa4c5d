// Package takeoff resolves net and gross building volumes from a loaded
// IFC model. Authoritative quantity data always wins over derived
// geometric estimates; every figure carries a method tag recording how
// it was produced, so consumers can audit confidence without the
// computation ever halting on bad data.
package takeoff

import (
	"math"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
)

// Method tags attached to resolved volumes
const (
	MethodQuantity         = "Quantity(Net/Volume)"
	MethodGeometry         = "Geometry(mesh)"
	MethodUnavailable      = "Unavail"
	MethodBuildingQuantity = "IfcBuilding:GrossVolume"
	MethodStoreySum        = "Σ Storey:GrossVolume"
	MethodConvexHull       = "ConvexHull(external)"
	MethodBoundingBox      = "BoundingBox(external)"
	MethodNone             = "None"
)

// Schema types the takeoff walks
var (
	spaceTypes    = []string{"IFCSPACE"}
	buildingTypes = []string{"IFCBUILDING"}
	storeyTypes   = []string{"IFCBUILDINGSTOREY"}
	wallTypes     = []string{"IFCWALLSTANDARDCASE", "IFCWALL"}
	slabTypes     = []string{"IFCSLAB"}
	roofTypes     = []string{"IFCROOF"}
)

// SpaceRow is one line of the per-space table: every space entity
// yields exactly one row, even when volume resolution fails.
type SpaceRow struct {
	IfcType  string
	Name     string
	GlobalID string
	Volume   float64 // cubic meters, rounded to 3 decimals
	Method   string
}

// Summary is the one-row takeoff summary
type Summary struct {
	Timestamp   time.Time
	SourceFile  string
	GrossVolume float64
	GrossMethod string
	NetVolume   float64
	SpaceCount  int
}

// Result is a complete volume takeoff
type Result struct {
	Summary Summary
	Spaces  []SpaceRow
}

// Run performs the full takeoff over a loaded model. The timestamp is
// injected by the caller so repeated runs over an unchanged model
// produce identical output.
func Run(model *ifc.Model, now time.Time, caps Capabilities, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	net, rows := AggregateNetVolume(model, caps, logger)
	gross, grossMethod := EstimateGrossVolume(model, caps, logger)

	return &Result{
		Summary: Summary{
			Timestamp:   now,
			SourceFile:  filepath.Base(model.Path),
			GrossVolume: Round3(gross),
			GrossMethod: grossMethod,
			NetVolume:   Round3(net),
			SpaceCount:  len(rows),
		},
		Spaces: rows,
	}
}

// Round3 rounds a volume to 3 decimals for reporting
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

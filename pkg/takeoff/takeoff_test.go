package takeoff

import (
	"reflect"
	"testing"
	"time"

	"github.com/rverbeek/ifctakeoff/pkg/kernel"
)

const fullBuilding = threeSpaces + `
#4=IFCBUILDING('BLDG000000000000000001',$,'Main',$,$,$,$,$,$,$,$,$);
#40=IFCQUANTITYVOLUME('BrutoInhoud',$,$,950.25);
#41=IFCELEMENTQUANTITY('QSET000000000000000099',$,'NEN2580',$,$,(#40));
#42=IFCRELDEFINESBYPROPERTIES('REL0000000000000000099',$,$,$,(#4),#41);
`

func TestRun(t *testing.T) {
	model := parseModel(t, fullBuilding)
	k, err := kernel.NewSPF(model)
	if err != nil {
		t.Fatalf("NewSPF failed: %v", err)
	}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	result := Run(model, now, FullCapabilities(k), nil)

	s := result.Summary
	if s.GrossVolume != 950.25 || s.GrossMethod != MethodBuildingQuantity {
		t.Errorf("gross: got %v / %q", s.GrossVolume, s.GrossMethod)
	}
	// 12.5 from quantities plus a 1/6 m3 tetrahedron, rounded
	if s.NetVolume != 12.667 {
		t.Errorf("net: expected 12.667, got %v", s.NetVolume)
	}
	if s.SpaceCount != 3 || len(result.Spaces) != 3 {
		t.Errorf("expected 3 spaces, got %d / %d", s.SpaceCount, len(result.Spaces))
	}
	if !s.Timestamp.Equal(now) {
		t.Errorf("timestamp not taken from the caller: %v", s.Timestamp)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	model := parseModel(t, fullBuilding)
	k, _ := kernel.NewSPF(model)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	a := Run(model, now, FullCapabilities(k), nil)
	b := Run(model, now, FullCapabilities(k), nil)

	if !reflect.DeepEqual(a, b) {
		t.Error("repeated runs over an unchanged model must be identical")
	}
}

func TestRound3(t *testing.T) {
	cases := []struct{ in, out float64 }{
		{12.6666666, 12.667},
		{0.0004, 0.0},
		{950.25, 950.25},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round3(c.in); got != c.out {
			t.Errorf("Round3(%v): expected %v, got %v", c.in, c.out, got)
		}
	}
}

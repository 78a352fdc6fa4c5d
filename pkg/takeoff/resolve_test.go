package takeoff

import (
	"strings"
	"testing"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
)

func parseModel(t *testing.T, body string) *ifc.Model {
	t.Helper()
	spf := "ISO-10303-21;\nHEADER;\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		body + "ENDSEC;\nEND-ISO-10303-21;\n"
	model, err := ifc.Parse(strings.NewReader(spf))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return model
}

func TestResolveQuantityDirectValue(t *testing.T) {
	model := parseModel(t, `
#1=IFCSPACE('SPACE00000000000000001',$,'Office',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NetVolume',$,$,12.5);
#11=IFCELEMENTQUANTITY('QSET000000000000000001',$,'Qto_SpaceBaseQuantities',$,$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#11);
`)
	space := model.ByType("IFCSPACE")[0]

	// The quantity wins regardless of geometry availability
	v, ok := ResolveQuantity(space, []string{"NetVolume", "Volume"})
	if !ok {
		t.Fatal("expected a resolved quantity")
	}
	if v != 12.5 {
		t.Errorf("expected 12.5, got %v", v)
	}
}

func TestResolveQuantityCaseInsensitiveTieBreak(t *testing.T) {
	model := parseModel(t, `
#1=IFCSPACE('SPACE00000000000000001',$,'Office',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NETVOLUME',$,$,7.25);
#11=IFCELEMENTQUANTITY('QSET000000000000000001',$,'Qto',$,$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#11);
`)
	space := model.ByType("IFCSPACE")[0]

	v, ok := ResolveQuantity(space, []string{"NetVolume"})
	if !ok || v != 7.25 {
		t.Errorf("case-insensitive match failed: got %v, %v", v, ok)
	}
}

func TestResolveQuantityExactMatchWins(t *testing.T) {
	// Two volume quantities: a case-insensitive match listed first and
	// an exact match listed second. The exact match must win.
	model := parseModel(t, `
#1=IFCSPACE('SPACE00000000000000001',$,'Office',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NETVOLUME',$,$,1.0);
#11=IFCQUANTITYVOLUME('NetVolume',$,$,2.0);
#12=IFCELEMENTQUANTITY('QSET000000000000000001',$,'Qto',$,$,(#10,#11));
#13=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#12);
`)
	space := model.ByType("IFCSPACE")[0]

	v, _ := ResolveQuantity(space, []string{"NetVolume"})
	if v != 2.0 {
		t.Errorf("exact match should win over case-insensitive: got %v", v)
	}
}

func TestResolveQuantityFromPropertySet(t *testing.T) {
	model := parseModel(t, `
#1=IFCBUILDING('BLDG000000000000000001',$,'Main',$,$,$,$,$,$,$,$,$);
#10=IFCPROPERTYSINGLEVALUE('BrutoInhoud',$,IFCVOLUMEMEASURE(950.25),$);
#11=IFCPROPERTYSET('PSET000000000000000001',$,'NEN2580',$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#11);
`)
	building := model.ByType("IFCBUILDING")[0]

	v, ok := ResolveQuantity(building, []string{"GrossVolume", "BrutoInhoud", "Volume"})
	if !ok || v != 950.25 {
		t.Errorf("property set lookup failed: got %v, %v", v, ok)
	}
}

func TestResolveQuantityMalformedIsSkipped(t *testing.T) {
	// The first relationship points at a volume quantity without any
	// numeric value; scanning must continue to the second one.
	model := parseModel(t, `
#1=IFCSPACE('SPACE00000000000000001',$,'Office',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NetVolume',$,$,$);
#11=IFCELEMENTQUANTITY('QSET000000000000000001',$,'Broken',$,$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#11);
#20=IFCQUANTITYVOLUME('NetVolume',$,$,3.75);
#21=IFCELEMENTQUANTITY('QSET000000000000000002',$,'Qto',$,$,(#20));
#22=IFCRELDEFINESBYPROPERTIES('REL0000000000000000002',$,$,$,(#1),#21);
`)
	space := model.ByType("IFCSPACE")[0]

	v, ok := ResolveQuantity(space, []string{"NetVolume"})
	if !ok || v != 3.75 {
		t.Errorf("expected malformed set to be skipped: got %v, %v", v, ok)
	}
}

func TestResolveQuantityAbsent(t *testing.T) {
	model := parseModel(t, `
#1=IFCSPACE('SPACE00000000000000001',$,'Office',$,$,$,$,$,$,$,$,$);
`)
	space := model.ByType("IFCSPACE")[0]

	if _, ok := ResolveQuantity(space, []string{"NetVolume", "Volume"}); ok {
		t.Error("expected absent, not a zero value")
	}
}

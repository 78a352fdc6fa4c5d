package ifc

import (
	"strings"
	"testing"
)

const sampleSPF = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('sample.ifc','2024-05-02T10:00:00',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
/* spaces */
#1=IFCSPACE('3yQm7PLZz1heVwFHnOfXqa',$,'Living room',$,$,$,$,$,$,$,$,$);
#2=IFCSPACE('0Bq2hLnmz4AuXbRgT5WcYd',$,'   ',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NetVolume',$,$,12.5);
#11=IFCELEMENTQUANTITY('2x5KfD8mH1JvQwPnRsTzUb',$,'Qto_SpaceBaseQuantities',$,$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('1aBcDeFgH2IjKlMnOpQrSt',$,$,$,(#1),#11);
/* wall with IsExternal */
#20=IFCWALL('2GhJkLmNp3QrStUvWxYzAb',$,'South wall',$,$,$,$,$,$);
#21=IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.F.),$);
#22=IFCPROPERTYSET('3cDeFgHiJ4KlMnOpQrStUv',$,'Pset_WallCommon',$,(#21));
#23=IFCRELDEFINESBYPROPERTIES('0uVwXyZaB1CdEfGhIjKlMn',$,$,$,(#20),#22);
/* building with wrapped property volume */
#30=IFCBUILDING('1pQrStUvW2XyZaBcDeFgHi',$,'Main building',$,$,$,$,$,$,$,$,$);
#31=IFCPROPERTYSINGLEVALUE('BrutoInhoud',$,IFCVOLUMEMEASURE(950.25),$);
#32=IFCPROPERTYSET('2dEfGhIjK3LmNoPqRsTuVw',$,'NEN2580',$,(#31));
#33=IFCRELDEFINESBYPROPERTIES('3hIjKlMnO4PqRsTuVwXyZa',$,$,$,(#30),#32);
ENDSEC;
END-ISO-10303-21;
`

func parseSample(t *testing.T) *Model {
	t.Helper()
	model, err := Parse(strings.NewReader(sampleSPF))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return model
}

func TestParseRejectsNonSTEPInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("just some text")); err == nil {
		t.Error("expected an error for non-STEP input")
	}
}

func TestParseRejectsEmptyDataSection(t *testing.T) {
	_, err := Parse(strings.NewReader("ISO-10303-21;\nHEADER;\nENDSEC;\nDATA;\nENDSEC;\n"))
	if err == nil {
		t.Error("expected an error for a model without instances")
	}
}

func TestByTypeReturnsModelOrder(t *testing.T) {
	model := parseSample(t)

	spaces := model.ByType("IfcSpace")
	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}
	if spaces[0].GlobalID() != "3yQm7PLZz1heVwFHnOfXqa" {
		t.Errorf("unexpected first space id: %s", spaces[0].GlobalID())
	}
	if spaces[0].Name() != "Living room" {
		t.Errorf("unexpected space name: %q", spaces[0].Name())
	}
}

func TestEntityDefinitionsQuantitySet(t *testing.T) {
	model := parseSample(t)

	space := model.ByType("IFCSPACE")[0]
	defs := space.Definitions()
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	def := defs[0]
	if def.Kind != DefinitionQuantitySet {
		t.Fatalf("expected a quantity set, got kind %d", def.Kind)
	}
	if def.Name != "Qto_SpaceBaseQuantities" {
		t.Errorf("unexpected set name: %q", def.Name)
	}
	if len(def.Quantities) != 1 {
		t.Fatalf("expected 1 quantity, got %d", len(def.Quantities))
	}
	q := def.Quantities[0]
	if q.Name != "NetVolume" || !q.IsVolume {
		t.Errorf("unexpected quantity: %+v", q)
	}
	if q.Value == nil || *q.Value != 12.5 {
		t.Errorf("expected direct value 12.5, got %+v", q.Value)
	}
}

func TestEntityDefinitionsWrappedNominal(t *testing.T) {
	model := parseSample(t)

	building := model.ByType("IFCBUILDING")[0]
	defs := building.Definitions()
	if len(defs) != 1 || defs[0].Kind != DefinitionPropertySet {
		t.Fatalf("expected 1 property set, got %+v", defs)
	}
	p := defs[0].Properties[0]
	if p.Name != "BrutoInhoud" {
		t.Errorf("unexpected property name: %q", p.Name)
	}
	if p.Number == nil || *p.Number != 950.25 {
		t.Errorf("expected wrapped nominal 950.25, got %+v", p.Number)
	}
}

func TestWallIsExternal(t *testing.T) {
	model := parseSample(t)

	wall := model.ByType("IFCWALL")[0]
	value, known := wall.IsExternal()
	if !known {
		t.Fatal("expected IsExternal to be known")
	}
	if value {
		t.Error("expected IsExternal=false")
	}

	// A space carries no IsExternal property
	space := model.ByType("IFCSPACE")[0]
	if _, known := space.IsExternal(); known {
		t.Error("expected IsExternal to be unknown for a space")
	}
}

func TestAttrParsing(t *testing.T) {
	inst, err := parseInstance(`#7=IFCTEST('it''s',.T.,-1.5E-2,(#1,#2),$,*,IFCLABEL('x'))`)
	if err != nil {
		t.Fatalf("parseInstance failed: %v", err)
	}
	if inst.ID != 7 || inst.Type != "IFCTEST" {
		t.Fatalf("unexpected instance header: %+v", inst)
	}
	if s, _ := inst.Attr(0).String(); s != "it's" {
		t.Errorf("string escape failed: %q", s)
	}
	if b, ok := inst.Attr(1).Bool(); !ok || !b {
		t.Error("enum bool failed")
	}
	if n, ok := inst.Attr(2).Float(); !ok || n != -0.015 {
		t.Errorf("scientific number failed: %v", n)
	}
	if items := inst.Attr(3).Items(); len(items) != 2 {
		t.Errorf("list parsing failed: %+v", items)
	}
	if inst.Attr(4).Kind != AttrNull || inst.Attr(5).Kind != AttrDerived {
		t.Error("null/derived parsing failed")
	}
	if inst.Attr(6).Kind != AttrTyped {
		t.Error("typed value parsing failed")
	}
}

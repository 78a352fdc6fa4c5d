package takeoff

import (
	"strings"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
)

// ResolveQuantity looks up a named volume quantity on an entity via its
// attached definitions, scanned in model-native order. It returns
// ok=false when nothing matches, so callers can distinguish "no data"
// from "data is zero". Malformed definitions never fail the lookup;
// they simply do not match.
func ResolveQuantity(e *ifc.Entity, names []string) (float64, bool) {
	for _, def := range e.Definitions() {
		switch def.Kind {
		case ifc.DefinitionQuantitySet:
			if v, ok := volumeFromQuantitySet(def, names); ok {
				return v, true
			}
		case ifc.DefinitionPropertySet:
			if v, ok := volumeFromPropertySet(def, names); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// volumeFromQuantitySet scans a quantity set for a volume-typed
// quantity matching one of the candidate names. Case-sensitive matches
// win over case-insensitive ones; a direct numeric field wins over a
// wrapped nominal value.
func volumeFromQuantitySet(def *ifc.Definition, names []string) (float64, bool) {
	for _, exact := range []bool{true, false} {
		for _, q := range def.Quantities {
			if !q.IsVolume || !nameMatches(q.Name, names, exact) {
				continue
			}
			if q.Value != nil {
				return *q.Value, true
			}
			if q.Nominal != nil {
				return *q.Nominal, true
			}
		}
	}
	return 0, false
}

func volumeFromPropertySet(def *ifc.Definition, names []string) (float64, bool) {
	for _, exact := range []bool{true, false} {
		for _, p := range def.Properties {
			if p.Number == nil || !nameMatches(p.Name, names, exact) {
				continue
			}
			return *p.Number, true
		}
	}
	return 0, false
}

func nameMatches(name string, candidates []string, exact bool) bool {
	for _, c := range candidates {
		if exact && name == c {
			return true
		}
		if !exact && strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

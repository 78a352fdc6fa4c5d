package ifc

// DefinitionKind discriminates the relating definition of an
// IfcRelDefinesByProperties relationship
type DefinitionKind int

const (
	// DefinitionOther is a definition the takeoff does not interpret
	DefinitionOther DefinitionKind = iota
	// DefinitionQuantitySet is an IfcElementQuantity
	DefinitionQuantitySet
	// DefinitionPropertySet is an IfcPropertySet
	DefinitionPropertySet
)

// Definition is one property or quantity definition attached to an
// entity, represented as a tagged variant so callers dispatch on Kind
// instead of probing for fields.
type Definition struct {
	Kind       DefinitionKind
	Name       string
	Quantities []Quantity
	Properties []Property
}

// Quantity is a single physical quantity inside a quantity set.
// Value carries the direct numeric field (VolumeValue and friends);
// Nominal carries a wrapped nominal value when no direct field parsed.
type Quantity struct {
	Name     string
	IsVolume bool
	Value    *float64
	Nominal  *float64
}

// Property is a single value inside a property set. Number and Bool are
// nil when the nominal value is absent or of another type.
type Property struct {
	Name   string
	Number *float64
	Bool   *bool
}

// Attribute positions shared by the instances the resolver walks.
// IfcRelDefinesByProperties: RelatedObjects(4), RelatingPropertyDefinition(5).
// IfcElementQuantity: Name(2), Quantities(5).
// IfcPropertySet: Name(2), HasProperties(4).
const (
	relRelatedObjectsAttr  = 4
	relRelatingDefAttr     = 5
	quantitySetNameAttr    = 2
	quantitySetListAttr    = 5
	propertySetNameAttr    = 2
	propertySetListAttr    = 4
	namedItemNameAttr      = 0
	quantityVolumeAttr     = 3
	propertyNominalAttr    = 2
)

// resolveDefinitions walks all IfcRelDefinesByProperties relationships
// once at load time and attaches the materialized definitions to their
// related entities in model-native (file) order. Malformed
// relationships contribute nothing and never fail the load.
func (m *Model) resolveDefinitions() {
	for _, id := range m.order {
		rel := m.instances[id]
		if rel.Type != "IFCRELDEFINESBYPROPERTIES" {
			continue
		}

		def := m.materializeDefinition(m.Deref(rel.Attr(relRelatingDefAttr)))
		if def == nil {
			continue
		}

		for _, item := range rel.Attr(relRelatedObjectsAttr).Items() {
			if target, ok := item.RefID(); ok {
				m.defs[target] = append(m.defs[target], def)
			}
		}
	}
}

func (m *Model) materializeDefinition(inst *Instance) *Definition {
	if inst == nil {
		return nil
	}

	switch inst.Type {
	case "IFCELEMENTQUANTITY":
		def := &Definition{Kind: DefinitionQuantitySet}
		def.Name, _ = inst.Attr(quantitySetNameAttr).String()
		for _, item := range inst.Attr(quantitySetListAttr).Items() {
			if q, ok := m.materializeQuantity(m.Deref(item)); ok {
				def.Quantities = append(def.Quantities, q)
			}
		}
		return def

	case "IFCPROPERTYSET":
		def := &Definition{Kind: DefinitionPropertySet}
		def.Name, _ = inst.Attr(propertySetNameAttr).String()
		for _, item := range inst.Attr(propertySetListAttr).Items() {
			if p, ok := m.materializeProperty(m.Deref(item)); ok {
				def.Properties = append(def.Properties, p)
			}
		}
		return def

	default:
		name, _ := inst.Attr(quantitySetNameAttr).String()
		return &Definition{Kind: DefinitionOther, Name: name}
	}
}

func (m *Model) materializeQuantity(inst *Instance) (Quantity, bool) {
	if inst == nil {
		return Quantity{}, false
	}

	q := Quantity{IsVolume: inst.Type == "IFCQUANTITYVOLUME"}
	name, ok := inst.Attr(namedItemNameAttr).String()
	if !ok {
		return Quantity{}, false
	}
	q.Name = name

	if q.IsVolume {
		value := inst.Attr(quantityVolumeAttr)
		if value.Kind == AttrNumber {
			q.Value = &value.Num
		} else if n, ok := value.Float(); ok {
			q.Nominal = &n
		}
	}
	return q, true
}

func (m *Model) materializeProperty(inst *Instance) (Property, bool) {
	if inst == nil || inst.Type != "IFCPROPERTYSINGLEVALUE" {
		return Property{}, false
	}

	p := Property{}
	name, ok := inst.Attr(namedItemNameAttr).String()
	if !ok {
		return Property{}, false
	}
	p.Name = name

	nominal := inst.Attr(propertyNominalAttr)
	if n, ok := nominal.Float(); ok {
		p.Number = &n
	} else if b, ok := nominal.Bool(); ok {
		p.Bool = &b
	}
	return p, true
}

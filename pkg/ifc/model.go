// Package ifc loads IFC building models from STEP physical files (SPF)
// and exposes entity lookup by schema type together with the attached
// property and quantity definitions.
package ifc

import "strings"

// Model is a loaded IFC building model. It is read-only after loading;
// concurrent lookups are safe.
type Model struct {
	// Path is the file the model was loaded from
	Path string

	instances map[int]*Instance
	order     []int
	defs      map[int][]*Definition
}

// Instance is a raw STEP instance: #id = TYPE(attributes)
type Instance struct {
	ID    int
	Type  string
	Attrs []Attr
}

// Attr returns the i-th attribute, or a null attribute when the
// instance carries fewer fields than the schema would suggest
func (inst *Instance) Attr(i int) Attr {
	if inst == nil || i < 0 || i >= len(inst.Attrs) {
		return Attr{}
	}
	return inst.Attrs[i]
}

// Instance resolves a raw instance by id
func (m *Model) Instance(id int) *Instance {
	return m.instances[id]
}

// InstanceCount returns the number of instances in the model
func (m *Model) InstanceCount() int {
	return len(m.order)
}

// Deref follows a reference attribute to its instance, or nil
func (m *Model) Deref(a Attr) *Instance {
	if a.Kind != AttrRef {
		return nil
	}
	return m.instances[a.Ref]
}

// Entity is a model element with identity, display name, and attached
// property/quantity definitions.
type Entity struct {
	inst  *Instance
	model *Model
}

// ByType returns all entities whose schema type matches any of the
// given type names (case-insensitive), in model-native file order.
func (m *Model) ByType(types ...string) []*Entity {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[strings.ToUpper(t)] = true
	}

	var entities []*Entity
	for _, id := range m.order {
		inst := m.instances[id]
		if want[inst.Type] {
			entities = append(entities, &Entity{inst: inst, model: m})
		}
	}
	return entities
}

// ID returns the STEP instance id
func (e *Entity) ID() int {
	return e.inst.ID
}

// Type returns the schema type name, e.g. "IFCSPACE"
func (e *Entity) Type() string {
	return e.inst.Type
}

// GlobalID returns the globally unique identifier of the entity
func (e *Entity) GlobalID() string {
	if s, ok := e.inst.Attr(0).String(); ok {
		return s
	}
	return ""
}

// Name returns the optional human-readable name, "" when absent
func (e *Entity) Name() string {
	if s, ok := e.inst.Attr(2).String(); ok {
		return s
	}
	return ""
}

// Definitions returns the property and quantity definitions attached to
// the entity via IfcRelDefinesByProperties, in model-native order
func (e *Entity) Definitions() []*Definition {
	return e.model.defs[e.inst.ID]
}

// IsExternal reports the IsExternal property attached to the entity
// (walls carry it in Pset_WallCommon). known is false when no boolean
// IsExternal property exists.
func (e *Entity) IsExternal() (value, known bool) {
	for _, def := range e.Definitions() {
		if def.Kind != DefinitionPropertySet {
			continue
		}
		for _, p := range def.Properties {
			if p.Name == "IsExternal" && p.Bool != nil {
				return *p.Bool, true
			}
		}
	}
	return false, false
}

// Instance exposes the raw STEP instance, used by the geometry kernel
func (e *Entity) Instance() *Instance {
	return e.inst
}

// Model returns the model the entity belongs to
func (e *Entity) Model() *Model {
	return e.model
}

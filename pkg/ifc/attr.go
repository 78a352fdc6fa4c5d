package ifc

// AttrKind discriminates STEP attribute values
type AttrKind int

const (
	// AttrNull is an unset attribute ($)
	AttrNull AttrKind = iota
	// AttrDerived is a derived attribute (*)
	AttrDerived
	// AttrNumber is an integer or real literal
	AttrNumber
	// AttrString is a quoted string
	AttrString
	// AttrEnum is an enumeration literal such as .T. or .ELEMENT.
	AttrEnum
	// AttrRef is an instance reference (#id)
	AttrRef
	// AttrList is a parenthesized aggregate
	AttrList
	// AttrTyped is a wrapped value such as IFCVOLUMEMEASURE(12.5)
	AttrTyped
)

// Attr is a single STEP attribute value
type Attr struct {
	Kind AttrKind
	Num  float64
	Str  string // string payload, enum literal, or wrapping type name
	Ref  int
	List []Attr // aggregate members, or the wrapped value(s) of a typed attr
}

// Float extracts a numeric value, unwrapping typed values like
// IFCVOLUMEMEASURE(12.5)
func (a Attr) Float() (float64, bool) {
	switch a.Kind {
	case AttrNumber:
		return a.Num, true
	case AttrTyped:
		if len(a.List) == 1 {
			return a.List[0].Float()
		}
	}
	return 0, false
}

// Bool extracts a boolean from .T./.F. enums, unwrapping typed values
// like IFCBOOLEAN(.T.)
func (a Attr) Bool() (bool, bool) {
	switch a.Kind {
	case AttrEnum:
		switch a.Str {
		case "T", "TRUE":
			return true, true
		case "F", "FALSE":
			return false, true
		}
	case AttrTyped:
		if len(a.List) == 1 {
			return a.List[0].Bool()
		}
	}
	return false, false
}

// String extracts a string payload
func (a Attr) String() (string, bool) {
	if a.Kind == AttrString {
		return a.Str, true
	}
	return "", false
}

// RefID extracts an instance reference id
func (a Attr) RefID() (int, bool) {
	if a.Kind == AttrRef {
		return a.Ref, true
	}
	return 0, false
}

// Items returns the aggregate members of a list attribute
func (a Attr) Items() []Attr {
	if a.Kind == AttrList {
		return a.List
	}
	return nil
}

package debugdiff

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Operation defines the kind of difference a Delta describes
type Operation string

const (
	// DTTypeMismatch means left & right are different kinds of value, so
	// there's nothing further to compare
	DTTypeMismatch = Operation("type")
	// DTStructMismatch means two structs differ in name or field names
	DTStructMismatch = Operation("struct")
	// DTTupleMismatch means two tuples have different arity
	DTTupleMismatch = Operation("tuple")
	// DTTupleStructMismatch means two tuple structs differ in name or arity
	DTTupleStructMismatch = Operation("tuple_struct")
	// DTUnitStructMismatch means two unit structs have different names
	DTUnitStructMismatch = Operation("unit_struct")
	// DTBoolMismatch is a change of a boolean leaf
	DTBoolMismatch = Operation("bool")
	// DTNumberMismatch is a change of a number leaf's literal text
	DTNumberMismatch = Operation("number")
	// DTStrMismatch is a change of a string leaf
	DTStrMismatch = Operation("string")
	// DTInsertAt is an element of a list, set or option only present on the
	// right
	DTInsertAt = Operation("insert")
	// DTRemoveAt is an element of a list, set or option only present on the
	// left
	DTRemoveAt = Operation("remove")
	// DTInsertPair is a map entry only present on the right
	DTInsertPair = Operation("insert_pair")
	// DTRemovePair is a map entry only present on the left
	DTRemovePair = Operation("remove_pair")
)

// Delta represents a single difference between a left & right document
// delta values point into the compared trees, they are not copies
type Delta struct {
	// the kind of difference
	Type Operation
	// Path is the location of the difference from the root of both trees
	Path Path
	// Left is the value on the left side. For DTRemoveAt & DTRemovePair it's
	// the removed value. unset for insertions
	Left Value
	// Right is the value on the right side. For DTInsertAt & DTInsertPair it's
	// the inserted value. unset for removals
	Right Value
	// Index is the merge position of DTInsertAt & DTRemoveAt changes
	Index int
	// Key is the map key of DTInsertPair & DTRemovePair changes
	Key Value
}

// Deltas is a sequence of changes
type Deltas []*Delta

// MarshalJSON implements a custom JSON Marshaller, rendering values in
// debug-print notation
func (d *Delta) MarshalJSON() ([]byte, error) {
	v := struct {
		Type  Operation `json:"type"`
		Path  Path      `json:"path"`
		Index *int      `json:"index,omitempty"`
		Key   string    `json:"key,omitempty"`
		Left  string    `json:"left,omitempty"`
		Right string    `json:"right,omitempty"`
	}{
		Type:  d.Type,
		Path:  d.Path,
		Left:  valueString(d.Left),
		Right: valueString(d.Right),
		Key:   valueString(d.Key),
	}
	if d.Type == DTInsertAt || d.Type == DTRemoveAt {
		idx := d.Index
		v.Index = &idx
	}
	return json.Marshal(v)
}

func valueString(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Addr is a single step in a Path
type Addr interface {
	String() string
	addr()
}

// FieldAddr addresses a named struct field
type FieldAddr string

// IndexAddr addresses a positional element, with positions on the left and
// right side
type IndexAddr struct {
	Left, Right int
}

// KeyAddr addresses the value of a map entry by its key
type KeyAddr struct {
	Key Value
}

func (FieldAddr) addr() {}
func (IndexAddr) addr() {}
func (KeyAddr) addr()   {}

// String implements the Addr interface
func (a FieldAddr) String() string { return "." + string(a) }

// String implements the Addr interface
func (a IndexAddr) String() string {
	if a.Left == a.Right {
		return "[" + strconv.Itoa(a.Left) + "]"
	}
	return "[" + strconv.Itoa(a.Left) + "|" + strconv.Itoa(a.Right) + "]"
}

// String implements the Addr interface
func (a KeyAddr) String() string { return "{" + a.Key.String() + "}" }

// Path is a list of addresses from the root of a tree. The root path is nil
type Path []Addr

// String renders a path with "$" as the root, eg: $.points[0]{"x"}
func (p Path) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('$')
	for _, a := range p {
		buf.WriteString(a.String())
	}
	return buf.String()
}

// MarshalJSON encodes a path as a string
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

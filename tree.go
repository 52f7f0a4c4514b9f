package debugdiff

import (
	"slices"
)

// Kind defines all of the variants in our universe, the types of data we will
// encounter while generating a diff. Declaration order matters: it's the
// first criteria of the total order over values
type Kind uint8

const (
	ListKind Kind = iota
	MapKind
	OptionKind
	SetKind
	StructKind
	TupleKind
	TupleStructKind
	UnitStructKind
	BoolKind
	NumberKind
	StrKind
)

// kinds lists every variant, in order
var kinds = [...]Kind{
	ListKind, MapKind, OptionKind, SetKind, StructKind, TupleKind,
	TupleStructKind, UnitStructKind, BoolKind, NumberKind, StrKind,
}

var kindNames = [...]string{
	ListKind:        "list",
	MapKind:         "map",
	OptionKind:      "option",
	SetKind:         "set",
	StructKind:      "struct",
	TupleKind:       "tuple",
	TupleStructKind: "tuple struct",
	UnitStructKind:  "unit struct",
	BoolKind:        "bool",
	NumberKind:      "number",
	StrKind:         "string",
}

// String returns a lowercase, human readable name for the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node in a parsed document tree. The set of implementations is
// closed: List, Map, Option, Set, Struct, Tuple, TupleStruct, UnitStruct,
// Bool, Number and Str. values are immutable once constructed
type Value interface {
	// Kind reports which variant this value is
	Kind() Kind
	// String renders the value in debug-print notation
	String() string
	value()
}

// List is an ordered sequence of values, kept in the order given
type List []Value

// Entry is a single key-value pair of a Map
type Entry struct {
	Key   Value
	Value Value
}

// Map is a mapping of unique keys to values, with keys in ascending order.
// Construct with NewMap
type Map struct {
	entries []Entry
}

// Option is an optional value, a nil Value is None
type Option struct {
	Value Value
}

// Set is a collection of unique values in ascending order. Construct with
// NewSet
type Set struct {
	elems []Value
}

// Field is a named member of a Struct
type Field struct {
	Name  string
	Value Value
}

// Struct is a named type with named fields, fields are kept in ascending name
// order. Construct with NewStruct
type Struct struct {
	Name   string
	fields []Field
}

// Tuple is an anonymous fixed-size sequence of values
type Tuple []Value

// TupleStruct is a named fixed-size sequence of values
type TupleStruct struct {
	Name  string
	Elems []Value
}

// UnitStruct is a bare identifier, like an enum unit variant or a marker
// type
type UnitStruct struct {
	Name string
}

// Bool is a boolean leaf
type Bool bool

// Number is a numeric leaf. it holds the literal source text and is never
// parsed, so "1" and "1.0" are different numbers
type Number string

// Str is a string leaf holding the text between the quotes as written
type Str string

func (List) Kind() Kind        { return ListKind }
func (Map) Kind() Kind         { return MapKind }
func (Option) Kind() Kind      { return OptionKind }
func (Set) Kind() Kind         { return SetKind }
func (Struct) Kind() Kind      { return StructKind }
func (Tuple) Kind() Kind       { return TupleKind }
func (TupleStruct) Kind() Kind { return TupleStructKind }
func (UnitStruct) Kind() Kind  { return UnitStructKind }
func (Bool) Kind() Kind        { return BoolKind }
func (Number) Kind() Kind      { return NumberKind }
func (Str) Kind() Kind         { return StrKind }

func (List) value()        {}
func (Map) value()         {}
func (Option) value()      {}
func (Set) value()         {}
func (Struct) value()      {}
func (Tuple) value()       {}
func (TupleStruct) value() {}
func (UnitStruct) value()  {}
func (Bool) value()        {}
func (Number) value()      {}
func (Str) value()         {}

// NewMap creates a map from a list of entries, sorting by key. When a key
// occurs more than once the last entry wins
func NewMap(entries ...Entry) Map {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return Compare(a.Key, b.Key)
	})

	var m Map
	for _, e := range sorted {
		if n := len(m.entries); n > 0 && Equal(m.entries[n-1].Key, e.Key) {
			m.entries[n-1] = e
			continue
		}
		m.entries = append(m.entries, e)
	}
	return m
}

// Len returns the number of entries
func (m Map) Len() int { return len(m.entries) }

// Entries lists map entries in ascending key order. The returned slice is
// shared with the map and must not be modified
func (m Map) Entries() []Entry { return m.entries }

// Get returns the value for key, if present
func (m Map) Get(key Value) (Value, bool) {
	i, ok := slices.BinarySearchFunc(m.entries, key, func(e Entry, k Value) int {
		return Compare(e.Key, k)
	})
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Some wraps a value in a filled Option
func Some(v Value) Option { return Option{Value: v} }

// NewSet creates a set from a list of values, sorting them & dropping
// duplicates
func NewSet(elems ...Value) Set {
	sorted := slices.Clone(elems)
	slices.SortStableFunc(sorted, Compare)
	return Set{elems: slices.CompactFunc(sorted, Equal)}
}

// Len returns the number of elements
func (s Set) Len() int { return len(s.elems) }

// Elems lists set elements in ascending order. The returned slice is shared
// with the set and must not be modified
func (s Set) Elems() []Value { return s.elems }

// Contains reports whether v is a member of the set
func (s Set) Contains(v Value) bool {
	_, ok := slices.BinarySearchFunc(s.elems, v, Compare)
	return ok
}

// NewStruct creates a named struct, sorting fields by name. When a field name
// occurs more than once the last field wins
func NewStruct(name string, fields ...Field) Struct {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b Field) int {
		return compareStrings(a.Name, b.Name)
	})

	s := Struct{Name: name}
	for _, f := range sorted {
		if n := len(s.fields); n > 0 && s.fields[n-1].Name == f.Name {
			s.fields[n-1] = f
			continue
		}
		s.fields = append(s.fields, f)
	}
	return s
}

// Fields lists struct fields in ascending name order. The returned slice is
// shared with the struct and must not be modified
func (s Struct) Fields() []Field { return s.fields }

// Field returns the value of the named field, if present
func (s Struct) Field(name string) (Value, bool) {
	i, ok := slices.BinarySearchFunc(s.fields, name, func(f Field, n string) int {
		return compareStrings(f.Name, n)
	})
	if !ok {
		return nil, false
	}
	return s.fields[i].Value, true
}

// children lists the direct descendants of a value. map keys count as
// children alongside their values
func children(v Value) []Value {
	switch x := v.(type) {
	case List:
		return x
	case Tuple:
		return x
	case TupleStruct:
		return x.Elems
	case Set:
		return x.elems
	case Option:
		if x.Value != nil {
			return []Value{x.Value}
		}
	case Map:
		ch := make([]Value, 0, len(x.entries)*2)
		for _, e := range x.entries {
			ch = append(ch, e.Key, e.Value)
		}
		return ch
	case Struct:
		ch := make([]Value, len(x.fields))
		for i, f := range x.fields {
			ch[i] = f.Value
		}
		return ch
	}
	return nil
}

// walk a tree in top-down (prefix) order. walk uses an explicit stack so
// arbitrarily deep trees are safe to visit. returning false from fn skips
// the children of the visited node
func walk(tree Value, fn func(v Value) bool) {
	stack := []Value{tree}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == nil || !fn(v) {
			continue
		}
		ch := children(v)
		for i := len(ch) - 1; i >= 0; i-- {
			stack = append(stack, ch[i])
		}
	}
}

// NodeCount returns the number of values in a tree, including the root
func NodeCount(tree Value) int {
	n := 0
	walk(tree, func(Value) bool {
		n++
		return true
	})
	return n
}

package debugdiff

import (
	"cmp"
	"fmt"
	"strings"
)

// Compare returns an integer comparing two values under the total order used
// to keep maps & sets canonical. The result will be 0 if a == b, -1 if a < b,
// and +1 if a > b.
//
// values are ordered by kind first, then structurally within a kind:
// sequences lexicographically by element, maps by their sorted entries,
// structs by name then fields, and leaves by their raw value. Compare keeps
// pending comparisons on an explicit stack, trees of any depth are safe
func Compare(a, b Value) int {
	c := &comparison{}
	c.push(a, b)
	for len(c.stack) > 0 {
		t := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		r := t.result
		if t.a != nil {
			r = c.step(t.a, t.b)
		}
		if r != 0 {
			return r
		}
	}
	return 0
}

// Equal reports whether two values are structurally equal
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// ordering is a pending unit of a comparison: either a pair of values or, if
// a is nil, an already known result that applies once everything before it
// compared equal
type ordering struct {
	a, b   Value
	result int
}

type comparison struct {
	stack []ordering
}

func (c *comparison) push(a, b Value) {
	c.stack = append(c.stack, ordering{a: a, b: b})
}

func (c *comparison) pushResult(r int) {
	c.stack = append(c.stack, ordering{result: r})
}

// step compares what it can of a & b right away, scheduling child pairs.
// work is pushed in reverse so it runs in order
func (c *comparison) step(a, b Value) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case ListKind:
		c.pushSeq(a.(List), b.(List))
	case MapKind:
		ae, be := a.(Map).entries, b.(Map).entries
		c.pushResult(cmp.Compare(len(ae), len(be)))
		for i := min(len(ae), len(be)) - 1; i >= 0; i-- {
			c.push(ae[i].Value, be[i].Value)
			c.push(ae[i].Key, be[i].Key)
		}
	case OptionKind:
		ao, bo := a.(Option), b.(Option)
		switch {
		case ao.Value == nil && bo.Value == nil:
			return 0
		case ao.Value == nil:
			return -1
		case bo.Value == nil:
			return 1
		}
		c.push(ao.Value, bo.Value)
	case SetKind:
		c.pushSeq(a.(Set).elems, b.(Set).elems)
	case StructKind:
		as, bs := a.(Struct), b.(Struct)
		if r := compareStrings(as.Name, bs.Name); r != 0 {
			return r
		}
		c.pushResult(cmp.Compare(len(as.fields), len(bs.fields)))
		for i := min(len(as.fields), len(bs.fields)) - 1; i >= 0; i-- {
			c.push(as.fields[i].Value, bs.fields[i].Value)
			c.pushResult(compareStrings(as.fields[i].Name, bs.fields[i].Name))
		}
	case TupleKind:
		c.pushSeq(a.(Tuple), b.(Tuple))
	case TupleStructKind:
		as, bs := a.(TupleStruct), b.(TupleStruct)
		if r := compareStrings(as.Name, bs.Name); r != 0 {
			return r
		}
		c.pushSeq(as.Elems, bs.Elems)
	case UnitStructKind:
		return compareStrings(a.(UnitStruct).Name, b.(UnitStruct).Name)
	case BoolKind:
		ab, bb := bool(a.(Bool)), bool(b.(Bool))
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case NumberKind:
		return compareStrings(string(a.(Number)), string(b.(Number)))
	case StrKind:
		return compareStrings(string(a.(Str)), string(b.(Str)))
	default:
		panic(fmt.Sprintf("unexpected value kind: %d", ka))
	}
	return 0
}

// pushSeq schedules a lexicographic comparison: elements in order, then the
// shorter sequence first
func (c *comparison) pushSeq(a, b []Value) {
	c.pushResult(cmp.Compare(len(a), len(b)))
	for i := min(len(a), len(b)) - 1; i >= 0; i-- {
		c.push(a[i], b[i])
	}
}

func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}

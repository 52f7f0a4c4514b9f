package debugdiff

import (
	"strings"
)

// String methods render values the way a derived debug printer would. empty
// structs, tuple structs & sets print ambiguously (as a unit struct or an empty
// map), the same as the printers that produce our input

func (l List) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('[')
	writeSeq(buf, l)
	buf.WriteByte(']')
	return buf.String()
}

func (m Map) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.Key.String())
		buf.WriteString(": ")
		buf.WriteString(e.Value.String())
	}
	buf.WriteByte('}')
	return buf.String()
}

func (o Option) String() string {
	if o.Value == nil {
		return "None"
	}
	return "Some(" + o.Value.String() + ")"
}

func (s Set) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('{')
	writeSeq(buf, s.elems)
	buf.WriteByte('}')
	return buf.String()
}

func (s Struct) String() string {
	if len(s.fields) == 0 {
		return s.Name
	}
	buf := &strings.Builder{}
	buf.WriteString(s.Name)
	buf.WriteString(" { ")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value.String())
	}
	buf.WriteString(" }")
	return buf.String()
}

func (t Tuple) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('(')
	writeSeq(buf, t)
	// a single element tuple needs a trailing comma to read back as a tuple
	if len(t) == 1 {
		buf.WriteByte(',')
	}
	buf.WriteByte(')')
	return buf.String()
}

func (t TupleStruct) String() string {
	if len(t.Elems) == 0 {
		return t.Name
	}
	buf := &strings.Builder{}
	buf.WriteString(t.Name)
	buf.WriteByte('(')
	writeSeq(buf, t.Elems)
	buf.WriteByte(')')
	return buf.String()
}

func (u UnitStruct) String() string { return u.Name }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (n Number) String() string { return string(n) }

func (s Str) String() string { return `"` + string(s) + `"` }

func writeSeq(buf *strings.Builder, vals []Value) {
	for i, v := range vals {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(v.String())
	}
}

package debugdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindString(t *testing.T) {
	expect := []string{
		"list", "map", "option", "set", "struct", "tuple", "tuple struct",
		"unit struct", "bool", "number", "string",
	}
	got := make([]string, 0, len(kinds))
	for _, k := range kinds {
		got = append(got, k.String())
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if s := Kind(200).String(); s != "unknown" {
		t.Errorf("expected out of range kind to be unknown, got %q", s)
	}
}

func TestNewMap(t *testing.T) {
	m := NewMap(
		entry(Str("b"), n("1")),
		entry(Str("a"), n("2")),
		entry(Str("b"), n("3")),
	)

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	expect := []Entry{entry(Str("a"), n("2")), entry(Str("b"), n("3"))}
	if diff := cmp.Diff(expect, m.Entries(), valueComparer); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	if v, ok := m.Get(Str("b")); !ok || !Equal(v, n("3")) {
		t.Errorf("expected b to be 3, got: %v %t", v, ok)
	}
	if _, ok := m.Get(Str("c")); ok {
		t.Error("expected c to be missing")
	}
}

func TestNewMapDoesntModifyInput(t *testing.T) {
	in := []Entry{entry(n("2"), n("0")), entry(n("1"), n("0"))}
	NewMap(in...)
	if !Equal(in[0].Key, n("2")) {
		t.Error("expected input entries to keep their order")
	}
}

func TestNewSet(t *testing.T) {
	s := NewSet(n("3"), n("1"), n("3"), Str("a"), n("2"))

	expect := []Value{n("1"), n("2"), n("3"), Str("a")}
	if diff := cmp.Diff(expect, s.Elems(), valueComparer); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if !s.Contains(Str("a")) {
		t.Error("expected set to contain \"a\"")
	}
	if s.Contains(Str("b")) {
		t.Error("expected set not to contain \"b\"")
	}
}

func TestNewStruct(t *testing.T) {
	s := NewStruct("Point", field("y", n("2")), field("x", n("1")), field("y", n("3")))

	expect := []Field{field("x", n("1")), field("y", n("3"))}
	if diff := cmp.Diff(expect, s.Fields(), valueComparer); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if v, ok := s.Field("x"); !ok || !Equal(v, n("1")) {
		t.Errorf("expected x to be 1, got: %v %t", v, ok)
	}
	if _, ok := s.Field("z"); ok {
		t.Error("expected z to be missing")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := List{Tuple{n("1"), n("2")}, Some(Str("a"))}

	var visited []string
	walk(tree, func(v Value) bool {
		visited = append(visited, v.Kind().String())
		return v.Kind() != TupleKind
	})

	expect := []string{"list", "tuple", "option", "string"}
	if diff := cmp.Diff(expect, visited); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

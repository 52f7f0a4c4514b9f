package debugdiff_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qri-io/debugdiff"
	"github.com/qri-io/debugdiff/parse"
)

func ExampleDiff() {
	// start with two slightly different debug dumps
	left, err := parse.Parse(`Point { x: 1, y: 2, tags: {"a", "b"} }`)
	if err != nil {
		panic(err)
	}
	right, err := parse.Parse(`Point { x: 1, y: 3, tags: {"b", "c"} }`)
	if err != nil {
		panic(err)
	}

	// Diff will produce a slice of Deltas that describe the structured changes
	diffs := debugdiff.Diff(left, right)

	// Format the changes for terminal output
	fmt.Println(debugdiff.FormatCount(len(diffs)))
	fmt.Println()
	if err := debugdiff.FormatPretty(os.Stdout, diffs, false); err != nil {
		panic(err)
	}

	// Output: Found 3 differences.
	//
	//   - Source set (or option) has an extra item at index 0: "a" at $.tags
	//   - Source set (or option) is missing an item at index 2: "c" at $.tags
	//   - Number mismatch: expected 3, but got 2 at $.y.
}

// summary is a comparable rendition of a delta
type summary struct {
	Type        debugdiff.Operation
	Path        string
	Left, Right string
	Index       int
}

func summarize(dts debugdiff.Deltas) []summary {
	var s []summary
	for _, d := range dts {
		sm := summary{Type: d.Type, Path: d.Path.String(), Index: d.Index}
		if d.Left != nil {
			sm.Left = d.Left.String()
		}
		if d.Right != nil {
			sm.Right = d.Right.String()
		}
		s = append(s, sm)
	}
	return s
}

func TestParsedDocuments(t *testing.T) {
	cases := []struct {
		description string
		left, right string
		opts        []debugdiff.DiffOption
		expect      []summary
	}{
		{"equal bools", "true", "true", nil, nil},
		{"bool change", "true", "false", nil, []summary{
			{Type: debugdiff.DTBoolMismatch, Path: "$", Left: "true", Right: "false"},
		}},
		{"unit struct change", "Red", "Blue", nil, []summary{
			{Type: debugdiff.DTUnitStructMismatch, Path: "$", Left: "Red", Right: "Blue"},
		}},
		{"struct field change", "Point { x: 1, y: 2 }", "Point { x: 1, y: 3 }", nil, []summary{
			{Type: debugdiff.DTNumberMismatch, Path: "$.y", Left: "2", Right: "3"},
		}},
		{"tuple struct name change", "A(1)", "B(1)", nil, []summary{
			{Type: debugdiff.DTTupleStructMismatch, Path: "$", Left: "A(1)", Right: "B(1)"},
		}},
		{"list tail change", "[1, 2, 3]", "[1, 2, 4]", nil, []summary{
			{Type: debugdiff.DTRemoveAt, Path: "$", Left: "3", Index: 2},
			{Type: debugdiff.DTRemoveAt, Path: "$", Left: "4", Index: 3},
		}},
		{"list tail change as set", "[1, 2, 3]", "[1, 2, 4]",
			[]debugdiff.DiffOption{debugdiff.OptionListPolicy(debugdiff.ListAsSet)},
			[]summary{
				{Type: debugdiff.DTRemoveAt, Path: "$", Left: "3", Index: 2},
				{Type: debugdiff.DTInsertAt, Path: "$", Right: "4", Index: 3},
			},
		},
		{"whitespace & order are insignificant", `Cfg { b: {2, 1}, a: {"k": None} }`, `Cfg{a:{"k":None},b:{1,2,},}`, nil, nil},
		{"option change under a key", `{"k": Some(1)}`, `{"k": None}`, nil, []summary{
			{Type: debugdiff.DTRemoveAt, Path: `${"k"}`, Left: "1"},
		}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			left, err := parse.Parse(c.left)
			if err != nil {
				t.Fatal(err)
			}
			right, err := parse.Parse(c.right)
			if err != nil {
				t.Fatal(err)
			}

			got := summarize(debugdiff.Diff(left, right, c.opts...))
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

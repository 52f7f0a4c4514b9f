package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qri-io/debugdiff"
)

func num(s string) debugdiff.Number { return debugdiff.Number(s) }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  debugdiff.Value
	}{
		{"bool true", "true", debugdiff.Bool(true)},
		{"bool padded", "  false\n", debugdiff.Bool(false)},
		{"unit struct", "Red", debugdiff.UnitStruct{Name: "Red"}},
		{"keyword prefix is an identifier", "trueish", debugdiff.UnitStruct{Name: "trueish"}},
		{"unicode identifier", "Grün", debugdiff.UnitStruct{Name: "Grün"}},
		{"none", "None", debugdiff.Option{}},
		{"some", "Some( 1 )", debugdiff.Some(num("1"))},
		{"some with two values is a tuple struct", "Some(1, 2)",
			debugdiff.TupleStruct{Name: "Some", Elems: []debugdiff.Value{num("1"), num("2")}}},
		{"negative decimal", "-1.5", num("-1.5")},
		{"trailing point", "1.", num("1.")},
		{"leading zeros kept", "007", num("007")},
		{"string", `"hello world"`, debugdiff.Str("hello world")},
		{"escapes kept as written", `"a\"b\\"`, debugdiff.Str(`a\"b\\`)},
		{"empty list", "[]", debugdiff.List{}},
		{"list with trailing comma", "[1, 2, 3,]", debugdiff.List{num("1"), num("2"), num("3")}},
		{"list keeps order", "[3,1,2]", debugdiff.List{num("3"), num("1"), num("2")}},
		{"empty braces are a map", "{}", debugdiff.NewMap()},
		{"map", `{1: "b", 0: "a"}`, debugdiff.NewMap(
			debugdiff.Entry{Key: num("0"), Value: debugdiff.Str("a")},
			debugdiff.Entry{Key: num("1"), Value: debugdiff.Str("b")},
		)},
		{"map duplicate key keeps last", `{1: true, 1: false}`, debugdiff.NewMap(
			debugdiff.Entry{Key: num("1"), Value: debugdiff.Bool(false)},
		)},
		{"set", "{3, 1, 2, 1}", debugdiff.NewSet(num("1"), num("2"), num("3"))},
		{"struct", "Point { x: 1, y: 2 }", debugdiff.NewStruct("Point",
			debugdiff.Field{Name: "x", Value: num("1")},
			debugdiff.Field{Name: "y", Value: num("2")},
		)},
		{"struct without space", "Point{y: 2, x: 1,}", debugdiff.NewStruct("Point",
			debugdiff.Field{Name: "x", Value: num("1")},
			debugdiff.Field{Name: "y", Value: num("2")},
		)},
		{"struct without fields", "Empty {}", debugdiff.NewStruct("Empty")},
		{"unit tuple", "()", debugdiff.Tuple{}},
		{"single tuple", "(1,)", debugdiff.Tuple{num("1")}},
		{"tuple", `(1, "a")`, debugdiff.Tuple{num("1"), debugdiff.Str("a")}},
		{"tuple struct", "A(1)", debugdiff.TupleStruct{Name: "A", Elems: []debugdiff.Value{num("1")}}},
		{"struct key", "{Point { x: 1 }: true}", debugdiff.NewMap(
			debugdiff.Entry{
				Key:   debugdiff.NewStruct("Point", debugdiff.Field{Name: "x", Value: num("1")}),
				Value: debugdiff.Bool(true),
			},
		)},
		{"nested", `Config {
			items: [Some(A(1)), None],
			lookup: {"k": {1, 2}},
		}`, debugdiff.NewStruct("Config",
			debugdiff.Field{Name: "items", Value: debugdiff.List{
				debugdiff.Some(debugdiff.TupleStruct{Name: "A", Elems: []debugdiff.Value{num("1")}}),
				debugdiff.Option{},
			}},
			debugdiff.Field{Name: "lookup", Value: debugdiff.NewMap(
				debugdiff.Entry{Key: debugdiff.Str("k"), Value: debugdiff.NewSet(num("1"), num("2"))},
			)},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
			assert.Truef(t, debugdiff.Equal(tt.want, got), "want: %s\ngot:  %s", tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		wantPos Pos
	}{
		{"empty input", "", "found end of input expected value", Pos{1, 1}},
		{"unclosed list", "[1, 2", "found end of input expected ',' or ']'", Pos{1, 6}},
		{"missing comma", "[1 2]", "found '2' expected ',' or ']'", Pos{1, 4}},
		{"unexpected character", "[\n  1,\n  @\n]", "found '@' expected ']' or value", Pos{3, 3}},
		{"trailing input", "true false", "found 'f' expected '{' or end of input", Pos{1, 6}},
		{"space before some paren", "Some (1)", "", Pos{1, 6}},
		{"unterminated string", `"abc`, `found end of input expected '"'`, Pos{1, 5}},
		{"lone minus", "-", "found end of input expected digit", Pos{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			assert.Nil(t, v)
			require.Error(t, err)

			var list ErrorList
			require.True(t, errors.As(err, &list))
			require.Len(t, list, 1)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, list[0].Msg)
			}
			assert.Equal(t, tt.wantPos, list[0].Pos)
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantPos.String()+": "))
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 10) + strings.Repeat("]", 10)

	_, err := Parse(deep, OptionMaxDepth(5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMaxDepth))

	var list ErrorList
	require.True(t, errors.As(err, &list))
	assert.Equal(t, Span{Start: 5, End: 6}, list[0].Span)

	v, err := Parse(deep)
	require.NoError(t, err)
	assert.Equal(t, debugdiff.ListKind, v.Kind())
}

func TestParseNestedBracesLinear(t *testing.T) {
	// each '{' could open a map or a set. without memoization this input
	// takes 2^n attempts
	src := strings.Repeat("{", 200) + "1" + strings.Repeat("}", 200)
	v, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, debugdiff.SetKind, v.Kind())
	assert.Equal(t, 201, debugdiff.NodeCount(v))
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		`Point { x: 1, y: -2.5 }`,
		`[Some("a"), None, (1,), (), A(true, B)]`,
		`{"a": {1, 2}, "b": {}}`,
		`Outer { inner: Inner { list: [1, 2], tuple: (1, 2) } }`,
	}
	for _, in := range inputs {
		v, err := Parse(in)
		require.NoError(t, err, in)

		again, err := Parse(v.String())
		require.NoError(t, err, v.String())
		assert.True(t, debugdiff.Equal(v, again), "%s != %s", v, again)
	}
}

// Package parse reads documents in debug-print notation into debugdiff
// values.
//
// The grammar is a superset of the output of derived debug printers:
//
//	[a, b]            list
//	{k: v}            map ({} is an empty map)
//	None, Some(v)     option
//	{a, b}            set
//	Name { f: v }     struct
//	(a, b)            tuple
//	Name(a, b)        tuple struct
//	Name              unit struct
//	true, false       bool
//	-1.5              number, kept as written
//	"text"            string, escapes kept as written
//
// Alternatives are tried in that order, backtracking on failure. Trailing
// commas are allowed everywhere a comma separated list is
package parse

import (
	"fmt"
	"slices"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/qri-io/debugdiff"
)

// DefaultMaxDepth is the deepest nesting of values Parse accepts unless
// configured otherwise
const DefaultMaxDepth = 1024

// Option adjusts parser configuration
type Option func(o *parseOpts)

type parseOpts struct {
	maxDepth int
}

// OptionMaxDepth limits how deeply values may nest. n <= 0 uses
// DefaultMaxDepth
func OptionMaxDepth(n int) Option {
	return func(o *parseOpts) {
		o.maxDepth = n
	}
}

// Parse reads a single value from src. The whole of src must be one value,
// optionally surrounded by whitespace. When src can't be parsed the returned
// value is nil and the error is an ErrorList
func Parse(src string, opts ...Option) (debugdiff.Value, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}

	p := &parser{
		src:      src,
		maxDepth: o.maxDepth,
		memo:     map[int]result{},
		far:      -1,
	}
	if v, ok := p.document(); ok {
		return v, nil
	}
	return nil, p.errors()
}

// result is a memoized parse of a value starting at some offset
type result struct {
	v   debugdiff.Value
	end int
	ok  bool
}

// parser is a backtracking recursive descent parser. Every method takes the
// offset to start at and returns the offset it stopped at, so backtracking is
// just a matter of retrying from an earlier offset. Values are memoized by
// offset, which keeps ambiguous prefixes like nested '{' linear
type parser struct {
	src      string
	maxDepth int
	depth    int
	memo     map[int]result

	// furthest offset any alternative failed at, and what was expected there
	far      int
	expected []string
	// set once nesting exceeds maxDepth, aborts all further parsing
	deep *Error
}

func (p *parser) document() (debugdiff.Value, bool) {
	v, i, ok := p.value(p.ws(0))
	if !ok || p.deep != nil {
		return nil, false
	}
	if i = p.ws(i); i != len(p.src) {
		p.expect(i, "end of input")
		return nil, false
	}
	return v, true
}

func (p *parser) value(i int) (debugdiff.Value, int, bool) {
	if p.deep != nil {
		return nil, i, false
	}
	if r, ok := p.memo[i]; ok {
		return r.v, r.end, r.ok
	}
	if p.depth >= p.maxDepth {
		p.deep = &Error{
			Msg:  fmt.Sprintf("values nest deeper than the maximum depth of %d", p.maxDepth),
			Span: Span{Start: i, End: min(i+1, len(p.src))},
			err:  ErrMaxDepth,
		}
		return nil, i, false
	}

	p.depth++
	v, end, ok := p.alternatives(i)
	p.depth--

	if p.deep == nil {
		p.memo[i] = result{v: v, end: end, ok: ok}
	}
	return v, end, ok
}

// alternatives picks a production by the first character, trying each
// production that could start with it in grammar order
func (p *parser) alternatives(i int) (debugdiff.Value, int, bool) {
	if i >= len(p.src) {
		p.expect(i, "value")
		return nil, i, false
	}

	switch c, _ := utf8.DecodeRuneInString(p.src[i:]); {
	case c == '[':
		return p.list(i)
	case c == '{':
		if v, j, ok := p.mapping(i); ok {
			return v, j, ok
		}
		return p.set(i)
	case c == '(':
		return p.tuple(i)
	case c == '"':
		return p.str(i)
	case c == '-' || isDigit(c):
		return p.number(i)
	case isIdentStart(c):
		return p.identified(i)
	}

	p.expect(i, "value")
	return nil, i, false
}

func (p *parser) list(i int) (debugdiff.Value, int, bool) {
	var elems debugdiff.List
	j, ok := p.sequence(i+1, ']', func(i int) (int, bool) {
		v, j, ok := p.value(i)
		if ok {
			elems = append(elems, v)
		}
		return j, ok
	})
	if !ok {
		return nil, j, false
	}
	if elems == nil {
		elems = debugdiff.List{}
	}
	return elems, j, true
}

func (p *parser) mapping(i int) (debugdiff.Value, int, bool) {
	var entries []debugdiff.Entry
	j, ok := p.sequence(i+1, '}', func(i int) (int, bool) {
		k, j, ok := p.value(i)
		if !ok {
			return j, false
		}
		if j = p.ws(j); !p.at(j, ':') {
			p.expect(j, "':'")
			return j, false
		}
		v, j, ok := p.value(p.ws(j + 1))
		if ok {
			entries = append(entries, debugdiff.Entry{Key: k, Value: v})
		}
		return j, ok
	})
	if !ok {
		return nil, j, false
	}
	return debugdiff.NewMap(entries...), j, true
}

func (p *parser) set(i int) (debugdiff.Value, int, bool) {
	var elems []debugdiff.Value
	j, ok := p.sequence(i+1, '}', func(i int) (int, bool) {
		v, j, ok := p.value(i)
		if ok {
			elems = append(elems, v)
		}
		return j, ok
	})
	if !ok {
		return nil, j, false
	}
	return debugdiff.NewSet(elems...), j, true
}

func (p *parser) tuple(i int) (debugdiff.Value, int, bool) {
	elems, j, ok := p.elems(i)
	if !ok {
		return nil, j, false
	}
	return debugdiff.Tuple(elems), j, true
}

// elems parses a parenthesized, comma separated list of values starting at
// the opening paren
func (p *parser) elems(i int) ([]debugdiff.Value, int, bool) {
	elems := []debugdiff.Value{}
	j, ok := p.sequence(i+1, ')', func(i int) (int, bool) {
		v, j, ok := p.value(i)
		if ok {
			elems = append(elems, v)
		}
		return j, ok
	})
	return elems, j, ok
}

// identified parses every production that starts with an identifier:
// options, structs, tuple structs, bools & unit structs, in that order
func (p *parser) identified(i int) (debugdiff.Value, int, bool) {
	name, j := p.ident(i)

	switch name {
	case "None":
		return debugdiff.Option{}, j, true
	case "Some":
		if p.at(j, '(') {
			if v, k, ok := p.value(p.ws(j + 1)); ok {
				if k = p.ws(k); p.at(k, ')') {
					return debugdiff.Some(v), k + 1, true
				}
				p.expect(k, "')'")
			}
		}
	}

	if k := p.ws(j); p.at(k, '{') {
		if v, end, ok := p.structure(name, k); ok {
			return v, end, true
		}
	} else {
		p.expect(k, "'{'")
	}

	if p.at(j, '(') {
		if elems, end, ok := p.elems(j); ok {
			return debugdiff.TupleStruct{Name: name, Elems: elems}, end, true
		}
	} else {
		p.expect(j, "'('")
	}

	switch name {
	case "true":
		return debugdiff.Bool(true), j, true
	case "false":
		return debugdiff.Bool(false), j, true
	}
	return debugdiff.UnitStruct{Name: name}, j, true
}

func (p *parser) structure(name string, i int) (debugdiff.Value, int, bool) {
	var fields []debugdiff.Field
	j, ok := p.sequence(i+1, '}', func(i int) (int, bool) {
		r, _ := utf8.DecodeRuneInString(p.src[min(i, len(p.src)):])
		if i >= len(p.src) || !isIdentStart(r) {
			p.expect(i, "field name")
			return i, false
		}
		field, j := p.ident(i)
		if j = p.ws(j); !p.at(j, ':') {
			p.expect(j, "':'")
			return j, false
		}
		v, j, ok := p.value(p.ws(j + 1))
		if ok {
			fields = append(fields, debugdiff.Field{Name: field, Value: v})
		}
		return j, ok
	})
	if !ok {
		return nil, j, false
	}
	return debugdiff.NewStruct(name, fields...), j, true
}

// number reads -?[0-9]+(\.[0-9]*)? keeping the literal text
func (p *parser) number(i int) (debugdiff.Value, int, bool) {
	j := i
	if p.at(j, '-') {
		j++
	}
	start := j
	for j < len(p.src) && isDigit(rune(p.src[j])) {
		j++
	}
	if j == start {
		p.expect(j, "digit")
		return nil, j, false
	}
	if p.at(j, '.') {
		j++
		for j < len(p.src) && isDigit(rune(p.src[j])) {
			j++
		}
	}
	return debugdiff.Number(p.src[i:j]), j, true
}

// str reads a quoted string. a backslash escapes the following character,
// the escape itself is kept as written
func (p *parser) str(i int) (debugdiff.Value, int, bool) {
	j := i + 1
	for j < len(p.src) {
		switch p.src[j] {
		case '"':
			return debugdiff.Str(p.src[i+1 : j]), j + 1, true
		case '\\':
			j++
			if j >= len(p.src) {
				p.expect(j, "escaped character")
				return nil, j, false
			}
		}
		_, size := utf8.DecodeRuneInString(p.src[j:])
		j += size
	}
	p.expect(j, `'"'`)
	return nil, j, false
}

// sequence parses `item (, item)* ,? close` allowing whitespace around every
// token. i is the offset just past the opening delimiter
func (p *parser) sequence(i int, close byte, item func(i int) (int, bool)) (int, bool) {
	closing := "'" + string(close) + "'"

	i = p.ws(i)
	for {
		if p.at(i, close) {
			return i + 1, true
		}
		p.expect(i, closing)

		j, ok := item(i)
		if !ok {
			return j, false
		}
		if i = p.ws(j); p.at(i, close) {
			return i + 1, true
		}
		if !p.at(i, ',') {
			p.expect(i, "','")
			p.expect(i, closing)
			return i, false
		}
		i = p.ws(i + 1)
	}
}

func (p *parser) ident(i int) (string, int) {
	j := i
	for j < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[j:])
		if j == i && !isIdentStart(r) || j > i && !isIdentContinue(r) {
			break
		}
		j += size
	}
	return p.src[i:j], j
}

// ws skips whitespace
func (p *parser) ws(i int) int {
	for i < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func (p *parser) at(i int, c byte) bool {
	return i < len(p.src) && p.src[i] == c
}

// expect records that the token at offset i didn't match what was expected.
// only the furthest offset is kept, that's where the most input made sense
func (p *parser) expect(i int, what string) {
	if i < p.far {
		return
	}
	if i > p.far {
		p.far = i
		p.expected = p.expected[:0]
	}
	if !slices.Contains(p.expected, what) {
		p.expected = append(p.expected, what)
	}
}

func (p *parser) errors() ErrorList {
	lns := newLines(p.src)

	if p.deep != nil {
		p.deep.Pos = lns.pos(p.deep.Span.Start)
		return ErrorList{p.deep}
	}

	found := "end of input"
	span := Span{Start: p.far, End: p.far}
	if p.far < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.far:])
		found = strconv.QuoteRune(r)
		span.End += size
	}

	return ErrorList{{
		Msg:  fmt.Sprintf("found %s expected %s", found, expectation(p.expected)),
		Span: span,
		Pos:  lns.pos(p.far),
	}}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

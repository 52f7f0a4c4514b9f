package parse

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrMaxDepth is wrapped by errors for documents nested deeper than the
// configured maximum
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// Span is a range of byte offsets into the source, End is exclusive
type Span struct {
	Start, End int
}

// Pos is a 1-based line & column. columns count runes
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Error is a single parse error with its location in the source
type Error struct {
	Msg  string
	Span Span
	Pos  Pos

	err error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns the sentinel error this error is an instance of, if any
func (e *Error) Unwrap() error {
	return e.err
}

// ErrorList is a list of parse errors, sorted by source offset
type ErrorList []*Error

// Error implements the error interface
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap allows errors.Is & errors.As to inspect each error in the list
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// lines maps byte offsets to line & column numbers
type lines struct {
	src string
	nl  []int // offsets of each newline
}

func newLines(src string) *lines {
	l := &lines{src: src}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			l.nl = append(l.nl, i)
		}
	}
	return l
}

func (l *lines) pos(off int) Pos {
	line := sort.Search(len(l.nl), func(i int) bool {
		return l.nl[i] >= off
	})
	start := 0
	if line > 0 {
		start = l.nl[line-1] + 1
	}
	return Pos{Line: line + 1, Col: utf8.RuneCountInString(l.src[start:off]) + 1}
}

// expectation joins expected tokens into a readable list: "a", "a or b",
// "a, b, or c"
func expectation(expected []string) string {
	switch len(expected) {
	case 0:
		return "something else"
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + ", or " + expected[len(expected)-1]
}

// Package debugdiff is a structural differ for documents written in debug-print
// notation: the textual form derived debug printers produce for nested values.
// It's intended to explain how two dumps of "the same" data differ, at the
// level of the data's own structure rather than its lines of text
//
// Instead of operating on text directly, debugdiff operates on document trees
// of Values. There are eight compound kinds:
//   List, Map, Option, Set, Struct, Tuple, TupleStruct, UnitStruct
// and three leaf kinds:
//   Bool, Number, Str
// Values are totally ordered (see Compare). Maps & Sets keep their contents
// sorted under that order, which lets Diff compare them with a single
// two-cursor merge-walk instead of matching every element against every other
//
// Diff walks two trees in lock-step. At each node it either recurses into
// comparable children or records a Delta describing why the two sides can't
// be compared further: a type mismatch, a shape mismatch of a struct or tuple,
// a changed leaf, or an element or entry only present on one side. Each delta
// carries the Path it was found at
//
// documents are parsed with the parse subpackage, and reports are written with
// FormatPretty. the debugdiff command ties the three together
package debugdiff

package debugdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(changes Deltas, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one block per change. Each block
// reads the right side as what was expected and the left as what we got. if
// colorTTY is true it will add
// red for removals
// green for insertions
// blue for changes & mismatches
func FormatPretty(w io.Writer, changes Deltas, colorTTY bool) error {
	p := newPalette(colorTTY)
	buf := &strings.Builder{}
	for _, d := range changes {
		p.formatDelta(buf, d)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

type palette struct {
	insert, remove, change, path *color.Color
}

func newPalette(colorTTY bool) palette {
	p := palette{
		insert: color.New(color.FgGreen),
		remove: color.New(color.FgRed),
		change: color.New(color.FgBlue),
		path:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.insert, p.remove, p.change, p.path} {
		if colorTTY {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) formatDelta(buf *strings.Builder, d *Delta) {
	at := p.path.Sprint(d.Path.String())

	switch d.Type {
	case DTTypeMismatch:
		fmt.Fprintf(buf, "  - %s: expected %s %s, but got %s %s at %s\n",
			p.change.Sprint("Type mismatch"), d.Right.Kind(), d.Right, d.Left.Kind(), d.Left, at)
	case DTStructMismatch:
		l, r := d.Left.(Struct), d.Right.(Struct)
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s\n",
			p.change.Sprint("Struct type mismatch"), r.Name, l.Name, at)
		if l.Name == r.Name {
			buf.WriteString("      Note: The internal structure differs.\n")
		}
	case DTTupleMismatch:
		fmt.Fprintf(buf, "  - %s: expected %d elements, but got %d at %s\n",
			p.change.Sprint("Tuple type mismatch"), len(d.Right.(Tuple)), len(d.Left.(Tuple)), at)
	case DTTupleStructMismatch:
		l, r := d.Left.(TupleStruct), d.Right.(TupleStruct)
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s\n",
			p.change.Sprint("Tuple struct type mismatch"), r.Name, l.Name, at)
		if l.Name == r.Name {
			buf.WriteString("      Note: The internal structure differs.\n")
		}
	case DTUnitStructMismatch:
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s\n",
			p.change.Sprint("Enum or type mismatch"), d.Right, d.Left, at)
	case DTBoolMismatch:
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s.\n",
			p.change.Sprint("Boolean mismatch"), d.Right, d.Left, at)
	case DTNumberMismatch:
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s.\n",
			p.change.Sprint("Number mismatch"), d.Right, d.Left, at)
	case DTStrMismatch:
		fmt.Fprintf(buf, "  - %s: expected %s, but got %s at %s.\n",
			p.change.Sprint("String mismatch"), d.Right, d.Left, at)
	case DTInsertAt:
		fmt.Fprintf(buf, "  - %s at index %d: %s at %s\n",
			p.insert.Sprint("Source set (or option) is missing an item"), d.Index, d.Right, at)
	case DTRemoveAt:
		fmt.Fprintf(buf, "  - %s at index %d: %s at %s\n",
			p.remove.Sprint("Source set (or option) has an extra item"), d.Index, d.Left, at)
	case DTInsertPair:
		fmt.Fprintf(buf, "  - %s at %s:\n", p.insert.Sprint("Source mapping is missing an entry"), at)
		fmt.Fprintf(buf, "      Key  : %s\n      Value: %s\n", d.Key, d.Right)
	case DTRemovePair:
		fmt.Fprintf(buf, "  - %s at %s\n", p.remove.Sprint("Source mapping has an extra entry"), at)
		fmt.Fprintf(buf, "      Key  : %s\n      Value: %s\n", d.Key, d.Left)
	default:
		fmt.Fprintf(buf, "  - %s at %s\n", d.Type, at)
	}
}

// FormatCount renders the headline of a report, eg: "Found 3 differences."
// the wording is the same for every n
func FormatCount(n int) string {
	return fmt.Sprintf("Found %s differences.", humanize.Comma(int64(n)))
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return FormatPrettyStatsString(diffStat, false)
}

// FormatPrettyStatsString prints a string of stats info, with ANSI colors if
// colorTTY is true
func FormatPrettyStatsString(ds *Stats, colorTTY bool) string {
	if ds == nil {
		return ""
	}

	p := newPalette(colorTTY)
	buf := &strings.Builder{}

	change := ds.NodeChange()
	sign := ""
	elsColor := p.change
	if change > 0 {
		sign = "+"
		elsColor = p.insert
	} else if change < 0 {
		elsColor = p.remove
	}
	fmt.Fprintf(buf, "%s %s.", elsColor.Sprint(sign+humanize.Comma(int64(change))), plural(change, "node", "nodes"))

	fmt.Fprintf(buf, " %s", p.insert.Sprintf("%s %s.", humanize.Comma(int64(ds.Inserts)), plural(ds.Inserts, "insert", "inserts")))
	fmt.Fprintf(buf, " %s", p.remove.Sprintf("%s %s.", humanize.Comma(int64(ds.Deletes)), plural(ds.Deletes, "delete", "deletes")))
	fmt.Fprintf(buf, " %s", p.change.Sprintf("%s %s.", humanize.Comma(int64(ds.Updates)), plural(ds.Updates, "update", "updates")))

	if ds.Mismatches > 0 {
		fmt.Fprintf(buf, " %s", p.change.Sprintf("%s %s.", humanize.Comma(int64(ds.Mismatches)), plural(ds.Mismatches, "mismatch", "mismatches")))
	}

	buf.WriteByte('\n')
	return buf.String()
}

func plural(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}
	return many
}

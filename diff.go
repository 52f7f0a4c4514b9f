package debugdiff

import (
	"fmt"
)

// Diff computes every structural difference between left & right. Diff never
// fails, and equal trees produce no deltas. With OptionStrictStructs the
// reverse holds too: no deltas means the trees are equal. returned deltas
// reference values of both trees
func Diff(left, right Value, opts ...DiffOption) Deltas {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &diff{cfg: cfg}
	dts := d.run(left, right)

	if cfg.Stats != nil {
		cfg.Stats.Left = NodeCount(left)
		cfg.Stats.Right = NodeCount(right)
		cfg.Stats.add(dts)
	}
	return dts
}

// DiffConfig are any possible configuration parameters for calculating diffs
type DiffConfig struct {
	// ListPolicy decides how list elements only present on one side are
	// reported
	ListPolicy ListPolicy
	// If true structs with a different number of fields are a shape mismatch,
	// even when the shorter field list is a prefix of the longer one
	StrictStructs bool
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
}

// DiffOption is a function that adjust a config, zero or more DiffOptions
// can be passed to the Diff function
type DiffOption func(cfg *DiffConfig)

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// OptionListPolicy sets the list labeling policy
func OptionListPolicy(p ListPolicy) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.ListPolicy = p
	}
}

// OptionStrictStructs requires structs to have the same number of fields to
// be compared field-by-field
func OptionStrictStructs(strict bool) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.StrictStructs = strict
	}
}

// ListPolicy decides how the list merge-walk labels elements found on only
// one side
type ListPolicy uint8

const (
	// ListAsRecorded reports every one-sided list element as a removal,
	// including elements only present on the right. This is the established
	// output format of list comparisons
	ListAsRecorded ListPolicy = iota
	// ListAsSet reports right-only list elements as insertions, the same way
	// sets are compared
	ListAsSet
)

// rightOnly returns the operation used for a list element only present on
// the right side
func (p ListPolicy) rightOnly() Operation {
	if p == ListAsSet {
		return DTInsertAt
	}
	return DTRemoveAt
}

// ParseListPolicy reads a policy from its name
func ParseListPolicy(s string) (ListPolicy, error) {
	switch s {
	case "", "recorded":
		return ListAsRecorded, nil
	case "set":
		return ListAsSet, nil
	}
	return 0, fmt.Errorf("unknown list policy %q, expected \"recorded\" or \"set\"", s)
}

// String returns the policy name
func (p ListPolicy) String() string {
	if p == ListAsSet {
		return "set"
	}
	return "recorded"
}

// MarshalText implements encoding.TextMarshaler
func (p ListPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *ListPolicy) UnmarshalText(d []byte) error {
	lp, err := ParseListPolicy(string(d))
	if err != nil {
		return err
	}
	*p = lp
	return nil
}

type stepType uint8

const (
	// compare two values, descending into addr first if it's set
	stepCompare stepType = iota
	// record a delta at the current path
	stepEmit
	// leave the most recently entered address
	stepPop
)

// step is a pending unit of work. Steps run last-in-first-out, which keeps
// deltas in depth-first, pre-order sequence
type step struct {
	typ         stepType
	addr        Addr
	left, right Value
	delta       *Delta
}

// diff is a state machine for walking two trees in lock-step. path is the
// address of the values currently being compared, pushed before descending
// into a child & popped once all work for that child is done
type diff struct {
	cfg   *DiffConfig
	path  Path
	work  []step
	dts   Deltas
	queue []step
}

// run drains the work stack. trees can be arbitrarily deep, so recursion is
// replaced by explicit steps
func (d *diff) run(left, right Value) Deltas {
	d.work = append(d.work, step{typ: stepCompare, left: left, right: right})
	for len(d.work) > 0 {
		s := d.work[len(d.work)-1]
		d.work = d.work[:len(d.work)-1]

		switch s.typ {
		case stepCompare:
			if s.addr != nil {
				d.path = append(d.path, s.addr)
				d.work = append(d.work, step{typ: stepPop})
			}
			d.compare(s.left, s.right)
			d.flush()
		case stepEmit:
			d.emit(s.delta)
		case stepPop:
			d.path = d.path[:len(d.path)-1]
		}
	}
	return d.dts
}

// schedule queues child work for the values currently being compared
func (d *diff) schedule(s step) {
	d.queue = append(d.queue, s)
}

// flush moves queued steps onto the work stack so they run in the order they
// were scheduled
func (d *diff) flush() {
	for i := len(d.queue) - 1; i >= 0; i-- {
		d.work = append(d.work, d.queue[i])
	}
	d.queue = d.queue[:0]
}

// emit records a delta at the current path
func (d *diff) emit(dt *Delta) {
	if len(d.path) > 0 {
		dt.Path = append(Path(nil), d.path...)
	}
	d.dts = append(d.dts, dt)
}

// compare dispatches on the kind of two values. values of different kinds
// produce a single type mismatch
func (d *diff) compare(left, right Value) {
	if left.Kind() != right.Kind() {
		d.emit(&Delta{Type: DTTypeMismatch, Left: left, Right: right})
		return
	}

	switch left.Kind() {
	case ListKind:
		d.compareList(left.(List), right.(List))
	case MapKind:
		d.compareMap(left.(Map), right.(Map))
	case OptionKind:
		d.compareOption(left.(Option), right.(Option))
	case SetKind:
		d.compareSet(left.(Set), right.(Set))
	case StructKind:
		d.compareStruct(left.(Struct), right.(Struct))
	case TupleKind:
		d.compareTuple(left.(Tuple), right.(Tuple))
	case TupleStructKind:
		d.compareTupleStruct(left.(TupleStruct), right.(TupleStruct))
	case UnitStructKind:
		if left.(UnitStruct).Name != right.(UnitStruct).Name {
			d.emit(&Delta{Type: DTUnitStructMismatch, Left: left, Right: right})
		}
	case BoolKind:
		if left.(Bool) != right.(Bool) {
			d.emit(&Delta{Type: DTBoolMismatch, Left: left, Right: right})
		}
	case NumberKind:
		if left.(Number) != right.(Number) {
			d.emit(&Delta{Type: DTNumberMismatch, Left: left, Right: right})
		}
	case StrKind:
		if left.(Str) != right.(Str) {
			d.emit(&Delta{Type: DTStrMismatch, Left: left, Right: right})
		}
	default:
		panic(fmt.Sprintf("unexpected value kind: %d", left.Kind()))
	}
}

// mergeWalk advances two cursors over sorted sequences, calling onlyLeft &
// onlyRight with the merge step counter for elements present on one side.
// The counter increments once per step, whichever side advanced
func mergeWalk(left, right []Value, onlyLeft, onlyRight func(step int, v Value)) {
	i, j, count := 0, 0, 0
	for i < len(left) || j < len(right) {
		switch {
		case i == len(left):
			onlyRight(count, right[j])
			j++
		case j == len(right):
			onlyLeft(count, left[i])
			i++
		default:
			switch c := Compare(left[i], right[j]); {
			case c == 0:
				i++
				j++
			case c < 0:
				onlyLeft(count, left[i])
				i++
			default:
				onlyRight(count, right[j])
				j++
			}
		}
		count++
	}
}

// compareList merge-walks two lists as given. the walk assumes both lists
// are in ascending order, unsorted lists produce unreliable deltas
func (d *diff) compareList(left, right List) {
	rightOnly := d.cfg.ListPolicy.rightOnly()
	mergeWalk(left, right,
		func(i int, v Value) {
			d.emit(&Delta{Type: DTRemoveAt, Index: i, Left: v})
		},
		func(i int, v Value) {
			dt := &Delta{Type: rightOnly, Index: i}
			if rightOnly == DTInsertAt {
				dt.Right = v
			} else {
				dt.Left = v
			}
			d.emit(dt)
		},
	)
}

func (d *diff) compareSet(left, right Set) {
	mergeWalk(left.elems, right.elems,
		func(i int, v Value) {
			d.emit(&Delta{Type: DTRemoveAt, Index: i, Left: v})
		},
		func(i int, v Value) {
			d.emit(&Delta{Type: DTInsertAt, Index: i, Right: v})
		},
	)
}

// compareMap merge-walks map entries by key. shared keys are compared under
// a KeyAddr, one-sided entries are scheduled so they land in sequence with
// deltas from shared keys
func (d *diff) compareMap(left, right Map) {
	l, r := left.entries, right.entries
	i, j := 0, 0
	for i < len(l) || j < len(r) {
		c := 0
		switch {
		case i == len(l):
			c = 1
		case j == len(r):
			c = -1
		default:
			c = Compare(l[i].Key, r[j].Key)
		}

		switch {
		case c == 0:
			d.schedule(step{typ: stepCompare, addr: KeyAddr{Key: l[i].Key}, left: l[i].Value, right: r[j].Value})
			i++
			j++
		case c < 0:
			d.schedule(step{typ: stepEmit, delta: &Delta{Type: DTRemovePair, Key: l[i].Key, Left: l[i].Value}})
			i++
		default:
			d.schedule(step{typ: stepEmit, delta: &Delta{Type: DTInsertPair, Key: r[j].Key, Right: r[j].Value}})
			j++
		}
	}
}

func (d *diff) compareOption(left, right Option) {
	switch {
	case left.Value != nil && right.Value != nil:
		d.schedule(step{typ: stepCompare, left: left.Value, right: right.Value})
	case left.Value != nil:
		d.emit(&Delta{Type: DTRemoveAt, Index: 0, Left: left.Value})
	case right.Value != nil:
		d.emit(&Delta{Type: DTInsertAt, Index: 0, Right: right.Value})
	}
}

// compareStruct compares field-by-field when both structs share a name and
// their field names agree position by position. Without StrictStructs only
// the shared prefix of field names is checked, so extra trailing fields on
// one side go unreported
func (d *diff) compareStruct(left, right Struct) {
	lf, rf := left.fields, right.fields
	n := min(len(lf), len(rf))

	mismatch := left.Name != right.Name
	if d.cfg.StrictStructs && len(lf) != len(rf) {
		mismatch = true
	}
	for i := 0; i < n && !mismatch; i++ {
		mismatch = lf[i].Name != rf[i].Name
	}
	if mismatch {
		d.emit(&Delta{Type: DTStructMismatch, Left: left, Right: right})
		return
	}

	for i := 0; i < n; i++ {
		d.schedule(step{typ: stepCompare, addr: FieldAddr(lf[i].Name), left: lf[i].Value, right: rf[i].Value})
	}
}

func (d *diff) compareTuple(left, right Tuple) {
	if len(left) != len(right) {
		d.emit(&Delta{Type: DTTupleMismatch, Left: left, Right: right})
		return
	}
	d.scheduleElems(left, right)
}

func (d *diff) compareTupleStruct(left, right TupleStruct) {
	if left.Name != right.Name || len(left.Elems) != len(right.Elems) {
		d.emit(&Delta{Type: DTTupleStructMismatch, Left: left, Right: right})
		return
	}
	d.scheduleElems(left.Elems, right.Elems)
}

// scheduleElems compares equal length sequences position by position
func (d *diff) scheduleElems(left, right []Value) {
	for i := range left {
		d.schedule(step{typ: stepCompare, addr: IndexAddr{Left: i, Right: i}, left: left[i], right: right[i]})
	}
}

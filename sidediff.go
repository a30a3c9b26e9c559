// Package sidediff builds aligned, annotated descriptors for side-by-side
// diff rendering.
//
// Given the lines of a base and a modified version of a file, Compare
// produces two line tracks of equal length. Every index names one aligned
// row: a real line on one or both sides, with a placeholder standing in
// where a line has no counterpart. Each line carries its 1-based line
// number (placeholders carry none), a reference to the alignment region
// that produced it, and a list of typed character runs describing what
// occupies each sub-range of its text: added or deleted text, intraline
// changes, tabs, and trailing whitespace.
//
// The descriptor is presentation-independent. It never resolves a run
// kind to a color and never omits run data based on display settings; a
// renderer that wants to hide, say, tab markers does so by skipping
// RunTab at paint time. See cmd/sidediff for a terminal renderer built
// on top of this package.
//
// Line matching uses github.com/pmezard/go-difflib; character-level
// intraline matching uses github.com/dacharyc/diffx.
package sidediff

// RunKind identifies what a run of characters within a line represents.
type RunKind int

const (
	// RunAdded marks text present only on the modified side.
	RunAdded RunKind = iota
	// RunDeleted marks text present only on the base side.
	RunDeleted
	// RunIntraline marks text that was changed in place within a line pair.
	RunIntraline
	// RunTab marks a maximal group of consecutive tab characters.
	RunTab
	// RunTrailingWhitespace marks the maximal whitespace suffix of a line.
	RunTrailingWhitespace
	// RunNotPresent marks the filler extent of a placeholder line.
	RunNotPresent
)

// String returns a human-readable representation of the run kind.
func (k RunKind) String() string {
	switch k {
	case RunAdded:
		return "Added"
	case RunDeleted:
		return "Deleted"
	case RunIntraline:
		return "Intraline"
	case RunTab:
		return "Tab"
	case RunTrailingWhitespace:
		return "TrailingWhitespace"
	case RunNotPresent:
		return "NotPresent"
	default:
		return "Unknown"
	}
}

// Run is a typed, half-open byte range [Start, Start+Length) into a
// line's text. A line may carry runs from independent annotation passes;
// diff runs and whitespace runs both apply to the same line and may
// overlap.
type Run struct {
	Kind   RunKind
	Start  int
	Length int
}

// LineKind distinguishes real lines from placeholder fillers.
type LineKind int

const (
	// LineActual is a line that exists on its side of the comparison.
	LineActual LineKind = iota
	// LinePlaceholder stands in where a line has no counterpart.
	LinePlaceholder
)

// Line is one display unit in a track.
//
// For LineActual, Text is the line content (no trailing newline) and
// Number is its 1-based line number in the original input. For
// LinePlaceholder, Text is empty, Number is zero, and Runs holds a
// single RunNotPresent run whose length is the byte length of the
// counterpart line's text.
//
// Region indexes into the owning descriptor's Regions slice; it is a
// non-owning reference.
type Line struct {
	Kind   LineKind
	Text   string
	Number int
	Region int
	Runs   []Run
}

// Actual reports whether the line exists on its side.
func (l Line) Actual() bool {
	return l.Kind == LineActual
}

// RegionKind classifies an alignment region.
type RegionKind int

const (
	// RegionEqual covers lines identical on both sides.
	RegionEqual RegionKind = iota
	// RegionDelete covers lines present only on the base side.
	RegionDelete
	// RegionAdd covers lines present only on the modified side.
	RegionAdd
	// RegionChange covers a replace block where both sides differ.
	RegionChange
)

// String returns a human-readable representation of the region kind.
func (k RegionKind) String() string {
	switch k {
	case RegionEqual:
		return "Equal"
	case RegionDelete:
		return "Delete"
	case RegionAdd:
		return "Add"
	case RegionChange:
		return "Change"
	default:
		return "Unknown"
	}
}

// Region records one opcode from the line matcher. Both sides of every
// aligned row produced from the opcode reference the same region, even
// when one side's range is empty (a pure insert has an empty base range).
type Region struct {
	Kind      RegionKind
	BaseBegin int
	BaseEnd   int
	ModiBegin int
	ModiEnd   int
}

// ChangeWindow is a contiguous half-open range [Start, End) of aligned
// rows sharing one non-Equal classification. Windows are the navigation
// unit: "next change", "previous change".
type ChangeWindow struct {
	Kind  RegionKind
	Start int
	End   int
}

// Len returns the number of aligned rows the window covers.
func (w ChangeWindow) Len() int {
	return w.End - w.Start
}

// Counts summarizes a comparison by aligned rows.
type Counts struct {
	Added   int // rows present only on the modified side
	Deleted int // rows present only on the base side
	Changed int // rows inside replace blocks
}

// DiffDescriptor is the result of a comparison. It owns both tracks,
// the region arena the tracks' lines index into, and the derived window
// list. It is never mutated after Compare returns; callers may share it
// freely for concurrent read-only access.
type DiffDescriptor struct {
	BaseTrack []Line
	ModiTrack []Line
	Regions   []Region
	Windows   []ChangeWindow
	Counts    Counts
}

// RowCount returns the number of aligned rows. Both tracks always have
// this length.
func (d *DiffDescriptor) RowCount() int {
	return len(d.BaseTrack)
}

// HasChanges reports whether the two inputs differ at all.
func (d *DiffDescriptor) HasChanges() bool {
	return len(d.Windows) > 0
}

// LineRegion returns the region that produced the given line.
func (d *DiffDescriptor) LineRegion(l Line) Region {
	return d.Regions[l.Region]
}

// DefaultIntralineThreshold is the default minimum similarity percent
// required before character-level runs are computed for a replace pair.
const DefaultIntralineThreshold = 60

// Options configures a comparison.
type Options struct {
	// IntralineThreshold is the minimum similarity ratio, as an integer
	// percent in [1, 100], required before character-level diff runs are
	// emitted for a pair of replaced lines. A pair whose ratio falls
	// below the threshold keeps only its region classification; this
	// avoids unreadable dense decoration on unrelated lines. The caller
	// is responsible for clamping the value into range.
	IntralineThreshold int
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{IntralineThreshold: DefaultIntralineThreshold}
}

// Compare aligns base against modi and returns the finished descriptor.
//
// Both inputs are ordered line slices without trailing line terminators;
// either may be empty. The call is a pure function: identical inputs and
// options always yield a value-equal descriptor, and concurrent calls on
// independent inputs need no synchronization.
func Compare(base, modi []string, opts Options) *DiffDescriptor {
	desc := &DiffDescriptor{}
	acc := newAccumulator(desc)

	for _, op := range MatchLines(base, modi) {
		desc.Regions = append(desc.Regions, regionForOpcode(op))
		switch op.Kind {
		case OpEqual:
			emitEqual(acc, base, modi, op)
		case OpDelete:
			emitDelete(acc, base, op.BaseBegin, op.BaseEnd)
		case OpInsert:
			emitInsert(acc, modi, op.ModiBegin, op.ModiEnd)
		case OpReplace:
			emitReplace(acc, base, modi, op, opts.IntralineThreshold)
		}
	}

	buildWindows(desc)
	return desc
}

// SplitLines splits whole-file text into the line slice Compare expects.
// A trailing newline does not produce a final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, 64)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

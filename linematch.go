package sidediff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// OpKind identifies the type of a line-level alignment segment.
type OpKind int

const (
	// OpEqual means the line ranges match on both sides.
	OpEqual OpKind = iota
	// OpDelete means the base range has no counterpart.
	OpDelete
	// OpInsert means the modified range has no counterpart.
	OpInsert
	// OpReplace means both ranges are present but differ.
	OpReplace
)

// String returns a human-readable representation of the opcode kind.
func (k OpKind) String() string {
	switch k {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Opcode is one contiguous alignment segment over the two inputs.
// Ranges are half-open. For OpEqual the range lengths match, for
// OpDelete the modified range is empty, and for OpInsert the base range
// is empty.
type Opcode struct {
	Kind      OpKind
	BaseBegin int
	BaseEnd   int
	ModiBegin int
	ModiEnd   int
}

// MatchLines aligns two line slices and returns the ordered opcode list.
// The opcodes are monotonically non-decreasing and collectively exhaust
// [0, len(base)) and [0, len(modi)); MatchLines panics if the underlying
// matcher ever returns a list that does not, since every downstream
// consumer depends on that partition.
func MatchLines(base, modi []string) []Opcode {
	raw := difflib.NewMatcher(base, modi).GetOpCodes()

	ops := make([]Opcode, 0, len(raw))
	for _, oc := range raw {
		var kind OpKind
		switch oc.Tag {
		case 'e':
			kind = OpEqual
		case 'd':
			kind = OpDelete
		case 'i':
			kind = OpInsert
		case 'r':
			kind = OpReplace
		default:
			panic(fmt.Sprintf("sidediff: unexpected opcode tag %q", oc.Tag))
		}
		ops = append(ops, Opcode{
			Kind:      kind,
			BaseBegin: oc.I1,
			BaseEnd:   oc.I2,
			ModiBegin: oc.J1,
			ModiEnd:   oc.J2,
		})
	}

	verifyPartition(ops, len(base), len(modi))
	return ops
}

// verifyPartition panics unless the opcodes form an ordered, contiguous,
// exhaustive partition of both inputs.
func verifyPartition(ops []Opcode, baseLen, modiLen int) {
	basePos, modiPos := 0, 0
	for _, op := range ops {
		if op.BaseBegin != basePos || op.ModiBegin != modiPos {
			panic(fmt.Sprintf("sidediff: opcode %v does not continue at base=%d modi=%d",
				op, basePos, modiPos))
		}
		if op.BaseEnd < op.BaseBegin || op.ModiEnd < op.ModiBegin {
			panic(fmt.Sprintf("sidediff: opcode %v has a negative range", op))
		}
		switch op.Kind {
		case OpEqual:
			if op.BaseEnd-op.BaseBegin != op.ModiEnd-op.ModiBegin {
				panic(fmt.Sprintf("sidediff: equal opcode %v with mismatched lengths", op))
			}
		case OpDelete:
			if op.ModiEnd != op.ModiBegin {
				panic(fmt.Sprintf("sidediff: delete opcode %v with non-empty modified range", op))
			}
		case OpInsert:
			if op.BaseEnd != op.BaseBegin {
				panic(fmt.Sprintf("sidediff: insert opcode %v with non-empty base range", op))
			}
		}
		basePos = op.BaseEnd
		modiPos = op.ModiEnd
	}
	if basePos != baseLen || modiPos != modiLen {
		panic(fmt.Sprintf("sidediff: opcodes end at base=%d modi=%d, want base=%d modi=%d",
			basePos, modiPos, baseLen, modiLen))
	}
}

// regionForOpcode maps an opcode onto the region recorded in the
// descriptor's arena.
func regionForOpcode(op Opcode) Region {
	var kind RegionKind
	switch op.Kind {
	case OpEqual:
		kind = RegionEqual
	case OpDelete:
		kind = RegionDelete
	case OpInsert:
		kind = RegionAdd
	case OpReplace:
		kind = RegionChange
	}
	return Region{
		Kind:      kind,
		BaseBegin: op.BaseBegin,
		BaseEnd:   op.BaseEnd,
		ModiBegin: op.ModiBegin,
		ModiEnd:   op.ModiEnd,
	}
}

package sidediff

// accumulator pairs up exactly one base line and one modified line per
// aligned row and commits finished pairs to the descriptor's tracks.
//
// Each side has a pending slot and an independent 1-based line counter.
// Caching an actual line stamps it with its side's current counter;
// the counter advances only when the pair is flushed. Flushing links
// both lines to the most recently added region, so callers must append
// the opcode's region to the descriptor before emitting its rows.
type accumulator struct {
	desc        *DiffDescriptor
	pendingBase *Line
	pendingModi *Line
	nextBase    int
	nextModi    int
}

func newAccumulator(desc *DiffDescriptor) *accumulator {
	return &accumulator{desc: desc, nextBase: 1, nextModi: 1}
}

// cacheBase fills the base slot. The slot must be empty.
func (a *accumulator) cacheBase(l Line) {
	if a.pendingBase != nil {
		panic("sidediff: base slot already holds a pending line")
	}
	if l.Kind == LineActual {
		l.Number = a.nextBase
	}
	a.pendingBase = &l
}

// cacheModi fills the modified slot. The slot must be empty.
func (a *accumulator) cacheModi(l Line) {
	if a.pendingModi != nil {
		panic("sidediff: modified slot already holds a pending line")
	}
	if l.Kind == LineActual {
		l.Number = a.nextModi
	}
	a.pendingModi = &l
}

// flush commits the pending pair as one aligned row. Both slots must be
// filled; flushing with an empty slot is a contract violation and panics
// rather than producing tracks of unequal length.
func (a *accumulator) flush() {
	if a.pendingBase == nil {
		panic("sidediff: flush with empty base slot")
	}
	if a.pendingModi == nil {
		panic("sidediff: flush with empty modified slot")
	}

	region := len(a.desc.Regions) - 1
	a.pendingBase.Region = region
	a.pendingModi.Region = region

	a.desc.BaseTrack = append(a.desc.BaseTrack, *a.pendingBase)
	a.desc.ModiTrack = append(a.desc.ModiTrack, *a.pendingModi)

	if a.pendingBase.Kind == LineActual {
		a.nextBase++
	}
	if a.pendingModi.Kind == LineActual {
		a.nextModi++
	}
	a.pendingBase = nil
	a.pendingModi = nil
}

package sidediff

// Opcode region handlers. Each handler consumes one opcode and emits its
// aligned rows through the accumulator. The opcode's region must already
// be the last entry in the descriptor's arena when a handler runs.

// emitEqual zips the two equal-length sub-ranges one to one. Both sides
// are actual lines carrying only whitespace runs.
func emitEqual(acc *accumulator, base, modi []string, op Opcode) {
	for k := 0; k < op.BaseEnd-op.BaseBegin; k++ {
		baseText := base[op.BaseBegin+k]
		modiText := modi[op.ModiBegin+k]
		acc.cacheBase(Line{
			Kind: LineActual,
			Text: baseText,
			Runs: appendWhitespaceRuns(nil, baseText),
		})
		acc.cacheModi(Line{
			Kind: LineActual,
			Text: modiText,
			Runs: appendWhitespaceRuns(nil, modiText),
		})
		acc.flush()
	}
}

// emitDelete turns each base line in [begin, end) into an actual line
// with a full-line deleted run, paired against a placeholder.
func emitDelete(acc *accumulator, base []string, begin, end int) {
	for k := begin; k < end; k++ {
		text := base[k]
		runs := []Run{{Kind: RunDeleted, Start: 0, Length: len(text)}}
		acc.cacheBase(Line{
			Kind: LineActual,
			Text: text,
			Runs: appendWhitespaceRuns(runs, text),
		})
		acc.cacheModi(placeholderFor(text))
		acc.flush()
	}
}

// emitInsert is the mirror of emitDelete for modified-side lines.
func emitInsert(acc *accumulator, modi []string, begin, end int) {
	for k := begin; k < end; k++ {
		text := modi[k]
		runs := []Run{{Kind: RunAdded, Start: 0, Length: len(text)}}
		acc.cacheBase(placeholderFor(text))
		acc.cacheModi(Line{
			Kind: LineActual,
			Text: text,
			Runs: appendWhitespaceRuns(runs, text),
		})
		acc.flush()
	}
}

// emitReplace pairs the replace block's lines strictly by position:
// base[k] against modi[k] for k below the shorter side's length, with the
// intraline differ deciding each pair's character runs. Excess lines on
// the longer side fall back to plain delete or insert rows.
//
// The positional pairing is deliberate. It can pair unrelated lines when
// a replace block contains interior insertions or deletions, but a
// secondary minimum-edit-distance search inside the block would change
// established output for little gain on typical edits.
func emitReplace(acc *accumulator, base, modi []string, op Opcode, threshold int) {
	baseCount := op.BaseEnd - op.BaseBegin
	modiCount := op.ModiEnd - op.ModiBegin
	n := baseCount
	if modiCount < n {
		n = modiCount
	}

	for k := 0; k < n; k++ {
		baseText := base[op.BaseBegin+k]
		modiText := modi[op.ModiBegin+k]
		baseRuns, modiRuns := intralineRuns(baseText, modiText, threshold)
		acc.cacheBase(Line{
			Kind: LineActual,
			Text: baseText,
			Runs: appendWhitespaceRuns(baseRuns, baseText),
		})
		acc.cacheModi(Line{
			Kind: LineActual,
			Text: modiText,
			Runs: appendWhitespaceRuns(modiRuns, modiText),
		})
		acc.flush()
	}

	emitDelete(acc, base, op.BaseBegin+n, op.BaseEnd)
	emitInsert(acc, modi, op.ModiBegin+n, op.ModiEnd)
}

// placeholderFor builds the synthetic line standing opposite an actual
// line. Its single run records the counterpart's byte length so a
// renderer can paint a matching filler extent.
func placeholderFor(counterpart string) Line {
	return Line{
		Kind: LinePlaceholder,
		Runs: []Run{{Kind: RunNotPresent, Start: 0, Length: len(counterpart)}},
	}
}

package sidediff

import "github.com/dacharyc/diffx"

// charDiff runs a character-level Myers diff between two lines.
//
// Preprocessing is disabled: diffx's frequency filter is tuned for word
// and line elements, and a line's character alphabet is small enough
// that the filter would junk most of the input. Minimal edit scripts are
// forced so the matched-character count equals the true LCS length and
// the similarity ratio is exact.
func charDiff(baseChars, modiChars []string) []diffx.DiffOp {
	return diffx.Diff(baseChars, modiChars,
		diffx.WithPreprocessing(false),
		diffx.WithMinimal(true))
}

// splitChars splits a line into per-rune elements and records the byte
// offset of each element. The offsets slice has one extra entry holding
// len(text), so element range [i, j) maps to bytes
// [offsets[i], offsets[j]).
func splitChars(text string) (chars []string, offsets []int) {
	chars = make([]string, 0, len(text))
	offsets = make([]int, 0, len(text)+1)
	for i, r := range text {
		chars = append(chars, string(r))
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return chars, offsets
}

// SimilarityRatio returns the character-level similarity of two lines as
// 2*matched / (len(a)+len(b)), measured in runes. Two empty lines are
// fully similar: the ratio is 1.0.
func SimilarityRatio(a, b string) float64 {
	aChars, _ := splitChars(a)
	bChars, _ := splitChars(b)
	if len(aChars) == 0 && len(bChars) == 0 {
		return 1.0
	}

	matched := 0
	for _, op := range charDiff(aChars, bChars) {
		if op.Type == diffx.Equal {
			matched += op.AEnd - op.AStart
		}
	}
	return 2.0 * float64(matched) / float64(len(aChars)+len(bChars))
}

// intralineRuns computes character-level diff runs for one replace pair.
//
// When the pair's similarity ratio reaches threshold/100 (inclusive),
// the character opcodes are walked: deletions become RunDeleted runs on
// the base line, insertions become RunAdded runs on the modified line,
// and a deletion immediately followed by an insertion becomes a
// RunIntraline run on both lines. Equal spans emit nothing.
//
// Below the threshold no diff runs are emitted on either side; the pair
// is represented only by its region classification. Whitespace runs are
// not handled here and apply regardless of the gate.
func intralineRuns(baseText, modiText string, threshold int) (baseRuns, modiRuns []Run) {
	baseChars, baseOffs := splitChars(baseText)
	modiChars, modiOffs := splitChars(modiText)

	total := len(baseChars) + len(modiChars)
	if total == 0 {
		// Two empty lines: ratio 1.0 by convention, nothing to decorate.
		return nil, nil
	}

	ops := charDiff(baseChars, modiChars)

	matched := 0
	for _, op := range ops {
		if op.Type == diffx.Equal {
			matched += op.AEnd - op.AStart
		}
	}
	ratio := 2.0 * float64(matched) / float64(total)
	if ratio < float64(threshold)/100.0 {
		return nil, nil
	}

	byteRun := func(kind RunKind, offs []int, begin, end int) Run {
		return Run{Kind: kind, Start: offs[begin], Length: offs[end] - offs[begin]}
	}

	for i := 0; i < len(ops); i++ {
		op := ops[i]
		switch op.Type {
		case diffx.Equal:
			// no diff run; whitespace annotation happens separately
		case diffx.Delete:
			// A deletion directly followed by an insertion is an in-place
			// change; both sides get an intraline run.
			if i+1 < len(ops) && ops[i+1].Type == diffx.Insert {
				ins := ops[i+1]
				baseRuns = append(baseRuns, byteRun(RunIntraline, baseOffs, op.AStart, op.AEnd))
				modiRuns = append(modiRuns, byteRun(RunIntraline, modiOffs, ins.BStart, ins.BEnd))
				i++
				continue
			}
			baseRuns = append(baseRuns, byteRun(RunDeleted, baseOffs, op.AStart, op.AEnd))
		case diffx.Insert:
			modiRuns = append(modiRuns, byteRun(RunAdded, modiOffs, op.BStart, op.BEnd))
		}
	}
	return baseRuns, modiRuns
}

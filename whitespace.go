package sidediff

// TabRuns scans text for tab characters and returns one RunTab run per
// maximal group of consecutive tabs. Disjoint groups yield disjoint runs.
func TabRuns(text string) []Run {
	var runs []Run
	i := 0
	for i < len(text) {
		if text[i] != '\t' {
			i++
			continue
		}
		start := i
		for i < len(text) && text[i] == '\t' {
			i++
		}
		runs = append(runs, Run{Kind: RunTab, Start: start, Length: i - start})
	}
	return runs
}

// TrailingWhitespaceRun returns the single run covering the maximal
// suffix of spaces and tabs in text. The second result is false when the
// line has no trailing whitespace.
func TrailingWhitespaceRun(text string) (Run, bool) {
	end := len(text)
	start := end
	for start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
		start--
	}
	if start == end {
		return Run{}, false
	}
	return Run{Kind: RunTrailingWhitespace, Start: start, Length: end - start}, true
}

// appendWhitespaceRuns annotates one actual line with tab and trailing
// whitespace runs. The annotation is independent of the line's diff
// classification; every actual line receives it.
func appendWhitespaceRuns(runs []Run, text string) []Run {
	runs = append(runs, TabRuns(text)...)
	if r, ok := TrailingWhitespaceRun(text); ok {
		runs = append(runs, r)
	}
	return runs
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dacharyc/sidediff"
)

// tabDisplayWidth is how many cells a tab occupies in rendered output.
const tabDisplayWidth = 4

// viewOptions bundles paint-time settings for the side-by-side view.
type viewOptions struct {
	width       int
	lineNumbers bool
	useColor    bool
	pal         palette
	suppress    map[sidediff.RunKind]bool
}

// marker returns the gutter character for a row classification.
func marker(kind sidediff.RegionKind) byte {
	switch kind {
	case sidediff.RegionDelete:
		return '<'
	case sidediff.RegionAdd:
		return '>'
	case sidediff.RegionChange:
		return '|'
	default:
		return ' '
	}
}

// autoWidth picks a column width from the longest line in either track,
// capped so two columns fit a typical terminal.
func autoWidth(desc *sidediff.DiffDescriptor) int {
	const minWidth, maxWidth = 20, 80
	width := minWidth
	measure := func(track []sidediff.Line) {
		for _, l := range track {
			if !l.Actual() {
				continue
			}
			n := len(l.Text) + (tabDisplayWidth-1)*strings.Count(l.Text, "\t")
			if n > width {
				width = n
			}
		}
	}
	measure(desc.BaseTrack)
	measure(desc.ModiTrack)
	if width > maxWidth {
		width = maxWidth
	}
	return width
}

// printRows renders the selected aligned rows to w, separating
// non-contiguous selections with a gap marker.
func printRows(w io.Writer, desc *sidediff.DiffDescriptor, rows []int, view viewOptions) {
	numWidth := numberWidth(desc)

	lastPrinted := -1
	for _, i := range rows {
		if lastPrinted >= 0 && i > lastPrinted+1 {
			fmt.Fprintln(w, "---")
		}
		fmt.Fprintln(w, renderRow(desc, i, numWidth, view))
		lastPrinted = i
	}
}

// numberWidth returns the digit width needed for the larger side's line
// numbers, never narrower than three columns.
func numberWidth(desc *sidediff.DiffDescriptor) int {
	maxNum := 1
	for _, track := range [][]sidediff.Line{desc.BaseTrack, desc.ModiTrack} {
		for _, l := range track {
			if l.Number > maxNum {
				maxNum = l.Number
			}
		}
	}
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 3 {
		width = 3
	}
	return width
}

// renderRow renders one aligned row: base cell, gutter marker, modified
// cell.
func renderRow(desc *sidediff.DiffDescriptor, i, numWidth int, view viewOptions) string {
	baseLine := desc.BaseTrack[i]
	modiLine := desc.ModiTrack[i]
	kind := desc.LineRegion(baseLine).Kind

	var sb strings.Builder
	if view.lineNumbers {
		sb.WriteString(formatNumber(baseLine, numWidth))
		sb.WriteByte(' ')
	}
	sb.WriteString(renderCell(baseLine, view))
	sb.WriteByte(' ')
	sb.WriteByte(marker(kind))
	sb.WriteByte(' ')
	if view.lineNumbers {
		sb.WriteString(formatNumber(modiLine, numWidth))
		sb.WriteByte(' ')
	}
	sb.WriteString(renderCell(modiLine, view))
	return strings.TrimRight(sb.String(), " ")
}

// formatNumber renders a line number gutter cell; placeholders get
// blanks.
func formatNumber(l sidediff.Line, width int) string {
	if !l.Actual() {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, l.Number)
}

// renderCell paints one line into a fixed-width column, applying the
// palette to the line's runs. Suppressed run kinds are skipped here, at
// paint time; the run data itself is always present on the line.
func renderCell(l sidediff.Line, view viewOptions) string {
	if !l.Actual() {
		return strings.Repeat(" ", view.width)
	}

	kinds := cellKinds(l, view.suppress)

	var sb strings.Builder
	visual := 0
	current := noRun
	for i := 0; i < len(l.Text) && visual < view.width; i++ {
		if view.useColor && kinds[i] != current {
			if current != noRun {
				sb.WriteString(ansiReset)
			}
			if kinds[i] != noRun {
				sb.WriteString(view.pal[sidediff.RunKind(kinds[i])])
			}
			current = kinds[i]
		}
		if l.Text[i] == '\t' {
			for t := 0; t < tabDisplayWidth && visual < view.width; t++ {
				sb.WriteByte(' ')
				visual++
			}
		} else {
			sb.WriteByte(l.Text[i])
			if utf8Start(l.Text[i]) {
				visual++
			}
		}
	}
	if view.useColor && current != noRun {
		sb.WriteString(ansiReset)
	}
	for ; visual < view.width; visual++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// noRun marks bytes covered by no paintable run.
const noRun = -1

// cellKinds resolves, per byte of the line's text, which run kind paints
// it. Diff runs win over whitespace runs where they overlap.
func cellKinds(l sidediff.Line, suppress map[sidediff.RunKind]bool) []int {
	kinds := make([]int, len(l.Text))
	for i := range kinds {
		kinds[i] = noRun
	}

	paint := func(r sidediff.Run) {
		for i := r.Start; i < r.Start+r.Length && i < len(kinds); i++ {
			kinds[i] = int(r.Kind)
		}
	}

	for _, r := range l.Runs {
		if suppress[r.Kind] {
			continue
		}
		if r.Kind == sidediff.RunTab || r.Kind == sidediff.RunTrailingWhitespace {
			paint(r)
		}
	}
	for _, r := range l.Runs {
		if suppress[r.Kind] {
			continue
		}
		switch r.Kind {
		case sidediff.RunAdded, sidediff.RunDeleted, sidediff.RunIntraline:
			paint(r)
		}
	}
	return kinds
}

// utf8Start reports whether b begins a UTF-8 sequence, so continuation
// bytes do not count toward the visual width.
func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

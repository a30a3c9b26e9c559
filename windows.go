package sidediff

// buildWindows scans the finished tracks once, merging consecutive rows
// that share one non-Equal classification into change windows and
// tallying per-kind row counts. Rows of an aligned index always share a
// region, so the row classification is simply its region's kind.
func buildWindows(desc *DiffDescriptor) {
	n := len(desc.BaseTrack)
	if n != len(desc.ModiTrack) {
		panic("sidediff: track lengths diverge")
	}

	windowStart := 0
	windowKind := RegionEqual

	closeWindow := func(end int) {
		if windowKind == RegionEqual || end == windowStart {
			return
		}
		w := ChangeWindow{Kind: windowKind, Start: windowStart, End: end}
		desc.Windows = append(desc.Windows, w)
		switch w.Kind {
		case RegionAdd:
			desc.Counts.Added += w.Len()
		case RegionDelete:
			desc.Counts.Deleted += w.Len()
		case RegionChange:
			desc.Counts.Changed += w.Len()
		}
	}

	for i := 0; i < n; i++ {
		kind := desc.Regions[desc.BaseTrack[i].Region].Kind
		if kind != windowKind {
			closeWindow(i)
			windowStart = i
			windowKind = kind
		}
	}
	closeWindow(n)
}

// NextWindow returns the first change window starting after row, for
// "jump to next change" navigation. The second result is false when no
// window follows.
func (d *DiffDescriptor) NextWindow(row int) (ChangeWindow, bool) {
	for _, w := range d.Windows {
		if w.Start > row {
			return w, true
		}
	}
	return ChangeWindow{}, false
}

// PrevWindow returns the last change window starting before row. The
// second result is false when no window precedes it.
func (d *DiffDescriptor) PrevWindow(row int) (ChangeWindow, bool) {
	for i := len(d.Windows) - 1; i >= 0; i-- {
		if d.Windows[i].Start < row {
			return d.Windows[i], true
		}
	}
	return ChangeWindow{}, false
}

// RowsWithContext returns the aligned row indices within context rows of
// any change window, in order. A context of zero or less selects every
// row.
func (d *DiffDescriptor) RowsWithContext(context int) []int {
	n := d.RowCount()
	if context <= 0 {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}

	keep := make([]bool, n)
	for _, w := range d.Windows {
		start := w.Start - context
		if start < 0 {
			start = 0
		}
		end := w.End + context
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			keep[i] = true
		}
	}

	var rows []int
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	return rows
}

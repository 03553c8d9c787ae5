package vlist

// Range is a half-open item index window [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether index falls inside the range.
func (r Range) Contains(index int) bool { return index >= r.Start && index < r.End }

// VisibleRange computes the item window to materialize for a viewport of
// viewportH rows scrolled offset rows into a list of count items of itemH
// rows each, expanded by buffer extra items on each edge and clamped to
// [0, count].
//
// A non-positive viewportH means the viewport hasn't been measured yet;
// the window then degrades to the whole list so rendering stays correct
// without virtualization.
func VisibleRange(offset, viewportH, itemH, buffer, count int) Range {
	if count <= 0 || itemH <= 0 {
		return Range{}
	}
	if viewportH <= 0 {
		return Range{Start: 0, End: count}
	}

	start := offset/itemH - buffer
	if start < 0 {
		start = 0
	}

	end := (offset+viewportH+itemH-1)/itemH + buffer
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}

	return Range{Start: start, End: end}
}

// MaxOffset returns the furthest scroll offset, in rows, that still fills
// the viewport with content.
func MaxOffset(totalH, viewportH int) int {
	max := totalH - viewportH
	if max < 0 {
		return 0
	}
	return max
}

// clampOffset bounds a scroll offset to the scrollable extent.
func clampOffset(offset, totalH, viewportH int) int {
	if max := MaxOffset(totalH, viewportH); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

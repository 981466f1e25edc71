package textwrap

// Viewport describes which logical lines intersect a fixed-height viewport
// at a visual-row scroll offset. Scroll math runs in visual rows while
// keyboard navigation runs in logical lines; this package is the only place
// reconciling the two coordinate spaces.
type Viewport struct {
	// First is the index of the first visible logical line.
	First int
	// Visible holds the logical line indexes intersecting the viewport,
	// in order. A partially visible last line is included.
	Visible []int
	// StartRow is how many visual rows of the first visible line are
	// hidden above the viewport, letting renderers resume mid wrapped
	// line instead of snapping to line boundaries.
	StartRow int
}

// VisibleLines computes the viewport for the given scroll offset. The offset
// is clamped to the legal range before the walk.
func VisibleLines(lines []string, scroll, height, budget int, mode Mode) Viewport {
	vp := Viewport{}
	if len(lines) == 0 || height <= 0 {
		return vp
	}
	if max := MaxScroll(lines, height, budget, mode); scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}

	row := 0
	for i, line := range lines {
		n := Rows(line, budget, mode)
		if row+n <= scroll {
			row += n
			continue
		}
		if len(vp.Visible) == 0 {
			vp.First = i
			vp.StartRow = scroll - row
		}
		vp.Visible = append(vp.Visible, i)
		row += n
		if row >= scroll+height {
			break
		}
	}
	return vp
}

// EnsureVisible returns the minimally adjusted scroll offset that keeps the
// selected line fully on screen. It scrolls down only when the selection
// ends below the bottom edge and up only when it starts above the top edge;
// a selection already inside the viewport leaves the offset untouched.
func EnsureVisible(lines []string, selected, scroll, height, budget int, mode Mode) int {
	if len(lines) == 0 || height <= 0 {
		return 0
	}
	if selected < 0 {
		selected = 0
	}
	if selected >= len(lines) {
		selected = len(lines) - 1
	}

	top := LineRow(lines, selected, budget, mode)
	bottom := top + Rows(lines[selected], budget, mode) - 1
	if top < scroll {
		scroll = top
	}
	if bottom >= scroll+height {
		scroll = bottom - height + 1
	}
	if max := MaxScroll(lines, height, budget, mode); scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// LineRow returns the visual row at which the given logical line starts.
func LineRow(lines []string, index, budget int, mode Mode) int {
	if index <= 0 {
		return 0
	}
	if mode == NoWrap {
		if index > len(lines) {
			return len(lines)
		}
		return index
	}
	row := 0
	for i := 0; i < index && i < len(lines); i++ {
		row += Rows(lines[i], budget, mode)
	}
	return row
}

// TotalRows returns the visual row count of all lines combined.
func TotalRows(lines []string, budget int, mode Mode) int {
	if mode == NoWrap {
		return len(lines)
	}
	total := 0
	for _, line := range lines {
		total += Rows(line, budget, mode)
	}
	return total
}

// MaxScroll returns the largest legal scroll offset, never negative.
func MaxScroll(lines []string, height, budget int, mode Mode) int {
	total := TotalRows(lines, budget, mode)
	if height <= 0 || total <= height {
		return 0
	}
	return total - height
}

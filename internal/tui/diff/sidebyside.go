package diff

// Cell is one side of a side-by-side row. Padding cells keep the File tag
// of the run they pad so comments stay addressable on those rows.
type Cell struct {
	Kind LineKind
	Text string
	File string
}

// Row is one visual row of the side-by-side layout. RowIndex is monotonic
// across the whole sequence and independent of per-file comment keys.
type Row struct {
	Left     Cell
	Right    Cell
	RowIndex int
}

// ToSideBySide converts the unified line sequence into paired rows with a
// single left-to-right scan. Headers and context mirror to both sides. A
// removed line starts collection of the maximal contiguous removed run and
// the added run immediately following; the two runs zip positionally up to
// the longer length, padding the shorter side with empty cells. Interleaved
// removed/added/removed/added sequences therefore pair per contiguous run,
// not globally. That can differ visually from a semantic diff and is the
// intended behavior.
func ToSideBySide(lines []Line) []Row {
	var rows []Row
	i := 0
	for i < len(lines) {
		ln := lines[i]
		switch ln.Kind {
		case LineRemoved:
			r := runLen(lines, i, LineRemoved)
			a := runLen(lines, i+r, LineAdded)
			n := r
			if a > n {
				n = a
			}
			for j := 0; j < n; j++ {
				row := Row{
					Left:     Cell{Kind: LineEmpty, File: ln.File},
					Right:    Cell{Kind: LineEmpty, File: ln.File},
					RowIndex: len(rows),
				}
				if j < r {
					row.Left = asCell(lines[i+j])
				}
				if j < a {
					row.Right = asCell(lines[i+r+j])
				}
				rows = append(rows, row)
			}
			i += r + a
		case LineAdded:
			// An added run with no removed run before it.
			rows = append(rows, Row{
				Left:     Cell{Kind: LineEmpty, File: ln.File},
				Right:    asCell(ln),
				RowIndex: len(rows),
			})
			i++
		default:
			cell := asCell(ln)
			rows = append(rows, Row{Left: cell, Right: cell, RowIndex: len(rows)})
			i++
		}
	}
	return rows
}

func runLen(lines []Line, start int, kind LineKind) int {
	n := 0
	for i := start; i < len(lines) && lines[i].Kind == kind; i++ {
		n++
	}
	return n
}

func asCell(ln Line) Cell {
	return Cell{Kind: ln.Kind, Text: ln.Text, File: ln.File}
}

package diff

// NoKey marks lines and rows that have no stable comment key: removed
// lines, headers, and padding cells.
const NoKey = -1

// Keys assigns every unified line its per-file comment key: the 0-based
// position of the line within the current version of its file. Only lines
// that exist in the current version advance the counter, so added and
// context lines get keys while removed lines and headers do not. This
// mirrors how a reviewer says "line N" about the file on disk.
func Keys(lines []Line) []int {
	keys := make([]int, len(lines))
	counters := map[string]int{}
	for i, ln := range lines {
		keys[i] = NoKey
		if ln.Kind != LineAdded && ln.Kind != LineContext {
			continue
		}
		keys[i] = counters[ln.File]
		counters[ln.File]++
	}
	return keys
}

// RowKeys assigns comment keys to side-by-side rows. A row keys off its
// right cell, the side showing the current file version. Because run
// zipping preserves the relative order of added and context lines, RowKeys
// hands out exactly the keys Keys computes for the unified layout of the
// same diff. Comments survive a layout toggle because of this, not by
// accident.
func RowKeys(rows []Row) []int {
	keys := make([]int, len(rows))
	counters := map[string]int{}
	for i, r := range rows {
		keys[i] = NoKey
		if r.Right.Kind != LineAdded && r.Right.Kind != LineContext {
			continue
		}
		keys[i] = counters[r.Right.File]
		counters[r.Right.File]++
	}
	return keys
}

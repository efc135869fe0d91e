package alignment

import (
	"fmt"
	"sort"

	"github.com/cath-tools/strucore/errs"
)

// SplitMapping is the restriction of a full Alignment to the entries of one
// half of a Split, with additional rows inserted so that every half-entry's
// backbone-complete residues are represented locally even if some of them
// never appear as Present anywhere in the full alignment.
type SplitMapping struct {
	entries   []int // original structure indices, in this half, ascending
	length    int
	rows      [][]Cell // rows[localRow][localEntry]
	origCol   []int    // rows[i] came from this original alignment column, or -1 if inserted
	posToRow  []map[uint32]int
}

// NumEntries returns how many structures this half covers.
func (m *SplitMapping) NumEntries() int { return len(m.entries) }

// Length returns the number of local rows (>= number of projected columns).
func (m *SplitMapping) Length() int { return m.length }

// Entries returns the original structure indices covered by this half, in
// ascending order.
func (m *SplitMapping) Entries() []int { return append([]int(nil), m.entries...) }

// IndexOfOriginalIndex returns the local row that corresponds to original
// alignment column col, or -1 if that column was dropped (entirely empty
// for this half) or never existed as a projected row.
func (m *SplitMapping) IndexOfOriginalIndex(col int) int {
	for i, oc := range m.origCol {
		if oc == col {
			return i
		}
	}
	return -1
}

// PositionInStructure returns the backbone position stored for localEntry
// (an index into Entries()) at localRow.
func (m *SplitMapping) PositionInStructure(localEntry, localRow int) (uint32, bool) {
	c := m.rows[localRow][localEntry]
	return c.Position, c.Present
}

// LocalRowOfStructureIndex returns the local row holding the given backbone
// position for localEntry, if any.
func (m *SplitMapping) LocalRowOfStructureIndex(localEntry int, structureIdx uint32) (int, bool) {
	row, ok := m.posToRow[localEntry][structureIdx]
	return row, ok
}

// BuildSplitMapping restricts alignment to entriesInHalf (original indices,
// need not be sorted) and inserts rows for any backbone positions of those
// entries (0..backboneLengths[e]-1) that never appear as Present anywhere
// in the full alignment. Complexity: O(length * |half|).
func BuildSplitMapping(alignment *Alignment, entriesInHalf []int, backboneLengths []int) (*SplitMapping, error) {
	if len(entriesInHalf) == 0 {
		return nil, errs.New(errs.KindInvalidArgument, "alignment.BuildSplitMapping",
			fmt.Errorf("half must be non-empty"))
	}
	entries := append([]int(nil), entriesInHalf...)
	sort.Ints(entries)
	localIndexOf := make(map[int]int, len(entries))
	for li, e := range entries {
		if e < 0 || e >= alignment.numEntries {
			return nil, errs.New(errs.KindInvalidArgument, "alignment.BuildSplitMapping",
				fmt.Errorf("entry index %d out of range", e))
		}
		localIndexOf[e] = li
	}

	// 1. Project: keep only columns where some half-entry is present.
	type projRow struct {
		origCol int
		cells   []Cell
	}
	var projected []projRow
	covered := make([]map[uint32]bool, len(entries))
	for i := range covered {
		covered[i] = make(map[uint32]bool)
	}
	for row := 0; row < alignment.length; row++ {
		cells := make([]Cell, len(entries))
		any := false
		for li, e := range entries {
			c := alignment.cells[row][e]
			cells[li] = c
			if c.Present {
				any = true
				covered[li][c.Position] = true
			}
		}
		if any {
			projected = append(projected, projRow{origCol: row, cells: cells})
		}
	}

	// 2. Find uncovered positions per entry that need inserted rows.
	type insertion struct {
		localEntry int
		position   uint32
		afterIdx   int // index into projected after which this insertion goes; -1 = before all
	}
	var insertions []insertion
	for li, e := range entries {
		if e >= len(backboneLengths) {
			return nil, errs.New(errs.KindInvalidArgument, "alignment.BuildSplitMapping",
				fmt.Errorf("missing backbone length for entry %d", e))
		}
		n := backboneLengths[e]
		for pos := uint32(0); int(pos) < n; pos++ {
			if covered[li][pos] {
				continue
			}
			after := -1
			for pi, pr := range projected {
				if pr.cells[li].Present && pr.cells[li].Position < pos {
					after = pi
				}
			}
			insertions = append(insertions, insertion{localEntry: li, position: pos, afterIdx: after})
		}
	}
	sort.SliceStable(insertions, func(i, j int) bool {
		if insertions[i].afterIdx != insertions[j].afterIdx {
			return insertions[i].afterIdx < insertions[j].afterIdx
		}
		if insertions[i].localEntry != insertions[j].localEntry {
			return insertions[i].localEntry < insertions[j].localEntry
		}
		return insertions[i].position < insertions[j].position
	})

	// 3. Merge projected rows and insertions into the final local-row list.
	var rows [][]Cell
	var origCol []int
	insIdx := 0
	emit := func(afterIdx int) {
		for insIdx < len(insertions) && insertions[insIdx].afterIdx == afterIdx {
			ins := insertions[insIdx]
			cells := make([]Cell, len(entries))
			cells[ins.localEntry] = Cell{Position: ins.position, Present: true}
			rows = append(rows, cells)
			origCol = append(origCol, -1)
			insIdx++
		}
	}
	emit(-1)
	for pi, pr := range projected {
		rows = append(rows, pr.cells)
		origCol = append(origCol, pr.origCol)
		emit(pi)
	}

	posToRow := make([]map[uint32]int, len(entries))
	for li := range posToRow {
		posToRow[li] = make(map[uint32]int)
	}
	for rowIdx, cells := range rows {
		for li, c := range cells {
			if c.Present {
				posToRow[li][c.Position] = rowIdx
			}
		}
	}

	return &SplitMapping{
		entries:  entries,
		length:   len(rows),
		rows:     rows,
		origCol:  origCol,
		posToRow: posToRow,
	}, nil
}

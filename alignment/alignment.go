// Package alignment implements the multi-structure alignment data model and
// its windowed scoring, the split/split-mapping machinery used to restrict
// an alignment to a subset of structures, and the iterative refiner that
// proposes and accepts improving realignments.
//
// The dense-table-plus-functional-options shape is grounded on a row-major
// matrix layout with validated functional options; the accept/reject state
// machine in refiner.go is grounded on a branch-and-bound style loop.
package alignment

import (
	"fmt"
	"math"

	"github.com/cath-tools/strucore/errs"
)

// Cell is one entry in the Alignment table: an optional backbone-complete
// position index plus an optional, independent score in [0,1].
type Cell struct {
	Position uint32
	Present  bool
	Score    float32
	HasScore bool
}

// Alignment is the logical (length x numEntries) table: for each alignment
// column (called a "row" throughout this package, to match the table's
// row-major storage) and each entry, an optional position index into that
// entry's backbone-complete residue list, with an optional per-cell score.
type Alignment struct {
	length     int
	numEntries int
	cells      [][]Cell // cells[row][entry]
}

// NewAlignment allocates an empty (all-absent) Alignment of the given
// shape.
func NewAlignment(length, numEntries int) (*Alignment, error) {
	if length < 0 || numEntries <= 0 {
		return nil, errs.New(errs.KindInvalidArgument, "alignment.NewAlignment",
			fmt.Errorf("invalid shape length=%d numEntries=%d", length, numEntries))
	}
	cells := make([][]Cell, length)
	for i := range cells {
		cells[i] = make([]Cell, numEntries)
	}
	return &Alignment{length: length, numEntries: numEntries, cells: cells}, nil
}

// Length returns the number of columns.
func (a *Alignment) Length() int { return a.length }

// NumEntries returns the number of entries (structures) in the alignment.
func (a *Alignment) NumEntries() int { return a.numEntries }

// PositionOf returns the backbone-complete position index stored at
// (entry, row), if present.
func (a *Alignment) PositionOf(entry, row int) (uint32, bool) {
	c := a.cells[row][entry]
	return c.Position, c.Present
}

// SetPosition stores a position at (entry, row). Passing present=false
// clears both the position and any score, preserving the invariant that a
// score is only ever present alongside a position.
func (a *Alignment) SetPosition(row, entry int, position uint32, present bool) {
	if !present {
		a.cells[row][entry] = Cell{}
		return
	}
	c := &a.cells[row][entry]
	c.Position = position
	c.Present = true
}

// ScoreOf returns the score stored at (entry, row), if present.
func (a *Alignment) ScoreOf(entry, row int) (float32, bool) {
	c := a.cells[row][entry]
	return c.Score, c.HasScore
}

// SetScore stores a score at (entry, row). It is the caller's
// responsibility to have already set a position there (Validate enforces
// the invariant).
func (a *Alignment) SetScore(row, entry int, score float32) {
	c := &a.cells[row][entry]
	c.Score = score
	c.HasScore = true
}

// NumPresentPositions returns how many entries have a position present at
// the given row.
func (a *Alignment) NumPresentPositions(row int) int {
	n := 0
	for _, c := range a.cells[row] {
		if c.Present {
			n++
		}
	}
	return n
}

// IterEntriesPresentAt returns the entry indices with a position present at
// the given row, in ascending order.
func (a *Alignment) IterEntriesPresentAt(row int) []int {
	out := make([]int, 0, a.numEntries)
	for e, c := range a.cells[row] {
		if c.Present {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the table's invariants: positions strictly increase down
// each entry's column (skipping absent rows), every score is NaN-free, and
// score-present implies position-present.
func (a *Alignment) Validate() error {
	for entry := 0; entry < a.numEntries; entry++ {
		lastPos := int64(-1)
		for row := 0; row < a.length; row++ {
			c := a.cells[row][entry]
			if c.HasScore && !c.Present {
				return errs.At(errs.KindInvalidArgument, "alignment.Alignment.Validate",
					fmt.Errorf("row %d entry %d has a score without a position", row, entry),
					errs.Location{Entry: entry, Column: row, EdgeI: -1, EdgeJ: -1})
			}
			if c.HasScore && math.IsNaN(float64(c.Score)) {
				return errs.At(errs.KindInvalidArgument, "alignment.Alignment.Validate",
					fmt.Errorf("row %d entry %d has a NaN score", row, entry),
					errs.Location{Entry: entry, Column: row, EdgeI: -1, EdgeJ: -1})
			}
			if !c.Present {
				continue
			}
			if int64(c.Position) <= lastPos {
				return errs.At(errs.KindInvalidArgument, "alignment.Alignment.Validate",
					fmt.Errorf("row %d entry %d position %d does not strictly increase from %d", row, entry, c.Position, lastPos),
					errs.Location{Entry: entry, Column: row, EdgeI: -1, EdgeJ: -1})
			}
			lastPos = int64(c.Position)
		}
	}
	return nil
}

// Clone returns a deep copy of a.
func (a *Alignment) Clone() *Alignment {
	cells := make([][]Cell, a.length)
	for i, row := range a.cells {
		cells[i] = append([]Cell(nil), row...)
	}
	return &Alignment{length: a.length, numEntries: a.numEntries, cells: cells}
}

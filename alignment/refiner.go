package alignment

import (
	"fmt"

	"github.com/cath-tools/strucore/ctxlog"
	"github.com/cath-tools/strucore/errs"
)

// HalvesAligner computes a fresh pairwise alignment between two halves of a
// split alignment during the Realign step: align_halves(half_a, half_b) ->
// Alignment. The project's actual pairwise dynamic-programming aligner is
// out of scope here; this interface only fixes the contract it must meet.
type HalvesAligner interface {
	AlignHalves(a, b *SplitMapping) (*Alignment, error)
}

// OriginalColumnAligner is the bundled baseline HalvesAligner: it
// recombines two SplitMappings derived from the same parent alignment by
// merging on their shared original-column provenance, assigning every
// present cell a fixed score of 1.0 (no geometric rescoring is performed;
// a production pairwise DP would replace this). It exists so the refiner's
// state machine is exercisable without an external DP dependency.
type OriginalColumnAligner struct{}

// AlignHalves implements HalvesAligner by a stable merge-join on origCol.
// Columns of the returned Alignment are indexed by each entry's original
// global structure index, not by its position in either half — the halves
// partition the entry set, they don't relabel it.
func (OriginalColumnAligner) AlignHalves(a, b *SplitMapping) (*Alignment, error) {
	numEntries := len(a.entries) + len(b.entries)

	type row struct {
		cells map[int]Cell
	}
	var rows []row
	ia, ib := 0, 0
	na, nb := len(a.rows), len(b.rows)

	newCells := func() map[int]Cell { return make(map[int]Cell, numEntries) }

	for ia < na || ib < nb {
		switch {
		case ia < na && a.origCol[ia] < 0:
			cells := newCells()
			for li, e := range a.entries {
				cells[e] = a.rows[ia][li]
			}
			rows = append(rows, row{cells})
			ia++
		case ib < nb && b.origCol[ib] < 0:
			cells := newCells()
			for li, e := range b.entries {
				cells[e] = b.rows[ib][li]
			}
			rows = append(rows, row{cells})
			ib++
		case ia >= na:
			cells := newCells()
			for li, e := range b.entries {
				cells[e] = b.rows[ib][li]
			}
			rows = append(rows, row{cells})
			ib++
		case ib >= nb:
			cells := newCells()
			for li, e := range a.entries {
				cells[e] = a.rows[ia][li]
			}
			rows = append(rows, row{cells})
			ia++
		default:
			ca, cb := a.origCol[ia], b.origCol[ib]
			switch {
			case ca == cb:
				cells := newCells()
				for li, e := range a.entries {
					cells[e] = a.rows[ia][li]
				}
				for li, e := range b.entries {
					cells[e] = b.rows[ib][li]
				}
				rows = append(rows, row{cells})
				ia++
				ib++
			case ca < cb:
				cells := newCells()
				for li, e := range a.entries {
					cells[e] = a.rows[ia][li]
				}
				rows = append(rows, row{cells})
				ia++
			default:
				cells := newCells()
				for li, e := range b.entries {
					cells[e] = b.rows[ib][li]
				}
				rows = append(rows, row{cells})
				ib++
			}
		}
	}

	out, err := NewAlignment(len(rows), numEntries)
	if err != nil {
		return nil, err
	}
	for r, rw := range rows {
		for e, c := range rw.cells {
			if c.Present {
				out.SetPosition(r, e, c.Position, true)
				out.SetScore(r, e, 1.0)
			}
		}
	}
	return out, nil
}

// Config configures a Refiner.
type Config struct {
	// MaxRounds bounds the number of full passes over the split
	// enumerator; 0 means unbounded (rely solely on the no-improvement
	// termination).
	MaxRounds int

	// WindowRadius is the triangular-window radius used by ColumnScore.
	WindowRadius int

	// ScoreVariant selects which normalisation ColumnScore uses when
	// judging whether a proposed realignment improves on the current one.
	ScoreVariant ScoreVariant

	// Aligner performs the Realign step. Defaults to
	// OriginalColumnAligner{} if nil.
	Aligner HalvesAligner

	// ExtraSplits, if set, supplies additional split candidates (e.g. the
	// spanning-tree-edge splits owned by the superpose package) appended
	// after the base enumerator.
	ExtraSplits func() []Split
}

// Refiner iteratively improves a multi-structure alignment via the
// Propose -> Restrict -> Realign -> Score -> Accept/Reject state machine.
type Refiner struct {
	cfg Config
}

// NewRefiner builds a Refiner with the given configuration, filling in
// OriginalColumnAligner{} if cfg.Aligner is nil.
func NewRefiner(cfg Config) *Refiner {
	if cfg.Aligner == nil {
		cfg.Aligner = OriginalColumnAligner{}
	}
	return &Refiner{cfg: cfg}
}

// Result summarises a refinement run.
type Result struct {
	Alignment *Alignment
	Rounds    int
	Accepted  int
	Rejected  int
}

func (r *Refiner) splitEnumerator(n int) ([]Split, error) {
	var splits []Split
	if n <= 8 {
		s, err := EnumerateSplits(n)
		if err != nil {
			return nil, err
		}
		splits = s
	} else {
		splits = SingletonSplits(n)
	}
	if r.cfg.ExtraSplits != nil {
		splits = append(splits, r.cfg.ExtraSplits()...)
	}
	return splits, nil
}

func (r *Refiner) totalScore(a *Alignment) float64 {
	var sum float64
	for row := 0; row < a.Length(); row++ {
		s, err := a.ColumnScore(row, r.cfg.WindowRadius, r.cfg.ScoreVariant)
		if err != nil {
			continue
		}
		sum += s
	}
	return sum
}

// Run executes the refiner's main loop starting from initial, returning the
// (possibly improved) alignment and a summary of accept/reject decisions.
// backboneLengths[e] gives the backbone-complete residue count of entry e,
// needed to build split mappings.
func (r *Refiner) Run(ctx *ctxlog.Context, initial *Alignment, backboneLengths []int) (*Result, error) {
	if ctx == nil {
		ctx = ctxlog.New()
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	current := initial.Clone()
	currentScore := r.totalScore(current)

	splits, err := r.splitEnumerator(current.NumEntries())
	if err != nil {
		return nil, err
	}

	tried := make(map[string]bool, len(splits))
	res := &Result{Alignment: current}

	maxRounds := r.cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = len(splits) + 1
	}

	for round := 0; round < maxRounds; round++ {
		res.Rounds++
		improvedThisRound := false

		for _, split := range splits {
			key := split.Key()
			if tried[key] {
				continue
			}
			tried[key] = true

			if len(split.First) == 0 || len(split.Second) == 0 {
				continue
			}

			mappingA, errA := BuildSplitMapping(current, split.First, backboneLengths)
			mappingB, errB := BuildSplitMapping(current, split.Second, backboneLengths)
			if errA != nil {
				return nil, errA // structural precondition violation: fatal
			}
			if errB != nil {
				return nil, errB
			}

			candidate, alignErr := r.cfg.Aligner.AlignHalves(mappingA, mappingB)
			if alignErr != nil {
				if errs.Is(alignErr, errs.KindNumerical) {
					ctx.Log().Warn("realign failed numerically, rejecting", "split", key, "err", alignErr)
					res.Rejected++
					continue
				}
				return nil, alignErr
			}
			if err := candidate.Validate(); err != nil {
				return nil, fmt.Errorf("refiner: realigned candidate violated alignment invariants: %w", err)
			}

			candidateScore := r.totalScore(candidate)
			if candidateScore > currentScore {
				current = candidate
				currentScore = candidateScore
				res.Alignment = current
				res.Accepted++
				improvedThisRound = true
			} else {
				res.Rejected++
			}
		}

		if !improvedThisRound {
			break
		}
	}

	return res, nil
}

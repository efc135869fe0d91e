// Package tally aligns a "PDB residue list" against a parallel
// "coords-only residue list" that may have nulls or legitimately skip
// residues.
//
// The control-flow shape (two cursors consumed in lock-step, with a small
// amount of lookahead permitted under configurable options) follows a
// two-sequence alignment style with an Options struct and a dedicated
// cursor-advance loop, adapted here to an exact/gap matcher rather than a
// numeric distance.
package tally

import (
	"fmt"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/residue"
)

// IndexSet is a small set of PDB indices that are always permitted to be
// skipped. A map-backed set is used here rather than a fixed-width bitset.
type IndexSet map[int]struct{}

// NewIndexSet builds an IndexSet from the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is in the set.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Options configures Tally's tolerance for gaps in the coord stream.
type Options struct {
	// PermitBreaksWithoutNullResidues allows the coord stream to omit PDB
	// residues anywhere without a corresponding null entry (older formats).
	PermitBreaksWithoutNullResidues bool

	// PermitHeadTailBreakWithoutNullResidue allows unmatched PDB residues
	// at the very start or the very end of the list, without a null.
	PermitHeadTailBreakWithoutNullResidue bool

	// SkippablePDBIndices are PDB residues that may always be skipped,
	// regardless of the other flags.
	SkippablePDBIndices IndexSet
}

// Pair is one matched (pdbIndex, coordIndex) entry in Tally's result.
type Pair struct {
	PDBIndex   int
	CoordIndex int
}

// Tally aligns pdbNames against coordNames (coordNames[i] == nil denotes a
// null/unresolved residue) and returns the monotonically increasing list of
// matched index pairs.
//
// Each null encountered in coordNames banks one "skip credit": a later
// non-null coord entry may consume banked credits (or
// SkippablePDBIndices / PermitBreaksWithoutNullResidues) to silently pass
// over PDB residues that have no coord counterpart, without requiring the
// null to sit at the exact position of the skipped PDB residue.
func Tally(pdbNames []residue.ID, coordNames []*residue.ID, opts Options) ([]Pair, error) {
	if err := validatePDBNames(pdbNames); err != nil {
		return nil, err
	}
	if err := validateCoordNames(coordNames); err != nil {
		return nil, err
	}

	skippable := opts.SkippablePDBIndices
	if skippable == nil {
		skippable = IndexSet{}
	}

	var pairs []Pair
	pdbCursor := 0
	skipCredits := 0

	for coordIdx, entry := range coordNames {
		if entry == nil {
			skipCredits++
			continue
		}
		target := *entry

		for pdbCursor < len(pdbNames) && pdbNames[pdbCursor] != target {
			atHead := len(pairs) == 0
			switch {
			case skippable.Has(pdbCursor):
				// free skip, no credit consumed
			case opts.PermitBreaksWithoutNullResidues:
				// free skip, no credit consumed
			case opts.PermitHeadTailBreakWithoutNullResidue && atHead:
				// free skip, no credit consumed
			case skipCredits > 0:
				skipCredits--
			default:
				return nil, errs.At(errs.KindTally, "tally.Tally",
					fmt.Errorf("coord residue %s at index %d cannot be matched", target, coordIdx),
					errs.Location{Entry: -1, Column: coordIdx, EdgeI: -1, EdgeJ: -1})
			}
			pdbCursor++
		}
		if pdbCursor >= len(pdbNames) {
			return nil, errs.At(errs.KindTally, "tally.Tally",
				fmt.Errorf("coord residue %s at index %d has no remaining PDB residue to match", target, coordIdx),
				errs.Location{Entry: -1, Column: coordIdx, EdgeI: -1, EdgeJ: -1})
		}
		pairs = append(pairs, Pair{PDBIndex: pdbCursor, CoordIndex: coordIdx})
		pdbCursor++
	}

	if pdbCursor < len(pdbNames) && !opts.PermitHeadTailBreakWithoutNullResidue && !opts.PermitBreaksWithoutNullResidues {
		return nil, errs.New(errs.KindTally, "tally.Tally",
			fmt.Errorf("%d leftover PDB residue(s) at the end were not matched", len(pdbNames)-pdbCursor))
	}

	return pairs, nil
}

func validatePDBNames(pdbNames []residue.ID) error {
	seen := make(map[residue.ID]bool, len(pdbNames))
	for _, id := range pdbNames {
		if seen[id] {
			return errs.New(errs.KindInvalidArgument, "tally.Tally",
				fmt.Errorf("duplicate PDB residue id %s", id))
		}
		seen[id] = true
	}
	return nil
}

func validateCoordNames(coordNames []*residue.ID) error {
	for i := 1; i < len(coordNames); i++ {
		prev, cur := coordNames[i-1], coordNames[i]
		if prev == nil && cur == nil {
			return errs.New(errs.KindInvalidArgument, "tally.Tally",
				fmt.Errorf("consecutive null coord residues at index %d", i))
		}
		if prev != nil && cur != nil && *prev == *cur {
			return errs.New(errs.KindInvalidArgument, "tally.Tally",
				fmt.Errorf("consecutive duplicate coord residue %s at index %d", *cur, i))
		}
	}
	return nil
}

package residue

import (
	"fmt"
	"math"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
)

// SecondaryStructure labels a residue's local backbone conformation.
type SecondaryStructure uint8

const (
	SSCoil SecondaryStructure = iota
	SSHelix
	SSStrand
)

// String renders the secondary-structure label as a single letter, matching
// the FASTA-like rendering convention used by alignment.ToFASTA.
func (s SecondaryStructure) String() string {
	switch s {
	case SSHelix:
		return "H"
	case SSStrand:
		return "E"
	default:
		return "C"
	}
}

// Residue is a single coordinate record. A Residue with
// Null == true carries no ID and no coordinates, and represents a chain
// break or unresolvable entry in the coord-only stream.
type Residue struct {
	Null bool

	ID        ID
	AminoAcid byte // single-letter amino-acid code

	CA Coord3
	CB *Coord3 // optional
	N  *Coord3 // optional

	SecondaryStructure SecondaryStructure
	AccessibleSurface  uint16 // Å², 0 if unknown

	// Phi/Psi are expressed in revolutions: 0 <= theta < 1.
	Phi *float64
	Psi *float64
}

// Coord3 is a plain (non-validated) coordinate carrier used only for
// residue storage; conversion to geomkit.Coord happens (and is validated)
// at the geometry boundary via Residue.CAGeom.
type Coord3 struct{ X, Y, Z float64 }

// CAGeom converts the residue's Cα record into a validated geomkit.Coord.
func (r Residue) CAGeom() (geomkit.Coord, error) {
	if r.Null {
		return geomkit.Coord{}, errs.New(errs.KindInvalidArgument, "residue.Residue.CAGeom",
			fmt.Errorf("null residue has no coordinates"))
	}
	return geomkit.NewCoord(r.CA.X, r.CA.Y, r.CA.Z)
}

// HasCB reports whether this residue carries a Cβ coordinate.
func (r Residue) HasCB() bool { return r.CB != nil }

// ValidPhiPsi reports whether v, expressed as a fraction of a full
// revolution, satisfies 0 <= v < 1.
func ValidPhiPsi(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < 1
}

// List is an ordered list of Residue records as read from a structure: the
// "full" PDB list, or a "coords-only" list (which may contain Null entries).
type List []Residue

// BackboneComplete returns the sublist of residues carrying at least a Cα
// coordinate, together with bbOfFull, a stable map from the index in the
// returned sublist back to the index in the original full list.
func (l List) BackboneComplete() (bb List, bbOfFull []int) {
	for i, r := range l {
		if r.Null {
			continue
		}
		bb = append(bb, r)
		bbOfFull = append(bbOfFull, i)
	}
	return bb, bbOfFull
}

// IDs returns the ResidueIds of the non-null entries, in order.
func (l List) IDs() []ID {
	out := make([]ID, 0, len(l))
	for _, r := range l {
		if !r.Null {
			out = append(out, r.ID)
		}
	}
	return out
}

// ValidateDistinctInsertCodes checks that no two residues in l share a
// chain+number with the same (or absent) insert code: two IDs with the
// same chain and number must have distinct insert codes.
func (l List) ValidateDistinctInsertCodes() error {
	seen := make(map[string]map[rune]bool)
	for _, r := range l {
		if r.Null {
			continue
		}
		key := fmt.Sprintf("%s:%d", r.ID.Chain, r.ID.Number)
		if seen[key] == nil {
			seen[key] = make(map[rune]bool)
		}
		if seen[key][r.ID.InsertCode] {
			return errs.New(errs.KindInvalidArgument, "residue.List.ValidateDistinctInsertCodes",
				fmt.Errorf("duplicate residue id %s", r.ID))
		}
		seen[key][r.ID.InsertCode] = true
	}
	return nil
}

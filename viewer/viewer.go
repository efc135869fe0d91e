// Package viewer renders a multi-structure superposition as a script for
// an external molecular viewer. It never mutates the structures it
// describes — every Backend method only writes text.
//
// The capability-set-interface-plus-fixed-enum shape (rather than runtime
// plugin registration) mirrors a validated functional-option config
// pattern: a Kind selects one of a closed set of concrete Backend values at
// construction time.
package viewer

import (
	"fmt"
	"io"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/residue"
)

// Kind enumerates the supported viewer script dialects.
type Kind int

const (
	PyMOL Kind = iota
	Chimera
	Jmol
	RasMol
)

// String renders the Kind's conventional name.
func (k Kind) String() string {
	switch k {
	case PyMOL:
		return "pymol"
	case Chimera:
		return "chimera"
	case Jmol:
		return "jmol"
	case RasMol:
		return "rasmol"
	default:
		return "unknown"
	}
}

// Backend is the capability set a viewer script dialect must implement.
// Every method writes one or more complete script lines to w; callers call
// them in the order EmitHeader, EmitLoad (once per structure),
// EmitColourBase, EmitColourPdb (per structure), EmitColourResidues (per
// highlighted region), EmitAlignmentExtras, EmitFooter.
type Backend interface {
	EmitHeader(w io.Writer) error
	EmitLoad(w io.Writer, pdbIndex int, path string) error
	EmitColourBase(w io.Writer, colour string) error
	EmitColourPdb(w io.Writer, pdbIndex int, colour string) error
	EmitColourResidues(w io.Writer, pdbIndex int, ids []residue.ID, colour string) error
	EmitAlignmentExtras(w io.Writer, names []string, a *alignment.Alignment) error
	EmitFooter(w io.Writer) error
}

// NewBackend returns the concrete Backend for k. There is no runtime
// registration: the set of dialects is fixed to the four declared Kinds.
func NewBackend(k Kind) (Backend, error) {
	switch k {
	case PyMOL:
		return pymolBackend{}, nil
	case Chimera:
		return chimeraBackend{}, nil
	case Jmol:
		return jmolBackend{}, nil
	case RasMol:
		return rasmolBackend{}, nil
	default:
		return nil, errs.New(errs.KindInvalidArgument, "viewer.NewBackend", fmt.Errorf("unknown viewer kind %d", k))
	}
}

func residueSelectionList(ids []residue.ID) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += "+"
		}
		if id.HasInsertCode() {
			s += fmt.Sprintf("%d%c", id.Number, id.InsertCode)
		} else {
			s += fmt.Sprintf("%d", id.Number)
		}
	}
	return s
}

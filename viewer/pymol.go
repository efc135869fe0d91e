package viewer

import (
	"fmt"
	"io"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/residue"
)

type pymolBackend struct{}

func (pymolBackend) EmitHeader(w io.Writer) error {
	_, err := io.WriteString(w, "# pymol superposition script\n")
	return err
}

func (pymolBackend) EmitLoad(w io.Writer, pdbIndex int, path string) error {
	_, err := fmt.Fprintf(w, "load %s, struc%d\n", path, pdbIndex)
	return err
}

func (pymolBackend) EmitColourBase(w io.Writer, colour string) error {
	_, err := fmt.Fprintf(w, "color %s, all\n", colour)
	return err
}

func (pymolBackend) EmitColourPdb(w io.Writer, pdbIndex int, colour string) error {
	_, err := fmt.Fprintf(w, "color %s, struc%d\n", colour, pdbIndex)
	return err
}

func (pymolBackend) EmitColourResidues(w io.Writer, pdbIndex int, ids []residue.ID, colour string) error {
	_, err := fmt.Fprintf(w, "color %s, struc%d and resi %s\n", colour, pdbIndex, residueSelectionList(ids))
	return err
}

func (pymolBackend) EmitAlignmentExtras(w io.Writer, names []string, a *alignment.Alignment) error {
	_, err := fmt.Fprintf(w, "# alignment: %d entries, %d columns\n", a.NumEntries(), a.Length())
	return err
}

func (pymolBackend) EmitFooter(w io.Writer) error {
	_, err := io.WriteString(w, "zoom\n")
	return err
}

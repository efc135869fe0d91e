package viewer

import (
	"fmt"
	"io"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/residue"
)

type jmolBackend struct{}

func (jmolBackend) EmitHeader(w io.Writer) error {
	_, err := io.WriteString(w, "# jmol superposition script\n")
	return err
}

func (jmolBackend) EmitLoad(w io.Writer, pdbIndex int, path string) error {
	_, err := fmt.Fprintf(w, "load APPEND %s\n", path)
	return err
}

func (jmolBackend) EmitColourBase(w io.Writer, colour string) error {
	_, err := fmt.Fprintf(w, "color %s\n", colour)
	return err
}

func (jmolBackend) EmitColourPdb(w io.Writer, pdbIndex int, colour string) error {
	_, err := fmt.Fprintf(w, "select model %d.1; color %s\n", pdbIndex+1, colour)
	return err
}

func (jmolBackend) EmitColourResidues(w io.Writer, pdbIndex int, ids []residue.ID, colour string) error {
	_, err := fmt.Fprintf(w, "select model %d.1 and resno=%s; color %s\n", pdbIndex+1, residueSelectionList(ids), colour)
	return err
}

func (jmolBackend) EmitAlignmentExtras(w io.Writer, names []string, a *alignment.Alignment) error {
	_, err := fmt.Fprintf(w, "# alignment: %d entries, %d columns\n", a.NumEntries(), a.Length())
	return err
}

func (jmolBackend) EmitFooter(w io.Writer) error {
	_, err := io.WriteString(w, "zoom 100\n")
	return err
}

package viewer

import (
	"fmt"
	"io"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/residue"
)

type rasmolBackend struct{}

func (rasmolBackend) EmitHeader(w io.Writer) error {
	_, err := io.WriteString(w, "# rasmol superposition script\n")
	return err
}

func (rasmolBackend) EmitLoad(w io.Writer, pdbIndex int, path string) error {
	_, err := fmt.Fprintf(w, "load pdb %s\n", path)
	return err
}

func (rasmolBackend) EmitColourBase(w io.Writer, colour string) error {
	_, err := fmt.Fprintf(w, "color %s\n", colour)
	return err
}

func (rasmolBackend) EmitColourPdb(w io.Writer, pdbIndex int, colour string) error {
	_, err := fmt.Fprintf(w, "select *%d; color %s\n", pdbIndex+1, colour)
	return err
}

func (rasmolBackend) EmitColourResidues(w io.Writer, pdbIndex int, ids []residue.ID, colour string) error {
	_, err := fmt.Fprintf(w, "select *%d and resno=%s; color %s\n", pdbIndex+1, residueSelectionList(ids), colour)
	return err
}

func (rasmolBackend) EmitAlignmentExtras(w io.Writer, names []string, a *alignment.Alignment) error {
	_, err := fmt.Fprintf(w, "# alignment: %d entries, %d columns\n", a.NumEntries(), a.Length())
	return err
}

func (rasmolBackend) EmitFooter(w io.Writer) error {
	_, err := io.WriteString(w, "zoom 100\n")
	return err
}

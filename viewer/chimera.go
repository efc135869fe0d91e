package viewer

import (
	"fmt"
	"io"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/residue"
)

type chimeraBackend struct{}

func (chimeraBackend) EmitHeader(w io.Writer) error {
	_, err := io.WriteString(w, "# chimera superposition script\n")
	return err
}

func (chimeraBackend) EmitLoad(w io.Writer, pdbIndex int, path string) error {
	_, err := fmt.Fprintf(w, "open %s\n", path)
	return err
}

func (chimeraBackend) EmitColourBase(w io.Writer, colour string) error {
	_, err := fmt.Fprintf(w, "color %s #\n", colour)
	return err
}

func (chimeraBackend) EmitColourPdb(w io.Writer, pdbIndex int, colour string) error {
	_, err := fmt.Fprintf(w, "color %s #%d\n", colour, pdbIndex)
	return err
}

func (chimeraBackend) EmitColourResidues(w io.Writer, pdbIndex int, ids []residue.ID, colour string) error {
	_, err := fmt.Fprintf(w, "color %s #%d:%s\n", colour, pdbIndex, residueSelectionList(ids))
	return err
}

func (chimeraBackend) EmitAlignmentExtras(w io.Writer, names []string, a *alignment.Alignment) error {
	_, err := fmt.Fprintf(w, "# alignment: %d entries, %d columns\n", a.NumEntries(), a.Length())
	return err
}

func (chimeraBackend) EmitFooter(w io.Writer) error {
	_, err := io.WriteString(w, "focus\n")
	return err
}

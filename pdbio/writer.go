package pdbio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
	"github.com/cath-tools/strucore/residue"
)

// WriteSuperposed writes list through transform to w in PDB ATOM format,
// one record per non-null residue carrying a CA coordinate, with a TER
// record emitted at every chain boundary (including after the last chain).
func WriteSuperposed(w io.Writer, list residue.List, transform geomkit.RigidTransform) error {
	bw := bufio.NewWriter(w)
	serial := 1
	lastChain := ""
	wroteAny := false

	flushTer := func(chain string) error {
		if !wroteAny {
			return nil
		}
		if _, err := fmt.Fprintf(bw, "TER   %5d      %3s %1s%4d\n", serial, "", chain, 0); err != nil {
			return err
		}
		serial++
		return nil
	}

	for _, r := range list {
		if r.Null {
			continue
		}
		if lastChain != "" && r.ID.Chain != lastChain {
			if err := flushTer(lastChain); err != nil {
				return errs.New(errs.KindIO, "pdbio.WriteSuperposed", err)
			}
		}
		c, err := r.CAGeom()
		if err != nil {
			return errs.New(errs.KindIO, "pdbio.WriteSuperposed", err)
		}
		t := transform.ApplyTo(c)
		resName := oneToThree(r.AminoAcid)
		icode := byte(' ')
		if r.ID.HasInsertCode() {
			icode = byte(r.ID.InsertCode)
		}
		_, err = fmt.Fprintf(bw, "ATOM  %5d  CA  %3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			serial, resName, r.ID.Chain, r.ID.Number, icode, t.X, t.Y, t.Z, 1.0, 0.0)
		if err != nil {
			return errs.New(errs.KindIO, "pdbio.WriteSuperposed", err)
		}
		serial++
		lastChain = r.ID.Chain
		wroteAny = true
	}
	if lastChain != "" {
		if err := flushTer(lastChain); err != nil {
			return errs.New(errs.KindIO, "pdbio.WriteSuperposed", err)
		}
	}
	if _, err := fmt.Fprintln(bw, "END"); err != nil {
		return errs.New(errs.KindIO, "pdbio.WriteSuperposed", err)
	}
	return bw.Flush()
}

var oneToThreeTable = map[byte]string{
	'A': "ALA", 'R': "ARG", 'N': "ASN", 'D': "ASP", 'C': "CYS",
	'Q': "GLN", 'E': "GLU", 'G': "GLY", 'H': "HIS", 'I': "ILE",
	'L': "LEU", 'K': "LYS", 'M': "MET", 'F': "PHE", 'P': "PRO",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
}

func oneToThree(aa byte) string {
	if s, ok := oneToThreeTable[aa]; ok {
		return s
	}
	return "UNK"
}

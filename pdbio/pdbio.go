// Package pdbio defines the external residue-stream contract and a minimal
// PDB reader/writer implementing it — the only concrete parsing this core
// carries; anything beyond ATOM/HETATM/MODEL/TER records is left to an
// external tool reachable only through ResidueStream.
//
// The stream-plus-cursor shape mirrors a traversal-with-hooks style; the
// compressed-input sniffing and partial-occupancy resolution are grounded
// on a bioplib-style whole-file PDB reader.
package pdbio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/residue"
)

// ResidueStream is the only contract this core requires of a structure
// source: an ordered list of residues (which may include Null entries
// marking chain breaks) per chain-ordered traversal, plus the name used to
// label it in logs and output.
type ResidueStream interface {
	Name() string
	Residues() (residue.List, error)
}

// OccRank selects which alternate-location record wins when a residue has
// more than one. Rank 0 ranks nothing: the residue is built from its
// blank-altLoc atoms if it has any, otherwise from the alternate location
// of its first record in file order; the other alternates are not kept.
// Rank 1 keeps the highest-occupancy alternate, rank 2 the second highest,
// and so on, always together with any blank-altLoc atoms. A rank beyond the
// number of alternates present drops the residue entirely; a residue with
// no alternate-location records is always kept.
type OccRank int

// sliceStream is the simplest ResidueStream: an in-memory list, used by
// tests and by callers that already have residues from another source.
type sliceStream struct {
	name string
	list residue.List
}

// NewSliceStream wraps an already-built residue.List as a ResidueStream.
func NewSliceStream(name string, list residue.List) ResidueStream {
	return sliceStream{name: name, list: list}
}

func (s sliceStream) Name() string                    { return s.name }
func (s sliceStream) Residues() (residue.List, error) { return s.list, nil }

// OpenCompressed wraps r with a gzip reader if its first two bytes carry
// the gzip magic number (0x1f 0x8b), and otherwise returns r unchanged.
// Unix `compress` (.Z, magic 0x1f 0x9d) is recognised but not supported for
// decompression — it is rejected with KindNotImplemented, since the
// standard library carries no LZW-PDB decompressor and no example in this
// corpus pulls one in.
func OpenCompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			return br, nil
		}
		return nil, errs.New(errs.KindIO, "pdbio.OpenCompressed", err)
	}
	switch {
	case magic[0] == 0x1f && magic[1] == 0x8b:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errs.New(errs.KindIO, "pdbio.OpenCompressed", fmt.Errorf("gzip header present but invalid: %w", err))
		}
		return gz, nil
	case magic[0] == 0x1f && magic[1] == 0x9d:
		return nil, errs.New(errs.KindNotImplemented, "pdbio.OpenCompressed",
			fmt.Errorf("Unix compress (.Z) input is recognised but not decodable"))
	default:
		return br, nil
	}
}

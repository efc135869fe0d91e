package pdbio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
	"github.com/cath-tools/strucore/residue"
)

// atomRecord is one parsed ATOM/HETATM line before alternate-location
// resolution.
type atomRecord struct {
	name       string // atom name, trimmed ("CA", "CB", "N")
	altLoc     byte
	resName    string
	chain      string
	resSeq     int32
	iCode      rune
	x, y, z    float64
	occupancy  float64
	hetatm     bool
}

// PDBStream is a minimal concrete ResidueStream reading ATOM/HETATM
// records from a PDB-format text stream, honouring MODEL/ENDMDL (only the
// first model is read) and TER (chain-break markers become Null residues),
// and resolving partial occupancy per rank.
type PDBStream struct {
	name string
	r    io.Reader
	rank OccRank
}

// NewPDBStream wraps r (already decompressed, see OpenCompressed) as a
// ResidueStream named name, resolving alternate locations at rank.
func NewPDBStream(name string, r io.Reader, rank OccRank) *PDBStream {
	return &PDBStream{name: name, r: r, rank: rank}
}

func (p *PDBStream) Name() string { return p.name }

// Residues parses the stream into a residue.List. Only the first MODEL
// (or the bare unmodeled stream) is read; a TER record inserts a Null
// residue to mark a chain break.
func (p *PDBStream) Residues() (residue.List, error) {
	sc := bufio.NewScanner(p.r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	type key struct {
		chain string
		seq   int32
		icode rune
	}
	order := make([]key, 0, 256)
	byKey := make(map[key][]atomRecord)

	inModel := false
	sawModel := false
	done := false
	for sc.Scan() && !done {
		line := sc.Text()
		if len(line) < 3 {
			continue
		}
		tagWidth := 6
		if len(line) < tagWidth {
			tagWidth = len(line)
		}
		tag := strings.TrimRight(line[0:tagWidth], " ")
		switch tag {
		case "MODEL":
			if sawModel {
				done = true
				continue
			}
			inModel = true
		case "ENDMDL":
			done = true
		case "TER":
			k := key{chain: "\x00TER", seq: int32(len(order))}
			order = append(order, k)
			byKey[k] = nil
		case "ATOM", "HETATM":
			sawModel = sawModel || inModel
			rec, err := parseAtomLine(line)
			if err != nil {
				return nil, err
			}
			k := key{chain: rec.chain, seq: rec.resSeq, icode: rec.iCode}
			if _, ok := byKey[k]; !ok {
				order = append(order, k)
			}
			byKey[k] = append(byKey[k], rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.New(errs.KindIO, "pdbio.PDBStream.Residues", err)
	}

	var out residue.List
	for _, k := range order {
		recs := byKey[k]
		if k.chain == "\x00TER" {
			out = append(out, residue.Residue{Null: true})
			continue
		}
		rec, ok := resolveOccupancy(recs, p.rank)
		if !ok {
			continue
		}
		r, err := buildResidue(k.chain, k.seq, k.icode, recs, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// resolveOccupancy picks which altLoc survives for a residue's atom group
// (blank-altLoc atoms always survive alongside it). Rank 0 picks the blank
// altLoc if any record has one, else the first record's altLoc; rank k>0
// picks the k-th highest occupancy altLoc.
func resolveOccupancy(recs []atomRecord, rank OccRank) (altLoc byte, ok bool) {
	if len(recs) == 0 {
		return 0, true
	}
	if rank == 0 {
		for _, r := range recs {
			if r.altLoc == 0 {
				return 0, true
			}
		}
		// No blank-altLoc record exists; pick the alternate of the first
		// record in file order so the residue is not dropped for want of a
		// blank record.
		return recs[0].altLoc, true
	}
	seen := make(map[byte]float64)
	for _, r := range recs {
		if r.altLoc == 0 {
			continue
		}
		seen[r.altLoc] = r.occupancy
	}
	if len(seen) == 0 {
		return 0, true
	}
	type occ struct {
		alt byte
		occ float64
	}
	locs := make([]occ, 0, len(seen))
	for a, o := range seen {
		locs = append(locs, occ{a, o})
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].occ != locs[j].occ {
			return locs[i].occ > locs[j].occ
		}
		return locs[i].alt < locs[j].alt
	})
	idx := int(rank) - 1
	if idx >= len(locs) {
		return 0, false
	}
	return locs[idx].alt, true
}

func buildResidue(chain string, seq int32, icode rune, recs []atomRecord, wantAlt byte) (residue.Residue, error) {
	r := residue.Residue{
		ID: residue.ID{Chain: chain, Number: seq, InsertCode: icode},
	}
	var haveCA bool
	for _, a := range recs {
		if a.altLoc != 0 && a.altLoc != wantAlt {
			continue
		}
		c, err := geomkit.NewCoord(a.x, a.y, a.z)
		if err != nil {
			return residue.Residue{}, errs.New(errs.KindParse, "pdbio.buildResidue",
				fmt.Errorf("residue %s:%d: %w", chain, seq, err))
		}
		coord3 := residue.Coord3{X: c.X, Y: c.Y, Z: c.Z}
		switch a.name {
		case "CA":
			r.CA = coord3
			haveCA = true
			if len(a.resName) > 0 {
				r.AminoAcid = aminoAcidCode(a.resName)
			}
		case "CB":
			cb := coord3
			r.CB = &cb
		case "N":
			n := coord3
			r.N = &n
		}
	}
	if !haveCA {
		return residue.Residue{Null: true}, nil
	}
	return r, nil
}

func parseAtomLine(line string) (atomRecord, error) {
	field := func(from, to int) string {
		if from >= len(line) {
			return ""
		}
		if to > len(line) {
			to = len(line)
		}
		return strings.TrimSpace(line[from:to])
	}
	parseFloat := func(s string, what string) (float64, error) {
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errs.New(errs.KindParse, "pdbio.parseAtomLine", fmt.Errorf("bad %s %q: %w", what, s, err))
		}
		return v, nil
	}

	name := field(12, 16)
	altLoc := byte(0)
	if len(line) > 16 && line[16] != ' ' {
		altLoc = line[16]
	}
	chain := field(21, 22)
	resSeqStr := field(22, 26)
	resSeq, err := strconv.ParseInt(resSeqStr, 10, 32)
	if err != nil {
		return atomRecord{}, errs.New(errs.KindParse, "pdbio.parseAtomLine", fmt.Errorf("bad residue number %q: %w", resSeqStr, err))
	}
	var icode rune
	if len(line) > 26 && line[26] != ' ' {
		icode = rune(line[26])
	}
	x, err := parseFloat(field(30, 38), "x")
	if err != nil {
		return atomRecord{}, err
	}
	y, err := parseFloat(field(38, 46), "y")
	if err != nil {
		return atomRecord{}, err
	}
	z, err := parseFloat(field(46, 54), "z")
	if err != nil {
		return atomRecord{}, err
	}
	occ, err := parseFloat(field(54, 60), "occupancy")
	if err != nil {
		return atomRecord{}, err
	}
	if occ == 0 {
		occ = 1
	}
	return atomRecord{
		name:      name,
		altLoc:    altLoc,
		resName:   field(17, 20),
		chain:     chain,
		resSeq:    int32(resSeq),
		iCode:     icode,
		x:         x,
		y:         y,
		z:         z,
		occupancy: occ,
		hetatm:    strings.HasPrefix(line, "HETATM"),
	}, nil
}

var threeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

func aminoAcidCode(resName string) byte {
	if c, ok := threeToOne[strings.ToUpper(resName)]; ok {
		return c
	}
	return 'X'
}

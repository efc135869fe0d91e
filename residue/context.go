package residue

import (
	"fmt"
	"sort"

	"github.com/cath-tools/strucore/ctxlog"
	"github.com/cath-tools/strucore/errs"
)

// RegionMask is an inclusion filter over a structure's residues: a simple
// set of closed ID ranges per chain, generalising the notion of a "domain"
// chopping restricted to one or more residue ranges.
type RegionMask struct {
	// Segments, if non-empty, restricts inclusion to residues whose ID
	// falls within one of these [From, To] ranges (inclusive, same-chain
	// comparison via ID.Compare). An empty Segments slice means "no
	// restriction: include everything".
	Segments []Segment
}

// Segment is a closed, same-chain residue range.
type Segment struct {
	From, To ID
}

// Includes reports whether id passes the mask.
func (m RegionMask) Includes(id ID) bool {
	if len(m.Segments) == 0 {
		return true
	}
	for _, seg := range m.Segments {
		if seg.From.Chain != id.Chain {
			continue
		}
		if !id.Less(seg.From) && !seg.To.Less(id) {
			return true
		}
	}
	return false
}

// Entry is one per-structure record held by a StrucsContext.
type Entry struct {
	Name     string
	Residues List
	Region   RegionMask
}

// StrucsContext is the ordered collection of per-structure records spanning
// a superposition or alignment run.
type StrucsContext struct {
	entries []Entry
}

// NewStrucsContext builds a StrucsContext from entries, in the given order.
func NewStrucsContext(entries []Entry) (*StrucsContext, error) {
	if len(entries) == 0 {
		return nil, errs.New(errs.KindInvalidArgument, "residue.NewStrucsContext",
			fmt.Errorf("no structures supplied"))
	}
	return &StrucsContext{entries: append([]Entry(nil), entries...)}, nil
}

// NumStructures returns the number of structures in the context.
func (c *StrucsContext) NumStructures() int { return len(c.entries) }

// Name returns the name of structure i.
func (c *StrucsContext) Name(i int) string { return c.entries[i].Name }

// Residues returns the full (unfiltered) residue list of structure i.
func (c *StrucsContext) Residues(i int) List { return c.entries[i].Residues }

// ResiduesOf returns the residues of structure i that pass its region mask
// (null residues always pass, since they carry no ID to filter on).
func (c *StrucsContext) ResiduesOf(i int) List {
	e := c.entries[i]
	out := make(List, 0, len(e.Residues))
	for _, r := range e.Residues {
		if r.Null || e.Region.Includes(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// DomainResidueIDs returns the ResidueIds of structure i that pass its
// region mask, skipping null residues.
func (c *StrucsContext) DomainResidueIDs(i int) []ID {
	e := c.entries[i]
	out := make([]ID, 0, len(e.Residues))
	for _, r := range e.Residues {
		if !r.Null && e.Region.Includes(r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}

// Hash returns a stable hash over this context's structure names and region
// masks, used to name per-input scratch directories.
func (c *StrucsContext) Hash() string {
	parts := make([]string, 0, len(c.entries)*2)
	for _, e := range c.entries {
		parts = append(parts, e.Name, regionDescription(e.Region))
	}
	return ctxlog.HashNames(parts...)
}

func regionDescription(m RegionMask) string {
	segs := append([]Segment(nil), m.Segments...)
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].From.Compare(segs[j].From) != 0 {
			return segs[i].From.Less(segs[j].From)
		}
		return segs[i].To.Less(segs[j].To)
	})
	desc := ""
	for _, s := range segs {
		desc += s.From.String() + ".." + s.To.String() + ";"
	}
	return desc
}

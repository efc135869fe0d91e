package cluster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cath-tools/strucore/errs"
)

// Value is one entry in a Group: either a reference to a Group one layer
// deeper (ClusterGroupIndex, valid when IsCluster), or a leaf entry index.
type Value struct {
	IsCluster         bool
	ClusterGroupIndex int
	EntryIndex        int
}

// Cluster returns a Value referencing the group at ClusterGroupIndex in the
// next-deeper layer.
func Cluster(groupIndex int) Value {
	return Value{IsCluster: true, ClusterGroupIndex: groupIndex}
}

// Entry returns a leaf Value.
func Entry(entryIndex int) Value {
	return Value{IsCluster: false, EntryIndex: entryIndex}
}

// Group is an ordered list of Values.
type Group struct {
	Values []Value
}

// Layer is an ordered list of Groups, all belonging to the same depth.
type Layer struct {
	Groups []Group
}

// Hierarchy is a multi-level clustering result: Layers[0] holds one group
// per top-level (fully merged or never-merged) component, and each deeper
// layer holds the groups one level of merging down, down to the entries
// themselves. Every entry 0..n-1 must be reachable by exactly one DFS path
// from Layers[0].
type Hierarchy struct {
	Layers []Layer
}

// Validate checks that every ClusterGroupIndex reference is in range for
// its target layer and that every entry is reachable exactly once.
func (h *Hierarchy) Validate(numEntries int) error {
	seen := make([]bool, numEntries)
	var walk func(layer, groupIdx int) error
	walk = func(layer, groupIdx int) error {
		if layer >= len(h.Layers) {
			return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("layer %d out of range", layer))
		}
		groups := h.Layers[layer].Groups
		if groupIdx < 0 || groupIdx >= len(groups) {
			return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("group %d out of range in layer %d", groupIdx, layer))
		}
		for _, v := range groups[groupIdx].Values {
			if v.IsCluster {
				if layer+1 >= len(h.Layers) {
					return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("cluster value at deepest layer %d", layer))
				}
				if err := walk(layer+1, v.ClusterGroupIndex); err != nil {
					return err
				}
				continue
			}
			if v.EntryIndex < 0 || v.EntryIndex >= numEntries {
				return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("entry index %d out of range", v.EntryIndex))
			}
			if seen[v.EntryIndex] {
				return errs.New(errs.KindClash, "Hierarchy.Validate", fmt.Errorf("entry %d reachable more than once", v.EntryIndex))
			}
			seen[v.EntryIndex] = true
		}
		return nil
	}
	if len(h.Layers) == 0 {
		return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("hierarchy has no layers"))
	}
	for gi := range h.Layers[0].Groups {
		if err := walk(0, gi); err != nil {
			return err
		}
	}
	for i, ok := range seen {
		if !ok {
			return errs.New(errs.KindInvalidArgument, "Hierarchy.Validate", fmt.Errorf("entry %d unreachable", i))
		}
	}
	return nil
}

// LeafPath is one entry's DFS path: Counters holds its 1-indexed position
// within the group visited at each depth, outermost first.
type LeafPath struct {
	EntryIndex int
	Counters   []int
}

// DFS walks the hierarchy depth-first from Layers[0], producing a
// CATHSOLID-style counter tuple for every leaf entry in visitation order.
func DFS(h *Hierarchy) []LeafPath {
	var out []LeafPath
	var walk func(layer, groupIdx int, prefix []int)
	walk = func(layer, groupIdx int, prefix []int) {
		group := h.Layers[layer].Groups[groupIdx]
		for vi, v := range group.Values {
			counters := make([]int, len(prefix)+1)
			copy(counters, prefix)
			counters[len(prefix)] = vi + 1
			if v.IsCluster {
				walk(layer+1, v.ClusterGroupIndex, counters)
				continue
			}
			out = append(out, LeafPath{EntryIndex: v.EntryIndex, Counters: counters})
		}
	}
	for gi := range h.Layers[0].Groups {
		walk(0, gi, nil)
	}
	return out
}

// RenderText renders one "c1.c2.....cL name" line per entry, in DFS order.
// names must be indexed by entry index.
func RenderText(h *Hierarchy, names []string) string {
	var b strings.Builder
	for _, leaf := range DFS(h) {
		parts := make([]string, len(leaf.Counters))
		for i, c := range leaf.Counters {
			parts[i] = strconv.Itoa(c)
		}
		name := ""
		if leaf.EntryIndex < len(names) {
			name = names[leaf.EntryIndex]
		}
		b.WriteString(strings.Join(parts, "."))
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

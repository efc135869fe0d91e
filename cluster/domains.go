package cluster

import (
	"fmt"
	"sort"

	"github.com/cath-tools/strucore/errs"
)

// Segment is a closed residue-number range [From, To] within one chain of
// one entry's backbone.
type Segment struct {
	From, To int
}

func (s Segment) overlaps(o Segment) bool {
	return s.From <= o.To && o.From <= s.To
}

// DomainEntry is one line of a cluster-membership mapping: an entry
// assigned to a cluster, optionally restricted to a list of segments.
type DomainEntry struct {
	EntryName string
	Segments  []Segment
}

// ClusterDomains accumulates cluster-to-entry-segment membership, rejecting
// any entry whose segments would overlap a segment already recorded for it
// within the same cluster.
type ClusterDomains struct {
	byCluster map[string][]DomainEntry
}

// NewClusterData returns an empty ClusterDomains.
func NewClusterData() *ClusterDomains {
	return &ClusterDomains{byCluster: make(map[string][]DomainEntry)}
}

// Add records entryName's membership of clusterName over the given
// segments. An empty segments list means "the whole entry".
func (c *ClusterDomains) Add(clusterName, entryName string, segments []Segment) error {
	for _, existing := range c.byCluster[clusterName] {
		if existing.EntryName != entryName {
			continue
		}
		if len(existing.Segments) == 0 || len(segments) == 0 {
			return errs.New(errs.KindClash, "ClusterDomains.Add",
				fmt.Errorf("entry %q is already recorded in cluster %q and one of the records covers the whole entry",
					entryName, clusterName))
		}
		for _, s1 := range existing.Segments {
			for _, s2 := range segments {
				if s1.overlaps(s2) {
					return errs.New(errs.KindClash, "ClusterDomains.Add",
						fmt.Errorf("entry %q has overlapping segments [%d-%d] and [%d-%d] in cluster %q",
							entryName, s1.From, s1.To, s2.From, s2.To, clusterName))
				}
			}
		}
	}
	c.byCluster[clusterName] = append(c.byCluster[clusterName], DomainEntry{
		EntryName: entryName,
		Segments:  append([]Segment(nil), segments...),
	})
	return nil
}

// Entries returns a copy of the DomainEntry list recorded for clusterName,
// in insertion order.
func (c *ClusterDomains) Entries(clusterName string) []DomainEntry {
	return append([]DomainEntry(nil), c.byCluster[clusterName]...)
}

// ClusterNames returns the recorded cluster names in sorted order.
func (c *ClusterDomains) ClusterNames() []string {
	names := make([]string, 0, len(c.byCluster))
	for name := range c.byCluster {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

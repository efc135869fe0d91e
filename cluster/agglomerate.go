// Package cluster builds a CATHSOLID-style multi-level hierarchy from a
// sparse list of pairwise similarity edges, honouring per-layer merge
// thresholds and a seed ordering used both as the initial singleton order
// and as a merge tie-breaker.
//
// The priority-queue-per-layer plus disjoint-set merge loop follows the
// classic single-linkage agglomeration shape; the disjoint-set itself is
// grounded on the same union-find structure used by the max-spanning-tree
// builder in the superpose package, generalised here to track per-cluster
// seed rank and smallest-member-index instead of rank-based balancing.
package cluster

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/cath-tools/strucore/errs"
)

// Edge is one sparse pairwise similarity score between two entries, i<j.
type Edge struct {
	I, J  int
	Score float64
}

type edgeHeap []Edge

func (h edgeHeap) Len() int { return len(h) }
func (h edgeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	if h[i].I != h[j].I {
		return h[i].I < h[j].I
	}
	return h[i].J < h[j].J
}
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x any)        { *h = append(*h, x.(Edge)) }
func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type nodeRef struct {
	isEntry bool
	entry   int
	node    int // index into internalNodes, valid when !isEntry
}

type internalNode struct {
	round    int // 1-indexed threshold round that created this node
	children []nodeRef
}

// Agglomerate runs single-linkage agglomeration over n entries: for each
// threshold round (in order, t_1 > t_2 > ... > t_L), it pops the
// highest-scoring still-inter-cluster edge meeting that round's threshold
// and merges the two clusters, until no more edges qualify, then proceeds
// to the next (coarser) round. The merged cluster's identity is always the
// seed-earlier cluster (by seedOrder rank, then by smallest member index).
func Agglomerate(n int, edges []Edge, seedOrder []int, thresholds []float64) (*Hierarchy, error) {
	if n <= 0 {
		return nil, errs.New(errs.KindInvalidArgument, "cluster.Agglomerate", fmt.Errorf("n must be positive, got %d", n))
	}
	if len(thresholds) == 0 {
		return nil, errs.New(errs.KindInvalidArgument, "cluster.Agglomerate", fmt.Errorf("need at least one threshold"))
	}
	for k := 1; k < len(thresholds); k++ {
		if thresholds[k] >= thresholds[k-1] {
			return nil, errs.New(errs.KindInvalidArgument, "cluster.Agglomerate",
				fmt.Errorf("thresholds must be strictly decreasing, got %v", thresholds))
		}
	}

	seedRank := make([]int, n)
	if seedOrder == nil {
		for i := range seedRank {
			seedRank[i] = i
		}
	} else {
		if len(seedOrder) != n {
			return nil, errs.New(errs.KindInvalidArgument, "cluster.Agglomerate",
				fmt.Errorf("seedOrder length %d must equal n=%d", len(seedOrder), n))
		}
		for rank, entry := range seedOrder {
			seedRank[entry] = rank
		}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	minSeed := make([]int, n)
	minMember := make([]int, n)
	for i := range minSeed {
		minSeed[i] = seedRank[i]
		minMember[i] = i
	}
	nodeOf := make([]nodeRef, n)
	for i := range nodeOf {
		nodeOf[i] = nodeRef{isEntry: true, entry: i}
	}

	var internalNodes []internalNode

	for k, t := range thresholds {
		round := k + 1
		pq := &edgeHeap{}
		for _, e := range edges {
			if e.Score >= t {
				*pq = append(*pq, e)
			}
		}
		heap.Init(pq)
		for pq.Len() > 0 {
			e := heap.Pop(pq).(Edge)
			ra, rb := find(e.I), find(e.J)
			if ra == rb {
				continue
			}
			survivor, absorbed := ra, rb
			if minSeed[rb] < minSeed[ra] || (minSeed[rb] == minSeed[ra] && minMember[rb] < minMember[ra]) {
				survivor, absorbed = rb, ra
			}

			childA, childB := nodeOf[survivor], nodeOf[absorbed]
			var children []nodeRef
			if minMember[survivor] <= minMember[absorbed] {
				children = []nodeRef{childA, childB}
			} else {
				children = []nodeRef{childB, childA}
			}
			internalNodes = append(internalNodes, internalNode{round: round, children: children})
			newIdx := len(internalNodes) - 1

			parent[absorbed] = survivor
			if minSeed[absorbed] < minSeed[survivor] {
				minSeed[survivor] = minSeed[absorbed]
			}
			if minMember[absorbed] < minMember[survivor] {
				minMember[survivor] = minMember[absorbed]
			}
			nodeOf[survivor] = nodeRef{isEntry: false, node: newIdx}
		}
	}

	rootsSeen := make(map[int]bool)
	var roots []int
	for i := 0; i < n; i++ {
		r := find(i)
		if !rootsSeen[r] {
			rootsSeen[r] = true
			roots = append(roots, r)
		}
	}
	sort.Slice(roots, func(a, b int) bool { return minMember[roots[a]] < minMember[roots[b]] })

	L := len(thresholds)
	layers := make([]Layer, L+1)

	groupIndexOf := make([]int, len(internalNodes))
	for idx, node := range internalNodes {
		l := 1 + L - node.round
		groupIndexOf[idx] = len(layers[l].Groups)
		layers[l].Groups = append(layers[l].Groups, Group{})
	}

	// toValue returns the Value for ref as held by a group in layer at. A
	// cluster created in an earlier round than its parent's sits more than
	// one layer deeper; the layers in between get single-value pass-through
	// groups so every cluster reference points exactly one layer down.
	toValue := func(ref nodeRef, at int) Value {
		if ref.isEntry {
			return Value{IsCluster: false, EntryIndex: ref.entry}
		}
		l := 1 + L - internalNodes[ref.node].round
		v := Value{IsCluster: true, ClusterGroupIndex: groupIndexOf[ref.node]}
		for l--; l > at; l-- {
			layers[l].Groups = append(layers[l].Groups, Group{Values: []Value{v}})
			v = Value{IsCluster: true, ClusterGroupIndex: len(layers[l].Groups) - 1}
		}
		return v
	}

	layer0Groups := make([]Group, 0, len(roots))
	for _, r := range roots {
		layer0Groups = append(layer0Groups, Group{Values: []Value{toValue(nodeOf[r], 0)}})
	}
	layers[0] = Layer{Groups: layer0Groups}

	for idx, node := range internalNodes {
		l := 1 + L - node.round
		vals := make([]Value, len(node.children))
		for ci, c := range node.children {
			vals[ci] = toValue(c, l)
		}
		layers[l].Groups[groupIndexOf[idx]].Values = vals
	}

	return &Hierarchy{Layers: layers}, nil
}

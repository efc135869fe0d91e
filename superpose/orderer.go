// Package superpose builds a consistent multi-structure superposition from
// pairwise scores and pairwise rigid-body fits: a half-matrix orderer picks
// a maximum-spanning-tree traversal order, and a builder composes transforms
// by walking that tree.
//
// The spanning-tree construction follows a classic Kruskal-plus-disjoint-set
// shape: edges sorted by weight, a union-find structure rejecting edges that
// would close a cycle, accumulating until every vertex is connected.
package superpose

import (
	"fmt"
	"math"
	"sort"

	"github.com/cath-tools/strucore/errs"
)

// Edge is one scored, undirected pair (i,j), i<j.
type Edge struct {
	I, J  int
	Score float64
}

// Orderer is a half-matrix of pairwise scores over N items: present(i,j)
// implies present(j,i), and every stored score is finite.
type Orderer struct {
	n      int
	scores map[[2]int]float64
}

// NewOrderer builds an empty Orderer over n items.
func NewOrderer(n int) (*Orderer, error) {
	if n < 1 {
		return nil, errs.New(errs.KindInvalidArgument, "superpose.NewOrderer", fmt.Errorf("n must be >= 1, got %d", n))
	}
	return &Orderer{n: n, scores: make(map[[2]int]float64)}, nil
}

func key(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// SetScore records a finite score for the unordered pair (i,j).
func (o *Orderer) SetScore(i, j int, score float64) error {
	if i == j || i < 0 || j < 0 || i >= o.n || j >= o.n {
		return errs.New(errs.KindInvalidArgument, "superpose.Orderer.SetScore",
			fmt.Errorf("invalid pair (%d,%d) for n=%d", i, j, o.n))
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return errs.New(errs.KindInvalidArgument, "superpose.Orderer.SetScore", fmt.Errorf("score %v is not finite", score))
	}
	o.scores[key(i, j)] = score
	return nil
}

// HasScore reports whether (i,j) carries a score. Symmetric by construction.
func (o *Orderer) HasScore(i, j int) bool {
	_, ok := o.scores[key(i, j)]
	return ok
}

// ScoreOf returns the score of (i,j), if present.
func (o *Orderer) ScoreOf(i, j int) (float64, bool) {
	s, ok := o.scores[key(i, j)]
	return s, ok
}

// N returns the number of items.
func (o *Orderer) N() int { return o.n }

type dsu struct{ parent, rank []int }

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *dsu) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
	return true
}

// SpanningTree runs Kruskal's algorithm over the maximum-weight spanning
// tree of the scored graph (weight = score, so we sort descending rather
// than negating and sorting ascending). Ties are broken by
// (lower_endpoint, higher_endpoint) for determinism. Returns Disconnected
// if the graph spans fewer than N-1 edges.
func (o *Orderer) SpanningTree() ([]Edge, error) {
	edges := make([]Edge, 0, len(o.scores))
	for k, s := range o.scores {
		edges = append(edges, Edge{I: k[0], J: k[1], Score: s})
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].Score != edges[b].Score {
			return edges[a].Score > edges[b].Score
		}
		if edges[a].I != edges[b].I {
			return edges[a].I < edges[b].I
		}
		return edges[a].J < edges[b].J
	})

	d := newDSU(o.n)
	var tree []Edge
	for _, e := range edges {
		if d.union(e.I, e.J) {
			tree = append(tree, e)
		}
	}
	if len(tree) != o.n-1 {
		return nil, errs.New(errs.KindDisconnected, "superpose.Orderer.SpanningTree",
			fmt.Errorf("spanning tree has %d edges, want %d for n=%d", len(tree), o.n-1, o.n))
	}
	sort.Slice(tree, func(a, b int) bool {
		if tree[a].I != tree[b].I {
			return tree[a].I < tree[b].I
		}
		return tree[a].J < tree[b].J
	})
	return tree, nil
}

// OrderedByDescendingScore stable-sorts tree edges by descending pair score.
func OrderedByDescendingScore(tree []Edge) []Edge {
	out := append([]Edge(nil), tree...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

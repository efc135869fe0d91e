package superpose

import (
	"fmt"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/ctxlog"
	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
)

// PairwiseFitter computes the rigid transform mapping structure v's
// coordinates into structure u's frame, using only the atoms the two
// structures have in common. Implementations should return
// errs.KindInsufficientCommonAtoms when fewer than 3 atoms are shared.
type PairwiseFitter interface {
	FitPair(u, v int) (geomkit.RigidTransform, error)
}

// Superposition holds one rigid transform per structure, with the root's
// slot (see Root; Compose picks it from the spanning tree, so it need not
// be structure 0) carrying the identity.
type Superposition struct {
	transforms []geomkit.RigidTransform
	root       int
}

// NewSuperposition builds a Superposition directly from already-computed
// transforms, used by the serial package to reconstruct one from JSON.
func NewSuperposition(transforms []geomkit.RigidTransform, root int) *Superposition {
	return &Superposition{transforms: append([]geomkit.RigidTransform(nil), transforms...), root: root}
}

// N returns the number of structures.
func (s *Superposition) N() int { return len(s.transforms) }

// Transform returns the rigid transform for structure i.
func (s *Superposition) Transform(i int) geomkit.RigidTransform { return s.transforms[i] }

// Root returns the index chosen as the canonical anchor (identity transform).
func (s *Superposition) Root() int { return s.root }

func chooseRoot(tree []Edge) int {
	best := tree[0]
	for _, e := range tree[1:] {
		if e.Score > best.Score {
			best = e
		}
	}
	return best.I // Edge.I is always the lower-indexed endpoint (see key()).
}

func buildAdjacency(tree []Edge, n int) [][]int {
	adj := make([][]int, n)
	for _, e := range tree {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
	}
	return adj
}

// Compose builds a consistent multi-structure Superposition from a spanning
// tree and a PairwiseFitter: the root (lower-indexed endpoint of the
// highest-scoring edge) anchors at identity, then a BFS walk over the tree
// composes each newly-discovered node's transform from its parent's.
func Compose(ctx *ctxlog.Context, tree []Edge, fitter PairwiseFitter, n int) (*Superposition, error) {
	if ctx == nil {
		ctx = ctxlog.New()
	}
	if len(tree) != n-1 {
		return nil, errs.New(errs.KindDisconnected, "superpose.Compose",
			fmt.Errorf("tree has %d edges, want %d for n=%d", len(tree), n-1, n))
	}

	root := chooseRoot(tree)
	adj := buildAdjacency(tree, n)

	transforms := make([]geomkit.RigidTransform, n)
	visited := make([]bool, n)
	transforms[root] = geomkit.IdentityTransform()
	visited[root] = true

	queue := []int{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if visited[v] {
				continue
			}
			fit, err := fitter.FitPair(u, v)
			if err != nil {
				ctx.Log().Warn("pairwise fit failed during composition", "u", u, "v", v, "err", err)
				return nil, err
			}
			transforms[v] = fit.Compose(transforms[u])
			visited[v] = true
			queue = append(queue, v)
			ctx.Log().Info("composed transform", "parent", u, "child", v)
		}
	}

	return &Superposition{transforms: transforms, root: root}, nil
}

// AlignmentPairwiseFitter is a PairwiseFitter grounded directly on a shared
// Alignment: for structures u and v, it gathers the Cα coordinates at every
// column where both are present and runs the Kabsch fit over that common
// set, requiring at least 3 shared atoms.
type AlignmentPairwiseFitter struct {
	Alignment *alignment.Alignment
	// CoordsOf returns the backbone-complete Cα coordinates of structure i,
	// indexed by the position stored in the Alignment's cells.
	CoordsOf func(i int) []geomkit.Coord
}

// FitPair implements PairwiseFitter.
func (f AlignmentPairwiseFitter) FitPair(u, v int) (geomkit.RigidTransform, error) {
	uc, vc := f.CoordsOf(u), f.CoordsOf(v)
	var uPts, vPts []geomkit.Coord
	for row := 0; row < f.Alignment.Length(); row++ {
		up, uok := f.Alignment.PositionOf(u, row)
		vp, vok := f.Alignment.PositionOf(v, row)
		if !uok || !vok {
			continue
		}
		if int(up) >= len(uc) || int(vp) >= len(vc) {
			continue
		}
		uPts = append(uPts, uc[up])
		vPts = append(vPts, vc[vp])
	}
	if len(uPts) < 3 {
		return geomkit.RigidTransform{}, errs.New(errs.KindInsufficientCommonAtoms,
			"superpose.AlignmentPairwiseFitter.FitPair",
			fmt.Errorf("structures %d and %d share only %d atoms, need >= 3", u, v, len(uPts)))
	}
	return geomkit.FitTransform(vPts, uPts)
}

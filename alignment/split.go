package alignment

import (
	"fmt"
	"sort"

	"github.com/cath-tools/strucore/errs"
)

// Split is a 2-partition of 0..numEntries into two non-empty disjoint sets.
// Canonical form: the half containing entry 0 is always First, so ties in
// size are irrelevant to canonicalisation; two canonical splits compare
// equal exactly when their First halves match.
type Split struct {
	First  []int
	Second []int
}

// canonicalise sorts both halves and ensures First contains entry 0,
// swapping if necessary.
func canonicalise(a, b []int) Split {
	sort.Ints(a)
	sort.Ints(b)
	if len(a) > 0 && a[0] == 0 {
		return Split{First: a, Second: b}
	}
	return Split{First: b, Second: a}
}

// NewSplit builds a canonical Split from two disjoint, non-empty index
// sets covering 0..n exactly once.
func NewSplit(first, second []int) (Split, error) {
	if len(first) == 0 || len(second) == 0 {
		return Split{}, errs.New(errs.KindInvalidArgument, "alignment.NewSplit",
			fmt.Errorf("both halves must be non-empty"))
	}
	seen := make(map[int]bool, len(first)+len(second))
	for _, v := range first {
		if seen[v] {
			return Split{}, errs.New(errs.KindInvalidArgument, "alignment.NewSplit", fmt.Errorf("duplicate entry %d", v))
		}
		seen[v] = true
	}
	for _, v := range second {
		if seen[v] {
			return Split{}, errs.New(errs.KindInvalidArgument, "alignment.NewSplit", fmt.Errorf("duplicate or overlapping entry %d", v))
		}
		seen[v] = true
	}
	return canonicalise(append([]int(nil), first...), append([]int(nil), second...)), nil
}

// Opposite returns the Split with First and Second swapped, then
// re-canonicalised (so Opposite(canonicalise(s)) re-normalises which half
// is "First").
func (s Split) Opposite() Split {
	return canonicalise(append([]int(nil), s.Second...), append([]int(nil), s.First...))
}

// Key returns a comparable representation of s suitable for use as a map
// key when deduplicating already-tried splits.
func (s Split) Key() string {
	return fmt.Sprintf("%v", s.First)
}

// Equal reports whether s and other partition identically.
func (s Split) Equal(other Split) bool {
	return s.Key() == other.Key()
}

// EnumerateSplits produces all canonical non-trivial 2-partitions of
// 0..n-1 (2^(n-1) - 1 of them), intended for small n (<= 8).
func EnumerateSplits(n int) ([]Split, error) {
	if n < 2 {
		return nil, errs.New(errs.KindInvalidArgument, "alignment.EnumerateSplits",
			fmt.Errorf("need at least 2 entries, got %d", n))
	}
	// Entry 0 is always in First, so only the remaining n-1 entries vary:
	// enumerate all non-empty subsets of {1..n-1} that go to Second. The
	// full subset is included: it leaves First = {0}, which is still a
	// valid non-trivial split since both halves are non-empty.
	var splits []Split
	total := 1 << uint(n-1)
	for mask := 1; mask < total; mask++ {
		first := []int{0}
		var second []int
		for i := 1; i < n; i++ {
			if mask&(1<<uint(i-1)) != 0 {
				second = append(second, i)
			} else {
				first = append(first, i)
			}
		}
		if len(second) == 0 {
			continue
		}
		splits = append(splits, canonicalise(first, second))
	}
	return splits, nil
}

// SingletonSplits returns the n "singleton vs rest" splits used as a
// fallback enumerator for n > 8).
func SingletonSplits(n int) []Split {
	out := make([]Split, 0, n)
	for i := 0; i < n; i++ {
		rest := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				rest = append(rest, j)
			}
		}
		out = append(out, canonicalise([]int{i}, rest))
	}
	return out
}

// SpanningTreeEdgeSplits returns, for each spanning-tree edge (u,v), the
// split obtained by taking u's side and v's side of the tree once that
// edge is removed. The caller supplies those sides already computed, one
// [2][]int pair per edge (the superpose package owns spanning-tree
// construction); this helper only turns each precomputed per-edge
// 2-colouring into a canonical Split.
func SpanningTreeEdgeSplits(sides [][2][]int) []Split {
	out := make([]Split, 0, len(sides))
	for _, s := range sides {
		out = append(out, canonicalise(append([]int(nil), s[0]...), append([]int(nil), s[1]...)))
	}
	return out
}

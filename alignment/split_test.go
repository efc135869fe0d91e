package alignment_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/alignment"
)

func TestEnumerateSplitsCount(t *testing.T) {
	splits, err := alignment.EnumerateSplits(4)
	require.NoError(t, err)
	require.Len(t, splits, 7) // 2^(4-1) - 1
	for _, s := range splits {
		require.Contains(t, s.First, 0)
	}
}

func TestEnumerateSplitsRejectsTooSmall(t *testing.T) {
	_, err := alignment.EnumerateSplits(1)
	require.Error(t, err)
}

func TestSplitCanonicalFormRoundTrip(t *testing.T) {
	splits, err := alignment.EnumerateSplits(5)
	require.NoError(t, err)
	for _, s := range splits {
		opp := s.Opposite()
		require.True(t, opp.Opposite().Equal(s))
	}
}

func TestNewSplitRejectsOverlap(t *testing.T) {
	_, err := alignment.NewSplit([]int{0, 1}, []int{1, 2})
	require.Error(t, err)
}

func TestNewSplitCanonicalisesFirstContainsZero(t *testing.T) {
	s, err := alignment.NewSplit([]int{2, 1}, []int{0, 3})
	require.NoError(t, err)
	require.Contains(t, s.First, 0)
	require.Equal(t, []int{0, 3}, s.First)
	require.Equal(t, []int{1, 2}, s.Second)
}

func TestSingletonSplits(t *testing.T) {
	splits := alignment.SingletonSplits(5)
	require.Len(t, splits, 5)
	sizes := make([]int, 0, 5)
	for _, s := range splits {
		sizes = append(sizes, len(s.First)+len(s.Second))
	}
	for _, sz := range sizes {
		require.Equal(t, 5, sz)
	}
}

func TestSpanningTreeEdgeSplits(t *testing.T) {
	sides := [][2][]int{
		{{0, 1}, {2, 3}},
		{{1}, {0, 2, 3}},
	}
	splits := alignment.SpanningTreeEdgeSplits(sides)
	require.Len(t, splits, 2)
	for _, s := range splits {
		all := append(append([]int(nil), s.First...), s.Second...)
		sort.Ints(all)
		require.Equal(t, []int{0, 1, 2, 3}, all)
	}
}

package alignment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/errs"
)

func TestNewAlignmentRejectsBadShape(t *testing.T) {
	_, err := alignment.NewAlignment(3, 0)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindInvalidArgument))
}

func TestSetPositionAndScore(t *testing.T) {
	a, err := alignment.NewAlignment(3, 2)
	require.NoError(t, err)

	a.SetPosition(0, 0, 10, true)
	a.SetPosition(1, 0, 11, true)
	a.SetScore(0, 0, 0.5)

	pos, ok := a.PositionOf(0, 0)
	require.True(t, ok)
	require.Equal(t, uint32(10), pos)

	score, ok := a.ScoreOf(0, 0)
	require.True(t, ok)
	require.Equal(t, float32(0.5), score)

	require.NoError(t, a.Validate())
}

func TestSetPositionClearsScore(t *testing.T) {
	a, err := alignment.NewAlignment(2, 1)
	require.NoError(t, err)
	a.SetPosition(0, 0, 5, true)
	a.SetScore(0, 0, 0.9)
	a.SetPosition(0, 0, 0, false)
	_, ok := a.ScoreOf(0, 0)
	require.False(t, ok)
	_, ok = a.PositionOf(0, 0)
	require.False(t, ok)
}

func TestValidateRejectsNonIncreasingPositions(t *testing.T) {
	a, err := alignment.NewAlignment(2, 1)
	require.NoError(t, err)
	a.SetPosition(0, 0, 5, true)
	a.SetPosition(1, 0, 5, true)
	require.Error(t, a.Validate())
}

func TestValidateRejectsScoreWithoutPosition(t *testing.T) {
	a, err := alignment.NewAlignment(1, 1)
	require.NoError(t, err)
	a.SetScore(0, 0, 0.1) // no SetPosition first
	require.Error(t, a.Validate())
}

func TestNumPresentPositionsAndIter(t *testing.T) {
	a, err := alignment.NewAlignment(1, 3)
	require.NoError(t, err)
	a.SetPosition(0, 0, 1, true)
	a.SetPosition(0, 2, 2, true)
	require.Equal(t, 2, a.NumPresentPositions(0))
	require.Equal(t, []int{0, 2}, a.IterEntriesPresentAt(0))
}

func TestClone(t *testing.T) {
	a, err := alignment.NewAlignment(1, 1)
	require.NoError(t, err)
	a.SetPosition(0, 0, 3, true)
	b := a.Clone()
	b.SetPosition(0, 0, 4, true)
	pos, _ := a.PositionOf(0, 0)
	require.Equal(t, uint32(3), pos)
}

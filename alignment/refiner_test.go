package alignment_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/errs"
)

func twoEntryAlignment(t *testing.T) *alignment.Alignment {
	t.Helper()
	a, err := alignment.NewAlignment(2, 2)
	require.NoError(t, err)
	a.SetPosition(0, 0, 0, true)
	a.SetScore(0, 0, 1.0)
	a.SetPosition(0, 1, 0, true)
	a.SetScore(0, 1, 1.0)
	a.SetPosition(1, 0, 1, true)
	a.SetScore(1, 0, 1.0)
	a.SetPosition(1, 1, 1, true)
	a.SetScore(1, 1, 1.0)
	return a
}

func TestRefinerRunWithDefaultAligner(t *testing.T) {
	a := twoEntryAlignment(t)
	r := alignment.NewRefiner(alignment.Config{
		MaxRounds:    2,
		WindowRadius: 1,
		ScoreVariant: alignment.DefaultScoreVariant,
	})
	res, err := r.Run(nil, a, []int{2, 2})
	require.NoError(t, err)
	require.NotNil(t, res.Alignment)
	require.NoError(t, res.Alignment.Validate())
	require.GreaterOrEqual(t, res.Rounds, 1)
}

func fourEntryAlignment(t *testing.T) *alignment.Alignment {
	t.Helper()
	a, err := alignment.NewAlignment(2, 4)
	require.NoError(t, err)
	// Each entry gets a distinct position per row so a column/entry mixup
	// shows up as the wrong position landing under the wrong entry index.
	positions := [2][4]uint32{
		{0, 10, 20, 30},
		{1, 11, 21, 31},
	}
	for row := 0; row < 2; row++ {
		for e := 0; e < 4; e++ {
			a.SetPosition(row, e, positions[row][e], true)
			a.SetScore(row, e, 1.0)
		}
	}
	return a
}

// TestAlignHalvesPreservesEntryIdentityOnNonContiguousSplit guards against
// columns being relabelled by half-membership order instead of kept at
// their original global structure index: splitting {0,2} vs {1,3} puts
// entry 2 at local index 1 within its half, and entry 1 at local index 0
// within the other half, which is exactly the case a position-in-half
// indexing scheme gets wrong.
func TestAlignHalvesPreservesEntryIdentityOnNonContiguousSplit(t *testing.T) {
	a := fourEntryAlignment(t)
	backboneLengths := []int{2, 2, 2, 2}

	mappingA, err := alignment.BuildSplitMapping(a, []int{0, 2}, backboneLengths)
	require.NoError(t, err)
	mappingB, err := alignment.BuildSplitMapping(a, []int{1, 3}, backboneLengths)
	require.NoError(t, err)

	out, err := (alignment.OriginalColumnAligner{}).AlignHalves(mappingA, mappingB)
	require.NoError(t, err)
	require.Equal(t, 4, out.NumEntries())

	wantPositions := [2][4]uint32{
		{0, 10, 20, 30},
		{1, 11, 21, 31},
	}
	for row := 0; row < 2; row++ {
		for e := 0; e < 4; e++ {
			pos, ok := out.PositionOf(e, row)
			require.True(t, ok, "entry %d row %d should be present", e, row)
			require.Equal(t, wantPositions[row][e], pos)
		}
	}
}

// TestRefinerPreservesEntryIdentityAcrossNonContiguousSplit runs the
// refiner's full Propose -> Restrict -> Realign -> Score -> Accept loop
// over 4 entries (so the split enumerator includes a non-contiguous split
// such as {0,2} vs {1,3}) and checks that every accepted realignment keeps
// each entry's positions monotonically increasing and attached to the same
// entry index it started with.
func TestRefinerPreservesEntryIdentityAcrossNonContiguousSplit(t *testing.T) {
	a := fourEntryAlignment(t)
	r := alignment.NewRefiner(alignment.Config{
		MaxRounds:    3,
		WindowRadius: 1,
		ScoreVariant: alignment.DefaultScoreVariant,
	})
	res, err := r.Run(nil, a, []int{2, 2, 2, 2})
	require.NoError(t, err)
	require.NoError(t, res.Alignment.Validate())
	require.Equal(t, 4, res.Alignment.NumEntries())

	for e := 0; e < 4; e++ {
		var last uint32
		first := true
		for row := 0; row < res.Alignment.Length(); row++ {
			pos, ok := res.Alignment.PositionOf(e, row)
			if !ok {
				continue
			}
			if !first {
				require.Greater(t, pos, last, "entry %d positions must stay increasing down the alignment", e)
			}
			first = false
			last = pos
		}
	}
}

type alwaysNumericalAligner struct{}

func (alwaysNumericalAligner) AlignHalves(a, b *alignment.SplitMapping) (*alignment.Alignment, error) {
	return nil, errs.New(errs.KindNumerical, "test.AlignHalves", fmt.Errorf("forced numerical failure"))
}

func TestRefinerRejectsNumericalFailures(t *testing.T) {
	a := twoEntryAlignment(t)
	r := alignment.NewRefiner(alignment.Config{
		MaxRounds:    1,
		WindowRadius: 1,
		ScoreVariant: alignment.DefaultScoreVariant,
		Aligner:      alwaysNumericalAligner{},
	})
	res, err := r.Run(nil, a, []int{2, 2})
	require.NoError(t, err)
	require.Equal(t, 0, res.Accepted)
	require.GreaterOrEqual(t, res.Rejected, 1)
}

type fatalAligner struct{}

func (fatalAligner) AlignHalves(a, b *alignment.SplitMapping) (*alignment.Alignment, error) {
	return nil, errs.New(errs.KindInvalidArgument, "test.AlignHalves", fmt.Errorf("boom"))
}

func TestRefinerPropagatesNonNumericalFailures(t *testing.T) {
	a := twoEntryAlignment(t)
	r := alignment.NewRefiner(alignment.Config{
		MaxRounds: 1,
		Aligner:   fatalAligner{},
	})
	_, err := r.Run(nil, a, []int{2, 2})
	require.Error(t, err)
}

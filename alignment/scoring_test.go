package alignment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/alignment"
)

func buildScoredAlignment(t *testing.T) *alignment.Alignment {
	t.Helper()
	a, err := alignment.NewAlignment(3, 2)
	require.NoError(t, err)
	for row := 0; row < 3; row++ {
		a.SetPosition(row, 0, uint32(row), true)
		a.SetScore(row, 0, 1.0)
	}
	a.SetPosition(0, 1, 0, true)
	a.SetScore(0, 1, 0.5)
	a.SetPosition(1, 1, 1, true)
	a.SetScore(1, 1, 0.5)
	// entry 1 absent at row 2
	return a
}

func TestColumnScoreVariants(t *testing.T) {
	a := buildScoredAlignment(t)

	raw, err := a.ColumnScore(1, 1, alignment.Raw)
	require.NoError(t, err)
	require.Greater(t, raw, 0.0)

	perPart, err := a.ColumnScore(1, 1, alignment.PerParticipant)
	require.NoError(t, err)
	require.Greater(t, perPart, 0.0)

	perWindow, err := a.ColumnScore(1, 1, alignment.PerWindowPresence)
	require.NoError(t, err)
	require.Greater(t, perWindow, 0.0)
}

func TestColumnScoreOutOfRange(t *testing.T) {
	a := buildScoredAlignment(t)
	_, err := a.ColumnScore(5, 1, alignment.Raw)
	require.Error(t, err)
	_, err = a.ColumnScore(0, -1, alignment.Raw)
	require.Error(t, err)
}

func TestColumnScoreEmptyWindow(t *testing.T) {
	a, err := alignment.NewAlignment(1, 1)
	require.NoError(t, err)
	s, err := a.ColumnScore(0, 0, alignment.PerWindowPresence)
	require.NoError(t, err)
	require.Equal(t, 0.0, s)
}

func TestToFASTA(t *testing.T) {
	a, err := alignment.NewAlignment(2, 2)
	require.NoError(t, err)
	a.SetPosition(0, 0, 0, true)
	a.SetPosition(1, 0, 1, true)
	a.SetPosition(0, 1, 0, true)

	out, err := a.ToFASTA([]string{"s1", "s2"}, [][]byte{[]byte("AG"), []byte("A")})
	require.NoError(t, err)
	require.Contains(t, out, ">s1\nAG\n")
	require.Contains(t, out, ">s2\nA-\n")
}

func TestToFASTALengthMismatch(t *testing.T) {
	a, err := alignment.NewAlignment(1, 2)
	require.NoError(t, err)
	_, err = a.ToFASTA([]string{"only-one"}, [][]byte{{}})
	require.Error(t, err)
}

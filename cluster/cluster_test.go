package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/cluster"
)

func TestAgglomerateFourPointTwoLayer(t *testing.T) {
	edges := []cluster.Edge{
		{I: 0, J: 1, Score: 0.9},
		{I: 2, J: 3, Score: 0.85},
		{I: 1, J: 2, Score: 0.4},
	}
	h, err := cluster.Agglomerate(4, edges, nil, []float64{0.8, 0.3})
	require.NoError(t, err)
	require.NoError(t, h.Validate(4))

	paths := cluster.DFS(h)
	byEntry := make(map[int][]int)
	for _, p := range paths {
		byEntry[p.EntryIndex] = p.Counters
	}
	require.Equal(t, []int{1, 1, 1}, byEntry[0])
	require.Equal(t, []int{1, 1, 2}, byEntry[1])
	require.Equal(t, []int{1, 2, 1}, byEntry[2])
	require.Equal(t, []int{1, 2, 2}, byEntry[3])
}

func TestAgglomerateRejectsNonDecreasingThresholds(t *testing.T) {
	_, err := cluster.Agglomerate(3, nil, nil, []float64{0.3, 0.3})
	require.Error(t, err)
}

func TestAgglomerateRejectsEmptyThresholds(t *testing.T) {
	_, err := cluster.Agglomerate(3, nil, nil, nil)
	require.Error(t, err)
}

func TestAgglomerateIsolatedSingletonStaysUnreached(t *testing.T) {
	edges := []cluster.Edge{{I: 0, J: 1, Score: 0.9}}
	h, err := cluster.Agglomerate(3, edges, nil, []float64{0.5})
	require.NoError(t, err)
	require.NoError(t, h.Validate(3))
	require.Len(t, h.Layers[0].Groups, 2) // {0,1} merged, {2} standalone
}

func TestRenderText(t *testing.T) {
	edges := []cluster.Edge{
		{I: 0, J: 1, Score: 0.9},
		{I: 2, J: 3, Score: 0.85},
		{I: 1, J: 2, Score: 0.4},
	}
	h, err := cluster.Agglomerate(4, edges, nil, []float64{0.8, 0.3})
	require.NoError(t, err)
	out := cluster.RenderText(h, []string{"a", "b", "c", "d"})
	require.Contains(t, out, "1.1.1 a")
	require.Contains(t, out, "1.2.2 d")
}

func TestClusterDomainsRejectsOverlap(t *testing.T) {
	cd := cluster.NewClusterData()
	require.NoError(t, cd.Add("c1", "e1", []cluster.Segment{{From: 1, To: 50}}))
	err := cd.Add("c1", "e1", []cluster.Segment{{From: 40, To: 60}})
	require.Error(t, err)
}

func TestClusterDomainsAllowsDisjointSegments(t *testing.T) {
	cd := cluster.NewClusterData()
	require.NoError(t, cd.Add("c1", "e1", []cluster.Segment{{From: 1, To: 50}}))
	require.NoError(t, cd.Add("c1", "e1", []cluster.Segment{{From: 60, To: 100}}))
	require.Len(t, cd.Entries("c1"), 2)
}

func TestClusterDomainsClusterNamesSorted(t *testing.T) {
	cd := cluster.NewClusterData()
	require.NoError(t, cd.Add("zeta", "e1", nil))
	require.NoError(t, cd.Add("alpha", "e2", nil))
	require.Equal(t, []string{"alpha", "zeta"}, cd.ClusterNames())
}

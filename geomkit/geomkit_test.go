package geomkit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/geomkit"
)

func mustCoord(t *testing.T, x, y, z float64) geomkit.Coord {
	t.Helper()
	c, err := geomkit.NewCoord(x, y, z)
	require.NoError(t, err)
	return c
}

func TestCoordConstructionRejectsNonFinite(t *testing.T) {
	_, err := geomkit.NewCoord(math.NaN(), 0, 0)
	require.Error(t, err)
	_, err = geomkit.NewCoord(math.Inf(1), 0, 0)
	require.Error(t, err)
}

func TestCoordArithmetic(t *testing.T) {
	a := mustCoord(t, 1, 2, 3)
	b := mustCoord(t, 4, 5, 6)
	require.Equal(t, geomkit.Coord{X: 5, Y: 7, Z: 9}, a.Add(b))
	require.Equal(t, geomkit.Coord{X: -3, Y: -3, Z: -3}, a.Sub(b))
	require.InDelta(t, 32.0, a.Dot(b), 1e-12)
	require.InDelta(t, math.Sqrt(14), a.Norm(), 1e-12)
}

func TestKabschIdentityOnCollinearPoints(t *testing.T) {
	pts := []geomkit.Coord{
		mustCoord(t, 0, 0, 0),
		mustCoord(t, 1, 0, 0),
		mustCoord(t, 2, 0, 0),
	}
	rot, err := geomkit.FitFirstOntoSecond(pts, pts)
	require.NoError(t, err)
	arr := rot.Array()
	want := geomkit.Identity().Array()
	for i := range arr {
		require.InDelta(t, want[i], arr[i], 1e-5)
	}
}

func TestKabsch90DegreeXToY(t *testing.T) {
	a := []geomkit.Coord{
		mustCoord(t, 0, 0, 0),
		mustCoord(t, 1, 0, 0),
		mustCoord(t, 0, 1, 0),
	}
	b := []geomkit.Coord{
		mustCoord(t, 0, 0, 0),
		mustCoord(t, 0, 1, 0),
		mustCoord(t, -1, 0, 0),
	}
	rot, err := geomkit.FitFirstOntoSecond(a, b)
	require.NoError(t, err)

	rotatedX := rot.ApplyTo(mustCoord(t, 1, 0, 0))
	require.InDelta(t, 0, rotatedX.X, 1e-6)
	require.InDelta(t, 1, rotatedX.Y, 1e-6)
	require.InDelta(t, 0, rotatedX.Z, 1e-6)

	rotatedY := rot.ApplyTo(mustCoord(t, 0, 1, 0))
	require.InDelta(t, -1, rotatedY.X, 1e-6)
	require.InDelta(t, 0, rotatedY.Y, 1e-6)
	require.InDelta(t, 0, rotatedY.Z, 1e-6)
}

func TestKabschOptimalityOnKnownRotation(t *testing.T) {
	// Known rotation: 90 degrees about Z.
	known, err := geomkit.NewRotation([9]float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}, geomkit.DefaultOrthogonalityTolerance)
	require.NoError(t, err)

	a := []geomkit.Coord{
		mustCoord(t, 1, 0, 0),
		mustCoord(t, 0, 1, 0),
		mustCoord(t, 1, 1, 1),
		mustCoord(t, -1, 2, 0.5),
	}
	b := make([]geomkit.Coord, len(a))
	for i, p := range a {
		b[i] = known.ApplyTo(p)
	}

	got, err := geomkit.FitFirstOntoSecond(a, b)
	require.NoError(t, err)

	wantArr := known.Array()
	gotArr := got.Array()
	for i := range wantArr {
		require.InDelta(t, wantArr[i], gotArr[i], 1e-9)
	}
}

func TestFitFirstOntoSecondRejectsMismatchedLengths(t *testing.T) {
	a := []geomkit.Coord{mustCoord(t, 0, 0, 0)}
	b := []geomkit.Coord{mustCoord(t, 0, 0, 0), mustCoord(t, 1, 0, 0)}
	_, err := geomkit.FitFirstOntoSecond(a, b)
	require.Error(t, err)
}

func TestRotationDetAndOrthogonality(t *testing.T) {
	rot := geomkit.Identity()
	require.InDelta(t, 1.0, rot.Det(), 1e-12)
}

func TestRigidTransformRoundTrip(t *testing.T) {
	rot, err := geomkit.NewRotation([9]float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}, geomkit.DefaultOrthogonalityTolerance)
	require.NoError(t, err)
	tr := geomkit.RigidTransform{Rotation: rot, Translation: mustCoord(t, 1, 2, 3)}

	p := mustCoord(t, 5, -1, 2)
	moved := tr.ApplyTo(p)
	back := tr.Inverse().ApplyTo(moved)

	require.InDelta(t, p.X, back.X, 1e-9)
	require.InDelta(t, p.Y, back.Y, 1e-9)
	require.InDelta(t, p.Z, back.Z, 1e-9)
}

func TestRotationToXAxisAndXYPlane(t *testing.T) {
	a := mustCoord(t, 1, 0, 0)
	b := mustCoord(t, 0, 1, 0)
	rot, err := geomkit.RotationToXAxisAndXYPlane(a, b)
	require.NoError(t, err)

	ra := rot.ApplyTo(a)
	require.InDelta(t, ra.Norm(), ra.X, 1e-9) // parallel to +X
	require.InDelta(t, 0, ra.Y, 1e-9)
	require.InDelta(t, 0, ra.Z, 1e-9)

	rb := rot.ApplyTo(b)
	require.InDelta(t, 0, rb.Z, 1e-9) // lies in X-Y plane
}

func TestCentroidAndRecentre(t *testing.T) {
	pts := []geomkit.Coord{
		mustCoord(t, 0, 0, 0),
		mustCoord(t, 2, 0, 0),
		mustCoord(t, 1, 3, 0),
	}
	c := geomkit.Centroid(pts)
	require.InDelta(t, 1.0, c.X, 1e-12)
	require.InDelta(t, 1.0, c.Y, 1e-12)

	recentred, centroid := geomkit.Recentre(pts)
	require.Equal(t, c, centroid)
	sum := geomkit.Centroid(recentred)
	require.InDelta(t, 0, sum.X, 1e-9)
	require.InDelta(t, 0, sum.Y, 1e-9)
}

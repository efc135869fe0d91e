package geomkit

import (
	"fmt"
	"math"

	"github.com/cath-tools/strucore/errs"
)

// RotationToXAxisAndXYPlane returns R such that R·a is parallel to +X and
// R·b lies in the X-Y plane with z ≥ 0.
//
// Construction: first axis = â; third axis = normalise(a × b), falling back
// to any unit vector orthogonal to â (a deterministic one, chosen by
// zeroing the smallest-magnitude component of â and re-orthogonalising) when
// a and b are collinear; second axis = third × first.
func RotationToXAxisAndXYPlane(a, b Coord) (Rotation, error) {
	xAxis, ok := a.Normalise()
	if !ok {
		return Rotation{}, errs.New(errs.KindInvalidArgument, "geomkit.RotationToXAxisAndXYPlane",
			fmt.Errorf("a must be non-zero"))
	}

	zAxis, ok := xAxis.Cross(b).Normalise()
	if !ok {
		zAxis = deterministicOrthogonal(xAxis)
	}

	yAxis := zAxis.Cross(xAxis)

	m := [9]float64{
		xAxis.X, xAxis.Y, xAxis.Z,
		yAxis.X, yAxis.Y, yAxis.Z,
		zAxis.X, zAxis.Y, zAxis.Z,
	}
	rot, err := NewRotation(m, DefaultOrthogonalityTolerance)
	if err != nil {
		return Rotation{}, errs.New(errs.KindNumerical, "geomkit.RotationToXAxisAndXYPlane", err)
	}
	return rot, nil
}

// deterministicOrthogonal returns a unit vector orthogonal to u, chosen
// deterministically: zero the component of u with the smallest magnitude,
// swap the other two and negate one, then re-orthogonalise via
// Gram-Schmidt. This never degenerates because u is itself unit length, so
// its largest-magnitude component is at least 1/√3, and that component is
// never the one zeroed, so the seed is non-zero.
func deterministicOrthogonal(u Coord) Coord {
	ax, ay, az := math.Abs(u.X), math.Abs(u.Y), math.Abs(u.Z)
	var seed Coord
	switch {
	case ax <= ay && ax <= az:
		seed = Coord{X: 0, Y: -u.Z, Z: u.Y}
	case ay <= ax && ay <= az:
		seed = Coord{X: -u.Z, Y: 0, Z: u.X}
	default:
		seed = Coord{X: -u.Y, Y: u.X, Z: 0}
	}
	ortho := seed.Sub(u.Scale(u.Dot(seed)))
	n, ok := ortho.Normalise()
	if !ok {
		// Numerically degenerate (should not happen for unit u); fall back
		// to an axis-aligned vector guaranteed orthogonal to a unit axis.
		n, _ = Coord{X: 1, Y: 0, Z: 0}.Sub(u.Scale(u.X)).Normalise()
	}
	return n
}

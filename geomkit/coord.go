// Package geomkit provides the geometric primitives used by the
// superposition core: 3-vectors, proper-orthogonal rotations, rigid
// transforms, and the Kabsch point-cloud fit.
//
// The public surface never panics on data-driven conditions; construction
// failures and numerical failures are returned as *errs.Error.
package geomkit

import (
	"math"

	"github.com/cath-tools/strucore/errs"
)

// Coord is an immutable 3-vector of finite doubles. All public
// constructors reject NaN/Inf components.
type Coord struct {
	X, Y, Z float64
}

// NewCoord builds a Coord, rejecting non-finite components.
func NewCoord(x, y, z float64) (Coord, error) {
	c := Coord{X: x, Y: y, Z: z}
	if !c.Finite() {
		return Coord{}, errs.New(errs.KindInvalidArgument, "geomkit.NewCoord", errNonFiniteCoord)
	}
	return c, nil
}

// Finite reports whether every component is a finite float (no NaN, no
// ±Inf). Every public constructor enforces this before returning a Coord.
func (c Coord) Finite() bool {
	return isFinite(c.X) && isFinite(c.Y) && isFinite(c.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

// Scale returns c scaled by k.
func (c Coord) Scale(k float64) Coord {
	return Coord{c.X * k, c.Y * k, c.Z * k}
}

// Dot returns the dot product of c and o.
func (c Coord) Dot(o Coord) float64 {
	return c.X*o.X + c.Y*o.Y + c.Z*o.Z
}

// Cross returns the cross product c × o.
func (c Coord) Cross(o Coord) Coord {
	return Coord{
		X: c.Y*o.Z - c.Z*o.Y,
		Y: c.Z*o.X - c.X*o.Z,
		Z: c.X*o.Y - c.Y*o.X,
	}
}

// Norm returns the Euclidean length of c.
func (c Coord) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

// Normalise returns c scaled to unit length. If c is (within tolerance) the
// zero vector, Normalise returns the zero Coord and ok=false rather than
// dividing by zero.
func (c Coord) Normalise() (Coord, bool) {
	n := c.Norm()
	if n < 1e-12 {
		return Coord{}, false
	}
	return c.Scale(1 / n), true
}

// Distance returns the Euclidean distance between c and o.
func (c Coord) Distance(o Coord) float64 {
	return c.Sub(o).Norm()
}

// Centroid returns the arithmetic mean of pts. The empty slice returns the
// origin.
func Centroid(pts []Coord) Coord {
	if len(pts) == 0 {
		return Coord{}
	}
	var sum Coord
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// Recentre translates every point in pts so that their centroid is the
// origin, and returns the new slice together with the original centroid.
func Recentre(pts []Coord) ([]Coord, Coord) {
	c := Centroid(pts)
	out := make([]Coord, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(c)
	}
	return out, c
}

var errNonFiniteCoord = errNonFinite("coord has non-finite component")

type errNonFinite string

func (e errNonFinite) Error() string { return string(e) }

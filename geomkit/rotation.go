package geomkit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cath-tools/strucore/errs"
)

// DefaultOrthogonalityTolerance is the default tolerance within which a
// Rotation's matrix must satisfy RᵀR = I and det(R) = +1.
const DefaultOrthogonalityTolerance = 1e-5

// Rotation is a 3x3 real matrix, invariant proper-orthogonal (RᵀR = I,
// det(R) = +1) within DefaultOrthogonalityTolerance. The zero value is NOT
// a valid Rotation; use Identity() or one of the constructors.
type Rotation struct {
	m [3][3]float64
}

// Identity returns the 3x3 identity rotation.
func Identity() Rotation {
	return Rotation{m: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// NewRotation validates the 9 row-major entries of m as a proper-orthogonal
// matrix within tau and returns a Rotation, or KindInvalidArgument.
func NewRotation(m [9]float64, tau float64) (Rotation, error) {
	r := Rotation{m: [3][3]float64{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{m[6], m[7], m[8]},
	}}
	if err := r.checkOrthogonal(tau); err != nil {
		return Rotation{}, errs.New(errs.KindInvalidArgument, "geomkit.NewRotation", err)
	}
	return r, nil
}

func (r Rotation) checkOrthogonal(tau float64) error {
	// RᵀR should equal I within tau, entrywise.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += r.m[k][i] * r.m[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(sum-want) > tau {
				return fmt.Errorf("matrix is not orthogonal within %g (entry %d,%d = %g)", tau, i, j, sum)
			}
		}
	}
	d := r.Det()
	if math.Abs(d-1) > tau {
		return fmt.Errorf("determinant %g is not +1 within %g", d, tau)
	}
	return nil
}

// Det returns the determinant of r.
func (r Rotation) Det() float64 {
	m := r.m
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Array returns the 9 row-major entries of r.
func (r Rotation) Array() [9]float64 {
	return [9]float64{
		r.m[0][0], r.m[0][1], r.m[0][2],
		r.m[1][0], r.m[1][1], r.m[1][2],
		r.m[2][0], r.m[2][1], r.m[2][2],
	}
}

// ApplyTo rotates c by r.
func (r Rotation) ApplyTo(c Coord) Coord {
	return Coord{
		X: r.m[0][0]*c.X + r.m[0][1]*c.Y + r.m[0][2]*c.Z,
		Y: r.m[1][0]*c.X + r.m[1][1]*c.Y + r.m[1][2]*c.Z,
		Z: r.m[2][0]*c.X + r.m[2][1]*c.Y + r.m[2][2]*c.Z,
	}
}

// Compose returns the rotation equivalent to applying r first, then other
// (other ∘ r, matching matrix product other·r).
func (r Rotation) Compose(other Rotation) Rotation {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += other.m[i][k] * r.m[k][j]
			}
			out[i][j] = sum
		}
	}
	return Rotation{m: out}
}

// Inverse returns rᵀ, the inverse of a proper-orthogonal rotation.
func (r Rotation) Inverse() Rotation {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r.m[j][i]
		}
	}
	return Rotation{m: out}
}

// Tidy finds the nearest proper-orthogonal matrix to the given 9 row-major
// entries via SVD (m = U S Vᵀ, result = U Vᵀ with the sign of the smallest
// singular vector flipped to force det = +1), and fails with KindNumerical
// if the nearest proper-orthogonal matrix is farther than tau away in
// Frobenius norm.
func Tidy(m [9]float64, tau float64) (Rotation, error) {
	a := mat.NewDense(3, 3, m[:])

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return Rotation{}, errs.New(errs.KindNumerical, "geomkit.Tidy", fmt.Errorf("SVD factorization failed"))
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var uvT mat.Dense
	uvT.Mul(&u, v.T())

	d := mat.Det(&uvT)
	sign := 1.0
	if d < 0 {
		sign = -1.0
	}

	// R = U * diag(1,1,sign) * Vᵀ
	var diag mat.Dense
	diag.CloneFrom(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, sign}))

	var uDiag, r mat.Dense
	uDiag.Mul(&u, &diag)
	r.Mul(&uDiag, v.T())

	var arr [9]float64
	idx := 0
	var residual float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			val := r.At(i, j)
			arr[idx] = val
			idx++
			orig := a.At(i, j)
			residual += (val - orig) * (val - orig)
		}
	}
	residual = math.Sqrt(residual)
	if residual > tau {
		return Rotation{}, errs.New(errs.KindNumerical, "geomkit.Tidy",
			fmt.Errorf("nearest proper-orthogonal matrix is %.3g away, exceeds tau=%.3g", residual, tau))
	}

	return Rotation{m: [3][3]float64{
		{arr[0], arr[1], arr[2]},
		{arr[3], arr[4], arr[5]},
		{arr[6], arr[7], arr[8]},
	}}, nil
}

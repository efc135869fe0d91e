package geomkit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cath-tools/strucore/errs"
)

// FitFirstOntoSecond computes the rotation that optimally superposes a onto
// b in the least-squares sense, using the Kabsch algorithm.
//
// Preconditions: len(a) == len(b); both point sets are already translated so
// their centroids are at the origin. FitFirstOntoSecond does not re-centre
// them — callers use Recentre first.
//
// Algorithm: form the 3x3 cross-covariance H = Σ aᵢ bᵢᵀ; SVD H = U S Vᵀ;
// let d = sign(det(V Uᵀ)); negate the column of U paired with the smallest
// singular value iff d = -1; return R = V · diag(1,1,d) · Uᵀ.
//
// Guarantee: det(R) = +1 within DefaultOrthogonalityTolerance.
func FitFirstOntoSecond(a, b []Coord) (Rotation, error) {
	if len(a) != len(b) {
		return Rotation{}, errs.New(errs.KindInvalidArgument, "geomkit.FitFirstOntoSecond",
			fmt.Errorf("mismatched point counts: %d vs %d", len(a), len(b)))
	}
	if len(a) == 0 {
		return Rotation{}, errs.New(errs.KindInvalidArgument, "geomkit.FitFirstOntoSecond",
			fmt.Errorf("no points supplied"))
	}

	var h [3][3]float64
	for i := range a {
		ai, bi := a[i], b[i]
		if !ai.Finite() || !bi.Finite() {
			return Rotation{}, errs.New(errs.KindInvalidArgument, "geomkit.FitFirstOntoSecond",
				fmt.Errorf("point %d has a non-finite component", i))
		}
		av := [3]float64{ai.X, ai.Y, ai.Z}
		bv := [3]float64{bi.X, bi.Y, bi.Z}
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				h[k][l] += av[k] * bv[l]
			}
		}
	}

	flat := make([]float64, 0, 9)
	for k := 0; k < 3; k++ {
		flat = append(flat, h[k][0], h[k][1], h[k][2])
	}
	hm := mat.NewDense(3, 3, flat)

	var svd mat.SVD
	if ok := svd.Factorize(hm, mat.SVDFull); !ok {
		return Rotation{}, errs.New(errs.KindNumerical, "geomkit.FitFirstOntoSecond",
			fmt.Errorf("SVD factorization of cross-covariance failed"))
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vuT mat.Dense
	vuT.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vuT) < 0 {
		d = -1.0
	}

	var diag mat.Dense
	diag.CloneFrom(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, d}))

	var vDiag, r mat.Dense
	vDiag.Mul(&v, &diag)
	r.Mul(&vDiag, u.T())

	var arr [9]float64
	idx := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			arr[idx] = r.At(i, j)
			idx++
		}
	}

	rot, err := NewRotation(arr, DefaultOrthogonalityTolerance)
	if err != nil {
		return Rotation{}, errs.New(errs.KindNumerical, "geomkit.FitFirstOntoSecond", err)
	}
	return rot, nil
}

// RMSD returns the root-mean-square distance between a and b (no rotation
// applied), used by the superpose builder to report pairwise fit quality.
func RMSD(a, b []Coord) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, errs.New(errs.KindInvalidArgument, "geomkit.RMSD",
			fmt.Errorf("mismatched or empty point sets: %d vs %d", len(a), len(b)))
	}
	var sum float64
	for i := range a {
		d := a[i].Distance(b[i])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a))), nil
}

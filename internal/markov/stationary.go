package markov

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// entries this close to zero after normalization are rounding noise
	clampTolerance = 1e-12
	minEigenSum    = 1e-12
)

// Stationary returns the long-run distribution of the chain: the real part of
// the eigenvector whose eigenvalue is closest to 1, normalized to sum to 1.
func Stationary(a *Matrix) (Vector, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(a.dense, mat.EigenRight); !ok {
		return nil, &ComputationError{Op: "stationary", Wrapped: ErrNoConvergence}
	}

	values := eig.Values(nil)
	idx := closestToOne(values)

	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	v := make(Vector, len(values))
	for i := range v {
		v[i] = real(vectors.At(i, idx))
	}

	sum := floats.Sum(v)
	if math.Abs(sum) < minEigenSum {
		return nil, &ComputationError{Op: "stationary", Wrapped: ErrDegenerate}
	}
	floats.Scale(1/sum, v)

	for i, x := range v {
		if x < 0 && x > -clampTolerance {
			v[i] = 0
		}
	}

	return v, nil
}

// closestToOne returns the index of the eigenvalue nearest to 1. Solvers do
// not sort eigenvalues, so the Perron root can sit at any index.
func closestToOne(values []complex128) int {
	best := 0
	bestDist := math.Inf(1)
	for i, l := range values {
		if d := cmplx.Abs(l - 1); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Residual is the largest entry of |A·p - p|, zero for an exact fixed point.
func Residual(a *Matrix, p Vector) (float64, error) {
	next, err := Advance(a, p)
	if err != nil {
		return 0, err
	}
	res := 0.0
	for i := range next {
		res = math.Max(res, math.Abs(next[i]-p[i]))
	}
	return res, nil
}

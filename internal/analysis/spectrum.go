package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/san-kum/tilechain/internal/markov"
	"gonum.org/v1/gonum/mat"
)

// Spectrum returns the eigenvalues of a sorted by decreasing modulus.
func Spectrum(a *markov.Matrix) ([]complex128, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(a.Dense(), mat.EigenNone); !ok {
		return nil, &markov.ComputationError{Op: "spectrum", Wrapped: markov.ErrNoConvergence}
	}

	values := eig.Values(nil)
	sort.SliceStable(values, func(i, j int) bool {
		return cmplx.Abs(values[i]) > cmplx.Abs(values[j])
	})
	return values, nil
}

// SecondModulus is |λ2|, the modulus of the second eigenvalue.
func SecondModulus(a *markov.Matrix) (float64, error) {
	values, err := Spectrum(a)
	if err != nil {
		return 0, err
	}
	if len(values) < 2 {
		return 0, nil
	}
	return cmplx.Abs(values[1]), nil
}

// SpectralGap is 1 - |λ2|. A chain with a positive gap converges to a single
// stationary distribution from every start.
func SpectralGap(a *markov.Matrix) (float64, error) {
	m, err := SecondModulus(a)
	if err != nil {
		return 0, err
	}
	return 1 - m, nil
}

// MixingTime estimates the turns needed for the distance to the limit to
// shrink by tol: ln(tol) / ln|λ2|. It returns 0 for a chain that mixes in
// one turn and -1 for one that never does.
func MixingTime(a *markov.Matrix, tol float64) (int, error) {
	m, err := SecondModulus(a)
	if err != nil {
		return 0, err
	}
	switch {
	case m < 1e-15:
		return 0, nil
	case m >= 1:
		return -1, nil
	}
	return int(math.Ceil(math.Log(tol) / math.Log(m))), nil
}

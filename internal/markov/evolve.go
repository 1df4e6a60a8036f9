package markov

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Advance returns A·p, the distribution after one more turn. p is not modified.
func Advance(a *Matrix, p Vector) (Vector, error) {
	n := a.Size()
	if len(p) != n {
		return nil, fmt.Errorf("%w: vector has %d entries, matrix is %dx%d", ErrDimensionMismatch, len(p), n, n)
	}

	var next mat.VecDense
	next.MulVec(a.dense, mat.NewVecDense(n, p.Clone()))
	return Vector(mat.Col(nil, 0, &next)), nil
}

// Evolve returns p0 followed by the distributions after each of turns turns.
func Evolve(a *Matrix, p0 Vector, turns int) ([]Vector, error) {
	if turns < 0 {
		return nil, fmt.Errorf("turns must be non-negative, got %d", turns)
	}

	seq := make([]Vector, 0, turns+1)
	p := p0.Clone()
	seq = append(seq, p)

	for i := 0; i < turns; i++ {
		next, err := Advance(a, p)
		if err != nil {
			return nil, err
		}
		seq = append(seq, next)
		p = next
	}

	return seq, nil
}

// Distance is the total variation distance between two distributions. It
// panics with ErrDimensionMismatch when p and q differ in length.
func Distance(p, q Vector) float64 {
	if len(p) != len(q) {
		panic(ErrDimensionMismatch)
	}
	return floats.Distance(p, q, 1) / 2
}

// Converge advances p0 until two consecutive distributions are closer than
// tol. It returns the number of turns taken and the final distribution.
func Converge(a *Matrix, p0 Vector, tol float64, maxTurns int) (int, Vector, error) {
	p := p0.Clone()
	for turn := 1; turn <= maxTurns; turn++ {
		next, err := Advance(a, p)
		if err != nil {
			return 0, nil, err
		}
		if Distance(next, p) < tol {
			return turn, next, nil
		}
		p = next
	}
	return maxTurns, p, fmt.Errorf("%w: %d turns at tol %g", ErrNotConverged, maxTurns, tol)
}

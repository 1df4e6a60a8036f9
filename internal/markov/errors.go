package markov

import "errors"

// Domain errors for chain construction and analysis.
var (
	// ErrDimensionMismatch indicates a vector whose length differs from the matrix size.
	ErrDimensionMismatch = errors.New("markov: dimension mismatch between vector and matrix")

	// ErrTileRange indicates a jump or retention that names a tile outside the matrix.
	ErrTileRange = errors.New("markov: tile index out of range")

	// ErrProbability indicates a jump probability or retention outside [0, 1].
	ErrProbability = errors.New("markov: probability outside [0, 1]")

	// ErrRuleMass indicates a source tile whose jump probabilities and retention do not sum to 1.
	ErrRuleMass = errors.New("markov: jump probabilities and retention do not sum to 1")

	// ErrJumpCycle indicates jump rules that cannot be ordered.
	ErrJumpCycle = errors.New("markov: jump rules form a cycle")

	// ErrNoConvergence indicates the eigen-decomposition routine failed.
	ErrNoConvergence = errors.New("markov: eigen-decomposition did not converge")

	// ErrDegenerate indicates an eigenvector that cannot be normalized.
	ErrDegenerate = errors.New("markov: eigenvector for eigenvalue 1 sums to zero")

	// ErrNotConverged indicates repeated advancing did not settle within the turn limit.
	ErrNotConverged = errors.New("markov: distribution did not settle within turn limit")
)

// ComputationError wraps a linear-algebra failure with the operation that hit it.
type ComputationError struct {
	Op      string
	Wrapped error
}

func (e *ComputationError) Error() string {
	return e.Op + ": " + e.Wrapped.Error()
}

func (e *ComputationError) Unwrap() error {
	return e.Wrapped
}

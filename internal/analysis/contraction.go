package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/tilechain/internal/markov"
)

// distanceFloor is where total variation distances stop carrying signal.
const distanceFloor = 1e-13

// ErrCoincident indicates two trajectories that are already indistinguishable,
// so no contraction can be measured.
var ErrCoincident = errors.New("analysis: trajectories coincide")

// ContractionRate estimates ln|λ2| from two trajectories of a.
//
// Algorithm:
// 1. Advance p and q side by side
// 2. Measure their total variation distance every turn
// 3. rate ≈ mean of ln(d(n+1)/d(n))
//
// Turns after the distance drops below rounding noise are ignored. A negative
// rate means the trajectories converge. Starts that coincide from the outset,
// or within one turn, return ErrCoincident.
func ContractionRate(a *markov.Matrix, p, q markov.Vector, turns int) (float64, error) {
	sumLog := 0.0
	count := 0

	d := markov.Distance(p, q)
	for n := 0; n < turns && d > distanceFloor; n++ {
		var err error
		if p, err = markov.Advance(a, p); err != nil {
			return 0, err
		}
		if q, err = markov.Advance(a, q); err != nil {
			return 0, err
		}

		next := markov.Distance(p, q)
		if next <= distanceFloor {
			break
		}
		sumLog += math.Log(next / d)
		count++
		d = next
	}

	if count == 0 {
		return 0, ErrCoincident
	}
	return sumLog / float64(count), nil
}

package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/tilechain/internal/markov"
)

// ErrInvalidDistribution indicates a starting vector that is negative or does not sum to 1.
var ErrInvalidDistribution = errors.New("sim: initial vector is not a probability distribution")

type Metric interface {
	Name() string
	Observe(p markov.Vector, turn int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTurn(p markov.Vector, turn int)
}

type Config struct {
	Turns         int
	Tolerance     float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Turns:         80,
		Tolerance:     1e-8,
		ValidateState: true,
	}
}

// Result holds the distribution after each turn, starting with turn 0.
type Result struct {
	States     []markov.Vector
	Turns      []int
	Metrics    map[string]float64
	Drift      float64
	TurnsTaken int
	Errors     []error
}

// Final is the last distribution of the run.
func (r *Result) Final() markov.Vector {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

type SimError struct {
	Turn    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("turn %d: %s", e.Turn, e.Message)
}

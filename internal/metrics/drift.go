package metrics

import (
	"math"

	"github.com/san-kum/tilechain/internal/markov"
)

// Drift tracks the largest deviation of the total probability mass from 1.
type Drift struct {
	name string
	max  float64
}

func NewDrift() *Drift {
	return &Drift{name: "mass_drift"}
}

func (d *Drift) Name() string {
	return d.name
}

func (d *Drift) Observe(p markov.Vector, turn int) {
	d.max = math.Max(d.max, math.Abs(p.Sum()-1))
}

func (d *Drift) Value() float64 {
	return d.max
}

func (d *Drift) Reset() {
	d.max = 0
}

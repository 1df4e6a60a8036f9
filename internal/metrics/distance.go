package metrics

import (
	"math"

	"github.com/san-kum/tilechain/internal/markov"
)

// Distance is the total variation distance between the latest distribution
// and a reference, usually the stationary distribution.
type Distance struct {
	name      string
	reference markov.Vector
	last      float64
	samples   int
}

func NewDistance(reference markov.Vector) *Distance {
	return &Distance{
		name:      "distance_to_limit",
		reference: reference,
	}
}

func (d *Distance) Name() string {
	return d.name
}

func (d *Distance) Observe(p markov.Vector, turn int) {
	d.last = markov.Distance(p, d.reference)
	d.samples++
}

func (d *Distance) Value() float64 {
	if d.samples == 0 {
		return math.NaN()
	}
	return d.last
}

func (d *Distance) Reset() {
	d.last = 0
	d.samples = 0
}

// Mixing records the first turn at which the distribution came within
// threshold of the reference. It reports -1 until that happens.
type Mixing struct {
	name      string
	reference markov.Vector
	threshold float64
	turn      int
}

func NewMixing(reference markov.Vector, threshold float64) *Mixing {
	return &Mixing{
		name:      "mixing_turn",
		reference: reference,
		threshold: threshold,
		turn:      -1,
	}
}

func (m *Mixing) Name() string {
	return m.name
}

func (m *Mixing) Observe(p markov.Vector, turn int) {
	if m.turn >= 0 {
		return
	}
	if markov.Distance(p, m.reference) < m.threshold {
		m.turn = turn
	}
}

func (m *Mixing) Value() float64 {
	return float64(m.turn)
}

func (m *Mixing) Reset() {
	m.turn = -1
}

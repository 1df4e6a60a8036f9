package metrics

import (
	"github.com/san-kum/tilechain/internal/markov"
	"gonum.org/v1/gonum/stat"
)

// Peak reports the most likely tile of the latest distribution.
type Peak struct {
	name string
	tile int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_tile"}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(v markov.Vector, turn int) {
	p.tile = v.Argmax()
}

func (p *Peak) Value() float64 {
	return float64(p.tile)
}

func (p *Peak) Reset() {
	p.tile = 0
}

// Entropy is the Shannon entropy, in nats, of the latest distribution.
type Entropy struct {
	name  string
	value float64
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy"}
}

func (e *Entropy) Name() string {
	return e.name
}

func (e *Entropy) Observe(p markov.Vector, turn int) {
	e.value = stat.Entropy(p)
}

func (e *Entropy) Value() float64 {
	return e.value
}

func (e *Entropy) Reset() {
	e.value = 0
}

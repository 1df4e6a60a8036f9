package metrics

import (
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
)

// Defaults are the metrics reported after every run. The distance metrics
// need the stationary distribution and are skipped when limit is nil.
func Defaults(limit markov.Vector) []sim.Metric {
	ms := []sim.Metric{
		NewDrift(),
		NewPeak(),
		NewEntropy(),
	}
	if limit != nil {
		ms = append(ms, NewDistance(limit), NewMixing(limit, 1e-3))
	}
	return ms
}

// Package experiment runs the chain from several starting distributions and
// measures how quickly they forget where they began.
package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
)

type Config struct {
	Name      string
	Start     markov.Vector
	Turns     int
	Tolerance float64
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(chain *markov.Matrix, metrics []sim.Metric) {
	e.simulator = sim.New(chain)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment %s not set up", e.cfg.Name)
	}

	cfg := sim.DefaultConfig()
	cfg.Turns = e.cfg.Turns
	if e.cfg.Tolerance > 0 {
		cfg.Tolerance = e.cfg.Tolerance
	}

	return e.simulator.Run(ctx, e.cfg.Start, cfg)
}

// Comparison holds one run per start and, for each turn, the largest total
// variation distance between any two of them.
type Comparison struct {
	Names   []string
	Results []*sim.Result
	Spread  []float64
}

// Compare runs every config on chain for the same number of turns.
func Compare(ctx context.Context, chain *markov.Matrix, cfgs []Config) (*Comparison, error) {
	if len(cfgs) < 2 {
		return nil, fmt.Errorf("compare needs at least two starts, got %d", len(cfgs))
	}

	c := &Comparison{
		Names:   make([]string, 0, len(cfgs)),
		Results: make([]*sim.Result, 0, len(cfgs)),
	}
	for _, cfg := range cfgs {
		if cfg.Turns != cfgs[0].Turns {
			return nil, fmt.Errorf("start %s runs %d turns, expected %d", cfg.Name, cfg.Turns, cfgs[0].Turns)
		}
		e := New(cfg)
		e.Setup(chain, nil)
		res, err := e.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("start %s: %w", cfg.Name, err)
		}
		c.Names = append(c.Names, cfg.Name)
		c.Results = append(c.Results, res)
	}

	turns := len(c.Results[0].States)
	for _, res := range c.Results[1:] {
		turns = min(turns, len(res.States))
	}
	c.Spread = make([]float64, turns)
	for n := 0; n < turns; n++ {
		for i := range c.Results {
			for j := i + 1; j < len(c.Results); j++ {
				d := markov.Distance(c.Results[i].States[n], c.Results[j].States[n])
				c.Spread[n] = max(c.Spread[n], d)
			}
		}
	}

	log.Debug().Strs("starts", c.Names).Int("turns", turns-1).Msg("comparison finished")

	return c, nil
}

// MixedAt is the first turn whose spread is below tol, or -1.
func (c *Comparison) MixedAt(tol float64) int {
	for n, s := range c.Spread {
		if s < tol {
			return n
		}
	}
	return -1
}

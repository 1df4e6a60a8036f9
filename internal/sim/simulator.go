package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/san-kum/tilechain/internal/markov"
)

type Simulator struct {
	chain     *markov.Matrix
	metrics   []Metric
	observers []Observer
}

func New(chain *markov.Matrix) *Simulator {
	return &Simulator{
		chain:     chain,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances p0 cfg.Turns times. Metrics and observers see every
// distribution, p0 included.
func (s *Simulator) Run(ctx context.Context, p0 markov.Vector, cfg Config) (*Result, error) {
	if err := s.validate(p0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]markov.Vector, 0, cfg.Turns+1),
		Turns:   make([]int, 0, cfg.Turns+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log.Debug().Int("turns", cfg.Turns).Int("start", p0.Argmax()).Msg("run started")

	p := p0.Clone()
	s.record(result, p, 0)

	for turn := 1; turn <= cfg.Turns; turn++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, err := markov.Advance(s.chain, p)
		if err != nil {
			return result, err
		}

		if cfg.ValidateState && !next.IsValid() {
			result.Errors = append(result.Errors, SimError{Turn: turn, Message: "invalid distribution (NaN/Inf)"})
			break
		}

		p = next
		result.TurnsTaken++
		s.record(result, p, turn)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if result.Drift > cfg.Tolerance {
		log.Warn().Float64("drift", result.Drift).Float64("tolerance", cfg.Tolerance).Msg("probability mass drifted")
	}
	log.Debug().Int("turns", result.TurnsTaken).Float64("drift", result.Drift).Msg("run completed")

	return result, nil
}

// RunWithCallback advances p0 and hands every distribution to callback until
// it returns false or the turns run out.
func (s *Simulator) RunWithCallback(ctx context.Context, p0 markov.Vector, cfg Config, callback func(markov.Vector, int) bool) error {
	if err := s.validate(p0, cfg); err != nil {
		return err
	}

	p := p0.Clone()
	for turn := 0; turn <= cfg.Turns; turn++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(p, turn) {
			return nil
		}
		if turn == cfg.Turns {
			break
		}

		next, err := markov.Advance(s.chain, p)
		if err != nil {
			return err
		}
		if cfg.ValidateState && !next.IsValid() {
			return SimError{Turn: turn + 1, Message: "invalid distribution (NaN/Inf)"}
		}
		p = next
	}

	return nil
}

func (s *Simulator) record(result *Result, p markov.Vector, turn int) {
	for _, m := range s.metrics {
		m.Observe(p, turn)
	}
	for _, obs := range s.observers {
		obs.OnTurn(p, turn)
	}

	result.States = append(result.States, p)
	result.Turns = append(result.Turns, turn)
	result.Drift = math.Max(result.Drift, math.Abs(p.Sum()-1))
}

func (s *Simulator) validate(p0 markov.Vector, cfg Config) error {
	if cfg.Turns < 0 {
		return fmt.Errorf("turns must be non-negative, got %d", cfg.Turns)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if n := s.chain.Size(); len(p0) != n {
		return fmt.Errorf("%w: initial vector has %d entries, chain has %d tiles", markov.ErrDimensionMismatch, len(p0), n)
	}
	for i, x := range p0 {
		if x < 0 {
			return fmt.Errorf("%w: tile %d has %g", ErrInvalidDistribution, i, x)
		}
	}
	if sum := p0.Sum(); math.Abs(sum-1) > cfg.Tolerance {
		return fmt.Errorf("%w: sums to %g", ErrInvalidDistribution, sum)
	}
	return nil
}

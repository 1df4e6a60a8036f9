package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"
)

// coin flips between two tiles with equal odds.
func coin() *markov.Matrix {
	return markov.NewMatrix(2, []float64{
		0.5, 0.5,
		0.5, 0.5,
	})
}

func TestSimulatorRun(t *testing.T) {
	s := New(board.TransitionMatrix())

	cfg := DefaultConfig()
	cfg.Turns = 10

	result, err := s.Run(context.Background(), markov.Unit(board.Size, board.Go), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Turns) != 11 || result.Turns[10] != 10 {
		t.Errorf("expected turns 0..10, got %v", result.Turns)
	}
	if result.TurnsTaken != 10 {
		t.Errorf("expected 10 turns taken, got %d", result.TurnsTaken)
	}
	if result.Drift > 1e-8 {
		t.Errorf("expected drift below 1e-8, got %g", result.Drift)
	}
	if sum := result.Final().Sum(); math.Abs(sum-1) > 1e-8 {
		t.Errorf("expected final sum 1, got %.10f", sum)
	}
}

func TestSimulatorZeroTurns(t *testing.T) {
	s := New(coin())
	cfg := DefaultConfig()
	cfg.Turns = 0

	result, err := s.Run(context.Background(), markov.Vector{1, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
	if result.Final()[0] != 1 {
		t.Errorf("expected initial state untouched, got %v", result.Final())
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(coin())

	tests := []struct {
		name string
		p0   markov.Vector
		cfg  Config
		want error
	}{
		{"negative turns", markov.Vector{1, 0}, Config{Turns: -1, Tolerance: 1e-8}, nil},
		{"zero tolerance", markov.Vector{1, 0}, Config{Turns: 1}, nil},
		{"wrong length", markov.Vector{1, 0, 0}, DefaultConfig(), markov.ErrDimensionMismatch},
		{"negative mass", markov.Vector{1.5, -0.5}, DefaultConfig(), ErrInvalidDistribution},
		{"not normalized", markov.Vector{0.5, 0.25}, DefaultConfig(), ErrInvalidDistribution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.p0, tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := New(coin())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, markov.Vector{1, 0}, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected the initial state only, got %d", len(result.States))
	}
}

type testMetric struct {
	count int
	last  float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(p markov.Vector, turn int) {
	t.count++
	t.last = p[0]
}
func (t *testMetric) Value() float64 { return t.last }
func (t *testMetric) Reset() {
	t.count = 0
	t.last = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(coin())

	metric := &testMetric{}
	s.AddMetric(metric)

	cfg := DefaultConfig()
	cfg.Turns = 10

	result, err := s.Run(context.Background(), markov.Vector{1, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["test"]; !ok || v != 0.5 {
		t.Errorf("expected metric test=0.5, got %v (present=%v)", v, ok)
	}
	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}
}

type turnRecorder struct{ turns []int }

func (r *turnRecorder) OnTurn(p markov.Vector, turn int) { r.turns = append(r.turns, turn) }

func TestSimulatorObservers(t *testing.T) {
	s := New(coin())
	rec := &turnRecorder{}
	s.AddObserver(rec)

	cfg := DefaultConfig()
	cfg.Turns = 3
	if _, err := s.Run(context.Background(), markov.Vector{0, 1}, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(rec.turns) != 4 || rec.turns[3] != 3 {
		t.Errorf("expected turns [0 1 2 3], got %v", rec.turns)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := New(board.TransitionMatrix())
	cfg := DefaultConfig()
	cfg.Turns = 5

	var seen []int
	err := s.RunWithCallback(context.Background(), markov.Unit(board.Size, board.Go), cfg, func(p markov.Vector, turn int) bool {
		seen = append(seen, turn)
		return true
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 callbacks, got %d", len(seen))
	}

	seen = seen[:0]
	err = s.RunWithCallback(context.Background(), markov.Unit(board.Size, board.Go), cfg, func(p markov.Vector, turn int) bool {
		seen = append(seen, turn)
		return turn < 2
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("expected the callback to stop after 3 calls, got %d", len(seen))
	}
}

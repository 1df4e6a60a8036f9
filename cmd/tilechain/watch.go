package main

import (
	"context"
	"fmt"

	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/config"
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
)

// playback hands every turn of cfg to o and returns the last turn shown. With
// a positive stopAt it stops at the first turn whose distance to the
// stationary distribution is below stopAt.
func playback(ctx context.Context, cfg *config.Config, stopAt float64, o sim.Observer) (int, error) {
	chain := board.TransitionMatrix()

	var limit markov.Vector
	if stopAt > 0 {
		var err error
		if limit, err = markov.Stationary(chain); err != nil {
			return 0, fmt.Errorf("stationary distribution: %w", err)
		}
	}

	last := 0
	err := sim.New(chain).RunWithCallback(ctx, cfg.InitialDistribution(), cfg.SimConfig(), func(p markov.Vector, turn int) bool {
		o.OnTurn(p, turn)
		last = turn
		return limit == nil || markov.Distance(p, limit) >= stopAt
	})
	if err != nil {
		return last, fmt.Errorf("playback failed: %w", err)
	}
	return last, nil
}

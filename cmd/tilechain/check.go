package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/spf13/cobra"
)

const (
	stochasticTol   = 1e-9
	conservationTol = 1e-8
	residualTol     = 1e-9
	mixingTol       = 1e-5
	settleTol       = 1e-10
	maxSettleTurns  = 1000
	checkTurns      = 200
)

type check struct {
	name  string
	value float64
	limit float64
}

func (c check) ok() bool { return c.value <= c.limit }

// chainChecks measures every invariant of the board chain. The probability
// sum is followed for turns turns from start.
func chainChecks(start, turns int) ([]check, error) {
	if start < 0 || start >= board.Size {
		return nil, fmt.Errorf("%w: start tile %d", markov.ErrTileRange, start)
	}

	dice := board.DiceMatrix()
	a := board.TransitionMatrix()

	rowMass := 0.0
	for _, x := range a.Row(board.GoToJail) {
		rowMass += math.Abs(x)
	}

	rebuilt := 0.0
	if !board.TransitionMatrix().Equal(a) {
		rebuilt = 1
	}

	seq, err := markov.Evolve(a, markov.Unit(board.Size, start), turns)
	if err != nil {
		return nil, err
	}
	drift := 0.0
	for _, p := range seq {
		drift = math.Max(drift, math.Abs(p.Sum()-1))
	}

	pi, err := markov.Stationary(a)
	if err != nil {
		return nil, fmt.Errorf("stationary distribution: %w", err)
	}
	residual, err := markov.Residual(a, pi)
	if err != nil {
		return nil, err
	}
	negative := 0.0
	for _, x := range pi {
		negative = math.Max(negative, -x)
	}

	settled, _, err := markov.Converge(a, markov.Unit(board.Size, start), settleTol, maxSettleTurns)
	if errors.Is(err, markov.ErrNotConverged) {
		settled = maxSettleTurns + 1
	} else if err != nil {
		return nil, err
	}

	fromGo, err := markov.Evolve(a, markov.Unit(board.Size, board.Go), checkTurns)
	if err != nil {
		return nil, err
	}
	fromRailroad, err := markov.Evolve(a, markov.Unit(board.Size, 25), checkTurns)
	if err != nil {
		return nil, err
	}

	return []check{
		{"dice matrix column sums", dice.MaxColumnDrift(), stochasticTol},
		{"transition matrix column sums", a.MaxColumnDrift(), stochasticTol},
		{"Go To Jail row mass", rowMass, 0},
		{"rebuild difference", rebuilt, 0},
		{fmt.Sprintf("probability drift over %d turns", turns), drift, conservationTol},
		{"stationary residual", residual, residualTol},
		{"stationary negative mass", negative, 0},
		{fmt.Sprintf("turns to settle within %g", settleTol), float64(settled), maxSettleTurns},
		{fmt.Sprintf("distance Go vs tile 25 after %d turns", checkTurns), markov.Distance(fromGo[checkTurns], fromRailroad[checkTurns]), mixingTol},
	}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	checks, err := chainChecks(cfg.Start, max(cfg.Turns, checkTurns))
	if err != nil {
		return err
	}

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tVALUE\tLIMIT\tSTATUS")
	for _, c := range checks {
		status := "ok"
		if !c.ok() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.0e\t%s\n", c.name, c.value, c.limit, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

package board

import "github.com/san-kum/tilechain/internal/markov"

// diceOffset places the two-dice histogram in row 0 so that column 28+k
// lands the token on tile 12-k.
const diceOffset = 28

// DiceWeights is the distribution of the sum of two dice for sums 2..12,
// listed from 12 down to 2 (the histogram is symmetric).
func DiceWeights() []float64 {
	counts := []float64{1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1}
	w := make([]float64, len(counts))
	for i, c := range counts {
		w[i] = c / 36
	}
	return w
}

// DiceMatrix is the movement matrix before any board effect.
func DiceMatrix() *markov.Matrix {
	return markov.Movement(Size, DiceWeights(), diceOffset)
}

// Jumps returns every redirect on the board: Go To Jail first, then each
// deck's movement cards at 1/deck size.
func Jumps() []markov.Jump {
	jumps := []markov.Jump{{Sources: []int{GoToJail}, To: Jail, P: 1}}

	for _, d := range Decks {
		p := 1 / float64(d.Size)
		for _, c := range d.Cards {
			if c.Back == 0 && c.PerSource == nil {
				jumps = append(jumps, markov.Jump{Sources: d.Tiles, To: c.To, P: p})
				continue
			}
			for _, src := range d.Tiles {
				jumps = append(jumps, markov.Jump{Sources: []int{src}, To: c.Target(src), P: p})
			}
		}
	}

	return jumps
}

// Retention maps every jump source to the fraction of mass that stays on it.
func Retention() map[int]float64 {
	r := map[int]float64{GoToJail: 0}
	for _, d := range Decks {
		for _, t := range d.Tiles {
			r[t] = d.Retain
		}
	}
	return r
}

// Builder returns a markov.Builder loaded with the board's rules.
func Builder() *markov.Builder {
	b := markov.NewBuilder(DiceMatrix())
	for _, j := range Jumps() {
		b.Jump(j.Sources, j.To, j.P)
	}
	for t, r := range Retention() {
		b.Retain(t, r)
	}
	return b
}

// TransitionMatrix builds the one-turn transition matrix of the board. The
// rules are constants, so a failure here is a programming error and panics.
func TransitionMatrix() *markov.Matrix {
	return Builder().MustBuild()
}

// Package markov provides the discrete-time Markov chain primitives used to
// track a token's position on the board.
//
// The package is organised around two pieces:
//
//   - [Builder]: assembles a column-stochastic [Matrix] from a base movement
//     matrix and a set of [Jump] rules with per-tile retention fractions
//   - [Advance], [Evolve], [Stationary]: evolve a probability [Vector] turn
//     by turn and compute the long-run distribution
//
// Column j of a [Matrix] is the distribution of destination tiles for a token
// that starts the turn on tile j, so one turn is the product A·p.
//
// # Example
//
//	A := board.TransitionMatrix()
//	p := markov.Unit(board.Size, board.Go)
//	p, _ = markov.Advance(A, p)
//	limit, _ := markov.Stationary(A)
//
// # Jump Ordering
//
// A jump reads the row of its source tile. When that tile is itself the
// destination of another jump, every contribution into it must be added
// before it is read and before its retention scaling. [Builder.Build] orders
// the sources topologically so rule order never matters.
package markov

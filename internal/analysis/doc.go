// Package analysis measures how fast a chain forgets its starting tile.
//
// The package includes two views of the same rate:
//
//   - [Spectrum]: eigenvalues of the transition matrix by decreasing modulus
//   - [SpectralGap] and [MixingTime]: the rate implied by the second eigenvalue
//   - [ContractionRate]: the rate measured from two trajectories
//
// # Contraction
//
// Two distributions evolved by the same chain approach each other
// geometrically. The per-turn factor is the modulus of the second eigenvalue:
//
//	rate := analysis.ContractionRate(a, p, q, 200)
//	factor := math.Exp(rate) // about 0.85 on the Monopoly board
package analysis

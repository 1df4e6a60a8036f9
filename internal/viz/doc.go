// Package viz animates the tile distribution in the terminal.
//
// The package implements a live view using the Bubble Tea framework: every
// frame advances the chain by one turn and redraws the distribution over the
// 40 tiles with asciigraph. After the last turn the stationary distribution
// is overlaid.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the starting tile
//	S     - Toggle the stationary overlay
//	T     - Cycle color themes
//	Q     - Quit
package viz

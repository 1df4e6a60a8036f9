// Package tui prints the distribution as a bar chart straight to a terminal,
// one frame per turn. It needs no alternate screen, so it also works when
// the output is piped or recorded.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"
)

const (
	height      = 16
	barWidth    = 2
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Renderer draws every turn it observes and then waits for delay, so the run
// plays back at a readable pace.
type Renderer struct {
	out    io.Writer
	delay  time.Duration
	max    float64
	clear  bool
	canvas [][]rune
}

// NewRenderer draws bars scaled so that max fills the chart. A non-positive
// max rescales every frame to its own peak.
func NewRenderer(out io.Writer, delay time.Duration, max float64) *Renderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, board.Size*barWidth)
	}
	return &Renderer{
		out:    out,
		delay:  delay,
		max:    max,
		clear:  true,
		canvas: canvas,
	}
}

// NoClear keeps previous frames on screen.
func (r *Renderer) NoClear() *Renderer {
	r.clear = false
	return r
}

func (r *Renderer) OnTurn(p markov.Vector, turn int) {
	r.draw(p)
	r.render(p, turn)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
}

func (r *Renderer) draw(p markov.Vector) {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}

	top := r.max
	if top <= 0 {
		top = p[p.Argmax()]
	}
	if top <= 0 {
		return
	}

	for i, v := range p {
		h := int(v / top * height)
		if h > height {
			h = height
		}
		for y := height - 1; y >= height-h; y-- {
			r.canvas[y][i*barWidth] = '#'
		}
		if h == 0 && v > 0 {
			r.canvas[height-1][i*barWidth] = '.'
		}
	}
}

func (r *Renderer) render(p markov.Vector, turn int) {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}

	peak := p.Argmax()
	b.WriteString(fmt.Sprintf("  Rolls: %d  peak %s %.4f\n", turn, board.Name(peak), p[peak]))
	b.WriteString("  " + strings.Repeat("-", board.Size*barWidth) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", board.Size*barWidth) + "\n")
	b.WriteString("  " + axis() + "\n")
	b.WriteString(fmt.Sprintf("  sum=%.8f\n", p.Sum()))

	fmt.Fprint(r.out, b.String())
}

// axis labels every tenth tile.
func axis() string {
	row := []rune(strings.Repeat(" ", board.Size*barWidth))
	for i := 0; i < board.Size; i += 10 {
		for k, c := range fmt.Sprint(i) {
			row[i*barWidth+k] = c
		}
	}
	return string(row)
}

func (r *Renderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *Renderer) Stop()  { fmt.Fprint(r.out, showCursor) }

package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const massTolerance = 1e-12

// Jump redirects a fraction P of the mass landing on each source tile to To.
type Jump struct {
	Sources []int
	To      int
	P       float64
}

type exit struct {
	to int
	p  float64
}

// Builder accumulates jump rules and retention fractions on top of a base
// movement matrix. Rule order does not matter.
type Builder struct {
	base   *Matrix
	jumps  []Jump
	retain map[int]float64
	order  []int
}

func NewBuilder(base *Matrix) *Builder {
	return &Builder{
		base:   base,
		retain: make(map[int]float64),
	}
}

// Jump adds p of every source's landing mass to tile to.
func (b *Builder) Jump(sources []int, to int, p float64) *Builder {
	b.jumps = append(b.jumps, Jump{Sources: append([]int(nil), sources...), To: to, P: p})
	return b
}

// Retain sets the fraction of landing mass that stays on tile.
func (b *Builder) Retain(tile int, fraction float64) *Builder {
	if _, ok := b.retain[tile]; !ok {
		b.order = append(b.order, tile)
	}
	b.retain[tile] = fraction
	return b
}

// Build applies every jump and retention and returns the finished matrix.
//
// Each source tile is processed once, after all jumps into it: its row is
// snapshotted, p × snapshot is added to each destination row, then the row is
// scaled by its retention fraction.
func (b *Builder) Build() (*Matrix, error) {
	n := b.base.Size()

	exits, sources, err := b.collect(n)
	if err != nil {
		return nil, err
	}

	order, err := topoOrder(sources, exits)
	if err != nil {
		return nil, err
	}

	d := mat.DenseCopyOf(b.base.dense)
	for _, s := range order {
		snapshot := mat.Row(nil, s, d)
		for _, e := range exits[s] {
			floats.AddScaled(d.RawRowView(e.to), e.p, snapshot)
		}
		floats.Scale(b.retain[s], d.RawRowView(s))
	}

	return newMatrix(d), nil
}

// MustBuild is like Build but panics if the rules are inconsistent. It is
// meant for fixed rule tables.
func (b *Builder) MustBuild() *Matrix {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *Builder) collect(n int) (map[int][]exit, []int, error) {
	exits := make(map[int][]exit)
	var sources []int

	inRange := func(t int) bool { return t >= 0 && t < n }

	for _, j := range b.jumps {
		if !inRange(j.To) {
			return nil, nil, fmt.Errorf("%w: jump to %d", ErrTileRange, j.To)
		}
		if j.P < 0 || j.P > 1 {
			return nil, nil, fmt.Errorf("%w: jump to %d with p=%g", ErrProbability, j.To, j.P)
		}
		for _, s := range j.Sources {
			if !inRange(s) {
				return nil, nil, fmt.Errorf("%w: jump from %d", ErrTileRange, s)
			}
			if _, seen := exits[s]; !seen {
				sources = append(sources, s)
			}
			exits[s] = append(exits[s], exit{to: j.To, p: j.P})
		}
	}

	for _, t := range b.order {
		r := b.retain[t]
		if !inRange(t) {
			return nil, nil, fmt.Errorf("%w: retention on %d", ErrTileRange, t)
		}
		if r < 0 || r > 1 {
			return nil, nil, fmt.Errorf("%w: retention %g on %d", ErrProbability, r, t)
		}
		if _, ok := exits[t]; !ok {
			if math.Abs(r-1) > massTolerance {
				return nil, nil, fmt.Errorf("%w: tile %d retains %g with no jumps", ErrRuleMass, t, r)
			}
		}
	}

	for _, s := range sources {
		r, ok := b.retain[s]
		if !ok {
			return nil, nil, fmt.Errorf("%w: tile %d has jumps but no retention", ErrRuleMass, s)
		}
		total := r
		for _, e := range exits[s] {
			total += e.p
		}
		if math.Abs(total-1) > massTolerance {
			return nil, nil, fmt.Errorf("%w: tile %d totals %g", ErrRuleMass, s, total)
		}
	}

	return exits, sources, nil
}

// topoOrder sorts sources so that a source reached by another source's jump
// comes after it. Ties keep first-seen order.
func topoOrder(sources []int, exits map[int][]exit) ([]int, error) {
	isSource := make(map[int]bool, len(sources))
	for _, s := range sources {
		isSource[s] = true
	}

	indegree := make(map[int]int, len(sources))
	for _, s := range sources {
		for _, e := range exits[s] {
			if isSource[e.to] {
				indegree[e.to]++
			}
		}
	}

	order := make([]int, 0, len(sources))
	done := make(map[int]bool, len(sources))
	for len(order) < len(sources) {
		progressed := false
		for _, s := range sources {
			if done[s] || indegree[s] > 0 {
				continue
			}
			done[s] = true
			order = append(order, s)
			progressed = true
			for _, e := range exits[s] {
				if isSource[e.to] {
					indegree[e.to]--
				}
			}
		}
		if !progressed {
			return nil, ErrJumpCycle
		}
	}

	return order, nil
}

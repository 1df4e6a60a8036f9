package experiment

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"
)

// Registry names starting distributions.
type Registry struct {
	starts map[string]func() markov.Vector
}

func NewRegistry() *Registry {
	r := &Registry{starts: make(map[string]func() markov.Vector)}

	r.starts["go"] = func() markov.Vector { return markov.Unit(board.Size, board.Go) }
	r.starts["jail"] = func() markov.Vector { return markov.Unit(board.Size, board.Jail) }
	r.starts["uniform"] = func() markov.Vector { return markov.Uniform(board.Size) }
	r.starts["railroads"] = func() markov.Vector { return spread(board.OfKind(board.Railroad)) }
	r.starts["chance"] = func() markov.Vector { return spread(board.OfKind(board.Chance)) }

	return r
}

// Get resolves a registered name or a bare tile number.
func (r *Registry) Get(name string) (markov.Vector, error) {
	if fn, ok := r.starts[name]; ok {
		return fn(), nil
	}
	if tile, err := strconv.Atoi(name); err == nil {
		if tile < 0 || tile >= board.Size {
			return nil, fmt.Errorf("%w: start tile %d", markov.ErrTileRange, tile)
		}
		return markov.Unit(board.Size, tile), nil
	}
	return nil, fmt.Errorf("unknown start: %s", name)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.starts))
	for name := range r.starts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func spread(tiles []int) markov.Vector {
	v := make(markov.Vector, board.Size)
	for _, t := range tiles {
		v[t] = 1 / float64(len(tiles))
	}
	return v
}

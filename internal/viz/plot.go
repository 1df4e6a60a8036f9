package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tilechain/internal/config"
	"github.com/san-kum/tilechain/internal/markov"
)

// Plot draws p over the tiles, with limit as a second series when it is not
// nil. The y axis starts at zero and reaches at least cfg.Max.
func Plot(p, limit markov.Vector, cfg config.PlotConfig, caption string) string {
	opts := []asciigraph.Option{
		asciigraph.Height(cfg.Height),
		asciigraph.Width(cfg.Width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	}
	if cfg.Max > 0 {
		opts = append(opts, asciigraph.UpperBound(cfg.Max))
	}

	if limit == nil {
		return asciigraph.Plot(p, opts...)
	}

	opts = append(opts, asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red))
	return asciigraph.PlotMany([][]float64{p, limit}, opts...)
}

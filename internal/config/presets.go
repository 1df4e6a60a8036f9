package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Turns: 80, Start: 0, Delay: 50, Limit: true, Tolerance: DefaultTolerance,
		Plot: PlotConfig{Height: DefaultPlotHeight, Width: DefaultPlotWidth, Max: 0.1},
	},
	"quick": {
		Turns: 20, Start: 0, Delay: 100, Limit: true, Tolerance: DefaultTolerance,
		Plot: PlotConfig{Height: DefaultPlotHeight, Width: DefaultPlotWidth, Max: 0.2},
	},
	"long": {
		Turns: 300, Start: 0, Delay: 20, Limit: true, Tolerance: DefaultTolerance,
		Plot: PlotConfig{Height: DefaultPlotHeight, Width: DefaultPlotWidth, Max: 0.1},
	},
	"jailbreak": {
		Turns: 80, Start: 10, Delay: 50, Limit: true, Tolerance: DefaultTolerance,
		Plot: PlotConfig{Height: DefaultPlotHeight, Width: DefaultPlotWidth, Max: 0.1},
	},
	"slow": {
		Turns: 40, Start: 0, Delay: 250, Limit: false, Tolerance: DefaultTolerance,
		Plot: PlotConfig{Height: 20, Width: DefaultPlotWidth, Max: 0.2},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

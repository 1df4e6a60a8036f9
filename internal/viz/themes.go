package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeFelt = Theme{
		Name:      "felt",
		Primary:   lipgloss.Color("#c8e6c9"), // board green
		Secondary: lipgloss.Color("#81c784"),
		Accent:    lipgloss.Color("#ff7043"), // Chance orange
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#668866"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeBoardwalk = Theme{
		Name:      "boardwalk",
		Primary:   lipgloss.Color("#4fc3f7"),
		Secondary: lipgloss.Color("#0277bd"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeFelt,
		ThemeBoardwalk,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	header lipgloss.Style
	graph  lipgloss.Style
	stats  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	errors lipgloss.Style
	help   lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 2),
		stats:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(42),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		status: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		errors: lipgloss.NewStyle().Foreground(t.Error),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/config"
	"github.com/san-kum/tilechain/internal/markov"
)

const minDelay = time.Millisecond

type TickMsg time.Time

// Model holds the animated distribution and the UI context.
type Model struct {
	chain     *markov.Matrix
	cfg       config.Config
	p         markov.Vector
	turn      int
	limit     markov.Vector
	showLimit bool
	running   bool
	theme     int
	err       error
}

// NewModel starts the animation on cfg's starting tile.
func NewModel(chain *markov.Matrix, cfg config.Config) Model {
	m := Model{
		chain:     chain,
		cfg:       cfg,
		p:         cfg.InitialDistribution(),
		showLimit: cfg.Limit,
		running:   true,
	}
	if m.Done() && m.showLimit {
		m.computeLimit()
	}
	return m
}

func (m Model) tick() tea.Cmd {
	d := m.cfg.DelayDuration()
	if d < minDelay {
		d = minDelay
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Done reports whether the last turn has been drawn.
func (m Model) Done() bool {
	return m.turn >= m.cfg.Turns
}

func (m Model) Turn() int {
	return m.turn
}

// Distribution returns the distribution currently on screen.
func (m Model) Distribution() markov.Vector {
	return m.p.Clone()
}

// Update handles input events and advances one turn per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			m.showLimit = !m.showLimit
			if m.showLimit && m.Done() {
				m.computeLimit()
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the distribution by one turn.
func (m *Model) step() {
	next, err := markov.Advance(m.chain, m.p)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.p = next
	m.turn++

	if m.Done() && m.showLimit {
		m.computeLimit()
	}
}

func (m *Model) computeLimit() {
	if m.limit != nil {
		return
	}
	limit, err := markov.Stationary(m.chain)
	if err != nil {
		m.err = err
		return
	}
	m.limit = limit
}

func (m *Model) reset() {
	m.p = m.cfg.InitialDistribution()
	m.turn = 0
	m.running = true
	m.err = nil
}

// View renders the plot and the stats panel side by side.
func (m Model) View() string {
	st := stylesFor(Themes[m.theme])

	var overlay markov.Vector
	if m.showLimit && m.Done() {
		overlay = m.limit
	}
	chart := Plot(m.p, overlay, m.cfg.Plot, "Position")
	graphView := st.graph.Render(st.header.Render(fmt.Sprintf("Rolls: %d", m.turn)) + "\n" + chart)

	status := "RUNNING"
	switch {
	case m.Done():
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(st.header.Render("TILECHAIN") + "\n")
	s.WriteString(st.status.Render(status) + "\n\n")

	peak := m.p.Argmax()
	s.WriteString(st.label.Render("Turn") + st.value.Render(fmt.Sprintf("%d / %d", m.turn, m.cfg.Turns)) + "\n")
	s.WriteString(st.label.Render("Sum") + st.value.Render(fmt.Sprintf("%.8f", m.p.Sum())) + "\n")
	s.WriteString(st.label.Render("Peak") + st.value.Render(fmt.Sprintf("%s (%.4f)", board.Name(peak), m.p[peak])) + "\n")
	if overlay != nil {
		s.WriteString(st.label.Render("Distance") + st.value.Render(fmt.Sprintf("%.2e", markov.Distance(m.p, overlay))) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + st.errors.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\nS:Limit  T:Theme (" + Themes[m.theme].Name + ")"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphView, st.stats.Render(s.String()))
}

// Run animates cfg.Turns turns of chain until the user quits.
func Run(chain *markov.Matrix, cfg config.Config) error {
	_, err := tea.NewProgram(NewModel(chain, cfg)).Run()
	return err
}

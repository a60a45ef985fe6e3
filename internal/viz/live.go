package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/ising"
)

const historyCapacity = 120

type TickMsg time.Time

// LiveModel sweeps an ensemble once per tick and redraws it.
type LiveModel struct {
	build      func() *ising.Ensemble
	ensemble   *ising.Ensemble
	interval   time.Duration
	sweeps     int
	running    bool
	showHelp   bool
	err        error
	sweepTimes []float64
}

// NewLiveModel builds the first ensemble with build; the same function is
// used again on reset.
func NewLiveModel(build func() *ising.Ensemble, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		build:      build,
		ensemble:   build(),
		interval:   time.Second / time.Duration(fps),
		running:    true,
		sweepTimes: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Ensemble() *ising.Ensemble { return m.ensemble }
func (m LiveModel) Sweeps() int               { return m.sweeps }
func (m LiveModel) Running() bool             { return m.running }
func (m LiveModel) Err() error                { return m.err }

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and sweeps the lattice.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "n":
			if !m.running && m.err == nil {
				m.sweep()
			}
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.sweep()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) sweep() {
	start := time.Now()
	if err := m.ensemble.Sweep(); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.sweeps++

	m.sweepTimes = append(m.sweepTimes, float64(time.Since(start).Microseconds()))
	if len(m.sweepTimes) > historyCapacity {
		m.sweepTimes = m.sweepTimes[1:]
	}
}

// reset rebuilds the ensemble and clears counters.
func (m *LiveModel) reset() {
	m.ensemble = m.build()
	m.sweeps = 0
	m.err = nil
	m.sweepTimes = m.sweepTimes[:0]
}

// View renders the TUI interface.
func (m LiveModel) View() string {
	e := m.ensemble
	p := e.Params()

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusError.Render("HALTED: " + m.err.Error())
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	title := fmt.Sprintf("ISING %dx%d", e.Dim(), e.Dim())
	s.WriteString(GradientText(title, CurrentTheme.Up, CurrentTheme.Accent) + "  " + status + "\n\n")

	stats := []string{
		Metric("sweeps", fmt.Sprintf("%d", m.sweeps)),
		Metric("steps", fmt.Sprintf("%d", m.sweeps*e.Size())),
		Metric("coupling J", fmt.Sprintf("%.4f", p.CouplingConst)),
		Metric("beta", fmt.Sprintf("%.4f", p.Beta)),
		Metric("field h", fmt.Sprintf("%.4f", p.MagField)),
		Metric("theme", CurrentTheme.Name),
	}
	if n := len(m.sweepTimes); n > 0 {
		stats = append(stats, Metric("last sweep", fmt.Sprintf("%.0f us", m.sweepTimes[n-1])))
	}
	if len(m.sweepTimes) >= 2 {
		chart := asciigraph.Plot(m.sweepTimes,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("sweep time (us)"),
		)
		stats = append(stats, "", chart)
	}

	lattice := RenderLattice(e.Rows())
	panel := GlassPanel.Render(strings.Join(stats, "\n"))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lattice, "  ", panel))
	s.WriteString("\n")

	if m.showHelp {
		s.WriteString(KeyHint.Render(strings.Join([]string{
			"space  pause / resume",
			"n      one sweep while paused",
			"r      rebuild from seed",
			"t      next theme",
			"?      toggle help",
			"q      quit",
		}, "\n")))
	} else {
		s.WriteString(KeyHint.Render("space pause · n step · r reset · t theme · ? help · q quit"))
	}
	s.WriteString("\n")

	return s.String()
}

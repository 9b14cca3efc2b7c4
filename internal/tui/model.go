// Package tui is the terminal front end of the circuit grid: a bubbletea
// program that turns key presses into edit commands and draws the grid next
// to the live outcome distribution.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qcircuitgrid/internal/engine"
	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
	"qcircuitgrid/internal/logging"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusMenu
)

// Model represents the TUI application state.
type Model struct {
	session   *engine.Session
	logger    *log.Logger
	keys      keyMap
	help      help.Model
	width     int
	height    int
	focus     focus
	level     int
	statusMsg string // transient status message (e.g. measurement result)

	// Menu state
	menuCat  int
	menuItem int
}

// New wraps a session. A nil logger discards output.
func New(s *engine.Session, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		session: s,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		focus:   focusCircuit,
		level:   1,
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(s *engine.Session, logger *log.Logger) error {
	p := tea.NewProgram(New(s, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// apply forwards one edit to the session and records the outcome.
func (m *Model) apply(cmd engine.Command) {
	if m.session.Apply(cmd) {
		m.statusMsg = ""
		return
	}
	m.statusMsg = "✗ " + cmd.String()
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 4

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusMenu {
			return m.updateMenu(msg)
		}
		return m.updateCircuit(msg)
	}
	return m, nil
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.apply(engine.MoveCursor{Dir: grid.Up})
	case key.Matches(msg, k.Down):
		m.apply(engine.MoveCursor{Dir: grid.Down})
	case key.Matches(msg, k.Left):
		m.apply(engine.MoveCursor{Dir: grid.Left})
	case key.Matches(msg, k.Right):
		m.apply(engine.MoveCursor{Dir: grid.Right})
	case key.Matches(msg, k.CtrlUp):
		m.apply(engine.MoveControl{Dir: grid.Up})
	case key.Matches(msg, k.CtrlDown):
		m.apply(engine.MoveControl{Dir: grid.Down})
	case key.Matches(msg, k.PlaceH):
		m.apply(engine.PlaceGate{Gate: gate.H})
	case key.Matches(msg, k.PlaceX):
		m.apply(engine.PlaceGate{Gate: gate.X})
	case key.Matches(msg, k.PlaceY):
		m.apply(engine.PlaceGate{Gate: gate.Y})
	case key.Matches(msg, k.PlaceZ):
		m.apply(engine.PlaceGate{Gate: gate.Z})
	case key.Matches(msg, k.PlaceR):
		m.apply(engine.PlaceGate{Gate: gate.RY(0)})
	case key.Matches(msg, k.Delete):
		m.apply(engine.DeleteGate{})
	case key.Matches(msg, k.Control):
		m.apply(engine.ToggleControl{})
	case key.Matches(msg, k.RotateLeft):
		m.apply(engine.RotateGate{Sign: -1})
	case key.Matches(msg, k.RotateRight):
		m.apply(engine.RotateGate{Sign: 1})
	case key.Matches(msg, k.Reset):
		m.apply(engine.ResetCircuit{})
	case key.Matches(msg, k.Measure):
		m.apply(engine.Measure{})
		if idx, ok := m.session.LastOutcome(); ok && m.session.LastOK() {
			m.statusMsg = "measured " + ket(idx, m.session.Qubits())
		}
	case key.Matches(msg, k.NextLevel):
		m.nextLevel()
	case key.Matches(msg, k.Menu):
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.focus = focusCircuit
	case "up", "w":
		m.moveMenu(0, -1)
	case "down", "s":
		m.moveMenu(0, 1)
	case "left", "a":
		m.moveMenu(-1, 0)
	case "right", "d", "tab":
		m.moveMenu(1, 0)
	case "enter":
		m.focus = focusCircuit
		m.apply(engine.PlaceGate{Gate: m.selectedGate()})
	}
	return m, nil
}

// nextLevel starts an empty circuit on the next level's register.
func (m *Model) nextLevel() {
	before := m.session.Qubits()
	if err := m.session.Level(m.level + 1); err != nil {
		m.logger.Warn("level change failed", "level", m.level+1, "err", err)
		m.statusMsg = fmt.Sprintf("Level error: %v", err)
		return
	}
	m.level++
	m.statusMsg = fmt.Sprintf("level %d: %d → %d qubits", m.level, before, m.session.Qubits())
	m.logger.Info("level up", "level", m.level, "qubits", m.session.Qubits())
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	probWidthTotal := probWidth(m.session.Qubits())
	circuitWidth := max(m.width-probWidthTotal-4, cellW+labelVisualW+4)
	controlsHeight := 4
	if m.help.ShowAll {
		controlsHeight = 8
	}
	panelHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	probPanel := m.renderProbabilityPanel(probWidthTotal, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, probPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/config"
	"github.com/agbru/qsim/internal/engine"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/stats"
)

// Layout constants for the inspector.
const (
	headerHeight         = 1
	footerHeight         = 1
	minBodyHeight        = 4
	circuitPanelWidthPct = 35
	wireBarWidth         = 16
	maxAmplitudeRows     = 16
)

// Model is the root bubbletea model for the circuit inspector. The
// cursor selects a position between columns: position 0 is the initial
// register, position k the register after column k.
type Model struct {
	header HeaderModel
	keymap KeyMap

	ctx    context.Context
	cancel context.CancelFunc

	circ   *circuit.Circuit
	cfg    config.AppConfig
	states []qstate.Buffer

	cursor   int
	showAll  bool
	loading  bool
	err      error
	exitCode int

	width  int
	height int
}

// NewModel creates a new inspector model.
func NewModel(parentCtx context.Context, circ *circuit.Circuit, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:   NewHeaderModel(version, circ.Qubits, circ.Depth()),
		keymap:   DefaultKeyMap(),
		ctx:      ctx,
		cancel:   cancel,
		circ:     circ,
		cfg:      cfg,
		showAll:  cfg.ShowAmplitudes,
		loading:  true,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init starts state precomputation and the context watcher.
func (m Model) Init() tea.Cmd {
	eng := engine.New(engine.Limits{
		MaxQubits:     m.cfg.MaxQubits,
		MaxAmplitudes: m.cfg.MaxAmplitudes(),
	}, engine.WithParallelThreshold(m.cfg.ParallelThreshold))

	return tea.Batch(
		computeStatesCmd(m.ctx, eng, m.circ),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		return m, nil

	case statesReadyMsg:
		m.states = msg.states
		m.loading = false
		return m, nil

	case stateErrorMsg:
		m.err = msg.err
		m.loading = false
		m.exitCode = apperrors.ExitCodeFor(msg.err)
		return m, nil

	case contextDoneMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Next):
		if m.cursor < len(m.states)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Prev):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keymap.First):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keymap.Last):
		if n := len(m.states); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case key.Matches(msg, m.keymap.ToggleAmps):
		m.showAll = !m.showAll
		return m, nil
	}

	return m, nil
}

// View renders the inspector.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footerView()

	bodyHeight := m.height - headerHeight - footerHeight - 2
	if bodyHeight < minBodyHeight {
		bodyHeight = minBodyHeight
	}

	circuitWidth := m.width * circuitPanelWidthPct / 100
	stateWidth := m.width - circuitWidth - 4

	circuitPanel := panelStyle.Width(circuitWidth).Height(bodyHeight).Render(m.circuitView(bodyHeight))
	statePanel := panelStyle.Width(stateWidth).Height(bodyHeight).Render(m.stateView(bodyHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, statePanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// circuitView renders the column list with the cursor between columns.
func (m Model) circuitView(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Circuit"))
	b.WriteString("\n\n")

	lines := []string{m.positionLine(0, "|0...0>")}
	for col := range m.circ.Columns {
		label := fmt.Sprintf("col %d: %s", col+1, describeColumn(m.circ.Columns[col]))
		lines = append(lines, m.positionLine(col+1, label))
	}

	// Keep the cursor visible when the circuit is taller than the panel.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if len(lines) > visible && m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	return b.String()
}

// positionLine renders one cursor position, highlighted when selected.
func (m Model) positionLine(pos int, label string) string {
	if pos == m.cursor {
		return cursorStyle.Render("▶ " + label)
	}
	return columnStyle.Render("  " + label)
}

// describeColumn summarizes the placements of one column.
func describeColumn(col circuit.Column) string {
	parts := make([]string, 0, len(col.Placements))
	for _, p := range col.Placements {
		desc := fmt.Sprintf("%s@%d", p.Name, p.Target)
		if p.Span > 1 {
			desc = fmt.Sprintf("%s@%d..%d", p.Name, p.Target, p.Target+p.Span-1)
		}
		if len(p.Controls.Qubits()) > 0 {
			desc += " " + p.Controls.String()
		}
		parts = append(parts, desc)
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}

// stateView renders the register state at the current cursor position.
func (m Model) stateView(height int) string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Evaluation failed"))
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render(m.err.Error()))
		return b.String()
	case m.loading:
		b.WriteString(statusStyle.Render("Computing states..."))
		return b.String()
	case m.cursor >= len(m.states):
		return ""
	}

	state := m.states[m.cursor]

	if m.cursor == 0 {
		b.WriteString(titleStyle.Render("Initial state"))
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("State after column %d of %d", m.cursor, m.circ.Depth())))
	}
	b.WriteString("\n\n")

	b.WriteString(m.wireView(state))
	b.WriteString("\n")
	b.WriteString(m.amplitudeView(state, height))

	total := stats.TotalProbability(state)
	b.WriteString("\n")
	b.WriteString(probStyle.Render(fmt.Sprintf("Total probability: %s", format.FormatProbability(total))))
	if !state.IsFinite() {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Register carries non-finite amplitudes"))
	}
	return b.String()
}

// wireView renders the per-wire measurement distribution.
func (m Model) wireView(state qstate.Buffer) string {
	var b strings.Builder
	for q, p := range stats.WireProbabilities(state) {
		bar := wireBarStyle.Render(format.ProgressBar(p.One, wireBarWidth))
		b.WriteString(fmt.Sprintf("wire %2d %s %s\n", q, bar, format.FormatProbability(p.One)))
	}
	return b.String()
}

// amplitudeView renders the amplitude table, trimmed to the panel height.
func (m Model) amplitudeView(state qstate.Buffer, height int) string {
	amps := stats.Amplitudes(state)
	if !m.showAll {
		amps = stats.NonZero(amps, m.cfg.MinProbability)
	}

	rows := maxAmplitudeRows
	if budget := height - state.Qubits() - 8; budget < rows {
		rows = budget
	}
	if rows < 1 {
		rows = 1
	}

	var b strings.Builder
	hidden := 0
	for i, a := range amps {
		if i >= rows {
			hidden = len(amps) - rows
			break
		}
		basis := basisStyle.Render(format.FormatBasisState(a.Index, state.Qubits()))
		line := fmt.Sprintf("%s  %s  %s", basis, format.FormatAmplitude(a.Value), format.FormatProbability(a.Probability))
		if !a.Finite {
			line += " " + warnStyle.Render("(non-finite)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if hidden > 0 {
		b.WriteString(versionStyle.Render(fmt.Sprintf("... %d more", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}

// footerView renders the key help line.
func (m Model) footerView() string {
	parts := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, binding := range m.keymap.ShortHelp() {
		h := binding.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}

// Run is the public entry point for the inspector mode. It parses the
// configured circuit, runs the bubbletea program and returns the exit
// code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	if cfg.Circuit == "" {
		fmt.Fprintln(os.Stderr, "No circuit given: pass one with -c to inspect.")
		return apperrors.ExitErrorConfig
	}
	circ, err := circuit.Parse(cfg.Circuit, cfg.Qubits)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return apperrors.ExitCodeFor(err)
	}

	model := NewModel(ctx, circ, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

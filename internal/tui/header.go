package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and circuit summary.
type HeaderModel struct {
	version string
	qubits  int
	columns int
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, qubits, columns int) HeaderModel {
	return HeaderModel{
		version: version,
		qubits:  qubits,
		columns: columns,
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "qsim Inspector"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")

	info := versionStyle.Render(fmt.Sprintf("%d qubits, %d columns", h.qubits, h.columns))

	leftPart := title + pipe + info
	leftLen := lipgloss.Width(leftPart)

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	gap := innerWidth - leftLen
	if gap < 0 {
		gap = 0
	}

	row := leftPart + spaces(gap)

	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

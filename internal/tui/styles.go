// Package tui implements the interactive circuit inspector: a bubbletea
// application that steps through a circuit column by column and shows the
// register state after each column.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qsim/internal/ui"
)

// Style variables for the circuit inspector.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	columnStyle     lipgloss.Style
	cursorStyle     lipgloss.Style
	basisStyle      lipgloss.Style
	probStyle       lipgloss.Style
	wireBarStyle    lipgloss.Style
	warnStyle       lipgloss.Style
	errorStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
	statusStyle     lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all inspector styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	columnStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	cursorStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	basisStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	probStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	wireBarStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	warnStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)
}

// Package tui provides the interactive terminal publication browser.
package tui

import "github.com/charmbracelet/lipgloss"

// Default dimensions used before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 4
)

// Shared styles.
//
//nolint:gochecknoglobals // Read-only style table.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	OwnerStyle = lipgloss.NewStyle().
			Bold(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	SelectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

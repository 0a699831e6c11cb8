package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState is a spinner with a message, shown while data is fetched.
type LoadingState struct {
	Spinner spinner.Model
	Message string
}

// NewLoadingState creates a LoadingState.
func NewLoadingState(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{Spinner: s, Message: message}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.Spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.Spinner, cmd = l.Spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return ""
	}
	return l.Spinner.View() + " " + l.Message + "\n"
}

package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected reports whether it has the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a selectable list of items.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	separator  string
}

// New creates a list over items with the cursor on the first item.
func New[T any](items []T, renderFunc RenderFunc[T]) *Model[T] {
	return &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		separator:  "\n",
	}
}

// SetSeparator sets the text placed between rendered items.
func (m *Model[T]) SetSeparator(sep string) {
	m.separator = sep
}

// SetItems replaces the items and moves the cursor to the first one.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
}

// Init initializes the model (required for tea.Model interface).
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.handleKeyMsg(keyMsg)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return
		}
		switch msg.Runes[0] {
		case 'j':
			m.SetSelected(m.selected + 1)
		case 'k':
			m.SetSelected(m.selected - 1)
		}
	}
}

// View renders every item.
func (m *Model[T]) View() string {
	if len(m.items) == 0 || m.renderFunc == nil {
		return ""
	}

	rows := make([]string, len(m.items))
	for i, item := range m.items {
		rows[i] = m.renderFunc(item, i == m.selected)
	}
	return strings.Join(rows, m.separator)
}

// ItemCount returns the number of items.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected moves the cursor, clamping to valid bounds.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0 || index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
}

// SelectedItem returns the item under the cursor, or nil for an empty list.
func (m *Model[T]) SelectedItem() *T {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

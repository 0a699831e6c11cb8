package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/researchfolio/pubpager/internal/pagination"
	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/render"
	listview "github.com/researchfolio/pubpager/internal/tui/list"
)

// ViewState is the browser's current mode.
type ViewState int

const (
	// ViewStateLoading shows the spinner while the document is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current page.
	ViewStateList
	// ViewStateError shows the load failure notice.
	ViewStateError
	// ViewStateQuitting renders nothing.
	ViewStateQuitting
)

// Fetcher loads the publications document.
type Fetcher func(ctx context.Context) (*publication.Document, error)

// BrowseOptions configures a BrowseModel.
type BrowseOptions struct {
	PageSize    int
	Highlighter *render.Highlighter
}

type documentLoadedMsg struct {
	doc *publication.Document
	err error
}

// BrowseModel is the Bubble Tea model for paging through publications.
type BrowseModel struct {
	state ViewState
	keys  keyMap

	loading  *LoadingState
	fetchCmd tea.Cmd

	doc         *publication.Document
	pages       *pagination.State[publication.Record]
	list        *listview.Model[publication.Record]
	highlighter *render.Highlighter
	pageSize    int
	showDetail  bool

	width  int
	height int

	err error
}

// NewBrowseModel creates a model that starts loading with fetcher on Init.
func NewBrowseModel(ctx context.Context, fetcher Fetcher, opts BrowseOptions) *BrowseModel {
	pageSize := opts.PageSize
	if pageSize < pagination.MinPageSize {
		pageSize = pagination.DefaultPageSize
	}

	m := &BrowseModel{
		state:       ViewStateLoading,
		keys:        defaultKeyMap(),
		loading:     NewLoadingState("Loading publications..."),
		highlighter: opts.Highlighter,
		pageSize:    pageSize,
		width:       defaultWidth,
		height:      defaultHeight,
		fetchCmd: func() tea.Msg {
			doc, err := fetcher(ctx)
			return documentLoadedMsg{doc: doc, err: err}
		},
	}
	m.list = listview.New(nil, m.renderRecord)
	m.list.SetSeparator("\n\n")
	return m
}

// Init starts the spinner and the fetch.
func (m *BrowseModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loading.Init(), m.fetchCmd)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case documentLoadedMsg:
		return m.handleLoaded(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateError, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *BrowseModel) handleLoaded(msg documentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}

	m.doc = msg.doc
	// pageSize was clamped to a valid value in NewBrowseModel.
	m.pages, _ = pagination.New(msg.doc.Publications, m.pageSize)
	m.list.SetItems(m.pages.Current())
	m.state = ViewStateList
	return m, nil
}

func (m *BrowseModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Prev):
		m.turnPage(m.pages.Previous())
	case key.Matches(keyMsg, m.keys.Next):
		m.turnPage(m.pages.Next())
	case key.Matches(keyMsg, m.keys.Detail):
		if m.list.ItemCount() > 0 {
			m.showDetail = !m.showDetail
		}
	default:
		m.list.Update(keyMsg)
	}
	return m, nil
}

func (m *BrowseModel) turnPage(items []publication.Record, ok bool) {
	if !ok {
		return
	}
	m.list.SetItems(items)
	m.showDetail = false
}

// State returns the current view state.
func (m *BrowseModel) State() ViewState {
	return m.state
}

// Err returns the load error, if any.
func (m *BrowseModel) Err() error {
	return m.err
}

// Meta returns the pagination metadata; the zero value before loading.
func (m *BrowseModel) Meta() pagination.Meta {
	if m.pages == nil {
		return pagination.Meta{}
	}
	return m.pages.Meta()
}

// View renders the current view.
func (m *BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return ErrorStyle.Render(render.FailureText) + "\n\n" + SubtleStyle.Render("[q] Quit") + "\n"
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *BrowseModel) renderListView() string {
	sections := []string{HeaderStyle.Render("PUBLICATIONS")}

	if stats, ok := m.doc.Stats(); ok {
		sections = append(sections, RenderStats(stats))
	}

	if m.list.ItemCount() == 0 {
		sections = append(sections, SubtleStyle.Render("No publications."))
	} else {
		sections = append(sections, m.list.View())
	}

	if m.showDetail {
		if rec := m.list.SelectedItem(); rec != nil {
			sections = append(sections, m.renderDetail(*rec))
		}
	}

	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}
	sections = append(sections, SubtleStyle.Render("[↑↓/jk] Select  [Enter] Details  [q] Quit"))

	return lipgloss.JoinVertical(lipgloss.Left, joinWithBlank(sections)...) + "\n"
}

// RenderStats renders the stats banner as one line.
func RenderStats(s publication.Stats) string {
	var parts []string
	if s.ScholarID != "" {
		parts = append(parts, LabelStyle.Render("Google Scholar "+s.ScholarID))
	}
	parts = append(parts,
		ValueStyle.Render(plural(s.TotalPublications, "publication")),
		ValueStyle.Render(plural(s.CitationCount, "citation")),
		ValueStyle.Render("h-index: "+FormatCount(s.HIndex)),
	)
	return strings.Join(parts, SubtleStyle.Render(" · "))
}

func (m *BrowseModel) renderRecord(rec publication.Record, selected bool) string {
	cursor := "  "
	title := rec.Title
	if selected {
		cursor = "> "
		title = SelectedTitleStyle.Render(title)
	} else {
		title = ValueStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(cursor)
	if rec.Year != "" {
		b.WriteString(LabelStyle.Render(rec.Year.String()) + "  ")
	}
	b.WriteString(title)

	if label := render.CitationLabel(rec.Citations); label != "" {
		b.WriteString(" " + BadgeStyle.Render(label))
	}

	if rec.Authors != "" {
		b.WriteString("\n    " + m.highlighter.Wrap(rec.Authors, func(s string) string { return OwnerStyle.Render(s) }))
	}
	if rec.Venue != "" {
		b.WriteString("\n    " + SubtleStyle.Render(rec.Venue))
	}
	return b.String()
}

func (m *BrowseModel) renderDetail(rec publication.Record) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(rec.Title))

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("\n" + LabelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + ValueStyle.Render(value))
	}
	field("Venue:", rec.Venue)
	field("Year:", rec.Year.String())
	if rec.Citations > 0 {
		field("Cited:", plural(rec.Citations, "time"))
	}
	field("Link:", rec.URL)
	field("PDF:", rec.PDFURL)

	if rec.Abstract != "" {
		width := max(m.width-borderPadding*2, 20)
		b.WriteString("\n\n" + lipgloss.NewStyle().Width(width).Render(rec.Abstract))
	}

	return BoxStyle.Width(max(m.width-borderPadding, 20)).Render(b.String())
}

func (m *BrowseModel) renderFooter() string {
	meta := m.pages.Meta()
	controls := meta.Controls()
	if controls.Hidden {
		return ""
	}

	prev := "← prev"
	if controls.PrevDisabled {
		prev = DisabledStyle.Render(prev)
	}
	next := "next →"
	if controls.NextDisabled {
		next = DisabledStyle.Render(next)
	}

	indicator := fmt.Sprintf("Page %d of %d", meta.CurrentPage, meta.TotalPages)
	return prev + "  " + LabelStyle.Render(indicator) + "  " + next
}

func joinWithBlank(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s)
	}
	return out
}

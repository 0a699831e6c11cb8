package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/render"
)

func testDocument(n int) *publication.Document {
	records := make([]publication.Record, n)
	for i := range records {
		records[i] = publication.Record{
			Year:      publication.Year(fmt.Sprint(2024 - i)),
			Title:     fmt.Sprintf("Paper %d", i+1),
			Authors:   "CA Ngom and J Smith",
			Venue:     "Venue",
			Abstract:  fmt.Sprintf("Abstract %d", i+1),
			Citations: i,
			URL:       fmt.Sprintf("https://example.org/%d", i+1),
		}
	}
	return &publication.Document{
		Author:       &publication.AuthorStats{ScholarID: "v2VkcZEAAAAJ", Citations: 1234, HIndex: 3},
		Publications: records,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T, doc *publication.Document, err error) *BrowseModel {
	t.Helper()
	m := NewBrowseModel(context.Background(), func(context.Context) (*publication.Document, error) {
		return doc, err
	}, BrowseOptions{PageSize: 3, Highlighter: render.DefaultHighlighter()})

	require.Equal(t, ViewStateLoading, m.State())
	require.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading publications...")

	m.Update(m.fetchCmd())
	return m
}

func TestBrowseModel_LoadAndPage(t *testing.T) {
	m := loadedModel(t, testDocument(7), nil)
	require.Equal(t, ViewStateList, m.State())

	view := m.View()
	assert.Contains(t, view, "Paper 1")
	assert.Contains(t, view, "Paper 3")
	assert.NotContains(t, view, "Paper 4")
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "1,234 citations")
	assert.Contains(t, view, "7 publications")

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		wantPage int
	}{
		{name: "right arrow", msg: tea.KeyMsg{Type: tea.KeyRight}, wantPage: 2},
		{name: "l", msg: keyRunes("l"), wantPage: 3},
		{name: "n past the end", msg: keyRunes("n"), wantPage: 3},
		{name: "left arrow", msg: tea.KeyMsg{Type: tea.KeyLeft}, wantPage: 2},
		{name: "h", msg: keyRunes("h"), wantPage: 1},
		{name: "p before the start", msg: keyRunes("p"), wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Update(tt.msg)
			assert.Equal(t, tt.wantPage, m.Meta().CurrentPage)
		})
	}

	m.Update(keyRunes("l"))
	m.Update(keyRunes("l"))
	view = m.View()
	assert.Contains(t, view, "Paper 7")
	assert.NotContains(t, view, "Paper 6")
	assert.Contains(t, view, "Page 3 of 3")
}

func TestBrowseModel_SelectionAndDetail(t *testing.T) {
	m := loadedModel(t, testDocument(7), nil)

	m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.list.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.list.Selected(), "selection stays within the page")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Abstract 3")
	assert.Contains(t, m.View(), "https://example.org/3")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), "Abstract 3")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.list.Selected())
	assert.NotContains(t, m.View(), "Abstract", "turning the page closes the detail pane")
}

func TestBrowseModel_SinglePageHidesFooter(t *testing.T) {
	m := loadedModel(t, testDocument(2), nil)
	assert.NotContains(t, m.View(), "Page 1 of 1")
	assert.NotContains(t, m.View(), "next →")
}

func TestBrowseModel_Empty(t *testing.T) {
	m := loadedModel(t, &publication.Document{Publications: []publication.Record{}}, nil)
	assert.Contains(t, m.View(), "No publications.")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showDetail)
}

func TestBrowseModel_LoadError(t *testing.T) {
	m := loadedModel(t, nil, errors.New("connection refused"))

	assert.Equal(t, ViewStateError, m.State())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), render.FailureText)
	assert.NotContains(t, m.View(), "connection refused")

	m.Update(keyRunes("l"))
	assert.Equal(t, ViewStateError, m.State())
}

func TestBrowseModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyRunes("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedModel(t, testDocument(3), nil)
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Equal(t, ViewStateQuitting, m.State())
			assert.Empty(t, m.View())
		})
	}
}

func TestBrowseModel_WindowSize(t *testing.T) {
	m := loadedModel(t, testDocument(3), nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestBrowseModel_InvalidPageSizeFallsBack(t *testing.T) {
	m := NewBrowseModel(context.Background(), func(context.Context) (*publication.Document, error) {
		return testDocument(7), nil
	}, BrowseOptions{})
	m.Update(m.fetchCmd())
	assert.Equal(t, 3, m.Meta().PageSize)
}

func TestRenderStats(t *testing.T) {
	withID := RenderStats(publication.Stats{ScholarID: "v2VkcZEAAAAJ", TotalPublications: 7, CitationCount: 1234, HIndex: 3})
	assert.Contains(t, withID, "Google Scholar v2VkcZEAAAAJ")
	assert.Contains(t, withID, "1,234 citations")

	withoutID := RenderStats(publication.Stats{TotalPublications: 7, CitationCount: 1234, HIndex: 3})
	assert.NotContains(t, withoutID, "Google Scholar")
	assert.Contains(t, withoutID, "h-index: 3")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "1 citation", plural(1, "citation"))
	assert.Equal(t, "2,000 citations", plural(2000, "citation"))
}

func TestRenderLoading(t *testing.T) {
	assert.Empty(t, RenderLoading(nil))
	l := NewLoadingState("Working")
	assert.NotNil(t, l.Init())
	assert.Contains(t, RenderLoading(l), "Working")
}

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchfolio/pubpager/internal/publication"
)

func TestCitationLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: -1, want: ""},
		{n: 0, want: ""},
		{n: 1, want: "1 citation"},
		{n: 2, want: "2 citations"},
		{n: 135, want: "135 citations"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CitationLabel(tt.n), "n=%d", tt.n)
	}
}

func TestRenderer_Record(t *testing.T) {
	r := NewRenderer(DefaultHighlighter())

	t.Run("full record", func(t *testing.T) {
		got := r.Record(publication.Record{
			Year:      "2024",
			Title:     "Title",
			Authors:   "CA Ngom and J Smith",
			Venue:     "Venue",
			Citations: 3,
			URL:       "https://example.org/a",
			PDFURL:    "https://example.org/a.pdf",
		})

		want := `<article class="publication">` +
			`<div class="pub-year">2024</div>` +
			`<div class="pub-details">` +
			`<h3 class="pub-title"><a href="https://example.org/a" target="_blank" rel="noopener">Title</a></h3>` +
			`<p class="pub-authors"><strong>CA Ngom</strong> and J Smith</p>` +
			`<p class="pub-venue">Venue</p>` +
			`<span class="pub-badge">3 citations</span>` +
			`<div class="pub-links">` +
			`<a href="https://example.org/a" class="pub-link" target="_blank" rel="noopener"><i class="fas fa-link"></i> Link</a>` +
			`<a href="https://example.org/a.pdf" class="pub-link" target="_blank" rel="noopener"><i class="fas fa-file-pdf"></i> PDF</a>` +
			`</div></div></article>`
		assert.Equal(t, want, string(got))
	})

	t.Run("zero citations omit the badge", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T", Citations: 0}))
		assert.NotContains(t, got, "pub-badge")
	})

	t.Run("one citation is singular", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T", Citations: 1}))
		assert.Contains(t, got, `<span class="pub-badge">1 citation</span>`)
	})

	t.Run("two citations are plural", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T", Citations: 2}))
		assert.Contains(t, got, `<span class="pub-badge">2 citations</span>`)
	})

	t.Run("title without url is plain text", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "Plain"}))
		assert.Contains(t, got, `<h3 class="pub-title">Plain</h3>`)
		assert.NotContains(t, got, "<a ")
		assert.NotContains(t, got, "pub-links")
	})

	t.Run("links are independent", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T", PDFURL: "https://example.org/x.pdf"}))
		assert.Contains(t, got, "fa-file-pdf")
		assert.NotContains(t, got, "fa-link")
		assert.Contains(t, got, `<h3 class="pub-title">T</h3>`)

		got = string(r.Record(publication.Record{Title: "T", URL: "https://example.org/x"}))
		assert.Contains(t, got, "fa-link")
		assert.NotContains(t, got, "fa-file-pdf")
	})

	t.Run("venue is optional", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T"}))
		assert.NotContains(t, got, "pub-venue")
	})

	t.Run("text fields are escaped", func(t *testing.T) {
		got := string(r.Record(publication.Record{
			Year:    "<b>2020</b>",
			Title:   `<script>alert("x")</script>`,
			Authors: `<img src=x onerror=alert(1)> & CA Ngom`,
			Venue:   "A & B",
		}))
		assert.NotContains(t, got, "<script>")
		assert.NotContains(t, got, "<img")
		assert.NotContains(t, got, "<b>")
		assert.Contains(t, got, "&lt;script&gt;")
		assert.Contains(t, got, "&amp; <strong>CA Ngom</strong>")
		assert.Contains(t, got, `<p class="pub-venue">A &amp; B</p>`)
	})

	t.Run("unsafe url schemes are neutralised", func(t *testing.T) {
		got := string(r.Record(publication.Record{Title: "T", URL: "javascript:alert(1)"}))
		assert.NotContains(t, got, "javascript:")
	})
}

func TestRenderer_Page(t *testing.T) {
	r := NewRenderer(nil)
	records := []publication.Record{{Title: "A"}, {Title: "B"}, {Title: "C"}}

	got := string(r.Page(records))
	assert.Equal(t, 2, strings.Count(got, string(Divider)))
	assert.Equal(t, 3, strings.Count(got, `<article class="publication">`))
	assert.False(t, strings.HasSuffix(got, string(Divider)))

	assert.Empty(t, string(r.Page(nil)))
}

func TestRenderer_Stats(t *testing.T) {
	r := NewRenderer(nil)
	got := string(r.Stats(publication.Stats{
		ScholarID:         "v2VkcZEAAAAJ",
		TotalPublications: 7,
		CitationCount:     42,
		HIndex:            3,
	}))

	assert.Equal(t,
		`<a href="https://scholar.google.fr/citations?user=v2VkcZEAAAAJ" target="_blank" rel="noopener">Google Scholar</a>`+
			` &middot; 7 publications &middot; 42 citations &middot; h-index: 3`,
		got)
}

func TestRenderer_StatsWithoutScholarID(t *testing.T) {
	r := NewRenderer(nil)
	got := string(r.Stats(publication.Stats{TotalPublications: 2, CitationCount: 13, HIndex: 1}))

	assert.Equal(t, `2 publications &middot; 13 citations &middot; h-index: 1`, got)
	assert.NotContains(t, got, ScholarProfileBase)
}

func TestHighlighter(t *testing.T) {
	h := DefaultHighlighter()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "owner first", in: "CA Ngom and J Smith", want: "<strong>CA Ngom</strong> and J Smith"},
		{name: "case insensitive", in: "ca ngom, J Doe", want: "<strong>ca ngom</strong>, J Doe"},
		{name: "dotted initials", in: "C.A. Ngom and X", want: "<strong>C.A. Ngom</strong> and X"},
		{name: "one dot", in: "C.A Ngom", want: "<strong>C.A Ngom</strong>"},
		{name: "full first name", in: "Charles Abdoulaye Ngom", want: "<strong>Charles Abdoulaye Ngom</strong>"},
		{name: "middle initial", in: "Charles A Ngom", want: "<strong>Charles A Ngom</strong>"},
		{name: "multiple matches", in: "CA Ngom and C.A. Ngom", want: "<strong>CA Ngom</strong> and <strong>C.A. Ngom</strong>"},
		{name: "no match", in: "J Smith and K Lee", want: "J Smith and K Lee"},
		{name: "empty", in: "", want: ""},
		{name: "markup escaped", in: "CA Ngom & <b>X</b>", want: "<strong>CA Ngom</strong> &amp; &lt;b&gt;X&lt;/b&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Strong(tt.in))
		})
	}
}

func TestHighlighter_WrapsOnce(t *testing.T) {
	h := DefaultHighlighter()
	got := h.Strong("CA Ngom")
	assert.Equal(t, 1, strings.Count(got, "<strong>"))
}

func TestNewHighlighter(t *testing.T) {
	_, err := NewHighlighter(nil)
	require.ErrorIs(t, err, ErrNoPatterns)

	_, err = NewHighlighter([]string{"("})
	require.Error(t, err)

	h, err := NewHighlighter([]string{"J Smith"})
	require.NoError(t, err)
	assert.True(t, h.Matches("j smith"))
	assert.Equal(t, "[J Smith]", h.Wrap("J Smith", func(m string) string { return "[" + m + "]" }))
	assert.Equal(t, []string{"J Smith"}, h.Patterns())
}

func TestHighlighter_NilIsNoOp(t *testing.T) {
	var h *Highlighter
	assert.Equal(t, "CA Ngom", h.Strong("CA Ngom"))
	assert.Equal(t, "M O&#39;Neil", h.Strong("M O'Neil"))
	assert.False(t, h.Matches("CA Ngom"))
}

func TestHighlighter_PatternWithEscapedCharacters(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		in      string
		want    string
	}{
		{name: "apostrophe", pattern: "M O'Neil", in: "M O'Neil and J Smith", want: "<strong>M O&#39;Neil</strong> and J Smith"},
		{name: "quote", pattern: `J "Jo" Doe`, in: `J "Jo" Doe`, want: "<strong>J &#34;Jo&#34; Doe</strong>"},
		{name: "ampersand", pattern: "R&D Lab", in: "K Lee, R&D Lab", want: "K Lee, <strong>R&amp;D Lab</strong>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := MustHighlighter([]string{tt.pattern})
			assert.Equal(t, tt.want, h.Strong(tt.in))
		})
	}
}

func TestRenderer_ApostropheAuthorHighlighted(t *testing.T) {
	r := NewRenderer(MustHighlighter([]string{"M O'Neil"}))
	got := string(r.Page([]publication.Record{{Title: "T", Authors: "M O'Neil and J Smith"}}))
	assert.Contains(t, got, `<p class="pub-authors"><strong>M O&#39;Neil</strong> and J Smith</p>`)
}

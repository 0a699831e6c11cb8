package page

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchfolio/pubpager/internal/loader"
	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/render"
)

type stubFetcher struct {
	doc   *publication.Document
	err   error
	calls int
}

func (f *stubFetcher) Load(context.Context, string) (*publication.Document, error) {
	f.calls++
	return f.doc, f.err
}

func sevenPublications() *publication.Document {
	records := make([]publication.Record, 7)
	for i := range records {
		records[i] = publication.Record{
			Year:      publication.Year(fmt.Sprint(2024 - i)),
			Title:     fmt.Sprintf("Paper %d", i+1),
			Authors:   "CA Ngom and J Smith",
			Citations: i,
		}
	}
	return &publication.Document{
		Author:       &publication.AuthorStats{ScholarID: "v2VkcZEAAAAJ", Citations: 21, HIndex: 2},
		Publications: records,
		Total:        7,
	}
}

func titles(d *Document) []string {
	var out []string
	d.Find("#" + ContainerID + " .pub-title").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func isDisabled(d *Document, id string) bool {
	_, ok := d.Find("#" + id).Attr("disabled")
	return ok
}

func text(d *Document, id string) string {
	return d.Find("#" + id).Text()
}

func TestPaginator_EndToEnd(t *testing.T) {
	doc := NewSkeletonDocument()
	dispatcher := NewDispatcher()
	fetcher := &stubFetcher{doc: sevenPublications()}

	p, err := NewPaginator(doc, fetcher, WithDispatcher(dispatcher), WithPageSize(3))
	require.NoError(t, err)
	require.NoError(t, p.Load(context.Background(), "publications.json"))

	assert.Equal(t, []string{"Paper 1", "Paper 2", "Paper 3"}, titles(doc))
	assert.Equal(t, "1", text(doc, CurrentPageID))
	assert.Equal(t, "3", text(doc, TotalPagesID))
	assert.True(t, isDisabled(doc, PrevButtonID))
	assert.False(t, isDisabled(doc, NextButtonID))
	style, _ := doc.Find("#" + PaginationID).Attr("style")
	assert.Equal(t, "display: flex", style)
	assert.Contains(t, text(doc, StatsID), "7 publications")

	require.True(t, dispatcher.Dispatch(EventNextPage))
	assert.Equal(t, []string{"Paper 4", "Paper 5", "Paper 6"}, titles(doc))
	assert.False(t, isDisabled(doc, PrevButtonID))

	require.True(t, dispatcher.Dispatch(EventNextPage))
	assert.Equal(t, []string{"Paper 7"}, titles(doc))
	assert.Equal(t, "3", text(doc, CurrentPageID))
	assert.True(t, isDisabled(doc, NextButtonID))

	// Clicking a disabled control is a no-op.
	dispatcher.Dispatch(EventNextPage)
	assert.Equal(t, 3, p.Meta().CurrentPage)
	assert.Equal(t, []string{"Paper 7"}, titles(doc))

	require.True(t, dispatcher.Dispatch(EventPrevPage))
	assert.Equal(t, 2, p.Meta().CurrentPage)
}

func TestPaginator_OutOfRange(t *testing.T) {
	doc := NewSkeletonDocument()
	p, err := NewPaginator(doc, &stubFetcher{doc: sevenPublications()})
	require.NoError(t, err)
	require.NoError(t, p.Load(context.Background(), "x"))

	before := doc.ContentHTML()
	assert.False(t, p.GoToPage(0))
	assert.False(t, p.GoToPage(4))
	assert.Equal(t, 1, p.Meta().CurrentPage)
	assert.Equal(t, before, doc.ContentHTML())

	assert.True(t, p.GoToPage(3))
	assert.Len(t, p.Current(), 1)
}

func TestPaginator_HandlersRegisteredOnce(t *testing.T) {
	dispatcher := NewDispatcher()
	p, err := NewPaginator(NewSkeletonDocument(), &stubFetcher{doc: sevenPublications()}, WithDispatcher(dispatcher))
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, p.Load(context.Background(), "x"))
	}
	assert.Equal(t, 1, dispatcher.HandlerCount(EventNextPage))
	assert.Equal(t, 1, dispatcher.HandlerCount(EventPrevPage))

	dispatcher.Dispatch(EventNextPage)
	assert.Equal(t, 2, p.Meta().CurrentPage)
}

func TestPaginator_SinglePageHidesControls(t *testing.T) {
	doc := NewSkeletonDocument()
	short := &publication.Document{Publications: sevenPublications().Publications[:2]}

	p, err := NewPaginator(doc, &stubFetcher{doc: short})
	require.NoError(t, err)
	require.NoError(t, p.Load(context.Background(), "x"))

	style, _ := doc.Find("#" + PaginationID).Attr("style")
	assert.Equal(t, "display: none", style)
	assert.True(t, isDisabled(doc, PrevButtonID))
	assert.True(t, isDisabled(doc, NextButtonID))
	assert.Empty(t, text(doc, StatsID), "no author block, no banner")
}

func TestPaginator_EmptyList(t *testing.T) {
	doc := NewSkeletonDocument()
	p, err := NewPaginator(doc, &stubFetcher{doc: &publication.Document{Publications: []publication.Record{}}})
	require.NoError(t, err)
	require.NoError(t, p.Load(context.Background(), "x"))

	assert.Empty(t, strings.TrimSpace(doc.ContentHTML()))
	assert.Equal(t, 1, p.Meta().TotalPages)
	assert.False(t, p.Next())
}

func TestPaginator_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	source := srv.URL + "/data/publications.json"
	srv.Close()

	doc := NewSkeletonDocument()
	p, err := NewPaginator(doc, loader.New())
	require.NoError(t, err)

	var loadErr error
	assert.NotPanics(t, func() {
		loadErr = p.Load(context.Background(), source)
	})
	require.Error(t, loadErr)
	assert.True(t, loader.IsLoadError(loadErr))

	assert.Equal(t, 1, doc.Find("#"+ContainerID+" .pub-loading").Length())
	assert.Equal(t, 1, strings.Count(doc.ContentHTML(), "Failed to load publications"))
	assert.Equal(t, string(render.FailureMessage), doc.ContentHTML())

	assert.False(t, p.Next())
	assert.Equal(t, 0, p.Meta().TotalPages)
}

func TestPaginator_NonLoadErrorIsWrapped(t *testing.T) {
	p, err := NewPaginator(NewSkeletonDocument(), &stubFetcher{err: errors.New("boom")})
	require.NoError(t, err)

	loadErr := p.Load(context.Background(), "src")
	le, ok := loader.AsLoadError(loadErr)
	require.True(t, ok)
	assert.Equal(t, "src", le.Source)
	assert.Equal(t, loader.OpFetch, le.Op)
}

func TestNewPaginator_InvalidPageSize(t *testing.T) {
	_, err := NewPaginator(NewSkeletonDocument(), &stubFetcher{}, WithPageSize(0))
	require.Error(t, err)
}

func TestDocument_MissingElementsAreSkipped(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`<html><body><div id="publications-container"></div></body></html>`))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		doc.SetStats("<b>x</b>")
		doc.SetPageIndicator(2, 3)
		doc.SetPrevDisabled(true)
		doc.SetNextDisabled(false)
		doc.SetPaginationVisible(true)
		doc.SetContent("<p>ok</p>")
	})
	assert.Equal(t, "<p>ok</p>", doc.ContentHTML())

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<div id="publications-container"><p>ok</p></div>`)
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	assert.False(t, d.Dispatch(EventNextPage))

	var order []int
	d.On(EventNextPage, func() { order = append(order, 1) })
	d.On(EventNextPage, func() { order = append(order, 2) })
	d.On(EventNextPage, nil)

	assert.True(t, d.Dispatch(EventNextPage))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 2, d.HandlerCount(EventNextPage))
	assert.False(t, d.Dispatch(Event("click:elsewhere")))
}

const prerendered = `<html><body>
<div id="publications-container">
<article class="publication">A</article>
<article class="publication">B</article>
<article class="publication">C</article>
<article class="publication">D</article>
<article class="publication">E</article>
<article class="publication">F</article>
<article class="publication">G</article>
</div>
<nav id="publications-pagination">
<button id="prev-page">Prev</button>
<span id="current-page"></span>/<span id="total-pages"></span>
<button id="next-page">Next</button>
</nav>
</body></html>`

func visible(d *Document) []string {
	var out []string
	d.Find(DefaultStaticSelector).Each(func(_ int, s *goquery.Selection) {
		_, hidden := s.Attr("hidden")
		if !hidden && !s.HasClass(HiddenClass) {
			out = append(out, s.Text())
		}
	})
	return out
}

func TestStaticPaginator(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(prerendered))
	require.NoError(t, err)
	dispatcher := NewDispatcher()

	p, err := NewStaticPaginator(doc, WithDispatcher(dispatcher), WithPageSize(3))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, visible(doc))
	assert.Equal(t, 3, p.Meta().TotalPages)
	assert.True(t, isDisabled(doc, PrevButtonID))

	dispatcher.Dispatch(EventNextPage)
	dispatcher.Dispatch(EventNextPage)
	assert.Equal(t, []string{"G"}, visible(doc))
	assert.True(t, isDisabled(doc, NextButtonID))
	assert.Equal(t, "3", text(doc, CurrentPageID))

	assert.False(t, p.GoToPage(9))
	assert.True(t, p.Previous())
	assert.Equal(t, []string{"D", "E", "F"}, visible(doc))
	assert.Equal(t, 7, doc.Find(DefaultStaticSelector).Length(), "fragments are never re-rendered")
}

func TestStaticPaginator_DefaultPageSize(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(prerendered))
	require.NoError(t, err)

	p, err := NewStaticPaginator(doc)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Meta().PageSize)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, visible(doc))
}

func TestNavigatorImplementations(t *testing.T) {
	var _ Navigator = (*Paginator)(nil)
	var _ Navigator = (*StaticPaginator)(nil)
	var _ Surface = (*Document)(nil)
}

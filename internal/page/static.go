package page

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/researchfolio/pubpager/internal/pagination"
)

// HiddenClass marks fragments outside the current page.
const HiddenClass = "pub-hidden"

// StaticPaginator pages through publication fragments already present in a
// Document by toggling their visibility. Nothing is re-rendered.
type StaticPaginator struct {
	doc   *Document
	opts  options
	items []*goquery.Selection
	state *pagination.State[*goquery.Selection]
}

// NewStaticPaginator collects the fragments matching the configured selector,
// shows the first page and registers the prev/next handlers.
func NewStaticPaginator(doc *Document, opts ...Option) (*StaticPaginator, error) {
	o := newOptions(pagination.AlternatePageSize, opts)

	var items []*goquery.Selection
	doc.Find(o.selector).Each(func(_ int, s *goquery.Selection) {
		items = append(items, s)
	})

	state, err := pagination.New(items, o.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, o.pageSize)
	}

	p := &StaticPaginator{doc: doc, opts: o, items: items, state: state}
	p.apply()

	o.dispatcher.On(EventPrevPage, func() { p.Previous() })
	o.dispatcher.On(EventNextPage, func() { p.Next() })

	o.logger.Debug().
		Str("selector", o.selector).
		Int("fragments", len(items)).
		Msg("static pagination ready")
	return p, nil
}

func (p *StaticPaginator) apply() {
	start, end := p.state.Bounds(p.state.CurrentPage())
	for i, s := range p.items {
		if i >= start && i < end {
			show(s)
		} else {
			hide(s)
		}
	}
	applyControls(p.doc, p.state.Meta())
}

func show(s *goquery.Selection) {
	s.RemoveClass(HiddenClass)
	s.RemoveAttr("hidden")
}

func hide(s *goquery.Selection) {
	s.AddClass(HiddenClass)
	s.SetAttr("hidden", "")
}

// GoToPage shows page. Out-of-range pages change nothing and return false.
func (p *StaticPaginator) GoToPage(page int) bool {
	if _, ok := p.state.GoToPage(page); !ok {
		return false
	}
	p.apply()
	return true
}

// Next shows the following page.
func (p *StaticPaginator) Next() bool {
	return p.GoToPage(p.state.CurrentPage() + 1)
}

// Previous shows the preceding page.
func (p *StaticPaginator) Previous() bool {
	return p.GoToPage(p.state.CurrentPage() - 1)
}

// Meta returns pagination metadata.
func (p *StaticPaginator) Meta() pagination.Meta {
	return p.state.Meta()
}

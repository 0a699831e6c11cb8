package page

import (
	"context"
	"fmt"

	"github.com/researchfolio/pubpager/internal/loader"
	"github.com/researchfolio/pubpager/internal/pagination"
	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/render"
)

// Fetcher loads a publications document.
type Fetcher interface {
	Load(ctx context.Context, source string) (*publication.Document, error)
}

// Paginator loads a publication list once and re-renders the content region
// for every page change.
type Paginator struct {
	surface Surface
	fetcher Fetcher
	opts    options

	doc        *publication.Document
	state      *pagination.State[publication.Record]
	registered bool
}

// NewPaginator creates a Paginator writing to surface.
func NewPaginator(surface Surface, fetcher Fetcher, opts ...Option) (*Paginator, error) {
	o := newOptions(pagination.DefaultPageSize, opts)
	if o.pageSize < pagination.MinPageSize {
		return nil, fmt.Errorf("%w: %d", pagination.ErrInvalidPageSize, o.pageSize)
	}
	return &Paginator{surface: surface, fetcher: fetcher, opts: o}, nil
}

// Load fetches source and shows the first page.
//
// On failure the content region receives render.FailureMessage, the error is
// logged and returned as a *loader.LoadError. There is no retry.
func (p *Paginator) Load(ctx context.Context, source string) error {
	doc, err := p.fetcher.Load(ctx, source)
	if err != nil {
		p.surface.SetContent(render.FailureMessage)

		le, ok := loader.AsLoadError(err)
		if !ok {
			le = &loader.LoadError{Source: source, Op: loader.OpFetch, Err: err}
		}
		p.opts.logger.Error().Err(le).Str("source", source).Msg("failed to load publications")
		return le
	}

	p.Show(doc)
	return nil
}

// Show displays an already loaded document starting at page 1.
func (p *Paginator) Show(doc *publication.Document) {
	p.doc = doc
	// Page size was validated in NewPaginator.
	p.state, _ = pagination.New(doc.Publications, p.opts.pageSize)

	if stats, ok := doc.Stats(); ok {
		p.surface.SetStats(p.opts.renderer.Stats(stats))
	}

	p.render()
	p.register()

	p.opts.logger.Debug().
		Int("publications", p.state.Len()).
		Int("pages", p.state.TotalPages()).
		Msg("publications displayed")
}

func (p *Paginator) register() {
	if p.registered {
		return
	}
	p.opts.dispatcher.On(EventPrevPage, func() { p.Previous() })
	p.opts.dispatcher.On(EventNextPage, func() { p.Next() })
	p.registered = true
}

func (p *Paginator) render() {
	p.surface.SetContent(p.opts.renderer.Page(p.state.Current()))
	applyControls(p.surface, p.state.Meta())
}

// GoToPage shows page. Out-of-range pages, or calls before a successful
// load, change nothing and return false.
func (p *Paginator) GoToPage(page int) bool {
	if p.state == nil {
		return false
	}
	if _, ok := p.state.GoToPage(page); !ok {
		return false
	}
	p.render()
	return true
}

// Next shows the following page.
func (p *Paginator) Next() bool {
	if p.state == nil {
		return false
	}
	return p.GoToPage(p.state.CurrentPage() + 1)
}

// Previous shows the preceding page.
func (p *Paginator) Previous() bool {
	if p.state == nil {
		return false
	}
	return p.GoToPage(p.state.CurrentPage() - 1)
}

// Meta returns pagination metadata; the zero value before a successful load.
func (p *Paginator) Meta() pagination.Meta {
	if p.state == nil {
		return pagination.Meta{}
	}
	return p.state.Meta()
}

// Current returns the records on the current page.
func (p *Paginator) Current() []publication.Record {
	if p.state == nil {
		return nil
	}
	return p.state.Current()
}

// Document returns the loaded document, or nil.
func (p *Paginator) Document() *publication.Document {
	return p.doc
}

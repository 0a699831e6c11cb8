package page

import (
	"github.com/rs/zerolog"

	"github.com/researchfolio/pubpager/internal/render"
)

// DefaultStaticSelector matches the pre-rendered publication fragments.
const DefaultStaticSelector = "#" + ContainerID + " .publication"

type options struct {
	renderer   *render.Renderer
	dispatcher *Dispatcher
	logger     zerolog.Logger
	pageSize   int
	selector   string
}

// Option configures a paginator.
type Option func(*options)

// WithRenderer sets the fragment renderer used by Paginator.
func WithRenderer(r *render.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithDispatcher sets the event dispatcher the paginator registers with.
func WithDispatcher(d *Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPageSize overrides the page size.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithSelector sets the selector StaticPaginator uses to find fragments.
func WithSelector(selector string) Option {
	return func(o *options) {
		o.selector = selector
	}
}

func newOptions(defaultPageSize int, opts []Option) options {
	o := options{
		logger:   zerolog.Nop(),
		pageSize: defaultPageSize,
		selector: DefaultStaticSelector,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = render.NewRenderer(render.DefaultHighlighter())
	}
	if o.dispatcher == nil {
		o.dispatcher = NewDispatcher()
	}
	return o
}

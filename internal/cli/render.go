package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/researchfolio/pubpager/internal/page"
	"github.com/researchfolio/pubpager/internal/pagination"
	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/render"
)

// ErrPageOutOfRange is returned when --page is past the last page.
var ErrPageOutOfRange = errors.New("page out of range")

type renderFlags struct {
	source   string
	template string
	output   string
	format   string
	page     int
	pageSize int
}

// renderResult is the JSON form of a rendered page.
type renderResult struct {
	Source       string               `json:"source"`
	Pagination   pagination.Meta      `json:"pagination"`
	Stats        *publication.Stats   `json:"stats,omitempty"`
	Publications []publication.Record `json:"publications"`
}

func newRenderCmd(st *rootState) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one page of publications",
		Long: `Loads the publications source and renders the requested page into an HTML
page. The page must contain the publication elements (#publications-container,
#publications-stats, #publications-pagination and its controls); without
--template a minimal skeleton page is used.

If the source cannot be loaded the page is still written, showing the failure
message, and the command exits with code 3.`,
		Example: `  # First page into the built-in skeleton
  pubpager render

  # Page 2 into your own page
  pubpager render --page 2 --template index.html -o public/index.html

  # Page metadata and records as JSON
  pubpager render --page 3 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, st, f)
		},
	}

	cmd.Flags().StringVar(&f.source, "source", "", "publications JSON URL or path (default from config)")
	cmd.Flags().StringVar(&f.template, "template", "", "HTML page to render into (default: built-in skeleton)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", formatHTML, "output format: html or json")
	cmd.Flags().IntVar(&f.page, "page", pagination.FirstPage, "page to render")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "publications per page (default from config)")

	return cmd
}

func runRender(cmd *cobra.Command, st *rootState, f renderFlags) error {
	ctx := cmd.Context()

	params := pagination.Params{Page: f.page, PageSize: st.pageSize(f.pageSize)}
	if err := params.Validate(); err != nil {
		return err
	}
	if f.format != formatHTML && f.format != formatJSON {
		return fmt.Errorf("unsupported format %q: use %s or %s", f.format, formatHTML, formatJSON)
	}

	doc, err := openTemplate(f.template)
	if err != nil {
		return err
	}
	h, err := st.highlighter()
	if err != nil {
		return err
	}

	dispatcher := page.NewDispatcher()
	p, err := page.NewPaginator(doc, st.newLoader(),
		page.WithRenderer(render.NewRenderer(h)),
		page.WithDispatcher(dispatcher),
		page.WithLogger(st.component("page")),
		page.WithPageSize(params.PageSize),
	)
	if err != nil {
		return err
	}

	source := st.source(f.source)
	if loadErr := p.Load(ctx, source); loadErr != nil {
		if f.format == formatHTML {
			if err := writeOutput(cmd, f.output, func(w io.Writer) error { return writeDocument(w, doc) }); err != nil {
				return err
			}
		}
		return withExitCode(ExitDataError, loadErr)
	}

	if total := p.Meta().TotalPages; params.Page > total {
		return fmt.Errorf("%w: page %d requested, %d available", ErrPageOutOfRange, params.Page, total)
	}
	for range params.Page - 1 {
		dispatcher.Dispatch(page.EventNextPage)
	}

	if f.format == formatJSON {
		result := renderResult{
			Source:       source,
			Pagination:   p.Meta(),
			Publications: p.Current(),
		}
		if stats, ok := p.Document().Stats(); ok {
			result.Stats = &stats
		}
		return writeOutput(cmd, f.output, func(w io.Writer) error { return outputJSON(w, result) })
	}

	return writeOutput(cmd, f.output, func(w io.Writer) error { return writeDocument(w, doc) })
}

// openTemplate parses the page at path, or returns the skeleton page.
func openTemplate(path string) (*page.Document, error) {
	if path == "" {
		return page.NewSkeletonDocument(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	doc, err := page.ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return doc, nil
}

func writeDocument(w io.Writer, doc *page.Document) error {
	html, err := doc.HTML()
	if err != nil {
		return fmt.Errorf("serializing page: %w", err)
	}
	return writeString(w, html)
}

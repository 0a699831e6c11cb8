package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/researchfolio/pubpager/internal/config"
	"github.com/researchfolio/pubpager/internal/page"
	"github.com/researchfolio/pubpager/internal/pagination"
)

type paginateFlags struct {
	input    string
	output   string
	selector string
	page     int
	pageSize int
}

func newPaginateCmd(st *rootState) *cobra.Command {
	var f paginateFlags

	cmd := &cobra.Command{
		Use:   "paginate",
		Short: "Show one page of pre-rendered publications",
		Long: `Reads a page whose publications are already rendered and hides every
publication outside the requested page. Hidden publications get the
"pub-hidden" class and the hidden attribute; the pagination controls are
updated the same way "render" does.

Without --page-size the page size is 5, or the configured page size when
pagination.strategy is "static".`,
		Example: `  # Page 2 of a pre-rendered page
  pubpager paginate --input publications.html --page 2

  # From stdin, with a custom selector
  cat index.html | pubpager paginate --selector "#pubs li" --page-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPaginate(cmd, st, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "-", `page markup to read ("-" for stdin)`)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&f.selector, "selector", page.DefaultStaticSelector, "CSS selector matching one publication")
	cmd.Flags().IntVar(&f.page, "page", pagination.FirstPage, "page to show")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "publications per page")

	return cmd
}

func runPaginate(cmd *cobra.Command, st *rootState, f paginateFlags) error {
	size := st.staticPageSize(f.pageSize)
	params := pagination.Params{Page: f.page, PageSize: size}
	if size == 0 {
		params.PageSize = pagination.AlternatePageSize
	}
	if err := params.Validate(); err != nil {
		return err
	}

	doc, err := readMarkup(cmd, f.input)
	if err != nil {
		return err
	}

	dispatcher := page.NewDispatcher()
	opts := []page.Option{
		page.WithDispatcher(dispatcher),
		page.WithSelector(f.selector),
		page.WithLogger(st.component("page")),
	}
	if size != 0 {
		opts = append(opts, page.WithPageSize(size))
	}

	p, err := page.NewStaticPaginator(doc, opts...)
	if err != nil {
		return err
	}

	meta := p.Meta()
	if meta.TotalItems == 0 {
		cliLogger := st.component("cli")
		cliLogger.Warn().Str("selector", f.selector).Msg("no publications matched the selector")
	}
	if f.page > meta.TotalPages {
		return fmt.Errorf("%w: page %d requested, %d available", ErrPageOutOfRange, f.page, meta.TotalPages)
	}
	for range f.page - 1 {
		dispatcher.Dispatch(page.EventNextPage)
	}

	return writeOutput(cmd, f.output, func(w io.Writer) error { return writeDocument(w, doc) })
}

// staticPageSize returns flagValue when set, the configured page size when the
// configured strategy is static, or 0 for the static default.
func (st *rootState) staticPageSize(flagValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if st.cfg.Pagination.Strategy == config.StrategyStatic {
		return st.cfg.Pagination.PageSize
	}
	return 0
}

func readMarkup(cmd *cobra.Command, path string) (*page.Document, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return page.ParseDocument(r)
}

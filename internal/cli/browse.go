package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/researchfolio/pubpager/internal/pagination"
	"github.com/researchfolio/pubpager/internal/publication"
	"github.com/researchfolio/pubpager/internal/tui"
)

type browseFlags struct {
	source   string
	page     int
	pageSize int
	plain    bool
}

func newBrowseCmd(st *rootState) *cobra.Command {
	var f browseFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse publications in the terminal",
		Long: `Opens an interactive browser over the publications source. Use ←/→ (or h/l)
to change page, ↑/↓ to select, Enter for details and q to quit.

When stdout is not a terminal, or with --plain, the requested page is printed
as plain text instead.`,
		Example: `  pubpager browse
  pubpager browse --source https://example.org/data/publications.json
  pubpager browse --plain --page 2 | less`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, st, f)
		},
	}

	cmd.Flags().StringVar(&f.source, "source", "", "publications JSON URL or path (default from config)")
	cmd.Flags().IntVar(&f.page, "page", pagination.FirstPage, "page to print in plain mode")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "publications per page (default from config)")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print plain text even on a terminal")

	return cmd
}

func runBrowse(cmd *cobra.Command, st *rootState, f browseFlags) error {
	ctx := cmd.Context()

	params := pagination.Params{Page: f.page, PageSize: st.pageSize(f.pageSize)}
	if err := params.Validate(); err != nil {
		return err
	}
	h, err := st.highlighter()
	if err != nil {
		return err
	}

	ldr := st.newLoader()
	source := st.source(f.source)
	out := cmd.OutOrStdout()

	if f.plain || !isTerminal(out) {
		doc, loadErr := ldr.Load(ctx, source)
		if loadErr != nil {
			return withExitCode(ExitDataError, loadErr)
		}
		return printPlainPage(out, doc, params)
	}

	model := tui.NewBrowseModel(ctx, func(ctx context.Context) (*publication.Document, error) {
		return ldr.Load(ctx, source)
	}, tui.BrowseOptions{PageSize: params.PageSize, Highlighter: h})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if loadErr := model.Err(); loadErr != nil {
		return withExitCode(ExitDataError, loadErr)
	}
	return nil
}

// printPlainPage writes one page of doc as plain text.
func printPlainPage(w io.Writer, doc *publication.Document, params pagination.Params) error {
	state, err := pagination.New(doc.Publications, params.PageSize)
	if err != nil {
		return err
	}
	if params.Page > state.TotalPages() {
		return fmt.Errorf("%w: page %d requested, %d available", ErrPageOutOfRange, params.Page, state.TotalPages())
	}
	state.GoToPage(params.Page)

	var b strings.Builder
	if stats, ok := doc.Stats(); ok {
		if stats.ScholarID != "" {
			fmt.Fprintf(&b, "Google Scholar %s: ", stats.ScholarID)
		}
		fmt.Fprintf(&b, "%s, %s, h-index %d\n\n",
			countLabel(stats.TotalPublications, "publication"),
			countLabel(stats.CitationCount, "citation"),
			stats.HIndex)
	}

	records := state.Current()
	if len(records) == 0 {
		b.WriteString("No publications.\n")
	}
	for _, rec := range records {
		year := rec.Year.String()
		if year == "" {
			year = "----"
		}
		fmt.Fprintf(&b, "%-6s%s", year, rec.Title)
		if rec.Citations > 0 {
			fmt.Fprintf(&b, " [%s]", countLabel(rec.Citations, "citation"))
		}
		b.WriteString("\n")
		for _, line := range []string{rec.Authors, rec.Venue, rec.URL} {
			if line != "" {
				fmt.Fprintf(&b, "      %s\n", line)
			}
		}
		b.WriteString("\n")
	}

	meta := state.Meta()
	if !meta.Controls().Hidden {
		fmt.Fprintf(&b, "Page %d of %d\n", meta.CurrentPage, meta.TotalPages)
	}

	_, err = io.WriteString(w, b.String())
	return err
}

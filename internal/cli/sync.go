package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/researchfolio/pubpager/internal/scholar"
)

type syncFlags struct {
	authorID  string
	scholarID string
	output    string
	apiKey    string
	baseURL   string
	rateLimit float64
}

func newSyncCmd(st *rootState) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the publications data file from Semantic Scholar",
		Long: `Fetches the author profile and every paper of a Semantic Scholar author,
sorts the papers newest first and writes the publications data file.

The author ID, Google Scholar profile ID and output path default to the
scholar section of the config. The API key is read from --api-key,
scholar.api_key or $S2_API_KEY; without one the shared public rate limit applies.`,
		Example: `  pubpager sync --author-id 1741101 --scholar-id v2VkcZEAAAAJ
  pubpager sync -o public/data/publications.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, st, f)
		},
	}

	cmd.Flags().StringVar(&f.authorID, "author-id", "", "Semantic Scholar author ID")
	cmd.Flags().StringVar(&f.scholarID, "scholar-id", "", "Google Scholar profile ID for the stats banner link")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "data file to write")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Semantic Scholar API key")
	cmd.Flags().StringVar(&f.baseURL, "base-url", scholar.BaseURL, "Semantic Scholar Graph API base URL")
	cmd.Flags().Float64Var(&f.rateLimit, "rate-limit", scholar.RateLimit, "requests per second")
	_ = cmd.Flags().MarkHidden("base-url")
	_ = cmd.Flags().MarkHidden("rate-limit")

	return cmd
}

func runSync(cmd *cobra.Command, st *rootState, f syncFlags) error {
	ctx := cmd.Context()
	sc := st.cfg.Scholar

	opts := scholar.SyncOptions{
		AuthorID:  firstNonEmpty(f.authorID, sc.AuthorID),
		ScholarID: firstNonEmpty(f.scholarID, sc.GoogleScholarID),
	}
	if opts.AuthorID == "" {
		return withExitCode(ExitConfigError,
			fmt.Errorf("%w: pass --author-id or set scholar.author_id", scholar.ErrMissingAuthorID))
	}
	output := firstNonEmpty(f.output, sc.Output, st.cfg.Source)

	client := scholar.NewClient(
		scholar.WithAPIKey(firstNonEmpty(f.apiKey, sc.APIKey)),
		scholar.WithBaseURL(f.baseURL),
		scholar.WithRateLimit(f.rateLimit),
		scholar.WithLogger(st.component("scholar")),
	)

	doc, err := scholar.Sync(ctx, client, opts)
	if err != nil {
		if errors.Is(err, scholar.ErrAuthError) {
			return withExitCode(ExitConfigError, err)
		}
		return fmt.Errorf("syncing author %s: %w", opts.AuthorID, err)
	}

	if err := scholar.WriteDocument(output, doc); err != nil {
		return err
	}

	cmd.Printf("Saved %s to %s\n", countLabel(len(doc.Publications), "publication"), output)
	cmd.Printf("Totals: %s, h-index %d, i10-index %d\n",
		countLabel(doc.Author.Citations, "citation"), doc.Author.HIndex, doc.Author.I10Index)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

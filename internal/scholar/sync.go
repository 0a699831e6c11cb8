package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/researchfolio/pubpager/internal/publication"
)

// SyncOptions selects the author to sync.
type SyncOptions struct {
	// AuthorID is the Semantic Scholar author ID.
	AuthorID string

	// ScholarID is the Google Scholar profile ID written to the author block
	// so the stats banner can link to it. Left empty when unset; the Semantic
	// Scholar ID is not a valid Google Scholar profile.
	ScholarID string

	// Now stamps updated_at; defaults to time.Now.
	Now func() time.Time
}

// Sync fetches the author profile and paper list concurrently and builds the
// publications document. Untitled papers are dropped.
func Sync(ctx context.Context, client *Client, opts SyncOptions) (*publication.Document, error) {
	if strings.TrimSpace(opts.AuthorID) == "" {
		return nil, ErrMissingAuthorID
	}

	var (
		author *Author
		papers []Paper
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := client.GetAuthor(gctx, opts.AuthorID)
		if err != nil {
			return fmt.Errorf("fetching author: %w", err)
		}
		author = a
		return nil
	})
	g.Go(func() error {
		p, err := client.GetAuthorPapers(gctx, opts.AuthorID)
		if err != nil {
			return fmt.Errorf("fetching papers: %w", err)
		}
		papers = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]publication.Record, 0, len(papers))
	for _, p := range papers {
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		records = append(records, toRecord(p))
	}
	records = publication.SortByRecency(records)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	return &publication.Document{
		Author: &publication.AuthorStats{
			Name:        author.Name,
			Affiliation: strings.Join(author.Affiliations, ", "),
			ScholarID:   opts.ScholarID,
			Citations:   author.CitationCount,
			HIndex:      author.HIndex,
			I10Index:    I10Index(records),
		},
		Publications: records,
		UpdatedAt:    now().UTC().Format(time.RFC3339),
		Total:        len(records),
	}, nil
}

func toRecord(p Paper) publication.Record {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}

	var year publication.Year
	if p.Year > 0 {
		year = publication.Year(strconv.Itoa(p.Year))
	}

	rec := publication.Record{
		Year:      year,
		Title:     strings.TrimSpace(p.Title),
		Authors:   strings.Join(names, " and "),
		Venue:     p.Venue,
		Abstract:  p.Abstract,
		Citations: max(p.CitationCount, 0),
		URL:       p.URL,
	}
	if p.OpenAccessPDF != nil {
		rec.PDFURL = p.OpenAccessPDF.URL
	}
	return rec
}

// I10Index counts records with at least ten citations.
func I10Index(records []publication.Record) int {
	n := 0
	for _, r := range records {
		if r.Citations >= 10 {
			n++
		}
	}
	return n
}

// WriteDocument writes doc as indented JSON to path, creating parent
// directories. The file is replaced atomically.
func WriteDocument(path string, doc *publication.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding publications: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".publications-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing publications: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

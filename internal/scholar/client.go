// Package scholar regenerates the publications data file from the Semantic
// Scholar Graph API.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// RateLimit is requests per second. Unauthenticated clients share a pool,
	// so stay well under it.
	RateLimit = 1.0

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv = "S2_API_KEY"

	// AuthorFields are requested for author lookups.
	AuthorFields = "name,affiliations,paperCount,citationCount,hIndex"

	// PaperFields are requested for each paper.
	PaperFields = "title,year,venue,abstract,citationCount,url,authors,openAccessPdf"

	// PapersPageLimit is the page size for author paper listings.
	PapersPageLimit = 100
)

// Client is a rate-limited Semantic Scholar Graph API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key sent as x-api-key.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.apiKey = key
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit overrides the request rate.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client. The API key defaults to $S2_API_KEY.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		apiKey:     os.Getenv(APIKeyEnv),
		baseURL:    BaseURL,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAuthor fetches an author's profile.
func (c *Client) GetAuthor(ctx context.Context, authorID string) (*Author, error) {
	q := url.Values{"fields": {AuthorFields}}
	var author Author
	if err := c.get(ctx, "/author/"+url.PathEscape(authorID), q, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthorPapers fetches every paper of an author, following the API's
// offset pagination.
func (c *Client) GetAuthorPapers(ctx context.Context, authorID string) ([]Paper, error) {
	var papers []Paper
	offset := 0
	for {
		q := url.Values{
			"fields": {PaperFields},
			"limit":  {strconv.Itoa(PapersPageLimit)},
			"offset": {strconv.Itoa(offset)},
		}
		var page papersPage
		if err := c.get(ctx, "/author/"+url.PathEscape(authorID)+"/papers", q, &page); err != nil {
			return nil, err
		}
		papers = append(papers, page.Data...)

		c.logger.Debug().
			Str("author_id", authorID).
			Int("offset", offset).
			Int("received", len(page.Data)).
			Msg("fetched papers page")

		if page.Next == nil || *page.Next <= offset || len(page.Data) == 0 {
			return papers, nil
		}
		offset = *page.Next
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, path); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func checkHTTPErrors(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Path: path}
	}
	return nil
}

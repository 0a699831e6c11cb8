// Package loader fetches and parses the publications data file from a URL or
// the local filesystem.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/researchfolio/pubpager/internal/cache"
	"github.com/researchfolio/pubpager/internal/publication"
)

// DefaultUserAgent is sent with every HTTP request.
const DefaultUserAgent = "pubpager/1.0"

// maxPayloadBytes bounds how much of a response body is read.
const maxPayloadBytes = 32 << 20

// Loader reads publications documents. The zero value is not usable; use New.
type Loader struct {
	httpClient *http.Client
	store      *cache.FileStore
	logger     zerolog.Logger
	userAgent  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the HTTP client used for http(s) sources.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) {
		if hc != nil {
			l.httpClient = hc
		}
	}
}

// WithCache enables response caching for http(s) sources.
func WithCache(store *cache.FileStore) Option {
	return func(l *Loader) {
		l.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		if ua != "" {
			l.userAgent = ua
		}
	}
}

// New creates a Loader. No request timeout is set; callers bound a load
// through its context.
func New(opts ...Option) *Loader {
	l := &Loader{
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the document at source, an http(s) URL, a file URL
// or a filesystem path. Every error returned is a *LoadError.
func (l *Loader) Load(ctx context.Context, source string) (*publication.Document, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: errors.New("empty source")}
	}

	if isHTTP(source) {
		return l.loadHTTP(ctx, source)
	}
	return l.loadFile(ctx, source)
}

func (l *Loader) loadHTTP(ctx context.Context, source string) (*publication.Document, error) {
	key := cache.KeyForSource(source)

	if l.store.IsEnabled() {
		entry, err := l.store.Get(key)
		switch {
		case err == nil:
			if doc, decodeErr := publication.Decode(entry.Data); decodeErr == nil {
				l.logger.Debug().
					Str("source", source).
					Dur("age", entry.Age()).
					Msg("serving publications from cache")
				return doc, nil
			}
			_ = l.store.Delete(key)
		case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired):
		default:
			l.logger.Warn().Err(err).Str("source", source).Msg("cache read failed")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &LoadError{
			Source:     source,
			Op:         OpStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
	}

	doc, err := decode(source, body)
	if err != nil {
		return nil, err
	}

	if l.store.IsEnabled() {
		if setErr := l.store.Set(key, source, json.RawMessage(body)); setErr != nil {
			l.logger.Warn().Err(setErr).Str("source", source).Msg("cache write failed")
		}
	}

	l.logger.Debug().
		Str("source", source).
		Int("publications", len(doc.Publications)).
		Msg("fetched publications")
	return doc, nil
}

func (l *Loader) loadFile(ctx context.Context, source string) (*publication.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
	}

	path := source
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
		}
		path = u.Path
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: source, Op: OpFetch, Err: err}
	}

	doc, err := decode(source, body)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("path", path).
		Int("publications", len(doc.Publications)).
		Msg("read publications file")
	return doc, nil
}

func decode(source string, body []byte) (*publication.Document, error) {
	doc, err := publication.Decode(body)
	if err != nil {
		return nil, &LoadError{
			Source: source,
			Op:     OpDecode,
			Err:    fmt.Errorf("%w: %w", ErrMalformedPayload, err),
		}
	}
	return doc, nil
}

func isHTTP(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

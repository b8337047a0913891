package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultFetchTimeout bounds each individual fetch.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultMaxBytes caps a single payload.
	DefaultMaxBytes = 20 << 20
)

// Resolver fetches image references concurrently. It holds no per-build
// state and is safe for concurrent use.
type Resolver struct {
	client      *http.Client
	timeout     time.Duration
	maxBytes    int64
	concurrency int
	baseURL     string
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client used for URL references.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithFetchTimeout sets the per-fetch timeout. Panics if d <= 0.
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("media: fetch timeout must be positive")
	}
	return func(r *Resolver) { r.timeout = d }
}

// WithMaxBytes caps the size of a single payload. Panics if n <= 0.
func WithMaxBytes(n int64) Option {
	if n <= 0 {
		panic("media: max bytes must be positive")
	}
	return func(r *Resolver) { r.maxBytes = n }
}

// WithConcurrency limits simultaneous fetches. Zero means one goroutine per
// distinct reference.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithBaseURL sets the URL prefix used to resolve opaque asset ids.
func WithBaseURL(raw string) Option {
	return func(r *Resolver) { r.baseURL = raw }
}

// WithLogger sets the logger used to report unavailable assets.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a Resolver. Fails only on an unusable base URL.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		client:   http.DefaultClient,
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBytes,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseURL != "" {
		u, err := url.Parse(r.baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, r.baseURL)
		}
		if !strings.HasSuffix(r.baseURL, "/") {
			r.baseURL += "/"
		}
	}
	return r, nil
}

// Resolve fetches every distinct non-empty reference once and returns an
// entry for each. It waits for all fetches to settle. Cancelling ctx makes
// outstanding fetches resolve as Unavailable.
func (r *Resolver) Resolve(ctx context.Context, refs []string) Assets {
	distinct := Distinct(refs)
	results := make([]Asset, len(distinct))

	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, ref := range distinct {
		g.Go(func() error {
			results[i] = r.resolveOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	assets := make(Assets, len(distinct))
	for _, a := range results {
		assets[a.Ref] = a
	}
	return assets
}

func (r *Resolver) resolveOne(ctx context.Context, ref string) Asset {
	start := time.Now()
	data, err := r.load(ctx, ref)
	if err == nil {
		var asset Asset
		if asset, err = inspect(ref, data); err == nil {
			r.logger.Debug("asset resolved",
				"ref", logRef(ref), "type", asset.ContentType,
				"bytes", len(asset.Data), "elapsed", time.Since(start))
			return asset
		}
	}
	r.logger.Warn("asset unavailable", "ref", logRef(ref), "error", err)
	return Asset{Ref: ref, Status: Unavailable, Err: err}
}

func (r *Resolver) load(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case IsDataURI(ref):
		return decodeDataURI(ref, r.maxBytes)
	case IsURL(ref):
		return r.fetch(ctx, ref)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, logRef(ref))
	case r.baseURL == "":
		return nil, ErrNoBaseURL
	default:
		return r.fetch(ctx, r.baseURL+url.PathEscape(ref))
	}
}

func (r *Resolver) fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := r.client.Do(req) // #nosec G107 -- references come from trusted slide records
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if resp.ContentLength > r.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, r.maxBytes)
	}
	return data, nil
}

// logRef shortens references for log output; data URIs can be megabytes.
func logRef(ref string) string {
	const maxLen = 80
	if len(ref) <= maxLen {
		return ref
	}
	return ref[:maxLen] + "..."
}

package deckgen

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	timeout          time.Duration
	fetchTimeout     time.Duration
	fetchConcurrency int
	httpClient       *http.Client
	assetBaseURL     string
	assetPath        string
	templates        []Template
}

// defaultTimeout bounds PDF generation when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout used by FormatPrintPDF.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("deckgen: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.timeout = d
	}
}

// WithFetchTimeout bounds each image fetch of a deck build.
// Panics if d <= 0.
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("deckgen: WithFetchTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.fetchTimeout = d
	}
}

// WithFetchConcurrency limits simultaneous image fetches. Zero, the default,
// fetches every distinct image at once. Panics if n < 0.
func WithFetchConcurrency(n int) Option {
	if n < 0 {
		panic("deckgen: WithFetchConcurrency must not be negative")
	}
	return func(b *Builder) {
		b.cfg.fetchConcurrency = n
	}
}

// WithHTTPClient sets the client used to fetch images.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Builder) {
		b.cfg.httpClient = c
	}
}

// WithAssetBaseURL sets the URL prefix that opaque image ids are resolved
// against. Without it, such images render as placeholders in the deck.
func WithAssetBaseURL(u string) Option {
	return func(b *Builder) {
		b.cfg.assetBaseURL = u
	}
}

// WithAssetPath overrides the print stylesheet and template from a
// directory, falling back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for the print stylesheet and
// template. It takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(b *Builder) {
		b.publicLoader = l
	}
}

// WithTemplates adds templates to the built-in ones. A template with a
// built-in id replaces it.
func WithTemplates(templates ...Template) Option {
	return func(b *Builder) {
		b.cfg.templates = append(b.cfg.templates, templates...)
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

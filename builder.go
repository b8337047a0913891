package deckgen

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-deckgen/internal/assets"
	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/media"
	"github.com/alnah/go-deckgen/internal/printdoc"
	"github.com/alnah/go-deckgen/internal/theme"
)

// assetResolver fetches the images of a deck build.
type assetResolver interface {
	Resolve(ctx context.Context, refs []string) media.Assets
}

var _ assetResolver = (*media.Resolver)(nil)

// Builder turns presentations into artifacts. Create with NewBuilder, use
// Build, and Close when done. Deck and print builds are safe for concurrent
// use; print-pdf builds share the Builder's browser.
type Builder struct {
	cfg          builderConfig
	logger       *slog.Logger
	registry     theme.Registry
	assetLoader  assets.AssetLoader
	publicLoader AssetLoader
	resolver     assetResolver
	printer      *printdoc.Renderer
	pdfConverter pdfConverter
	newID        func() string
	now          func() time.Time
}

// NewBuilder creates a Builder with the built-in templates and embedded
// print assets. Returns an error if the asset path, asset base URL or
// templates are invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			timeout:      defaultTimeout,
			fetchTimeout: media.DefaultFetchTimeout,
		},
		logger:      slog.New(slog.DiscardHandler),
		registry:    theme.Builtin(),
		assetLoader: assets.NewEmbeddedLoader(),
		newID:       uuid.NewString,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(b.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		b.assetLoader = resolver
	}
	if b.publicLoader != nil {
		b.assetLoader = &publicToInternalAdapter{pub: b.publicLoader}
	}

	if len(b.cfg.templates) > 0 {
		themes, err := toThemes(b.cfg.templates)
		if err != nil {
			return nil, err
		}
		b.registry = b.registry.Merge(themes)
	}

	if b.resolver == nil {
		resolver, err := media.NewResolver(
			media.WithHTTPClient(b.cfg.httpClient),
			media.WithFetchTimeout(b.cfg.fetchTimeout),
			media.WithConcurrency(b.cfg.fetchConcurrency),
			media.WithBaseURL(b.cfg.assetBaseURL),
			media.WithLogger(b.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring image resolver: %w", err)
		}
		b.resolver = resolver
	}

	printer, err := printdoc.NewRenderer(b.assetLoader)
	if err != nil {
		return nil, fmt.Errorf("initializing print renderer: %w", err)
	}
	b.printer = printer

	// Created here so tests can inject a fake; the browser starts lazily.
	if b.pdfConverter == nil {
		b.pdfConverter = newRodConverter(b.cfg.timeout)
	}

	return b, nil
}

// TemplateIDs lists the template ids this Builder knows, sorted.
func (b *Builder) TemplateIDs() []string {
	return b.registry.IDs()
}

// Build renders req into an artifact. Slides are ordered by Order (stable);
// the caller's slice is not modified. Image fetch failures never fail a
// build: the affected images become placeholders. A ctx that ends while
// images are being fetched fails the build with ctx.Err().
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, req Request) (art *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	format, _ := ParseFormat(string(req.Format))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := b.now()
	id := b.newID()
	logger := b.logger.With("build", id, "format", string(format))

	slides := sortSlides(req.Slides)
	th := b.registry.Resolve(req.Project.TemplateID)
	if _, ok := b.registry.Lookup(req.Project.TemplateID); !ok && req.Project.TemplateID != "" {
		logger.Debug("unknown template, using default", "template", req.Project.TemplateID, "default", th.ID)
	}

	var data []byte
	switch format {
	case FormatDeck:
		data, err = b.buildDeck(ctx, id, req.Project, slides, th, req.Options)
	case FormatPrint:
		var doc string
		doc, err = b.renderPrint(ctx, req.Project, slides, th, req.Options)
		data = []byte(doc)
	case FormatPrintPDF:
		var doc string
		doc, err = b.renderPrint(ctx, req.Project, slides, th, req.Options)
		if err == nil {
			data, err = b.pdfConverter.ToPDF(ctx, doc)
			if err != nil {
				err = fmt.Errorf("converting to PDF: %w", err)
			}
		}
	}
	if err != nil {
		logger.Error("build failed", "error", err)
		return nil, err
	}

	logger.Info("build complete",
		"slides", len(slides),
		"bytes", len(data),
		"template", th.ID,
		"duration", b.now().Sub(start))

	return &Artifact{
		ID:          id,
		Format:      format,
		ContentType: format.ContentType(),
		Extension:   format.Extension(),
		Data:        data,
		Watermarked: req.Options.FreeTier,
		SlideCount:  len(slides),
	}, nil
}

// Close releases resources (headless Chrome browser).
func (b *Builder) Close() error {
	if b.pdfConverter != nil {
		return b.pdfConverter.Close()
	}
	return nil
}

// buildDeck resolves every image once, in parallel, then serializes.
func (b *Builder) buildDeck(ctx context.Context, id string, project Project, slides []Slide, th theme.Theme, opts RenderOptions) ([]byte, error) {
	refs := make([]string, 0, len(slides))
	for _, s := range slides {
		refs = append(refs, s.ImageRef)
	}
	resolved := b.resolver.Resolve(ctx, refs)
	// Fetches cut short by the caller's deadline or cancellation must not
	// pass as degraded images.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return serializeDeck(project, slides, th, resolved, opts, deckMeta{
		Identifier: id,
		Created:    b.now(),
	})
}

// renderPrint renders the surrogate without fetching images.
func (b *Builder) renderPrint(ctx context.Context, project Project, slides []Slide, th theme.Theme, opts RenderOptions) (string, error) {
	pages := make([]printdoc.Slide, len(slides))
	for i, s := range slides {
		pages[i] = printdoc.Slide{
			Layout:   layout.ParseTag(s.Layout),
			Title:    s.Title,
			Bullets:  s.Bullets,
			Notes:    s.SpeakerNotes,
			ImageRef: s.ImageRef,
		}
	}

	doc, err := b.printer.Render(ctx, printdoc.Project{Title: project.Title, Topic: project.Topic}, pages, th, opts.FreeTier)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPrintRender, err)
	}
	return doc, nil
}

// sortSlides returns a copy of slides ordered by Order. Equal orders keep
// their input order; orders are never renumbered.
func sortSlides(slides []Slide) []Slide {
	sorted := slices.Clone(slides)
	slices.SortStableFunc(sorted, func(a, b Slide) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

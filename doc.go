// Package deckgen assembles presentations into downloadable documents.
//
// A presentation is project metadata plus an ordered list of slide records.
// deckgen renders it as an Office Open XML slide deck, as a print-ready HTML
// document, or as a PDF printed from that document by headless Chrome.
//
// # Quick Start
//
//	b, err := deckgen.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	art, err := b.Build(ctx, deckgen.Request{
//	    Project: deckgen.Project{Title: "Q1 Review", TemplateID: "modern"},
//	    Slides: []deckgen.Slide{
//	        {Order: 0, Layout: "title", Title: "Q1 Review"},
//	        {Order: 1, Layout: "content_image_right", Title: "Revenue",
//	            Bullets: []string{"Up 12%", "New markets"},
//	            ImageRef: "https://example.com/chart.png"},
//	    },
//	    Format:  deckgen.FormatDeck,
//	    Options: deckgen.RenderOptions{FreeTier: true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("q1."+art.Extension, art.Data, 0644)
//
// # Build Pipeline
//
//  1. Slides are sorted by Order (stable) and the template is resolved;
//     unknown template ids use the default template.
//  2. Deck builds fetch every distinct image once, in parallel, each bounded
//     by the fetch timeout. Failed images become placeholders; the build
//     goes on.
//  3. Each slide is laid out by its layout tag: title, content,
//     content_image_left, content_image_right, two_column, agenda, summary,
//     timeline or qa. Unknown tags lay out as content.
//  4. The deck gets an opening title slide and one slide per record. The
//     print document gets a title page and one page per record.
//
// Free-tier builds are watermarked: every content slide of a deck, and one
// fixed overlay repeated on each page of the print document.
//
// # Configuration
//
//	b, err := deckgen.NewBuilder(
//	    deckgen.WithFetchTimeout(5 * time.Second),
//	    deckgen.WithAssetBaseURL("https://cdn.example.com/assets/"),
//	    deckgen.WithTemplates(templates...),
//	    deckgen.WithLogger(slog.Default()),
//	)
//
// # Parallel Processing
//
// For batch builds, use BuilderPool to bound concurrent browsers:
//
//	pool := deckgen.NewBuilderPool(deckgen.ResolvePoolSize(0))
//	defer pool.Close()
//
//	b := pool.Acquire()
//	defer pool.Release(b)
//
// # Custom Assets
//
// Override the print stylesheet and document template:
//
//	loader, err := deckgen.NewAssetLoader("/path/to/assets")
//	b, err := deckgen.NewBuilder(deckgen.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── print.css
//	└── templates/
//	    └── document.html
package deckgen

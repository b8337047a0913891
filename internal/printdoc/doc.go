// Package printdoc renders the print-oriented HTML surrogate of a deck.
//
// The document has one page per slide plus an opening title page. Slides
// are laid out by the same engine as the binary deck, in reference mode:
// images are linked by URL or shown as labelled placeholders, never
// fetched or embedded.
//
// # Pipeline
//
//	Slide ──► layout.Render (nil assets) ──► blockView ──┐
//	Notes ──► goldmark ─────────────────────────────────┼──► html/template ──► string
//	Theme ──► :root custom properties + print.css ─────┘
//
// All user text goes through html/template contextual escaping. Speaker
// notes are Markdown; raw HTML inside them is dropped by the converter.
package printdoc

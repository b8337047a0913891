package deckgen

import (
	"fmt"
	"strings"
)

// Format selects the artifact produced by a build.
type Format string

const (
	// FormatDeck is an Office Open XML presentation.
	FormatDeck Format = "deck"
	// FormatPrint is the self-contained print HTML document.
	FormatPrint Format = "print"
	// FormatPrintPDF is the print document rendered to PDF by headless
	// Chrome.
	FormatPrintPDF Format = "print-pdf"
)

// formatAliases maps accepted spellings to formats. "pdf" answers with the
// print HTML, which the browser's print dialog turns into a PDF.
var formatAliases = map[string]Format{
	"deck":      FormatDeck,
	"pptx":      FormatDeck,
	"print":     FormatPrint,
	"html":      FormatPrint,
	"pdf":       FormatPrint,
	"print-pdf": FormatPrintPDF,
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (must be deck, print or print-pdf)", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of artifacts in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatDeck:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatPrint:
		return "text/html; charset=utf-8"
	case FormatPrintPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Extension returns the file extension of artifacts in format f, without
// the dot.
func (f Format) Extension() string {
	switch f {
	case FormatDeck:
		return "pptx"
	case FormatPrint:
		return "html"
	case FormatPrintPDF:
		return "pdf"
	}
	return "bin"
}

// Field length limits.
const (
	MaxTitleLength  = 500
	MaxBulletLength = 2000
	MaxNotesLength  = 20000
	MaxRefLength    = 8192
	MaxNameLength   = 100
)

// Project is the presentation-level metadata.
type Project struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Topic      string `yaml:"topic"`
	TemplateID string `yaml:"templateId"`
}

// DisplayTitle returns Title, or Topic when Title is empty.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Topic
}

// Slide is one slide record. Layout is the stored layout tag; unknown tags
// render as plain content.
type Slide struct {
	ID           string   `yaml:"id"`
	Order        int      `yaml:"order"`
	Layout       string   `yaml:"layoutTag"`
	Title        string   `yaml:"title"`
	Bullets      []string `yaml:"bullets"`
	SpeakerNotes string   `yaml:"speakerNotes"`
	ImageRef     string   `yaml:"imageReference"`
}

// Validate checks ordering and field lengths. A nil receiver is valid.
func (s *Slide) Validate() error {
	if s == nil {
		return nil
	}
	if s.Order < 0 {
		return fmt.Errorf("%w: order %d is negative", ErrInvalidSlide, s.Order)
	}
	if err := validateFieldLength("title", s.Title, MaxTitleLength); err != nil {
		return err
	}
	for i, b := range s.Bullets {
		if err := validateFieldLength(fmt.Sprintf("bullets[%d]", i), b, MaxBulletLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("speakerNotes", s.SpeakerNotes, MaxNotesLength); err != nil {
		return err
	}
	return validateFieldLength("imageReference", s.ImageRef, MaxRefLength)
}

// RenderOptions carry per-build presentation choices.
type RenderOptions struct {
	// FreeTier adds the watermark. It is the only input deciding that.
	FreeTier bool
	// AuthorName is printed on the deck's opening slide and recorded as
	// document creator.
	AuthorName string
	// OrganizationName is shown on every content slide. Empty uses
	// "SlideRush AI".
	OrganizationName string
}

// Validate checks field lengths. A nil receiver is valid.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := validateFieldLength("authorName", o.AuthorName, MaxNameLength); err != nil {
		return err
	}
	return validateFieldLength("organizationName", o.OrganizationName, MaxNameLength)
}

// Request is the input of one build.
type Request struct {
	Project Project
	Slides  []Slide
	Format  Format
	Options RenderOptions
}

// Validate checks the request before any work starts.
func (r *Request) Validate() error {
	if _, err := ParseFormat(string(r.Format)); err != nil {
		return err
	}
	if err := validateFieldLength("project.title", r.Project.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("project.topic", r.Project.Topic, MaxTitleLength); err != nil {
		return err
	}
	for i := range r.Slides {
		if err := r.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return r.Options.Validate()
}

// Artifact is the outcome of a build.
type Artifact struct {
	// ID identifies this build; the deck records it as document identifier.
	ID          string
	Format      Format
	ContentType string
	Extension   string
	Data        []byte
	Watermarked bool
	// SlideCount counts slide records, not the implicit title slide.
	SlideCount int
}

func validateFieldLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), maxLength)
	}
	return nil
}

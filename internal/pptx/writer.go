// Package pptx writes slide decks as Office Open XML presentations.
//
// The writer knows nothing about slide records or layout tags: it places
// already-positioned layout blocks on slides, attaches notes, and emits one
// master carrying the theme background, band and organization label.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/theme"
)

// Properties are the document-level metadata fields.
type Properties struct {
	Title      string
	Subject    string
	Creator    string
	Company    string
	Identifier string
	Created    time.Time
}

// Slide is one slide of the deck.
type Slide struct {
	// Background overrides the master background when set (6-digit hex).
	Background string
	// HideMaster suppresses the master band and organization label.
	HideMaster bool
	Blocks     []layout.Block
	Notes      string
}

// Deck is the complete input of a write.
type Deck struct {
	Properties   Properties
	Theme        theme.Theme
	Organization string
	Slides       []Slide
}

// Validate checks everything that would otherwise produce a corrupt file.
func (d *Deck) Validate() error {
	if d == nil {
		return ErrNilDeck
	}
	if len(d.Slides) == 0 {
		return ErrNoSlides
	}
	if err := d.Theme.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	for i, s := range d.Slides {
		for j, b := range s.Blocks {
			if b == nil {
				return fmt.Errorf("%w: slide %d block %d is nil", ErrInvalidGeometry, i+1, j+1)
			}
			if err := b.Bounds().Validate(); err != nil {
				return fmt.Errorf("%w: slide %d block %d: %v", ErrInvalidGeometry, i+1, j+1, err)
			}
		}
	}
	return nil
}

// Writer serializes a Deck. A Writer is single-use.
type Writer struct {
	deck  *Deck
	media *mediaSet
	plans []slidePlan

	presRels       *xmlRelationships
	masterRelID    string
	slideRelIDs    []string
	notesMasterRel string
}

// slidePlan holds the relationship ids of one slide, computed before any
// part is written so slide XML and slide rels agree.
type slidePlan struct {
	num       int
	slide     *Slide
	rels      *xmlRelationships
	imageRels map[int]string // media index -> rId
	notes     bool
}

// NewWriter returns a Writer for d.
func NewWriter(d *Deck) *Writer {
	return &Writer{deck: d}
}

// Encode validates d and returns the serialized deck.
func Encode(d *Deck) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(d).Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write validates the deck and writes the zip container to out. Nothing is
// written when validation fails.
func (w *Writer) Write(out io.Writer) error {
	if err := w.deck.Validate(); err != nil {
		return err
	}
	w.plan()

	zw := zip.NewWriter(out)
	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	if w.hasNotes() {
		steps = append(steps, w.writeNotesMaster, w.writeNotesTheme)
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i := range w.plans {
		p := &w.plans[i]
		if err := w.writeSlide(zw, p); err != nil {
			return err
		}
		if err := writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", p.num), p.rels); err != nil {
			return err
		}
		if p.notes {
			if err := w.writeNotesSlide(zw, p); err != nil {
				return err
			}
		}
	}

	if err := w.media.write(zw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: closing container: %v", ErrWrite, err)
	}
	return nil
}

func (w *Writer) plan() {
	w.media = newMediaSet()
	w.plans = make([]slidePlan, len(w.deck.Slides))
	for i := range w.deck.Slides {
		s := &w.deck.Slides[i]
		p := slidePlan{num: i + 1, slide: s, rels: newRels(), imageRels: map[int]string{}}
		p.rels.add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
		for _, b := range s.Blocks {
			img, ok := b.(*layout.ImageBlock)
			if !ok || !embeddable(img) {
				continue
			}
			idx := w.media.add(img.Source.Data, img.Source.Extension(), img.Source.ContentType)
			if _, seen := p.imageRels[idx]; !seen {
				p.imageRels[idx] = p.rels.add(relTypeImage, "../media/"+w.media.name(idx))
			}
		}
		if cleanText(s.Notes) != "" {
			p.notes = true
			p.rels.add(relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", p.num))
		}
		w.plans[i] = p
	}

	w.presRels = newRels()
	w.masterRelID = w.presRels.add(relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	w.slideRelIDs = make([]string, len(w.plans))
	for i := range w.plans {
		w.slideRelIDs[i] = w.presRels.add(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1))
	}
	if w.hasNotes() {
		w.notesMasterRel = w.presRels.add(relTypeNotesMaster, "notesMasters/notesMaster1.xml")
	}
	w.presRels.add(relTypePresProps, "presProps.xml")
	w.presRels.add(relTypeViewProps, "viewProps.xml")
	w.presRels.add(relTypeTheme, "theme/theme1.xml")
	w.presRels.add(relTypeTableStyles, "tableStyles.xml")
}

func (w *Writer) hasNotes() bool {
	for _, p := range w.plans {
		if p.notes {
			return true
		}
	}
	return false
}

// embeddable reports whether an image block carries bytes the container can
// hold. Anything else is drawn as a placeholder.
func embeddable(img *layout.ImageBlock) bool {
	return !img.Placeholder() && len(img.Source.Data) > 0 && img.Source.Extension() != ""
}

package deckgen

import (
	"fmt"
	"time"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/media"
	"github.com/alnah/go-deckgen/internal/pptx"
	"github.com/alnah/go-deckgen/internal/theme"
)

// deckMeta carries per-build document properties.
type deckMeta struct {
	Identifier string
	Created    time.Time
}

// serializeDeck lays out and encodes a deck of len(slides)+1 slides: an
// opening title slide, then one slide per record in the given order.
// Free-tier decks carry the watermark on every slide but the opening one.
func serializeDeck(project Project, slides []Slide, th theme.Theme, resolved media.Assets, opts RenderOptions, meta deckMeta) ([]byte, error) {
	deck := composeDeck(project, slides, th, resolved, opts)
	deck.Properties.Identifier = meta.Identifier
	deck.Properties.Created = meta.Created

	data, err := pptx.Encode(deck)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

func composeDeck(project Project, slides []Slide, th theme.Theme, resolved media.Assets, opts RenderOptions) *pptx.Deck {
	title := project.DisplayTitle()

	creator := opts.AuthorName
	if creator == "" {
		creator = layout.DefaultOrganization
	}
	organization := opts.OrganizationName
	if organization == "" {
		organization = layout.DefaultOrganization
	}

	deck := &pptx.Deck{
		Properties: pptx.Properties{
			Title:   title,
			Subject: project.Topic,
			Creator: creator,
			Company: organization,
		},
		Theme:        th,
		Organization: organization,
		Slides:       make([]pptx.Slide, 0, len(slides)+1),
	}

	deck.Slides = append(deck.Slides, pptx.Slide{
		Background: th.Primary,
		HideMaster: true,
		Blocks:     layout.Cover(title, opts.AuthorName, th),
	})

	for _, s := range slides {
		blocks := layout.Render(layout.Slide{
			Tag:      layout.ParseTag(s.Layout),
			Title:    s.Title,
			Bullets:  s.Bullets,
			ImageRef: s.ImageRef,
		}, th, resolved)
		if opts.FreeTier {
			blocks = append(blocks, layout.Watermark(th))
		}
		deck.Slides = append(deck.Slides, pptx.Slide{
			Blocks: blocks,
			Notes:  s.SpeakerNotes,
		})
	}

	return deck
}

// Package layout turns a slide record into positioned blocks. It is pure:
// the same slide, theme and assets always produce the same blocks, and the
// frames never depend on whether an image fetch succeeded.
package layout

import (
	"github.com/alnah/go-deckgen/internal/media"
	"github.com/alnah/go-deckgen/internal/theme"
)

// Slide is the layout input extracted from a slide record.
type Slide struct {
	Tag      Tag
	Title    string
	Bullets  []string
	ImageRef string
}

const (
	headingSize      = 28
	titleHeadingSize = 40
	bodySize         = 18
	columnSize       = 16
	bodyLineSpacing  = 1.5

	watermarkSize  = 10
	watermarkColor = "9CA3AF"
	// WatermarkText is stamped on content slides of free-tier builds.
	WatermarkText = "Created with SlideRush AI"

	// DefaultOrganization is shown in the master band and document
	// properties when no organization is given.
	DefaultOrganization = "SlideRush AI"
)

// Region frames, in inches on the 10 x 7.5 canvas.
var (
	headingFrame      = Rect(0.5, 0.4, 9, 1)
	titleHeadingFrame = Rect(0.5, 2.5, 9, 1.5)
	titleImageFrame   = Rect(3.5, 4.25, 3, 2.5)

	leftImageFrame  = Rect(0.5, 1.5, 4.5, 4)
	leftTextFrame   = Rect(0.5, 1.5, 4.5, 4)
	rightImageFrame = Rect(5.5, 1.5, 4, 4)
	rightTextFrame  = Rect(5.5, 1.5, 4, 4)

	leftColumnFrame  = Rect(0.5, 1.5, 4.3, 4)
	rightColumnFrame = Rect(5.2, 1.5, 4.3, 4)

	fullTextFrame    = Rect(0.5, 1.5, 9, 4)
	cornerImageFrame = Rect(6.5, 4, 3, 2.5)

	watermarkFrame = Rect(0, 7, 10, 0.4)

	coverTitleFrame  = Rect(1, 2.5, 8, 1.25)
	coverBylineFrame = Rect(1, 4, 8, 0.6)

	// BandFrame is the thin colored strip across the top of content slides.
	BandFrame = Rect(0, 0, 10, 0.15)
	// OrganizationFrame holds the organization name inside the band area.
	OrganizationFrame = Rect(0.5, 0.04, 4, 0.3)
)

// Render lays out one slide. Pass nil assets to lay out in reference mode,
// where every image is Referenced rather than fetched.
func Render(s Slide, th theme.Theme, assets media.Assets) []Block {
	if s.Tag == TagTitle {
		return renderTitle(s, th, assets)
	}

	blocks := []Block{heading(s.Title, th, headingFrame, headingSize, AlignLeft)}

	switch s.Tag {
	case TagImageLeft:
		blocks = append(blocks,
			image(s.ImageRef, assets, leftImageFrame),
			bullets(s.Bullets, th, rightTextFrame, bodySize))
	case TagImageRight:
		blocks = append(blocks,
			bullets(s.Bullets, th, leftTextFrame, bodySize),
			image(s.ImageRef, assets, rightImageFrame))
	case TagTwoColumn:
		left, right := SplitColumns(s.Bullets)
		blocks = append(blocks,
			bullets(left, th, leftColumnFrame, columnSize),
			bullets(right, th, rightColumnFrame, columnSize))
	default:
		blocks = append(blocks, bullets(s.Bullets, th, fullTextFrame, bodySize))
		if s.ImageRef != "" {
			blocks = append(blocks, image(s.ImageRef, assets, cornerImageFrame))
		}
	}

	return compact(blocks)
}

func renderTitle(s Slide, th theme.Theme, assets media.Assets) []Block {
	blocks := []Block{heading(s.Title, th, titleHeadingFrame, titleHeadingSize, AlignCenter)}
	if s.ImageRef == "" {
		return blocks
	}
	if a := assets.Lookup(s.ImageRef); a.Status != media.Unavailable {
		blocks = append(blocks, &ImageBlock{Frame: titleImageFrame, Source: a})
	}
	return blocks
}

// SplitColumns divides bullets by position: ceil(n/2) left, the rest right.
func SplitColumns(items []string) (left, right []string) {
	mid := (len(items) + 1) / 2
	return items[:mid:mid], items[mid:]
}

// Watermark returns the free-tier watermark block.
func Watermark(th theme.Theme) *TextBlock {
	return &TextBlock{
		Frame: watermarkFrame,
		Lines: []string{WatermarkText},
		Style: TextStyle{
			Font:  th.BodyFont,
			Size:  watermarkSize,
			Color: watermarkColor,
			Align: AlignCenter,
		},
		Role: RoleWatermark,
	}
}

// Cover returns the blocks of the deck's opening slide: the project title
// and, when author is set, a "Created by" line. Both are white on the
// primary-colored background.
func Cover(title, author string, th theme.Theme) []Block {
	blocks := []Block{&TextBlock{
		Frame: coverTitleFrame,
		Lines: []string{title},
		Style: TextStyle{Font: th.HeadingFont, Size: 44, Color: "FFFFFF", Bold: true, Align: AlignCenter},
		Role:  RoleHeading,
	}}
	if author != "" {
		blocks = append(blocks, &TextBlock{
			Frame: coverBylineFrame,
			Lines: []string{"Created by " + author},
			Style: TextStyle{Font: th.BodyFont, Size: 18, Color: "FFFFFF", Align: AlignCenter},
			Role:  RoleByline,
		})
	}
	return blocks
}

// Organization returns the organization label drawn on the master.
func Organization(name string, th theme.Theme) *TextBlock {
	if name == "" {
		name = DefaultOrganization
	}
	return &TextBlock{
		Frame: OrganizationFrame,
		Lines: []string{name},
		Style: TextStyle{Font: th.BodyFont, Size: 10, Color: "FFFFFF"},
		Role:  RoleOrganization,
	}
}

func heading(text string, th theme.Theme, f Frame, size float64, align Align) *TextBlock {
	return &TextBlock{
		Frame: f,
		Lines: []string{text},
		Style: TextStyle{
			Font:  th.HeadingFont,
			Size:  size,
			Color: th.Primary,
			Bold:  true,
			Align: align,
		},
		Role: RoleHeading,
	}
}

func bullets(lines []string, th theme.Theme, f Frame, size float64) *TextBlock {
	return &TextBlock{
		Frame: f,
		Lines: lines,
		Style: TextStyle{
			Font:        th.BodyFont,
			Size:        size,
			Color:       th.Text,
			Bullets:     true,
			LineSpacing: bodyLineSpacing,
		},
		Role: RoleBody,
	}
}

// image returns nil when the slide has no reference; compact drops it.
func image(ref string, assets media.Assets, f Frame) Block {
	if ref == "" {
		return nil
	}
	return &ImageBlock{Frame: f, Source: assets.Lookup(ref)}
}

func compact(blocks []Block) []Block {
	out := blocks[:0]
	for _, b := range blocks {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

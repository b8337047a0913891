package layout

import "github.com/alnah/go-deckgen/internal/media"

// Align is horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// VAlign is vertical text anchoring within a frame.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
)

// Role tells emitters what a text block is for.
type Role int

const (
	RoleHeading Role = iota
	RoleBody
	RoleByline
	RoleWatermark
	RoleOrganization
)

// TextStyle describes how a text block is drawn. Size is in points and
// Color is 6-digit hex.
type TextStyle struct {
	Font        string
	Size        float64
	Color       string
	Bold        bool
	Align       Align
	VAlign      VAlign
	Bullets     bool
	LineSpacing float64
}

// Block is a positioned piece of slide content: *TextBlock or *ImageBlock.
type Block interface {
	Bounds() Frame
	block()
}

// TextBlock holds one or more lines. With Style.Bullets each line is a
// bullet paragraph.
type TextBlock struct {
	Frame Frame
	Lines []string
	Style TextStyle
	Role  Role
}

// ImageBlock places an image, or a placeholder when the source is
// unavailable.
type ImageBlock struct {
	Frame  Frame
	Source media.Asset
}

func (b *TextBlock) Bounds() Frame  { return b.Frame }
func (b *ImageBlock) Bounds() Frame { return b.Frame }
func (*TextBlock) block()           {}
func (*ImageBlock) block()          {}

// Placeholder reports whether the block must be drawn as a dashed box with
// the unavailable label instead of the image.
func (b *ImageBlock) Placeholder() bool {
	return b.Source.Status == media.Unavailable
}

// Placeholder appearance shared by both emitters.
const (
	PlaceholderFill       = "F3F4F6"
	PlaceholderBorder     = "D1D5DB"
	PlaceholderLabel      = "Image unavailable"
	PlaceholderLabelColor = "9CA3AF"
	PlaceholderLabelSize  = 12
)

// PlaceholderStyle is the label style drawn inside a placeholder frame.
func PlaceholderStyle(font string) TextStyle {
	return TextStyle{
		Font:   font,
		Size:   PlaceholderLabelSize,
		Color:  PlaceholderLabelColor,
		Align:  AlignCenter,
		VAlign: VAlignMiddle,
	}
}

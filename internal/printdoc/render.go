package printdoc

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"regexp"

	"github.com/alnah/go-deckgen/internal/assets"
	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/media"
	"github.com/alnah/go-deckgen/internal/theme"
)

// Project is the document-level metadata of the print surrogate.
type Project struct {
	Title string
	Topic string
}

// DisplayTitle returns Title, or Topic when Title is empty.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Topic
}

// Slide is one printed page. Slides are printed in the order given.
type Slide struct {
	Layout   layout.Tag
	Title    string
	Bullets  []string
	Notes    string
	ImageRef string
}

// placeholderPrefixLen is how much of an opaque asset id the placeholder
// label shows.
const placeholderPrefixLen = 10

// inlineImage accepts only raster data URIs. SVG is excluded since it can
// carry script.
var inlineImage = regexp.MustCompile(`^data:image/(png|jpeg|gif|webp);base64,[A-Za-z0-9+/=\s]+$`)

// Renderer renders print documents from a parsed template. It is safe for
// concurrent use.
type Renderer struct {
	tmpl  *template.Template
	style string
	notes *notesConverter
}

// NewRenderer loads the document template and base stylesheet from loader.
func NewRenderer(loader assets.AssetLoader) (*Renderer, error) {
	src, err := loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	style, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	tmpl, err := template.New(assets.DocumentTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Renderer{tmpl: tmpl, style: style, notes: newNotesConverter()}, nil
}

type documentView struct {
	Title     string
	Subtitle  string
	Style     template.CSS
	Sections  []sectionView
	Watermark string
}

type sectionView struct {
	Layout string
	Band   bool
	Blocks []blockView
	Notes  template.HTML
}

// blockView is a block ready for the template. Kind is one of heading,
// list, image or placeholder.
type blockView struct {
	Kind  string
	Style template.CSS
	Lines []string
	Src   template.URL
	Label string
}

// Render produces the print document. With freeTier set, a single fixed
// watermark overlay is added, which the browser repeats on every page.
func (r *Renderer) Render(ctx context.Context, project Project, slides []Slide, th theme.Theme, freeTier bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := th.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	view := documentView{
		Title:    project.DisplayTitle(),
		Subtitle: layout.WatermarkText,
		Style:    template.CSS(themeCSS(th) + r.style), // #nosec G203 -- built from validated theme values and trusted assets
		Sections: make([]sectionView, 0, len(slides)),
	}
	if freeTier {
		view.Watermark = layout.WatermarkText
	}

	for _, s := range slides {
		section, err := r.section(ctx, s, th)
		if err != nil {
			return "", err
		}
		view.Sections = append(view.Sections, section)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return buf.String(), nil
}

func (r *Renderer) section(ctx context.Context, s Slide, th theme.Theme) (sectionView, error) {
	blocks := layout.Render(layout.Slide{
		Tag:      s.Layout,
		Title:    s.Title,
		Bullets:  s.Bullets,
		ImageRef: s.ImageRef,
	}, th, nil)

	section := sectionView{
		Layout: s.Layout.String(),
		Band:   s.Layout != layout.TagTitle,
		Blocks: make([]blockView, 0, len(blocks)),
	}
	for _, b := range blocks {
		section.Blocks = append(section.Blocks, viewOf(b))
	}

	if s.Notes != "" {
		notes, err := r.notes.toHTML(ctx, s.Notes)
		if err != nil {
			return sectionView{}, err
		}
		section.Notes = template.HTML(notes) // #nosec G203 -- goldmark output without raw HTML passthrough
	}
	return section, nil
}

func viewOf(b layout.Block) blockView {
	switch b := b.(type) {
	case *layout.TextBlock:
		kind := "list"
		if b.Role == layout.RoleHeading {
			kind = "heading"
		}
		return blockView{
			Kind:  kind,
			Style: template.CSS(frameCSS(b.Frame) + textCSS(b.Style)), // #nosec G203 -- numeric and hex values only
			Lines: b.Lines,
		}
	case *layout.ImageBlock:
		return imageView(b)
	}
	return blockView{}
}

func imageView(b *layout.ImageBlock) blockView {
	style := template.CSS(frameCSS(b.Frame)) // #nosec G203 -- numeric values only
	ref := b.Source.Ref

	if !b.Placeholder() && (media.IsURL(ref) || inlineImage.MatchString(ref)) {
		return blockView{Kind: "image", Style: style, Src: template.URL(ref)} // #nosec G203 -- scheme checked above
	}

	label := layout.PlaceholderLabel
	if !b.Placeholder() {
		label = "[Image: " + truncate(ref, placeholderPrefixLen) + "]"
	}
	return blockView{Kind: "placeholder", Style: style, Label: label}
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package deckgen

import (
	"errors"
	"fmt"

	"github.com/alnah/go-deckgen/internal/theme"
)

// Template is a visual template: four colors as 6-digit hex (a leading '#'
// is accepted) and two font family names.
type Template struct {
	ID          string
	Primary     string
	Secondary   string
	Background  string
	Text        string
	HeadingFont string
	BodyFont    string
}

// DefaultTemplate answers unknown or empty template ids.
const DefaultTemplate = theme.DefaultID

// LoadTemplates reads templates from a YAML file. Returns ErrTemplateFile
// when the file cannot be read or decoded and ErrInvalidTemplate when an
// entry is malformed.
//
//	templates:
//	  ocean:
//	    primary: "#0E7490"
//	    secondary: "#22D3EE"
//	    background: "#FFFFFF"
//	    text: "#0F172A"
//	    headingFont: Montserrat
//	    bodyFont: Inter
func LoadTemplates(path string) ([]Template, error) {
	themes, err := theme.LoadFile(path)
	if err != nil {
		if errors.Is(err, theme.ErrTemplateRead) || errors.Is(err, theme.ErrTemplateDecode) || errors.Is(err, theme.ErrNoTemplates) {
			return nil, errors.Join(ErrTemplateFile, err)
		}
		return nil, errors.Join(ErrInvalidTemplate, err)
	}
	out := make([]Template, len(themes))
	for i, th := range themes {
		out[i] = Template(th)
	}
	return out, nil
}

// toThemes validates templates and converts them for the registry. Missing
// fonts fall back to the default template's.
func toThemes(templates []Template) ([]theme.Theme, error) {
	fallback := theme.Builtin().Resolve(DefaultTemplate)
	themes := make([]theme.Theme, len(templates))
	for i, t := range templates {
		th := theme.Theme{
			ID:          t.ID,
			Primary:     theme.NormalizeColor(t.Primary),
			Secondary:   theme.NormalizeColor(t.Secondary),
			Background:  theme.NormalizeColor(t.Background),
			Text:        theme.NormalizeColor(t.Text),
			HeadingFont: t.HeadingFont,
			BodyFont:    t.BodyFont,
		}
		if th.HeadingFont == "" {
			th.HeadingFont = fallback.HeadingFont
		}
		if th.BodyFont == "" {
			th.BodyFont = fallback.BodyFont
		}
		if th.ID == "" {
			return nil, fmt.Errorf("%w: template %d has no id", ErrInvalidTemplate, i)
		}
		if err := th.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTemplate, th.ID, err)
		}
		themes[i] = th
	}
	return themes, nil
}

package theme

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// fileFormat is the on-disk template file layout:
//
//	templates:
//	  ocean:
//	    primary: "#0E7490"
//	    secondary: "06B6D4"
//	    background: FFFFFF
//	    text: 1F2937
//	    headingFont: Georgia
//	    bodyFont: Georgia
type fileFormat struct {
	Templates map[string]fileTheme `yaml:"templates"`
}

type fileTheme struct {
	Primary     string `yaml:"primary"`
	Secondary   string `yaml:"secondary"`
	Background  string `yaml:"background"`
	Text        string `yaml:"text"`
	HeadingFont string `yaml:"headingFont"`
	BodyFont    string `yaml:"bodyFont"`
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)

// Parse decodes a template file. Unknown keys are rejected. Missing fonts
// fall back to the default theme's fonts; missing colors are an error.
// Themes are returned sorted by id.
func Parse(data []byte) ([]Theme, error) {
	var f fileFormat
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateDecode, err)
	}
	if len(f.Templates) == 0 {
		return nil, ErrNoTemplates
	}

	themes := make([]Theme, 0, len(f.Templates))
	for rawID, ft := range f.Templates {
		id := strings.ToLower(strings.TrimSpace(rawID))
		if !idPattern.MatchString(id) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, rawID)
		}
		t := Theme{
			ID:          id,
			Primary:     NormalizeColor(ft.Primary),
			Secondary:   NormalizeColor(ft.Secondary),
			Background:  NormalizeColor(ft.Background),
			Text:        NormalizeColor(ft.Text),
			HeadingFont: strings.TrimSpace(ft.HeadingFont),
			BodyFont:    strings.TrimSpace(ft.BodyFont),
		}
		if t.HeadingFont == "" {
			t.HeadingFont = modern.HeadingFont
		}
		if t.BodyFont == "" {
			t.BodyFont = modern.BodyFont
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", id, err)
		}
		themes = append(themes, t)
	}
	slices.SortFunc(themes, func(a, b Theme) int { return strings.Compare(a.ID, b.ID) })
	return themes, nil
}

// LoadFile reads and parses a template file from disk.
func LoadFile(path string) ([]Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	return Parse(data)
}

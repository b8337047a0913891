// Package theme maps template identifiers to the color and font bundles
// applied to every slide of a deck and every page of the print document.
package theme

import (
	"fmt"
	"strings"
)

// Theme is the visual bundle selected by a template id.
// Colors are 6-digit uppercase hex RGB without a leading '#'.
type Theme struct {
	ID          string
	Primary     string
	Secondary   string
	Background  string
	Text        string
	HeadingFont string
	BodyFont    string
}

// maxFontNameLength bounds font names copied into XML attributes and CSS.
const maxFontNameLength = 64

// Validate checks colors and fonts. A nil receiver is valid.
func (t *Theme) Validate() error {
	if t == nil {
		return nil
	}
	colors := []struct {
		field, value string
	}{
		{"primary", t.Primary},
		{"secondary", t.Secondary},
		{"background", t.Background},
		{"text", t.Text},
	}
	for _, c := range colors {
		if !isHexColor(c.value) {
			return fmt.Errorf("%w: %s %q (want 6 hex digits)", ErrInvalidColor, c.field, c.value)
		}
	}
	for field, font := range map[string]string{"headingFont": t.HeadingFont, "bodyFont": t.BodyFont} {
		if font == "" || len(font) > maxFontNameLength {
			return fmt.Errorf("%w: %s must be 1-%d characters", ErrInvalidFont, field, maxFontNameLength)
		}
		if strings.ContainsAny(font, "\"'<>&;{}") {
			return fmt.Errorf("%w: %s %q contains reserved characters", ErrInvalidFont, field, font)
		}
	}
	return nil
}

// CSS returns c as a CSS color literal.
func CSS(c string) string {
	return "#" + c
}

// NormalizeColor strips an optional leading '#' and uppercases the digits.
// Invalid input is returned trimmed but otherwise untouched so Validate can
// report it.
func NormalizeColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if !isHexColor(c) {
		return c
	}
	return strings.ToUpper(c)
}

func isHexColor(c string) bool {
	if len(c) != 6 {
		return false
	}
	for i := 0; i < len(c); i++ {
		switch ch := c[i]; {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

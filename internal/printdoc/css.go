package printdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/theme"
)

// themeCSS exposes the theme to the stylesheet as custom properties.
func themeCSS(th theme.Theme) string {
	return fmt.Sprintf(`:root {
  --primary: %s;
  --secondary: %s;
  --background: %s;
  --text: %s;
  --heading-font: "%s";
  --body-font: "%s";
}
`,
		theme.CSS(th.Primary),
		theme.CSS(th.Secondary),
		theme.CSS(th.Background),
		theme.CSS(th.Text),
		escapeCSSString(th.HeadingFont),
		escapeCSSString(th.BodyFont),
	)
}

// escapeCSSString escapes s for use inside a double-quoted CSS string.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// frameCSS positions a block on the 10in x 7.5in canvas.
func frameCSS(f layout.Frame) string {
	return fmt.Sprintf("left:%sin;top:%sin;width:%sin;height:%sin;",
		inches(f.X), inches(f.Y), inches(f.W), inches(f.H))
}

// textCSS carries the per-block text style. Fonts come from the heading and
// body custom properties through the stylesheet classes.
func textCSS(st layout.TextStyle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "font-size:%spt;", strconv.FormatFloat(st.Size, 'f', -1, 64))
	if st.Color != "" {
		fmt.Fprintf(&b, "color:%s;", theme.CSS(st.Color))
	}
	if st.Align == layout.AlignCenter {
		b.WriteString("text-align:center;justify-content:center;")
	}
	if st.LineSpacing > 0 {
		fmt.Fprintf(&b, "line-height:%s;", strconv.FormatFloat(st.LineSpacing, 'f', -1, 64))
	}
	return b.String()
}

func inches(e layout.EMU) string {
	return strconv.FormatFloat(e.Inches(), 'f', -1, 64)
}

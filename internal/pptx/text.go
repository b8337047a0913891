package pptx

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-deckgen/internal/layout"
)

// cleanText normalizes s to NFC and drops characters that XML 1.0 cannot
// carry. Tabs and newlines survive; newlines become line breaks later.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n':
			return r
		case r == '\r':
			return -1
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}

const (
	bulletChar   = "•"
	bulletMargin = 342900 // 0.375in hanging indent
)

func alignAttr(a layout.Align) string {
	if a == layout.AlignCenter {
		return "ctr"
	}
	return "l"
}

func anchorAttr(v layout.VAlign) string {
	if v == layout.VAlignMiddle {
		return "ctr"
	}
	return "t"
}

// runPropsXML renders <a:rPr> for style. tag is "rPr" or "endParaRPr".
func runPropsXML(tag string, st layout.TextStyle) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d"`, int(st.Size*100+0.5))
	if st.Bold {
		attrs += ` b="1"`
	}
	attrs += ` dirty="0"`

	var children strings.Builder
	if st.Color != "" {
		fmt.Fprintf(&children, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, st.Color)
	}
	if st.Font != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, xmlEscape(st.Font), xmlEscape(st.Font))
	}
	return fmt.Sprintf(`<a:%s%s>%s</a:%s>`, tag, attrs, children.String(), tag)
}

func paragraphPropsXML(st layout.TextStyle) string {
	attrs := fmt.Sprintf(` algn="%s"`, alignAttr(st.Align))
	if st.Bullets {
		attrs += fmt.Sprintf(` marL="%d" indent="-%d"`, bulletMargin, bulletMargin)
	}

	var children strings.Builder
	if st.LineSpacing > 0 {
		fmt.Fprintf(&children, `<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, int(st.LineSpacing*100000+0.5))
	}
	if st.Bullets {
		fmt.Fprintf(&children, `<a:buFont typeface="Arial"/><a:buChar char="%s"/>`, bulletChar)
	} else {
		children.WriteString(`<a:buNone/>`)
	}
	return fmt.Sprintf(`<a:pPr%s>%s</a:pPr>`, attrs, children.String())
}

// paragraphsXML renders one <a:p> per line. Embedded newlines become <a:br/>
// inside the same paragraph. No lines yields one empty paragraph, since a
// text body needs at least one.
func paragraphsXML(lines []string, st layout.TextStyle) string {
	var b strings.Builder
	pPr := paragraphPropsXML(st)
	rPr := runPropsXML("rPr", st)
	end := runPropsXML("endParaRPr", st)

	if len(lines) == 0 {
		fmt.Fprintf(&b, "          <a:p>%s%s</a:p>\n", pPr, end)
		return b.String()
	}

	for _, line := range lines {
		b.WriteString("          <a:p>")
		b.WriteString(pPr)
		for i, part := range strings.Split(cleanText(line), "\n") {
			if i > 0 {
				fmt.Fprintf(&b, `<a:br>%s</a:br>`, rPr)
			}
			if part == "" {
				continue
			}
			fmt.Fprintf(&b, `<a:r>%s<a:t>%s</a:t></a:r>`, rPr, xmlEscape(part))
		}
		b.WriteString(end)
		b.WriteString("</a:p>\n")
	}
	return b.String()
}

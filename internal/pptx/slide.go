package pptx

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/alnah/go-deckgen/internal/layout"
)

const spTreeHeader = `    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
`

const placeholderLineWidth = 12700 // 1pt

func (w *Writer) writeSlide(zw *zip.Writer, p *slidePlan) error {
	var shapes strings.Builder
	shapeID := 2 // 1 is the group shape

	for _, b := range p.slide.Blocks {
		switch blk := b.(type) {
		case *layout.TextBlock:
			shapes.WriteString(textShapeXML(blk, &shapeID))
		case *layout.ImageBlock:
			if embeddable(blk) {
				idx := w.media.add(blk.Source.Data, blk.Source.Extension(), blk.Source.ContentType)
				shapes.WriteString(pictureXML(blk, p.imageRels[idx], &shapeID))
			} else {
				shapes.WriteString(placeholderXML(blk, w.deck.Theme.BodyFont, &shapeID))
			}
		}
	}

	bgXML := ""
	if p.slide.Background != "" {
		bgXML = backgroundXML(p.slide.Background)
	}
	showMaster := ""
	if p.slide.HideMaster {
		showMaster = ` showMasterSp="0"`
	}

	content := fmt.Sprintf(`%s<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"%s>
  <p:cSld>
%s%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML, showMaster,
		bgXML, spTreeHeader, shapes.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", p.num), content)
}

func backgroundXML(color string) string {
	return fmt.Sprintf(`    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
`, color)
}

func xfrmXML(f layout.Frame) string {
	return fmt.Sprintf(`          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
`, f.X, f.Y, f.W, f.H)
}

func shapeName(b *layout.TextBlock, id int) string {
	switch b.Role {
	case layout.RoleHeading:
		return fmt.Sprintf("Title %d", id)
	case layout.RoleWatermark:
		return "Watermark"
	case layout.RoleOrganization:
		return "Organization"
	default:
		return fmt.Sprintf("TextBox %d", id)
	}
}

func textShapeXML(b *layout.TextBlock, shapeID *int) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:noFill/>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" rtlCol="0" anchor="%s"><a:normAutofit/></a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(shapeName(b, id)),
		xfrmXML(b.Frame),
		anchorAttr(b.Style.VAlign),
		paragraphsXML(b.Lines, b.Style))
}

func pictureXML(b *layout.ImageBlock, relID string, shapeID *int) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="Picture %d" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
%s          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, id, xmlEscape(cleanText(b.Source.Ref)), relID, xfrmXML(b.Frame))
}

// placeholderXML draws a dashed, lightly filled box with a centered label
// in place of an image that could not be embedded.
func placeholderXML(b *layout.ImageBlock, font string, shapeID *int) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="Image Placeholder %d"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:prstDash val="dash"/></a:ln>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" rtlCol="0" anchor="ctr"/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, id, xfrmXML(b.Frame),
		layout.PlaceholderFill,
		placeholderLineWidth, layout.PlaceholderBorder,
		paragraphsXML([]string{layout.PlaceholderLabel}, layout.PlaceholderStyle(font)))
}

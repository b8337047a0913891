package pptx

import (
	"archive/zip"
	"fmt"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/theme"
)

const clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

// writeSlideMaster writes the master shared by every slide: the theme
// background, a primary-colored band across the top and the organization
// label inside it.
func (w *Writer) writeSlideMaster(zw *zip.Writer) error {
	th := w.deck.Theme
	shapeID := 2
	band := bandXML(th.Primary, &shapeID)
	org := textShapeXML(layout.Organization(w.deck.Organization, th), &shapeID)

	content := fmt.Sprintf(`%s<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s%s%s%s    </p:spTree>
  </p:cSld>
  %s
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="%d" r:id="rId1"/>
  </p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle><a:lvl1pPr><a:defRPr sz="2800"><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>
    <p:bodyStyle><a:lvl1pPr><a:defRPr sz="1800"><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:bodyStyle>
    <p:otherStyle><a:lvl1pPr><a:defRPr/></a:lvl1pPr></p:otherStyle>
  </p:txStyles>
</p:sldMaster>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		backgroundXML(th.Background), spTreeHeader, band, org,
		clrMap, layoutID)

	if err := writeRawXMLToZip(zw, "ppt/slideMasters/slideMaster1.xml", content); err != nil {
		return err
	}

	rels := newRels()
	rels.add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	rels.add(relTypeTheme, "../theme/theme1.xml")
	return writeXMLToZip(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", rels)
}

func bandXML(color string, shapeID *int) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="Band"/>
          <p:cNvSpPr/>
          <p:nvPr userDrawn="1"/>
        </p:nvSpPr>
        <p:spPr>
%s          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:ln><a:noFill/></a:ln>
        </p:spPr>
      </p:sp>
`, id, xfrmXML(layout.BandFrame), color)
}

func (w *Writer) writeSlideLayout(zw *zip.Writer) error {
	content := fmt.Sprintf(`%s<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">
  <p:cSld name="Blank">
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML, spTreeHeader)

	if err := writeRawXMLToZip(zw, "ppt/slideLayouts/slideLayout1.xml", content); err != nil {
		return err
	}

	rels := newRels()
	rels.add(relTypeSlideMaster, "../slideMasters/slideMaster1.xml")
	return writeXMLToZip(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels)
}

func (w *Writer) writeTheme(zw *zip.Writer) error {
	return writeRawXMLToZip(zw, "ppt/theme/theme1.xml", themeXML(w.deck.Theme))
}

func (w *Writer) writeNotesTheme(zw *zip.Writer) error {
	return writeRawXMLToZip(zw, "ppt/theme/theme2.xml", themeXML(w.deck.Theme))
}

func (w *Writer) writeNotesMaster(zw *zip.Writer) error {
	content := fmt.Sprintf(`%s<p:notesMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s    </p:spTree>
  </p:cSld>
  %s
</p:notesMaster>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML, spTreeHeader, clrMap)

	if err := writeRawXMLToZip(zw, "ppt/notesMasters/notesMaster1.xml", content); err != nil {
		return err
	}

	rels := newRels()
	rels.add(relTypeTheme, "../theme/theme2.xml")
	return writeXMLToZip(zw, "ppt/notesMasters/_rels/notesMaster1.xml.rels", rels)
}

// themeXML maps the deck theme onto the DrawingML color and font schemes so
// text typed into the deck later picks up the same palette.
func themeXML(th theme.Theme) string {
	return fmt.Sprintf(`%s<a:theme xmlns:a="%s" name="%s">
  <a:themeElements>
    <a:clrScheme name="%s">
      <a:dk1><a:srgbClr val="%s"/></a:dk1>
      <a:lt1><a:srgbClr val="%s"/></a:lt1>
      <a:dk2><a:srgbClr val="%s"/></a:dk2>
      <a:lt2><a:srgbClr val="F3F4F6"/></a:lt2>
      <a:accent1><a:srgbClr val="%s"/></a:accent1>
      <a:accent2><a:srgbClr val="%s"/></a:accent2>
      <a:accent3><a:srgbClr val="9CA3AF"/></a:accent3>
      <a:accent4><a:srgbClr val="F59E0B"/></a:accent4>
      <a:accent5><a:srgbClr val="10B981"/></a:accent5>
      <a:accent6><a:srgbClr val="EF4444"/></a:accent6>
      <a:hlink><a:srgbClr val="%s"/></a:hlink>
      <a:folHlink><a:srgbClr val="%s"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="%s">
      <a:majorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
      <a:minorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`, xmlDecl, nsDrawingML, xmlEscape(th.ID),
		xmlEscape(th.ID),
		th.Text, th.Background, th.Primary,
		th.Primary, th.Secondary,
		th.Primary, th.Secondary,
		xmlEscape(th.ID),
		xmlEscape(th.HeadingFont), xmlEscape(th.BodyFont))
}

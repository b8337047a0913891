package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

func (w *Writer) writeNotesSlide(zw *zip.Writer, p *slidePlan) error {
	var paras strings.Builder
	for _, line := range strings.Split(cleanText(p.slide.Notes), "\n") {
		if line == "" {
			paras.WriteString("          <a:p><a:endParaRPr lang=\"en-US\" dirty=\"0\"/></a:p>\n")
			continue
		}
		fmt.Fprintf(&paras, "          <a:p><a:r><a:rPr lang=\"en-US\" dirty=\"0\"/><a:t>%s</a:t></a:r></a:p>\n", xmlEscape(line))
	}

	content := fmt.Sprintf(`%s<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Notes Placeholder 1"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="body" idx="1"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:notes>`, xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML, spTreeHeader, paras.String())

	if err := writeRawXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", p.num), content); err != nil {
		return err
	}

	rels := newRels()
	rels.add(relTypeNotesMaster, "../notesMasters/notesMaster1.xml")
	rels.add(relTypeSlide, fmt.Sprintf("../slides/slide%d.xml", p.num))
	return writeXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", p.num), rels)
}

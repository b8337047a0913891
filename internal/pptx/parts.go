package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-deckgen/internal/layout"
)

// Fixed part ids. Master and layout ids live above 2^31 as the format
// requires; slide ids start at 256.
const (
	masterID     = 2147483648
	layoutID     = 2147483649
	firstSlideID = 256
)

func (w *Writer) writeContentTypes(zw *zip.Writer) error {
	ct := xmlContentTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/presProps.xml", ContentType: ctPresProps},
			{PartName: "/ppt/viewProps.xml", ContentType: ctViewProps},
			{PartName: "/ppt/tableStyles.xml", ContentType: ctTableStyles},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtProps},
		},
	}
	ct.Defaults = append(ct.Defaults, w.media.extensions()...)

	if w.hasNotes() {
		ct.Overrides = append(ct.Overrides,
			xmlOverride{PartName: "/ppt/notesMasters/notesMaster1.xml", ContentType: ctNotesMaster},
			xmlOverride{PartName: "/ppt/theme/theme2.xml", ContentType: ctTheme},
		)
	}
	for _, p := range w.plans {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", p.num),
			ContentType: ctSlide,
		})
		if p.notes {
			ct.Overrides = append(ct.Overrides, xmlOverride{
				PartName:    fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", p.num),
				ContentType: ctNotesSlide,
			})
		}
	}

	return writeXMLToZip(zw, "[Content_Types].xml", ct)
}

func (w *Writer) writeRootRels(zw *zip.Writer) error {
	rels := newRels()
	rels.add(relTypeOfficeDoc, "ppt/presentation.xml")
	rels.add(relTypeCoreProps, "docProps/core.xml")
	rels.add(relTypeExtProps, "docProps/app.xml")
	return writeXMLToZip(zw, "_rels/.rels", rels)
}

func (w *Writer) writePresentationRels(zw *zip.Writer) error {
	return writeXMLToZip(zw, "ppt/_rels/presentation.xml.rels", w.presRels)
}

// --- Document properties ---

func (w *Writer) writeAppProperties(zw *zip.Writer) error {
	notes := 0
	for _, p := range w.plans {
		if p.notes {
			notes++
		}
	}
	content := fmt.Sprintf(`%s<Properties xmlns="%s" xmlns:vt="%s">
  <Application>deckgen</Application>
  <PresentationFormat>On-screen Show (4:3)</PresentationFormat>
  <Slides>%d</Slides>
  <Notes>%d</Notes>
  <Company>%s</Company>
</Properties>`, xmlDecl, nsExtProperties, nsDocPropsVTypes,
		len(w.plans), notes, xmlEscape(cleanText(w.deck.Properties.Company)))
	return writeRawXMLToZip(zw, "docProps/app.xml", content)
}

func (w *Writer) writeCoreProperties(zw *zip.Writer) error {
	props := w.deck.Properties
	created := props.Created
	if created.IsZero() {
		created = time.Now()
	}
	stamp := created.UTC().Format("2006-01-02T15:04:05Z")

	content := fmt.Sprintf(`%s<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:title>%s</dc:title>
  <dc:subject>%s</dc:subject>
  <dc:creator>%s</dc:creator>
  <dc:identifier>%s</dc:identifier>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <cp:revision>1</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		xmlDecl, nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(cleanText(props.Title)),
		xmlEscape(cleanText(props.Subject)),
		xmlEscape(cleanText(props.Creator)),
		xmlEscape(props.Identifier),
		xmlEscape(cleanText(props.Creator)),
		stamp, stamp,
	)
	return writeRawXMLToZip(zw, "docProps/core.xml", content)
}

// --- Presentation ---

func (w *Writer) writePresentation(zw *zip.Writer) error {
	var slideIDs strings.Builder
	for i, relID := range w.slideRelIDs {
		fmt.Fprintf(&slideIDs, "    <p:sldId id=\"%d\" r:id=\"%s\"/>\n", firstSlideID+i, relID)
	}

	notesMaster := ""
	if w.notesMasterRel != "" {
		notesMaster = fmt.Sprintf("  <p:notesMasterIdLst>\n    <p:notesMasterId r:id=\"%s\"/>\n  </p:notesMasterIdLst>\n", w.notesMasterRel)
	}

	content := fmt.Sprintf(`%s<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">
  <p:sldMasterIdLst>
    <p:sldMasterId id="%d" r:id="%s"/>
  </p:sldMasterIdLst>
%s  <p:sldIdLst>
%s  </p:sldIdLst>
  <p:sldSz cx="%d" cy="%d" type="screen4x3"/>
  <p:notesSz cx="%d" cy="%d"/>
</p:presentation>`,
		xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		masterID, w.masterRelID,
		notesMaster,
		slideIDs.String(),
		layout.CanvasWidth, layout.CanvasHeight,
		layout.CanvasHeight, layout.CanvasWidth,
	)
	return writeRawXMLToZip(zw, "ppt/presentation.xml", content)
}

func (w *Writer) writePresProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`%s<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML)
	return writeRawXMLToZip(zw, "ppt/presProps.xml", content)
}

func (w *Writer) writeViewProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`%s<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		xmlDecl, nsDrawingML, nsOfficeDocRels, nsPresentationML)
	return writeRawXMLToZip(zw, "ppt/viewProps.xml", content)
}

func (w *Writer) writeTableStyles(zw *zip.Writer) error {
	content := fmt.Sprintf(`%s<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`,
		xmlDecl, nsDrawingML)
	return writeRawXMLToZip(zw, "ppt/tableStyles.xml", content)
}

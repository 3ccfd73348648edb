package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeSlide       = nsOfficeDocRels + "/slide"
	relTypeSlideMaster = nsOfficeDocRels + "/slideMaster"
	relTypeSlideLayout = nsOfficeDocRels + "/slideLayout"
	relTypeTheme       = nsOfficeDocRels + "/theme"
	relTypePresProps   = nsOfficeDocRels + "/presProps"
	relTypeViewProps   = nsOfficeDocRels + "/viewProps"
	relTypeTableStyles = nsOfficeDocRels + "/tableStyles"
	relTypeOfficeDoc   = nsOfficeDocRels + "/officeDocument"
	relTypeExtProps    = nsOfficeDocRels + "/extended-properties"
	relTypeImage       = nsOfficeDocRels + "/image"
	relTypeHyperlink   = nsOfficeDocRels + "/hyperlink"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	ctPML          = "application/vnd.openxmlformats-officedocument.presentationml."
	ctPresentation = ctPML + "presentation.main+xml"
	ctSlide        = ctPML + "slide+xml"
	ctSlideMaster  = ctPML + "slideMaster+xml"
	ctSlideLayout  = ctPML + "slideLayout+xml"
	ctPresProps    = ctPML + "presProps+xml"
	ctViewProps    = ctPML + "viewProps+xml"
	ctTableStyles  = ctPML + "tableStyles+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
)

// marshalPart encodes v as an indented, standalone XML document.
// The model types below only hold strings and integers, so encoding
// cannot fail.
func marshalPart(v any) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		panic(fmt.Sprintf("pptx: encode %T: %v", v, err))
	}
	return buf.Bytes()
}

// --- [Content_Types].xml ---

type xmlContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// contentTypes declares one Default per media extension in use and one
// Override per typed part.
func (w *packageWriter) contentTypes(parts []part) []byte {
	ct := xmlContentTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
	}
	seen := map[string]bool{"rels": true, "xml": true}
	for _, ds := range w.media {
		ext := imageExtension(ds.mimeType)
		if !seen[ext] {
			seen[ext] = true
			ct.Defaults = append(ct.Defaults, xmlDefault{Extension: ext, ContentType: imageContentType(ds.mimeType)})
		}
	}
	for _, pt := range parts {
		if pt.contentType != "" {
			ct.Overrides = append(ct.Overrides, xmlOverride{PartName: "/" + pt.name, ContentType: pt.contentType})
		}
	}
	return marshalPart(ct)
}

// imageExtension maps a picture MIME type to its media file extension.
// imageExtensions are the media types a picture may carry.
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
}

func imageExtension(mime string) string {
	if ext, ok := imageExtensions[mime]; ok {
		return ext
	}
	return "png"
}

func imageContentType(mime string) string {
	if mime == "" {
		return "image/png"
	}
	return mime
}

// --- Relationships ---

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// relList builds a relationships part; IDs are assigned rId1... in order.
type relList []xmlRelationship

func (l relList) byID(id string) *xmlRelationship {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

func (l *relList) add(typ, target string) string {
	id := fmt.Sprintf("rId%d", len(*l)+1)
	*l = append(*l, xmlRelationship{ID: id, Type: typ, Target: target})
	return id
}

func (l *relList) addExternal(typ, target string) string {
	id := l.add(typ, target)
	(*l)[len(*l)-1].TargetMode = "External"
	return id
}

func (l relList) marshal() []byte {
	return marshalPart(xmlRelationships{Xmlns: nsRelationships, Relationships: l})
}

func (w *packageWriter) rootRels() []byte {
	var rels relList
	rels.add(relTypeOfficeDoc, "ppt/presentation.xml")
	rels.add(relTypeCoreProps, "docProps/core.xml")
	rels.add(relTypeExtProps, "docProps/app.xml")
	return rels.marshal()
}

// slideRelID returns the presentation.xml relationship ID of a 1-based
// slide: rId1 is the slide master, slides follow, then the property parts.
func slideRelID(slideNum int) string {
	return fmt.Sprintf("rId%d", slideNum+1)
}

func (w *packageWriter) presentationRels() []byte {
	var rels relList
	rels.add(relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	for i := range w.pres.slides {
		rels.add(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1))
	}
	rels.add(relTypePresProps, "presProps.xml")
	rels.add(relTypeViewProps, "viewProps.xml")
	rels.add(relTypeTableStyles, "tableStyles.xml")
	rels.add(relTypeTheme, "theme/theme1.xml")
	return rels.marshal()
}

// --- docProps ---

type xmlAppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsVT     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
}

func (w *packageWriter) appProperties() []byte {
	props := w.pres.properties
	app := props.Application
	if app == "" {
		app = "click2pptx"
	}
	return marshalPart(xmlAppProperties{
		Xmlns:       nsExtProperties,
		XmlnsVT:     nsDocPropsVTypes,
		Application: app,
		Company:     props.Company,
		Slides:      len(w.pres.slides),
	})
}

// The core properties part needs fixed prefixes; encoding/xml writes
// prefixed names verbatim when they are spelled out in the tags.
type xmlCoreProperties struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCP        string   `xml:"xmlns:cp,attr"`
	XmlnsDC        string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	Creator        string   `xml:"dc:creator"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy"`
	Title          string   `xml:"dc:title"`
	Description    string   `xml:"dc:description"`
	Subject        string   `xml:"dc:subject"`
	Keywords       string   `xml:"cp:keywords"`
	Category       string   `xml:"cp:category"`
	Revision       string   `xml:"cp:revision"`
	Created        w3cDate  `xml:"dcterms:created"`
	Modified       w3cDate  `xml:"dcterms:modified"`
}

type w3cDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func newW3CDate(t time.Time) w3cDate {
	return w3cDate{Type: "dcterms:W3CDTF", Value: t.UTC().Format("2006-01-02T15:04:05Z")}
}

func (w *packageWriter) coreProperties() []byte {
	props := w.pres.properties
	return marshalPart(xmlCoreProperties{
		XmlnsCP:        nsCoreProperties,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsXSI:       nsXSI,
		Creator:        props.Creator,
		LastModifiedBy: props.LastModifiedBy,
		Title:          props.Title,
		Description:    props.Description,
		Subject:        props.Subject,
		Keywords:       props.Keywords,
		Category:       props.Category,
		Revision:       props.Revision,
		Created:        newW3CDate(props.Created),
		Modified:       newW3CDate(props.Modified),
	})
}

// xmlEscape escapes text for hand-built markup.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

// colorRGB returns the RRGGBB part of an ARGB color, or 000000.
func colorRGB(c Color) string {
	switch len(c.ARGB) {
	case 8:
		return c.ARGB[2:]
	case 6:
		return c.ARGB
	}
	return "000000"
}

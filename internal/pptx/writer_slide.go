package pptx

import (
	"fmt"
	"strings"
)

// shapeRels holds the slide relationship IDs used by one shape.
type shapeRels struct {
	embed string // picture data
	link  string // click hyperlink
}

// slideRelationships assigns the relationship IDs of a slide. rId1 is the
// slide layout; after that each shape takes its picture ID first and its
// hyperlink ID second, in drawing order.
func (w *packageWriter) slideRelationships(s *Slide) (relList, map[Shape]shapeRels) {
	var rels relList
	rels.add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")

	ids := make(map[Shape]shapeRels, len(s.shapes))
	for _, shape := range s.shapes {
		var r shapeRels
		if ds, ok := shape.(*DrawingShape); ok && ds.data != nil {
			r.embed = rels.add(relTypeImage, "../"+strings.TrimPrefix(w.mediaPath(ds), "ppt/"))
		}
		if h := shape.GetHyperlink(); h != nil {
			if h.IsInternal {
				r.link = rels.add(relTypeSlide, fmt.Sprintf("slide%d.xml", h.SlideNumber))
			} else {
				r.link = rels.addExternal(relTypeHyperlink, h.URL)
			}
		}
		ids[shape] = r
	}
	return rels, ids
}

func (w *packageWriter) slideXML(s *Slide, ids map[Shape]shapeRels) []byte {
	var tree strings.Builder
	shapeID := 2 // 1 is the group shape
	for _, shape := range s.shapes {
		switch sh := shape.(type) {
		case *DrawingShape:
			tree.WriteString(pictureXML(sh, shapeID, ids[sh]))
		case *AutoShape:
			tree.WriteString(autoShapeXML(sh, shapeID, ids[sh]))
		default:
			continue
		}
		shapeID++
	}

	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, emptySpTree, tree.String()))
}

// cNvPrXML renders <p:cNvPr>, with the click action nested inside it when
// the shape has a hyperlink.
func cNvPrXML(b *BaseShape, id int, defaultName string, r shapeRels) string {
	name := b.name
	if name == "" {
		name = fmt.Sprintf("%s %d", defaultName, id)
	}
	open := fmt.Sprintf(`<p:cNvPr id="%d" name="%s"`, id, xmlEscape(name))
	if b.description != "" {
		open += fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
	}
	if r.link == "" || b.hyperlink == nil {
		return open + "/>"
	}

	click := fmt.Sprintf(`<a:hlinkClick r:id="%s"`, r.link)
	if b.hyperlink.IsInternal {
		click += ` action="ppaction://hlinksldjump"`
	}
	if b.hyperlink.Tooltip != "" {
		click += fmt.Sprintf(` tooltip="%s"`, xmlEscape(b.hyperlink.Tooltip))
	}
	return open + ">\n            " + click + "/>\n          </p:cNvPr>"
}

func xfrmXML(b *BaseShape) string {
	return fmt.Sprintf(`          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
`, b.offsetX, b.offsetY, b.width, b.height)
}

func pictureXML(s *DrawingShape, id int, r shapeRels) string {
	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          %s
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
`, cNvPrXML(&s.BaseShape, id, "Picture", r), r.embed, xfrmXML(&s.BaseShape))
}

func autoShapeXML(s *AutoShape, id int, r shapeRels) string {
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:sp>
`, cNvPrXML(&s.BaseShape, id, "Shape", r), xfrmXML(&s.BaseShape), s.shapeType,
		fillXML(s.fill), lineXML(s.border))
}

// fillXML always emits an explicit fill so a shape without one does not
// inherit the theme's style fill.
func fillXML(f *Fill) string {
	if f == nil || f.Type == FillNone {
		return "          <a:noFill/>\n"
	}
	return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", colorRGB(f.Color))
}

func lineXML(b *Border) string {
	if b == nil || b.Style == BorderNone {
		return "          <a:ln><a:noFill/></a:ln>\n"
	}
	dash := ""
	if b.Style == BorderDash {
		dash = `<a:prstDash val="dash"/>`
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>%s</a:ln>\n",
		b.Width, colorRGB(b.Color), dash)
}

package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

func (r *packageReader) readSlide(slidePath string) (*Slide, error) {
	data, err := r.readPart(slidePath)
	if err != nil {
		return nil, err
	}

	relsPath := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	slideRels, err := r.readRelationships(relsPath)
	if err != nil {
		return nil, err
	}

	slide := newSlide()
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := r.parseSlideXML(decoder, slide, slideRels, slidePath); err != nil {
		return nil, err
	}
	return slide, nil
}

// pendingShape collects the properties of the <p:sp> or <p:pic> being
// parsed; the shape is built when its end element is reached.
type pendingShape struct {
	isPic        bool
	name, descr  string
	offX, offY   int64
	extCX, extCY int64
	prstGeom     string
	embedRID     string
	linkRID      string
	linkAction   string
	tooltip      string
	fill         *Fill
	border       *Border
}

func (r *packageReader) parseSlideXML(decoder *xml.Decoder, slide *Slide, rels relList, slidePath string) error {
	var cur *pendingShape
	var inSpPr, inLn, inGrpSp bool
	var grpDepth int

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", slidePath, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "grpSp":
				// Group contents are skipped; this package never writes groups.
				inGrpSp = true
				grpDepth++
			case "sp", "pic":
				if inGrpSp {
					continue
				}
				cur = &pendingShape{isPic: t.Name.Local == "pic"}
			}
			if cur == nil {
				continue
			}

			switch t.Name.Local {
			case "cNvPr":
				cur.name = attrValue(t.Attr, "name")
				cur.descr = attrValue(t.Attr, "descr")
			case "hlinkClick":
				cur.linkRID = relAttrValue(t.Attr, "id")
				cur.linkAction = attrValue(t.Attr, "action")
				cur.tooltip = attrValue(t.Attr, "tooltip")
			case "blip":
				cur.embedRID = relAttrValue(t.Attr, "embed")
			case "spPr":
				inSpPr = true
			case "off":
				if inSpPr {
					cur.offX = parseInt64(attrValue(t.Attr, "x"))
					cur.offY = parseInt64(attrValue(t.Attr, "y"))
				}
			case "ext":
				if inSpPr {
					cur.extCX = parseInt64(attrValue(t.Attr, "cx"))
					cur.extCY = parseInt64(attrValue(t.Attr, "cy"))
				}
			case "prstGeom":
				cur.prstGeom = attrValue(t.Attr, "prst")
			case "ln":
				if inSpPr {
					inLn = true
					cur.border = &Border{Style: BorderNone}
					if w := attrValue(t.Attr, "w"); w != "" {
						cur.border.Width = parseInt64(w)
					}
				}
			case "noFill":
				if inSpPr && !inLn {
					cur.fill = &Fill{Type: FillNone}
				}
			case "solidFill":
				if !inSpPr {
					continue
				}
				if inLn {
					cur.border.Style = BorderSolid
				} else {
					cur.fill = &Fill{Type: FillSolid}
				}
			case "prstDash":
				if inLn && attrValue(t.Attr, "val") == "dash" {
					cur.border.Style = BorderDash
				}
			case "srgbClr":
				if !inSpPr {
					continue
				}
				c := NewColor(attrValue(t.Attr, "val"))
				if inLn {
					cur.border.Color = c
				} else if cur.fill != nil && cur.fill.Type == FillSolid {
					cur.fill.Color = c
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "grpSp":
				grpDepth--
				inGrpSp = grpDepth > 0
			case "spPr":
				inSpPr = false
			case "ln":
				inLn = false
			case "sp", "pic":
				if cur == nil || inGrpSp {
					continue
				}
				shape, err := r.buildShape(cur, rels, slidePath)
				if err != nil {
					return err
				}
				slide.shapes = append(slide.shapes, shape)
				cur = nil
			}
		}
	}
}

func (r *packageReader) buildShape(ps *pendingShape, rels relList, slidePath string) (Shape, error) {
	var shape Shape
	var base *BaseShape

	if ps.isPic {
		ds := NewDrawingShape()
		if ps.embedRID != "" {
			rel := rels.byID(ps.embedRID)
			if rel == nil {
				return nil, fmt.Errorf("%s: picture references unknown relationship %s", slidePath, ps.embedRID)
			}
			mediaPath := resolveRelativePath(path.Dir(slidePath), rel.Target)
			data, err := r.readPart(mediaPath)
			if err != nil {
				return nil, err
			}
			ds.SetImageData(data, mimeFromExtension(mediaPath))
		}
		shape, base = ds, &ds.BaseShape
	} else {
		as := NewAutoShape()
		if ps.prstGeom != "" {
			as.shapeType = AutoShapeType(ps.prstGeom)
		}
		shape, base = as, &as.BaseShape
	}

	base.name = ps.name
	base.description = ps.descr
	base.offsetX, base.offsetY = ps.offX, ps.offY
	base.width, base.height = ps.extCX, ps.extCY
	base.fill = ps.fill
	base.border = ps.border

	if ps.linkRID != "" {
		rel := rels.byID(ps.linkRID)
		if rel == nil {
			return nil, fmt.Errorf("%s: hyperlink references unknown relationship %s", slidePath, ps.linkRID)
		}
		if ps.linkAction == "ppaction://hlinksldjump" {
			n, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path.Base(rel.Target), "slide"), ".xml"))
			base.hyperlink = NewInternalHyperlink(n)
		} else {
			// Targets are kept verbatim, even ones NewHyperlink would refuse,
			// so callers can inspect what a document actually contains.
			base.hyperlink = &Hyperlink{URL: rel.Target}
		}
		base.hyperlink.Tooltip = ps.tooltip
	}
	return shape, nil
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// relAttrValue returns an attribute in the officeDocument relationships
// namespace (r:id, r:embed).
func relAttrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space == nsOfficeDocRels {
			return a.Value
		}
	}
	return ""
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v
}

// resolveRelativePath resolves a relationship target against the directory
// of the part that references it. Targets that escape the package root are
// pinned under ppt/.
func resolveRelativePath(baseDir, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return strings.TrimPrefix(rel, "/")
	}
	resolved := path.Clean(path.Join(baseDir, rel))
	if strings.HasPrefix(resolved, "../") || resolved == ".." {
		return "ppt/" + path.Base(resolved)
	}
	return resolved
}

package pptx

import (
	"path"
	"strings"
)

// Shape is a picture or a preset shape on a slide.
type Shape interface {
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetHyperlink() *Hyperlink
	base() *BaseShape
}

// BaseShape holds what pictures and preset shapes share. Lengths are EMU.
type BaseShape struct {
	name        string
	description string
	offsetX     int64
	offsetY     int64
	width       int64
	height      int64
	fill        *Fill
	border      *Border
	hyperlink   *Hyperlink
}

// GetOffsetX returns the left edge.
func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }

// GetOffsetY returns the top edge.
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }

// GetWidth returns the extent along x.
func (b *BaseShape) GetWidth() int64 { return b.width }

// GetHeight returns the extent along y.
func (b *BaseShape) GetHeight() int64 { return b.height }

// GetName returns the cNvPr name shown in PowerPoint's selection pane.
func (b *BaseShape) GetName() string { return b.name }

func (b *BaseShape) base() *BaseShape { return b }

// SetName sets the cNvPr name.
func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetPosition moves the top-left corner.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX, b.offsetY = x, y
	return b
}

// SetSize sets the extents.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width, b.height = w, h
	return b
}

// GetDescription returns the alternative text (cNvPr descr).
func (b *BaseShape) GetDescription() string { return b.description }

// SetDescription sets the alternative text.
func (b *BaseShape) SetDescription(d string) { b.description = d }

// IsTransparent reports whether the shape has neither a visible fill nor
// a visible outline.
func (b *BaseShape) IsTransparent() bool {
	return (b.fill == nil || b.fill.Type == FillNone) &&
		(b.border == nil || b.border.Style == BorderNone)
}

// GetHyperlink returns the click action, or nil.
func (b *BaseShape) GetHyperlink() *Hyperlink { return b.hyperlink }

// SetHyperlink makes the whole shape clickable.
func (b *BaseShape) SetHyperlink(h *Hyperlink) { b.hyperlink = h }

// DrawingShape is a picture.
type DrawingShape struct {
	BaseShape
	data     []byte
	mimeType string
}

// NewDrawingShape returns an empty picture.
func NewDrawingShape() *DrawingShape { return &DrawingShape{} }

// SetImageData sets the picture payload. The bytes are embedded unmodified.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data, d.mimeType = data, mimeType
	return d
}

// GetImageData returns the embedded bytes.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the media type of the payload.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// mimeFromExtension maps a media file name back to a MIME type; unknown
// extensions are taken as PNG.
func mimeFromExtension(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	}
	return "image/png"
}

// AutoShapeType is the preset geometry name written to <a:prstGeom>.
type AutoShapeType string

// AutoShapeRectangle is the only geometry this package creates; other
// presets survive a read unchanged.
const AutoShapeRectangle AutoShapeType = "rect"

// AutoShape is a preset geometry shape.
type AutoShape struct {
	BaseShape
	shapeType AutoShapeType
}

// NewAutoShape creates a rectangle with no fill and no outline.
func NewAutoShape() *AutoShape {
	return &AutoShape{shapeType: AutoShapeRectangle}
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType { return a.shapeType }

// SetSolidFill paints the shape with c.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.fill = &Fill{Type: FillSolid, Color: c}
	return a
}

// SetOutline draws a solid outline of the given width in EMU.
func (a *AutoShape) SetOutline(c Color, width int64) *AutoShape {
	a.border = &Border{Style: BorderSolid, Color: c, Width: width}
	return a
}

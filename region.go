package click2pptx

import "fmt"

// ShapeKind is the shape of an image-map area.
type ShapeKind string

// ShapeRect is the only area shape a slide rectangle can reproduce.
const ShapeRect ShapeKind = "rect"

// Bounds is a rectangle in native image pixels. XMin < XMax and
// YMin < YMax once built by NewBounds.
type Bounds struct {
	XMin, YMin, XMax, YMax int
}

// Width returns the horizontal extent in pixels.
func (b Bounds) Width() int { return b.XMax - b.XMin }

// Height returns the vertical extent in pixels.
func (b Bounds) Height() int { return b.YMax - b.YMin }

func (b Bounds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.XMin, b.YMin, b.XMax, b.YMax)
}

// NewBounds normalises two corners given in any order. Each axis is
// swapped independently. It fails on negative coordinates and on a zero
// extent along either axis.
func NewBounds(x1, y1, x2, y2 int) (Bounds, error) {
	if x1 < 0 || y1 < 0 || x2 < 0 || y2 < 0 {
		return Bounds{}, fmt.Errorf("negative coordinate in %d,%d,%d,%d", x1, y1, x2, y2)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	b := Bounds{XMin: x1, YMin: y1, XMax: x2, YMax: y2}
	if b.Width() == 0 || b.Height() == 0 {
		return Bounds{}, fmt.Errorf("zero-area rectangle %s", b)
	}
	return b, nil
}

// ClickableRegion is one hotspot of the image map.
type ClickableRegion struct {
	Shape  ShapeKind
	Bounds Bounds
	Link   string
	// Title is the area's title or alt text, if any.
	Title string
	// Index is the position of the area among the map's <area> elements.
	Index int
}

package pptx

import "errors"

var errOutOfRange = errors.New("shape index out of range")

// Slide is a single slide. Shapes are drawn in insertion order, so later
// shapes sit on top of earlier ones.
type Slide struct {
	name   string
	shapes []Shape
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// CreateDrawingShape adds an empty picture to the slide.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	d := NewDrawingShape()
	s.shapes = append(s.shapes, d)
	return d
}

// CreateAutoShape adds a rectangle auto shape to the slide.
func (s *Slide) CreateAutoShape() *AutoShape {
	a := NewAutoShape()
	s.shapes = append(s.shapes, a)
	return a
}

// GetShapes returns the shapes in drawing order.
func (s *Slide) GetShapes() []Shape {
	return s.shapes
}

// GetShapeCount returns the number of shapes on the slide.
func (s *Slide) GetShapeCount() int {
	return len(s.shapes)
}

// RemoveShape removes a shape by index.
func (s *Slide) RemoveShape(index int) error {
	if index < 0 || index >= len(s.shapes) {
		return errOutOfRange
	}
	s.shapes = append(s.shapes[:index], s.shapes[index+1:]...)
	return nil
}

// pictures returns the pictures that carry image data.
func (s *Slide) pictures() []*DrawingShape {
	var out []*DrawingShape
	for _, shape := range s.shapes {
		if ds, ok := shape.(*DrawingShape); ok && ds.data != nil {
			out = append(out, ds)
		}
	}
	return out
}

// HyperlinkedShapes returns the shapes carrying an external click
// hyperlink, in drawing order.
func (s *Slide) HyperlinkedShapes() []Shape {
	var out []Shape
	for _, shape := range s.shapes {
		if h := shape.GetHyperlink(); h != nil && !h.IsInternal {
			out = append(out, shape)
		}
	}
	return out
}

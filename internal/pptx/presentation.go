// Package pptx is a small Office Open XML presentation library: an
// in-memory model of slides holding pictures and preset shapes, a PPTX
// writer, a reader for the same subset and a PNG preview renderer.
//
// Shapes may carry a click hyperlink on the whole shape, which is what a
// clickable hotspot over a picture needs.
package pptx

import (
	"fmt"
	"time"
)

// Presentation is an in-memory PowerPoint document.
type Presentation struct {
	properties *DocumentProperties
	layout     *DocumentLayout
	slides     []*Slide
}

// New creates a 4:3 presentation holding one blank slide.
func New() *Presentation {
	p := &Presentation{
		properties: NewDocumentProperties(),
		layout:     NewDocumentLayout(),
	}
	p.CreateSlide()
	return p
}

// GetDocumentProperties returns the docProps metadata for editing.
func (p *Presentation) GetDocumentProperties() *DocumentProperties { return p.properties }

// GetLayout returns the slide size, shared by every slide.
func (p *Presentation) GetLayout() *DocumentLayout { return p.layout }

// CreateSlide appends a blank slide.
func (p *Presentation) CreateSlide() *Slide {
	s := newSlide()
	p.slides = append(p.slides, s)
	return s
}

// FirstSlide returns slide 0, or nil for a presentation read from a
// package without slides.
func (p *Presentation) FirstSlide() *Slide {
	if len(p.slides) == 0 {
		return nil
	}
	return p.slides[0]
}

// GetSlide returns the slide at a zero-based index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (%d slides)", index, len(p.slides))
	}
	return p.slides[index], nil
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide { return p.slides }

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int { return len(p.slides) }

// DocumentProperties maps to docProps/core.xml and docProps/app.xml.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Revision       string
	// Company and Application go to app.xml.
	Company     string
	Application string
}

// NewDocumentProperties stamps both dates with the current time.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "click2pptx",
		LastModifiedBy: "click2pptx",
		Created:        now,
		Modified:       now,
		Application:    "click2pptx",
	}
}

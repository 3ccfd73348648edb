package click2pptx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// Inspection is what a presentation contains, as far as image maps are
// concerned.
type Inspection struct {
	SlideWidth, SlideHeight int64
	Title                   string
	Pictures                []InspectedPicture
	Hotspots                []Hotspot
}

// InspectedPicture is one picture of the first slide.
type InspectedPicture struct {
	Name                string
	X, Y, Width, Height int64
	MimeType            string
	Bytes               int
}

// Hotspot is a shape with an external click hyperlink.
type Hotspot struct {
	Name, Description   string
	Link                string
	X, Y, Width, Height int64
	// Transparent is true when the shape has neither fill nor outline.
	Transparent bool
}

// Inspect reads a PPTX file and describes its first slide.
func Inspect(path string) (*Inspection, error) {
	p, err := pptx.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindInputNotFound, path, err)
		}
		return nil, newError(KindExtraction, "not a readable presentation: "+path, err)
	}
	return InspectPresentation(p), nil
}

// InspectPresentation describes the first slide of an in-memory
// presentation.
func InspectPresentation(p *pptx.Presentation) *Inspection {
	in := &Inspection{
		SlideWidth:  p.GetLayout().CX,
		SlideHeight: p.GetLayout().CY,
		Title:       p.GetDocumentProperties().Title,
	}
	slide, err := p.GetSlide(0)
	if err != nil {
		return in
	}

	for _, shape := range slide.GetShapes() {
		if ds, ok := shape.(*pptx.DrawingShape); ok {
			in.Pictures = append(in.Pictures, InspectedPicture{
				Name:     ds.GetName(),
				X:        ds.GetOffsetX(),
				Y:        ds.GetOffsetY(),
				Width:    ds.GetWidth(),
				Height:   ds.GetHeight(),
				MimeType: ds.GetMimeType(),
				Bytes:    len(ds.GetImageData()),
			})
		}
	}

	for _, shape := range slide.HyperlinkedShapes() {
		h := Hotspot{
			Name:   shape.GetName(),
			Link:   shape.GetHyperlink().URL,
			X:      shape.GetOffsetX(),
			Y:      shape.GetOffsetY(),
			Width:  shape.GetWidth(),
			Height: shape.GetHeight(),
		}
		if as, ok := shape.(*pptx.AutoShape); ok {
			h.Description = as.GetDescription()
			h.Transparent = as.IsTransparent()
		}
		in.Hotspots = append(in.Hotspots, h)
	}
	return in
}

// WriteText prints a human-readable table of the inspection.
func (in *Inspection) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "slide %d x %d EMU", in.SlideWidth, in.SlideHeight)
	if in.Title != "" {
		fmt.Fprintf(w, ", title %q", in.Title)
	}
	fmt.Fprintf(w, "\n%d picture(s), %d hotspot(s)\n\n", len(in.Pictures), len(in.Hotspots))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tX\tY\tWIDTH\tHEIGHT\tTRANSPARENT\tLINK")
	for i, h := range in.Hotspots {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%t\t%s\n", i+1, h.Name, h.X, h.Y, h.Width, h.Height, h.Transparent, h.Link)
	}
	return tw.Flush()
}

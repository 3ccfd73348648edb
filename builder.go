package click2pptx

import (
	"fmt"
	"time"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// LayoutImage sizes the slide to the picture instead of a preset.
const LayoutImage = "image"

// BuildOptions configures BuildDocument. The zero value gives a 4:3 slide
// without margin with the picture fitted to it.
type BuildOptions struct {
	// Layout is a pptx preset name (screen4x3, screen16x9, screen16x10,
	// A4, letter) or LayoutImage. Empty means screen4x3.
	Layout string
	// Margin around the picture, in EMU.
	Margin    int64
	Placement PlacementMode
	// Title is written to the document properties.
	Title string
	// Now stamps the created and modified dates. Zero means time.Now.
	Now time.Time
}

// BuildDocument creates the one-slide presentation: the picture first,
// then one transparent hyperlinked rectangle per region in order.
func BuildDocument(img *SourceImage, regions []ClickableRegion, opts BuildOptions) (*pptx.Presentation, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, newError(KindDocumentWrite, "no image to embed", nil)
	}

	pres := pptx.New()
	layout := pres.GetLayout()
	switch {
	case opts.Layout == "":
	case opts.Layout == LayoutImage:
		cx, cy := ImageSlideSize(img.Width, img.Height, opts.Margin)
		layout.SetCustomLayout(cx, cy)
		if cx != int64(img.Width)*pptx.EMUPerPixel+2*opts.Margin || cy != int64(img.Height)*pptx.EMUPerPixel+2*opts.Margin {
			// The picture no longer fits at 96 DPI.
			opts.Placement = PlacementFit
		}
	case pptx.IsKnownLayout(opts.Layout):
		layout.SetLayout(opts.Layout)
	default:
		return nil, newError(KindConfig, fmt.Sprintf("unknown slide layout %q", opts.Layout), nil)
	}

	placement, err := FitPlacement(img.Width, img.Height, SlideGeometry{
		Width:  layout.CX,
		Height: layout.CY,
		Margin: opts.Margin,
		Mode:   opts.Placement,
	})
	if err != nil {
		return nil, err
	}

	slide := pres.FirstSlide()
	slide.SetName("Image map")

	pic := slide.CreateDrawingShape()
	pic.SetImageData(img.Data, img.MimeType)
	pic.SetName("Image map picture")
	pic.SetPosition(placement.X, placement.Y)
	pic.SetSize(placement.Width, placement.Height)

	for n, region := range regions {
		if region.Shape != "" && region.Shape != ShapeRect {
			return nil, regionError(KindUnsupportedShape, region.Index, fmt.Sprintf("shape %q", region.Shape))
		}
		link := pptx.NewHyperlink(region.Link)
		if link == nil {
			return nil, regionError(KindMalformedRegion, region.Index, fmt.Sprintf("unsafe or empty link %q", region.Link))
		}
		link.Tooltip = region.Title

		rect, err := MapRegion(region.Bounds, img.Width, img.Height, placement)
		if err != nil {
			return nil, err
		}
		x, y, w, h := rect.EMU()

		hs := slide.CreateAutoShape()
		hs.SetName(fmt.Sprintf("Hotspot %d", n+1))
		hs.SetDescription(region.Title)
		hs.SetPosition(x, y)
		hs.SetSize(w, h)
		hs.SetHyperlink(link)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	props := pres.GetDocumentProperties()
	props.Title = opts.Title
	props.Created = now
	props.Modified = now

	if err := pres.Validate(); err != nil {
		return nil, newError(KindDocumentWrite, "invalid document", err)
	}
	return pres, nil
}

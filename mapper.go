package click2pptx

import (
	"fmt"
	"math"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// PlacementMode selects how the picture is sized on the slide.
type PlacementMode string

const (
	// PlacementFit scales the picture at its native aspect ratio to the
	// largest size that fits inside the margins.
	PlacementFit PlacementMode = "fit"
	// PlacementNative keeps one image pixel per 96 DPI slide pixel.
	PlacementNative PlacementMode = "native"
)

// SlideGeometry describes the slide a picture is placed on. All lengths
// are EMU.
type SlideGeometry struct {
	Width, Height int64
	Margin        int64
	Mode          PlacementMode
}

// Placement is the position and size of the picture on the slide, in EMU.
type Placement struct {
	X, Y, Width, Height int64
}

// Rect is a mapped region in fractional EMU.
type Rect struct {
	Left, Top, Width, Height float64
}

// EMU rounds the rectangle to whole EMU, half away from zero. Extents
// never round below one EMU.
func (r Rect) EMU() (x, y, w, h int64) {
	x, y = pptx.RoundEMU(r.Left), pptx.RoundEMU(r.Top)
	w, h = max(pptx.RoundEMU(r.Width), 1), max(pptx.RoundEMU(r.Height), 1)
	return x, y, w, h
}

// MapRegion maps native pixel bounds onto the placed picture.
func MapRegion(b Bounds, nativeW, nativeH int, p Placement) (Rect, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return Rect{}, newError(KindImageDecode, fmt.Sprintf("native image size %dx%d", nativeW, nativeH), nil)
	}
	sx := float64(p.Width) / float64(nativeW)
	sy := float64(p.Height) / float64(nativeH)
	return Rect{
		Left:   float64(p.X) + float64(b.XMin)*sx,
		Top:    float64(p.Y) + float64(b.YMin)*sy,
		Width:  float64(b.Width()) * sx,
		Height: float64(b.Height()) * sy,
	}, nil
}

// FitPlacement places a picture of the given native size at the top-left
// margin of the slide.
func FitPlacement(nativeW, nativeH int, slide SlideGeometry) (Placement, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return Placement{}, newError(KindImageDecode, fmt.Sprintf("native image size %dx%d", nativeW, nativeH), nil)
	}
	p := Placement{X: slide.Margin, Y: slide.Margin}

	switch slide.Mode {
	case PlacementNative:
		p.Width = int64(nativeW) * pptx.EMUPerPixel
		p.Height = int64(nativeH) * pptx.EMUPerPixel
	case PlacementFit, "":
		availW := slide.Width - 2*slide.Margin
		availH := slide.Height - 2*slide.Margin
		if availW <= 0 || availH <= 0 {
			return Placement{}, newError(KindConfig, fmt.Sprintf("margin %d EMU leaves no room on a %dx%d slide", slide.Margin, slide.Width, slide.Height), nil)
		}
		scale := math.Min(float64(availW)/float64(nativeW), float64(availH)/float64(nativeH))
		p.Width = min(pptx.RoundEMU(float64(nativeW)*scale), availW)
		p.Height = min(pptx.RoundEMU(float64(nativeH)*scale), availH)
	default:
		return Placement{}, newError(KindConfig, fmt.Sprintf("unknown placement %q", slide.Mode), nil)
	}
	return p, nil
}

// ImageSlideSize returns a slide size that holds the picture at 96 DPI
// inside the given margin. When a side would leave the range PowerPoint
// accepts, the picture area is scaled at its aspect ratio until both sides
// fit; a map too elongated for that is clamped and placed by fitting.
func ImageSlideSize(nativeW, nativeH int, margin int64) (cx, cy int64) {
	w := float64(nativeW) * pptx.EMUPerPixel
	h := float64(nativeH) * pptx.EMUPerPixel
	pad := float64(2 * margin)

	scale := 1.0
	if long := math.Max(w, h); long+pad > float64(pptx.MaxSlideSize) {
		scale = (float64(pptx.MaxSlideSize) - pad) / long
	}
	if short := math.Min(w, h) * scale; short+pad < float64(pptx.MinSlideSize) && short > 0 {
		scale *= (float64(pptx.MinSlideSize) - pad) / short
	}
	clamp := func(v float64) int64 {
		return min(max(pptx.RoundEMU(v*scale+pad), pptx.MinSlideSize), pptx.MaxSlideSize)
	}
	return clamp(w), clamp(h)
}

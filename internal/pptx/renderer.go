package pptx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
)

const defaultRenderWidth = 960

var (
	red         = color.RGBA{R: 255, A: 255}
	placeholder = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// RenderOptions controls SlideToImage. The zero value renders 960 pixels
// wide on white with no hotspot markings.
type RenderOptions struct {
	// Width in pixels; the height follows the slide aspect ratio.
	Width int
	// JPEGQuality applies when SaveSlideAsImage writes a .jpg or .jpeg
	// file. Zero means 90.
	JPEGQuality     int
	BackgroundColor *color.RGBA
	// OutlineHyperlinks frames every clickable shape, transparent or not,
	// in OutlineColor (red when nil).
	OutlineHyperlinks bool
	OutlineColor      *color.RGBA
	// LabelHyperlinks tags each clickable shape with its 1-based number.
	LabelHyperlinks bool
}

func (o *RenderOptions) width() int {
	if o == nil || o.Width <= 0 {
		return defaultRenderWidth
	}
	return o.Width
}

func (o *RenderOptions) outline() color.RGBA {
	if o == nil || o.OutlineColor == nil {
		return red
	}
	return *o.OutlineColor
}

// SlideToImage rasterises the slide at index.
func (p *Presentation) SlideToImage(index int, opts *RenderOptions) (image.Image, error) {
	s, err := p.GetSlide(index)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &RenderOptions{}
	}

	w := opts.width()
	h := max(int(float64(w)*float64(p.layout.CY)/float64(p.layout.CX)), 1)
	r := &renderer{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		scaleX: float64(w) / float64(p.layout.CX),
		scaleY: float64(h) / float64(p.layout.CY),
	}

	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	r.fill(r.img.Bounds(), bg)

	for _, sh := range s.shapes {
		switch sh := sh.(type) {
		case *DrawingShape:
			r.picture(sh)
		case *AutoShape:
			r.autoShape(sh)
		}
	}

	if !opts.OutlineHyperlinks && !opts.LabelHyperlinks {
		return r.img, nil
	}
	c := opts.outline()
	for i, sh := range s.HyperlinkedShapes() {
		rect := r.bounds(sh.base())
		if opts.OutlineHyperlinks {
			r.frame(rect, c, 2)
		}
		if opts.LabelHyperlinks {
			r.label(rect.Min, strconv.Itoa(i+1), c)
		}
	}
	return r.img, nil
}

// SaveSlideAsImage renders a slide to path, creating parent directories.
// A .jpg or .jpeg extension selects JPEG; anything else is PNG.
func (p *Presentation) SaveSlideAsImage(index int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(index, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		q := 90
		if opts != nil && opts.JPEGQuality > 0 && opts.JPEGQuality <= 100 {
			q = opts.JPEGQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: q})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

type renderer struct {
	img            *image.RGBA
	scaleX, scaleY float64
}

func (r *renderer) px(emu int64, scale float64) int {
	return int(math.Round(float64(emu) * scale))
}

func (r *renderer) bounds(b *BaseShape) image.Rectangle {
	x, y := r.px(b.offsetX, r.scaleX), r.px(b.offsetY, r.scaleY)
	return image.Rect(x, y, x+r.px(b.width, r.scaleX), y+r.px(b.height, r.scaleY))
}

// fill composites c over rect; draw.Draw clips to the canvas.
func (r *renderer) fill(rect image.Rectangle, c color.RGBA) {
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// frame draws a border of width px inside rect.
func (r *renderer) frame(rect image.Rectangle, c color.RGBA, width int) {
	width = min(width, rect.Dx(), rect.Dy())
	if width <= 0 {
		return
	}
	r.fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), c)
	r.fill(image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), c)
	r.fill(image.Rect(rect.Min.X, rect.Min.Y+width, rect.Min.X+width, rect.Max.Y-width), c)
	r.fill(image.Rect(rect.Max.X-width, rect.Min.Y+width, rect.Max.X, rect.Max.Y-width), c)
}

func (r *renderer) picture(s *DrawingShape) {
	if len(s.data) == 0 {
		return
	}
	dst := r.bounds(&s.BaseShape)
	src, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.frame(dst, placeholder, 1)
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), draw.Over, nil)
}

func (r *renderer) autoShape(s *AutoShape) {
	rect := r.bounds(&s.BaseShape)
	if f := s.fill; f != nil && f.Type == FillSolid {
		r.fill(rect, rgba(f.Color))
	}
	if b := s.border; b != nil && b.Style != BorderNone {
		r.frame(rect, rgba(b.Color), max(int(float64(b.Width)*r.scaleX), 1))
	}
}

// label writes text in white on a c box anchored at the top-left corner at.
func (r *renderer) label(at image.Point, text string, c color.RGBA) {
	face := basicfont.Face7x13
	m := face.Metrics()
	box := image.Rectangle{Min: at, Max: at.Add(image.Pt(font.MeasureString(face, text).Ceil()+4, m.Height.Ceil()+2))}
	r.fill(box, c)

	d := font.Drawer{
		Dst:  r.img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(box.Min.X+2, box.Min.Y+1+m.Ascent.Ceil()),
	}
	d.DrawString(text)
}

func rgba(c Color) color.RGBA {
	return color.RGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

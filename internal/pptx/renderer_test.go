package pptx

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// solidPNG returns a w x h PNG filled with c.
func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestSlideToImage_BlankSlide(t *testing.T) {
	p := New()
	img, err := p.SlideToImage(0, nil)
	if err != nil {
		t.Fatalf("SlideToImage: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 960 {
		t.Errorf("expected width 960, got %d", bounds.Dx())
	}
	// 4:3 => 960:720
	if bounds.Dy() != 720 {
		t.Errorf("expected height 720, got %d", bounds.Dy())
	}
	if got := rgbaAt(img, 10, 10); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background: got %v", got)
	}
}

func TestSlideToImage_OutOfRange(t *testing.T) {
	p := New()
	if _, err := p.SlideToImage(1, nil); err == nil {
		t.Error("expected error for slide index 1")
	}
}

func TestSlideToImage_PictureAndHotspots(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	p := New()
	p.GetLayout().SetCustomLayout(Pixel(200), Pixel(100))
	slide := p.FirstSlide()

	pic := slide.CreateDrawingShape()
	pic.SetImageData(solidPNG(t, 20, 10, blue), "image/png")
	pic.SetPosition(0, 0)
	pic.SetSize(Pixel(200), Pixel(100))

	hs := slide.CreateAutoShape()
	hs.SetPosition(Pixel(50), Pixel(20))
	hs.SetSize(Pixel(100), Pixel(60))
	hs.SetHyperlink(NewHyperlink("https://example.com"))

	// Transparent hotspots leave the picture visible.
	img, err := p.SlideToImage(0, &RenderOptions{Width: 200})
	if err != nil {
		t.Fatalf("SlideToImage: %v", err)
	}
	if img.Bounds().Dy() != 100 {
		t.Fatalf("expected height 100, got %d", img.Bounds().Dy())
	}
	if got := rgbaAt(img, 50, 20); got != blue {
		t.Errorf("hotspot corner without outline: got %v, want picture color", got)
	}

	red := color.RGBA{R: 255, A: 255}
	img, err = p.SlideToImage(0, &RenderOptions{Width: 200, OutlineHyperlinks: true})
	if err != nil {
		t.Fatalf("SlideToImage: %v", err)
	}
	if got := rgbaAt(img, 100, 20); got != red {
		t.Errorf("outline top edge: got %v, want red", got)
	}
	if got := rgbaAt(img, 100, 50); got != blue {
		t.Errorf("hotspot interior: got %v, want picture color", got)
	}
}

func TestSlideToImage_SolidAutoShape(t *testing.T) {
	p := New()
	as := p.FirstSlide().CreateAutoShape()
	as.SetPosition(Inch(1), Inch(1))
	as.SetSize(Inch(2), Inch(1))
	as.SetSolidFill(NewColor("FF6600"))

	img, err := p.SlideToImage(0, nil)
	if err != nil {
		t.Fatalf("SlideToImage: %v", err)
	}
	// 1 inch = 96 px at 960 wide for a 10 inch slide.
	if got := rgbaAt(img, 150, 120); got != (color.RGBA{R: 255, G: 102, A: 255}) {
		t.Errorf("fill: got %v", got)
	}
}

func TestSaveSlideAsImage(t *testing.T) {
	p := hotspotSlide()
	path := filepath.Join(t.TempDir(), "preview", "slide.png")
	opts := &RenderOptions{Width: 320, OutlineHyperlinks: true, LabelHyperlinks: true}
	if err := p.SaveSlideAsImage(0, path, opts); err != nil {
		t.Fatalf("SaveSlideAsImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSaveSlideAsJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slide.JPG")
	if err := hotspotSlide().SaveSlideAsImage(0, path, &RenderOptions{Width: 160, JPEGQuality: 50}); err != nil {
		t.Fatalf("SaveSlideAsImage: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a JPEG: %v", err)
	}
	if cfg.Width != 160 || cfg.Height != 120 {
		t.Errorf("expected 160x120, got %dx%d", cfg.Width, cfg.Height)
	}
}

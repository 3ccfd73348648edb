package click2pptx

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// 1x1 lossless WebP.
const webpPixel = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "carte.html_files", "image.png"), pngBytes(t, 520, 120, color.White))

	img, err := LoadImage("carte.html_files/image.png", dir)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width != 520 || img.Height != 120 {
		t.Errorf("size = %dx%d, want 520x120", img.Width, img.Height)
	}
	if img.MimeType != "image/png" || img.Format != "png" {
		t.Errorf("mime = %q, format = %q", img.MimeType, img.Format)
	}
	if img.Origin != filepath.Join(dir, "carte.html_files", "image.png") {
		t.Errorf("Origin = %q", img.Origin)
	}
}

func TestLoadImagePercentEncodedPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "my image.png"), pngBytes(t, 3, 2, color.Black))

	img, err := LoadImage("my%20image.png?v=2#top", dir)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Errorf("size = %dx%d", img.Width, img.Height)
	}
}

func TestLoadImageAbsoluteAndFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abs.png")
	writeFile(t, path, pngBytes(t, 4, 4, color.Black))

	if _, err := LoadImage(path, "/elsewhere"); err != nil {
		t.Errorf("absolute path: %v", err)
	}
	if _, err := LoadImage("file://"+filepath.ToSlash(path), "/elsewhere"); err != nil {
		t.Errorf("file URL: %v", err)
	}
}

func TestLoadImageDataURI(t *testing.T) {
	raw := pngBytes(t, 7, 5, color.White)
	enc := base64.StdEncoding.EncodeToString(raw)
	// Wrapped lines as found in hand-edited pages.
	wrapped := enc[:10] + "\n  " + enc[10:]

	for _, uri := range []string{
		"data:image/png;base64," + enc,
		"DATA:image/png;BASE64," + wrapped,
		"data:image/png;base64," + strings.TrimRight(enc, "="),
	} {
		img, err := LoadImage(uri, "")
		if err != nil {
			t.Fatalf("LoadImage(%.30q): %v", uri, err)
		}
		if img.Width != 7 || img.Height != 5 {
			t.Errorf("size = %dx%d", img.Width, img.Height)
		}
		if !bytes.Equal(img.Data, raw) {
			t.Error("data URI payload was modified")
		}
		if img.Origin != "data URI" {
			t.Errorf("Origin = %q", img.Origin)
		}
	}

	if _, err := LoadImage("data:image/png;base64", ""); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("missing comma: err = %v", err)
	}
	if _, err := LoadImage("data:image/png;base64,@@@", ""); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("bad base64: err = %v", err)
	}
}

func TestLoadImageRemoteRefused(t *testing.T) {
	for _, ref := range []string{"http://example.com/a.png", "HTTPS://example.com/a.png"} {
		_, err := LoadImage(ref, "")
		if !errors.Is(err, ErrImageNotFound) {
			t.Errorf("LoadImage(%q) err = %v, want ImageNotFoundError", ref, err)
		}
	}
}

func TestLoadImageMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadImage("nope.png", dir)
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("err = %v, want ImageNotFoundError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause not preserved: %v", err)
	}

	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage("sub.png", dir); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("directory: err = %v", err)
	}

	if _, err := LoadImage("  ", dir); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("empty ref: err = %v", err)
	}
}

func TestLoadImageUndecodable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.png"), []byte("this is not an image"))

	_, err := LoadImage("broken.png", dir)
	if !errors.Is(err, ErrImageDecode) {
		t.Fatalf("err = %v, want ImageDecodeError", err)
	}
}

func TestDecodeImageFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 4))

	encode := map[string]func(*bytes.Buffer) error{
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}
	for format, enc := range encode {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, err := DecodeImage(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if img.Format != format || img.MimeType != "image/"+format {
				t.Errorf("format = %q, mime = %q", img.Format, img.MimeType)
			}
			if img.Width != 6 || img.Height != 4 {
				t.Errorf("size = %dx%d", img.Width, img.Height)
			}
			if !bytes.Equal(img.Data, buf.Bytes()) {
				t.Error("payload was modified")
			}
		})
	}
}

func TestDecodeImageWebPTranscoded(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(webpPixel)
	if err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if img.MimeType != "image/png" || img.Format != "png" {
		t.Errorf("mime = %q, format = %q", img.MimeType, img.Format)
	}
	if img.Width != 1 || img.Height != 1 {
		t.Errorf("size = %dx%d", img.Width, img.Height)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
		t.Errorf("transcoded payload does not decode: %v", err)
	}
}

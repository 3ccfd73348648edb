package click2pptx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxImageFileSize is the largest image accepted, file or data URI.
const maxImageFileSize = 50 << 20 // 50 MB

// SourceImage is the decoded picture a map is drawn over.
type SourceImage struct {
	// Width and Height are the native pixel size from the image header.
	Width, Height int
	// Data is embedded unmodified, except WebP which is transcoded to PNG.
	Data     []byte
	MimeType string
	// Format is the decoder name: png, jpeg, gif, bmp or tiff.
	Format string
	// Origin is the resolved file path, or "data URI".
	Origin string
}

// LoadImage resolves an <img src> against the directory of the HTML file
// and decodes its header. Inline data URIs are decoded in memory; remote
// http(s) images are refused.
func LoadImage(ref, baseDir string) (*SourceImage, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, newError(KindImageNotFound, "empty image reference", nil)
	}

	var data []byte
	var origin string
	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "data:"):
		d, err := decodeDataURI(ref)
		if err != nil {
			return nil, newError(KindImageNotFound, "invalid data URI", err)
		}
		data, origin = d, "data URI"
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return nil, newError(KindImageNotFound, fmt.Sprintf("remote image %s is not fetched", ref), nil)
	default:
		p, err := localImagePath(ref, baseDir)
		if err != nil {
			return nil, newError(KindImageNotFound, ref, err)
		}
		d, err := readImageFile(p)
		if err != nil {
			return nil, newError(KindImageNotFound, p, err)
		}
		data, origin = d, p
	}

	return decodeImage(data, origin)
}

// DecodeImage reads the header of an in-memory image.
func DecodeImage(data []byte) (*SourceImage, error) {
	return decodeImage(data, "memory")
}

func decodeImage(data []byte, origin string) (*SourceImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, newError(KindImageDecode, origin, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, newError(KindImageDecode, fmt.Sprintf("%s: image is %dx%d", origin, cfg.Width, cfg.Height), nil)
	}

	img := &SourceImage{
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
		Format: format,
		Origin: origin,
	}
	switch format {
	case "png":
		img.MimeType = "image/png"
	case "jpeg":
		img.MimeType = "image/jpeg"
	case "gif":
		img.MimeType = "image/gif"
	case "bmp":
		img.MimeType = "image/bmp"
	case "tiff":
		img.MimeType = "image/tiff"
	case "webp":
		if err := img.transcodePNG(); err != nil {
			return nil, newError(KindImageDecode, origin, err)
		}
	default:
		return nil, newError(KindImageDecode, fmt.Sprintf("%s: unsupported image format %q", origin, format), nil)
	}
	return img, nil
}

// transcodePNG replaces the payload with a PNG of the same pixels.
func (s *SourceImage) transcodePNG() error {
	m, _, err := image.Decode(bytes.NewReader(s.Data))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	s.Data = buf.Bytes()
	s.MimeType = "image/png"
	s.Format = "png"
	return nil
}

// localImagePath turns a relative URL, an absolute path or a file:// URL
// into a filesystem path.
func localImagePath(ref, baseDir string) (string, error) {
	if strings.HasPrefix(strings.ToLower(ref), "file:") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", err
		}
		return filepath.FromSlash(u.Path), nil
	}

	// Strip any query or fragment, then undo percent-encoding
	// ("carte.html_files/my%20image.png").
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	p, err := url.PathUnescape(ref)
	if err != nil {
		return "", err
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	return p, nil
}

func readImageFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxImageFileSize {
		return nil, fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	return io.ReadAll(f)
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("missing comma")
	}

	var data []byte
	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		// Line breaks and spaces are common in hand-edited documents.
		payload = strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\r', '\n':
				return -1
			}
			return r
		}, payload)
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			if d, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
				return nil, err
			}
		}
		data = d
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, err
		}
		data = []byte(s)
	}
	if len(data) > maxImageFileSize {
		return nil, fmt.Errorf("inline image too large: %d bytes (max %d)", len(data), maxImageFileSize)
	}
	return data, nil
}

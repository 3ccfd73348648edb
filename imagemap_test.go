package click2pptx

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// helper: encode a w x h PNG filled with c
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// helper: write file, creating parent directories
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// helper: copy testdata/name into dir
func copyFixture(t *testing.T, name, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	writeFile(t, path, data)
	return path
}

func extractString(t *testing.T, doc string, opts ExtractOptions) (*ImageMap, error) {
	t.Helper()
	return Extract(strings.NewReader(doc), opts)
}

func mapDoc(areas string) string {
	return `<html><head><title>t</title></head><body>
<img src="pic.png" usemap="#m">
<map name="m">` + areas + `</map>
</body></html>`
}

func TestExtractTwoAreas(t *testing.T) {
	m, err := ExtractFile(filepath.Join("testdata", "two_areas.html"), ExtractOptions{})
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	want := []ClickableRegion{
		{Shape: ShapeRect, Bounds: Bounds{0, 0, 50, 50}, Link: "https://a", Index: 0},
		{Shape: ShapeRect, Bounds: Bounds{50, 0, 100, 100}, Link: "https://b", Index: 1},
	}
	if diff := cmp.Diff(want, m.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
	if m.ImageRef != "square.png" {
		t.Errorf("ImageRef = %q", m.ImageRef)
	}
	if m.MapName != "m" {
		t.Errorf("MapName = %q", m.MapName)
	}
}

func TestExtractFreeplaneExport(t *testing.T) {
	m, err := ExtractFile(filepath.Join("testdata", "carte.html"), ExtractOptions{})
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}

	news := "https://news.google.com/search?q=ia&hl=fr&gl=FR&ceid=FR%3Afr"
	type got struct {
		Bounds Bounds
		Link   string
	}
	want := []got{
		{Bounds{140, 50, 412, 108}, news},
		{Bounds{437, 67, 502, 91}, news},
		{Bounds{100, 53, 115, 77}, "https://duckduckgo.com/"},
		{Bounds{50, 81, 115, 105}, "https://duckduckgo.com/"},
	}
	var have []got
	for _, r := range m.Regions {
		have = append(have, got{r.Bounds, r.Link})
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{4}, m.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if m.ImageRef != "carte.html_files/image.png" {
		t.Errorf("ImageRef = %q", m.ImageRef)
	}
	if m.MapName != "fm_imagemap" {
		t.Errorf("MapName = %q", m.MapName)
	}
	if m.Title != "IA" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Regions[1].Title != "Actualités" {
		t.Errorf("Regions[1].Title = %q", m.Regions[1].Title)
	}
}

func TestExtractUnresolvedAnchorError(t *testing.T) {
	_, err := ExtractFile(filepath.Join("testdata", "carte.html"), ExtractOptions{UnresolvedAnchors: AnchorError})
	if !errors.Is(err, ErrMalformedRegion) {
		t.Fatalf("err = %v, want MalformedRegionError", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Region != 4 {
		t.Fatalf("err = %#v, want region 4", err)
	}
	if !strings.Contains(err.Error(), "Freeplane node #FMID_977048361FM") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestExtractSwappedCoords(t *testing.T) {
	m, err := extractString(t, mapDoc(`<area shape="rect" coords="100,10,0,0" href="https://x">`), ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got, want := m.Regions[0].Bounds, (Bounds{0, 0, 100, 10}); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestExtractShapeSpelling(t *testing.T) {
	for _, shape := range []string{"", "rect", "RECT", "rectangle"} {
		area := `<area coords="0,0,1,1" href="https://x"`
		if shape != "" {
			area += ` shape="` + shape + `"`
		}
		if _, err := extractString(t, mapDoc(area+">"), ExtractOptions{}); err != nil {
			t.Errorf("shape %q: %v", shape, err)
		}
	}
}

func TestExtractUnsupportedShape(t *testing.T) {
	_, err := ExtractFile(filepath.Join("testdata", "circle.html"), ExtractOptions{})
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Fatalf("err = %v, want UnsupportedShapeError", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Region != 1 {
		t.Errorf("err = %v, want region 1", err)
	}
	if !strings.Contains(err.Error(), `"circle"`) {
		t.Errorf("message = %q", err.Error())
	}
}

func TestExtractMalformedRegions(t *testing.T) {
	tests := []struct {
		name string
		area string
	}{
		{"missing coords", `<area href="https://x">`},
		{"three values", `<area coords="1,2,3" href="https://x">`},
		{"five values", `<area coords="1,2,3,4,5" href="https://x">`},
		{"not a number", `<area coords="1,2,a,4" href="https://x">`},
		{"negative", `<area coords="-1,2,3,4" href="https://x">`},
		{"zero width", `<area coords="5,0,5,10" href="https://x">`},
		{"zero height", `<area coords="0,7,10,7" href="https://x">`},
		{"empty href", `<area coords="0,0,10,10" href="">`},
		{"no href", `<area coords="0,0,10,10">`},
		{"javascript", `<area coords="0,0,10,10" href="javascript:alert(1)">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractString(t, mapDoc(tt.area), ExtractOptions{})
			if KindOf(err) != KindMalformedRegion {
				t.Fatalf("err = %v, want MalformedRegionError", err)
			}
		})
	}
}

func TestExtractCoordsWithSpaces(t *testing.T) {
	m, err := extractString(t, mapDoc(`<area coords=" 1, 2 ,30 , 40" href="https://x">`), ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got, want := m.Regions[0].Bounds, (Bounds{1, 2, 30, 40}); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestExtractMapPairing(t *testing.T) {
	area := `<area coords="0,0,1,1" href="https://x">`
	tests := []struct {
		name string
		doc  string
		ok   bool
	}{
		{"no map", `<html><body><img src="a.png"></body></html>`, false},
		{"map without image", `<html><body><map name="m">` + area + `</map></body></html>`, false},
		{"usemap to nothing", `<html><body><img src="a.png" usemap="#other"><map name="m">` + area + `</map></body></html>`, false},
		{"two images", `<html><body><img src="a.png" usemap="#m"><img src="b.png" usemap="#m"><map name="m">` + area + `</map></body></html>`, false},
		{"two pairs", `<html><body><img src="a.png" usemap="#m"><map name="m">` + area + `</map><img src="b.png" usemap="#n"><map name="n">` + area + `</map></body></html>`, false},
		{"id only", `<html><body><img src="a.png" usemap="#m"><map id="m">` + area + `</map></body></html>`, true},
		{"usemap without hash", `<html><body><img src="a.png" usemap="m"><map name="m">` + area + `</map></body></html>`, true},
		{"unrelated map", `<html><body><map name="n">` + area + `</map><img src="a.png" usemap="#m"><map name="m">` + area + `</map></body></html>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractString(t, tt.doc, ExtractOptions{})
			if tt.ok {
				if err != nil {
					t.Fatalf("Extract: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrExtraction) {
				t.Fatalf("err = %v, want ExtractionError", err)
			}
		})
	}
}

func TestExtractNoClickableArea(t *testing.T) {
	doc := mapDoc(`<area coords="0,0,1,1" href="#nowhere">`)
	_, err := extractString(t, doc, ExtractOptions{})
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}

	_, err = extractString(t, mapDoc(""), ExtractOptions{})
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("empty map: err = %v, want ExtractionError", err)
	}
}

func TestExtractMissingImageSource(t *testing.T) {
	doc := `<html><body><img usemap="#m"><map name="m"><area coords="0,0,1,1" href="https://x"></map></body></html>`
	_, err := extractString(t, doc, ExtractOptions{})
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("err = %v, want ImageNotFoundError", err)
	}
}

func TestExtractTitleFallsBackToAlt(t *testing.T) {
	m, err := extractString(t, mapDoc(`<area coords="0,0,1,1" href="https://x" alt="Alt text">`), ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if m.Regions[0].Title != "Alt text" {
		t.Errorf("Title = %q", m.Regions[0].Title)
	}
}

func TestExtractEncoding(t *testing.T) {
	// "Café" in windows-1252.
	doc := []byte("<html><head><title>Caf\xe9</title></head><body>" +
		`<img src="a.png" usemap="#m"><map name="m"><area coords="0,0,1,1" href="https://x"></map></body></html>`)

	m, err := Extract(bytes.NewReader(doc), ExtractOptions{Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if m.Title != "Café" {
		t.Errorf("Title = %q, want Café", m.Title)
	}

	_, err = Extract(bytes.NewReader(doc), ExtractOptions{Encoding: "no-such-charset"})
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("err = %v, want ExtractionError", err)
	}
}

func TestExtractMetaCharset(t *testing.T) {
	doc := []byte(`<html><head><meta charset="iso-8859-1"><title>Ni` + "\xf1" + `o</title></head><body>` +
		`<img src="a.png" usemap="#m"><map name="m"><area coords="0,0,1,1" href="https://x"></map></body></html>`)
	m, err := Extract(bytes.NewReader(doc), ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if m.Title != "Niño" {
		t.Errorf("Title = %q, want Niño", m.Title)
	}
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.html"), ExtractOptions{})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("err = %v, want InputNotFoundError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause not preserved: %v", err)
	}
}

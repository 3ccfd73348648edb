package click2pptx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// AnchorPolicy decides what happens to an area whose in-page anchor has
// no external link after it.
type AnchorPolicy string

const (
	// AnchorSkip drops the area and logs it.
	AnchorSkip AnchorPolicy = "skip"
	// AnchorError fails the extraction with a MalformedRegionError.
	AnchorError AnchorPolicy = "error"
)

// ExtractOptions configures Extract.
type ExtractOptions struct {
	// Encoding overrides charset detection with a WHATWG encoding label
	// such as "windows-1252". Empty means sniff the BOM and <meta charset>.
	Encoding string
	// UnresolvedAnchors defaults to AnchorSkip.
	UnresolvedAnchors AnchorPolicy
	Logger            *slog.Logger
}

// ImageMap is the result of extraction.
type ImageMap struct {
	// Regions in <area> document order, without skipped areas.
	Regions []ClickableRegion
	// ImageRef is the src of the image bound to the map.
	ImageRef string
	MapName  string
	// Title is the document <title>, if any.
	Title string
	// Skipped holds the indices of areas dropped by AnchorSkip.
	Skipped []int
}

// ExtractFile reads and extracts an HTML file. A missing or unreadable
// file is an InputNotFoundError.
func ExtractFile(path string, opts ExtractOptions) (*ImageMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindInputNotFound, path, err)
	}
	defer f.Close()
	return Extract(f, opts)
}

// Extract parses an HTML document and returns the regions of its single
// image map together with the reference of the image bound to it.
func Extract(r io.Reader, opts ExtractOptions) (*ImageMap, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	policy := opts.UnresolvedAnchors
	if policy == "" {
		policy = AnchorSkip
	}

	src, err := decodeHTML(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(src)
	if err != nil {
		return nil, newError(KindExtraction, "failed to parse HTML", err)
	}

	img, m, err := findImageMap(doc)
	if err != nil {
		return nil, err
	}

	out := &ImageMap{
		MapName: mapName(m),
		Title:   findTitle(doc),
	}
	anchors := buildAnchorIndex(doc)

	for i, area := range collectAreas(m) {
		region, ok, err := parseArea(area, i, anchors, policy)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info("skipping area without external link", "area", i, "href", attr(area, "href"))
			out.Skipped = append(out.Skipped, i)
			continue
		}
		out.Regions = append(out.Regions, region)
	}

	if len(out.Regions) == 0 {
		return nil, newError(KindExtraction, fmt.Sprintf("no clickable area in map %q", out.MapName), nil)
	}

	out.ImageRef = strings.TrimSpace(attr(img, "src"))
	if out.ImageRef == "" {
		return nil, newError(KindImageNotFound, "image bound to the map has no src", nil)
	}

	logger.Debug("extracted image map", "map", out.MapName, "regions", len(out.Regions), "skipped", len(out.Skipped))
	return out, nil
}

// decodeHTML converts the input to UTF-8.
func decodeHTML(r io.Reader, label string) (io.Reader, error) {
	if label != "" {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, newError(KindExtraction, fmt.Sprintf("unknown input encoding %q", label), err)
		}
		return enc.NewDecoder().Reader(r), nil
	}
	rd, err := charset.NewReader(r, "")
	if err != nil {
		return nil, newError(KindExtraction, "failed to detect input encoding", err)
	}
	return rd, nil
}

// findImageMap returns the single <img usemap>/<map> pair of the document.
func findImageMap(doc *html.Node) (*html.Node, *html.Node, error) {
	maps := make(map[string][]*html.Node)
	var imgs []*html.Node

	walk(doc, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Map:
			if name := mapName(n); name != "" {
				maps[name] = append(maps[name], n)
			}
		case atom.Img:
			if attr(n, "usemap") != "" {
				imgs = append(imgs, n)
			}
		}
	})

	type pair struct{ img, m *html.Node }
	var pairs []pair
	for _, img := range imgs {
		name := strings.TrimPrefix(strings.TrimSpace(attr(img, "usemap")), "#")
		for _, m := range maps[name] {
			pairs = append(pairs, pair{img, m})
		}
	}

	if len(pairs) != 1 {
		return nil, nil, newError(KindExtraction, fmt.Sprintf("ambiguous or missing image map: found %d image/map pairs", len(pairs)), nil)
	}
	return pairs[0].img, pairs[0].m, nil
}

// mapName is the map's name attribute, falling back to its id.
func mapName(m *html.Node) string {
	if name := strings.TrimSpace(attr(m, "name")); name != "" {
		return name
	}
	return strings.TrimSpace(attr(m, "id"))
}

func collectAreas(m *html.Node) []*html.Node {
	var areas []*html.Node
	walk(m, func(n *html.Node) {
		if n.DataAtom == atom.Area {
			areas = append(areas, n)
		}
	})
	return areas
}

// parseArea converts one <area>. ok is false when the area is skipped
// under AnchorSkip.
func parseArea(area *html.Node, index int, anchors map[string]string, policy AnchorPolicy) (ClickableRegion, bool, error) {
	shape := strings.ToLower(strings.TrimSpace(attr(area, "shape")))
	switch shape {
	case "", "rect", "rectangle":
	default:
		return ClickableRegion{}, false, regionError(KindUnsupportedShape, index, fmt.Sprintf("shape %q", attr(area, "shape")))
	}

	bounds, err := parseCoords(attr(area, "coords"))
	if err != nil {
		return ClickableRegion{}, false, regionError(KindMalformedRegion, index, err.Error())
	}

	href := strings.TrimSpace(attr(area, "href"))
	if href == "" {
		return ClickableRegion{}, false, regionError(KindMalformedRegion, index, "empty href")
	}

	link := href
	if strings.HasPrefix(href, "#") {
		target, found := anchors[strings.TrimPrefix(href, "#")]
		if !found {
			if policy == AnchorError {
				what := "anchor"
				if IsFreeplaneAnchor(href) {
					what = "Freeplane node"
				}
				return ClickableRegion{}, false, regionError(KindMalformedRegion, index, fmt.Sprintf("%s %s has no external link", what, href))
			}
			return ClickableRegion{}, false, nil
		}
		link = target
	}
	if !pptx.IsSafeHyperlink(link) {
		return ClickableRegion{}, false, regionError(KindMalformedRegion, index, fmt.Sprintf("unsafe link %q", link))
	}

	title := strings.TrimSpace(attr(area, "title"))
	if title == "" {
		title = strings.TrimSpace(attr(area, "alt"))
	}

	return ClickableRegion{
		Shape:  ShapeRect,
		Bounds: bounds,
		Link:   link,
		Title:  title,
		Index:  index,
	}, true, nil
}

// parseCoords parses "x1,y1,x2,y2".
func parseCoords(coords string) (Bounds, error) {
	if strings.TrimSpace(coords) == "" {
		return Bounds{}, fmt.Errorf("missing coords")
	}
	parts := strings.Split(coords, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("coords %q: want 4 integers, got %d values", coords, len(parts))
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Bounds{}, fmt.Errorf("coords %q: %q is not an integer", coords, strings.TrimSpace(p))
		}
		v[i] = n
	}
	return NewBounds(v[0], v[1], v[2], v[3])
}

// findTitle extracts the <title> text.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// walk visits element nodes in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

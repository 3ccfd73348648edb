package pptx

import (
	"encoding/hex"
	"net/url"
	"strings"
)

// Color is an upper-case ARGB hex string such as "FF000000".
type Color struct {
	ARGB string
}

// ColorBlack is what NewColor returns for input it cannot parse.
var ColorBlack = Color{ARGB: "FF000000"}

// NewColor parses "#RRGGBB", "RRGGBB" or "AARRGGBB". Anything else is black.
func NewColor(s string) Color {
	s = strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(s) == 6 {
		s = "FF" + s
	}
	if _, ok := argbBytes(s); !ok {
		return ColorBlack
	}
	return Color{ARGB: s}
}

func argbBytes(s string) ([4]byte, bool) {
	var b [4]byte
	if len(s) != 8 || strings.ToUpper(s) != s {
		return b, false
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return b, false
	}
	return b, true
}

func isValidARGB(s string) bool {
	_, ok := argbBytes(s)
	return ok
}

func (c Color) channel(i int) uint8 {
	b, _ := argbBytes(c.ARGB)
	return b[i]
}

// GetAlpha returns the alpha channel; 255 is opaque.
func (c Color) GetAlpha() uint8 { return c.channel(0) }

// GetRed returns the red channel.
func (c Color) GetRed() uint8 { return c.channel(1) }

// GetGreen returns the green channel.
func (c Color) GetGreen() uint8 { return c.channel(2) }

// GetBlue returns the blue channel.
func (c Color) GetBlue() uint8 { return c.channel(3) }

// FillType selects how a shape interior is painted.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
)

// Fill is a shape interior. A nil *Fill and FillNone both mean no fill.
type Fill struct {
	Type  FillType
	Color Color
}

// BorderStyle selects how a shape outline is drawn.
type BorderStyle string

const (
	BorderNone  BorderStyle = "none"
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
)

// Border is a shape outline; Width is EMU.
type Border struct {
	Style BorderStyle
	Width int64
	Color Color
}

// Hyperlink is the action run when a shape is clicked: an external URL,
// or a jump to a 1-based slide number when IsInternal is set.
type Hyperlink struct {
	URL         string
	Tooltip     string
	IsInternal  bool
	SlideNumber int
}

// NewHyperlink returns nil when rawURL fails IsSafeHyperlink.
func NewHyperlink(rawURL string) *Hyperlink {
	if !IsSafeHyperlink(rawURL) {
		return nil
	}
	return &Hyperlink{URL: strings.TrimSpace(rawURL)}
}

// NewInternalHyperlink jumps to a 1-based slide number.
func NewInternalHyperlink(slideNumber int) *Hyperlink {
	return &Hyperlink{IsInternal: true, SlideNumber: slideNumber}
}

// unsafeSchemes run or embed content instead of navigating.
var unsafeSchemes = map[string]bool{
	"javascript": true,
	"vbscript":   true,
	"data":       true,
	"file":       true,
}

// IsSafeHyperlink reports whether rawURL is non-empty, parses, and does not
// use one of the javascript, vbscript, data or file schemes.
func IsSafeHyperlink(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	return err == nil && !unsafeSchemes[strings.ToLower(u.Scheme)]
}

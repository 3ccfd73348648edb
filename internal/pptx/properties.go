package pptx

// DocumentLayout is the slide size shared by every slide, in EMU.
type DocumentLayout struct {
	CX   int64
	CY   int64
	Name string
}

// Layout names accepted by SetLayout, plus LayoutCustom.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutLetter      = "letter"
	LayoutCustom      = "custom"
)

// Bounds of a slide side accepted by PowerPoint (ST_SlideSizeCoordinate),
// in EMU.
const (
	MinSlideSize int64 = 914400
	MaxSlideSize int64 = 51206400
)

type presetSize struct {
	cx, cy int64
	// sldSz is the <p:sldSz type> value; PowerPoint has no enumerated
	// type for the widescreen sizes.
	sldSz string
}

var presets = map[string]presetSize{
	LayoutScreen4x3:   {9144000, 6858000, "screen4x3"},
	LayoutScreen16x9:  {12192000, 6858000, LayoutCustom},
	LayoutScreen16x10: {10972800, 6858000, LayoutCustom},
	LayoutA4:          {9906000, 6858000, "A4"},
	LayoutLetter:      {9144000, 6858000, "letter"},
}

// NewDocumentLayout returns the 4:3 screen size.
func NewDocumentLayout() *DocumentLayout {
	p := presets[LayoutScreen4x3]
	return &DocumentLayout{CX: p.cx, CY: p.cy, Name: LayoutScreen4x3}
}

// IsKnownLayout reports whether SetLayout accepts name.
func IsKnownLayout(name string) bool {
	_, ok := presets[name]
	return ok
}

// SetLayout switches to a preset size. Unknown names are ignored.
func (dl *DocumentLayout) SetLayout(name string) {
	if p, ok := presets[name]; ok {
		dl.CX, dl.CY, dl.Name = p.cx, p.cy, name
	}
}

// SetCustomLayout sets an explicit size. A non-positive axis keeps the
// 4:3 default for that axis.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	def := presets[LayoutScreen4x3]
	if cx <= 0 {
		cx = def.cx
	}
	if cy <= 0 {
		cy = def.cy
	}
	dl.CX, dl.CY, dl.Name = cx, cy, LayoutCustom
}

func (dl *DocumentLayout) sldSzType() string {
	if p, ok := presets[dl.Name]; ok {
		return p.sldSz
	}
	return LayoutCustom
}

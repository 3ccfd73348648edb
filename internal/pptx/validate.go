package pptx

import (
	"errors"
	"fmt"
)

// Validate reports every structural problem that would make the written
// package unreadable or let it carry an unsafe click action. The result
// joins one error per problem.
func (p *Presentation) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.properties == nil {
		fail("document properties missing")
	}
	switch {
	case p.layout == nil:
		fail("slide size missing")
	case !slideSideOK(p.layout.CX) || !slideSideOK(p.layout.CY):
		fail("slide size %dx%d EMU outside %d..%d", p.layout.CX, p.layout.CY, MinSlideSize, MaxSlideSize)
	}
	if len(p.slides) == 0 {
		fail("no slides")
	}

	for si, s := range p.slides {
		for i, sh := range s.shapes {
			where := fmt.Sprintf("slide %d shape %d", si+1, i+1)
			if sh == nil {
				fail("%s: nil", where)
				continue
			}
			if sh.GetWidth() < 0 || sh.GetHeight() < 0 {
				fail("%s: negative size %dx%d", where, sh.GetWidth(), sh.GetHeight())
			}
			if err := checkLink(sh.GetHyperlink(), len(p.slides)); err != nil {
				fail("%s: %w", where, err)
			}
			if err := checkShape(sh); err != nil {
				fail("%s: %w", where, err)
			}
		}
	}
	return errors.Join(errs...)
}

func slideSideOK(v int64) bool { return v >= MinSlideSize && v <= MaxSlideSize }

func checkLink(h *Hyperlink, slides int) error {
	switch {
	case h == nil:
		return nil
	case h.IsInternal:
		if h.SlideNumber < 1 || h.SlideNumber > slides {
			return fmt.Errorf("jump to missing slide %d", h.SlideNumber)
		}
	case !IsSafeHyperlink(h.URL):
		return fmt.Errorf("refused hyperlink target %q", h.URL)
	}
	return nil
}

func checkShape(sh Shape) error {
	switch sh := sh.(type) {
	case *DrawingShape:
		if sh.data == nil {
			return errors.New("picture has no image data")
		}
		if _, ok := imageExtensions[sh.mimeType]; sh.mimeType != "" && !ok {
			return fmt.Errorf("unsupported image type %q", sh.mimeType)
		}
	case *AutoShape:
		if f := sh.fill; f != nil && f.Type == FillSolid && !isValidARGB(f.Color.ARGB) {
			return fmt.Errorf("fill color %q is not ARGB", f.Color.ARGB)
		}
		if b := sh.border; b != nil && b.Style != BorderNone && !isValidARGB(b.Color.ARGB) {
			return fmt.Errorf("outline color %q is not ARGB", b.Color.ARGB)
		}
	}
	return nil
}

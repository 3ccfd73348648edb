package pptx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// part is one entry of the OPC package.
type part struct {
	name string
	// contentType is written as an Override; empty when an extension
	// Default covers the part (rels, media).
	contentType string
	data        []byte
}

// packageWriter serialises one presentation. Media numbering is fixed
// when the writer is created so slide rels and media parts agree.
type packageWriter struct {
	pres  *Presentation
	media []*DrawingShape
	index map[*DrawingShape]int // 1-based media number
}

func newPackageWriter(p *Presentation) *packageWriter {
	w := &packageWriter{pres: p, index: make(map[*DrawingShape]int)}
	for _, s := range p.slides {
		for _, ds := range s.pictures() {
			w.media = append(w.media, ds)
			w.index[ds] = len(w.media)
		}
	}
	return w
}

// Save writes p to path through a temporary file in the same directory,
// so path either holds a complete document or is left untouched.
// Missing parent directories are created.
func (p *Presentation) Save(path string) error {
	if p == nil {
		return errors.New("presentation is nil")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".pptx-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	_, err = p.WriteTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close file: %w", cerr)
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// WriteTo writes p as a PPTX package and returns the number of bytes
// written. Entries carry no modification time, so equal presentations
// produce equal bytes.
func (p *Presentation) WriteTo(out io.Writer) (int64, error) {
	if p == nil {
		return 0, errors.New("presentation is nil")
	}
	w := newPackageWriter(p)
	parts := w.parts()

	cw := &countingWriter{w: out}
	zw := zip.NewWriter(cw)
	if err := writeEntry(zw, "[Content_Types].xml", w.contentTypes(parts)); err != nil {
		return cw.n, err
	}
	for _, pt := range parts {
		if err := writeEntry(zw, pt.name, pt.data); err != nil {
			return cw.n, err
		}
	}
	err := zw.Close()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// parts lists every entry after [Content_Types].xml, in write order.
func (w *packageWriter) parts() []part {
	parts := []part{
		{name: "_rels/.rels", data: w.rootRels()},
		{name: "docProps/app.xml", contentType: ctExtProps, data: w.appProperties()},
		{name: "docProps/core.xml", contentType: ctCoreProps, data: w.coreProperties()},
		{name: "ppt/presentation.xml", contentType: ctPresentation, data: w.presentationXML()},
		{name: "ppt/_rels/presentation.xml.rels", data: w.presentationRels()},
		{name: "ppt/presProps.xml", contentType: ctPresProps, data: presPropsXML()},
		{name: "ppt/viewProps.xml", contentType: ctViewProps, data: viewPropsXML()},
		{name: "ppt/tableStyles.xml", contentType: ctTableStyles, data: tableStylesXML()},
		{name: "ppt/slideMasters/slideMaster1.xml", contentType: ctSlideMaster, data: slideMasterXML()},
		{name: "ppt/slideMasters/_rels/slideMaster1.xml.rels", data: slideMasterRels()},
		{name: "ppt/slideLayouts/slideLayout1.xml", contentType: ctSlideLayout, data: slideLayoutXML()},
		{name: "ppt/slideLayouts/_rels/slideLayout1.xml.rels", data: slideLayoutRels()},
		{name: "ppt/theme/theme1.xml", contentType: ctTheme, data: themeXML()},
	}

	for i, s := range w.pres.slides {
		rels, ids := w.slideRelationships(s)
		parts = append(parts,
			part{name: fmt.Sprintf("ppt/slides/slide%d.xml", i+1), contentType: ctSlide, data: w.slideXML(s, ids)},
			part{name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), data: rels.marshal()},
		)
	}

	for _, ds := range w.media {
		parts = append(parts, part{name: w.mediaPath(ds), data: ds.data})
	}
	return parts
}

// mediaPath is the package path of a picture's payload.
func (w *packageWriter) mediaPath(ds *DrawingShape) string {
	return fmt.Sprintf("ppt/media/image%d.%s", w.index[ds], imageExtension(ds.mimeType))
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

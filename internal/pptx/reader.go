package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// packageReader reads the subset of PPTX this package writes: slide size,
// document properties, pictures and preset shapes with click hyperlinks.
// Other parts of a document are ignored.
type packageReader struct {
	files map[string]*zip.File
}

// Open reads a PPTX file.
func Open(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadFrom(f, info.Size())
}

// ReadFrom reads a PPTX package of the given size.
func ReadFrom(ra io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 || size > maxPackageSize {
		return nil, fmt.Errorf("package size %d outside 1..%d bytes", size, maxPackageSize)
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("not a PPTX package: %w", err)
	}
	if len(zr.File) > maxParts {
		return nil, fmt.Errorf("package has %d parts, limit %d", len(zr.File), maxParts)
	}

	r := &packageReader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}
	return r.read()
}

func (r *packageReader) read() (*Presentation, error) {
	pres := &Presentation{
		properties: NewDocumentProperties(),
		layout:     NewDocumentLayout(),
	}

	r.readProperties(pres)

	slideIDs, err := r.readPresentation(pres)
	if err != nil {
		return nil, err
	}
	presRels, err := r.readRelationships("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for _, id := range slideIDs {
		rel := presRels.byID(id)
		if rel == nil || rel.Target == "" {
			continue
		}
		target := resolveRelativePath("ppt", rel.Target)
		slide, err := r.readSlide(target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}
	return pres, nil
}

var errMissingPart = errors.New("missing from package")

// Limits on what ReadFrom accepts.
const (
	maxPackageSize = 200 << 20
	maxPartSize    = 50 << 20
	maxParts       = 10000
)

// readPart returns the bytes of one package entry.
func (r *packageReader) readPart(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s: %w", name, errMissingPart)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("part %s: declared size %d exceeds %d bytes", name, f.UncompressedSize64, maxPartSize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", name, err)
	}
	defer rc.Close()

	// The header size is not trusted; read one byte past the limit.
	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("part %s: exceeds %d bytes", name, maxPartSize)
	}
	return data, nil
}

// decodePart unmarshals an XML part into v.
func (r *packageReader) decodePart(name string, v any) error {
	data, err := r.readPart(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("part %s: %w", name, err)
	}
	return nil
}

// readRelationships returns the relationships of a part. A missing rels
// part means no relationships.
func (r *packageReader) readRelationships(name string) (relList, error) {
	var rels xmlRelationships
	err := r.decodePart(name, &rels)
	if errors.Is(err, errMissingPart) {
		return nil, nil
	}
	return rels.Relationships, err
}

type presentationForRead struct {
	SldIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz *struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
}

// readPresentation sets the slide size and returns the slide relationship
// IDs in order.
func (r *packageReader) readPresentation(pres *Presentation) ([]string, error) {
	var p presentationForRead
	if err := r.decodePart("ppt/presentation.xml", &p); err != nil {
		return nil, err
	}
	if sz := p.SldSz; sz != nil {
		pres.layout.SetCustomLayout(sz.CX, sz.CY)
		if ps, ok := presets[sz.Type]; ok && ps.sldSz == sz.Type {
			pres.layout.Name = sz.Type
		}
	}
	ids := make([]string, len(p.SldIDs))
	for i, s := range p.SldIDs {
		ids[i] = s.RID
	}
	return ids, nil
}

// corePropertiesForRead matches docProps/core.xml by local name, whatever
// prefixes the producer used.
type corePropertiesForRead struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Title          string `xml:"title"`
	Description    string `xml:"description"`
	Subject        string `xml:"subject"`
	Keywords       string `xml:"keywords"`
	Category       string `xml:"category"`
	Revision       string `xml:"revision"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

type appPropertiesForRead struct {
	Application string `xml:"Application"`
	Company     string `xml:"Company"`
}

// readProperties fills pres.properties. Both parts are optional and a
// broken one is ignored.
func (r *packageReader) readProperties(pres *Presentation) {
	props := pres.properties

	var cp corePropertiesForRead
	if r.decodePart("docProps/core.xml", &cp) == nil {
		props.Creator = cp.Creator
		props.LastModifiedBy = cp.LastModifiedBy
		props.Title = cp.Title
		props.Description = cp.Description
		props.Subject = cp.Subject
		props.Keywords = cp.Keywords
		props.Category = cp.Category
		props.Revision = cp.Revision
		if t, ok := parseW3CDate(cp.Created); ok {
			props.Created = t
		}
		if t, ok := parseW3CDate(cp.Modified); ok {
			props.Modified = t
		}
	}

	var ap appPropertiesForRead
	if r.decodePart("docProps/app.xml", &ap) == nil {
		props.Application = ap.Application
		props.Company = ap.Company
	}
}

func parseW3CDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	return t, err == nil
}

package click2pptx

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// Option configures a Converter.
type Option func(*Converter)

// WithClock replaces time.Now for output names and document dates.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithPreview makes Convert also render the slide to path, with hotspots
// outlined, width pixels wide (zero means 960). The preview is written
// before the presentation, and a conversion that fails leaves neither.
func WithPreview(path string, width int) Option {
	return func(c *Converter) { c.previewPath, c.previewWidth = path, width }
}

// Converter runs the whole HTML to PPTX pipeline.
type Converter struct {
	cfg          Config
	logger       *slog.Logger
	now          func() time.Time
	previewPath  string
	previewWidth int
}

// New creates a converter. Unset configuration fields take their
// defaults; a nil logger discards everything.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.applyDefaults()
	c := &Converter{cfg: cfg, logger: logger, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Converter) Config() Config { return c.cfg }

// Result describes a finished conversion.
type Result struct {
	InputPath  string
	OutputPath string
	// ImagePath is the embedded image file, or "data URI".
	ImagePath string
	Regions   []ClickableRegion
	// Skipped holds the indices of areas dropped for lack of a link.
	Skipped  []int
	Document *pptx.Presentation
}

// Convert converts inputPath to outputPath. An empty inputPath selects
// the first HTML file of the configured work directory; an empty
// outputPath generates a timestamped name in the output directory. On
// error nothing is written.
func (c *Converter) Convert(inputPath, outputPath string) (*Result, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	now := c.now()

	if inputPath == "" {
		found, err := FindHTML(c.cfg.WorkDir)
		if err != nil {
			return nil, err
		}
		inputPath = found
		c.logger.Debug("discovered input", "path", inputPath)
	} else if info, err := os.Stat(inputPath); err != nil {
		return nil, newError(KindInputNotFound, inputPath, err)
	} else if info.IsDir() {
		return nil, newError(KindInputNotFound, inputPath+" is a directory", nil)
	}

	m, err := ExtractFile(inputPath, ExtractOptions{
		Encoding:          c.cfg.InputEncoding,
		UnresolvedAnchors: c.cfg.UnresolvedAnchors,
		Logger:            c.logger,
	})
	if err != nil {
		return nil, err
	}

	img, err := LoadImage(m.ImageRef, filepath.Dir(inputPath))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loaded image", "path", img.Origin, "format", img.Format, "width", img.Width, "height", img.Height)

	opts := c.cfg.buildOptions()
	if opts.Title == "" {
		opts.Title = m.Title
	}
	opts.Now = now
	doc, err := BuildDocument(img, m.Regions, opts)
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		outputPath = OutputPath(c.cfg.OutputDir, c.cfg.OutputPrefix, now)
	}
	if c.previewPath != "" {
		if err := writePreview(doc, c.previewPath, c.previewWidth); err != nil {
			return nil, err
		}
		c.logger.Info("wrote preview", "path", c.previewPath)
	}
	if err := doc.Save(outputPath); err != nil {
		if c.previewPath != "" {
			os.Remove(c.previewPath)
		}
		return nil, newError(KindDocumentWrite, outputPath, err)
	}

	c.logger.Info("generated presentation",
		"input", inputPath,
		"output", outputPath,
		"regions", len(m.Regions),
		"skipped", len(m.Skipped))

	return &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		ImagePath:  img.Origin,
		Regions:    m.Regions,
		Skipped:    m.Skipped,
		Document:   doc,
	}, nil
}

// WritePreview renders the slide with every hotspot outlined and numbered,
// as JPEG for a .jpg or .jpeg path and PNG otherwise. Width is in pixels;
// zero means 960.
func (r *Result) WritePreview(path string, width int) error {
	return writePreview(r.Document, path, width)
}

func writePreview(doc *pptx.Presentation, path string, width int) error {
	opts := &pptx.RenderOptions{
		Width:             width,
		OutlineHyperlinks: true,
		LabelHyperlinks:   true,
	}
	if err := doc.SaveSlideAsImage(0, path, opts); err != nil {
		return newError(KindDocumentWrite, path, err)
	}
	return nil
}

package click2pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/click2pptx/internal/pptx"
)

// Config is the converter configuration, usually loaded from YAML.
type Config struct {
	// WorkDir is searched for an input file when none is given.
	// Empty means the current directory.
	WorkDir string `yaml:"work_dir"`
	// OutputDir receives generated output names.
	OutputDir    string `yaml:"output_dir"`
	OutputPrefix string `yaml:"output_prefix"`
	// Title overrides the HTML <title> in the document properties.
	Title             string       `yaml:"title"`
	InputEncoding     string       `yaml:"input_encoding"`
	UnresolvedAnchors AnchorPolicy `yaml:"unresolved_anchors"` // skip | error
	Slide             SlideConfig  `yaml:"slide"`
}

// SlideConfig controls the slide size and picture placement.
type SlideConfig struct {
	Layout    string        `yaml:"layout"` // screen4x3 | screen16x9 | screen16x10 | A4 | letter | image
	MarginPt  float64       `yaml:"margin_pt"`
	Placement PlacementMode `yaml:"placement"` // fit | native
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindConfig, path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, newError(KindConfig, path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.OutputPrefix == "" {
		c.OutputPrefix = "mind_map_clickable_"
	}
	if c.UnresolvedAnchors == "" {
		c.UnresolvedAnchors = AnchorSkip
	}
	if c.Slide.Layout == "" {
		c.Slide.Layout = pptx.LayoutScreen4x3
	}
	if c.Slide.Placement == "" {
		c.Slide.Placement = PlacementFit
	}
}

// Validate reports the first invalid setting as a ConfigError.
func (c *Config) Validate() error {
	switch c.UnresolvedAnchors {
	case AnchorSkip, AnchorError:
	default:
		return newError(KindConfig, fmt.Sprintf("unresolved_anchors: %q is not skip or error", c.UnresolvedAnchors), nil)
	}
	if c.Slide.Layout != LayoutImage && !pptx.IsKnownLayout(c.Slide.Layout) {
		return newError(KindConfig, fmt.Sprintf("slide.layout: unknown layout %q", c.Slide.Layout), nil)
	}
	switch c.Slide.Placement {
	case PlacementFit, PlacementNative:
	default:
		return newError(KindConfig, fmt.Sprintf("slide.placement: %q is not fit or native", c.Slide.Placement), nil)
	}
	if c.Slide.MarginPt < 0 {
		return newError(KindConfig, fmt.Sprintf("slide.margin_pt: %g is negative", c.Slide.MarginPt), nil)
	}
	if c.InputEncoding != "" {
		if _, err := htmlindex.Get(c.InputEncoding); err != nil {
			return newError(KindConfig, fmt.Sprintf("input_encoding: %q", c.InputEncoding), err)
		}
	}
	if strings.ContainsAny(c.OutputPrefix, `/\`) {
		return newError(KindConfig, fmt.Sprintf("output_prefix: %q contains a path separator", c.OutputPrefix), nil)
	}
	return nil
}

// buildOptions converts the slide settings for BuildDocument.
func (c *Config) buildOptions() BuildOptions {
	return BuildOptions{
		Layout:    c.Slide.Layout,
		Margin:    pptx.Point(c.Slide.MarginPt),
		Placement: c.Slide.Placement,
		Title:     c.Title,
	}
}

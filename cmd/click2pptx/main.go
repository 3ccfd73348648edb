// Command click2pptx converts a Freeplane HTML image-map export into a
// one-slide PowerPoint file with a transparent, hyperlinked rectangle over
// every clickable region.
//
// Usage:
//
//	click2pptx                              # first *.html here -> output/mind_map_clickable_<ts>.pptx
//	click2pptx -i map.html -o map.pptx      # explicit input and output
//	click2pptx -config click2pptx.yaml      # slide layout, margins, output naming
//	click2pptx -i map.html -preview map.png # also render the slide with hotspots outlined
//	click2pptx -inspect map.pptx            # list the hotspots of a generated file
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/VantageDataChat/click2pptx"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("click2pptx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var input, output string
	fs.StringVar(&input, "i", "", "source HTML file (default: first *.html in the work directory)")
	fs.StringVar(&input, "input", "", "same as -i")
	fs.StringVar(&output, "o", "", "destination PPTX file (default: output/mind_map_clickable_<timestamp>.pptx)")
	fs.StringVar(&output, "output", "", "same as -o")
	configPath := fs.String("config", "", "path to a YAML configuration file")
	preview := fs.String("preview", "", "also render the slide with hotspots outlined to this path (.jpg/.jpeg for JPEG, else PNG)")
	previewWidth := fs.Int("preview-width", 960, "preview width in pixels")
	inspect := fs.String("inspect", "", "describe the hotspots of an existing PPTX and exit")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	version := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "click2pptx: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "click2pptx %s\n", click2pptx.Version)
		return 0
	}

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		fmt.Fprintf(stderr, "click2pptx: unknown log level %q\n", *logLevel)
		fs.Usage()
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := execute(logger, stdout, *configPath, input, output, *preview, *previewWidth, *inspect); err != nil {
		logger.Debug("click2pptx: failed", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func execute(logger *slog.Logger, stdout io.Writer, configPath, input, output, preview string, previewWidth int, inspect string) error {
	if inspect != "" {
		in, err := click2pptx.Inspect(inspect)
		if err != nil {
			return err
		}
		return in.WriteText(stdout)
	}

	cfg := click2pptx.DefaultConfig()
	if configPath != "" {
		loaded, err := click2pptx.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	opts := []click2pptx.Option{}
	if preview != "" {
		opts = append(opts, click2pptx.WithPreview(preview, previewWidth))
	}
	res, err := click2pptx.New(cfg, logger, opts...).Convert(input, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generated PPTX: %s\n", res.OutputPath)
	return nil
}

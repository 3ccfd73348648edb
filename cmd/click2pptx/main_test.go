package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setup copies the two-area fixture and its picture into a temp dir.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "two_areas.html"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "map.html"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 100, 100))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "square.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "click2pptx ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunConvert(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "map.pptx")
	preview := filepath.Join(dir, "map.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", filepath.Join(dir, "map.html"), "-o", out, "-preview", preview, "-preview-width", "320"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if want := "Generated PPTX: " + out + "\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	for _, p := range []string{out, preview} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}

	stdout.Reset()
	if code := run([]string{"-inspect", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("inspect exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 hotspot(s)") || !strings.Contains(stdout.String(), "https://b") {
		t.Errorf("inspect output:\n%s", stdout.String())
	}
}

func TestRunConfig(t *testing.T) {
	dir := setup(t)
	cfg := filepath.Join(dir, "c.yaml")
	yaml := "work_dir: " + dir + "\noutput_dir: " + filepath.Join(dir, "decks") + "\noutput_prefix: deck_\n"
	if err := os.WriteFile(cfg, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "decks", "deck_*.pptx"))
	if len(matches) != 1 {
		t.Errorf("outputs = %v, want one deck_*.pptx", matches)
	}
}

func TestRunFailure(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", filepath.Join(dir, "missing.html"), "-o", filepath.Join(dir, "x.pptx")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "InputNotFoundError") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Errorf("unknown flag: exit code = %d, want 2", code)
	}
	if code := run([]string{"extra"}, &stdout, &stderr); code != 2 {
		t.Errorf("extra argument: exit code = %d, want 2", code)
	}
	if code := run([]string{"-log-level", "verbose"}, &stdout, &stderr); code != 2 {
		t.Errorf("unknown log level: exit code = %d, want 2", code)
	}
}

func TestRunPreviewFailureWritesNothing(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "map.pptx")
	// A regular file where the preview's parent directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", filepath.Join(dir, "map.html"), "-o", out, "-preview", filepath.Join(blocker, "map.png")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "DocumentWriteError") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("%s exists after failed preview: %v", out, err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

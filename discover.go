package click2pptx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FindHTML returns the first .html or .htm file of dir in lexicographic
// name order. Extensions match case-insensitively; directories are
// ignored. Empty dir means the current directory.
func FindHTML(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", newError(KindInputNotFound, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".html", ".htm":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", newError(KindInputNotFound, "no .html or .htm file in "+dir, nil)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// OutputPath returns dir/<prefix><YYYYMMDD_HHMMSS>.pptx, with the
// timestamp taken in t's location.
func OutputPath(dir, prefix string, t time.Time) string {
	return filepath.Join(dir, prefix+t.Format("20060102_150405")+".pptx")
}

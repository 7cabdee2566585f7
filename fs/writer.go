// Package fs provides file-based storage for crawled pages.
package fs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webscrape"
)

// IndexFile is the leaf name used for a URL whose path is empty or "/".
const IndexFile = "index.html"

// URLToPath maps a URL to a file path under outputBase.
// Example: https://example.org/docs/api, "out" → out/example.org/docs/api
//
// The authority becomes a directory, the URL path becomes nested segments
// beneath it, and an empty or root path maps to index.html. A URL with no
// authority maps directly under outputBase. A non-empty query adds a hash
// suffix to the leaf so distinct queries land in distinct files.
func URLToPath(rawURL, outputBase string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webscrape.Errorf(webscrape.EINVALID, "invalid URL %q: %s", rawURL, err)
	}

	parts := []string{outputBase}
	if host := strings.ToLower(u.Host); host != "" {
		if !validSegment(host) {
			return "", webscrape.Errorf(webscrape.EINVALID, "path traversal in host of %q", rawURL)
		}
		parts = append(parts, host)
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		if !validSegment(seg) {
			return "", webscrape.Errorf(webscrape.EINVALID, "path traversal in %q", rawURL)
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		segments = []string{IndexFile}
	}

	if u.RawQuery != "" {
		leaf := segments[len(segments)-1]
		ext := path.Ext(leaf)
		segments[len(segments)-1] = fmt.Sprintf("%s_%016x%s", strings.TrimSuffix(leaf, ext), xxhash.Sum64String(u.RawQuery), ext)
	}

	return filepath.Join(append(parts, segments...)...), nil
}

func validSegment(seg string) bool {
	return seg != "." && seg != ".." && !strings.ContainsAny(seg, `\`+"\x00")
}

// Ensure Writer implements webscrape.Store at compile time.
var _ webscrape.Store = (*Writer)(nil)

// Writer writes page bodies verbatim to a directory tree.
//
// A page whose path is also the parent of another page is kept as
// index.html inside that directory: /docs is stored at docs/index.html
// once /docs/intro exists, whichever of the two is saved first.
type Writer struct {
	baseDir string

	// mu serializes changes to the directory layout.
	mu sync.Mutex
}

// NewWriter creates a new Writer that writes to the given base directory.
// An empty baseDir means the current working directory.
func NewWriter(baseDir string) *Writer {
	if baseDir == "" {
		baseDir = "."
	}
	return &Writer{baseDir: baseDir}
}

// Prepare creates the base directory and verifies it is writable.
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return webscrape.Errorf(webscrape.EINVALID, "create output directory %q: %s", w.baseDir, err)
	}
	f, err := os.CreateTemp(w.baseDir, ".webscrape-probe-*")
	if err != nil {
		return webscrape.Errorf(webscrape.EINVALID, "output directory %q is not writable: %s", w.baseDir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// Save writes the page body to its mapped path, replacing any existing
// file. The body is written to a temporary file first and renamed into
// place.
func (w *Writer) Save(ctx context.Context, page *webscrape.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := URLToPath(page.URL, w.baseDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}
	tmpName, err := writeTemp(w.baseDir, page.Body)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target, err := w.place(fullPath)
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// place creates the parent directories of fullPath and returns the file
// the page should be written to. Files standing where a directory is
// needed are moved to index.html inside a new directory of the same name.
// The caller must hold w.mu.
func (w *Writer) place(fullPath string) (string, error) {
	dir := filepath.Dir(fullPath)
	rel, err := filepath.Rel(w.baseDir, dir)
	if err != nil {
		return "", err
	}

	cur := w.baseDir
	for _, seg := range strings.Split(rel, string(filepath.Separator)) {
		if seg == "." || seg == "" {
			continue
		}
		cur = filepath.Join(cur, seg)
		info, err := os.Lstat(cur)
		if errors.Is(err, os.ErrNotExist) {
			break
		} else if err != nil {
			return "", err
		}
		if info.Mode().IsRegular() {
			if err := promote(cur); err != nil {
				return "", err
			}
		}
	}

	// Create parent directories
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
		return filepath.Join(fullPath, IndexFile), nil
	}
	return fullPath, nil
}

// promote turns the file at path into a directory holding the file's
// content as index.html.
func promote(path string) error {
	moved := path + ".webscrape-promote"
	if err := os.Rename(path, moved); err != nil {
		return err
	}
	if err := os.Mkdir(path, 0755); err != nil {
		_ = os.Rename(moved, path)
		return err
	}
	return os.Rename(moved, filepath.Join(path, IndexFile))
}

func writeTemp(dir string, body []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, ".webscrape-*.tmp")
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0644); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

package html

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/lekhak/core"
)

// Page is one session selected for static site generation.
type Page struct {
	// Path is the source session file, recorded in the manifest.
	Path string
	// Summary is the index label; empty falls back to the transcript title.
	Summary string
	// Transcript is the parsed session.
	Transcript *core.Transcript
}

// WriteSite writes a browsable static site into dir: one page-NNN.html per
// page plus an index.html linking them. Returns the manifest entries for the
// written pages, in page order.
func (r *Renderer) WriteSite(dir string, pages []Page) ([]core.ManifestEntry, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	entries := make([]core.ManifestEntry, 0, len(pages))
	for i, p := range pages {
		name := fmt.Sprintf("page-%03d.html", i+1)
		if err := r.writePage(filepath.Join(dir, name), p.Transcript); err != nil {
			return nil, err
		}
		entries = append(entries, core.NewManifestEntry(p.Transcript, p.Path, name, p.Summary))
	}

	indexPath := filepath.Join(dir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", indexPath, err)
	}
	defer f.Close()
	if err := r.RenderIndex(f, entries); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}

	return entries, nil
}

func (r *Renderer) writePage(path string, t *core.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := r.Render(f, t); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

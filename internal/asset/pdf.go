package asset

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderPDFPage rasterizes one page of a document. fitz documents are not
// safe to share across goroutines, so each render opens its own handle;
// the store's frame cache keeps this from being wasteful.
func renderPDFPage(path string, page int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("%s has %d pages, no page %d", path, doc.NumPage(), page)
	}

	img, err := doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering %s page %d: %w", path, page, err)
	}
	return img, nil
}

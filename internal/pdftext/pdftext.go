// Package pdftext extracts the embedded text layer of a PDF file.
//
// Only text that the PDF stores as text is returned. Scanned PDFs whose pages
// are images have no text layer and yield ErrNoText.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF parses but contains no extractable text.
var ErrNoText = errors.New("pdf has no text layer")

// Extractor reads the text layer of PDF files.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract opens path and returns the text of every page, pages separated by
// a newline. The context is checked between pages.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to get file info: %w", err)
	}

	return e.ExtractReader(ctx, f, info.Size())
}

// ExtractReader is Extract for an already-open document of the given size.
func (e *Extractor) ExtractReader(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed PDF: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}

		content, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	joined := strings.Join(pages, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", ErrNoText
	}
	return joined, nil
}

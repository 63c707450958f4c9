//go:build cgo

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// GosseractCompiled reports whether the in-process Tesseract binding is
// part of this build.
const GosseractCompiled = true

// gosseractRecognizer runs libtesseract in-process. A fresh client is created
// per call since clients are not safe for concurrent use.
type gosseractRecognizer struct {
	opts Options
}

func newGosseract(opts Options) (Recognizer, error) {
	return &gosseractRecognizer{opts: opts}, nil
}

// Recognize performs OCR on an encoded image.
func (g *gosseractRecognizer) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if g.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(g.opts.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(g.opts.PageSegMode)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode %d: %w", g.opts.PageSegMode, err)
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// Info reports the linked Tesseract version.
func (g *gosseractRecognizer) Info() Info {
	client := gosseract.NewClient()
	defer client.Close()

	return Info{
		Backend:      BackendGosseract,
		Available:    true,
		Version:      client.Version(),
		TessdataPath: g.opts.TessdataPrefix,
	}
}

//go:build !cgo

package ocr

import "fmt"

// GosseractCompiled reports whether the in-process Tesseract binding is
// part of this build.
const GosseractCompiled = false

func newGosseract(Options) (Recognizer, error) {
	return nil, fmt.Errorf("%w: gosseract requires a cgo build; use the cli backend", ErrBackendUnavailable)
}

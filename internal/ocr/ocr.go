package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Backend names accepted by New.
const (
	BackendAuto      = "auto"
	BackendGosseract = "gosseract"
	BackendCLI       = "cli"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendAuto, BackendGosseract, BackendCLI}

var (
	// ErrBackendUnavailable is returned when the requested engine binding
	// was not compiled in or cannot be started.
	ErrBackendUnavailable = errors.New("ocr backend unavailable")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown ocr backend")
)

// Recognizer extracts text from an encoded image.
type Recognizer interface {
	// Recognize runs OCR on image (PNG, JPEG, TIFF, BMP... bytes) using the
	// given Tesseract language code and returns the raw engine output.
	Recognize(ctx context.Context, image []byte, language string) (string, error)

	// Info describes the backend for diagnostics.
	Info() Info
}

// Options configures a Recognizer.
type Options struct {
	// TesseractCmd is the executable the cli backend runs.
	TesseractCmd string

	// TessdataPrefix is the traineddata directory; empty uses the engine default.
	TessdataPrefix string

	// PageSegMode is Tesseract's page segmentation mode (--psm).
	PageSegMode int
}

// Info contains information about the OCR subsystem.
type Info struct {
	Backend      string `json:"backend"`
	Available    bool   `json:"available"`
	Version      string `json:"version,omitempty"`
	Error        string `json:"error,omitempty"`
	TessdataPath string `json:"tessdata_path,omitempty"`
}

// New returns the Recognizer for backend. BackendAuto picks the in-process
// gosseract binding when it was compiled in and the cli backend otherwise.
func New(backend string, opts Options) (Recognizer, error) {
	switch backend {
	case BackendAuto, "":
		if GosseractCompiled {
			return newGosseract(opts)
		}
		return newCLI(opts), nil
	case BackendGosseract:
		return newGosseract(opts)
	case BackendCLI:
		return newCLI(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// CleanText strips the trailing newline and page separator Tesseract
// appends to its output. Interior text is left untouched, and text without
// trailing whitespace comes back unchanged.
func CleanText(text string) string {
	return strings.TrimRightFunc(text, unicode.IsSpace)
}

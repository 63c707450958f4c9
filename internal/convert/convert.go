// Package convert dispatches a source file to text extraction and writes the
// result as a Word document next to the source.
//
// A PDF goes through PDF text extraction, an image goes through OCR, and
// anything else is rejected. On success exactly one document is written at
// TargetPath(source), holding the extracted text as a single paragraph. The
// collaborators are interfaces so the dispatch can be tested without
// Tesseract or real PDFs.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/scan2docx/internal/imaging"
	"github.com/ironsheep/scan2docx/internal/languages"
	"github.com/ironsheep/scan2docx/internal/logging"
	"github.com/ironsheep/scan2docx/internal/ocr"
)

// DefaultDocumentExtension is the extension given to generated documents.
const DefaultDocumentExtension = ".docx"

var (
	// ErrNoFileSelected is returned when Convert is called without a source.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrUnsupportedFormat is returned for extensions that are neither PDF
	// nor a recognized image type. Nothing is written.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrConversionFailed wraps every collaborator failure (decode, OCR,
	// PDF parsing, document writing).
	ErrConversionFailed = errors.New("conversion failed")
)

// Recognizer runs OCR on an encoded image. ocr.Recognizer satisfies it.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, language string) (string, error)
}

// PDFExtractor returns the text content of a PDF file.
type PDFExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// DocumentWriter writes text as a single-paragraph document.
type DocumentWriter interface {
	Write(path, text string) error
}

// Request describes one conversion.
type Request struct {
	// Source is the path of the image or PDF.
	Source string

	// Language selects the OCR language. Ignored for PDFs. The zero value
	// means the default table entry.
	Language languages.Language
}

// Result describes a completed conversion.
type Result struct {
	Kind     Kind
	Source   string
	Target   string
	Text     string
	Language string
	Duration time.Duration
}

// Converter performs conversions. It is not safe for concurrent use; callers
// run one conversion at a time.
type Converter struct {
	recognizer Recognizer
	pdf        PDFExtractor
	writer     DocumentWriter

	cache      *imaging.ImageCache
	preprocess imaging.PreprocessOptions
	docExt     string
	log        *zap.SugaredLogger
}

// Option configures a Converter.
type Option func(*Converter)

// WithPreprocess sets the image cleanup applied before OCR.
func WithPreprocess(opts imaging.PreprocessOptions) Option {
	return func(c *Converter) { c.preprocess = opts }
}

// WithDocumentExtension overrides the ".docx" output extension.
func WithDocumentExtension(ext string) Option {
	return func(c *Converter) { c.docExt = ext }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Converter) { c.log = log }
}

// WithImageCache shares an image cache with the caller.
func WithImageCache(cache *imaging.ImageCache) Option {
	return func(c *Converter) { c.cache = cache }
}

// New creates a Converter from its three collaborators.
func New(recognizer Recognizer, pdf PDFExtractor, writer DocumentWriter, opts ...Option) *Converter {
	c := &Converter{
		recognizer: recognizer,
		pdf:        pdf,
		writer:     writer,
		cache:      imaging.NewImageCache(),
		docExt:     DefaultDocumentExtension,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetFor returns where a conversion of source would write.
func (c *Converter) TargetFor(source string) string {
	return TargetPath(source, c.docExt)
}

// Convert classifies req.Source, extracts its text and writes the document.
//
// # Errors
//
//   - ErrNoFileSelected when req.Source is empty
//   - ErrUnsupportedFormat when the extension is not PDF or an image type
//   - ErrConversionFailed and the collaborator error otherwise, joined as
//     fmt.Errorf("%w: %w", ...) so both match errors.Is
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	if req.Source == "" {
		return nil, ErrNoFileSelected
	}

	kind := Classify(req.Source)
	if kind == KindUnsupported {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, Extension(req.Source))
	}

	start := time.Now()
	res := &Result{
		Kind:   kind,
		Source: req.Source,
		Target: c.TargetFor(req.Source),
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		c.log.Debugw("extracting pdf text", "source", req.Source)
		text, err = c.pdf.Extract(ctx, req.Source)
	case KindImage:
		lang := req.Language
		if lang.Code == "" {
			lang = languages.Default()
		}
		res.Language = lang.Name
		text, err = c.recognizeImage(ctx, req.Source, lang.Code)
	}
	if err != nil {
		c.log.Warnw("extraction failed", "source", req.Source, "kind", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	if err := c.writer.Write(res.Target, text); err != nil {
		c.log.Warnw("document write failed", "target", res.Target, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	res.Text = text
	res.Duration = time.Since(start)
	c.log.Infow("converted", "source", res.Source, "target", res.Target, "kind", kind,
		"chars", len(text), "duration", res.Duration)
	return res, nil
}

// recognizeImage decodes the image, applies preprocessing and returns the
// recognized text with the engine's trailing newline removed.
func (c *Converter) recognizeImage(ctx context.Context, path, code string) (string, error) {
	defer c.cache.Evict(path)

	info, err := imaging.LoadImageInfo(c.cache, path)
	if err != nil {
		return "", err
	}
	c.log.Debugw("recognizing image", "source", path, "lang", code,
		"width", info.Width, "height", info.Height, "format", info.Format, "bytes", info.FileSizeBytes,
		"cached", c.cache.Len())

	img, err := c.cache.Load(path)
	if err != nil {
		return "", err
	}
	data, err := imaging.EncodePNG(imaging.Preprocess(img, c.preprocess))
	if err != nil {
		return "", err
	}

	raw, err := c.recognizer.Recognize(ctx, data, code)
	if err != nil {
		return "", err
	}
	return ocr.CleanText(raw), nil
}

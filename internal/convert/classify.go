package convert

import (
	"path/filepath"
	"strings"
)

// Kind is the conversion path a source file takes.
type Kind int

const (
	// KindUnsupported files are rejected without writing anything.
	KindUnsupported Kind = iota
	// KindPDF files go through PDF text extraction.
	KindPDF
	// KindImage files go through OCR.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

// PDFExtension is the extension routed to PDF extraction.
const PDFExtension = "pdf"

// ImageExtensions is the set of extensions routed to OCR.
var ImageExtensions = []string{"jpeg", "jfif", "webp", "jpg", "png", "jpe", "svg", "bmp", "tif", "tiff", "gif"}

var imageExtensions = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		m[ext] = struct{}{}
	}
	return m
}()

// Extension returns the text after the last "." in the file's base name, or
// "" when the base name has no dot. Dots in directory names are ignored.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// Classify picks the conversion path for path. Extensions are compared
// verbatim: "scan.PDF" and "photo.PNG" are unsupported.
func Classify(path string) Kind {
	ext := Extension(path)
	if ext == PDFExtension {
		return KindPDF
	}
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	return KindUnsupported
}

// TargetPath derives the output location for source: the same directory and
// base name with its last extension segment replaced by docExt (".docx").
// A base name without an extension gets docExt appended.
func TargetPath(source, docExt string) string {
	dir, base := filepath.Split(source)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return dir + base + docExt
}

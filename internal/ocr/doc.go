// Package ocr provides Optical Character Recognition (OCR) using Tesseract.
//
// Two backends implement the Recognizer interface:
//
//   - gosseract: in-process libtesseract via gosseract/v2. Only compiled in
//     cgo builds (the GosseractCompiled constant reports it).
//   - cli: pipes the image through the tesseract executable. The executable
//     location is configurable, so a Windows install under Program Files or a
//     Homebrew prefix works without code changes.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language offered to the user:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-ces tesseract-ocr-eng tesseract-ocr-rus
//
// # Output
//
// Recognize returns the raw engine text, which ends with a newline (and for
// some versions a form feed). CleanText strips that trailing whitespace.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing engine or executable (wrapping ErrBackendUnavailable)
//   - Undecodable image data
//   - Missing language data for the requested code
//   - A canceled context (cli backend only; libtesseract calls are not interruptible)
package ocr

// Package imaging loads source images and prepares them for text recognition.
//
// Decoders are registered for PNG, JPEG (including .jfif and .jpe files), GIF,
// BMP, TIFF and WebP. Loading sniffs file contents, so a mislabeled file still
// decodes when its bytes are a known format. SVG is accepted by the converter
// as an image extension but there is no raster decoder for it; loading an SVG
// returns an error that the caller reports as a failed conversion.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Preprocess never mutates its
// input and returns a new image whenever it changes anything.
//
// # Preprocessing
//
// Preprocess runs optional steps that tend to help Tesseract on photos and
// low-quality scans:
//   - upscale narrow images (disintegration/imaging, Lanczos)
//   - contrast adjustment (bild/adjust)
//   - grayscale conversion (bild/effect)
//   - binary threshold (bild/segment)
//
// All steps are off by default and the decoded image reaches the engine as-is.
package imaging

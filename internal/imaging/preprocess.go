package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// PreprocessOptions controls the cleanup applied to an image before OCR.
// The zero value leaves the image untouched.
type PreprocessOptions struct {
	// MinWidth upscales images narrower than this, keeping the aspect ratio.
	// Tesseract does poorly on small glyphs; 0 disables.
	MinWidth int

	// Grayscale drops color information.
	Grayscale bool

	// Contrast adjusts contrast by a percentage in [-100, 100].
	Contrast float64

	// Threshold binarizes at this gray level (1-255); 0 disables.
	// Thresholding implies grayscale.
	Threshold uint8
}

// IsZero reports whether opts would leave an image unchanged.
func (o PreprocessOptions) IsZero() bool {
	return o == PreprocessOptions{}
}

// Preprocess applies opts to img in a fixed order: upscale, contrast,
// grayscale, threshold.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	out := img

	if opts.MinWidth > 0 && out.Bounds().Dx() > 0 && out.Bounds().Dx() < opts.MinWidth {
		out = imaging.Resize(out, opts.MinWidth, 0, imaging.Lanczos)
	}

	if opts.Contrast != 0 {
		// bild expects a fraction: 0.2 means +20%.
		out = adjust.Contrast(out, opts.Contrast/100)
	}

	if opts.Threshold > 0 {
		return segment.Threshold(out, opts.Threshold)
	}

	if opts.Grayscale {
		out = effect.Grayscale(out)
	}

	return out
}

// EncodePNG renders img as PNG bytes for engines that take an in-memory image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

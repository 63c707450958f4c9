package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/scan2docx/internal/imaging"
	"github.com/ironsheep/scan2docx/internal/languages"
)

// fakeRecognizer records its inputs and returns canned text or an error.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
	lang  string
	image []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, img []byte, language string) (string, error) {
	f.calls++
	f.lang = language
	f.image = img
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakePDF struct {
	text  string
	err   error
	calls int
	path  string
}

func (f *fakePDF) Extract(_ context.Context, path string) (string, error) {
	f.calls++
	f.path = path
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// memWriter records documents and writes the bare text to the target path in
// place of a real .docx.
type memWriter struct {
	docs map[string]string
	err  error
}

func newMemWriter() *memWriter {
	return &memWriter{docs: make(map[string]string)}
}

func (w *memWriter) Write(path, text string) error {
	if w.err != nil {
		return w.err
	}
	w.docs[path] = text
	return os.WriteFile(path, []byte(text), 0o644)
}

// writePNG creates a small PNG in dir and returns its path.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func english(t *testing.T) languages.Language {
	t.Helper()
	l, err := languages.Lookup("English")
	require.NoError(t, err)
	return l
}

func TestConvert_Image(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "scan.png")

	rec := &fakeRecognizer{text: "hello\n"}
	pdf := &fakePDF{}
	w := newMemWriter()
	c := New(rec, pdf, w)

	res, err := c.Convert(context.Background(), Request{Source: src, Language: english(t)})
	require.NoError(t, err)

	assert.Equal(t, KindImage, res.Kind)
	assert.Equal(t, "hello", res.Text)
	assert.Equal(t, "English", res.Language)
	assert.Equal(t, filepath.Join(dir, "scan.docx"), res.Target)
	assert.Equal(t, map[string]string{res.Target: "hello"}, w.docs)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "eng", rec.lang)
	assert.Equal(t, 0, pdf.calls)

	// The engine receives a decodable PNG.
	_, err = png.Decode(bytes.NewReader(rec.image))
	assert.NoError(t, err)
}

func TestConvert_ImageTextWithoutTrailingNewlineIsKept(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "scan.jpg.png")

	w := newMemWriter()
	c := New(&fakeRecognizer{text: "hello"}, &fakePDF{}, w)

	res, err := c.Convert(context.Background(), Request{Source: src, Language: english(t)})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text, "last character must not be dropped")
}

func TestConvert_LanguageRouting(t *testing.T) {
	for _, lang := range languages.All() {
		t.Run(lang.Name, func(t *testing.T) {
			src := writePNG(t, t.TempDir(), "page.png")
			rec := &fakeRecognizer{text: "x\n"}
			c := New(rec, &fakePDF{}, newMemWriter())

			_, err := c.Convert(context.Background(), Request{Source: src, Language: lang})
			require.NoError(t, err)
			assert.Equal(t, lang.Code, rec.lang)
		})
	}
}

func TestConvert_ZeroLanguageUsesDefault(t *testing.T) {
	src := writePNG(t, t.TempDir(), "page.png")
	rec := &fakeRecognizer{text: "x"}
	c := New(rec, &fakePDF{}, newMemWriter())

	res, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)
	assert.Equal(t, languages.Default().Code, rec.lang)
	assert.Equal(t, languages.Default().Name, res.Language)
}

func TestConvert_PDF(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "report.pdf", "%PDF-1.4")

	rec := &fakeRecognizer{}
	pdf := &fakePDF{text: "Lorem ipsum"}
	w := newMemWriter()
	c := New(rec, pdf, w)

	res, err := c.Convert(context.Background(), Request{Source: src, Language: english(t)})
	require.NoError(t, err)

	assert.Equal(t, KindPDF, res.Kind)
	assert.Equal(t, "Lorem ipsum", w.docs[filepath.Join(dir, "report.docx")])
	assert.Equal(t, src, pdf.path)
	assert.Equal(t, 0, rec.calls, "PDF conversion must not run OCR")
	assert.Empty(t, res.Language)
}

func TestConvert_PDFTextIsVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "report.pdf", "%PDF-1.4")
	w := newMemWriter()
	c := New(&fakeRecognizer{}, &fakePDF{text: "Lorem ipsum\n\n"}, w)

	_, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)
	assert.Equal(t, "Lorem ipsum\n\n", w.docs[filepath.Join(dir, "report.docx")])
}

func TestConvert_Unsupported(t *testing.T) {
	dir := t.TempDir()
	tests := []string{"notes.txt", "scan.PDF", "photo.PNG", "README"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			src := writeFile(t, dir, name, "data")
			rec := &fakeRecognizer{}
			pdf := &fakePDF{}
			w := newMemWriter()
			c := New(rec, pdf, w)

			_, err := c.Convert(context.Background(), Request{Source: src})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))
			assert.Empty(t, w.docs)
			assert.Zero(t, rec.calls+pdf.calls)

			_, statErr := os.Stat(c.TargetFor(src))
			assert.True(t, os.IsNotExist(statErr), "no document may be written")
		})
	}
}

func TestConvert_NoFileSelected(t *testing.T) {
	c := New(&fakeRecognizer{}, &fakePDF{}, newMemWriter())
	_, err := c.Convert(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoFileSelected)
}

func TestConvert_CollaboratorFailures(t *testing.T) {
	boom := errors.New("engine exploded")

	t.Run("ocr", func(t *testing.T) {
		src := writePNG(t, t.TempDir(), "scan.png")
		w := newMemWriter()
		c := New(&fakeRecognizer{err: boom}, &fakePDF{}, w)

		_, err := c.Convert(context.Background(), Request{Source: src})
		assert.ErrorIs(t, err, ErrConversionFailed)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, w.docs)
	})

	t.Run("pdf", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "broken.pdf", "garbage")
		w := newMemWriter()
		c := New(&fakeRecognizer{}, &fakePDF{err: boom}, w)

		_, err := c.Convert(context.Background(), Request{Source: src})
		assert.ErrorIs(t, err, ErrConversionFailed)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, w.docs)
	})

	t.Run("wraps both errors", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "broken.pdf", "garbage")
		c := New(&fakeRecognizer{}, &fakePDF{err: boom}, newMemWriter())

		_, err := c.Convert(context.Background(), Request{Source: src})
		u, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, "error should unwrap to the sentinel and the cause")
		assert.Equal(t, []error{ErrConversionFailed, boom}, u.Unwrap())
	})

	t.Run("writer", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "report.pdf", "%PDF")
		w := newMemWriter()
		w.err = boom
		c := New(&fakeRecognizer{}, &fakePDF{text: "ok"}, w)

		_, err := c.Convert(context.Background(), Request{Source: src})
		assert.ErrorIs(t, err, ErrConversionFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("undecodable image", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "logo.svg", "<svg xmlns=\"http://www.w3.org/2000/svg\"/>")
		rec := &fakeRecognizer{text: "never"}
		c := New(rec, &fakePDF{}, newMemWriter())

		_, err := c.Convert(context.Background(), Request{Source: src})
		assert.ErrorIs(t, err, ErrConversionFailed)
		assert.Zero(t, rec.calls)
	})

	t.Run("missing file", func(t *testing.T) {
		c := New(&fakeRecognizer{}, &fakePDF{}, newMemWriter())
		_, err := c.Convert(context.Background(), Request{Source: filepath.Join(t.TempDir(), "gone.png")})
		assert.ErrorIs(t, err, ErrConversionFailed)
	})
}

func TestConvert_RerunOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "scan.png")

	rec := &fakeRecognizer{text: "first\n"}
	w := newMemWriter()
	c := New(rec, &fakePDF{}, w)

	_, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)

	rec.text = "second\n"
	res, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)

	assert.Len(t, w.docs, 1)
	assert.Equal(t, "second", w.docs[res.Target])
	data, err := os.ReadFile(res.Target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestConvert_EvictsImageAfterRun(t *testing.T) {
	src := writePNG(t, t.TempDir(), "scan.png")
	cache := imaging.NewImageCache()
	c := New(&fakeRecognizer{text: "x"}, &fakePDF{}, newMemWriter(), WithImageCache(cache))

	_, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestConvert_Preprocess(t *testing.T) {
	src := writePNG(t, t.TempDir(), "scan.png")
	rec := &fakeRecognizer{text: "x"}
	c := New(rec, &fakePDF{}, newMemWriter(),
		WithPreprocess(imaging.PreprocessOptions{MinWidth: 160, Grayscale: true}))

	_, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(rec.image))
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestConvert_CustomExtension(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "report.pdf", "%PDF")
	w := newMemWriter()
	c := New(&fakeRecognizer{}, &fakePDF{text: "t"}, w, WithDocumentExtension(".doc.xml"))

	res, err := c.Convert(context.Background(), Request{Source: src})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.doc.xml"), res.Target)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/scan2docx/internal/convert"
	"github.com/ironsheep/scan2docx/internal/languages"
)

// fakeConverter classifies like the real converter but returns canned results.
type fakeConverter struct {
	err  error
	reqs []convert.Request
}

func (f *fakeConverter) TargetFor(source string) string {
	return convert.TargetPath(source, ".docx")
}

func (f *fakeConverter) Convert(_ context.Context, req convert.Request) (*convert.Result, error) {
	f.reqs = append(f.reqs, req)
	if req.Source == "" {
		return nil, convert.ErrNoFileSelected
	}
	kind := convert.Classify(req.Source)
	if kind == convert.KindUnsupported {
		return nil, convert.ErrUnsupportedFormat
	}
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrConversionFailed, f.err)
	}
	return &convert.Result{Kind: kind, Source: req.Source, Target: f.TargetFor(req.Source)}, nil
}

func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	s := New(&fakeConverter{}, languages.Language{}, nil)

	assert.Equal(t, languages.Default(), s.Language())
	assert.Empty(t, s.Source())
	assert.Empty(t, s.Target())
	assert.Equal(t, Status{}, s.Status())
}

func TestSelect(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)
	src := touch(t, "invoice.png")

	st := s.Select(src)

	assert.Equal(t, Status{Text: "File Opened: invoice.png", Kind: StatusNeutral}, st)
	assert.Equal(t, src, s.Source())
	assert.Equal(t, filepath.Join(filepath.Dir(src), "invoice.docx"), s.Target())
}

func TestSelect_CancelledKeepsState(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)
	src := touch(t, "invoice.png")
	s.Select(src)

	st := s.Select("")

	assert.Equal(t, "File Opened: invoice.png", st.Text)
	assert.Equal(t, src, s.Source())
}

func TestSelect_MissingFile(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)
	src := touch(t, "invoice.png")
	s.Select(src)

	st := s.Select(filepath.Join(t.TempDir(), "gone.pdf"))

	assert.Equal(t, StatusError, st.Kind)
	assert.Equal(t, "File not found: gone.pdf", st.Text)
	assert.Equal(t, src, s.Source(), "previous selection must survive")
}

func TestSetLanguage(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)

	require.NoError(t, s.SetLanguage("English"))
	assert.Equal(t, "eng", s.Language().Code)

	err := s.SetLanguage("Klingon")
	assert.ErrorIs(t, err, languages.ErrUnknownLanguage)
	assert.Equal(t, "eng", s.Language().Code, "failed change keeps the selection")
	assert.Equal(t, Status{}, s.Status(), "language changes do not touch the status")
}

func TestConvert_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		err    error
		want   Status
		result bool
	}{
		{"pdf", "report.pdf", nil, Status{Text: "PDF converted.", Kind: StatusSuccess}, true},
		{"image", "scan.jpg", nil, Status{Text: "Image text converted.", Kind: StatusSuccess}, true},
		{"unsupported", "notes.txt", nil, Status{Text: "Wrong file format.", Kind: StatusError}, false},
		{"case sensitive", "report.PDF", nil, Status{Text: "Wrong file format.", Kind: StatusError}, false},
		{"failure", "scan.png", errors.New("tesseract not found"),
			Status{Text: "Conversion failed: tesseract not found", Kind: StatusError}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeConverter{err: tt.err}, languages.Default(), nil)
			s.Select(touch(t, tt.file))

			res, st := s.Convert(context.Background())

			assert.Equal(t, tt.want, st)
			assert.Equal(t, tt.want, s.Status())
			assert.Equal(t, tt.result, res != nil)
		})
	}
}

func TestConvert_NoFileSelected(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)

	res, st := s.Convert(context.Background())

	assert.Nil(t, res)
	assert.Equal(t, Status{Text: "No file selected.", Kind: StatusError}, st)
}

func TestConvert_PassesSelectedLanguage(t *testing.T) {
	conv := &fakeConverter{}
	s := New(conv, languages.Default(), nil)
	s.Select(touch(t, "scan.png"))
	require.NoError(t, s.SetLanguage("Russian"))

	s.Convert(context.Background())

	require.Len(t, conv.reqs, 1)
	assert.Equal(t, "rus", conv.reqs[0].Language.Code)
	assert.Equal(t, s.Source(), conv.reqs[0].Source)
}

func TestConvert_StatusReplacedEachEvent(t *testing.T) {
	s := New(&fakeConverter{}, languages.Default(), nil)

	s.Select(touch(t, "a.txt"))
	s.Convert(context.Background())
	assert.Equal(t, StatusError, s.Status().Kind)

	s.Select(touch(t, "b.pdf"))
	assert.Equal(t, StatusNeutral, s.Status().Kind)

	s.Convert(context.Background())
	assert.Equal(t, StatusSuccess, s.Status().Kind)
}

func TestConvert_WithRealConverter(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lorem.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0o644))

	w := &recordingWriter{}
	conv := convert.New(nil, staticPDF("Lorem ipsum"), w)
	s := New(conv, languages.Default(), nil)

	s.Select(src)
	res, st := s.Convert(context.Background())

	require.NotNil(t, res)
	assert.Equal(t, "PDF converted.", st.Text)
	assert.Equal(t, filepath.Join(dir, "lorem.docx"), w.path)
	assert.Equal(t, "Lorem ipsum", w.text)
}

type staticPDF string

func (p staticPDF) Extract(context.Context, string) (string, error) { return string(p), nil }

type recordingWriter struct{ path, text string }

func (w *recordingWriter) Write(path, text string) error {
	w.path, w.text = path, text
	return nil
}

func TestCause(t *testing.T) {
	disk := errors.New("disk full")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"double wrapped", fmt.Errorf("%w: %w", convert.ErrConversionFailed, disk), "disk full"},
		{"single wrapped", fmt.Errorf("%w: disk full", convert.ErrConversionFailed), "disk full"},
		{"nested cause", fmt.Errorf("%w: %w", convert.ErrConversionFailed, fmt.Errorf("write: %w", disk)), "write: disk full"},
		{"plain", disk, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cause(tt.err))
		})
	}
}

func TestConvert_RealConverterFailureStatus(t *testing.T) {
	src := filepath.Join(t.TempDir(), "lorem.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0o644))

	conv := convert.New(nil, staticPDF("Lorem ipsum"), failingWriter{errors.New("disk full")})
	s := New(conv, languages.Default(), nil)

	s.Select(src)
	res, st := s.Convert(context.Background())

	assert.Nil(t, res)
	assert.Equal(t, Status{Text: "Conversion failed: disk full", Kind: StatusError}, st)
}

type failingWriter struct{ err error }

func (w failingWriter) Write(string, string) error { return w.err }

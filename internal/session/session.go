// Package session holds the state of one interactive conversion session:
// the selected source file, the derived target, the recognition language and
// the current status message.
//
// A Session replaces the window-level fields of a desktop front-end. It is
// owned by a single front-end loop and is not safe for concurrent use;
// operations run to completion one at a time.
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/scan2docx/internal/convert"
	"github.com/ironsheep/scan2docx/internal/languages"
	"github.com/ironsheep/scan2docx/internal/logging"
)

// Status texts.
const (
	MsgFileOpened     = "File Opened: "
	MsgImageConverted = "Image text converted."
	MsgPDFConverted   = "PDF converted."
	MsgWrongFormat    = "Wrong file format."
	MsgNoFile         = "No file selected."
	MsgFailedPrefix   = "Conversion failed: "
	MsgNotFoundPrefix = "File not found: "
)

// Converter is the part of *convert.Converter a session needs.
type Converter interface {
	Convert(ctx context.Context, req convert.Request) (*convert.Result, error)
	TargetFor(source string) string
}

// Session is the mutable state behind the front-end.
type Session struct {
	conv Converter
	log  *zap.SugaredLogger

	source   string
	target   string
	language languages.Language
	status   Status
}

// New starts a session with lang selected and an empty status.
func New(conv Converter, lang languages.Language, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	if lang.Code == "" {
		lang = languages.Default()
	}
	return &Session{conv: conv, log: log, language: lang}
}

// Source returns the selected file, or "" before any selection.
func (s *Session) Source() string { return s.source }

// Target returns where the next conversion will write.
func (s *Session) Target() string { return s.target }

// Language returns the current recognition language.
func (s *Session) Language() languages.Language { return s.language }

// Status returns the current status message.
func (s *Session) Status() Status { return s.status }

// Select records path as the source file, as a file dialog would.
//
// An empty path means the selection was cancelled and leaves the session
// unchanged. A path that does not exist sets an error status and keeps the
// previous selection.
func (s *Session) Select(path string) Status {
	if path == "" {
		return s.status
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if _, err := os.Stat(path); err != nil {
		s.log.Debugw("selection rejected", "path", path, "error", err)
		s.status = Status{Text: MsgNotFoundPrefix + filepath.Base(path), Kind: StatusError}
		return s.status
	}

	s.source = path
	s.target = s.conv.TargetFor(path)
	s.status = Status{Text: MsgFileOpened + filepath.Base(path), Kind: StatusNeutral}
	s.log.Debugw("file selected", "source", s.source, "target", s.target)
	return s.status
}

// SetLanguage changes the recognition language. The status is not touched.
func (s *Session) SetLanguage(name string) error {
	lang, err := languages.Lookup(name)
	if err != nil {
		return err
	}
	s.language = lang
	s.log.Debugw("language selected", "name", lang.Name, "code", lang.Code)
	return nil
}

// Convert converts the selected file and sets the status to the outcome.
// The returned result is nil unless the conversion succeeded.
func (s *Session) Convert(ctx context.Context) (*convert.Result, Status) {
	res, err := s.conv.Convert(ctx, convert.Request{Source: s.source, Language: s.language})
	s.status = statusFor(res, err)
	return res, s.status
}

func statusFor(res *convert.Result, err error) Status {
	switch {
	case err == nil && res.Kind == convert.KindPDF:
		return Status{Text: MsgPDFConverted, Kind: StatusSuccess}
	case err == nil:
		return Status{Text: MsgImageConverted, Kind: StatusSuccess}
	case errors.Is(err, convert.ErrNoFileSelected):
		return Status{Text: MsgNoFile, Kind: StatusError}
	case errors.Is(err, convert.ErrUnsupportedFormat):
		return Status{Text: MsgWrongFormat, Kind: StatusError}
	default:
		return Status{Text: MsgFailedPrefix + cause(err), Kind: StatusError}
	}
}

// cause drops the ErrConversionFailed prefix so the status does not read
// "Conversion failed: conversion failed: ...".
//
// convert.Converter reports collaborator failures as
// fmt.Errorf("%w: %w", ErrConversionFailed, cause), which unwraps to both
// errors. Anything else is matched on the message prefix.
func cause(err error) string {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range u.Unwrap() {
			if !errors.Is(e, convert.ErrConversionFailed) {
				return e.Error()
			}
		}
	}
	return strings.TrimPrefix(err.Error(), convert.ErrConversionFailed.Error()+": ")
}

package main

import (
	"github.com/ironsheep/scan2docx/internal/convert"
	"github.com/ironsheep/scan2docx/internal/docx"
	"github.com/ironsheep/scan2docx/internal/imaging"
	"github.com/ironsheep/scan2docx/internal/languages"
	"github.com/ironsheep/scan2docx/internal/ocr"
	"github.com/ironsheep/scan2docx/internal/pdftext"
	"github.com/ironsheep/scan2docx/internal/session"
)

func (a *app) recognizer() (ocr.Recognizer, error) {
	return ocr.New(a.cfg.OCR.Backend, ocr.Options{
		TesseractCmd:   a.cfg.OCR.TesseractCmd,
		TessdataPrefix: a.cfg.OCR.TessdataPrefix,
		PageSegMode:    a.cfg.OCR.PageSegMode,
	})
}

// converter wires the configured collaborators together.
func (a *app) converter() (*convert.Converter, error) {
	rec, err := a.recognizer()
	if err != nil {
		return nil, err
	}
	w, err := docx.New(a.cfg.Output.Writer)
	if err != nil {
		return nil, err
	}

	p := a.cfg.OCR.Preprocess
	return convert.New(rec, pdftext.New(), w,
		convert.WithLogger(a.log),
		convert.WithDocumentExtension(a.cfg.Output.Extension),
		convert.WithPreprocess(imaging.PreprocessOptions{
			MinWidth:  p.MinWidth,
			Grayscale: p.Grayscale,
			Contrast:  p.Contrast,
			Threshold: uint8(p.Threshold),
		}),
	), nil
}

// newSession starts a session with the configured default language.
func (a *app) newSession() (*session.Session, error) {
	conv, err := a.converter()
	if err != nil {
		return nil, err
	}
	lang, err := languages.Lookup(a.cfg.Language)
	if err != nil {
		return nil, err
	}
	return session.New(conv, lang, a.log), nil
}

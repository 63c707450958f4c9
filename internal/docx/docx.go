// Package docx writes plain text into a new Word document.
//
// Each writer produces a document with exactly one paragraph holding the text
// verbatim. Line breaks ("\n", "\r\n", "\r") become <w:br/> and tabs become
// <w:tab/> inside that paragraph, and every text element is marked
// xml:space="preserve" so leading and trailing spaces survive.
//
// Writes are atomic: the document is built in a temporary file next to the
// target and renamed over it, so a failed write leaves any existing target
// untouched and no partial file behind.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gonfva/docxlib"
)

// Writer names.
const (
	WriterGodocx  = "godocx"
	WriterDocxlib = "docxlib"
)

// Names lists the accepted writer names.
var Names = []string{WriterGodocx, WriterDocxlib}

// ErrUnknownWriter is returned by New for an unrecognized writer name.
var ErrUnknownWriter = errors.New("unknown document writer")

// Writer creates a single-paragraph document at path, replacing any
// existing file.
type Writer interface {
	Write(path, text string) error
}

// New returns the writer registered under name.
func New(name string) (Writer, error) {
	switch name {
	case WriterGodocx, "":
		return GodocxWriter{}, nil
	case WriterDocxlib:
		return DocxlibWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWriter, name)
	}
}

type segmentKind int

const (
	segText segmentKind = iota
	segTab
	segBreak
)

// segment is a stretch of literal text, a tab or a line break.
type segment struct {
	kind segmentKind
	text string
}

// splitText cuts text at tabs and line breaks. A "\r\n" pair is one break.
func splitText(text string) []segment {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var segs []segment
	start := 0
	for i := 0; i < len(text); i++ {
		var kind segmentKind
		switch text[i] {
		case '\n', '\r':
			kind = segBreak
		case '\t':
			kind = segTab
		default:
			continue
		}
		if i > start {
			segs = append(segs, segment{kind: segText, text: text[start:i]})
		}
		segs = append(segs, segment{kind: kind})
		start = i + 1
	}
	if start < len(text) {
		segs = append(segs, segment{kind: segText, text: text[start:]})
	}
	return segs
}

// GodocxWriter builds documents with gomutex/godocx.
type GodocxWriter struct{}

// Write implements Writer.
func (GodocxWriter) Write(path, text string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	run := &ctypes.Run{}
	for _, seg := range splitText(text) {
		switch seg.kind {
		case segBreak:
			run.Children = append(run.Children, ctypes.RunChild{Break: &ctypes.Break{}})
		case segTab:
			run.Children = append(run.Children, ctypes.RunChild{Tab: &ctypes.Empty{}})
		default:
			space := ctypes.TextSpacePreserve
			run.Children = append(run.Children, ctypes.RunChild{
				Text: &ctypes.Text{Text: seg.text, Space: &space},
			})
		}
	}

	p := doc.AddEmptyParagraph().GetCT()
	p.Children = append(p.Children, ctypes.ParagraphChild{Run: run})

	return atomicWrite(path, func(tmp *os.File) error {
		if err := doc.Write(tmp); err != nil {
			tmp.Close()
			return err
		}
		return tmp.Close()
	})
}

// DocxlibWriter builds documents with gonfva/docxlib.
//
// docxlib supplies the package parts (content types, relationships, styles,
// theme, document properties) and the paragraph model. Its paragraph
// marshaling wraps runs in a <Data> element that Word rejects, so
// word/document.xml is serialized here from the model instead.
type DocxlibWriter struct{}

// Write implements Writer.
func (DocxlibWriter) Write(path, text string) error {
	doc := docxlib.New()
	dropFontTable(doc)

	p := doc.AddParagraph()
	segs := splitText(text)
	for _, seg := range segs {
		if seg.kind == segText {
			p.AddText(seg.text).Text.XMLSpace = "preserve"
		}
	}

	body, err := docxlibDocumentXML(doc, segs)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	var pkg bytes.Buffer
	if err := doc.Write(&pkg); err != nil {
		return fmt.Errorf("failed to package document: %w", err)
	}

	return atomicWrite(path, func(tmp *os.File) error {
		if err := replacePart(tmp, pkg.Bytes(), "word/document.xml", body); err != nil {
			tmp.Close()
			return err
		}
		return tmp.Close()
	})
}

// dropFontTable removes the font table relationship; docxlib declares it
// but never writes word/fontTable.xml.
func dropFontTable(doc *docxlib.DocxLib) {
	rels := doc.DocRelation.Relationships[:0]
	for _, rel := range doc.DocRelation.Relationships {
		if rel.Target != "fontTable.xml" {
			rels = append(rels, rel)
		}
	}
	doc.DocRelation.Relationships = rels
}

// docxlibDocumentXML renders the paragraphs of doc as WordprocessingML. The
// text runs of a paragraph come from the docxlib model; segs places the tabs
// and breaks between them.
func docxlibDocumentXML(doc *docxlib.DocxLib, segs []segment) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	start := func(name string, attrs ...xml.Attr) error {
		return enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
	}
	end := func(name string) error {
		return enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	}
	empty := func(name string) error {
		if err := start(name); err != nil {
			return err
		}
		return end(name)
	}

	if err := start("w:document",
		xml.Attr{Name: xml.Name{Local: "xmlns:w"}, Value: docxlib.XMLNS_W},
		xml.Attr{Name: xml.Name{Local: "xmlns:r"}, Value: docxlib.XMLNS_R},
	); err != nil {
		return nil, err
	}
	if err := start("w:body"); err != nil {
		return nil, err
	}

	for _, para := range doc.Paragraphs() {
		var runs []*docxlib.Run
		for _, child := range para.Children() {
			if child.Run != nil && child.Run.Text != nil {
				runs = append(runs, child.Run)
			}
		}

		if err := start("w:p"); err != nil {
			return nil, err
		}
		if err := start("w:r"); err != nil {
			return nil, err
		}
		next := 0
		for _, seg := range segs {
			var err error
			switch seg.kind {
			case segBreak:
				err = empty("w:br")
			case segTab:
				err = empty("w:tab")
			default:
				if next >= len(runs) {
					return nil, errors.New("paragraph model is missing text runs")
				}
				t := runs[next].Text
				next++
				err = start("w:t", xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: t.XMLSpace})
				if err == nil {
					err = enc.EncodeToken(xml.CharData(t.Text))
				}
				if err == nil {
					err = end("w:t")
				}
			}
			if err != nil {
				return nil, err
			}
		}
		if err := end("w:r"); err != nil {
			return nil, err
		}
		if err := end("w:p"); err != nil {
			return nil, err
		}
	}

	if err := end("w:body"); err != nil {
		return nil, err
	}
	if err := end("w:document"); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// replacePart copies the zip package pkg to w with the part called name
// replaced by data.
func replacePart(w io.Writer, pkg []byte, name string, data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, f := range zr.File {
		if f.Name != name {
			if err := zw.Copy(f); err != nil {
				zw.Close()
				return err
			}
			continue
		}
		part, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return err
		}
		if _, err := part.Write(data); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// atomicWrite creates a temp file in path's directory, lets fill populate and
// close it, then renames it over path.
func atomicWrite(path string, fill func(tmp *os.File) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write document: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Package pdftext reads the text of statement documents page by page.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Engine selects the library used to extract PDF text. MuPDF is the default.
type Engine string

const (
	EngineLedongthuc Engine = "ledongthuc"
	EngineMuPDF      Engine = "mupdf"
)

func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "", EngineMuPDF, "fitz":
		return EngineMuPDF, nil
	case EngineLedongthuc:
		return EngineLedongthuc, nil
	default:
		return "", fmt.Errorf("unknown pdf engine %q", s)
	}
}

// Document is an open statement. Pages are indexed from 0.
type Document interface {
	NumPage() int
	PageText(i int) (string, error)
	Close() error
}

// Open opens path with the given engine. Plain text files (for instance a
// previous raw dump) are read as a single page.
func Open(path string, engine Engine) (Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return openText(path)
	}
	switch engine {
	case EngineMuPDF, "":
		return openMuPDF(path)
	case EngineLedongthuc:
		return openLedongthuc(path)
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", engine)
	}
}

// Pages calls fn for every page of doc in document order and stops at the
// first error.
func Pages(doc Document, fn func(page int, text string) error) error {
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return fmt.Errorf("extracting text from page %d: %w", i+1, err)
		}
		if err := fn(i, text); err != nil {
			return err
		}
	}
	return nil
}

// Opener opens the document at path.
type Opener func(path string) (Document, error)

// OpenerFor returns an Opener bound to engine.
func OpenerFor(engine Engine) Opener {
	return func(path string) (Document, error) {
		return Open(path, engine)
	}
}

// Walk opens path, visits its pages and always closes the document.
func Walk(path string, engine Engine, fn func(page int, text string) error) error {
	return WalkWith(OpenerFor(engine), path, fn)
}

// WalkWith is Walk with a custom Opener.
func WalkWith(open Opener, path string, fn func(page int, text string) error) (err error) {
	doc, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return Pages(doc, fn)
}

// RawTextPath is where the extracted text of path is dumped.
func RawTextPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_raw.txt"
}

// WriteRawText persists the concatenated page text next to the statement.
func WriteRawText(path, text string) (string, error) {
	out := RawTextPath(path)
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing raw text: %w", err)
	}
	return out, nil
}

// textDocument serves already extracted text.
type textDocument struct {
	pages []string
}

// NewTextDocument returns a Document over in-memory pages.
func NewTextDocument(pages ...string) Document {
	return &textDocument{pages: pages}
}

func openText(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewTextDocument(string(data)), nil
}

func (d *textDocument) NumPage() int { return len(d.pages) }

func (d *textDocument) PageText(i int) (string, error) {
	if i < 0 || i >= len(d.pages) {
		return "", fmt.Errorf("page %d out of range", i+1)
	}
	return d.pages[i], nil
}

func (d *textDocument) Close() error { return nil }

package pdftext

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

type mupdfDocument struct {
	doc *fitz.Document
}

func openMuPDF(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	return &mupdfDocument{doc: doc}, nil
}

func (d *mupdfDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *mupdfDocument) PageText(i int) (string, error) {
	return d.doc.Text(i)
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}

package pdftext

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/gastos/pkg/parser"
)

type closeRecorder struct {
	Document
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{
		"":           EngineMuPDF,
		"ledongthuc": EngineLedongthuc,
		"MuPDF":      EngineMuPDF,
		"fitz":       EngineMuPDF,
	} {
		got, err := ParseEngine(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseEngine("poppler")
	assert.Error(t, err)
}

func TestPages_Order(t *testing.T) {
	doc := NewTextDocument("one", "two", "three")

	var got []string
	err := Pages(doc, func(page int, text string) error {
		got = append(got, text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestPages_StopsOnError(t *testing.T) {
	doc := NewTextDocument("one", "two")
	boom := errors.New("boom")

	calls := 0
	err := Pages(doc, func(int, string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalk_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fatura_raw.txt")
	require.NoError(t, os.WriteFile(path, []byte("10/01 LOJA 1,00"), 0o644))

	var pages []string
	err := Walk(path, EngineLedongthuc, func(_ int, text string) error {
		pages = append(pages, text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10/01 LOJA 1,00"}, pages)
}

func TestWalk_Unreadable(t *testing.T) {
	dir := t.TempDir()

	err := Walk(filepath.Join(dir, "missing.pdf"), EngineLedongthuc, func(int, string) error { return nil })
	assert.Error(t, err)

	corrupt := filepath.Join(dir, "corrupt.pdf")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a pdf"), 0o644))
	err = Walk(corrupt, EngineLedongthuc, func(int, string) error { return nil })
	assert.Error(t, err)
}

func TestWalkWith_ClosesOnError(t *testing.T) {
	rec := &closeRecorder{Document: NewTextDocument("a", "b")}
	open := func(string) (Document, error) { return rec, nil }

	err := WalkWith(open, "statement.pdf", func(int, string) error { return errors.New("stop") })
	assert.EqualError(t, err, "stop")
	assert.True(t, rec.closed)

	rec.closed = false
	require.NoError(t, WalkWith(open, "statement.pdf", func(int, string) error { return nil }))
	assert.True(t, rec.closed)
}

func TestRawTextPath(t *testing.T) {
	assert.Equal(t, "/tmp/fatura-2024-03_raw.txt", RawTextPath("/tmp/fatura-2024-03.pdf"))
	assert.Equal(t, "fatura_raw.txt", RawTextPath("fatura.PDF"))
}

func TestWriteRawText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fatura.pdf")
	out, err := WriteRawText(path, "page one\npage two")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "page one\npage two", string(data))
}

// testdata/statement.pdf has two pages. Lines on the first page are placed
// with Td moves, the layout most statement generators produce.
func TestWalk_StatementFixture(t *testing.T) {
	want := []parser.Candidate{
		{Date: "10/01", Merchant: "LOJA ABC", Amount: "80,00"},
		{Date: "11/01", Merchant: "PADARIA", Amount: "12,00"},
		{Date: "12/01", Merchant: "ESTORNO", Amount: "-50,00", Credit: true},
		{Date: "20/01", Merchant: "FARMACIA", Amount: "8,50"},
	}

	for _, engine := range []Engine{EngineMuPDF, EngineLedongthuc} {
		t.Run(string(engine), func(t *testing.T) {
			var pages []string
			err := Walk(filepath.Join("testdata", "statement.pdf"), engine, func(_ int, text string) error {
				pages = append(pages, text)
				return nil
			})
			require.NoError(t, err)
			require.Len(t, pages, 2)
			assert.Contains(t, pages[0], "10/01 LOJA ABC 80,00\n11/01 PADARIA 12,00\n")

			p := parser.New(log.New(io.Discard))
			var got []parser.Candidate
			for _, text := range pages {
				got = append(got, p.Collect(text)...)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestJoinLines(t *testing.T) {
	glyph := func(s string, x, y float64) pdf.Text {
		return pdf.Text{S: s, X: x, Y: y, W: 6, FontSize: 10}
	}
	glyphs := []pdf.Text{
		// second line first, as content streams may draw it
		glyph("B", 50, 686), glyph("2", 56, 686),
		glyph("A", 50, 700), glyph("1", 56, 700.5),
		// 24pt gap on the first line becomes one space
		glyph("9", 86, 700),
		glyph(" ", 62, 686), glyph("X", 68, 686),
	}

	assert.Equal(t, "A1 9\nB2 X\n", joinLines(glyphs))
	assert.Empty(t, joinLines(nil))
}

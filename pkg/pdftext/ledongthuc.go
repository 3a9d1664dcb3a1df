package pdftext

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// Glyphs whose baselines are this close (in points) share a line.
	lineTolerance = 2.0
	// A horizontal gap wider than this fraction of the font size is a space.
	spaceGapRatio = 0.25
)

type ledongthucDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func openLedongthuc(path string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("opening pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	return &ledongthucDocument{file: f, reader: r}, nil
}

func (d *ledongthucDocument) NumPage() int {
	return d.reader.NumPage()
}

// PageText rebuilds the lines of page i from glyph positions. GetPlainText
// is not used because it ignores Td/Tm line moves and runs lines together.
// The library panics on some malformed content streams, which is reported
// as an error instead.
func (d *ledongthucDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", i+1, r)
		}
	}()

	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return joinLines(page.Content().Text), nil
}

func (d *ledongthucDocument) Close() error {
	return d.file.Close()
}

type textLine struct {
	y      float64
	glyphs []pdf.Text
}

// joinLines groups glyphs by baseline, top of the page first, and writes
// each group left to right as one newline terminated line.
func joinLines(glyphs []pdf.Text) string {
	sorted := slices.Clone(glyphs)
	slices.SortStableFunc(sorted, func(a, b pdf.Text) int {
		return cmp.Compare(b.Y, a.Y)
	})

	var lines []*textLine
	for _, g := range sorted {
		if g.S == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1].y-g.Y <= lineTolerance {
			lines[n-1].glyphs = append(lines[n-1].glyphs, g)
			continue
		}
		lines = append(lines, &textLine{y: g.Y, glyphs: []pdf.Text{g}})
	}

	var sb strings.Builder
	for _, line := range lines {
		slices.SortStableFunc(line.glyphs, func(a, b pdf.Text) int {
			return cmp.Compare(a.X, b.X)
		})
		for j, g := range line.glyphs {
			if j > 0 {
				prev := line.glyphs[j-1]
				gap := g.X - (prev.X + prev.W)
				if gap > spaceGapRatio*prev.FontSize && prev.S != " " && g.S != " " {
					sb.WriteByte(' ')
				}
			}
			sb.WriteString(g.S)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	chartTitle  = "Top 10 Maiores Gastos Consolidados"
	chartXLabel = "Valor em Reais (R$)"
	chartYLabel = "Estabelecimento"
)

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// RenderChart draws totals as horizontal bars, first entry on top, and saves
// the image to path. The format follows the extension (.jpg, .png, .svg...).
func RenderChart(path string, totals []Total) error {
	if len(totals) == 0 {
		return fmt.Errorf("no categories to chart")
	}

	p := plot.New()
	p.Title.Text = chartTitle
	p.X.Label.Text = chartXLabel
	p.Y.Label.Text = chartYLabel

	n := len(totals)
	values := make(plotter.Values, n)
	names := make([]string, n)
	points := make(plotter.XYs, n)
	labels := make([]string, n)
	for i, t := range totals {
		// plot rows grow upwards
		row := n - 1 - i
		v := t.Value.InexactFloat64()
		values[row] = v
		names[row] = t.Label
		points[row] = plotter.XY{X: v, Y: float64(row)}
		labels[row] = FormatBRL(t.Value)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("building bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = skyBlue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)

	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return fmt.Errorf("building labels: %w", err)
	}
	valueLabels.Offset = vg.Point{X: vg.Points(4), Y: -vg.Points(3)}
	p.Add(valueLabels)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// Package render produces chart and spreadsheet artifacts from projection
// tables.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pharmacast/workforce-api/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	supplyColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	opsColor    = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	gapColor    = color.RGBA{R: 60, G: 179, B: 113, A: 128}
)

// GapChart renders a projection table as a PNG: supply and ops demand as
// lines over the financial years, with the gap as bars behind them.
func GapChart(table *domain.ProjectionTableDTO, path string) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("no rows to chart")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pharmacy workforce supply vs demand (%s scenario)", table.Scenario)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Financial year"
	p.Y.Label.Text = "Workforce (FTE)"

	n := len(table.Rows)
	supply := make(plotter.XYs, n)
	ops := make(plotter.XYs, n)
	gap := make(plotter.Values, n)
	labels := make([]string, n)

	maxY := 0.0
	for i, row := range table.Rows {
		supply[i] = plotter.XY{X: float64(i), Y: float64(row.Supply)}
		ops[i] = plotter.XY{X: float64(i), Y: float64(row.Ops)}
		gap[i] = float64(row.Gap)
		labels[i] = row.FinancialYear
		maxY = math.Max(maxY, math.Max(float64(row.Supply), float64(row.Ops)))
	}

	gapBars, err := plotter.NewBarChart(gap, vg.Points(14))
	if err != nil {
		return fmt.Errorf("failed to build gap bars: %w", err)
	}
	gapBars.Color = gapColor
	gapBars.LineStyle.Width = vg.Length(0)
	p.Add(gapBars)
	p.Legend.Add("Gap", gapBars)

	supplyLine, err := plotter.NewLine(supply)
	if err != nil {
		return fmt.Errorf("failed to build supply line: %w", err)
	}
	supplyLine.LineStyle.Width = vg.Points(2)
	supplyLine.LineStyle.Color = supplyColor
	p.Add(supplyLine)
	p.Legend.Add("Supply", supplyLine)

	supplyPoints, err := plotter.NewScatter(supply)
	if err != nil {
		return fmt.Errorf("failed to build supply markers: %w", err)
	}
	supplyPoints.GlyphStyle.Shape = draw.CircleGlyph{}
	supplyPoints.GlyphStyle.Radius = vg.Points(3)
	supplyPoints.GlyphStyle.Color = supplyColor
	p.Add(supplyPoints)

	opsLine, err := plotter.NewLine(ops)
	if err != nil {
		return fmt.Errorf("failed to build ops line: %w", err)
	}
	opsLine.LineStyle.Width = vg.Points(2)
	opsLine.LineStyle.Color = opsColor
	opsLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(opsLine)
	p.Legend.Add("Ops demand", opsLine)

	p.Add(plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	p.Y.Min = 0
	p.Y.Max = maxY * 1.1
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(12*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

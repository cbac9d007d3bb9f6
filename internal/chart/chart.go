/*
PURPOSE:
  Renders the performance figure: a 2x2 grid of speedup, efficiency,
  execution time and best-speedup charts.

REQUIREMENTS:
  User-specified:
  - Speedup vs threads with a perfect-speedup reference line.
  - Efficiency vs threads with a 100% reference line.
  - Execution time vs threads.
  - Bar per strategy with its best speedup, annotated with value and thread count.
  - One image file.

  Implementation-discovered:
  - gonum/plot has no figure title; it is drawn on the canvas above the grid.
  - Format follows the file extension so the same code serves PNG for
    slides and SVG/PDF for papers.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot, run --plot)
  - Consumes: internal/model.ResultsTable, []model.Summary

ERROR HANDLING:
  - ErrUnsupportedFormat for unknown extensions.
  - Non-finite values are rejected by gonum/plot constructors.
  - The figure is fully encoded in memory before the file is created,
    so a failed render leaves no file behind.

IMPLEMENTATION RULES:
  - ExecutorService is blue/circles, ForkJoinPool is red/squares.

USAGE:
  err := chart.Render(table, summaries, "performance_analysis.png", chart.DefaultOptions())

SELF-HEALING INSTRUCTIONS:
  - If labels overlap at small sizes, lower DPI rather than shrinking fonts.

RELATED FILES:
  - internal/config/config.go (ChartConfig)

MAINTENANCE:
  - Update when model.Strategies changes.
*/

package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/daryltucker/sirbench/internal/config"
	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/results"
)

// ErrUnsupportedFormat is returned for image paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options controls figure size and resolution.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultOptions matches config.DefaultConfig().Chart.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Chart)
}

// OptionsFromConfig converts the YAML chart section.
func OptionsFromConfig(c config.ChartConfig) Options {
	return Options{
		Title:  c.Title,
		Width:  vg.Length(c.Width) * vg.Inch,
		Height: vg.Length(c.Height) * vg.Inch,
		DPI:    c.DPI,
	}
}

var (
	strategyColors = map[model.Strategy]color.NRGBA{
		model.Executor: {B: 255, A: 255},
		model.ForkJoin: {R: 255, A: 255},
	}
	strategyGlyphs = map[model.Strategy]draw.GlyphDrawer{
		model.Executor: draw.CircleGlyph{},
		model.ForkJoin: draw.SquareGlyph{},
	}
	referenceColor = color.NRGBA{A: 128}
	gridColor      = color.NRGBA{A: 77}
)

// Formats lists the accepted file extensions.
func Formats() []string {
	return []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf"}
}

// Render draws the figure and writes it to path.
func Render(table model.ResultsTable, summaries []model.Summary, path string, opts Options) error {
	if len(table) == 0 {
		return results.ErrEmptyTable
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	c, err := newCanvas(format, opts)
	if err != nil {
		return err
	}

	plots, err := Plots(table, summaries)
	if err != nil {
		return err
	}

	drawFigure(draw.New(c), opts.Title, plots)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func newCanvas(format string, opts Options) (vg.CanvasWriterTo, error) {
	raster := func() *vgimg.Canvas {
		return vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	}

	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: raster()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: raster()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: raster()}, nil
	case "svg":
		return vgsvg.New(opts.Width, opts.Height), nil
	case "pdf":
		return vgpdf.New(opts.Width, opts.Height), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
}

// drawFigure puts the title across the top and the plots in a grid below it.
func drawFigure(dc draw.Canvas, title string, plots [][]*plot.Plot) {
	pad := vg.Points(8)

	if title != "" {
		sty := text.Style{
			Color:   color.Black,
			Font:    font.From(plotter.DefaultFont, vg.Points(16)),
			XAlign:  text.XCenter,
			YAlign:  text.YTop,
			Handler: plot.DefaultTextHandler,
		}
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(title) + 2*pad))
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      3 * pad,
		PadY:      3 * pad,
		PadLeft:   pad,
		PadRight:  pad,
		PadBottom: pad,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}
}

// Plots builds the four charts in grid order.
func Plots(table model.ResultsTable, summaries []model.Summary) ([][]*plot.Plot, error) {
	rows := slices.Clone(table)
	slices.SortStableFunc(rows, func(a, b model.ResultRow) int { return a.Threads - b.Threads })

	speedup, err := speedupPlot(rows)
	if err != nil {
		return nil, fmt.Errorf("speedup chart: %w", err)
	}
	efficiency, err := efficiencyPlot(rows)
	if err != nil {
		return nil, fmt.Errorf("efficiency chart: %w", err)
	}
	timing, err := timePlot(rows)
	if err != nil {
		return nil, fmt.Errorf("execution time chart: %w", err)
	}
	best, err := bestPlot(summaries)
	if err != nil {
		return nil, fmt.Errorf("best speedup chart: %w", err)
	}

	return [][]*plot.Plot{
		{speedup, efficiency},
		{timing, best},
	}, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Padding = vg.Millimeter

	g := plotter.NewGrid()
	g.Vertical.Color = gridColor
	g.Horizontal.Color = gridColor
	p.Add(g)
	return p
}

func points(rows model.ResultsTable, fn func(model.ResultRow) float64) plotter.XYs {
	xys := make(plotter.XYs, len(rows))
	for i, r := range rows {
		xys[i].X = float64(r.Threads)
		xys[i].Y = fn(r)
	}
	return xys
}

// addStrategies plots one line per strategy for the column chosen by col.
func addStrategies(p *plot.Plot, rows model.ResultsTable, col func(model.Strategy) model.Column) error {
	for _, s := range model.Strategies {
		l, sc, err := plotter.NewLinePoints(points(rows, col(s).Value))
		if err != nil {
			return err
		}
		l.Color = strategyColors[s]
		l.Width = vg.Points(2)
		sc.Color = strategyColors[s]
		sc.Shape = strategyGlyphs[s]
		sc.Radius = vg.Points(3)

		p.Add(l, sc)
		p.Legend.Add(s.Label(), l, sc)
	}
	return nil
}

func addReference(p *plot.Plot, label string, xys plotter.XYs) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = referenceColor
	l.Width = vg.Points(1.5)
	l.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

func speedupPlot(rows model.ResultsTable) (*plot.Plot, error) {
	p := newPlot("Speedup vs Thread Count", "Number of Threads", "Speedup")
	p.Legend.Top = true
	p.Legend.Left = true

	if err := addStrategies(p, rows, model.Strategy.Speedup); err != nil {
		return nil, err
	}
	perfect := points(rows, func(r model.ResultRow) float64 { return float64(r.Threads) })
	if err := addReference(p, "Perfect Speedup", perfect); err != nil {
		return nil, err
	}
	return p, nil
}

func efficiencyPlot(rows model.ResultsTable) (*plot.Plot, error) {
	p := newPlot("Efficiency vs Thread Count", "Number of Threads", "Efficiency (%)")

	if err := addStrategies(p, rows, model.Strategy.Efficiency); err != nil {
		return nil, err
	}
	full := plotter.XYs{
		{X: float64(rows[0].Threads), Y: 100},
		{X: float64(rows[len(rows)-1].Threads), Y: 100},
	}
	if err := addReference(p, "Perfect Efficiency", full); err != nil {
		return nil, err
	}
	return p, nil
}

func timePlot(rows model.ResultsTable) (*plot.Plot, error) {
	p := newPlot("Execution Time vs Thread Count", "Number of Threads", "Execution Time (ms)")
	p.Legend.Top = true

	if err := addStrategies(p, rows, model.Strategy.Time); err != nil {
		return nil, err
	}
	return p, nil
}

// BarLabel is the annotation drawn above a strategy's best-speedup bar.
func BarLabel(best model.BestResult) string {
	return fmt.Sprintf("%.1fx\n(%d threads)", best.Value, best.Threads)
}

func bestPlot(summaries []model.Summary) (*plot.Plot, error) {
	p := newPlot("Best Performance Comparison", "", "Best Speedup")
	if len(summaries) == 0 {
		return p, nil
	}

	names := make([]string, len(summaries))
	tops := make(plotter.XYs, len(summaries))
	annotations := make([]string, len(summaries))
	maxValue := 0.0

	for i, s := range summaries {
		bc, err := plotter.NewBarChart(plotter.Values{s.Best.Value}, vg.Points(60))
		if err != nil {
			return nil, err
		}
		c := strategyColors[s.Strategy]
		c.A = 178
		bc.Color = c
		bc.LineStyle.Width = 0
		bc.XMin = float64(i)
		p.Add(bc)

		names[i] = s.Label + "\n(Best)"
		tops[i] = plotter.XY{X: float64(i), Y: s.Best.Value}
		annotations[i] = BarLabel(s.Best)
		maxValue = max(maxValue, s.Best.Value)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: tops, Labels: annotations})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(3)}
	p.Add(labels)

	p.NominalX(names...)
	p.Y.Min = 0
	p.Y.Max = maxValue * 1.25
	return p, nil
}

package indicator

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/pplcc/plotext"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	colorSMA20 = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorSMA50 = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorGuide = color.Gray{Y: 160}
)

// Chart stacks plots vertically with a shared time axis and renders them to
// PNG.
type Chart struct {
	plots   []*plot.Plot
	heights []float64
	w       int
	h       int
}

func NewChart(w, h int) *Chart {
	return &Chart{w: w, h: h}
}

// NewIndicatorChart builds the standard two panel chart for s: closes with
// SMA20/SMA50 on top and RSI14 below.
func NewIndicatorChart(symbol string, s market.Series, w, h int) (*Chart, error) {
	if len(s) == 0 {
		return nil, ErrInsufficientData
	}

	closes := s.Closes()
	c := NewChart(w, h)

	price := newTimePlot(symbol)
	price.Y.Label.Text = "Price"
	if err := addLine(price, s, closes, "Close", color.Black); err != nil {
		return nil, err
	}
	if err := addLine(price, s, SMASeries(closes, SMA20Period), "SMA20", colorSMA20); err != nil {
		return nil, err
	}
	if err := addLine(price, s, SMASeries(closes, SMA50Period), "SMA50", colorSMA50); err != nil {
		return nil, err
	}
	price.Legend.Top = true
	c.Add(price, 0.7)

	osc := newTimePlot("RSI")
	osc.Y.Label.Text = "RSI"
	osc.Y.Min = 0
	osc.Y.Max = 100
	if err := addLine(osc, s, RSISeries(closes, RSIPeriod), "RSI14", color.Black); err != nil {
		return nil, err
	}
	for _, level := range []float64{30, 70} {
		guide := plotter.NewFunction(func(float64) float64 { return level })
		guide.Color = colorGuide
		guide.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		osc.Add(guide)
	}
	c.Add(osc, 0.3)

	return c, nil
}

func (c *Chart) Add(p *plot.Plot, height float64) {
	c.plots = append(c.plots, p)
	c.heights = append(c.heights, height)
}

func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	if len(c.plots) == 0 {
		return 0, errors.New("chart has no plots")
	}

	var axis []*plot.Axis
	for _, p := range c.plots {
		axis = append(axis, &p.X)
	}
	plotext.UniteAxisRanges(axis)

	tbl := plotext.Table{
		RowHeights: c.heights,
		ColWidths:  []float64{1},
	}

	var plots2d [][]*plot.Plot
	for _, p := range c.plots {
		plots2d = append(plots2d, []*plot.Plot{p})
	}

	h := 0.0
	for _, v := range c.heights {
		h += v * float64(c.h)
	}

	img := vgimg.New(vg.Points(float64(c.w)), vg.Points(h))
	dc := draw.New(img)

	canvases := tbl.Align(plots2d, dc)
	for i, p := range c.plots {
		p.Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	n, err := png.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("failed to write chart: %w", err)
	}

	return n, nil
}

func newTimePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())
	return p
}

// addLine plots values against bar times, skipping undefined (NaN) points.
func addLine(p *plot.Plot, s market.Series, values []float64, name string, c color.Color) error {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(s[i].Time.Unix()), Y: v})
	}
	if len(pts) == 0 {
		return nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create %s line: %w", name, err)
	}
	line.Color = c

	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

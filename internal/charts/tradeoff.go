// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	tradeoffWidth  = 800
	tradeoffHeight = 500
)

// DrawTradeoff writes the response time vs quality bubble chart as PNG.
func DrawTradeoff(ds Dataset, w io.Writer) error {
	img, err := renderChart(tradeoffChart(ds))
	if err != nil {
		return err
	}
	return encodePNG(w, img)
}

func tradeoffChart(ds Dataset) chart.Chart {
	pts := ds.Tradeoff
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.Seconds, p.Quality
	}
	qLo, qHi := ds.QualityRange()
	if qHi == qLo {
		qHi = qLo + 1
	}

	xr := &chart.ContinuousRange{Min: math.Floor(minOf(xs)*2-1) / 2, Max: math.Ceil(maxOf(xs)*2+1) / 2}
	yr := &chart.ContinuousRange{Min: math.Floor(qLo/5)*5 - 5, Max: math.Ceil(qHi/5)*5 + 5}
	zone := ds.OptimalZone
	xr.Min, xr.Max = math.Min(xr.Min, zone.X0), math.Max(xr.Max, zone.X1)
	yr.Min, yr.Max = math.Min(yr.Min, zone.Y0), math.Max(yr.Max, zone.Y1)

	axisName := chart.Style{FontSize: 12, FontColor: hex("#444444")}
	return chart.Chart{
		Title:      "Response Time vs Quality Trade-off",
		TitleStyle: chart.Style{FontSize: 16, FontColor: hex("#2A3F5F")},
		Width:      tradeoffWidth,
		Height:     tradeoffHeight,
		DPI:        72,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 120, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: hex("#E5ECF6")},
		XAxis: chart.XAxis{
			Name:      "Response Time (seconds)",
			NameStyle: axisName,
			Range:     xr,
		},
		YAxis: chart.YAxis{
			Name:           "Quality Score (%)",
			NameStyle:      axisName,
			Range:          yr,
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Strategies",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(_, _ chart.Range, i int, _, _ float64) float64 {
						return pts[i].Size / 2
					},
					DotColorProvider: func(_, _ chart.Range, _ int, _, y float64) drawing.Color {
						return chart.Viridis(y, qLo, qHi)
					},
				},
				XValues: xs,
				YValues: ys,
			},
		},
		Elements: []chart.Renderable{
			tradeoffOverlay(pts, zone, *xr, *yr),
			colorbar("Quality Score", qLo, qHi, tradeoffWidth-95),
		},
	}
}

// tradeoffOverlay draws the optimal zone and the strategy labels over the
// plot area.
func tradeoffOverlay(pts []TradeoffPoint, zone Zone, xr, yr chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		c := &canvas{r: r, dpi: 72, font: defaults.Font}
		xr.Domain, yr.Domain = cb.Width(), cb.Height()
		px := func(x, y float64) point {
			return point{float64(cb.Left + xr.Translate(x)), float64(cb.Bottom - yr.Translate(y))}
		}

		green := hex("#008000")
		a, b := px(zone.X0, zone.Y1), px(zone.X1, zone.Y0)
		c.rect(a.X, a.Y, b.X, b.Y, hex("#90EE90").WithAlpha(51), drawing.ColorTransparent, 0, nil)
		c.rect(a.X, a.Y, b.X, b.Y, drawing.ColorTransparent, green, 2, []float64{6, 4})
		if zone.Label != "" {
			c.text(zone.Label, (a.X+b.X)/2, a.Y+6, textStyle{Size: 12, Color: green, H: alignCenter, V: alignTop})
		}

		for _, p := range pts {
			at := px(p.Seconds, p.Quality)
			c.text(p.Strategy, at.X, at.Y-p.Size/2-6, textStyle{Size: 11, Color: hex("#2A3F5F"), H: alignCenter})
		}
	}
}

// colorbar draws a vertical Viridis scale at pixel column x.
func colorbar(title string, lo, hi float64, x int) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		c := &canvas{r: r, dpi: 72, font: defaults.Font}
		drawColorbar(c, title, lo, hi, float64(x), float64(cb.Top)+20, float64(cb.Bottom),
			func(v float64) drawing.Color { return chart.Viridis(v, lo, hi) })
	}
}

// drawColorbar paints a gradient from lo at the bottom to hi at the top
// with five tick labels.
func drawColorbar(c *canvas, title string, lo, hi, x, top, bottom float64, color func(float64) drawing.Color) {
	const width = 18.0
	for y := math.Floor(top); y < bottom; y++ {
		v := hi - (y-top)/(bottom-top)*(hi-lo)
		c.rect(x, y, x+width, y+1, color(v), drawing.ColorTransparent, 0, nil)
	}
	c.rect(x, top, x+width, bottom, drawing.ColorTransparent, hex("#444444"), 1, nil)

	for i := 0; i <= 4; i++ {
		v := lo + (hi-lo)*float64(i)/4
		y := bottom - (bottom-top)*float64(i)/4
		c.line(x+width, y, x+width+4, y, hex("#444444"), 1, nil)
		c.text(fmt.Sprintf("%.0f", v), x+width+7, y, textStyle{Size: 10, Color: hex("#444444"), V: alignMiddle})
	}
	if title != "" {
		c.text(title, x+width/2, top-8, textStyle{Size: 11, Color: hex("#2A3F5F"), H: alignCenter})
	}
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Max(m, v)
	}
	return m
}

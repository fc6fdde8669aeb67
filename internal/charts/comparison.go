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
	comparisonWidth  = 1200
	comparisonHeight = 800
)

// Plotly's default qualitative sequence, used for the metric bars.
var barColors = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A"}

const (
	confidenceColor = "#FF6B6B"
	standardColor   = "#4ECDC4"
	combinedColor   = "#FF6B6B"
)

type box struct{ Left, Top, Right, Bottom float64 }

func (b box) width() float64  { return b.Right - b.Left }
func (b box) height() float64 { return b.Bottom - b.Top }

var (
	barPanel   = box{Left: 80, Top: 110, Right: 500, Bottom: 390}
	linePanel  = box{Left: 560, Top: 95, Right: 1000, Bottom: 410}
	radarPanel = box{Left: 80, Top: 470, Right: 1000, Bottom: 780}
	legendLeft = 1025.0
)

// DrawComparison writes the three-panel strategy comparison as PNG.
func DrawComparison(ds Dataset, w io.Writer) error {
	c, err := newCanvas(comparisonWidth, comparisonHeight, 72)
	if err != nil {
		return err
	}
	black := drawing.ColorBlack
	dark := hex("#2A3F5F")

	c.text("Prompting Strategy Comparison Analysis", barPanel.Left, 45,
		textStyle{Size: 24, Color: dark})

	subtitle := textStyle{Size: 16, Color: dark, H: alignCenter}
	c.text("Overall Performance", (barPanel.Left+barPanel.Right)/2, barPanel.Top-20, subtitle)
	c.text("Confidence Levels", (linePanel.Left+linePanel.Right)/2, barPanel.Top-20, subtitle)
	c.text("Strategy Effectiveness", (radarPanel.Left+radarPanel.Right)/2, radarPanel.Top-15, subtitle)

	c.drawBars(ds, barPanel)

	baseName, base := ds.Baseline()
	bestName, best := ds.Best()
	radius := radarPanel.height()/2 - 30
	c.polar((radarPanel.Left+radarPanel.Right)/2, (radarPanel.Top+radarPanel.Bottom)/2+10, radius,
		polarOptions{
			Axes:      ds.MetricNames(),
			Max:       100,
			Rings:     []float64{20, 40, 60, 80, 100},
			StartDeg:  0,
			FontSize:  12,
			LineWidth: 2,
			FillAlpha: 128,
		},
		[]polarSeries{
			{Name: baseName, Values: base, Color: hex(standardColor)},
			{Name: bestName, Values: best, Color: hex(combinedColor)},
		})

	// Legend entries follow trace order: bars, the line, then the radar.
	type entry struct {
		name  string
		color drawing.Color
		line  bool
	}
	var legend []entry
	for i, m := range ds.Metrics {
		legend = append(legend, entry{m.Name, hex(barColors[i%len(barColors)]), false})
	}
	legend = append(legend,
		entry{"Confidence Score", hex(confidenceColor), true},
		entry{baseName, hex(standardColor), false},
		entry{bestName, hex(combinedColor), false},
	)
	for i, e := range legend {
		y := 120 + float64(i)*22
		if e.line {
			c.line(legendLeft, y, legendLeft+24, y, e.color, 3, nil)
			c.circle(legendLeft+12, y, 5, e.color, drawing.ColorTransparent, 0, nil)
		} else {
			c.rect(legendLeft+4, y-7, legendLeft+20, y+7, e.color, drawing.ColorTransparent, 0, nil)
		}
		c.text(e.name, legendLeft+32, y, textStyle{Size: 12, Color: black, V: alignMiddle})
	}

	img, err := c.rgba()
	if err != nil {
		return err
	}
	line, err := renderChart(confidenceChart(ds, int(linePanel.width()), int(linePanel.height())))
	if err != nil {
		return err
	}
	paste(img, line, int(linePanel.Left), int(linePanel.Top))
	return encodePNG(w, img)
}

// drawBars draws grouped bars: one group per strategy, one bar per metric.
func (c *canvas) drawBars(ds Dataset, b box) {
	const yMax = 100.0
	grid := hex("#E5ECF6")
	axis := hex("#444444")
	c.rect(b.Left, b.Top, b.Right, b.Bottom, grid, drawing.ColorTransparent, 0, nil)

	y := func(v float64) float64 { return b.Bottom - v/yMax*b.height() }
	for v := 0.0; v <= yMax; v += 20 {
		c.line(b.Left, y(v), b.Right, y(v), drawing.ColorWhite, 1, nil)
		c.text(fmt.Sprintf("%.0f", v), b.Left-6, y(v), textStyle{Size: 11, Color: axis, H: alignRight, V: alignMiddle})
	}

	groups := len(ds.Strategies)
	groupW := b.width() / float64(groups)
	barW := groupW * 0.8 / float64(len(ds.Metrics))
	for g, name := range ds.Strategies {
		gx := b.Left + groupW*float64(g) + groupW*0.1
		for m, metric := range ds.Metrics {
			x0 := gx + barW*float64(m)
			c.rect(x0, y(metric.Values[g]), x0+barW, b.Bottom,
				hex(barColors[m%len(barColors)]), drawing.ColorTransparent, 0, nil)
		}
		c.text(name, b.Left+groupW*(float64(g)+0.5), b.Bottom+8,
			textStyle{Size: 11, Color: axis, H: alignCenter, V: alignTop})
	}

	c.text("Strategy", (b.Left+b.Right)/2, b.Bottom+40, textStyle{Size: 13, Color: axis, H: alignCenter})
	c.rotatedText("Score (%)", b.Left-50, (b.Top+b.Bottom)/2, textStyle{Size: 13, Color: axis})
}

// confidenceChart plots the confidence metric per strategy as a line
// with markers.
func confidenceChart(ds Dataset, width, height int) chart.Chart {
	m := ds.ConfidenceMetric()
	xs := make([]float64, len(m.Values))
	ticks := make([]chart.Tick, len(ds.Strategies))
	lo, hi := m.Values[0], m.Values[0]
	for i, v := range m.Values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: ds.Strategies[i]}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	yMin := math.Floor((lo-5)/5) * 5
	yMax := math.Ceil((hi+5)/5) * 5
	var yTicks []chart.Tick
	for v := yMin; v <= yMax; v += 5 {
		yTicks = append(yTicks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}

	color := hex(confidenceColor)
	axisText := chart.Style{FontSize: 10, FontColor: hex("#444444")}
	return chart.Chart{
		Width:  width,
		Height: height,
		DPI:    72,
		Background: chart.Style{
			Padding: chart.Box{Top: 25, Left: 10, Right: 20, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: hex("#E5ECF6")},
		XAxis: chart.XAxis{
			Name:      "Strategy",
			NameStyle: chart.Style{FontSize: 13, FontColor: hex("#444444")},
			Style:     axisText,
			Range:     &chart.ContinuousRange{Min: -0.4, Max: float64(len(xs)) - 0.6},
			Ticks:     ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Confidence (%)",
			NameStyle:      chart.Style{FontSize: 13, FontColor: hex("#444444")},
			Style:          axisText,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:          yTicks,
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Confidence Score",
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 3,
					DotColor:    color,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: m.Values,
			},
		},
	}
}

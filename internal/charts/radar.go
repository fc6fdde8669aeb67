// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	radarWidth  = 2100
	radarHeight = 900
	radarDPI    = 150
)

type polarSeries struct {
	Name   string
	Values []float64
	Color  drawing.Color
	Labels bool // print NN% just outside each vertex
}

type polarOptions struct {
	Axes      []string
	Max       float64
	Rings     []float64
	StartDeg  float64 // first axis, counterclockwise from east
	Clockwise bool
	FontSize  float64
	LineWidth float64
	FillAlpha uint8
}

func (o polarOptions) angle(i int) float64 {
	step := 360 / float64(len(o.Axes))
	deg := o.StartDeg + float64(i)*step
	if o.Clockwise {
		deg = o.StartDeg - float64(i)*step
	}
	return deg * math.Pi / 180
}

// polar draws a radar plot centered on (cx,cy).
func (c *canvas) polar(cx, cy, radius float64, o polarOptions, series []polarSeries) {
	at := func(i int, v float64) point {
		r := radius * v / o.Max
		a := o.angle(i)
		return point{cx + r*math.Cos(a), cy - r*math.Sin(a)}
	}
	grid := hex("#CCCCCC")
	gray := hex("#555555")

	for _, ring := range o.Rings {
		c.circle(cx, cy, radius*ring/o.Max, drawing.ColorTransparent, grid, 1, nil)
	}
	c.circle(cx, cy, radius, drawing.ColorTransparent, gray, 1, nil)
	for i := range o.Axes {
		p := at(i, o.Max)
		c.line(cx, cy, p.X, p.Y, grid, 1, nil)
	}

	// Ring labels sit halfway between the first two spokes.
	mid := (o.angle(0) + o.angle(1)) / 2
	for _, ring := range o.Rings {
		r := radius * ring / o.Max
		c.text(fmt.Sprintf("%.0f", ring), cx+r*math.Cos(mid), cy-r*math.Sin(mid),
			textStyle{Size: o.FontSize * 0.75, Color: gray, H: alignCenter, V: alignMiddle})
	}

	for i, name := range o.Axes {
		a := o.angle(i)
		r := radius + c.pt(o.FontSize)*0.9
		st := textStyle{Size: o.FontSize, Color: drawing.ColorBlack, H: alignCenter, V: alignMiddle}
		switch cos := math.Cos(a); {
		case cos > 0.3:
			st.H = alignLeft
		case cos < -0.3:
			st.H = alignRight
		}
		c.text(name, cx+r*math.Cos(a), cy-r*math.Sin(a), st)
	}

	for _, s := range series {
		pts := make([]point, len(s.Values))
		for i, v := range s.Values {
			pts[i] = at(i, v)
		}
		c.polygon(pts, s.Color.WithAlpha(o.FillAlpha), s.Color, c.pt(o.LineWidth), nil)
		for _, p := range pts {
			c.circle(p.X, p.Y, c.pt(o.LineWidth)*1.5, s.Color, drawing.ColorTransparent, 0, nil)
		}
		if !s.Labels {
			continue
		}
		for i, v := range s.Values {
			p := at(i, math.Min(v+5, o.Max*1.08))
			c.text(fmt.Sprintf("%.0f%%", v), p.X, p.Y,
				textStyle{Size: o.FontSize * 0.9, Color: s.Color.WithAlpha(255), H: alignCenter, V: alignMiddle, Bold: true})
		}
	}
}

// DrawRadarPair writes the before/after radar panels as PNG.
func DrawRadarPair(ds Dataset, w io.Writer) error {
	c, err := newCanvas(radarWidth, radarHeight, radarDPI)
	if err != nil {
		return err
	}
	ba := ds.BeforeAfter
	o := polarOptions{
		Axes:      ba.Axes,
		Max:       100,
		Rings:     []float64{20, 40, 60, 80, 100},
		StartDeg:  90,
		Clockwise: true,
		FontSize:  11,
		LineWidth: 2,
		FillAlpha: 64,
	}

	panels := []struct {
		title  string
		values []float64
		color  drawing.Color
	}{
		{ba.BeforeLabel, ba.Before, hex("#FF6B6B")},
		{ba.AfterLabel, ba.After, hex("#4ECDC4")},
	}

	const radius = 280.0
	cy := float64(radarHeight)/2 + 50
	for i, p := range panels {
		cx := float64(radarWidth) * (float64(i) + 0.5) / float64(len(panels))
		c.polar(cx, cy, radius, o, []polarSeries{{Name: p.title, Values: p.values, Color: p.color, Labels: true}})
		c.text(p.title, cx, cy-radius-c.pt(11)*2-c.pt(20), textStyle{
			Size: 14, Color: drawing.ColorBlack, H: alignCenter, Bold: true,
		})
	}

	c.text("Performance Comparison: Single vs Multi-Strategy", float64(radarWidth)/2, c.pt(24), textStyle{
		Size: 16, Color: drawing.ColorBlack, H: alignCenter, Bold: true,
	})
	return c.save(w)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"
)

type hAlign int

const (
	alignLeft hAlign = iota
	alignCenter
	alignRight
)

type vAlign int

const (
	alignBaseline vAlign = iota
	alignMiddle
	alignTop
	alignBottom
)

// textStyle describes one run of text. Size is in points at the canvas DPI.
type textStyle struct {
	Size   float64
	Color  drawing.Color
	H      hAlign
	V      vAlign
	Bold   bool
	Rotate float64 // degrees
}

// canvas draws shapes and text on a go-chart raster renderer with a
// white background.
type canvas struct {
	r    chart.Renderer
	w, h int
	dpi  float64
	font *truetype.Font
}

func newCanvas(w, h int, dpi float64) (*canvas, error) {
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, fmt.Errorf("creating %dx%d canvas: %w", w, h, err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	r.SetDPI(dpi)
	c := &canvas{r: r, w: w, h: h, dpi: dpi, font: f}
	c.rect(0, 0, float64(w), float64(h), drawing.ColorWhite, drawing.ColorTransparent, 0, nil)
	return c, nil
}

// pt converts points to pixels.
func (c *canvas) pt(v float64) float64 { return v * c.dpi / 72 }

func (c *canvas) path(pts []point, closed bool) {
	for i, p := range pts {
		if i == 0 {
			c.r.MoveTo(p.px())
			continue
		}
		c.r.LineTo(p.px())
	}
	if closed {
		c.r.Close()
	}
}

// paint fills and strokes the current path. A zero-alpha color or a
// non-positive width skips that half.
func (c *canvas) paint(fill, stroke drawing.Color, width float64, dash []float64) {
	doFill := fill.A > 0
	doStroke := stroke.A > 0 && width > 0
	if doFill {
		c.r.SetFillColor(fill)
	}
	if doStroke {
		c.r.SetStrokeColor(stroke)
		c.r.SetStrokeWidth(width)
		c.r.SetStrokeDashArray(dash)
	}
	switch {
	case doFill && doStroke:
		c.r.FillStroke()
	case doFill:
		c.r.Fill()
	case doStroke:
		c.r.Stroke()
	}
	c.r.ResetStyle()
}

func (c *canvas) rect(x0, y0, x1, y1 float64, fill, stroke drawing.Color, width float64, dash []float64) {
	c.polygon([]point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, fill, stroke, width, dash)
}

func (c *canvas) polygon(pts []point, fill, stroke drawing.Color, width float64, dash []float64) {
	c.path(pts, true)
	c.paint(fill, stroke, width, dash)
}

func (c *canvas) polyline(pts []point, stroke drawing.Color, width float64, dash []float64) {
	c.path(pts, false)
	c.paint(drawing.ColorTransparent, stroke, width, dash)
}

func (c *canvas) line(x0, y0, x1, y1 float64, stroke drawing.Color, width float64, dash []float64) {
	c.polyline([]point{{x0, y0}, {x1, y1}}, stroke, width, dash)
}

// roundRect draws a rectangle whose corners are quarter curves of radius rad.
func (c *canvas) roundRect(x0, y0, x1, y1, rad float64, fill, stroke drawing.Color, width float64) {
	rad = math.Min(rad, math.Min((x1-x0)/2, (y1-y0)/2))
	q := func(cx, cy, x, y float64) { c.r.QuadCurveTo(int(cx), int(cy), int(x), int(y)) }
	c.r.MoveTo(point{x0 + rad, y0}.px())
	c.r.LineTo(point{x1 - rad, y0}.px())
	q(x1, y0, x1, y0+rad)
	c.r.LineTo(point{x1, y1 - rad}.px())
	q(x1, y1, x1-rad, y1)
	c.r.LineTo(point{x0 + rad, y1}.px())
	q(x0, y1, x0, y1-rad)
	c.r.LineTo(point{x0, y0 + rad}.px())
	q(x0, y0, x0+rad, y0)
	c.r.Close()
	c.paint(fill, stroke, width, nil)
}

func (c *canvas) circle(cx, cy, radius float64, fill, stroke drawing.Color, width float64, dash []float64) {
	if dash == nil {
		c.r.Circle(radius, int(math.Round(cx)), int(math.Round(cy)))
		c.paint(fill, stroke, width, nil)
		return
	}
	// Dashes only follow a polyline, so approximate the circle.
	const steps = 180
	pts := make([]point, steps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / steps
		pts[i] = point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	c.polygon(pts, fill, drawing.ColorTransparent, 0, nil)
	c.polygon(pts, drawing.ColorTransparent, stroke, width, dash)
}

// arrow draws a shaft from (x0,y0) to (x1,y1) with a filled head of
// length head at the end.
func (c *canvas) arrow(x0, y0, x1, y1 float64, color drawing.Color, width, head float64) {
	angle := math.Atan2(y1-y0, x1-x0)
	bx := x1 - head*math.Cos(angle)
	by := y1 - head*math.Sin(angle)
	c.line(x0, y0, bx, by, color, width, nil)

	half := head * 0.5
	nx, ny := -math.Sin(angle)*half, math.Cos(angle)*half
	c.polygon([]point{{x1, y1}, {bx + nx, by + ny}, {bx - nx, by - ny}}, color, drawing.ColorTransparent, 0, nil)
}

// lineHeight returns the pixel distance between baselines at size.
func (c *canvas) lineHeight(size float64) float64 { return c.pt(size) * 1.25 }

// measure returns the pixel width and cap height of one line of text.
func (c *canvas) measure(s string, size float64) (float64, float64) {
	c.r.SetFont(c.font)
	c.r.SetFontSize(size)
	b := c.r.MeasureText(s)
	c.r.ResetStyle()
	return float64(b.Width()), float64(b.Height())
}

// text draws s anchored at (x,y). Newlines split it into centered lines
// stacked around the anchor.
func (c *canvas) text(s string, x, y float64, st textStyle) {
	lines := strings.Split(s, "\n")
	lh := c.lineHeight(st.Size)
	_, capH := c.measure("M", st.Size)

	// Baseline of the first line.
	total := lh * float64(len(lines)-1)
	var base float64
	switch st.V {
	case alignMiddle:
		base = y - total/2 + capH/2
	case alignTop:
		base = y + capH
	case alignBottom:
		base = y - total
	default:
		base = y
	}

	for i, ln := range lines {
		w, _ := c.measure(ln, st.Size)
		lx := x
		switch st.H {
		case alignCenter:
			lx = x - w/2
		case alignRight:
			lx = x - w
		}
		c.textLine(ln, lx, base+float64(i)*lh, st)
	}
}

func (c *canvas) textLine(s string, x, y float64, st textStyle) {
	stamp := func(dx float64) {
		c.r.SetFont(c.font)
		c.r.SetFontSize(st.Size)
		c.r.SetFontColor(st.Color)
		if st.Rotate != 0 {
			c.r.SetTextRotation(chart.DegreesToRadians(st.Rotate))
		}
		c.r.Text(s, int(math.Round(x+dx)), int(math.Round(y)))
		c.r.ClearTextRotation()
		c.r.ResetStyle()
	}
	stamp(0)
	if st.Bold {
		stamp(math.Max(1, c.pt(0.5)))
	}
}

// rotatedText draws s reading bottom to top, centered on (x,y).
func (c *canvas) rotatedText(s string, x, y float64, st textStyle) {
	w, capH := c.measure(s, st.Size)
	st.Rotate = 270
	c.textLine(s, x+capH/2, y+w/2, st)
}

func (c *canvas) save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// rgba returns the rendered pixels.
func (c *canvas) rgba() (*image.RGBA, error) {
	var capture rgbaCapture
	if err := c.r.Save(&capture); err != nil {
		return nil, fmt.Errorf("rasterizing canvas: %w", err)
	}
	return capture.rgba()
}

// rgbaCapture receives a renderer's pixels either directly through
// chart.RGBACollector or as encoded PNG bytes.
type rgbaCapture struct {
	img *image.RGBA
	buf bytes.Buffer
}

func (r *rgbaCapture) SetRGBA(i *image.RGBA) { r.img = i }

func (r *rgbaCapture) Write(p []byte) (int, error) { return r.buf.Write(p) }

func (r *rgbaCapture) rgba() (*image.RGBA, error) {
	if r.img != nil {
		return r.img, nil
	}
	src, err := png.Decode(&r.buf)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered png: %w", err)
	}
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst, nil
}

var _ chart.RGBACollector = (*rgbaCapture)(nil)

// renderChart rasterizes a go-chart chart.
func renderChart(ch chart.Chart) (*image.RGBA, error) {
	var capture rgbaCapture
	if err := ch.Render(chart.PNG, &capture); err != nil {
		return nil, fmt.Errorf("rendering %q: %w", ch.Title, err)
	}
	return capture.rgba()
}

// encodePNG writes img as PNG.
func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// paste copies src onto dst with its top-left corner at (x,y).
func paste(dst *image.RGBA, src image.Image, x, y int) {
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Over)
}

type point struct{ X, Y float64 }

func (p point) px() (int, int) { return int(math.Round(p.X)), int(math.Round(p.Y)) }

// frame maps data coordinates with y pointing up onto a pixel box.
type frame struct {
	x0, y0, x1, y1 float64 // data bounds
	left, top      float64 // pixel origin
	sx, sy         float64 // pixels per unit
}

// fitFrame maps the data bounds into the pixel box keeping a 1:1 aspect
// ratio, centered along the slack axis.
func fitFrame(x0, y0, x1, y1, left, top, width, height float64) frame {
	s := math.Min(width/(x1-x0), height/(y1-y0))
	return frame{
		x0: x0, y0: y0, x1: x1, y1: y1,
		left: left + (width-s*(x1-x0))/2,
		top:  top + (height-s*(y1-y0))/2,
		sx:   s, sy: s,
	}
}

func (f frame) pt(x, y float64) point {
	return point{f.left + (x-f.x0)*f.sx, f.top + (f.y1-y)*f.sy}
}

// hex parses a #rrggbb color.
func hex(s string) drawing.Color { return drawing.ColorFromHex(strings.TrimPrefix(s, "#")) }

// lerpColor interpolates linearly through stops for t in [0,1].
func lerpColor(stops []drawing.Color, t float64) drawing.Color {
	t = math.Max(0, math.Min(1, t))
	if len(stops) == 1 {
		return stops[0]
	}
	pos := t * float64(len(stops)-1)
	i := int(math.Floor(pos))
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// contrastText returns black or white, whichever reads better on bg.
func contrastText(bg drawing.Color) drawing.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum < 140 {
		return drawing.ColorWhite
	}
	return drawing.ColorBlack
}

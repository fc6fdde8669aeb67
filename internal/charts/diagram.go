// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	diagramWidth  = 2100
	diagramHeight = 1500
	diagramDPI    = 150
)

type strategyBox struct {
	Key   string
	Label string
	X, Y  float64
	Color string
}

var diagramStrategies = []strategyBox{
	{Key: "Role", Label: "Role-Based\nPrompting\n(5 Personas)", X: 1, Y: 8, Color: "#FF6B6B"},
	{Key: "Fewshot", Label: "Few-Shot\nLearning\n(Examples)", X: 13, Y: 8, Color: "#4ECDC4"},
	{Key: "Cot", Label: "Chain-of-\nThought\n(Reasoning)", X: 1, Y: 1, Color: "#45B7D1"},
	{Key: "Consistency", Label: "Self-\nConsistency\n(3x Validation)", X: 13, Y: 1, Color: "#96CEB4"},
	{Key: "Interactive", Label: "Interactive\nPrompt\nEngineering", X: 7, Y: 9, Color: "#FFA07A"},
}

var diagramIndicators = []struct {
	X     float64
	Label string
}{
	{1, "Performance: +40%"},
	{7, "Response Quality: +30%"},
	{13, "Consistency: +41%"},
}

const (
	outputColor = "#FFD700"
	boxWidth    = 3.0
	boxHeight   = 1.5
	boxPad      = 0.1
)

// DrawDiagram writes the strategy synergy diagram as PNG.
func DrawDiagram(w io.Writer) error {
	c, err := newCanvas(diagramWidth, diagramHeight, diagramDPI)
	if err != nil {
		return err
	}
	f := fitFrame(0, -1, 14, 12, 30, 30, diagramWidth-60, diagramHeight-60)
	pad := boxPad * f.sx
	black := drawing.ColorBlack

	// Center output box.
	tl, br := f.pt(5, 6), f.pt(9, 4)
	c.roundRect(tl.X-pad, tl.Y-pad, br.X+pad, br.Y+pad, pad, hex(outputColor), black, c.pt(3))

	center := f.pt(7, 5)
	arrowColor := black.WithAlpha(153)
	for _, s := range diagramStrategies {
		tl, br := f.pt(s.X, s.Y+boxHeight), f.pt(s.X+boxWidth, s.Y)
		c.roundRect(tl.X-pad, tl.Y-pad, br.X+pad, br.Y+pad, pad, hex(s.Color).WithAlpha(204), black, c.pt(2))

		startY := s.Y + boxHeight
		if s.Y > 5 {
			startY = s.Y
		}
		start := f.pt(s.X+boxWidth/2, startY)
		c.arrow(start.X, start.Y, center.X, center.Y, arrowColor, c.pt(2), c.pt(10))
	}

	gold := hex(outputColor)
	c.circle(center.X, center.Y, 3.5*f.sx, gold.WithAlpha(51), gold.WithAlpha(128), c.pt(3),
		[]float64{c.pt(3.7 * 3), c.pt(1.6 * 3)})

	c.text("ULTRA-SMART\nOUTPUT\n93% Confidence", center.X, center.Y,
		textStyle{Size: 14, Color: black, H: alignCenter, V: alignMiddle, Bold: true})

	for _, s := range diagramStrategies {
		mid := f.pt(s.X+boxWidth/2, s.Y+boxHeight/2)
		c.text(s.Label, mid.X, mid.Y,
			textStyle{Size: 10, Color: drawing.ColorWhite, H: alignCenter, V: alignMiddle, Bold: true})
	}

	title := f.pt(7, 11)
	c.text("5-STRATEGY SYNERGISTIC SYSTEM", title.X, title.Y,
		textStyle{Size: 18, Color: black, H: alignCenter, Bold: true})
	sub := f.pt(7, 10.3)
	c.text("Each strategy enhances the others, creating emergent capabilities", sub.X, sub.Y,
		textStyle{Size: 11, Color: hex("#444444"), H: alignCenter})

	for _, ind := range diagramIndicators {
		p := f.pt(ind.X, -0.5)
		c.text(ind.Label, p.X, p.Y, textStyle{Size: 11, Color: black, Bold: true})
	}

	for i, s := range diagramStrategies {
		y := 2 - float64(i)*0.4
		sq := f.pt(0.5, y)
		side := c.pt(10)
		c.rect(sq.X, sq.Y-side, sq.X+side, sq.Y, hex(s.Color), drawing.ColorTransparent, 0, nil)
		label := f.pt(0.8, y)
		c.text(s.Key, label.X, label.Y, textStyle{Size: 9, Color: black})
	}

	return c.save(w)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	heatmapWidth  = 700
	heatmapHeight = 500
)

// rdYlBu runs from red at the low end to blue at the high end.
var rdYlBu = []string{
	"#A50026", "#D73027", "#F46D43", "#FDAE61", "#FEE090", "#FFFFBF",
	"#E0F3F8", "#ABD9E9", "#74ADD1", "#4575B4", "#313695",
}

func rdYlBuColor(v, lo, hi float64) drawing.Color {
	stops := make([]drawing.Color, len(rdYlBu))
	for i, h := range rdYlBu {
		stops[i] = hex(h)
	}
	if hi == lo {
		return lerpColor(stops, 0.5)
	}
	return lerpColor(stops, (v-lo)/(hi-lo))
}

// DrawHeatmap writes the role by strategy effectiveness matrix as PNG.
// The first role is the bottom row.
func DrawHeatmap(ds Dataset, w io.Writer) error {
	c, err := newCanvas(heatmapWidth, heatmapHeight, 72)
	if err != nil {
		return err
	}
	h := ds.Heatmap
	lo, hi := h.ScoreRange()
	grid := box{Left: 150, Top: 70, Right: 570, Bottom: 410}
	axis := hex("#444444")

	c.text("Role-Strategy Effectiveness Matrix", 20, 38, textStyle{Size: 18, Color: hex("#2A3F5F")})

	cellW := grid.width() / float64(len(h.Strategies))
	cellH := grid.height() / float64(len(h.Roles))
	for i, row := range h.Scores {
		top := grid.Bottom - cellH*float64(i+1)
		for j, v := range row {
			left := grid.Left + cellW*float64(j)
			fill := rdYlBuColor(v, lo, hi)
			c.rect(left, top, left+cellW, top+cellH, fill, drawing.ColorTransparent, 0, nil)
			c.text(fmt.Sprintf("%.0f%%", v), left+cellW/2, top+cellH/2,
				textStyle{Size: 14, Color: contrastText(fill), H: alignCenter, V: alignMiddle})
		}
		c.text(h.Roles[i], grid.Left-8, top+cellH/2, textStyle{Size: 11, Color: axis, H: alignRight, V: alignMiddle})
	}
	for j, name := range h.Strategies {
		c.text(name, grid.Left+cellW*(float64(j)+0.5), grid.Bottom+8,
			textStyle{Size: 11, Color: axis, H: alignCenter, V: alignTop})
	}

	c.text("Strategy", (grid.Left+grid.Right)/2, grid.Bottom+48, textStyle{Size: 13, Color: axis, H: alignCenter})
	c.rotatedText("Role", 18, (grid.Top+grid.Bottom)/2, textStyle{Size: 13, Color: axis})

	drawColorbar(c, "", lo, hi, grid.Right+25, grid.Top, grid.Bottom,
		func(v float64) drawing.Color { return rdYlBuColor(v, lo, hi) })
	return c.save(w)
}

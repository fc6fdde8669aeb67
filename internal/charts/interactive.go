// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart IDs are fixed so repeated runs write identical HTML.
const (
	idComparisonBar   = "strategy_comparison_bar"
	idComparisonLine  = "strategy_comparison_line"
	idComparisonRadar = "strategy_comparison_radar"
	idTradeoff        = "time_quality_tradeoff"
	idHeatmap         = "role_strategy_heatmap"
)

var viridisStops = []string{"#440154", "#3B528B", "#21918C", "#5EC962", "#FDE725"}

func initOpts(id, title, width, height, assetsHost string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID:    id,
		PageTitle:  title,
		Width:      width,
		Height:     height,
		AssetsHost: assetsHost,
	})
}

// ComparisonHTML writes the interactive strategy comparison page.
func ComparisonHTML(ds Dataset, assetsHost string, w io.Writer) error {
	const title = "Prompting Strategy Comparison Analysis"

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(idComparisonBar, title, "1100px", "420px", assetsHost),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Overall Performance"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0", Orient: "vertical"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score (%)", Min: 0, Max: 100}),
	)
	bar.SetXAxis(ds.Strategies)
	for i, m := range ds.Metrics {
		data := make([]opts.BarData, len(m.Values))
		for j, v := range m.Values {
			data[j] = opts.BarData{Value: v}
		}
		bar.AddSeries(m.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: barColors[i%len(barColors)]}))
	}

	conf := ds.ConfidenceMetric()
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(idComparisonLine, title, "1100px", "360px", assetsHost),
		charts.WithTitleOpts(opts.Title{Title: "Confidence Levels"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Confidence (%)", Min: "dataMin"}),
	)
	points := make([]opts.LineData, len(conf.Values))
	for i, v := range conf.Values {
		points[i] = opts.LineData{Value: v, Symbol: "circle", SymbolSize: 10}
	}
	line.SetXAxis(ds.Strategies).AddSeries("Confidence Score", points,
		charts.WithLineStyleOpts(opts.LineStyle{Color: confidenceColor, Width: 3}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: confidenceColor}),
	)

	indicators := make([]*opts.Indicator, len(ds.Metrics))
	for i, m := range ds.Metrics {
		indicators[i] = &opts.Indicator{Name: m.Name, Max: 100}
	}
	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		initOpts(idComparisonRadar, title, "1100px", "480px", assetsHost),
		charts.WithTitleOpts(opts.Title{Title: "Strategy Effectiveness"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0", Orient: "vertical"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators, Shape: "circle", SplitNumber: 5}),
	)
	baseName, base := ds.Baseline()
	bestName, best := ds.Best()
	for _, s := range []struct {
		name   string
		values []float64
		color  string
	}{
		{baseName, base, standardColor},
		{bestName, best, combinedColor},
	} {
		radar.AddSeries(s.name, []opts.RadarData{{Name: s.name, Value: s.values}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.color, Width: 2}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: s.color, Opacity: opts.Float(0.5)}),
		)
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	if assetsHost != "" {
		page.SetAssetsHost(assetsHost)
	}
	page.AddCharts(bar, line, radar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering comparison html: %w", err)
	}
	return nil
}

// TradeoffHTML writes the interactive response time vs quality chart.
func TradeoffHTML(ds Dataset, assetsHost string, w io.Writer) error {
	const title = "Response Time vs Quality Trade-off"
	qLo, qHi := ds.QualityRange()
	zone := ds.OptimalZone

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		initOpts(idTradeoff, title, "800px", "500px", assetsHost),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Response Time (seconds)", Type: "value", Min: "dataMin"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quality Score (%)", Type: "value", Min: "dataMin"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(qLo),
			Max:        float32(qHi),
			Dimension:  "1",
			Right:      "0",
			Text:       []string{"Quality Score"},
			InRange:    &opts.VisualMapInRange{Color: viridisStops},
		}),
	)

	data := make([]opts.ScatterData, len(ds.Tradeoff))
	for i, p := range ds.Tradeoff {
		data[i] = opts.ScatterData{
			Name:       p.Strategy,
			Value:      []float64{p.Seconds, p.Quality},
			SymbolSize: int(p.Size),
		}
	}
	sc.AddSeries("Strategies", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "{b}"}),
		charts.WithMarkAreaNameCoordItemOpts(opts.MarkAreaNameCoordItem{
			Name:        zone.Label,
			Coordinate0: []interface{}{zone.X0, zone.Y0},
			Coordinate1: []interface{}{zone.X1, zone.Y1},
			ItemStyle: &opts.ItemStyle{
				Color:       "rgba(144, 238, 144, 0.2)",
				BorderColor: "green",
				BorderWidth: 2,
			},
		}),
	)
	if err := sc.Render(w); err != nil {
		return fmt.Errorf("rendering trade-off html: %w", err)
	}
	return nil
}

// HeatmapHTML writes the interactive role by strategy matrix.
func HeatmapHTML(ds Dataset, assetsHost string, w io.Writer) error {
	const title = "Role-Strategy Effectiveness Matrix"
	h := ds.Heatmap
	lo, hi := h.ScoreRange()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(idHeatmap, title, "700px", "500px", assetsHost),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Strategy", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Role", Type: "category", Data: h.Roles}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Right:      "0",
			InRange:    &opts.VisualMapInRange{Color: rdYlBu},
		}),
	)
	hm.SetXAxis(h.Strategies)

	var cells []opts.HeatMapData
	for i, row := range h.Scores {
		for j, v := range row {
			cells = append(cells, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	hm.AddSeries("Effectiveness", cells,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			FontSize:  14,
			Formatter: opts.FuncOpts("function (p) { return p.value[2] + '%'; }"),
		}),
	)
	if err := hm.Render(w); err != nil {
		return fmt.Errorf("rendering heatmap html: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package charts draws the prompting strategy visualizations: a synergy
// diagram, a before/after radar pair, a multi-panel comparison, a
// response time vs quality trade-off, and a role by strategy heatmap.
// Every chart is a PNG; the last three also have an interactive HTML
// version.
package charts

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/reportsmith/pkg/types"
)

// Chart names accepted by Generate.
const (
	ChartDiagram    = "diagram"
	ChartRadar      = "radar"
	ChartComparison = "comparison"
	ChartTradeoff   = "tradeoff"
	ChartHeatmap    = "heatmap"
)

type chartDef struct {
	name     string
	png      string
	html     string
	drawPNG  func(Dataset, io.Writer) error
	drawHTML func(Dataset, string, io.Writer) error
}

var registry = []chartDef{
	{
		name:    ChartDiagram,
		png:     "strategy_diagram.png",
		drawPNG: func(_ Dataset, w io.Writer) error { return DrawDiagram(w) },
	},
	{
		name:    ChartRadar,
		png:     "comparison_chart.png",
		drawPNG: DrawRadarPair,
	},
	{
		name:     ChartComparison,
		png:      "strategy_comparison.png",
		html:     "strategy_comparison.html",
		drawPNG:  DrawComparison,
		drawHTML: ComparisonHTML,
	},
	{
		name:     ChartTradeoff,
		png:      "time_quality_tradeoff.png",
		html:     "time_quality_tradeoff.html",
		drawPNG:  DrawTradeoff,
		drawHTML: TradeoffHTML,
	},
	{
		name:     ChartHeatmap,
		png:      "role_strategy_heatmap.png",
		html:     "role_strategy_heatmap.html",
		drawPNG:  DrawHeatmap,
		drawHTML: HeatmapHTML,
	},
}

// Names returns every chart name in generation order.
func Names() []string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.name
	}
	return names
}

// Options controls where and how charts are written.
type Options struct {
	OutDir     string
	HTML       bool
	AssetsHost string
}

// OptionsFromConfig converts chart settings.
func OptionsFromConfig(cfg types.ChartConfig) Options {
	return Options{OutDir: cfg.OutDir, HTML: cfg.HTML, AssetsHost: cfg.AssetsHost}
}

// Output is one file written by Generate.
type Output struct {
	Chart string
	Path  string
	Kind  types.ArtifactKind
}

// DatasetFor returns the dataset named by cfg, or the built-in one.
func DatasetFor(cfg types.ChartConfig) (Dataset, error) {
	if cfg.DatasetFile == "" {
		return DefaultDataset(), nil
	}
	return LoadDataset(cfg.DatasetFile)
}

// Generate writes the named charts, or all of them when names is empty,
// printing each saved path to w. Unknown names are rejected before any
// file is written.
func Generate(ds Dataset, names []string, opt Options, w io.Writer) ([]Output, error) {
	defs, err := selectCharts(names)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if opt.OutDir == "" {
		opt.OutDir = "."
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating chart directory: %w", err)
	}

	var outputs []Output
	for _, d := range defs {
		path := filepath.Join(opt.OutDir, d.png)
		if err := writeFile(path, func(buf io.Writer) error { return d.drawPNG(ds, buf) }); err != nil {
			return outputs, fmt.Errorf("generating %s: %w", d.name, err)
		}
		fmt.Fprintf(w, "Saved: %s\n", path)
		outputs = append(outputs, Output{Chart: d.name, Path: path, Kind: types.KindPNG})

		if !opt.HTML || d.drawHTML == nil {
			continue
		}
		path = filepath.Join(opt.OutDir, d.html)
		if err := writeFile(path, func(buf io.Writer) error { return d.drawHTML(ds, opt.AssetsHost, buf) }); err != nil {
			return outputs, fmt.Errorf("generating %s html: %w", d.name, err)
		}
		fmt.Fprintf(w, "Saved: %s\n", path)
		outputs = append(outputs, Output{Chart: d.name, Path: path, Kind: types.KindChartHTML})
	}
	return outputs, nil
}

func selectCharts(names []string) ([]chartDef, error) {
	if len(names) == 0 {
		return registry, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		found := false
		for _, d := range registry {
			if d.name == n {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown chart %q (valid: %s)", n, strings.Join(Names(), ", "))
		}
		want[n] = true
	}
	var defs []chartDef
	for _, d := range registry {
		if want[d.name] {
			defs = append(defs, d)
		}
	}
	return defs, nil
}

// writeFile renders into memory first so a failed chart leaves no
// partial file behind.
func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

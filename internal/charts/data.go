// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package charts

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ErrInvalidDataset means a dataset's series do not match their labels.
var ErrInvalidDataset = errors.New("invalid dataset")

// Metric is one named row of scores, one value per strategy.
type Metric struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

// BeforeAfter holds the scores compared by the before/after radar pair.
type BeforeAfter struct {
	Axes        []string  `yaml:"axes"`
	BeforeLabel string    `yaml:"before_label"`
	AfterLabel  string    `yaml:"after_label"`
	Before      []float64 `yaml:"before"`
	After       []float64 `yaml:"after"`
}

// TradeoffPoint is one strategy in the response time vs quality chart.
type TradeoffPoint struct {
	Strategy string  `yaml:"strategy"`
	Seconds  float64 `yaml:"seconds"`
	Quality  float64 `yaml:"quality"`
	Size     float64 `yaml:"size"`
}

// Zone is a rectangle in trade-off chart coordinates.
type Zone struct {
	Label string  `yaml:"label"`
	X0    float64 `yaml:"x0"`
	Y0    float64 `yaml:"y0"`
	X1    float64 `yaml:"x1"`
	Y1    float64 `yaml:"y1"`
}

// Heatmap is a roles by strategies score matrix.
type Heatmap struct {
	Roles      []string    `yaml:"roles"`
	Strategies []string    `yaml:"strategies"`
	Scores     [][]float64 `yaml:"scores"`
}

// Dataset is every number the charts draw.
type Dataset struct {
	Strategies  []string        `yaml:"strategies"`
	Metrics     []Metric        `yaml:"metrics"`
	BeforeAfter BeforeAfter     `yaml:"before_after"`
	Tradeoff    []TradeoffPoint `yaml:"tradeoff"`
	OptimalZone Zone            `yaml:"optimal_zone"`
	Heatmap     Heatmap         `yaml:"heatmap"`
}

// DefaultDataset returns the built-in illustrative metrics.
func DefaultDataset() Dataset {
	return Dataset{
		Strategies: []string{"Standard", "Few-Shot", "Chain-of-Thought", "Combined"},
		Metrics: []Metric{
			{Name: "Response Quality", Values: []float64{70, 82, 85, 91}},
			{Name: "Consistency", Values: []float64{65, 88, 80, 92}},
			{Name: "Reasoning Depth", Values: []float64{60, 70, 95, 93}},
			{Name: "User Satisfaction", Values: []float64{70, 80, 85, 95}},
			{Name: "Confidence", Values: []float64{72, 85, 88, 93}},
		},
		BeforeAfter: BeforeAfter{
			Axes:        []string{"Quality", "Confidence", "Consistency", "Detail", "Usefulness"},
			BeforeLabel: "BEFORE: Basic RAG",
			AfterLabel:  "AFTER: 5-Strategy System",
			Before:      []float64{70, 0, 65, 60, 70},
			After:       []float64{91, 93, 92, 95, 94},
		},
		Tradeoff: []TradeoffPoint{
			{Strategy: "Standard", Seconds: 1.2, Quality: 70, Size: 30},
			{Strategy: "Few-Shot", Seconds: 1.5, Quality: 82, Size: 40},
			{Strategy: "Chain-of-Thought", Seconds: 2.1, Quality: 85, Size: 45},
			{Strategy: "Self-Consistency", Seconds: 3.8, Quality: 90, Size: 50},
			{Strategy: "Combined", Seconds: 4.5, Quality: 93, Size: 60},
		},
		OptimalZone: Zone{Label: "Optimal Zone", X0: 1.5, Y0: 80, X1: 3.0, Y1: 90},
		Heatmap: Heatmap{
			Roles:      []string{"Teacher", "Expert Reviewer", "Legal Advisor", "Technical Writer", "Friendly Assistant"},
			Strategies: []string{"Standard", "Few-Shot", "Chain-of-Thought", "Combined"},
			Scores: [][]float64{
				{75, 85, 80, 92},
				{70, 80, 90, 95},
				{65, 88, 85, 93},
				{72, 82, 88, 94},
				{80, 85, 75, 90},
			},
		},
	}
}

// LoadDataset reads a YAML dataset. Sections absent from the file keep
// their built-in values.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var file Dataset
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Dataset{}, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	ds := DefaultDataset()
	if len(file.Strategies) > 0 || len(file.Metrics) > 0 {
		ds.Strategies, ds.Metrics = file.Strategies, file.Metrics
	}
	if len(file.BeforeAfter.Axes) > 0 {
		labels := ds.BeforeAfter
		ds.BeforeAfter = file.BeforeAfter
		if ds.BeforeAfter.BeforeLabel == "" {
			ds.BeforeAfter.BeforeLabel = labels.BeforeLabel
		}
		if ds.BeforeAfter.AfterLabel == "" {
			ds.BeforeAfter.AfterLabel = labels.AfterLabel
		}
	}
	if len(file.Tradeoff) > 0 {
		ds.Tradeoff = file.Tradeoff
	}
	if file.OptimalZone != (Zone{}) {
		ds.OptimalZone = file.OptimalZone
	}
	if len(file.Heatmap.Roles) > 0 || len(file.Heatmap.Scores) > 0 {
		ds.Heatmap = file.Heatmap
	}

	if err := ds.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Validate checks that every series has one value per label.
func (d Dataset) Validate() error {
	if len(d.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalidDataset)
	}
	if len(d.Metrics) == 0 {
		return fmt.Errorf("%w: no metrics", ErrInvalidDataset)
	}
	for _, m := range d.Metrics {
		if len(m.Values) != len(d.Strategies) {
			return fmt.Errorf("%w: metric %q has %d values for %d strategies",
				ErrInvalidDataset, m.Name, len(m.Values), len(d.Strategies))
		}
	}

	ba := d.BeforeAfter
	if len(ba.Axes) < 3 {
		return fmt.Errorf("%w: before/after radar needs at least 3 axes", ErrInvalidDataset)
	}
	if len(ba.Before) != len(ba.Axes) || len(ba.After) != len(ba.Axes) {
		return fmt.Errorf("%w: before/after scores must have %d values", ErrInvalidDataset, len(ba.Axes))
	}

	if len(d.Tradeoff) == 0 {
		return fmt.Errorf("%w: no trade-off points", ErrInvalidDataset)
	}

	h := d.Heatmap
	if len(h.Roles) == 0 || len(h.Strategies) == 0 {
		return fmt.Errorf("%w: heatmap needs roles and strategies", ErrInvalidDataset)
	}
	if len(h.Scores) != len(h.Roles) {
		return fmt.Errorf("%w: heatmap has %d rows for %d roles", ErrInvalidDataset, len(h.Scores), len(h.Roles))
	}
	for i, row := range h.Scores {
		if len(row) != len(h.Strategies) {
			return fmt.Errorf("%w: heatmap row %q has %d values for %d strategies",
				ErrInvalidDataset, h.Roles[i], len(row), len(h.Strategies))
		}
	}
	return nil
}

// MetricNames returns the metric names in order.
func (d Dataset) MetricNames() []string {
	names := make([]string, len(d.Metrics))
	for i, m := range d.Metrics {
		names[i] = m.Name
	}
	return names
}

// Column returns every metric's value for strategy index i.
func (d Dataset) Column(i int) []float64 {
	col := make([]float64, len(d.Metrics))
	for j, m := range d.Metrics {
		col[j] = m.Values[i]
	}
	return col
}

// ConfidenceMetric returns the metric named "Confidence", or the last
// metric when there is none.
func (d Dataset) ConfidenceMetric() Metric {
	for _, m := range d.Metrics {
		if m.Name == "Confidence" {
			return m
		}
	}
	return d.Metrics[len(d.Metrics)-1]
}

// Baseline and Best are the strategy columns compared by the
// effectiveness radar: the first and the last strategy. The radar's axes
// are the metrics, so each trace takes one strategy's value per metric.
// A single metric row has one value per strategy (four, not five) and
// would leave an axis unplotted.
func (d Dataset) Baseline() (string, []float64) {
	return d.Strategies[0], d.Column(0)
}

func (d Dataset) Best() (string, []float64) {
	last := len(d.Strategies) - 1
	return d.Strategies[last], d.Column(last)
}

// QualityRange returns the min and max trade-off quality.
func (d Dataset) QualityRange() (lo, hi float64) {
	lo, hi = d.Tradeoff[0].Quality, d.Tradeoff[0].Quality
	for _, p := range d.Tradeoff[1:] {
		lo = min(lo, p.Quality)
		hi = max(hi, p.Quality)
	}
	return lo, hi
}

// ScoreRange returns the min and max heatmap score.
func (h Heatmap) ScoreRange() (lo, hi float64) {
	lo, hi = h.Scores[0][0], h.Scores[0][0]
	for _, row := range h.Scores {
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

package types

import "time"

// EngineName identifies the HTML-to-PDF rendering engine.
type EngineName string

const (
	EngineWkhtmltopdf EngineName = "wkhtmltopdf"
	EngineContainer   EngineName = "container"
	EngineGotenberg   EngineName = "gotenberg"
	EngineNative      EngineName = "native"
)

// PageConfig holds the paper settings passed to every engine.
type PageConfig struct {
	// Size is the paper size name (e.g. "A4", "Letter").
	Size string `json:"size" yaml:"size"`

	// Margins accept a number with an in, mm, or cm unit (e.g. "0.75in").
	MarginTop    string `json:"margin_top" yaml:"margin_top"`
	MarginRight  string `json:"margin_right" yaml:"margin_right"`
	MarginBottom string `json:"margin_bottom" yaml:"margin_bottom"`
	MarginLeft   string `json:"margin_left" yaml:"margin_left"`

	// Encoding is the text encoding declared to the engine (default UTF-8).
	Encoding string `json:"encoding" yaml:"encoding"`

	// Outline enables the PDF outline (bookmarks). Off by default.
	Outline bool `json:"outline" yaml:"outline"`

	// LocalFileAccess lets the engine load images and files referenced
	// by relative paths in the report.
	LocalFileAccess bool `json:"local_file_access" yaml:"local_file_access"`
}

// RenderConfig holds settings for the Markdown-to-PDF conversion.
type RenderConfig struct {
	// Engine selects the PDF engine: wkhtmltopdf, container, gotenberg, or native.
	Engine EngineName `json:"engine" yaml:"engine"`

	// Theme overrides the per-report stylesheet when non-empty.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`

	// AssetsDir is an optional directory with styles/ and templates/
	// overriding the embedded assets.
	AssetsDir string `json:"assets_dir,omitempty" yaml:"assets_dir,omitempty"`

	Page PageConfig `json:"page" yaml:"page"`

	// WkhtmltopdfPath is the wkhtmltopdf binary (looked up on PATH by default).
	WkhtmltopdfPath string `json:"wkhtmltopdf_path" yaml:"wkhtmltopdf_path"`

	// ContainerImage is the wkhtmltopdf image used by the container engine.
	ContainerImage string `json:"container_image" yaml:"container_image"`

	// GotenbergURL is the base URL of a Gotenberg service.
	GotenbergURL string `json:"gotenberg_url" yaml:"gotenberg_url"`

	// GotenbergUsername and GotenbergPassword are filled from .secrets/,
	// never from the config file.
	GotenbergUsername string `json:"-" yaml:"-"`
	GotenbergPassword string `json:"-" yaml:"-"`

	// Timeout bounds a single engine invocation.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// KeepHTML writes the styled HTML next to a successfully rendered PDF.
	KeepHTML bool `json:"keep_html" yaml:"keep_html"`
}

// ChartConfig holds settings for the visualization generators.
type ChartConfig struct {
	// OutDir is the directory charts are written to.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// DatasetFile optionally replaces the built-in metric tables.
	DatasetFile string `json:"dataset_file,omitempty" yaml:"dataset_file,omitempty"`

	// HTML controls whether interactive HTML charts are written.
	HTML bool `json:"html" yaml:"html"`

	// AssetsHost is the host serving the ECharts JavaScript bundle.
	AssetsHost string `json:"assets_host" yaml:"assets_host"`
}

// HistoryConfig holds settings for the artifact history store.
type HistoryConfig struct {
	// Dir contains reportsmith.db.
	Dir string `json:"dir" yaml:"dir"`

	// Enabled turns recording on or off.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Config groups all settings.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	Charts  ChartConfig   `json:"charts" yaml:"charts"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// DefaultPageConfig returns A4 with 0.75in margins, UTF-8, no outline,
// and local file access enabled.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            "A4",
		MarginTop:       "0.75in",
		MarginRight:     "0.75in",
		MarginBottom:    "0.75in",
		MarginLeft:      "0.75in",
		Encoding:        "UTF-8",
		Outline:         false,
		LocalFileAccess: true,
	}
}

// DefaultRenderConfig returns the settings used when no config file is present.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Engine:          EngineWkhtmltopdf,
		Page:            DefaultPageConfig(),
		WkhtmltopdfPath: "wkhtmltopdf",
		ContainerImage:  "surnet/alpine-wkhtmltopdf:3.20.2-0.12.6-full",
		GotenbergURL:    "http://localhost:3000",
		Timeout:         2 * time.Minute,
	}
}

// DefaultChartConfig writes charts, including HTML, to the working directory.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		OutDir:     ".",
		HTML:       true,
		AssetsHost: "https://go-echarts.github.io/go-echarts-assets/assets/",
	}
}

// DefaultHistoryConfig keeps history under .reportsmith/.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Dir:     ".reportsmith",
		Enabled: true,
	}
}

// DefaultConfig returns a Config with every section defaulted.
func DefaultConfig() Config {
	return Config{
		Render:  DefaultRenderConfig(),
		Charts:  DefaultChartConfig(),
		History: DefaultHistoryConfig(),
	}
}

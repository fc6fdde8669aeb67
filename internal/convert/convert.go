// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Markdown reports into styled PDFs. When the PDF
// engine fails, the styled HTML is written next to the intended PDF so no
// work is lost.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/reportsmith/internal/markdown"
	"github.com/pdiddy/reportsmith/internal/pdf"
	"github.com/pdiddy/reportsmith/internal/theme"
	"github.com/pdiddy/reportsmith/pkg/types"
)

// ErrInputNotFound means the Markdown source does not exist.
var ErrInputNotFound = errors.New("markdown input not found")

// Converter renders reports through one PDF engine.
type Converter struct {
	Engine pdf.Engine
	Assets *theme.Resolver

	// Theme overrides each report's own theme when non-empty.
	Theme string

	// Timeout bounds one engine call. Zero means no limit.
	Timeout time.Duration

	// KeepHTML also writes the styled HTML when the PDF succeeds.
	KeepHTML bool
}

// New returns a Converter for the given render settings.
func New(engine pdf.Engine, cfg types.RenderConfig) *Converter {
	return &Converter{
		Engine:   engine,
		Assets:   theme.NewResolver(cfg.AssetsDir),
		Theme:    cfg.Theme,
		Timeout:  cfg.Timeout,
		KeepHTML: cfg.KeepHTML,
	}
}

// ConvertReport renders one report, printing progress to w. A missing
// input or an engine failure is reported through the result, not as a
// panic or an aborted batch.
func (c *Converter) ConvertReport(ctx context.Context, report types.Report, w io.Writer) types.RenderResult {
	result := types.RenderResult{Report: report, Engine: c.Engine.Name()}

	info, err := os.Stat(report.MarkdownPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c.fail(w, result, fmt.Errorf("checking %s: %w", report.MarkdownPath, err))
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %s not found!\n", report.MarkdownPath)
		fmt.Fprintf(w, "Make sure the %s file is in the input directory.\n", filepath.Base(report.MarkdownPath))
		result.Status = types.StatusMissing
		result.Err = fmt.Errorf("%s: %w", report.MarkdownPath, ErrInputNotFound)
		return result
	}

	doc, err := markdown.RenderFile(report.MarkdownPath)
	if err != nil {
		return c.fail(w, result, err)
	}

	themeName := c.themeFor(report)
	page, err := c.Assets.Wrap(doc.Title, doc.HTML, themeName)
	if err != nil {
		return c.fail(w, result, fmt.Errorf("styling %s: %w", report.MarkdownPath, err))
	}

	if err := os.MkdirAll(filepath.Dir(report.PDFPath), 0o755); err != nil {
		return c.fail(w, result, fmt.Errorf("creating output directory: %w", err))
	}

	renderErr := c.render(ctx, pdf.Document{
		Title:    doc.Title,
		HTML:     page,
		Markdown: doc,
		Theme:    themeName,
		BaseDir:  filepath.Dir(report.MarkdownPath),
		ModTime:  info.ModTime(),
	}, report.PDFPath)

	if renderErr != nil {
		fmt.Fprintf(w, "Error converting to PDF: %v\n", renderErr)
		if hint := pdf.Hint(c.Engine); hint != "" {
			fmt.Fprintln(w, hint)
		}

		htmlPath := FallbackPath(report.PDFPath)
		if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
			return c.fail(w, result, fmt.Errorf("writing fallback html: %w", err))
		}
		fmt.Fprintf(w, "Saved as HTML instead: %s\n", htmlPath)
		result.Status = types.StatusHTMLFallback
		result.OutputPath = htmlPath
		result.Err = renderErr
		return result
	}

	fmt.Fprintf(w, "Successfully converted %s to %s\n", report.MarkdownPath, report.PDFPath)
	result.Status = types.StatusPDF
	result.OutputPath = report.PDFPath

	if c.KeepHTML {
		htmlPath := FallbackPath(report.PDFPath)
		if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
			fmt.Fprintf(w, "warning: could not keep html: %v\n", err)
		} else {
			result.HTMLPath = htmlPath
		}
	}
	return result
}

func (c *Converter) render(ctx context.Context, doc pdf.Document, outPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.Engine.Render(ctx, doc, outPath)
}

func (c *Converter) themeFor(report types.Report) string {
	switch {
	case c.Theme != "":
		return c.Theme
	case report.Theme != "":
		return report.Theme
	default:
		return theme.Final
	}
}

func (c *Converter) fail(w io.Writer, result types.RenderResult, err error) types.RenderResult {
	fmt.Fprintf(w, "failed:  %s (%v)\n", result.Report.MarkdownPath, err)
	result.Status = types.StatusFailed
	result.Err = err
	return result
}

// ConvertBatch converts each report in order, printing per-report output
// and a summary line to w.
func (c *Converter) ConvertBatch(ctx context.Context, reports []types.Report, w io.Writer) ([]types.RenderResult, types.BatchResult) {
	var (
		results []types.RenderResult
		batch   types.BatchResult
	)
	for _, r := range reports {
		res := c.ConvertReport(ctx, r, w)
		results = append(results, res)
		batch.Add(res.Status)
	}
	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d html fallback, %d missing, %d failed (total: %d)\n",
		batch.Rendered, batch.Fallback, batch.Missing, batch.Failed, batch.Total())
	return results, batch
}

// FallbackPath returns the HTML path for a PDF path: a trailing .pdf
// extension is replaced, any other name gets .html appended.
func FallbackPath(pdfPath string) string {
	ext := filepath.Ext(pdfPath)
	if strings.EqualFold(ext, ".pdf") {
		return strings.TrimSuffix(pdfPath, ext) + ".html"
	}
	return pdfPath + ".html"
}

// ReportsFromPaths builds reports for Markdown paths given on the command
// line. Each PDF sits next to its source with the same base name. A path
// matching a known report inherits that report's name and theme.
func ReportsFromPaths(paths []string) []types.Report {
	reports := make([]types.Report, 0, len(paths))
	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		r := types.Report{
			Name:         base,
			MarkdownPath: p,
			PDFPath:      filepath.Join(filepath.Dir(p), base+".pdf"),
		}
		for _, known := range types.KnownReports(filepath.Dir(p)) {
			if filepath.Base(known.MarkdownPath) == filepath.Base(p) {
				r.Name, r.Theme = known.Name, known.Theme
			}
		}
		reports = append(reports, r)
	}
	return reports
}

// SelectReport returns the known report called name, resolved against dir.
func SelectReport(dir, name string) (types.Report, error) {
	var names []string
	for _, r := range types.KnownReports(dir) {
		if r.Name == name {
			return r, nil
		}
		names = append(names, r.Name)
	}
	return types.Report{}, fmt.Errorf("unknown report %q (valid: %s)", name, strings.Join(names, ", "))
}

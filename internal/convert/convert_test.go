// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportsmith/internal/pdf"
	"github.com/pdiddy/reportsmith/internal/theme"
	"github.com/pdiddy/reportsmith/pkg/types"
)

// fakeEngine writes a stub PDF or fails, depending on configuration.
type fakeEngine struct {
	err     error
	hint    string
	gotDoc  pdf.Document
	gotPath string
	calls   int
}

func (f *fakeEngine) Name() string { return "fake" }
func (f *fakeEngine) Hint() string { return f.hint }

func (f *fakeEngine) Render(_ context.Context, doc pdf.Document, outPath string) error {
	f.calls++
	f.gotDoc, f.gotPath = doc, outPath
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.4 stub"), 0o644)
}

func newConverter(e *fakeEngine) *Converter {
	return &Converter{Engine: e, Assets: theme.NewResolver("")}
}

func writeReport(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConvertReport_Success(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "Final_Project_Report.md", "# Final Project Report\n\nBody text.\n")
	report := types.KnownReports(dir)[0]

	e := &fakeEngine{}
	var out bytes.Buffer
	res := newConverter(e).ConvertReport(context.Background(), report, &out)

	assert.Equal(t, types.StatusPDF, res.Status)
	assert.Equal(t, report.PDFPath, res.OutputPath)
	assert.Equal(t, "fake", res.Engine)
	assert.NoError(t, res.Err)
	assert.FileExists(t, report.PDFPath)
	assert.NoFileExists(t, FallbackPath(report.PDFPath))
	assert.Equal(t, "Successfully converted "+report.MarkdownPath+" to "+report.PDFPath+"\n", out.String())

	assert.Equal(t, "Final Project Report", e.gotDoc.Title)
	assert.Equal(t, theme.Final, e.gotDoc.Theme)
	assert.Equal(t, dir, e.gotDoc.BaseDir)
	assert.NotNil(t, e.gotDoc.Markdown)
	assert.False(t, e.gotDoc.ModTime.IsZero())
	assert.Contains(t, string(e.gotDoc.HTML), "<p>Body text.</p>")
}

func TestConvertReport_MissingInput(t *testing.T) {
	dir := t.TempDir()
	report := types.KnownReports(dir)[1]

	e := &fakeEngine{}
	var out bytes.Buffer
	res := newConverter(e).ConvertReport(context.Background(), report, &out)

	assert.Equal(t, types.StatusMissing, res.Status)
	assert.ErrorIs(t, res.Err, ErrInputNotFound)
	assert.Zero(t, e.calls)
	assert.Contains(t, out.String(), "Error: "+report.MarkdownPath+" not found!")
	assert.Contains(t, out.String(), "Role_Based_Prompting_Report.md file is in the input directory")
	assert.NoFileExists(t, FallbackPath(report.PDFPath))
}

func TestConvertReport_EngineFailureWritesFallback(t *testing.T) {
	dir := t.TempDir()
	md := "# Role-Based Prompting\n\n| Role | Score |\n|---|---|\n| Teacher | 92 |\n"
	writeReport(t, dir, "Role_Based_Prompting_Report.md", md)
	report := types.KnownReports(dir)[1]

	engineErr := errors.New("wkhtmltopdf not found")
	e := &fakeEngine{err: engineErr, hint: "Make sure wkhtmltopdf is installed and in your PATH"}
	var out bytes.Buffer
	res := newConverter(e).ConvertReport(context.Background(), report, &out)

	htmlPath := filepath.Join(dir, "Role_Based_Prompting_Report.html")
	assert.Equal(t, types.StatusHTMLFallback, res.Status)
	assert.Equal(t, htmlPath, res.OutputPath)
	assert.ErrorIs(t, res.Err, engineErr)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<meta charset="utf-8">`)
	assert.Contains(t, html, "<td>Teacher</td>")
	assert.Contains(t, html, "padding: 8px;")

	assert.Equal(t,
		"Error converting to PDF: wkhtmltopdf not found\n"+
			"Make sure wkhtmltopdf is installed and in your PATH\n"+
			"Saved as HTML instead: "+htmlPath+"\n",
		out.String())
}

func TestConvertReport_LeadingRuleKeepsContent(t *testing.T) {
	dir := t.TempDir()
	md := "---\n\nExecutive summary. The system works.\n\nMore prose here.\n\n---\n\n# Results\n"
	writeReport(t, dir, "Final_Project_Report.md", md)
	report := types.KnownReports(dir)[0]

	e := &fakeEngine{err: errors.New("engine down")}
	res := newConverter(e).ConvertReport(context.Background(), report, io.Discard)

	require.Equal(t, types.StatusHTMLFallback, res.Status)
	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<p>Executive summary. The system works.</p>")
	assert.Contains(t, html, "<p>More prose here.</p>")
	assert.Contains(t, html, "<title>Results</title>")
}

func TestConvertReport_UnreadableInputFails(t *testing.T) {
	dir := t.TempDir()
	blocker := writeReport(t, dir, "notes", "a file, not a directory")
	report := types.Report{
		Name:         "nested",
		MarkdownPath: filepath.Join(blocker, "report.md"),
		PDFPath:      filepath.Join(dir, "report.pdf"),
	}

	e := &fakeEngine{}
	var out bytes.Buffer
	res := newConverter(e).ConvertReport(context.Background(), report, &out)

	assert.Equal(t, types.StatusFailed, res.Status)
	assert.NotErrorIs(t, res.Err, ErrInputNotFound)
	assert.NotContains(t, out.String(), "not found!")
	assert.Contains(t, out.String(), "checking "+report.MarkdownPath)
	assert.Zero(t, e.calls)
}

func TestConvertReport_FallbackWriteFails(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "r.md", "# r\n")
	report := types.Report{MarkdownPath: filepath.Join(dir, "r.md"), PDFPath: filepath.Join(dir, "r.pdf")}
	// A directory where the fallback file should go blocks the write.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "r.html"), 0o755))

	var out bytes.Buffer
	res := newConverter(&fakeEngine{err: errors.New("boom")}).ConvertReport(context.Background(), report, &out)

	assert.Equal(t, types.StatusFailed, res.Status)
	assert.Contains(t, out.String(), "failed:")
}

func TestConvertReport_KeepHTMLAndThemeOverride(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "Final_Project_Report.md", "# T\n")
	report := types.KnownReports(dir)[0]

	e := &fakeEngine{}
	c := newConverter(e)
	c.KeepHTML = true
	c.Theme = theme.Classic

	res := c.ConvertReport(context.Background(), report, &bytes.Buffer{})
	require.Equal(t, types.StatusPDF, res.Status)
	assert.Equal(t, filepath.Join(dir, "Final_Project_Report.html"), res.HTMLPath)
	assert.FileExists(t, res.HTMLPath)
	assert.Equal(t, theme.Classic, e.gotDoc.Theme)
}

func TestConvertReport_UnknownThemeFails(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "r.md", "# r\n")
	report := types.Report{MarkdownPath: filepath.Join(dir, "r.md"), PDFPath: filepath.Join(dir, "r.pdf"), Theme: "neon"}

	e := &fakeEngine{}
	res := newConverter(e).ConvertReport(context.Background(), report, &bytes.Buffer{})
	assert.Equal(t, types.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, theme.ErrAssetNotFound)
	assert.Zero(t, e.calls)
}

func TestConvertReport_Timeout(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "r.md", "# r\n")
	report := types.Report{MarkdownPath: filepath.Join(dir, "r.md"), PDFPath: filepath.Join(dir, "r.pdf")}

	c := newConverter(&fakeEngine{})
	c.Engine = deadlineEngine{}
	c.Timeout = time.Millisecond

	res := c.ConvertReport(context.Background(), report, &bytes.Buffer{})
	assert.Equal(t, types.StatusHTMLFallback, res.Status)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

type deadlineEngine struct{}

func (deadlineEngine) Name() string { return "slow" }

func (deadlineEngine) Render(ctx context.Context, _ pdf.Document, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "Final_Project_Report.md", "# Final\n")

	var out bytes.Buffer
	results, batch := newConverter(&fakeEngine{}).ConvertBatch(context.Background(), types.KnownReports(dir), &out)

	require.Len(t, results, 2)
	assert.Equal(t, types.StatusPDF, results[0].Status)
	assert.Equal(t, types.StatusMissing, results[1].Status)
	assert.Equal(t, types.BatchResult{Rendered: 1, Missing: 1}, batch)
	assert.False(t, batch.HasFailures())
	assert.Contains(t, out.String(), "Batch summary: 1 rendered, 0 html fallback, 1 missing, 0 failed (total: 2)")
}

func TestFallbackPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"out/Final_Project_Report.pdf", "out/Final_Project_Report.html"},
		{"report.PDF", "report.html"},
		{"my.pdf.notes.pdf", "my.pdf.notes.html"},
		{"report", "report.html"},
		{"report.out", "report.out.html"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackPath(tt.in))
		})
	}
}

func TestReportsFromPaths(t *testing.T) {
	reports := ReportsFromPaths([]string{
		filepath.Join("docs", "notes.md"),
		filepath.Join("docs", "Role_Based_Prompting_Report.md"),
	})
	require.Len(t, reports, 2)

	assert.Equal(t, types.Report{
		Name:         "notes",
		MarkdownPath: filepath.Join("docs", "notes.md"),
		PDFPath:      filepath.Join("docs", "notes.pdf"),
	}, reports[0])
	assert.Equal(t, types.ReportRoleBased, reports[1].Name)
	assert.Equal(t, "classic", reports[1].Theme)
}

func TestSelectReport(t *testing.T) {
	r, err := SelectReport("in", types.ReportFinal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("in", "Final_Project_Report.md"), r.MarkdownPath)

	_, err = SelectReport("in", "summary")
	assert.ErrorContains(t, err, `unknown report "summary"`)
}

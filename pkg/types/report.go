// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the reportsmith commands.
package types

import "path/filepath"

// RenderStatus is the outcome of converting one Markdown report.
type RenderStatus string

const (
	// StatusPDF means the engine produced the PDF.
	StatusPDF RenderStatus = "pdf"
	// StatusHTMLFallback means the engine failed and styled HTML was written instead.
	StatusHTMLFallback RenderStatus = "html-fallback"
	// StatusMissing means the Markdown input did not exist.
	StatusMissing RenderStatus = "missing"
	// StatusFailed means neither the PDF nor the fallback HTML could be written.
	StatusFailed RenderStatus = "failed"
)

// Report describes one conversion job: a Markdown source, the PDF it
// should become, and the stylesheet to apply.
type Report struct {
	// Name is a short identifier (e.g. "final").
	Name string `json:"name" yaml:"name"`

	// MarkdownPath is the input file.
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`

	// PDFPath is the intended output file.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Theme names the embedded or custom stylesheet.
	Theme string `json:"theme" yaml:"theme"`
}

// Built-in report names.
const (
	ReportFinal     = "final"
	ReportRoleBased = "role-based"
)

// KnownReports returns the two built-in reports resolved against dir.
func KnownReports(dir string) []Report {
	return []Report{
		{
			Name:         ReportFinal,
			MarkdownPath: filepath.Join(dir, "Final_Project_Report.md"),
			PDFPath:      filepath.Join(dir, "Final_Project_Report.pdf"),
			Theme:        "final",
		},
		{
			Name:         ReportRoleBased,
			MarkdownPath: filepath.Join(dir, "Role_Based_Prompting_Report.md"),
			PDFPath:      filepath.Join(dir, "Role_Based_Prompting_Report.pdf"),
			Theme:        "classic",
		},
	}
}

// RenderResult records what happened to one Report.
type RenderResult struct {
	Report     Report       `json:"report" yaml:"report"`
	Status     RenderStatus `json:"status" yaml:"status"`
	OutputPath string       `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	// HTMLPath is set when styled HTML was kept next to a rendered PDF.
	HTMLPath string `json:"html_path,omitempty" yaml:"html_path,omitempty"`
	Engine   string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Err      error  `json:"-" yaml:"-"`
}

// BatchResult holds the outcome of converting several reports.
type BatchResult struct {
	Rendered int
	Fallback int
	Missing  int
	Failed   int
}

// Add counts one result.
func (r *BatchResult) Add(status RenderStatus) {
	switch status {
	case StatusPDF:
		r.Rendered++
	case StatusHTMLFallback:
		r.Fallback++
	case StatusMissing:
		r.Missing++
	case StatusFailed:
		r.Failed++
	}
}

// Total returns the number of reports processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Fallback + r.Missing + r.Failed
}

// HasFailures reports whether any report ended without output.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

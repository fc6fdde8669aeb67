// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/reportsmith/pkg/types"
)

const wkhtmltopdfHint = "Make sure wkhtmltopdf is installed and in your PATH"

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, dir, name string, args []string, stdin io.Reader, stderr io.Writer) error
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, dir, name string, args []string, stdin io.Reader, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stderr = stderr
	return cmd.Run()
}

// Wkhtmltopdf renders through a wkhtmltopdf binary on the host. The HTML
// is streamed on stdin and the binary writes the PDF itself.
type Wkhtmltopdf struct {
	bin  string
	page types.PageConfig
	run  runner
}

// NewWkhtmltopdf returns an engine invoking bin (looked up on PATH).
func NewWkhtmltopdf(bin string, page types.PageConfig) *Wkhtmltopdf {
	if bin == "" {
		bin = "wkhtmltopdf"
	}
	return &Wkhtmltopdf{bin: bin, page: page, run: osRunner{}}
}

func (w *Wkhtmltopdf) Name() string { return string(types.EngineWkhtmltopdf) }

func (w *Wkhtmltopdf) Hint() string { return wkhtmltopdfHint }

func (w *Wkhtmltopdf) Render(ctx context.Context, doc Document, outPath string) error {
	path, err := w.run.LookPath(w.bin)
	if err != nil {
		return fmt.Errorf("%w: %s not found: %v", ErrEngineUnavailable, w.bin, err)
	}

	args := append(wkhtmltopdfArgs(w.page), "-", outPath)
	var stderr bytes.Buffer
	if err := w.run.Run(ctx, doc.BaseDir, path, args, bytes.NewReader(doc.HTML), &stderr); err != nil {
		return commandError("wkhtmltopdf", err, stderr.String())
	}
	return nil
}

// wkhtmltopdfArgs builds the page option flags shared by the host and
// container engines.
func wkhtmltopdfArgs(page types.PageConfig) []string {
	args := []string{
		"--quiet",
		"--page-size", page.Size,
		"--margin-top", page.MarginTop,
		"--margin-right", page.MarginRight,
		"--margin-bottom", page.MarginBottom,
		"--margin-left", page.MarginLeft,
		"--encoding", page.Encoding,
	}
	if page.Outline {
		args = append(args, "--outline")
	} else {
		args = append(args, "--no-outline")
	}
	if page.LocalFileAccess {
		args = append(args, "--enable-local-file-access")
	}
	return args
}

func commandError(what string, err error, stderr string) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("running %s: %w: %s", what, err, msg)
	}
	return fmt.Errorf("running %s: %w", what, err)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf renders styled report HTML (or the Markdown AST) into PDF
// through a pluggable engine: a host wkhtmltopdf binary, wkhtmltopdf in a
// container, a Gotenberg service, or a pure-Go fpdf renderer.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/pdiddy/reportsmith/internal/markdown"
	"github.com/pdiddy/reportsmith/internal/secrets"
	"github.com/pdiddy/reportsmith/pkg/types"
)

// ErrEngineUnavailable means the engine could not be reached or started,
// as opposed to failing on a particular document.
var ErrEngineUnavailable = errors.New("pdf engine unavailable")

// Document is everything an engine may need to produce a PDF.
type Document struct {
	// Title is the document title.
	Title string

	// HTML is the complete styled HTML page.
	HTML []byte

	// Markdown is the parsed source, used by engines that draw directly.
	Markdown *markdown.Document

	// Theme names the stylesheet the HTML was built with.
	Theme string

	// BaseDir resolves relative image and file references.
	BaseDir string

	// ModTime is the source file's modification time.
	ModTime time.Time
}

// Engine converts a Document to a PDF file at outPath.
type Engine interface {
	Name() string
	Render(ctx context.Context, doc Document, outPath string) error
}

// Hinter is implemented by engines that can tell the user how to fix an
// unavailable engine.
type Hinter interface {
	Hint() string
}

// Hint returns the engine's install hint, or an empty string.
func Hint(e Engine) string {
	if h, ok := e.(Hinter); ok {
		return h.Hint()
	}
	return ""
}

type factory func(cfg types.RenderConfig) (Engine, error)

var registry = map[types.EngineName]factory{
	types.EngineWkhtmltopdf: func(cfg types.RenderConfig) (Engine, error) {
		return NewWkhtmltopdf(cfg.WkhtmltopdfPath, cfg.Page), nil
	},
	types.EngineContainer: func(cfg types.RenderConfig) (Engine, error) {
		return NewContainer(cfg.ContainerImage, cfg.Page), nil
	},
	types.EngineGotenberg: func(cfg types.RenderConfig) (Engine, error) {
		var auth *secrets.BasicAuth
		if cfg.GotenbergUsername != "" {
			auth = &secrets.BasicAuth{Username: cfg.GotenbergUsername, Password: cfg.GotenbergPassword}
		}
		client := &http.Client{Timeout: cfg.Timeout}
		return NewGotenberg(cfg.GotenbergURL, cfg.Page, client, auth), nil
	},
	types.EngineNative: func(cfg types.RenderConfig) (Engine, error) {
		return NewNative(cfg.Page), nil
	},
}

// New returns the engine registered under name.
func New(name types.EngineName, cfg types.RenderConfig) (Engine, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pdf engine %q (valid: %v)", name, Names())
	}
	return f(cfg)
}

// Names lists the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

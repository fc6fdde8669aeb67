// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package theme wraps rendered report HTML in a styled HTML5 page.
//
// Stylesheets and the page template are embedded at build time. A custom
// assets directory with the same layout (styles/<name>.css and
// templates/<name>.html) may override any of them; lookups try the custom
// directory first and fall back to the embedded copy.
package theme

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// Final is the richer theme used by the final project report.
	Final = "final"

	// Classic is the simpler theme used by the role-based report.
	Classic = "classic"

	// PageTemplate is the template every report is wrapped in.
	PageTemplate = "page"
)

var (
	// ErrAssetNotFound means neither the custom directory nor the embedded
	// assets hold the requested style or template.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetName rejects names that could escape the assets directory.
	ErrInvalidAssetName = errors.New("invalid asset name")
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Loader reads named styles and templates.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// EmbeddedLoader serves the built-in assets.
type EmbeddedLoader struct{}

func (EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(embedded, "styles", name, ".css")
}

func (EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(embedded, "templates", name, ".html")
}

// DirLoader serves assets from a directory on disk. Resolved paths,
// including symlink targets, must stay inside the directory.
type DirLoader struct {
	Root string
}

func (l DirLoader) LoadStyle(name string) (string, error) {
	return l.load("styles", name, ".css")
}

func (l DirLoader) LoadTemplate(name string) (string, error) {
	return l.load("templates", name, ".html")
}

func (l DirLoader) load(kind, name, ext string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	root, err := filepath.EvalSymlinks(l.Root)
	if err != nil {
		return "", fmt.Errorf("resolving assets dir %s: %w", l.Root, err)
	}
	path := filepath.Join(root, kind, name+ext)
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s %q: %w", kind, name, ErrAssetNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s %q resolves outside %s: %w", kind, name, l.Root, ErrInvalidAssetName)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", resolved, err)
	}
	return string(data), nil
}

// Resolver tries Custom first, then Embedded.
type Resolver struct {
	Custom   Loader
	Embedded Loader
}

// NewResolver returns a resolver over the embedded assets, overridden by
// assetsDir when it is non-empty.
func NewResolver(assetsDir string) *Resolver {
	r := &Resolver{Embedded: EmbeddedLoader{}}
	if assetsDir != "" {
		r.Custom = DirLoader{Root: assetsDir}
	}
	return r
}

func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.resolve(name, Loader.LoadStyle)
}

func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.resolve(name, Loader.LoadTemplate)
}

func (r *Resolver) resolve(name string, load func(Loader, string) (string, error)) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if r.Custom != nil {
		s, err := load(r.Custom, name)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrAssetNotFound) {
			return "", err
		}
	}
	return load(r.Embedded, name)
}

// Page is the data handed to the page template.
type Page struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// Wrap embeds an HTML fragment in the page template styled with themeName.
func (r *Resolver) Wrap(title string, body []byte, themeName string) ([]byte, error) {
	css, err := r.LoadStyle(themeName)
	if err != nil {
		return nil, fmt.Errorf("loading theme %s: %w", themeName, err)
	}
	tmplText, err := r.LoadTemplate(PageTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	tmpl, err := template.New(PageTemplate).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var buf bytes.Buffer
	page := Page{
		Title: title,
		CSS:   template.CSS(css),
		Body:  template.HTML(body),
	}
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateName rejects empty names and names containing path elements.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidAssetName)
	}
	return nil
}

// Names lists the embedded theme names in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(embedded, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	return names
}

func readAsset(fsys fs.FS, kind, name, ext string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, kind+"/"+name+ext)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s %q: %w", kind, name, ErrAssetNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading embedded %s %q: %w", kind, name, err)
	}
	return string(data), nil
}

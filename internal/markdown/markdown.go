// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders report Markdown into an HTML fragment.
// Front matter is stripped before rendering; the parsed AST is kept on the
// Document so engines that do not consume HTML can walk it directly.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.yaml.in/yaml/v3"
)

// highlightStyle is the chroma style used for fenced code blocks.
const highlightStyle = "friendly"

// Document is a rendered Markdown report.
type Document struct {
	// Title comes from front matter, the first level-1 heading, or the file name.
	Title string

	// Meta holds the decoded front matter, if any.
	Meta map[string]any

	// Source is the Markdown body with front matter removed.
	Source []byte

	// HTML is the rendered body fragment (no <html> or <head>).
	HTML []byte

	// Root is the parsed AST of Source.
	Root ast.Node
}

// New returns the goldmark converter used for reports: tables, footnotes,
// definition lists, strikethrough, attribute lists, raw HTML, and inline
// chroma highlighting for fenced code.
func New() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.DefinitionList,
			extension.Strikethrough,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
					chromahtml.TabWidth(4),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Render converts Markdown source into a Document.
func Render(src []byte) (*Document, error) {
	meta, body := splitFrontMatter(src)

	md := New()
	root := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	doc := &Document{
		Meta:   meta,
		Source: body,
		HTML:   buf.Bytes(),
		Root:   root,
	}
	if t, ok := meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		doc.Title = strings.TrimSpace(t)
	} else {
		doc.Title = firstHeading(root, body)
	}
	return doc, nil
}

// RenderFile reads path as UTF-8 Markdown and renders it. When the document
// has no title, the file's base name without extension is used.
func RenderFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown %s: %w", path, err)
	}
	doc, err := Render(data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// splitFrontMatter separates a leading YAML block delimited by "---" lines.
// The block counts as front matter only when it decodes to a non-empty
// mapping; otherwise the opening line is a thematic break and src is
// returned unchanged with a nil map.
func splitFrontMatter(src []byte) (map[string]any, []byte) {
	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, src
	}

	rest := normalized[len("---\n"):]
	end := -1
	offset := 0
	for _, line := range bytes.SplitAfter(rest, []byte("\n")) {
		trimmed := bytes.TrimRight(line, "\n")
		if bytes.Equal(trimmed, []byte("---")) || bytes.Equal(trimmed, []byte("...")) {
			end = offset
			offset += len(line)
			break
		}
		offset += len(line)
	}
	if end < 0 {
		return nil, src
	}

	var meta map[string]any
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil || len(meta) == 0 {
		return nil, src
	}
	return meta, rest[offset:]
}

// firstHeading returns the plain text of the first level-1 heading.
func firstHeading(root ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(PlainText(h, src))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// PlainText concatenates the inline text beneath n. Soft line breaks become
// spaces and hard line breaks become newlines.
func PlainText(n ast.Node, src []byte) string {
	var b strings.Builder
	writePlain(&b, n, src)
	return b.String()
}

func writePlain(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.HardLineBreak() {
				b.WriteByte('\n')
			} else if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
		case *ast.RawHTML:
			// Inline markup has no plain-text form.
		default:
			writePlain(b, c, src)
		}
	}
}

// CodeText returns the raw lines of a fenced or indented code block.
func CodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/pdiddy/reportsmith/internal/markdown"
	"github.com/pdiddy/reportsmith/internal/theme"
	"github.com/pdiddy/reportsmith/pkg/types"
)

const (
	coreBodyFont = "Helvetica"
	coreCodeFont = "Courier"

	// unicodeFont is registered from go-chart's embedded Roboto when a
	// report has text outside cp1252.
	unicodeFont = "Roboto"

	bodySize = 11.0
	codeSize = 9.0

	// lineHeight is the body leading in millimetres.
	lineHeight = 5.8

	// pxToMM converts CSS pixels at 96 dpi.
	pxToMM = 0.2646
)

var headingSizes = map[int]float64{1: 22, 2: 16.5, 3: 13.2, 4: 11, 5: 11, 6: 11}

// Native draws the Markdown AST with fpdf. It needs no external process
// and ignores the HTML; colors come from the theme palette.
type Native struct {
	page types.PageConfig
}

// NewNative returns the pure-Go engine.
func NewNative(page types.PageConfig) *Native {
	return &Native{page: page}
}

func (n *Native) Name() string { return string(types.EngineNative) }

func (n *Native) Render(ctx context.Context, doc Document, outPath string) error {
	if doc.Markdown == nil {
		return errors.New("native engine needs the parsed markdown document")
	}
	pdf, err := n.newPDF(doc)
	if err != nil {
		return err
	}

	r := &nativeRenderer{
		pdf:      pdf,
		src:      doc.Markdown.Source,
		pal:      theme.PaletteFor(doc.Theme),
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		bodyFont: coreBodyFont,
		codeFont: coreCodeFont,
		baseDir:  doc.BaseDir,
	}
	if needsUnicode(r.src, r.tr) {
		tr, err := useUnicodeFont(pdf)
		if err != nil {
			return err
		}
		r.tr, r.bodyFont, r.codeFont = tr, unicodeFont, unicodeFont
	}
	r.left, _, r.right, r.bottom = pdf.GetMargins()
	r.base = inlineStyle{color: r.pal.Text}

	pdf.AddPage()
	for c := doc.Markdown.Root.FirstChild(); c != nil; c = c.NextSibling() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.block(c)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := pdf.Output(f); err != nil {
		f.Close()
		return fmt.Errorf("writing pdf: %w", err)
	}
	return f.Close()
}

func (n *Native) newPDF(doc Document) (*fpdf.Fpdf, error) {
	paper, err := lookupPaper(n.page.Size)
	if err != nil {
		return nil, err
	}
	var m [4]float64
	for i, s := range []string{n.page.MarginTop, n.page.MarginRight, n.page.MarginBottom, n.page.MarginLeft} {
		if m[i], err = ParseLength(s); err != nil {
			return nil, err
		}
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetMargins(m[3], m[0], m[1])
	pdf.SetAutoPageBreak(true, m[2])
	pdf.SetTitle(doc.Title, true)
	pdf.SetCatalogSort(true)

	stamp := doc.ModTime
	if stamp.IsZero() {
		stamp = time.Unix(0, 0)
	}
	pdf.SetCreationDate(stamp.UTC())
	pdf.SetModificationDate(stamp.UTC())
	return pdf, nil
}

type inlineStyle struct {
	bold, italic, code, underline bool
	color                         theme.RGB
	link                          string
}

func (s inlineStyle) fontStyle() string {
	var b strings.Builder
	if s.bold {
		b.WriteByte('B')
	}
	if s.italic {
		b.WriteByte('I')
	}
	if s.underline {
		b.WriteByte('U')
	}
	return b.String()
}

type nativeRenderer struct {
	pdf     *fpdf.Fpdf
	src     []byte
	pal     theme.Palette
	tr      func(string) string
	baseDir string

	bodyFont, codeFont string

	left, right, bottom float64
	base                inlineStyle
}

func (r *nativeRenderer) setLeft(x float64) {
	r.left = x
	r.pdf.SetLeftMargin(x)
	r.pdf.SetX(x)
}

func (r *nativeRenderer) setColor(c theme.RGB) {
	r.pdf.SetTextColor(c.R, c.G, c.B)
}

func (r *nativeRenderer) apply(s inlineStyle) {
	if s.code {
		r.pdf.SetFont(r.codeFont, strings.ReplaceAll(s.fontStyle(), "I", ""), codeSize)
	} else {
		r.pdf.SetFont(r.bodyFont, s.fontStyle(), bodySize)
	}
	r.setColor(s.color)
}

func (r *nativeRenderer) availableWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w - r.left - r.right
}

// gap adds vertical space unless the cursor sits at the top of a page.
func (r *nativeRenderer) gap(h float64) {
	_, top, _, _ := r.pdf.GetMargins()
	if r.pdf.GetY() > top+0.01 {
		r.pdf.Ln(h)
	}
}

func (r *nativeRenderer) block(n ast.Node) {
	switch b := n.(type) {
	case *ast.Heading:
		r.heading(b)
	case *ast.Paragraph:
		r.paragraph(b)
		r.pdf.Ln(lineHeight * 0.6)
	case *ast.TextBlock:
		r.paragraph(b)
		r.pdf.Ln(5 * pxToMM)
	case *ast.List:
		r.list(b)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		r.code(n)
	case *ast.Blockquote:
		r.blockquote(b)
	case *ast.ThematicBreak:
		r.rule()
	case *extast.Table:
		r.table(b)
	case *extast.DefinitionList:
		r.definitions(b)
	case *extast.FootnoteList:
		r.footnotes(b)
	case *ast.HTMLBlock:
		// Raw HTML has no drawn form.
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c)
		}
	}
}

func (r *nativeRenderer) heading(h *ast.Heading) {
	size := headingSizes[h.Level]
	r.gap(size * 0.35 * 0.8)

	color := r.pal.Heading
	if h.Level >= 3 {
		color = r.pal.Subheading
	}
	r.pdf.SetFont(r.bodyFont, "B", size)
	r.setColor(color)
	r.pdf.SetX(r.left)
	r.pdf.MultiCell(0, size*0.45, r.tr(markdown.PlainText(h, r.src)), "", "L", false)

	switch h.Level {
	case 1:
		r.underline(r.pal.H1Rule, 3*pxToMM)
	case 2:
		r.underline(r.pal.H2Rule, 1*pxToMM)
	}
	r.pdf.Ln(lineHeight * 0.4)
}

func (r *nativeRenderer) underline(c theme.RGB, width float64) {
	y := r.pdf.GetY() + 1.5
	r.pdf.SetDrawColor(c.R, c.G, c.B)
	r.pdf.SetLineWidth(width)
	r.pdf.Line(r.left, y, r.left+r.availableWidth(), y)
	r.pdf.SetY(y + width)
}

func (r *nativeRenderer) rule() {
	r.gap(lineHeight)
	c := r.pal.HRule
	y := r.pdf.GetY()
	r.pdf.SetDrawColor(c.R, c.G, c.B)
	r.pdf.SetLineWidth(2 * pxToMM)
	r.pdf.Line(r.left, y, r.left+r.availableWidth(), y)
	r.pdf.SetY(y)
	r.pdf.Ln(lineHeight)
}

// paragraph renders inline content. Unformatted paragraphs are set as a
// single MultiCell so they can be justified.
func (r *nativeRenderer) paragraph(n ast.Node) {
	r.pdf.SetX(r.left)
	if plainOnly(n) {
		align := "L"
		if r.pal.Justify {
			align = "J"
		}
		r.apply(r.base)
		r.pdf.MultiCell(0, lineHeight, r.tr(markdown.PlainText(n, r.src)), "", align, false)
		return
	}
	r.inlines(n, r.base)
	r.pdf.Ln(lineHeight)
}

func plainOnly(n ast.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			if t.HardLineBreak() {
				return false
			}
		case *ast.String:
		default:
			return false
		}
	}
	return true
}

func (r *nativeRenderer) write(text string, s inlineStyle) {
	r.apply(s)
	if s.link != "" {
		r.pdf.WriteLinkString(lineHeight, r.tr(text), s.link)
		return
	}
	r.pdf.Write(lineHeight, r.tr(text))
}

func (r *nativeRenderer) inlines(n ast.Node, s inlineStyle) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c, s)
	}
}

func (r *nativeRenderer) inline(n ast.Node, s inlineStyle) {
	switch t := n.(type) {
	case *ast.Text:
		text := string(t.Segment.Value(r.src))
		if s.code {
			text = strings.ReplaceAll(text, "\t", "    ")
		}
		r.write(text, s)
		if t.HardLineBreak() {
			r.pdf.Ln(lineHeight)
		} else if t.SoftLineBreak() {
			r.write(" ", s)
		}
	case *ast.String:
		r.write(string(t.Value), s)
	case *ast.Emphasis:
		if t.Level >= 2 {
			s.bold = true
			s.color = r.pal.Heading
		} else {
			s.italic = true
			s.color = r.pal.Emphasis
		}
		r.inlines(t, s)
	case *ast.CodeSpan:
		s.code = true
		r.inlines(t, s)
	case *ast.Link:
		s.link = string(t.Destination)
		s.underline = true
		s.color = r.pal.H1Rule
		r.inlines(t, s)
	case *ast.AutoLink:
		s.link = string(t.URL(r.src))
		s.underline = true
		s.color = r.pal.H1Rule
		r.write(string(t.Label(r.src)), s)
	case *ast.Image:
		r.image(t, s)
	case *extast.FootnoteLink:
		r.write(fmt.Sprintf("[%d]", t.Index), s)
	case *ast.RawHTML:
	default:
		r.inlines(n, s)
	}
}

var imageTypes = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

func (r *nativeRenderer) image(img *ast.Image, s inlineStyle) {
	alt := "[" + markdown.PlainText(img, r.src) + "]"
	dest := string(img.Destination)
	if strings.Contains(dest, "://") || !imageTypes[strings.ToLower(filepath.Ext(dest))] {
		r.write(alt, s)
		return
	}
	path := dest
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		r.write(alt, s)
		return
	}

	opts := fpdf.ImageOptions{ReadDpi: true}
	info := r.pdf.RegisterImageOptions(path, opts)
	if !r.pdf.Ok() || info == nil {
		r.pdf.ClearError()
		r.write(alt, s)
		return
	}

	w, h := info.Extent()
	if avail := r.availableWidth(); w > avail {
		h = h * avail / w
		w = avail
	}
	if r.pdf.GetX() > r.left+0.01 {
		r.pdf.Ln(lineHeight)
	}
	r.pdf.ImageOptions(path, r.left, 0, w, h, true, opts, 0, "")
	r.pdf.SetX(r.left)
}

func (r *nativeRenderer) list(l *ast.List) {
	const indent = 6.0
	base := r.left
	num := l.Start
	if num == 0 {
		num = 1
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", num)
			num++
		}
		y := r.pdf.GetY()
		r.apply(r.base)
		r.pdf.SetXY(base, y)
		r.pdf.CellFormat(indent, lineHeight, r.tr(marker), "", 0, "L", false, 0, "")

		r.setLeft(base + indent)
		r.pdf.SetY(y)
		r.pdf.SetX(base + indent)
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c)
		}
		r.setLeft(base)
	}
	if l.Parent() != nil && l.Parent().Kind() == ast.KindDocument {
		r.pdf.Ln(lineHeight * 0.4)
	}
}

func (r *nativeRenderer) code(n ast.Node) {
	text := strings.ReplaceAll(markdown.CodeText(n, r.src), "\t", "    ")
	c := r.pal.CodeFill
	r.pdf.SetFillColor(c.R, c.G, c.B)
	r.pdf.SetFont(r.codeFont, "", codeSize)
	r.setColor(r.pal.Text)

	r.pdf.SetX(r.left)
	page, y0 := r.pdf.PageNo(), r.pdf.GetY()
	cm := r.pdf.GetCellMargin()
	r.pdf.SetCellMargin(10 * pxToMM)
	r.pdf.MultiCell(0, codeSize*0.45, r.tr(text), "", "L", true)
	r.pdf.SetCellMargin(cm)

	if r.pal.CodeRule && r.pdf.PageNo() == page {
		rule := r.pal.H1Rule
		r.pdf.SetDrawColor(rule.R, rule.G, rule.B)
		r.pdf.SetLineWidth(3 * pxToMM)
		r.pdf.Line(r.left, y0, r.left, r.pdf.GetY())
	}
	r.pdf.Ln(lineHeight * 0.6)
}

func (r *nativeRenderer) blockquote(q *ast.Blockquote) {
	base, saved := r.left, r.base
	page, y0 := r.pdf.PageNo(), r.pdf.GetY()

	r.setLeft(base + 5)
	r.base = inlineStyle{italic: true, color: r.pal.Quote}
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c)
	}
	r.base = saved
	r.setLeft(base)

	if r.pdf.PageNo() == page {
		c := r.pal.QuoteRule
		r.pdf.SetDrawColor(c.R, c.G, c.B)
		r.pdf.SetLineWidth(4 * pxToMM)
		r.pdf.Line(base+1, y0, base+1, r.pdf.GetY()-lineHeight*0.6)
	}
}

func (r *nativeRenderer) table(t *extast.Table) {
	cols := len(t.Alignments)
	if cols == 0 {
		return
	}
	pad := 10 * pxToMM
	if !r.pal.Zebra {
		pad = 8 * pxToMM
	}
	colW := r.availableWidth() / float64(cols)
	_, pageH := r.pdf.GetPageSize()
	border := r.pal.TableBorder

	r.gap(lineHeight * 0.5)
	bodyRow := 0
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		header := row.Kind() == extast.KindTableHeader

		var cells []string
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, r.tr(markdown.PlainText(c, r.src)))
		}

		style := ""
		if header {
			style = "B"
		}
		r.pdf.SetFont(r.bodyFont, style, bodySize-1)
		lines := 1
		for _, cell := range cells {
			if n := len(r.pdf.SplitText(cell, colW-2*pad)); n > lines {
				lines = n
			}
		}
		h := float64(lines)*lineHeight + 2*pad

		if r.pdf.GetY()+h > pageH-r.bottom {
			r.pdf.AddPage()
		}
		y := r.pdf.GetY()

		fill, text := theme.RGB{}, r.pal.Text
		filled := false
		switch {
		case header:
			fill, text, filled = r.pal.HeaderFill, r.pal.HeaderText, true
		case r.pal.Zebra && bodyRow%2 == 1:
			fill, filled = r.pal.ZebraFill, true
		}
		if !header {
			bodyRow++
		}

		x := r.left
		for j := 0; j < cols; j++ {
			r.pdf.SetDrawColor(border.R, border.G, border.B)
			r.pdf.SetLineWidth(1 * pxToMM)
			mode := "D"
			if filled {
				r.pdf.SetFillColor(fill.R, fill.G, fill.B)
				mode = "FD"
			}
			r.pdf.Rect(x, y, colW, h, mode)

			if j < len(cells) {
				r.setColor(text)
				r.pdf.SetXY(x+pad, y+pad)
				r.pdf.MultiCell(colW-2*pad, lineHeight, cells[j], "", cellAlign(t.Alignments[j]), false)
			}
			x += colW
		}
		r.pdf.SetXY(r.left, y+h)
	}
	r.pdf.Ln(lineHeight * 0.8)
}

func cellAlign(a extast.Alignment) string {
	switch a {
	case extast.AlignRight:
		return "R"
	case extast.AlignCenter:
		return "C"
	default:
		return "L"
	}
}

func (r *nativeRenderer) definitions(dl *extast.DefinitionList) {
	base := r.left
	for c := dl.FirstChild(); c != nil; c = c.NextSibling() {
		switch d := c.(type) {
		case *extast.DefinitionTerm:
			r.pdf.SetX(r.left)
			s := r.base
			s.bold = true
			r.inlines(d, s)
			r.pdf.Ln(lineHeight)
		case *extast.DefinitionDescription:
			r.setLeft(base + 8)
			for b := d.FirstChild(); b != nil; b = b.NextSibling() {
				r.block(b)
			}
			r.setLeft(base)
		}
	}
	r.pdf.Ln(lineHeight * 0.4)
}

func (r *nativeRenderer) footnotes(list *extast.FootnoteList) {
	r.rule()
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		fn, ok := c.(*extast.Footnote)
		if !ok {
			continue
		}
		r.apply(r.base)
		r.pdf.SetX(r.left)
		r.pdf.Write(lineHeight, fmt.Sprintf("%d. ", fn.Index))
		for b := fn.FirstChild(); b != nil; b = b.NextSibling() {
			if p, ok := b.(*ast.Paragraph); ok {
				r.inlines(p, r.base)
				continue
			}
			r.block(b)
		}
		r.pdf.Ln(lineHeight)
	}
}

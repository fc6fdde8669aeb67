// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2/roboto"
)

var parseRoboto = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(roboto.Roboto)
})

// needsUnicode reports whether src has a rune the cp1252 core fonts cannot
// show. tr maps such runes to '.'.
func needsUnicode(src []byte, tr func(string) string) bool {
	for len(src) > 0 {
		r, n := utf8.DecodeRune(src)
		src = src[n:]
		if r >= utf8.RuneSelf && r != utf8.RuneError && tr(string(r)) == "." {
			return true
		}
	}
	return false
}

// useUnicodeFont registers Roboto for every style and returns the text
// filter to use with it. Roboto has a single weight, so bold and italic
// runs keep their size and color but not their face.
func useUnicodeFont(pdf *fpdf.Fpdf) (func(string) string, error) {
	font, err := parseRoboto()
	if err != nil {
		return nil, fmt.Errorf("parsing unicode font: %w", err)
	}
	for _, style := range []string{"", "B", "I", "BI"} {
		pdf.AddUTF8FontFromBytes(unicodeFont, style, roboto.Roboto)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("registering unicode font: %w", err)
	}
	return glyphFilter(font), nil
}

// glyphFilter drops runes the font has no glyph for, such as emoji, so
// they do not print as empty boxes. ASCII is always kept.
func glyphFilter(font *truetype.Font) func(string) string {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if r < utf8.RuneSelf || font.Index(r) != 0 {
				return r
			}
			return -1
		}, s)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package theme

// RGB is an 8-bit color.
type RGB struct {
	R, G, B int
}

// Palette carries the theme colors for renderers that draw directly
// instead of consuming CSS.
type Palette struct {
	Text        RGB
	Heading     RGB
	Subheading  RGB
	H1Rule      RGB
	H2Rule      RGB
	CodeFill    RGB
	CodeRule    bool
	Quote       RGB
	QuoteRule   RGB
	Emphasis    RGB
	TableBorder RGB
	HeaderFill  RGB
	HeaderText  RGB
	ZebraFill   RGB
	Zebra       bool
	HRule       RGB
	Justify     bool
}

var palettes = map[string]Palette{
	Final: {
		Text:        RGB{0x33, 0x33, 0x33},
		Heading:     RGB{0x2c, 0x3e, 0x50},
		Subheading:  RGB{0x34, 0x49, 0x5e},
		H1Rule:      RGB{0x34, 0x98, 0xdb},
		H2Rule:      RGB{0xbd, 0xc3, 0xc7},
		CodeFill:    RGB{0xf5, 0xf5, 0xf5},
		CodeRule:    true,
		Quote:       RGB{0x55, 0x55, 0x55},
		QuoteRule:   RGB{0x34, 0x98, 0xdb},
		Emphasis:    RGB{0x7f, 0x8c, 0x8d},
		TableBorder: RGB{0xdd, 0xdd, 0xdd},
		HeaderFill:  RGB{0x34, 0x98, 0xdb},
		HeaderText:  RGB{0xff, 0xff, 0xff},
		ZebraFill:   RGB{0xf5, 0xf5, 0xf5},
		Zebra:       true,
		HRule:       RGB{0xbd, 0xc3, 0xc7},
		Justify:     true,
	},
	Classic: {
		Text:        RGB{0x33, 0x33, 0x33},
		Heading:     RGB{0x2c, 0x3e, 0x50},
		Subheading:  RGB{0x2c, 0x3e, 0x50},
		H1Rule:      RGB{0x34, 0x98, 0xdb},
		H2Rule:      RGB{0xbd, 0xc3, 0xc7},
		CodeFill:    RGB{0xf5, 0xf5, 0xf5},
		Quote:       RGB{0x55, 0x55, 0x55},
		QuoteRule:   RGB{0x34, 0x98, 0xdb},
		Emphasis:    RGB{0x33, 0x33, 0x33},
		TableBorder: RGB{0xdd, 0xdd, 0xdd},
		HeaderFill:  RGB{0xf5, 0xf5, 0xf5},
		HeaderText:  RGB{0x33, 0x33, 0x33},
		HRule:       RGB{0xbd, 0xc3, 0xc7},
	},
}

// PaletteFor returns the palette of a built-in theme. Custom themes
// without a palette get the classic colors.
func PaletteFor(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[Classic]
}

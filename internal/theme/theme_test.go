// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{Classic, Final}, Names())
}

func TestWrap_HTML5Document(t *testing.T) {
	r := NewResolver("")
	out, err := r.Wrap("Final Report", []byte("<h1 id=\"x\">Hello</h1>"), Final)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, `<meta charset="utf-8">`)
	assert.Contains(t, s, "<title>Final Report</title>")
	assert.Contains(t, s, `<h1 id="x">Hello</h1>`)
	assert.Contains(t, s, "border-left: 3px solid #3498db")
	assert.Contains(t, s, "table tr:nth-child(even)")
}

func TestWrap_EscapesTitle(t *testing.T) {
	out, err := NewResolver("").Wrap("A <b> & C", nil, Classic)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>A &lt;b&gt; &amp; C</title>")
}

func TestWrap_ThemesDiffer(t *testing.T) {
	r := NewResolver("")
	final, err := r.Wrap("t", nil, Final)
	require.NoError(t, err)
	classic, err := r.Wrap("t", nil, Classic)
	require.NoError(t, err)

	assert.Contains(t, string(final), "padding: 10px;\n    text-align: left;")
	assert.Contains(t, string(classic), "padding: 8px;\n    text-align: left;")
	assert.NotContains(t, string(classic), "nth-child(even)")
}

func TestWrap_UnknownTheme(t *testing.T) {
	_, err := NewResolver("").Wrap("t", nil, "neon")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestResolver_CustomFirstFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles", "final.css"), []byte("body { color: red; }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles", "brand.css"), []byte("body { color: navy; }"), 0o644))

	r := NewResolver(dir)

	css, err := r.LoadStyle(Final)
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", css)

	css, err = r.LoadStyle(Classic)
	require.NoError(t, err)
	assert.Contains(t, css, "padding: 8px")

	out, err := r.Wrap("t", []byte("<p>x</p>"), "brand")
	require.NoError(t, err)
	assert.Contains(t, string(out), "color: navy")
}

func TestResolver_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	tmpl := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>{{.Title}}</title></head><body class=\"custom\">{{.Body}}</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "page.html"), []byte(tmpl), 0o644))

	out, err := NewResolver(dir).Wrap("t", []byte("<p>x</p>"), Final)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="custom"><p>x</p></body>`)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"final", false},
		{"my-theme_2", false},
		{"", true},
		{"../etc/passwd", true},
		{"sub/dir", true},
		{".hidden", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAssetName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDirLoader_SymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	require.NoError(t, os.WriteFile(secret, []byte("leak"), 0o644))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o755))
	if err := os.Symlink(secret, filepath.Join(dir, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := DirLoader{Root: dir}.LoadStyle("evil")
	assert.ErrorIs(t, err, ErrInvalidAssetName)
}

func TestPaletteFor(t *testing.T) {
	assert.True(t, PaletteFor(Final).Zebra)
	assert.False(t, PaletteFor(Classic).Zebra)
	assert.Equal(t, PaletteFor(Classic), PaletteFor("brand"))
}

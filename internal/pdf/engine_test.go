// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportsmith/pkg/types"
)

func TestNew(t *testing.T) {
	cfg := types.DefaultRenderConfig()
	tests := []struct {
		name     types.EngineName
		wantHint string
	}{
		{types.EngineWkhtmltopdf, "Make sure wkhtmltopdf is installed and in your PATH"},
		{types.EngineContainer, "Make sure docker or podman is running and can pull surnet/alpine-wkhtmltopdf:3.20.2-0.12.6-full"},
		{types.EngineGotenberg, "Make sure a Gotenberg service is reachable at http://localhost:3000"},
		{types.EngineNative, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			e, err := New(tt.name, cfg)
			require.NoError(t, err)
			assert.Equal(t, string(tt.name), e.Name())
			assert.Equal(t, tt.wantHint, Hint(e))
		})
	}
}

func TestNew_GotenbergUsesConfiguredCredentials(t *testing.T) {
	var gotUser, gotPass string
	var gotAuth bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer ts.Close()

	cfg := types.DefaultRenderConfig()
	cfg.GotenbergURL = ts.URL
	cfg.GotenbergUsername = "renderer"
	cfg.GotenbergPassword = "pw"

	e, err := New(types.EngineGotenberg, cfg)
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "r.pdf")
	require.NoError(t, e.Render(context.Background(), Document{HTML: []byte("<p>x</p>")}, out))
	assert.True(t, gotAuth)
	assert.Equal(t, "renderer", gotUser)
	assert.Equal(t, "pw", gotPass)

	cfg.GotenbergUsername = ""
	e, err = New(types.EngineGotenberg, cfg)
	require.NoError(t, err)
	require.NoError(t, e.Render(context.Background(), Document{HTML: []byte("<p>x</p>")}, out))
	assert.False(t, gotAuth)
}

func TestNew_UnknownEngine(t *testing.T) {
	_, err := New("prince", types.DefaultRenderConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown pdf engine "prince"`)
	assert.Contains(t, err.Error(), "wkhtmltopdf")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"container", "gotenberg", "native", "wkhtmltopdf"}, Names())
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.75in", 19.05, false},
		{"20mm", 20, false},
		{"2cm", 20, false},
		{"15", 15, false},
		{" 1IN ", 25.4, false},
		{"", 0, true},
		{"wide", 0, true},
		{"-1mm", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestInches(t *testing.T) {
	assert.Equal(t, "0.75", inches(19.05))
	assert.Equal(t, "8.2677", inches(210))
	assert.Equal(t, "11.6929", inches(297))
}

func TestLookupPaper(t *testing.T) {
	p, err := lookupPaper("A4")
	require.NoError(t, err)
	assert.Equal(t, paperSize{210, 297}, p)

	_, err = lookupPaper("B7")
	assert.Error(t, err)
}

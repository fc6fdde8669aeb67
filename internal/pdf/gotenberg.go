// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/pdiddy/reportsmith/internal/httputil"
	"github.com/pdiddy/reportsmith/internal/secrets"
	"github.com/pdiddy/reportsmith/pkg/types"
)

const gotenbergRoute = "/forms/chromium/convert/html"

// Gotenberg posts the page to a Gotenberg service's Chromium HTML route.
type Gotenberg struct {
	url    string
	page   types.PageConfig
	client *http.Client
	auth   *secrets.BasicAuth
}

// NewGotenberg returns an engine for the service at baseURL. auth may be nil.
func NewGotenberg(baseURL string, page types.PageConfig, client *http.Client, auth *secrets.BasicAuth) *Gotenberg {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gotenberg{
		url:    strings.TrimRight(baseURL, "/"),
		page:   page,
		client: client,
		auth:   auth,
	}
}

func (g *Gotenberg) Name() string { return string(types.EngineGotenberg) }

func (g *Gotenberg) Hint() string {
	return fmt.Sprintf("Make sure a Gotenberg service is reachable at %s", g.url)
}

func (g *Gotenberg) Render(ctx context.Context, doc Document, outPath string) error {
	body, contentType, err := g.form(doc.HTML)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+gotenbergRoute, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building gotenberg request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if g.auth != nil {
		req.SetBasicAuth(g.auth.Username, g.auth.Password)
	}

	resp, err := httputil.DoWithRetry(ctx, g.client, req, 0)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("calling gotenberg: %w", err)
		}
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if httputil.Retryable(resp.StatusCode) {
			return fmt.Errorf("%w: gotenberg returned %s", ErrEngineUnavailable, resp.Status)
		}
		return fmt.Errorf("gotenberg returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return f.Close()
}

// form encodes the page as index.html plus paper and margin fields in inches.
func (g *Gotenberg) form(html []byte) ([]byte, string, error) {
	paper, err := lookupPaper(g.page.Size)
	if err != nil {
		return nil, "", err
	}
	fields := [][2]string{
		{"paperWidth", inches(paper.Width)},
		{"paperHeight", inches(paper.Height)},
	}
	margins := [][2]string{
		{"marginTop", g.page.MarginTop},
		{"marginRight", g.page.MarginRight},
		{"marginBottom", g.page.MarginBottom},
		{"marginLeft", g.page.MarginLeft},
	}
	for _, m := range margins {
		mm, err := ParseLength(m[1])
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", m[0], err)
		}
		fields = append(fields, [2]string{m[0], inches(mm)})
	}
	fields = append(fields, [2]string{"printBackground", "true"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", f[0], err)
		}
	}
	fw, err := mw.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := fw.Write(html); err != nil {
		return nil, "", fmt.Errorf("writing form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

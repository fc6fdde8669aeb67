// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportsmith/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	assert.Equal(t, types.DefaultConfig(), loadConfig())
}

func TestCommandConfigAddsSecrets(t *testing.T) {
	t.Cleanup(func() { loadedSecrets = nil })
	loadedSecrets = map[string]string{
		"gotenberg-username": "renderer",
		"gotenberg-password": "pw",
	}

	c := &cobra.Command{}
	c.Flags().Bool("no-history", false, "")
	require.NoError(t, c.Flags().Set("no-history", "true"))

	cfg := commandConfig(c)
	assert.Equal(t, "renderer", cfg.Render.GotenbergUsername)
	assert.Equal(t, "pw", cfg.Render.GotenbergPassword)
	assert.False(t, cfg.History.Enabled)
}

func reportCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().String("dir", ".", "")
	c.Flags().String("report", "", "")
	c.Flags().String("output", "", "")
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	return c
}

func TestSelectReports(t *testing.T) {
	dir := t.TempDir()

	reports, err := selectReports(reportCmd(t, map[string]string{"dir": dir}), nil)
	require.NoError(t, err)
	assert.Equal(t, types.KnownReports(dir), reports)

	reports, err = selectReports(reportCmd(t, map[string]string{"dir": dir, "report": "role-based", "output": "out.pdf"}), nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "classic", reports[0].Theme)
	assert.Equal(t, "out.pdf", reports[0].PDFPath)

	path := filepath.Join(dir, "notes.md")
	reports, err = selectReports(reportCmd(t, nil), []string{path})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.pdf"), reports[0].PDFPath)
}

func TestSelectReportsErrors(t *testing.T) {
	_, err := selectReports(reportCmd(t, map[string]string{"report": "nope"}), nil)
	assert.ErrorContains(t, err, `unknown report "nope"`)

	_, err = selectReports(reportCmd(t, map[string]string{"output": "x.pdf"}), nil)
	assert.ErrorContains(t, err, "exactly one report")

	_, err = selectReports(reportCmd(t, map[string]string{"report": "final"}), []string{"a.md"})
	assert.Error(t, err)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FormatTable writes entries as a fixed-width table.
func FormatTable(entries []Entry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-10s  %-40s  %-9s  %-13s  %s\n",
		"ID", "Time", "Kind", "Path", "Change", "Status", "SHA-256")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, e := range entries {
		path := shortenPath(e.Path, 40)
		status := string(e.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%-4d  %-20s  %-10s  %-40s  %-9s  %-13s  %.12s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, path, e.Change, status, e.SHA256)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}

// shortenPath keeps the last width-3 runes of path behind "...".
func shortenPath(path string, width int) string {
	r := []rune(path)
	if len(r) <= width {
		return path
	}
	return "..." + string(r[len(r)-(width-3):])
}

// FormatJSON writes entries as indented JSON.
func FormatJSON(entries []Entry, w io.Writer) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// FormatYAML writes entries as a YAML list.
func FormatYAML(entries []Entry, w io.Writer) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}

// Export writes the full history to export.yaml, or export.json when
// asJSON is set, in the store directory and returns the path.
func (s *Store) Export(ctx context.Context, asJSON bool) (string, error) {
	entries, err := s.List(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	name, format := "export.yaml", FormatYAML
	if asJSON {
		name, format = "export.json", FormatJSON
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := format(entries, f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, f.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reportsmith/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, ".reportsmith"))
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func record(t *testing.T, s *Store, name, path string, kind types.ArtifactKind) Entry {
	t.Helper()
	a, err := Describe(name, path, kind, "")
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.Record(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// --- tests ---

func TestOpenCreatesDBFile(t *testing.T) {
	_, dir := testStore(t)
	if _, err := os.Stat(filepath.Join(dir, ".reportsmith", dbFile)); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := Open(dir)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestDescribeHashesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeFile(t, path, "hello")

	a, err := Describe("diagram", path, types.KindPNG, "")
	if err != nil {
		t.Fatal(err)
	}
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if a.SHA256 != want {
		t.Errorf("SHA256 = %s, want %s", a.SHA256, want)
	}
	if a.Size != 5 {
		t.Errorf("Size = %d, want 5", a.Size)
	}

	if _, err := Describe("x", filepath.Join(dir, "missing"), types.KindPDF, ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecordDetectsChanges(t *testing.T) {
	s, dir := testStore(t)
	path := filepath.Join(dir, "report.pdf")

	writeFile(t, path, "v1")
	if e := record(t, s, "final", path, types.KindPDF); e.Change != ChangeNew {
		t.Errorf("first record: change = %s, want new", e.Change)
	}
	if e := record(t, s, "final", path, types.KindPDF); e.Change != ChangeUnchanged {
		t.Errorf("rerun: change = %s, want unchanged", e.Change)
	}
	writeFile(t, path, "v2")
	if e := record(t, s, "final", path, types.KindPDF); e.Change != ChangeChanged {
		t.Errorf("edit: change = %s, want changed", e.Change)
	}

	other := filepath.Join(dir, "other.pdf")
	writeFile(t, other, "v2")
	if e := record(t, s, "other", other, types.KindPDF); e.Change != ChangeNew {
		t.Errorf("other path: change = %s, want new", e.Change)
	}
}

func TestListNewestFirst(t *testing.T) {
	s, dir := testStore(t)
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name+".png")
		writeFile(t, path, name)
		record(t, s, name, path, types.KindPNG)
	}

	all, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	if all[0].Name != "c" || all[2].Name != "a" {
		t.Errorf("order = %s,%s,%s; want c,b,a", all[0].Name, all[1].Name, all[2].Name)
	}
	if !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Error("timestamps not preserved")
	}
	if all[1].Kind != types.KindPNG {
		t.Errorf("kind = %s, want png", all[1].Kind)
	}

	two, err := s.List(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2 {
		t.Errorf("limit 2 returned %d entries", len(two))
	}
}

func TestRecorderRecordsResults(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "final.pdf")
	htmlPath := filepath.Join(dir, "final.html")
	writeFile(t, pdfPath, "%PDF")
	writeFile(t, htmlPath, "<html>")

	var warn bytes.Buffer
	rec := NewRecorder(types.HistoryConfig{Dir: filepath.Join(dir, "h"), Enabled: true}, &warn)
	if !rec.Enabled() {
		t.Fatal("recorder not enabled")
	}
	ctx := context.Background()
	rec.RecordResult(ctx, types.RenderResult{
		Report:     types.Report{Name: "final"},
		Status:     types.StatusPDF,
		OutputPath: pdfPath,
		HTMLPath:   htmlPath,
	})
	rec.RecordResult(ctx, types.RenderResult{Report: types.Report{Name: "gone"}, Status: types.StatusMissing})
	rec.Record(ctx, "diagram", filepath.Join(dir, "nope.png"), types.KindPNG, "")
	rec.Close()

	if !strings.Contains(warn.String(), "warning: history:") {
		t.Errorf("missing file should warn, got %q", warn.String())
	}

	s, err := Open(filepath.Join(dir, "h"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Kind != types.KindHTML || entries[1].Kind != types.KindPDF {
		t.Errorf("kinds = %s,%s; want html,pdf", entries[0].Kind, entries[1].Kind)
	}
	if entries[1].Status != types.StatusPDF {
		t.Errorf("status = %q, want pdf", entries[1].Status)
	}
}

func TestRecorderDisabled(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(types.HistoryConfig{Dir: filepath.Join(dir, "h"), Enabled: false}, nil)
	if rec.Enabled() {
		t.Fatal("disabled recorder reports enabled")
	}
	rec.Record(context.Background(), "x", filepath.Join(dir, "x"), types.KindPNG, "")
	rec.Close()
	if _, err := os.Stat(filepath.Join(dir, "h")); !os.IsNotExist(err) {
		t.Error("disabled recorder created the history directory")
	}

	var nilRec *Recorder
	nilRec.Record(context.Background(), "x", "x", types.KindPNG, "")
	nilRec.Close()
}

func TestRecorderOpenFailureWarns(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "not a directory")

	var warn bytes.Buffer
	rec := NewRecorder(types.HistoryConfig{Dir: filepath.Join(blocker, "h"), Enabled: true}, &warn)
	if rec.Enabled() {
		t.Fatal("recorder enabled despite open failure")
	}
	if !strings.Contains(warn.String(), "creating history directory") {
		t.Errorf("warning = %q", warn.String())
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No history recorded.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	FormatTable([]Entry{{
		ID: 7,
		Artifact: types.Artifact{
			Path:      "out/strategy_diagram.png",
			Kind:      types.KindPNG,
			SHA256:    "abcdef0123456789",
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Change: ChangeUnchanged,
	}}, &buf)
	out := buf.String()
	for _, want := range []string{"out/strategy_diagram.png", "unchanged", "abcdef012345", "1 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "abcdef0123456789") {
		t.Error("hash should be truncated")
	}
}

func TestShortenPathKeepsRunes(t *testing.T) {
	long := "charts/" + strings.Repeat("é", 50) + "/отчёт.png"
	got := shortenPath(long, 40)
	if !utf8.ValidString(got) {
		t.Fatalf("shortened path is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Errorf("rune count = %d, want 40", n)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "/отчёт.png") {
		t.Errorf("shortened = %q", got)
	}
	if short := "out/a.png"; shortenPath(short, 40) != short {
		t.Errorf("short path changed")
	}

	var buf bytes.Buffer
	FormatTable([]Entry{{ID: 1, Artifact: types.Artifact{Path: long, Kind: types.KindPNG}}}, &buf)
	if !utf8.ValidString(buf.String()) {
		t.Error("table output is not valid UTF-8")
	}
}

func TestExportWritesYAMLAndJSON(t *testing.T) {
	s, dir := testStore(t)
	path := filepath.Join(dir, "chart.png")
	writeFile(t, path, "png")
	record(t, s, "heatmap", path, types.KindPNG)

	yamlPath, err := s.Export(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []map[string]any
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != 1 || fromYAML[0]["name"] != "heatmap" || fromYAML[0]["change"] != "new" {
		t.Errorf("yaml export = %v", fromYAML)
	}

	jsonPath, err := s.Export(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(jsonPath) != "export.json" {
		t.Errorf("json path = %s", jsonPath)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []map[string]any
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 1 || fromJSON[0]["kind"] != "png" || fromJSON[0]["path"] != path {
		t.Errorf("json export = %v", fromJSON)
	}
}

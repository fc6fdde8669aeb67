// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/reportsmith/pkg/types"
)

// Recorder records artifacts on a best-effort basis. Failures print a
// warning and never reach the caller. A nil or disabled Recorder does
// nothing.
type Recorder struct {
	store *Store
	warn  io.Writer
}

// NewRecorder opens the store named by cfg. When history is disabled or
// the store cannot be opened it returns a Recorder that records nothing.
func NewRecorder(cfg types.HistoryConfig, warn io.Writer) *Recorder {
	r := &Recorder{warn: warn}
	if !cfg.Enabled {
		return r
	}
	store, err := Open(cfg.Dir)
	if err != nil {
		r.warnf("%v", err)
		return r
	}
	r.store = store
	return r
}

// Enabled reports whether entries are being written.
func (r *Recorder) Enabled() bool { return r != nil && r.store != nil }

// Record hashes the file at path and stores it.
func (r *Recorder) Record(ctx context.Context, name, path string, kind types.ArtifactKind, status types.RenderStatus) {
	if !r.Enabled() {
		return
	}
	a, err := Describe(name, path, kind, status)
	if err != nil {
		r.warnf("%v", err)
		return
	}
	if _, err := r.store.Record(ctx, a); err != nil {
		r.warnf("%v", err)
	}
}

// RecordResult stores the files written for one report.
func (r *Recorder) RecordResult(ctx context.Context, res types.RenderResult) {
	switch res.Status {
	case types.StatusPDF:
		r.Record(ctx, res.Report.Name, res.OutputPath, types.KindPDF, res.Status)
		if res.HTMLPath != "" {
			r.Record(ctx, res.Report.Name, res.HTMLPath, types.KindHTML, res.Status)
		}
	case types.StatusHTMLFallback:
		r.Record(ctx, res.Report.Name, res.OutputPath, types.KindHTML, res.Status)
	}
}

// Close closes the underlying store.
func (r *Recorder) Close() {
	if !r.Enabled() {
		return
	}
	if err := r.store.Close(); err != nil {
		r.warnf("%v", err)
	}
}

func (r *Recorder) warnf(format string, args ...any) {
	if r.warn == nil {
		return
	}
	fmt.Fprintf(r.warn, "warning: history: "+format+"\n", args...)
}

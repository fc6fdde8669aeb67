// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArtifactKind classifies a written file.
type ArtifactKind string

const (
	KindPDF       ArtifactKind = "pdf"
	KindHTML      ArtifactKind = "html"
	KindPNG       ArtifactKind = "png"
	KindChartHTML ArtifactKind = "chart-html"
)

// Artifact is a file produced by a conversion or chart run.
type Artifact struct {
	// Name is the logical producer (report name or chart name).
	Name string `json:"name" yaml:"name"`

	// Path is where the file was written.
	Path string `json:"path" yaml:"path"`

	Kind ArtifactKind `json:"kind" yaml:"kind"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// SHA256 is the hex digest of the file contents.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Status is the render status for report artifacts; empty for charts.
	Status RenderStatus `json:"status,omitempty" yaml:"status,omitempty"`

	// CreatedAt is when the artifact was recorded.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

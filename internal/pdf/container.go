// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/reportsmith/internal/container"
	"github.com/pdiddy/reportsmith/pkg/types"
)

// Container runs wkhtmltopdf inside a docker or podman container. HTML goes
// in on stdin and the PDF comes back on stdout, so no volume is mounted.
// Images referenced by relative path are not visible to the container.
type Container struct {
	image  string
	page   types.PageConfig
	detect func(ctx context.Context) (container.Runtime, error)
}

// NewContainer returns an engine running image.
func NewContainer(image string, page types.PageConfig) *Container {
	return &Container{image: image, page: page, detect: container.DetectRuntime}
}

func (c *Container) Name() string { return string(types.EngineContainer) }

func (c *Container) Hint() string {
	return fmt.Sprintf("Make sure docker or podman is running and can pull %s", c.image)
}

func (c *Container) Render(ctx context.Context, doc Document, outPath string) error {
	rt, err := c.detect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if err := container.EnsureImage(ctx, rt, c.image); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	args := append(wkhtmltopdfArgs(c.page), "-", "-")
	var out bytes.Buffer
	if err := rt.Run(ctx, c.image, args, bytes.NewReader(doc.HTML), &out); err != nil {
		return err
	}
	if out.Len() == 0 {
		return errors.New("container produced no output")
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

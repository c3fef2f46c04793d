package render

import (
	"context"

	"github.com/goliatone/go-signup/pkg/form"
)

// Renderer converts a controller view into a byte representation (HTML,
// plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}

// Package signup is the top-level entry point: it derives the signup field
// schema from the embedded OpenAPI document and mounts form controllers on it.
package signup

import (
	"context"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/render"
)

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// DefaultFields derives the field schema from the embedded document with the
// embedded UI schema and any extra decorators applied.
func DefaultFields(ctx context.Context, decorators ...model.Decorator) ([]model.Field, error) {
	orch := orchestrator.New(orchestrator.WithUIDecorators(decorators...))
	return orch.Fields(ctx, orchestrator.Request{})
}

// NewController mounts a controller on DefaultFields.
func NewController(ctx context.Context, options ...form.Option) (*form.Controller, error) {
	return orchestrator.New().NewController(ctx, orchestrator.Request{}, options...)
}

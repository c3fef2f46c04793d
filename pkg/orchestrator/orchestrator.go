package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	internalModel "github.com/goliatone/go-signup/internal/model"
	internalLoader "github.com/goliatone/go-signup/internal/openapi/loader"
	internalParser "github.com/goliatone/go-signup/internal/openapi/parser"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
	"github.com/goliatone/go-signup/pkg/uischema"
)

const defaultRendererName = "vanilla"

// FieldBuilder derives the field schema from a parsed operation.
type FieldBuilder interface {
	Build(op pkgopenapi.Operation) ([]model.Field, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithFieldBuilder injects a custom field builder.
func WithFieldBuilder(builder FieldBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render receives an
// empty name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithUIDecorators registers decorators that run after the UI schema
// decorator.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to a mounted
// controller and rendered output. Defaults cover the embedded document, the
// embedded UI schema, and the vanilla renderer.
type Orchestrator struct {
	loader            pkgopenapi.Loader
	parser            pkgopenapi.Parser
	builder           FieldBuilder
	registry          *render.Registry
	defaultRenderer   string
	decorators        []model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	uiStore           *uischema.Store
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects the operation that describes the signup payload.
type Request struct {
	// Source identifies where the OpenAPI document lives. When both Source
	// and Document are empty the embedded signup document is used.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// OperationID defaults to pkgopenapi.SignupOperationID.
	OperationID string
}

// Fields runs the loader, parser, builder, and decorators and returns the
// ordered field schema.
func (o *Orchestrator) Fields(ctx context.Context, req Request) ([]model.Field, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	opID := operationID(req)
	op, ok := operations[opID]
	if !ok {
		return nil, fmt.Errorf("orchestrator: operation %q not found", opID)
	}

	fields, err := o.builder.Build(op)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build fields: %w", err)
	}

	decorators := o.decorators
	if o.uiStore != nil {
		decorators = append([]model.Decorator{uischema.NewDecorator(o.uiStore, opID)}, decorators...)
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		fields, err = decorator.Decorate(fields)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decorate fields: %w", err)
		}
	}
	return fields, nil
}

// NewController derives the fields for req and mounts a controller on them.
// Extra options run after the field option so callers can add a submitter,
// logger, or clock.
func (o *Orchestrator) NewController(ctx context.Context, req Request, options ...form.Option) (*form.Controller, error) {
	fields, err := o.Fields(ctx, req)
	if err != nil {
		return nil, err
	}
	ctrl, err := form.New(append([]form.Option{form.WithFields(fields)}, options...)...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: mount controller: %w", err)
	}
	return ctrl, nil
}

// RenderOptions layers the UI schema form copy for operationID under base.
// Values already set on base win.
func (o *Orchestrator) RenderOptions(operationID string, base render.RenderOptions) render.RenderOptions {
	if operationID == "" {
		operationID = pkgopenapi.SignupOperationID
	}
	op, ok := o.uiStore.Operation(operationID)
	if !ok {
		return base
	}

	out := base
	if strings.TrimSpace(out.Title) == "" {
		out.Title = op.Form.Title
	}
	if strings.TrimSpace(out.SubmitLabel) == "" {
		out.SubmitLabel = op.Form.SubmitLabel
	}
	if out.Links == nil && len(op.Form.Links) > 0 {
		for _, link := range model.Links() {
			if href, ok := op.Form.Links[link.Name]; ok {
				out.Links = append(out.Links, render.LinkOption{Name: link.Name, Href: href})
			}
		}
	}
	return out
}

// Render renders view with the named renderer, falling back to the default.
func (o *Orchestrator) Render(ctx context.Context, rendererName string, view form.View, options render.RenderOptions) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func operationID(req Request) string {
	if id := strings.TrimSpace(req.OperationID); id != "" {
		return id
	}
	return pkgopenapi.SignupOperationID
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.SignupDocument(), nil
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(pkgopenapi.SpecFS())))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = internalModel.New(internalModel.Options{})
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.uiSchemaSpecified {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}
	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if !store.Empty() {
		o.uiStore = store
	}
}

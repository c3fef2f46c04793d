package model

import (
	"fmt"
	"strings"

	pkgmodel "github.com/goliatone/go-signup/pkg/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
)

// Options configures the Builder. A nil Labeler selects DefaultLabeler.
type Options struct {
	Labeler func(string) string
}

// Builder converts an OpenAPI request body into the field schema.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	if options.Labeler == nil {
		options.Labeler = DefaultLabeler
	}
	return &Builder{opts: options}
}

// Build derives one field per request body property. Properties without an
// explicit order follow the ordered ones in lexical order.
func (b *Builder) Build(op pkgopenapi.Operation) ([]pkgmodel.Field, error) {
	body := op.RequestBody
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("model builder: operation %q: %w", op.ID, err)
	}

	fields := make([]pkgmodel.Field, 0, len(body.Properties))
	maxOrder := 0
	var unordered []int
	for _, name := range body.PropertyNames() {
		prop := body.Properties[name]
		ext := fieldExtensions(prop.Extensions)

		field := pkgmodel.Field{
			Name:         name,
			Label:        ext.Label,
			Kind:         ext.Input,
			Required:     body.IsRequired(name),
			Hint:         ext.Hint,
			Placeholder:  ext.Placeholder,
			RevealToggle: ext.RevealToggle,
			Order:        ext.Order,
		}
		if field.Label == "" {
			field.Label = b.opts.Labeler(name)
		}
		if field.Kind == "" {
			field.Kind = kindFor(prop)
		}
		if field.Hint == "" {
			field.Hint = strings.TrimSpace(prop.Description)
		}
		if field.Order > maxOrder {
			maxOrder = field.Order
		}
		if field.Order == 0 {
			unordered = append(unordered, len(fields))
		}
		fields = append(fields, field)
	}
	for i, idx := range unordered {
		fields[idx].Order = maxOrder + i + 1
	}
	return pkgmodel.SortFields(fields), nil
}

func kindFor(schema pkgopenapi.Schema) pkgmodel.InputKind {
	switch schema.Type {
	case "boolean":
		return pkgmodel.InputKindCheckbox
	case "integer", "number":
		return pkgmodel.InputKindNumber
	}
	switch schema.Format {
	case "email":
		return pkgmodel.InputKindEmail
	case "password":
		return pkgmodel.InputKindPassword
	case "date":
		return pkgmodel.InputKindDate
	case "uri", "url":
		return pkgmodel.InputKindURL
	case "tel", "phone":
		return pkgmodel.InputKindTel
	}
	return pkgmodel.InputKindText
}

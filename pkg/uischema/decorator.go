package uischema

import (
	"fmt"
	"strings"

	pkgmodel "github.com/goliatone/go-signup/pkg/model"
)

// Decorator applies one operation's overrides to a field schema.
type Decorator struct {
	store       *Store
	operationID string
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator for operationID. When store is nil or has
// no matching operation the decorator is a no-op.
func NewDecorator(store *Store, operationID string) *Decorator {
	return &Decorator{store: store, operationID: operationID}
}

// Decorate returns a copy of fields with overrides applied and order
// recomputed. Overrides naming unknown fields are rejected.
func (d *Decorator) Decorate(fields []pkgmodel.Field) ([]pkgmodel.Field, error) {
	out := append([]pkgmodel.Field(nil), fields...)
	if d == nil || d.store.Empty() {
		return out, nil
	}
	op, ok := d.store.Operation(d.operationID)
	if !ok {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i, field := range out {
		index[field.Name] = i
	}
	for name, cfg := range op.Fields {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("uischema: operation %q (file %s) overrides unknown field %q", op.ID, op.Source, cfg.OriginalKey)
		}
		applyFieldConfig(&out[i], cfg)
	}
	return pkgmodel.SortFields(out), nil
}

func applyFieldConfig(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.HelpText != "" {
		field.Hint = cfg.HelpText
	}
	if widget := strings.TrimSpace(cfg.Widget); widget != "" {
		field.Kind = pkgmodel.InputKind(strings.ToLower(widget))
	}
	if cfg.RevealToggle != nil {
		field.RevealToggle = *cfg.RevealToggle
	}
	if cfg.Order != nil {
		field.Order = *cfg.Order
	}
}

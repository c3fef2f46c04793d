// Package input implements the Field Input: a typed editor that turns raw
// user edits into values and reports them upward. It holds no validation
// state; the only local state is the password reveal flag.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
)

// Config is the tagged variant describing which editor renders a field.
type Config interface {
	Kind() model.InputKind
	isConfig()
}

// Text covers plain single-line editors (text, tel, url, search).
type Text struct {
	Type        model.InputKind
	Placeholder string
}

// Email is a text editor with an email keyboard hint.
type Email struct {
	Placeholder string
}

// Password masks its value; RevealToggle exposes a show/hide control.
type Password struct {
	Placeholder  string
	RevealToggle bool
}

// Date edits calendar dates in model.DateLayout.
type Date struct {
	Required bool
}

// Number edits numeric values.
type Number struct {
	Placeholder string
}

// Checkbox edits a boolean.
type Checkbox struct{}

func (t Text) Kind() model.InputKind {
	if t.Type == "" {
		return model.InputKindText
	}
	return t.Type
}
func (Email) Kind() model.InputKind    { return model.InputKindEmail }
func (Password) Kind() model.InputKind { return model.InputKindPassword }
func (Date) Kind() model.InputKind     { return model.InputKindDate }
func (Number) Kind() model.InputKind   { return model.InputKindNumber }
func (Checkbox) Kind() model.InputKind { return model.InputKindCheckbox }

func (Text) isConfig()     {}
func (Email) isConfig()    {}
func (Password) isConfig() {}
func (Date) isConfig()     {}
func (Number) isConfig()   {}
func (Checkbox) isConfig() {}

// ForField derives the editor configuration from the field schema.
func ForField(field model.Field) Config {
	switch field.Kind {
	case model.InputKindEmail:
		return Email{Placeholder: field.Placeholder}
	case model.InputKindPassword:
		return Password{Placeholder: field.Placeholder, RevealToggle: field.RevealToggle}
	case model.InputKindDate:
		return Date{Required: field.Required}
	case model.InputKindNumber:
		return Number{Placeholder: field.Placeholder}
	case model.InputKindCheckbox:
		return Checkbox{}
	case model.InputKindTel, model.InputKindURL, model.InputKindSearch:
		return Text{Type: field.Kind, Placeholder: field.Placeholder}
	default:
		return Text{Placeholder: field.Placeholder}
	}
}

// Placeholder returns the placeholder carried by cfg, if any.
func Placeholder(cfg Config) string {
	switch typed := cfg.(type) {
	case Text:
		return typed.Placeholder
	case Email:
		return typed.Placeholder
	case Password:
		return typed.Placeholder
	case Number:
		return typed.Placeholder
	default:
		return ""
	}
}

// Parse converts a raw textual edit into the value stored for cfg. Dates and
// numbers that fail to parse are returned as the raw string so validation can
// report them; parse never fails.
func Parse(cfg Config, raw string) any {
	switch cfg.(type) {
	case Date:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		if t, err := time.Parse(model.DateLayout, trimmed); err == nil {
			return t
		}
		return raw
	case Number:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
		return raw
	case Checkbox:
		return parseBool(raw)
	default:
		return raw
	}
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y", "checked":
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}

// ChangeFunc receives the field name and the parsed value on every edit.
type ChangeFunc func(name string, value any) error

var errNoChangeHandler = errors.New("input: change handler is nil")

// Editor binds a config to a field and a change callback.
type Editor struct {
	name     string
	cfg      Config
	value    any
	revealed bool
	onChange ChangeFunc
}

// NewEditor constructs an editor for field that reports edits to onChange.
func NewEditor(field model.Field, value any, onChange ChangeFunc) *Editor {
	return &Editor{
		name:     field.Name,
		cfg:      ForField(field),
		value:    value,
		onChange: onChange,
	}
}

// Name returns the bound field name.
func (e *Editor) Name() string { return e.name }

// Config returns the editor variant.
func (e *Editor) Config() Config { return e.cfg }

// Value returns the last value reported upward.
func (e *Editor) Value() any { return e.value }

// Edit parses raw and forwards the result.
func (e *Editor) Edit(raw string) error {
	return e.Set(Parse(e.cfg, raw))
}

// Set forwards an already typed value.
func (e *Editor) Set(value any) error {
	if e.onChange == nil {
		return errNoChangeHandler
	}
	e.value = value
	return e.onChange(e.name, value)
}

// CanReveal reports whether the editor exposes a visibility toggle.
func (e *Editor) CanReveal() bool {
	pw, ok := e.cfg.(Password)
	return ok && pw.RevealToggle
}

// Revealed reports the local reveal flag.
func (e *Editor) Revealed() bool { return e.revealed }

// Toggle flips the reveal flag when supported and returns the new state. It
// never reports a change upward.
func (e *Editor) Toggle() bool {
	if !e.CanReveal() {
		return false
	}
	e.revealed = !e.revealed
	return e.revealed
}

// Display renders the current value as text, masking passwords unless
// revealed.
func (e *Editor) Display() string {
	text := Format(e.value)
	if _, ok := e.cfg.(Password); ok && !e.revealed {
		return strings.Repeat("•", len([]rune(text)))
	}
	return text
}

// Format renders a stored value as editor text.
func Format(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return typed.Format(model.DateLayout)
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

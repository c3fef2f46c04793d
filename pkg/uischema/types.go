package uischema

import "strings"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the overrides for one OpenAPI operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures page-level copy and link targets.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Links       map[string]string `json:"links" yaml:"links"`
}

// FieldConfig customises how a single field is presented.
type FieldConfig struct {
	Order        *int   `json:"order,omitempty" yaml:"order,omitempty"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText     string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget       string `json:"widget,omitempty" yaml:"widget,omitempty"`
	RevealToggle *bool  `json:"revealToggle,omitempty" yaml:"revealToggle,omitempty"`
	OriginalKey  string `json:"-" yaml:"-"`
}

// NormalizeFieldKey trims the key and drops a leading JSON pointer or body
// prefix so "/body/username" and "username" address the same field.
func NormalizeFieldKey(key string) string {
	trimmed := strings.TrimSpace(key)
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "body/")
	trimmed = strings.TrimPrefix(trimmed, "body.")
	return strings.Trim(trimmed, "/.")
}

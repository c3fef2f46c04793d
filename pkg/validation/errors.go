package validation

import (
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// FieldValidationError is the single error kind produced by rule evaluation.
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors aggregates field failures in rule-set order.
type Errors []FieldValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Map converts the failures into the ValidationErrors shape.
func (e Errors) Map() model.Errors {
	out := make(model.Errors, len(e))
	for _, err := range e {
		if _, exists := out[err.Field]; exists {
			continue
		}
		out[err.Field] = err.Message
	}
	return out
}

// For returns the message attached to field, if any.
func (e Errors) For(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

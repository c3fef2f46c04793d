package model

import (
	"sort"
	"time"
)

// InputKind is the simplified enum for the editors a field can use.
type InputKind string

const (
	InputKindText     InputKind = "text"
	InputKindEmail    InputKind = "email"
	InputKindPassword InputKind = "password"
	InputKindDate     InputKind = "date"
	InputKindNumber   InputKind = "number"
	InputKindCheckbox InputKind = "checkbox"
	InputKindTel      InputKind = "tel"
	InputKindURL      InputKind = "url"
	InputKindSearch   InputKind = "search"
)

// Canonical field names for the signup form.
const (
	FieldUsername        = "username"
	FieldDOB             = "dob"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldAgree           = "agree"
)

// FormErrorKey holds messages that cannot be attached to a single field, such
// as collaborator rejections scoped to the whole form.
const FormErrorKey = "_form"

// DateLayout is the wire layout used by date inputs.
const DateLayout = "2006-01-02"

// Field models an individual input inside the signup form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name         string    `json:"name" yaml:"name"`
	Label        string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind         InputKind `json:"kind" yaml:"kind"`
	Required     bool      `json:"required" yaml:"required"`
	Hint         string    `json:"hint,omitempty" yaml:"hint,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	RevealToggle bool      `json:"revealToggle,omitempty" yaml:"revealToggle,omitempty"`
	Order        int       `json:"order,omitempty" yaml:"order,omitempty"`
}

// DisplayLabel falls back to the field name when no label is configured.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// SortFields orders fields by Order, keeping declaration order for ties.
func SortFields(fields []Field) []Field {
	out := append([]Field(nil), fields...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// FieldNames returns the names of the provided fields in order.
func FieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}

// Snapshot is the immutable, fully validated payload produced on submit.
type Snapshot struct {
	Username        string    `json:"username"`
	DOB             time.Time `json:"dob"`
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	ConfirmPassword string    `json:"confirmPassword"`
	Agree           bool      `json:"agree"`
}

// NewSnapshot copies the signup fields out of values. Callers are expected to
// validate values first; missing entries collapse to zero values.
func NewSnapshot(values Values) Snapshot {
	dob, _ := values.Date(FieldDOB)
	agree, _ := values.Bool(FieldAgree)
	return Snapshot{
		Username:        values.String(FieldUsername),
		DOB:             dob,
		Email:           values.String(FieldEmail),
		Password:        values.String(FieldPassword),
		ConfirmPassword: values.String(FieldConfirmPassword),
		Agree:           agree,
	}
}

// Link is a navigation hand-off to another screen.
type Link struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Navigation targets exposed by the signup screen.
var (
	LinkLogin   = Link{Name: "login", Label: "Login", Href: "/login"}
	LinkTerms   = Link{Name: "terms", Label: "Terms and Conditions", Href: "/toc"}
	LinkPrivacy = Link{Name: "privacy", Label: "Privacy Policy", Href: "/privacy-policy"}
)

// Links returns the navigation links in display order.
func Links() []Link {
	return []Link{LinkLogin, LinkTerms, LinkPrivacy}
}

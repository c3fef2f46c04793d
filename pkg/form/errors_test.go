package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
)

func TestMapErrorPayload(t *testing.T) {
	names := model.FieldNames(model.SignupFields())
	payload := map[string][]string{
		"/body/username":        {"Username is already taken"},
		"$.body.email":          {"Email already registered", "Email already registered"},
		"confirm_password":      {"Passwords must match"},
		"request/data/password": {" Too common "},
		"non_field_errors":      {"Try again later"},
		"body/nickname":         {"Unknown field"},
		"":                      {"  "},
	}

	mapped := form.MapErrorPayload(names, payload)

	wantFields := map[string][]string{
		model.FieldUsername:        {"Username is already taken"},
		model.FieldEmail:           {"Email already registered"},
		model.FieldConfirmPassword: {"Passwords must match"},
		model.FieldPassword:        {"Too common"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Unknown field", "Try again later"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := form.MapErrorPayload([]string{"username"}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

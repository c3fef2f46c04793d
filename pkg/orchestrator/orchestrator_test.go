package orchestrator_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func TestOrchestrator_EmbeddedFieldsMatchGolden(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	fields, err := orch.Fields(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	golden := filepath.Join("testdata", "signup_fields.golden.json")
	testsupport.WriteGolden(t, golden, fields)
	want := testsupport.MustLoadFields(t, golden)
	if diff := testsupport.CompareGolden(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.SignupFields(), fields); diff != "" {
		t.Fatalf("embedded document drifted from built-in fields (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_FileSourceAndDecorators(t *testing.T) {
	t.Parallel()

	uppercase := model.DecoratorFunc(func(fields []model.Field) ([]model.Field, error) {
		out := append([]model.Field(nil), fields...)
		for i := range out {
			out[i].Label = strings.ToUpper(out[i].Name)
		}
		return out, nil
	})

	orch := orchestrator.New(
		orchestrator.WithUISchemaFS(nil),
		orchestrator.WithUIDecorators(uppercase),
	)
	fields, err := orch.Fields(testsupport.Context(), orchestrator.Request{
		Source:      pkgopenapi.SourceFromFile(filepath.Join("testdata", "plain_signup.yaml")),
		OperationID: "register",
	})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	want := []string{"agree", "confirmPassword", "dob", "email", "password", "username"}
	if diff := cmp.Diff(want, model.FieldNames(fields)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if fields[0].Kind != model.InputKindCheckbox || fields[0].Label != "AGREE" {
		t.Fatalf("unexpected agree field %+v", fields[0])
	}
}

func TestOrchestrator_UISchemaOverrides(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"signup.yaml": {Data: []byte(`operations:
  createAccount:
    form:
      title: Join the club
      links:
        login: /auth/login
    fields:
      agree:
        order: 0
        label: Accept terms
`)},
	}
	orch := orchestrator.New(orchestrator.WithUISchemaFS(files))

	ctrl, err := orch.NewController(testsupport.Context(), orchestrator.Request{}, form.WithClock(testsupport.FixedClock()))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	first := ctrl.Fields()[0]
	if first.Name != model.FieldAgree || first.Label != "Accept terms" {
		t.Fatalf("expected agree first with override, got %+v", first)
	}

	opts := orch.RenderOptions("", render.RenderOptions{Notice: "hi"})
	want := render.RenderOptions{
		Notice: "hi",
		Title:  "Join the club",
		Links:  []render.LinkOption{{Name: "login", Href: "/auth/login"}},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("render options mismatch (-want +got):\n%s", diff)
	}

	out, err := orch.Render(testsupport.Context(), "", ctrl.View(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{"Join the club", `href="/auth/login"`, "Accept terms"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output", fragment)
		}
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	ctx := testsupport.Context()

	if _, err := orch.Fields(ctx, orchestrator.Request{OperationID: "deleteAccount"}); err == nil {
		t.Fatalf("expected unknown operation error")
	}
	if _, err := orch.Render(ctx, "preact", testsupport.NewController(t).View(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Fields(cancelled, orchestrator.Request{}); err == nil {
		t.Fatalf("expected context error")
	}

	broken := orchestrator.New(orchestrator.WithUISchemaFS(fstest.MapFS{"x.json": {Data: []byte("{")}}))
	if _, err := broken.Fields(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected ui schema load error")
	}
}

package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	pkgmodel "github.com/goliatone/go-signup/pkg/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
)

// Today is the fixed calendar date used by FixedClock.
var Today = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock pinned to Today so date rules are deterministic.
func FixedClock() func() time.Time {
	return func() time.Time { return Today }
}

// NewController builds a controller with FixedClock plus any extra options.
func NewController(t *testing.T, options ...form.Option) *form.Controller {
	t.Helper()

	ctrl, err := form.New(append([]form.Option{form.WithClock(FixedClock())}, options...)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// FillValid feeds a complete, valid set of answers into ctrl.
func FillValid(t *testing.T, ctrl *form.Controller) {
	t.Helper()

	answers := []struct {
		name  string
		value any
	}{
		{pkgmodel.FieldUsername, "jane"},
		{pkgmodel.FieldDOB, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)},
		{pkgmodel.FieldEmail, "jane@example.com"},
		{pkgmodel.FieldPassword, "Secr3t!pw"},
		{pkgmodel.FieldConfirmPassword, "Secr3t!pw"},
		{pkgmodel.FieldAgree, true},
	}
	for _, answer := range answers {
		if err := ctrl.OnFieldChange(answer.name, answer.value); err != nil {
			t.Fatalf("change %s: %v", answer.name, err)
		}
	}
}

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadFields loads a JSON golden file holding a field schema.
func MustLoadFields(t *testing.T, path string) []pkgmodel.Field {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out []pkgmodel.Field
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

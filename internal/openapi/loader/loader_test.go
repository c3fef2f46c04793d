package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-signup/internal/openapi/loader"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
)

func TestLoader_FS(t *testing.T) {
	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fstest.MapFS{
		"spec.json": {Data: []byte(`{"openapi":"3.0.3"}`)},
	})))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("spec.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "spec.json" || string(doc.Raw()) != `{"openapi":"3.0.3"}` {
		t.Fatalf("unexpected document %q %q", doc.Location(), doc.Raw())
	}
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := loader.New(pkgopenapi.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Source().Kind() != pkgopenapi.SourceKindFile {
		t.Fatalf("unexpected kind %s", doc.Source().Kind())
	}
}

func TestLoader_Errors(t *testing.T) {
	l := loader.New(pkgopenapi.NewLoaderOptions())
	ctx := context.Background()

	if _, err := l.Load(ctx, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("spec.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile(filepath.Join(t.TempDir(), "missing.json"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

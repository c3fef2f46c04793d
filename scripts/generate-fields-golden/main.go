package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	signup "github.com/goliatone/go-signup"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/orchestrator"
)

func main() {
	var (
		schemaPath  = flag.String("schema", "", "OpenAPI document path (embedded document if empty)")
		uiSchemaDir = flag.String("uischema", "", "UI schema directory (embedded overrides if empty)")
		operationID = flag.String("operation", pkgopenapi.SignupOperationID, "operation ID to snapshot")
		outputPath  = flag.String("output", "pkg/orchestrator/testdata/signup_fields.golden.json", "output path for the serialized fields")
	)
	flag.Parse()

	var options []orchestrator.Option
	if *uiSchemaDir != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(*uiSchemaDir)))
	}
	orch := signup.NewOrchestrator(options...)

	req := orchestrator.Request{OperationID: *operationID}
	if *schemaPath != "" {
		req.Source = pkgopenapi.SourceFromFile(*schemaPath)
	}

	fields, err := orch.Fields(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "derive fields: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal fields: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d fields to %s\n", len(fields), *outputPath)
}

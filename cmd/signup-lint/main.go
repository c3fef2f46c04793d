package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	signup "github.com/goliatone/go-signup"
	internalmodel "github.com/goliatone/go-signup/internal/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
)

const extensionNamespace = "x-formgen"

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for unsupported signup field extensions.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	ctx := context.Background()
	parser := signup.NewParser()

	docs, err := documents(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var violations []violation
	for _, doc := range docs {
		linted, err := lintDocument(ctx, parser, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", doc.Location(), err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// documents loads the named files, or the embedded signup document when no
// path is given.
func documents(paths []string) ([]pkgopenapi.Document, error) {
	if len(paths) == 0 {
		return []pkgopenapi.Document{pkgopenapi.SignupDocument()}, nil
	}
	docs := make([]pkgopenapi.Document, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
		if err != nil {
			return nil, fmt.Errorf("construct document %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func lintDocument(ctx context.Context, parser pkgopenapi.Parser, doc pkgopenapi.Document) ([]violation, error) {
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []violation
	for _, id := range ids {
		base := []string{"operation", id, "requestBody"}
		result = append(result, lintSchema(doc.Location(), base, operations[id].RequestBody)...)
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	var result []violation
	if len(schema.Extensions) > 0 {
		result = append(result, lintExtensions(file, path, schema.Extensions)...)
	}
	for _, key := range schema.PropertyNames() {
		next := appendPath(path, "properties."+key)
		result = append(result, lintSchema(file, next, schema.Properties[key])...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	var result []violation
	sortedKeys := make([]string, 0, len(extensions))
	for key := range extensions {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		value := extensions[key]
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation{
					file:     file,
					location: formatLocation(path),
					message:  fmt.Sprintf("%s must be an object, found %T", extensionNamespace, value),
				})
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				result = append(result, validateHint(file, appendPath(path, nestedKey), nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			trimmed := strings.TrimPrefix(key, extensionNamespace+"-")
			result = append(result, validateHint(file, path, trimmed, value)...)
		}
	}
	return result
}

func validateHint(file string, path []string, key string, value any) []violation {
	if key == "" {
		return []violation{{file: file, location: formatLocation(path), message: "extension key is empty"}}
	}
	if !internalmodel.IsAllowedExtensionKey(key) {
		return []violation{{
			file:     file,
			location: formatLocation(path),
			message:  fmt.Sprintf("unsupported field extension key %q (supported: %s)", key, strings.Join(internalmodel.AllowedExtensionKeys(), ", ")),
		}}
	}
	if !internalmodel.ValidExtensionValue(value) {
		return []violation{{
			file:     file,
			location: formatLocation(path),
			message:  fmt.Sprintf("value for %q must be a string, number, or boolean (got %T)", key, value),
		}}
	}
	return nil
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}

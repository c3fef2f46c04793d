package model

import (
	"strconv"
	"strings"

	pkgmodel "github.com/goliatone/go-signup/pkg/model"
)

const extensionNamespace = "x-formgen"

type fieldExtension struct {
	Label        string
	Placeholder  string
	Hint         string
	Input        pkgmodel.InputKind
	RevealToggle bool
	Order        int
}

// fieldExtensions reads the x-formgen map and flat x-formgen-* keys. Flat
// keys win when both are present.
func fieldExtensions(ext map[string]any) fieldExtension {
	values := map[string]any{}
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			values[normalizeKey(key)] = value
		}
	}
	for key, value := range ext {
		if suffix, ok := strings.CutPrefix(key, extensionNamespace+"-"); ok {
			values[normalizeKey(suffix)] = value
		}
	}

	var out fieldExtension
	out.Label = stringValue(values["label"])
	out.Placeholder = stringValue(values["placeholder"])
	out.Hint = stringValue(values["hint"])
	if out.Hint == "" {
		out.Hint = stringValue(values["helptext"])
	}
	if input := stringValue(values["input"]); input != "" {
		out.Input = pkgmodel.InputKind(strings.ToLower(input))
	}
	out.RevealToggle = boolValue(values["revealtoggle"])
	out.Order = intValue(values["order"])
	return out
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("-", "", "_", "").Replace(key)
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case nil:
		return ""
	default:
		return ""
	}
}

func boolValue(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && b
	default:
		return false
	}
}

func intValue(value any) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

var allowedExtensionKeys = []string{"helpText", "hint", "input", "label", "order", "placeholder", "revealToggle"}

// AllowedExtensionKeys lists the x-formgen keys the builder reads.
func AllowedExtensionKeys() []string {
	return append([]string(nil), allowedExtensionKeys...)
}

// IsAllowedExtensionKey reports whether key, compared case-insensitively and
// ignoring dashes and underscores, is read by the builder.
func IsAllowedExtensionKey(key string) bool {
	normalized := normalizeKey(key)
	for _, allowed := range allowedExtensionKeys {
		if normalizeKey(allowed) == normalized {
			return true
		}
	}
	return false
}

// ValidExtensionValue reports whether value has a scalar type the builder
// can read.
func ValidExtensionValue(value any) bool {
	switch value.(type) {
	case string, bool, int, int64, float64:
		return true
	default:
		return false
	}
}

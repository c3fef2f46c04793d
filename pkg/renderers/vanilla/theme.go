package vanilla

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Default token values for the signup look: grey borders, red error
// treatment, rounded inputs.
const (
	DefaultThemeName = "signup"
	TokenBorder      = "border"
	TokenError       = "error"
	TokenRadius      = "radius"
	TokenAccent      = "accent"
	TokenText        = "text"
	TokenMuted       = "muted"
)

// DefaultManifest describes the built-in theme and its dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBorder: "#C2C3C4",
			TokenError:  "#E53935",
			TokenRadius: "10px",
			TokenAccent: "#1A73E8",
			TokenText:   "#1F2328",
			TokenMuted:  "#6B7280",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					TokenBorder: "#4B5563",
					TokenText:   "#F3F4F6",
					TokenMuted:  "#9CA3AF",
				},
			},
		},
	}
}

// ThemeConfig resolves a selection into renderer configuration. Variant
// tokens override manifest tokens and every token is exposed as a
// --signup-<token> CSS variable.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--signup-"+strings.TrimSpace(key)] = value
	}

	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}

// DefaultThemeConfig resolves the built-in manifest with the given variant.
func DefaultThemeConfig(variant string) *theme.RendererConfig {
	return ThemeConfig(&theme.Selection{
		Theme:    DefaultThemeName,
		Variant:  variant,
		Manifest: DefaultManifest(),
	})
}

// ManifestSelector resolves theme selections from an in-memory set of
// manifests. An empty name selects DefaultThemeName.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. With no manifests it serves
// DefaultManifest.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select returns the named manifest. Unknown variants are rejected; an empty
// variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultThemeName
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("vanilla: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

type themeContext struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"cssVarsStyle"`
	Stylesheet   string `json:"stylesheet"`
	Script       string `json:"script"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL(StylesheetName)
		ctx.Script = cfg.AssetURL(RuntimeScriptName)
	}
	return ctx
}

package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/render"
	rendertemplate "github.com/goliatone/go-signup/pkg/render/template"
	"github.com/goliatone/go-signup/pkg/render/template/pongo"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	assetsPrefix     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme sets the resolved theme configuration.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		if themeCfg != nil {
			cfg.theme = themeCfg
		}
	}
}

// WithThemeSelector resolves name/variant through a go-theme selector when
// the renderer is constructed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithAssetsPrefix links the stylesheet and runtime script from prefix
// instead of inlining the stylesheet. Ignored when the theme already
// resolves asset URLs.
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Renderer renders the signup page as HTML.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	theme      *theme.RendererConfig
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	themeCfg := cfg.theme
	if cfg.selector != nil {
		selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
		}
		themeCfg = ThemeConfig(selection)
	}
	if themeCfg == nil {
		themeCfg = DefaultThemeConfig("")
	}
	resolved := *themeCfg
	themeCfg = &resolved
	if themeCfg.AssetURL == nil && cfg.assetsPrefix != "" {
		prefix := cfg.assetsPrefix
		themeCfg.AssetURL = func(key string) string {
			if key == "" {
				return ""
			}
			return prefix + "/" + key
		}
	}

	r := &Renderer{templates: renderer, theme: themeCfg}
	if themeCfg.AssetURL == nil {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type rowView struct {
	render.Row
	ID       string `json:"id"`
	HintHTML string `json:"hintHTML,omitempty"`
}

// Render writes the full HTML document for view.
func (r *Renderer) Render(_ context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	page := render.BuildPage(view, options)
	rows := make([]rowView, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, rowView{
			Row:      row,
			ID:       controlID(row.Name),
			HintHTML: sanitizeHint(row.Hint),
		})
	}

	result, err := r.templates.RenderTemplate(PageTemplate, map[string]any{
		"page":         page,
		"rows":         rows,
		"theme":        buildThemeContext(r.theme),
		"inlineStyles": r.stylesheet,
		"classes": map[string]string{
			"page":       string(ClassPage),
			"form":       string(ClassForm),
			"row":        string(ClassRow),
			"rowInvalid": string(ClassRowInvalid),
			"errors":     string(ClassErrors),
			"submit":     string(ClassSubmit),
			"links":      string(ClassLinks),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

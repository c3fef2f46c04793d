package render

import (
	"strings"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/input"
	"github.com/goliatone/go-signup/pkg/model"
)

const (
	DefaultTitle       = "Let's get you started"
	DefaultSubmitLabel = "Create Account"
	DefaultAction      = "/signup"
	DefaultMethod      = "POST"
)

// Row is one Field Row.
type Row struct {
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	Kind         model.InputKind `json:"kind"`
	Placeholder  string          `json:"placeholder,omitempty"`
	Hint         string          `json:"hint,omitempty"`
	Error        string          `json:"error,omitempty"`
	Required     bool            `json:"required"`
	RevealToggle bool            `json:"revealToggle,omitempty"`
	Value        string          `json:"value"`
	Checked      bool            `json:"checked,omitempty"`
	Invalid      bool            `json:"invalid"`
	ShowHint     bool            `json:"showHint"`

	Input input.Config `json:"-"`
}

// NewRow copies a field state into a row. Password values are never echoed
// back into markup.
func NewRow(state form.FieldState) Row {
	cfg := input.ForField(state.Field)
	row := Row{
		Name:        state.Field.Name,
		Label:       state.Field.DisplayLabel(),
		Kind:        cfg.Kind(),
		Placeholder: input.Placeholder(cfg),
		Hint:        strings.TrimSpace(state.Field.Hint),
		Error:       state.Error,
		Required:    state.Field.Required,
		Input:       cfg,
	}
	switch typed := cfg.(type) {
	case input.Password:
		row.RevealToggle = typed.RevealToggle
	case input.Checkbox:
		row.Checked, _ = state.Value.(bool)
	default:
		row.Value = input.Format(state.Value)
	}
	row.Invalid = row.Error != ""
	row.ShowHint = row.Hint != "" && !row.Invalid
	return row
}

// Page is the full signup screen.
type Page struct {
	Title       string       `json:"title"`
	Action      string       `json:"action"`
	Method      string       `json:"method"`
	Rows        []Row        `json:"rows"`
	Links       []model.Link `json:"links"`
	FormError   string       `json:"formError,omitempty"`
	Notice      string       `json:"notice,omitempty"`
	SubmitLabel string       `json:"submitLabel"`
	CanSubmit   bool         `json:"canSubmit"`
	Submitting  bool         `json:"submitting"`
}

// Row returns the row for name.
func (p Page) Row(name string) (Row, bool) {
	for _, row := range p.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return Row{}, false
}

// BuildPage projects a controller view into a page.
func BuildPage(view form.View, options RenderOptions) Page {
	page := Page{
		Title:       DefaultTitle,
		Action:      strings.TrimSpace(options.Action),
		Method:      strings.ToUpper(strings.TrimSpace(options.Method)),
		Rows:        make([]Row, 0, len(view.Fields)),
		Links:       resolveLinks(options.Links),
		FormError:   view.FormError,
		Notice:      options.Notice,
		SubmitLabel: DefaultSubmitLabel,
		CanSubmit:   view.CanSubmit,
		Submitting:  view.Submitting,
	}
	if title := strings.TrimSpace(options.Title); title != "" {
		page.Title = title
	}
	if label := strings.TrimSpace(options.SubmitLabel); label != "" {
		page.SubmitLabel = label
	}
	if page.Action == "" {
		page.Action = DefaultAction
	}
	if page.Method == "" {
		page.Method = DefaultMethod
	}
	for _, state := range view.Fields {
		page.Rows = append(page.Rows, NewRow(state))
	}
	return page
}

func resolveLinks(overrides []LinkOption) []model.Link {
	links := model.Links()
	for _, override := range overrides {
		href := strings.TrimSpace(override.Href)
		if href == "" {
			continue
		}
		for i := range links {
			if links[i].Name == override.Name {
				links[i].Href = href
			}
		}
	}
	return links
}

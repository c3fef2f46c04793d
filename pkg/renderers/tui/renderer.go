package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/input"
	"github.com/goliatone/go-signup/pkg/render"
)

// Renderer prints the signup page as plain text. It never prompts.
type Renderer struct {
	markRequired string
	markError    string
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns a plain text page renderer.
func NewRenderer() *Renderer {
	return &Renderer{markRequired: " *", markError: "  ! "}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "text"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes one block per row followed by the submit state and links.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := render.BuildPage(view, opts)
	var b strings.Builder
	b.WriteString(page.Title)
	b.WriteString("\n")
	if page.Notice != "" {
		b.WriteString(page.Notice)
		b.WriteString("\n")
	}
	if page.FormError != "" {
		b.WriteString(r.markError)
		b.WriteString(page.FormError)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, row := range page.Rows {
		b.WriteString(row.Label)
		if row.Required {
			b.WriteString(r.markRequired)
		}
		b.WriteString("\n  ")
		b.WriteString(rowValue(row))
		b.WriteString("\n")
		if row.Invalid {
			b.WriteString(r.markError)
			b.WriteString(row.Error)
			b.WriteString("\n")
		} else if row.ShowHint {
			b.WriteString("  ")
			b.WriteString(row.Hint)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n[ ")
	b.WriteString(page.SubmitLabel)
	b.WriteString(" ]")
	switch {
	case page.Submitting:
		b.WriteString(" (submitting)")
	case !page.CanSubmit:
		b.WriteString(" (disabled)")
	}
	b.WriteString("\n\n")

	labels := make([]string, 0, len(page.Links))
	for _, link := range page.Links {
		labels = append(labels, link.Label)
	}
	b.WriteString(strings.Join(labels, " | "))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func rowValue(row render.Row) string {
	switch row.Input.(type) {
	case input.Checkbox:
		if row.Checked {
			return "[x]"
		}
		return "[ ]"
	case input.Password:
		return "••••••••"
	}
	if row.Value == "" {
		if row.Placeholder != "" {
			return "(" + row.Placeholder + ")"
		}
		return "-"
	}
	return row.Value
}

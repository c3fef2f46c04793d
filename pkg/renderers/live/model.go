// Package live renders the signup form as a keystroke-driven terminal UI.
// Every edit is reported to the controller as a change event and every
// focus change as a blur event.
package live

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/input"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Option configures the model.
type Option func(*Model)

// WithNavigator wires the link shortcuts.
func WithNavigator(nav form.Navigator) Option {
	return func(m *Model) {
		m.navigator = nav
	}
}

// WithTheme derives colors from go-theme tokens.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(m *Model) {
		m.styles = newStyles(cfg)
	}
}

var linkKeys = map[string]string{
	"alt+l": model.LinkLogin.Name,
	"alt+t": model.LinkTerms.Name,
	"alt+p": model.LinkPrivacy.Name,
}

type submitResultMsg struct {
	receipt form.Receipt
	err     error
}

// Result summarizes how the program ended.
type Result struct {
	Receipt   *form.Receipt
	Navigated *model.Link
	Aborted   bool
}

// Model is the bubbletea model for the signup screen.
type Model struct {
	ctx       context.Context
	ctrl      *form.Controller
	fields    []model.Field
	editors   []*input.Editor
	buffers   []string
	focus     int
	pending   bool
	notice    string
	failure   string
	navigator form.Navigator
	styles    styles
	result    Result
}

// New builds a model over ctrl. Focus starts on the first field.
func New(ctx context.Context, ctrl *form.Controller, options ...Option) Model {
	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		fields: ctrl.Fields(),
		styles: newStyles(nil),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&m)
	}
	m.bindEditors()
	return m
}

func (m *Model) bindEditors() {
	values := m.ctrl.Values()
	m.editors = make([]*input.Editor, len(m.fields))
	m.buffers = make([]string, len(m.fields))
	for i, field := range m.fields {
		m.editors[i] = input.NewEditor(field, values[field.Name], m.ctrl.OnFieldChange)
		m.buffers[i] = input.Format(values[field.Name])
	}
}

// Result reports the outcome once the program has quit.
func (m Model) Result() Result { return m.result }

// Focus returns the focused index; len(fields) is the submit button.
func (m Model) Focus() int { return m.focus }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if name, ok := linkKeys[key]; ok {
		return m.navigate(name)
	}

	switch key {
	case "ctrl+c", "esc":
		m.ctrl.Unmount()
		m.result.Aborted = true
		return m, tea.Quit
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		if m.onSubmit() {
			return m.submit()
		}
		m.moveFocus(1)
		return m, nil
	case "ctrl+r":
		if editor := m.focusedEditor(); editor != nil {
			editor.Toggle()
		}
		return m, nil
	}

	editor := m.focusedEditor()
	if editor == nil {
		return m, nil
	}
	if _, ok := editor.Config().(input.Checkbox); ok {
		if key == " " || key == "space" {
			checked, _ := editor.Value().(bool)
			m.report(editor.Set(!checked))
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if msg.Alt {
			return m, nil
		}
		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		m.buffers[m.focus] += string(runes)
		m.report(editor.Edit(m.buffers[m.focus]))
	case tea.KeyBackspace:
		buf := []rune(m.buffers[m.focus])
		if len(buf) == 0 {
			return m, nil
		}
		m.buffers[m.focus] = string(buf[:len(buf)-1])
		m.report(editor.Edit(m.buffers[m.focus]))
	}
	return m, nil
}

func (m *Model) moveFocus(delta int) {
	if m.focus < len(m.fields) {
		m.report(m.ctrl.OnFieldBlur(m.fields[m.focus].Name))
	}
	count := len(m.fields) + 1
	m.focus = ((m.focus+delta)%count + count) % count
}

func (m Model) onSubmit() bool {
	return m.focus == len(m.fields)
}

func (m Model) focusedEditor() *input.Editor {
	if m.focus < 0 || m.focus >= len(m.editors) {
		return nil
	}
	return m.editors[m.focus]
}

func (m *Model) report(err error) {
	if err != nil {
		m.failure = err.Error()
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending || !m.ctrl.CanSubmit() {
		return m, nil
	}
	m.pending = true
	m.notice, m.failure = "", ""
	ctx, ctrl := m.ctx, m.ctrl
	return m, func() tea.Msg {
		receipt, err := ctrl.Submit(ctx)
		return submitResultMsg{receipt: receipt, err: err}
	}
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	var verrs validation.Errors
	var rejection *form.SubmissionError
	switch {
	case msg.err == nil:
		receipt := msg.receipt
		m.result.Receipt = &receipt
		m.notice = fmt.Sprintf("Account created for %s", receipt.Username)
		m.bindEditors()
		m.focus = 0
	case errors.Is(msg.err, form.ErrStaleSubmission), errors.Is(msg.err, form.ErrUnmounted):
	case errors.As(msg.err, &verrs), errors.As(msg.err, &rejection):
	default:
		m.failure = msg.err.Error()
	}
	return m, nil
}

func (m Model) navigate(name string) (tea.Model, tea.Cmd) {
	if m.navigator == nil {
		return m, nil
	}
	trigger, ok := form.Triggers(m.ctx, m.navigator)[name]
	if !ok {
		return m, nil
	}
	if err := trigger(); err != nil {
		m.failure = err.Error()
		return m, nil
	}
	for _, link := range model.Links() {
		if link.Name == name {
			link := link
			m.result.Navigated = &link
		}
	}
	m.ctrl.Unmount()
	return m, tea.Quit
}

func (m Model) View() string {
	view := m.ctrl.View()
	var b strings.Builder

	b.WriteString(m.styles.title.Render(render.DefaultTitle))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice))
		b.WriteString("\n")
	}
	if view.FormError != "" {
		b.WriteString(m.styles.errorText.Render(view.FormError))
		b.WriteString("\n")
	}
	if m.failure != "" {
		b.WriteString(m.styles.errorText.Render(m.failure))
		b.WriteString("\n")
	}

	for i, state := range view.Fields {
		b.WriteString(m.renderRow(i, render.NewRow(state)))
		b.WriteString("\n")
	}

	button := m.styles.button
	switch {
	case !view.CanSubmit || m.pending:
		button = m.styles.buttonOff
	case m.onSubmit():
		button = m.styles.buttonFocused
	}
	label := render.DefaultSubmitLabel
	if m.pending || view.Submitting {
		label = "Submitting…"
	}
	b.WriteString(button.Render(label))
	b.WriteString("\n\n")

	links := make([]string, 0, len(model.Links()))
	for _, link := range model.Links() {
		links = append(links, m.styles.link.Render(link.Label))
	}
	b.WriteString(strings.Join(links, "  "))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("tab/shift+tab move • enter submit • ctrl+r show password • alt+l/t/p links • esc quit"))
	return b.String()
}

func (m Model) renderRow(i int, row render.Row) string {
	var b strings.Builder
	editor := m.editors[i]

	label := row.Label
	if row.Required {
		label += " *"
	}
	labelStyle := m.styles.label
	if row.Invalid {
		labelStyle = m.styles.labelInvalid
	}

	if _, ok := row.Input.(input.Checkbox); ok {
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		b.WriteString(cursor + box + " " + labelStyle.Render(label))
	} else {
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")

		content := m.buffers[i]
		if _, ok := row.Input.(input.Password); ok {
			content = editor.Display()
		}
		if content == "" {
			content = m.styles.placeholder.Render(row.Placeholder)
		}
		if editor.CanReveal() {
			toggle := "show"
			if editor.Revealed() {
				toggle = "hide"
			}
			content += m.styles.hint.Render("  [" + toggle + "]")
		}

		box := m.styles.box
		switch {
		case row.Invalid:
			box = m.styles.boxInvalid
		case i == m.focus:
			box = m.styles.boxFocused
		}
		b.WriteString(box.Render(content))
	}
	b.WriteString("\n")

	switch {
	case row.Invalid:
		b.WriteString(m.styles.errorText.Render(row.Error))
		b.WriteString("\n")
	case row.ShowHint:
		b.WriteString(m.styles.hint.Render(row.Hint))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the program on the current terminal and blocks until it quits.
func Run(ctx context.Context, ctrl *form.Controller, options ...Option) (Result, error) {
	program := tea.NewProgram(New(ctx, ctrl, options...), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("live: run program: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return Result{}, nil
}

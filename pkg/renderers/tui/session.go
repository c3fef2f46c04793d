package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/input"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Session walks the signup form one prompt at a time. Every answer is fed
// to the controller as a change followed by a blur, so the controller stays
// the only owner of values and errors.
type Session struct {
	driver    PromptDriver
	theme     Theme
	navigator form.Navigator
	logger    *slog.Logger
	summary   *Renderer
}

// NewSession constructs a session with the survey driver unless overridden.
func NewSession(options ...Option) *Session {
	s := &Session{
		theme:   DefaultTheme,
		logger:  slog.New(slog.DiscardHandler),
		summary: NewRenderer(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s
}

// Run prompts every field, re-prompts invalid ones, and submits once the
// controller allows it. It returns the collaborator receipt on success.
func (s *Session) Run(ctx context.Context, ctrl *form.Controller) (form.Receipt, error) {
	if ctrl == nil {
		return form.Receipt{}, errors.New("tui: controller is required")
	}
	if err := s.info(ctx, render.DefaultTitle); err != nil {
		return form.Receipt{}, err
	}

	for _, field := range ctrl.Fields() {
		if err := s.promptField(ctx, ctrl, field); err != nil {
			return form.Receipt{}, err
		}
	}

	for {
		if err := s.fixInvalid(ctx, ctrl); err != nil {
			return form.Receipt{}, err
		}

		receipt, err := ctrl.Submit(ctx)
		if err == nil {
			if err := s.info(ctx, fmt.Sprintf("Account created for %s (%s)", receipt.Username, receipt.ID)); err != nil {
				return receipt, err
			}
			return receipt, s.offerLinks(ctx)
		}

		var verrs validation.Errors
		var rejection *form.SubmissionError
		switch {
		case errors.As(err, &verrs):
			s.logger.DebugContext(ctx, "submit blocked by validation", slog.Int("errors", len(verrs)))
			continue
		case errors.As(err, &rejection):
			view := ctrl.View()
			if view.FormError != "" {
				if err := s.fail(ctx, view.FormError); err != nil {
					return form.Receipt{}, err
				}
			}
			if hasFieldErrors(view) {
				continue
			}
		default:
			if err := s.fail(ctx, err.Error()); err != nil {
				return form.Receipt{}, err
			}
		}

		retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return form.Receipt{}, err
		}
		if !retry {
			return form.Receipt{}, ErrGaveUp
		}
	}
}

// Summary renders the controller's current view as plain text.
func (s *Session) Summary(ctx context.Context, ctrl *form.Controller) (string, error) {
	out, err := s.summary.Render(ctx, ctrl.View(), render.RenderOptions{})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Session) fixInvalid(ctx context.Context, ctrl *form.Controller) error {
	for {
		view := ctrl.View()
		if !hasFieldErrors(view) {
			return nil
		}
		for _, state := range view.Fields {
			if state.Error == "" {
				continue
			}
			if err := s.promptField(ctx, ctrl, state.Field); err != nil {
				return err
			}
		}
	}
}

func (s *Session) promptField(ctx context.Context, ctrl *form.Controller, field model.Field) error {
	editor := input.NewEditor(field, ctrl.Values()[field.Name], ctrl.OnFieldChange)
	for {
		if state, ok := ctrl.View().Field(field.Name); ok && state.Error != "" {
			if err := s.fail(ctx, state.Error); err != nil {
				return err
			}
		}

		answered, err := s.ask(ctx, editor, field)
		if err != nil {
			return err
		}
		if !answered {
			continue
		}
		if err := ctrl.OnFieldBlur(field.Name); err != nil {
			return err
		}
		if state, _ := ctrl.View().Field(field.Name); state.Error == "" {
			return nil
		}
	}
}

// ask runs one prompt. It reports false when the answer only toggled the
// reveal flag.
func (s *Session) ask(ctx context.Context, editor *input.Editor, field model.Field) (bool, error) {
	label := field.DisplayLabel()
	if field.Required {
		label += " *"
	}
	help := field.Hint
	if help == "" {
		help = field.Placeholder
	}

	switch editor.Config().(type) {
	case input.Checkbox:
		current, _ := editor.Value().(bool)
		agreed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current, Help: help})
		if err != nil {
			return false, err
		}
		return true, editor.Set(agreed)

	case input.Password:
		if editor.CanReveal() && help != "" {
			help += " (type " + RevealKeyword + " to toggle visibility)"
		}
		cfg := InputConfig{Message: label, Help: help}
		var raw string
		var err error
		if editor.Revealed() {
			raw, err = s.driver.Input(ctx, cfg)
		} else {
			raw, err = s.driver.Password(ctx, cfg)
		}
		if err != nil {
			return false, err
		}
		if raw == RevealKeyword && editor.CanReveal() {
			state := "hidden"
			if editor.Toggle() {
				state = "visible"
			}
			return false, s.info(ctx, label+" is now "+state)
		}
		return true, editor.Edit(raw)

	case input.Date:
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: label + " (" + model.DateLayout + ")",
			Default: input.Format(editor.Value()),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		return true, editor.Edit(raw)

	default:
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: input.Format(editor.Value()),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		return true, editor.Edit(raw)
	}
}

func (s *Session) offerLinks(ctx context.Context) error {
	if s.navigator == nil {
		return nil
	}
	links := model.Links()
	options := make([]string, 0, len(links)+1)
	options = append(options, "Done")
	for _, link := range links {
		options = append(options, link.Label)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Where to next?", Options: options})
	if err != nil {
		return err
	}
	if idx <= 0 || idx > len(links) {
		return nil
	}
	return form.Triggers(ctx, s.navigator)[links[idx-1].Name]()
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) fail(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}

func hasFieldErrors(view form.View) bool {
	for _, state := range view.Fields {
		if state.Error != "" {
			return true
		}
	}
	return false
}

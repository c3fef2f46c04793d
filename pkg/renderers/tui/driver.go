package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single-line prompt. Password prompts ignore
// Default so a typed secret is never echoed back as a suggestion.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig configures a yes/no prompt, used for the agreement checkbox
// and retry questions.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures the navigation menu.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// PromptDriver is the terminal seam used by Session.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	in   terminal.FileReader
	out  terminal.FileWriter
	errw io.Writer
}

// NewSurveyDriver returns a survey backed driver bound to the process stdio.
func NewSurveyDriver() PromptDriver {
	return NewSurveyDriverWithStdio(os.Stdin, os.Stdout, os.Stderr)
}

// NewSurveyDriverWithStdio binds the driver to explicit terminal files.
func NewSurveyDriverWithStdio(in terminal.FileReader, out terminal.FileWriter, errw io.Writer) PromptDriver {
	return &surveyDriver{in: in, out: out, errw: errw}
}

func ask[T any](ctx context.Context, d *surveyDriver, prompt survey.Prompt) (T, error) {
	var out T
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if err := survey.AskOne(prompt, &out, survey.WithStdio(d.in, d.out, d.errw)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return out, ErrAborted
		}
		return out, err
	}
	return out, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, d, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default})
}

func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, d, &survey.Password{Message: cfg.Message, Help: cfg.Help})
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return ask[bool](ctx, d, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default})
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	choice, err := ask[string](ctx, d, prompt)
	if err != nil {
		return 0, err
	}
	return slices.Index(cfg.Options, choice), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

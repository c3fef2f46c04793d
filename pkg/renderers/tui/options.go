package tui

import (
	"log/slog"

	"github.com/goliatone/go-signup/pkg/form"
)

// Theme captures optional message prefixes the session applies when
// printing. Kept free of ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "✗ "}

// RevealKeyword typed at a password prompt flips the reveal toggle instead
// of being stored.
const RevealKeyword = ":show"

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithNavigator enables the link menu shown after a successful signup.
func WithNavigator(nav form.Navigator) Option {
	return func(s *Session) {
		s.navigator = nav
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

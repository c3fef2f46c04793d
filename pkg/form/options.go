package form

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Option configures the controller.
type Option func(*Controller)

// WithFields overrides the field schema.
func WithFields(fields []model.Field) Option {
	return func(c *Controller) {
		if len(fields) > 0 {
			c.fields = model.SortFields(fields)
		}
	}
}

// WithRules overrides the validation rule set.
func WithRules(rules *validation.RuleSet) Option {
	return func(c *Controller) {
		if rules != nil {
			c.rules = rules
		}
	}
}

// WithSubmitter registers the account-creation collaborator.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		if submitter != nil {
			c.submitter = submitter
		}
	}
}

// WithLogger routes controller events to logger. The controller is silent by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock consulted by the default rule set. Ignored when
// WithRules supplies a custom set.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

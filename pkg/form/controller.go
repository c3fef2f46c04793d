package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Controller owns the signup form state machine.
type Controller struct {
	mu sync.Mutex

	fields    []model.Field
	index     map[string]model.Field
	rules     *validation.RuleSet
	submitter Submitter
	logger    *slog.Logger
	clock     func() time.Time

	values  model.Values
	touched model.Touched
	errors  model.Errors

	inFlight   bool
	generation uint64
	unmounted  bool
}

// FieldState is the per-field slice of a View.
type FieldState struct {
	Field   model.Field
	Value   any
	Error   string
	Touched bool
}

// View is a read-only projection used by renderers. Error messages are only
// present for touched fields; Valid reflects the full rule set.
type View struct {
	Fields     []FieldState
	FormError  string
	Valid      bool
	Submitting bool
	CanSubmit  bool
}

// Field returns the state for name.
func (v View) Field(name string) (FieldState, bool) {
	for _, state := range v.Fields {
		if state.Field.Name == name {
			return state, true
		}
	}
	return FieldState{}, false
}

// New constructs a controller in its mount state. Without options it uses
// the built-in signup fields and rules and the placeholder Acknowledger.
func New(options ...Option) (*Controller, error) {
	c := &Controller{
		fields: model.SortFields(model.SignupFields()),
		clock:  time.Now,
		logger: slog.New(discardHandler{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.rules == nil {
		c.rules = validation.SignupRules(validation.WithClock(c.clock))
	}
	if c.submitter == nil {
		c.submitter = NewAcknowledger(nil)
	}

	c.index = make(map[string]model.Field, len(c.fields))
	for _, field := range c.fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, errors.New("form: field name is required")
		}
		if _, exists := c.index[name]; exists {
			return nil, fmt.Errorf("form: duplicate field %q", name)
		}
		c.index[name] = field
	}
	for _, name := range c.rules.Fields() {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("form: rules reference field %q missing from schema", name)
		}
	}

	c.mountLocked()
	return c, nil
}

// MustNew panics when construction fails.
func MustNew(options ...Option) *Controller {
	c, err := New(options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Fields returns the field schema in display order.
func (c *Controller) Fields() []model.Field {
	return append([]model.Field(nil), c.fields...)
}

// OnFieldChange stores raw, marks the field touched, and re-validates it
// together with every field whose rules depend on it.
func (c *Controller) OnFieldChange(name string, raw any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFieldLocked(name); err != nil {
		return err
	}
	c.values[name] = raw
	c.touched.Mark(name)
	delete(c.errors, model.FormErrorKey)
	affected := c.rules.Affected(name)
	c.revalidateLocked(affected...)

	c.logger.Debug("field changed", slog.String("field", name), slog.Any("revalidated", affected))
	return nil
}

// OnFieldBlur marks the field touched and validates it so its error shows
// once the user leaves the field.
func (c *Controller) OnFieldBlur(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFieldLocked(name); err != nil {
		return err
	}
	c.touched.Mark(name)
	c.revalidateLocked(name)
	return nil
}

// Load stores values without touching any field and re-validates the whole
// form. It restores state the user did not produce through edits, such as
// browser autofill. Unknown names are rejected before anything is stored.
func (c *Controller) Load(values model.Values) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name := range values {
		if err := c.checkFieldLocked(name); err != nil {
			return err
		}
	}
	for name, value := range values {
		c.values[name] = value
	}
	c.revalidateLocked(model.FieldNames(c.fields)...)
	return nil
}

// Submit touches every field and re-validates the full snapshot. Invalid
// forms return validation.Errors and never reach the collaborator. Valid
// forms are handed off; success resets the form, a *SubmissionError is
// mapped back into ValidationErrors, and other failures leave state as is.
func (c *Controller) Submit(ctx context.Context) (Receipt, error) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return Receipt{}, ErrUnmounted
	}
	if c.inFlight {
		c.mu.Unlock()
		return Receipt{}, ErrSubmitInFlight
	}

	c.touched.Mark(model.FieldNames(c.fields)...)
	errs := c.rules.ValidateAll(c.values)
	c.errors = errs.Map()
	if len(errs) > 0 {
		c.mu.Unlock()
		c.logger.Debug("submit blocked", slog.Any("fields", errs.Map().Fields()))
		return Receipt{}, errs
	}

	snapshot := model.NewSnapshot(c.values)
	generation := c.generation
	submitter := c.submitter
	c.inFlight = true
	c.mu.Unlock()

	receipt, err := submitter.CreateAccount(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != generation {
		c.logger.Debug("discarding stale submission response")
		return Receipt{}, ErrStaleSubmission
	}
	c.inFlight = false

	if err != nil {
		var rejection *SubmissionError
		if errors.As(err, &rejection) {
			c.applySubmissionErrorLocked(rejection)
			c.logger.Info("submission rejected", slog.Any("fields", c.errors.Fields()))
			return Receipt{}, err
		}
		c.logger.Warn("submission failed", slog.String("error", err.Error()))
		return Receipt{}, fmt.Errorf("form: create account: %w", err)
	}

	c.mountLocked()
	c.logger.Info("submission accepted", slog.String("receipt", receipt.ID.String()))
	return receipt, nil
}

// ApplySubmissionErrors maps a collaborator payload into ValidationErrors.
func (c *Controller) ApplySubmissionErrors(payload map[string][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applySubmissionErrorLocked(&SubmissionError{Fields: payload})
}

// Reset returns the form to its mount state and discards any pending
// submission response.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.inFlight = false
	c.mountLocked()
}

// Unmount discards all state. Later handler calls return ErrUnmounted.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.inFlight = false
	c.unmounted = true
	c.values = model.Values{}
	c.touched = model.Touched{}
	c.errors = model.Errors{}
}

// IsValid reports whether ValidationErrors is empty across all fields,
// regardless of touch state.
func (c *Controller) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

// CanSubmit gates the submit action: valid and no submission in flight.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked() && !c.inFlight && !c.unmounted
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Values returns a copy of FormValues.
func (c *Controller) Values() model.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// Errors returns a copy of ValidationErrors, touched or not.
func (c *Controller) Errors() model.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// Touched returns a copy of the TouchedSet.
func (c *Controller) Touched() model.Touched {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched.Clone()
}

// VisibleErrors returns the errors of touched fields plus form-level errors.
func (c *Controller) VisibleErrors() model.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(model.Errors)
	for name, msg := range c.errors {
		if msg == "" {
			continue
		}
		if name == model.FormErrorKey || c.touched.Has(name) {
			out[name] = msg
		}
	}
	return out
}

// View projects the current state for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Fields:     make([]FieldState, 0, len(c.fields)),
		FormError:  c.errors[model.FormErrorKey],
		Valid:      c.validLocked(),
		Submitting: c.inFlight,
	}
	view.CanSubmit = view.Valid && !c.inFlight && !c.unmounted
	for _, field := range c.fields {
		state := FieldState{
			Field:   field,
			Value:   c.values[field.Name],
			Touched: c.touched.Has(field.Name),
		}
		if state.Touched {
			state.Error = c.errors[field.Name]
		}
		view.Fields = append(view.Fields, state)
	}
	return view
}

func (c *Controller) checkFieldLocked(name string) error {
	if c.unmounted {
		return ErrUnmounted
	}
	if _, ok := c.index[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (c *Controller) mountLocked() {
	c.values = model.Values{}
	c.touched = model.Touched{}
	c.errors = c.rules.ValidateAll(c.values).Map()
}

func (c *Controller) revalidateLocked(names ...string) {
	for _, name := range names {
		if err := c.rules.Validate(name, c.values); err != nil {
			c.errors[name] = err.Message
			continue
		}
		delete(c.errors, name)
	}
}

func (c *Controller) validLocked() bool {
	return c.errors.Empty()
}

func (c *Controller) applySubmissionErrorLocked(rejection *SubmissionError) {
	if rejection == nil {
		return
	}
	mapping := MapErrorPayload(model.FieldNames(c.fields), rejection.Fields)
	for name, messages := range mapping.Fields {
		c.errors[name] = messages[0]
		c.touched.Mark(name)
	}
	form := mapping.Form
	if msg := strings.TrimSpace(rejection.Message); msg != "" {
		form = append([]string{msg}, form...)
	}
	if form = normalizeMessages(form); len(form) > 0 {
		c.errors[model.FormErrorKey] = strings.Join(form, "; ")
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

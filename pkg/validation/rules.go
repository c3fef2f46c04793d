package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-signup/pkg/model"
)

// Predicate reports whether the snapshot of values satisfies a rule. It must
// be pure: no mutation, no hidden state beyond an injected clock.
type Predicate func(values model.Values) bool

// Rule is one declarative check for a field. DependsOn names the other fields
// the predicate reads so the controller can re-run the rule when they change.
type Rule struct {
	Field     string
	DependsOn []string
	Check     Predicate
	Message   string
}

// RuleSet keeps rules ordered per field. Evaluation for a field stops at the
// first failing rule.
type RuleSet struct {
	order      []string
	rules      map[string][]Rule
	dependents map[string][]string
}

// NewRuleSet validates and indexes the provided rules.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	set := &RuleSet{
		rules:      make(map[string][]Rule),
		dependents: make(map[string][]string),
	}
	for idx, rule := range rules {
		name := strings.TrimSpace(rule.Field)
		if name == "" {
			return nil, fmt.Errorf("validation: rule %d: field is required", idx)
		}
		if rule.Check == nil {
			return nil, fmt.Errorf("validation: rule %d (%s): predicate is required", idx, name)
		}
		if strings.TrimSpace(rule.Message) == "" {
			return nil, fmt.Errorf("validation: rule %d (%s): message is required", idx, name)
		}
		rule.Field = name
		if _, seen := set.rules[name]; !seen {
			set.order = append(set.order, name)
		}
		set.rules[name] = append(set.rules[name], rule)
		for _, dep := range rule.DependsOn {
			dep = strings.TrimSpace(dep)
			if dep == "" || dep == name {
				continue
			}
			if !contains(set.dependents[dep], name) {
				set.dependents[dep] = append(set.dependents[dep], name)
			}
		}
	}
	if len(set.order) == 0 {
		return nil, errors.New("validation: rule set is empty")
	}
	return set, nil
}

// MustNewRuleSet panics when the rules are malformed. Useful for package-level
// rule declarations.
func MustNewRuleSet(rules ...Rule) *RuleSet {
	set, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return set
}

// Fields lists the fields with at least one rule, in declaration order.
func (s *RuleSet) Fields() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Dependents lists fields whose rules read name.
func (s *RuleSet) Dependents(name string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.dependents[name]...)
}

// Affected returns name followed by every field that depends on it.
func (s *RuleSet) Affected(name string) []string {
	out := []string{name}
	for _, dep := range s.Dependents(name) {
		if !contains(out, dep) {
			out = append(out, dep)
		}
	}
	return out
}

// Validate runs the rules for field and returns the first failure.
func (s *RuleSet) Validate(field string, values model.Values) *FieldValidationError {
	if s == nil {
		return nil
	}
	for _, rule := range s.rules[field] {
		if rule.Check(values) {
			continue
		}
		return &FieldValidationError{Field: field, Message: rule.Message}
	}
	return nil
}

// ValidateAll evaluates every field against the full snapshot.
func (s *RuleSet) ValidateAll(values model.Values) Errors {
	if s == nil {
		return nil
	}
	var out Errors
	for _, field := range s.order {
		if err := s.Validate(field, values); err != nil {
			out = append(out, *err)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// Required fails for absent values, empty strings, and zero dates.
func Required(field string) Predicate {
	return func(values model.Values) bool {
		return !values.IsEmpty(field)
	}
}

// MinLength counts characters, not bytes.
func MinLength(field string, min int) Predicate {
	return func(values model.Values) bool {
		return utf8.RuneCountInString(values.String(field)) >= min
	}
}

// Matches requires at least one match of re in the value.
func Matches(field string, re *regexp.Regexp) Predicate {
	return func(values model.Values) bool {
		return re.MatchString(values.String(field))
	}
}

// ContainsAny requires at least one character from chars.
func ContainsAny(field, chars string) Predicate {
	return func(values model.Values) bool {
		return strings.ContainsAny(values.String(field), chars)
	}
}

// EqualsField compares two fields for exact equality.
func EqualsField(field, other string) Predicate {
	return func(values model.Values) bool {
		return values.String(field) == values.String(other)
	}
}

// IsTrue accepts only a boolean true.
func IsTrue(field string) Predicate {
	return func(values model.Values) bool {
		b, ok := values.Bool(field)
		return ok && b
	}
}

// ValidDate accepts absent values and parsed dates; leftover raw strings mean
// the editor could not parse the input.
func ValidDate(field string) Predicate {
	return func(values model.Values) bool {
		switch raw := values[field].(type) {
		case nil:
			return true
		case time.Time:
			return true
		case string:
			return raw == ""
		default:
			return false
		}
	}
}

// NotAfterToday compares calendar dates against clock() at evaluation time.
func NotAfterToday(field string, clock func() time.Time) Predicate {
	if clock == nil {
		clock = time.Now
	}
	return func(values model.Values) bool {
		date, ok := values.Date(field)
		if !ok {
			return true
		}
		return !calendarDate(date).After(calendarDate(clock()))
	}
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var emailValidator = validator.New()

// Email applies the validator package's address grammar.
func Email(field string) Predicate {
	return func(values model.Values) bool {
		return emailValidator.Var(values.String(field), "email") == nil
	}
}

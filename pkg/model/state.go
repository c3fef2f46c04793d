package model

import (
	"fmt"
	"sort"
	"time"
)

// Values maps field names to their current raw value.
type Values map[string]any

// Clone returns a shallow copy; stored values are immutable scalars.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// String returns the value as a string. Non-string values are formatted,
// absent values yield "".
func (v Values) String(name string) string {
	raw, ok := v[name]
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return typed
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return typed.Format(DateLayout)
	default:
		return fmt.Sprint(typed)
	}
}

// Bool reports the value when it is a real boolean.
func (v Values) Bool(name string) (bool, bool) {
	b, ok := v[name].(bool)
	return b, ok
}

// Date reports the value when it is a non-zero time.
func (v Values) Date(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// IsEmpty reports whether the field holds no meaningful value.
func (v Values) IsEmpty(name string) bool {
	raw, ok := v[name]
	if !ok || raw == nil {
		return true
	}
	switch typed := raw.(type) {
	case string:
		return typed == ""
	case time.Time:
		return typed.IsZero()
	default:
		return false
	}
}

// Errors maps field names to their current failure message.
type Errors map[string]string

// Clone returns a copy without empty entries.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for key, msg := range e {
		if msg == "" {
			continue
		}
		out[key] = msg
	}
	return out
}

// Empty reports whether no field carries a message.
func (e Errors) Empty() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Fields returns the names that carry a message, sorted.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name, msg := range e {
		if msg == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Touched is the set of fields the user has interacted with.
type Touched map[string]struct{}

// Mark adds the names to the set.
func (t Touched) Mark(names ...string) {
	for _, name := range names {
		t[name] = struct{}{}
	}
}

// Has reports whether name was touched.
func (t Touched) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Clone returns a copy of the set.
func (t Touched) Clone() Touched {
	out := make(Touched, len(t))
	for name := range t {
		out[name] = struct{}{}
	}
	return out
}

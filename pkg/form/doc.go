// Package form implements the signup form controller: the single owner of
// FormValues, TouchedSet, and ValidationErrors. Every transition (change,
// blur, submit, reset) runs atomically under the controller's lock; rule
// evaluation is delegated to a validation.RuleSet whose declared dependencies
// decide which fields are re-validated after an edit.
//
// Validity gates submission against the complete rule set, while View only
// exposes errors for touched fields.
package form

// Package uischema loads presentation overrides for the signup fields from
// JSON or YAML files: labels, placeholders, hints, editors, and order. The
// decorator applies them to a derived field schema without touching
// validation.
package uischema

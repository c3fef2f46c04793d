// Package render builds the renderer-neutral page model for the signup
// screen. A Row is the Field Row: label, input, error, hint. Rows copy values
// out of a controller View and never hold state of their own.
package render

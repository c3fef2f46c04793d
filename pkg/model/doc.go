// Package model defines the typed signup form state shared by the controller,
// the validation rules, and the renderers. Field describes the static schema
// of one input; Values, Touched, and Errors form the mutable triple owned by
// the form controller. Snapshot is the finalized payload handed to the
// account-creation collaborator once every rule passes.
package model

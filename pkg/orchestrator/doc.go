// Package orchestrator wires the loader → parser → field builder → decorator
// pipeline that turns the account-creation OpenAPI operation into a signup
// controller, and renders controller views through a renderer registry.
package orchestrator

// Package template defines renderer-agnostic template interfaces. The pongo
// subpackage provides the default Django-syntax engine used by the HTML page
// renderer.
package template

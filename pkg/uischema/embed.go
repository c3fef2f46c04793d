package uischema

import (
	"embed"
	"io/fs"
)

// The bundled overrides restate the signup copy so deployments can copy the
// file as a starting point.
//
//go:embed ui/schema/signup.yaml
var bundled embed.FS

const bundledRoot = "ui/schema"

// EmbeddedFS returns the bundled UI schema directory, rooted so LoadFS sees
// signup.yaml at the top level.
func EmbeddedFS() fs.FS {
	root, err := fs.Sub(bundled, bundledRoot)
	if err != nil {
		return bundled
	}
	return root
}

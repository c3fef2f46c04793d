package signup

import (
	"io/fs"

	vanilla "github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the browser runtime that sends
// change and blur events to the validate endpoint.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(signup.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

package openapi

import (
	"embed"
	"io/fs"
)

//go:embed signup.json
var embeddedSpec embed.FS

const (
	// SignupOperationID names the account-creation operation.
	SignupOperationID = "createAccount"
	// SignupDocumentName is the embedded document path.
	SignupDocumentName = "signup.json"
)

// SpecFS exposes the embedded document bundle.
func SpecFS() fs.FS {
	return embeddedSpec
}

// SignupDocument returns the embedded account-creation document.
func SignupDocument() Document {
	raw, err := fs.ReadFile(embeddedSpec, SignupDocumentName)
	if err != nil {
		panic(err)
	}
	return MustNewDocument(SourceFromFS(SignupDocumentName), raw)
}

package signup

import (
	internalModel "github.com/goliatone/go-signup/internal/model"
	internalLoader "github.com/goliatone/go-signup/internal/openapi/loader"
	internalParser "github.com/goliatone/go-signup/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/orchestrator"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewFieldBuilder returns the builder that maps request body properties to
// fields. A nil labeler keeps the default name humanising.
func NewFieldBuilder(labeler func(string) string) orchestrator.FieldBuilder {
	return internalModel.New(internalModel.Options{Labeler: labeler})
}

package main

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/input"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/render/template/pongo"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
	"github.com/goliatone/go-signup/pkg/validation"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

const (
	signupPath   = "/signup"
	validatePath = "/api/signup/validate"
	assetsPath   = "/assets/"
)

// validateRequest is the payload posted by the browser runtime on every
// change or blur.
type validateRequest struct {
	Event   string            `json:"event"`
	Field   string            `json:"field"`
	Values  map[string]string `json:"values"`
	Touched []string          `json:"touched"`
}

type signupServer struct {
	fields    []model.Field
	submitter form.Submitter
	renderers *render.Registry
	fallback  string
	options   render.RenderOptions
	pages     *pongo.Engine
	logger    *slog.Logger
}

// newSignupServer serves pages through renderers, negotiating on the Accept
// header and using fallback otherwise.
func newSignupServer(fields []model.Field, submitter form.Submitter, renderers *render.Registry, fallback string, options render.RenderOptions, logger *slog.Logger) (*signupServer, error) {
	sub, err := fs.Sub(pageTemplates, "templates")
	if err != nil {
		return nil, err
	}
	pages, err := pongo.New(pongo.WithFS(sub))
	if err != nil {
		return nil, fmt.Errorf("page templates: %w", err)
	}
	return &signupServer{
		fields:    fields,
		submitter: submitter,
		renderers: renderers,
		fallback:  fallback,
		options:   options,
		pages:     pages,
		logger:    logger,
	}, nil
}

func (s *signupServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(signupPath, s.handlePage).Methods(http.MethodGet)
	r.HandleFunc(signupPath, s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc(validatePath, s.handleValidate).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, signupPath, http.StatusSeeOther)
	}).Methods(http.MethodGet)
	for _, link := range render.BuildPage(form.View{}, s.options).Links {
		if !strings.HasPrefix(link.Href, "/") {
			continue
		}
		r.HandleFunc(link.Href, s.placeholder(link)).Methods(http.MethodGet)
	}
	r.PathPrefix(assetsPath).Handler(http.StripPrefix(assetsPath, http.FileServer(http.FS(vanilla.AssetsFS()))))
	return r
}

func (s *signupServer) newController() (*form.Controller, error) {
	return form.New(
		form.WithFields(s.fields),
		form.WithSubmitter(s.submitter),
		form.WithLogger(s.logger),
	)
}

func (s *signupServer) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.newController()
	if err != nil {
		http.Error(w, fmt.Sprintf("mount form: %v", err), http.StatusInternalServerError)
		return
	}
	defer ctrl.Unmount()
	s.writePage(w, r, http.StatusOK, ctrl.View(), s.options)
}

func (s *signupServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	ctrl, err := s.newController()
	if err != nil {
		http.Error(w, fmt.Sprintf("mount form: %v", err), http.StatusInternalServerError)
		return
	}
	defer ctrl.Unmount()

	for _, field := range ctrl.Fields() {
		raw := r.PostForm.Get(field.Name)
		if err := ctrl.OnFieldChange(field.Name, input.Parse(input.ForField(field), raw)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	options := s.options
	receipt, err := ctrl.Submit(r.Context())
	var (
		invalid   validation.Errors
		rejection *form.SubmissionError
	)
	switch {
	case err == nil:
		options.Notice = fmt.Sprintf("Account created for %s.", receipt.Username)
		s.writePage(w, r, http.StatusOK, ctrl.View(), options)
	case errors.As(err, &invalid), errors.As(err, &rejection):
		s.writePage(w, r, http.StatusUnprocessableEntity, ctrl.View(), options)
	default:
		s.logger.Warn("create account failed", slog.String("error", err.Error()))
		options.Notice = "We could not create your account right now. Please try again."
		s.writePage(w, r, http.StatusBadGateway, ctrl.View(), options)
	}
}

func (s *signupServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	ctrl, err := s.newController()
	if err != nil {
		http.Error(w, fmt.Sprintf("mount form: %v", err), http.StatusInternalServerError)
		return
	}
	defer ctrl.Unmount()

	if err := replay(ctrl, req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(render.BuildPage(ctrl.View(), s.options)); err != nil {
		s.logger.Warn("write validate response", slog.String("error", err.Error()))
	}
}

// replay rebuilds controller state from a browser snapshot. Posted field
// values are loaded untouched and foreign inputs are ignored. Touched fields
// are then blurred so their errors show, and the triggering event runs last.
func replay(ctrl *form.Controller, req validateRequest) error {
	fields := make(map[string]model.Field, len(req.Values))
	for _, field := range ctrl.Fields() {
		fields[field.Name] = field
	}
	loaded := make(model.Values, len(req.Values))
	for name, raw := range req.Values {
		field, ok := fields[name]
		if !ok {
			continue
		}
		loaded[name] = input.Parse(input.ForField(field), raw)
	}
	if err := ctrl.Load(loaded); err != nil {
		return err
	}

	touched := make(map[string]bool, len(req.Touched)+1)
	for _, name := range req.Touched {
		touched[name] = true
	}
	if req.Field != "" {
		touched[req.Field] = true
	}
	for _, field := range ctrl.Fields() {
		if !touched[field.Name] || field.Name == req.Field {
			continue
		}
		if err := ctrl.OnFieldBlur(field.Name); err != nil {
			return err
		}
	}
	if req.Field == "" {
		return nil
	}
	if req.Event == "blur" {
		return ctrl.OnFieldBlur(req.Field)
	}
	raw, ok := loaded[req.Field]
	if !ok {
		return ctrl.OnFieldBlur(req.Field)
	}
	return ctrl.OnFieldChange(req.Field, raw)
}

func (s *signupServer) writePage(w http.ResponseWriter, r *http.Request, status int, view form.View, options render.RenderOptions) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"), s.fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotAcceptable)
		return
	}
	output, err := renderer.Render(r.Context(), view, options)
	if err != nil {
		http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(status)
	if _, err := w.Write(output); err != nil {
		s.logger.Warn("write response", slog.String("error", err.Error()))
	}
}

func (s *signupServer) placeholder(link model.Link) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out, err := s.pages.RenderTemplate("placeholder", map[string]any{
			"title": link.Label,
			"back":  signupPath,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(out))
	}
}

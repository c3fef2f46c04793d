package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

func newTestServer(t *testing.T, submitter form.Submitter) *httptest.Server {
	t.Helper()

	renderer, err := vanilla.New(vanilla.WithAssetsPrefix(assetsPath))
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if submitter == nil {
		submitter = form.NewAcknowledger(logger)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	registry.MustRegister(tui.NewRenderer())
	server, err := newSignupServer(model.SignupFields(), submitter, registry, renderer.Name(), render.RenderOptions{}, logger)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(server.routes())
	t.Cleanup(ts.Close)
	return ts
}

func validForm() url.Values {
	return url.Values{
		"username":        {"jane"},
		"dob":             {"1990-04-12"},
		"email":           {"jane@example.com"},
		"password":        {"Secr3t!pw"},
		"confirmPassword": {"Secr3t!pw"},
		"agree":           {"on"},
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func TestSignupPage_MountState(t *testing.T) {
	ts := newTestServer(t, nil)

	res, err := http.Get(ts.URL + signupPath)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	for _, fragment := range []string{"data-signup-form", `data-can-submit="false"`, "/assets/signup-runtime.js"} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in page", fragment)
		}
	}
	if strings.Contains(body, "Username is required") {
		t.Fatalf("no error may be shown at mount")
	}
}

func TestSignupPage_PlainTextNegotiation(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+signupPath, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Accept", "text/plain")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, res)
	if !strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected content type %q", res.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "[ Create Account ] (disabled)") {
		t.Fatalf("expected plain-text submit line:\n%s", body)
	}
}

func TestSignupSubmit(t *testing.T) {
	rejecting := form.SubmitterFunc(func(context.Context, model.Snapshot) (form.Receipt, error) {
		return form.Receipt{}, &form.SubmissionError{Fields: map[string][]string{
			"/body/username": {"Username is taken"},
		}}
	})
	failing := form.SubmitterFunc(func(context.Context, model.Snapshot) (form.Receipt, error) {
		return form.Receipt{}, errors.New("connection refused")
	})

	cases := []struct {
		name      string
		submitter form.Submitter
		values    url.Values
		status    int
		want      string
	}{
		{name: "empty form", values: url.Values{}, status: http.StatusUnprocessableEntity, want: "Username is required"},
		{name: "accepted", values: validForm(), status: http.StatusOK, want: "Account created for jane."},
		{name: "rejected", submitter: rejecting, values: validForm(), status: http.StatusUnprocessableEntity, want: "Username is taken"},
		{name: "transport failure", submitter: failing, values: validForm(), status: http.StatusBadGateway, want: "We could not create your account right now."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, tc.submitter)
			res, err := http.PostForm(ts.URL+signupPath, tc.values)
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			body := readBody(t, res)
			if res.StatusCode != tc.status {
				t.Fatalf("status: want %d, got %d", tc.status, res.StatusCode)
			}
			if !strings.Contains(body, tc.want) {
				t.Fatalf("expected %q in body:\n%s", tc.want, body)
			}
			if strings.Contains(body, "Secr3t!pw") {
				t.Fatalf("password must not be echoed back")
			}
		})
	}
}

func postValidate(t *testing.T, ts *httptest.Server, req validateRequest) render.Page {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	res, err := http.Post(ts.URL+validatePath, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	var page render.Page
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return page
}

func invalidRows(page render.Page) map[string]string {
	out := map[string]string{}
	for _, row := range page.Rows {
		if row.Invalid {
			out[row.Name] = row.Error
		}
	}
	return out
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	page := postValidate(t, ts, validateRequest{
		Event:   "change",
		Field:   "password",
		Values:  map[string]string{"password": "short", "username": ""},
		Touched: []string{"password"},
	})
	want := map[string]string{"password": "Password must be at least 8 characters"}
	if diff := cmp.Diff(want, invalidRows(page)); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
	if page.CanSubmit {
		t.Fatalf("submit must stay disabled")
	}

	page = postValidate(t, ts, validateRequest{
		Event:   "change",
		Field:   "confirmPassword",
		Values:  map[string]string{"password": "Secr3t!pw", "confirmPassword": "Secr3t!px"},
		Touched: []string{"password"},
	})
	want = map[string]string{"confirmPassword": "Passwords must match"}
	if diff := cmp.Diff(want, invalidRows(page)); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}

	values := map[string]string{}
	for key, v := range validForm() {
		values[key] = v[0]
	}
	values["agree"] = "true"
	page = postValidate(t, ts, validateRequest{
		Event:   "blur",
		Field:   "agree",
		Values:  values,
		Touched: []string{"username", "dob", "email", "password", "confirmPassword"},
	})
	if len(invalidRows(page)) != 0 || !page.CanSubmit {
		t.Fatalf("expected a submittable page, got %+v", invalidRows(page))
	}
}

func TestValidateEndpoint_GateIgnoresTouchState(t *testing.T) {
	ts := newTestServer(t, nil)

	values := map[string]string{}
	for key, v := range validForm() {
		values[key] = v[0]
	}
	values["agree"] = "true"
	values["extension-injected"] = "x"

	page := postValidate(t, ts, validateRequest{
		Event:   "change",
		Field:   "username",
		Values:  values,
		Touched: []string{"username"},
	})
	if !page.CanSubmit {
		t.Fatalf("autofilled valid values must enable submit")
	}
	if len(invalidRows(page)) != 0 {
		t.Fatalf("unexpected visible errors %v", invalidRows(page))
	}

	values["email"] = "not-an-email"
	page = postValidate(t, ts, validateRequest{
		Event:   "change",
		Field:   "username",
		Values:  values,
		Touched: []string{"username"},
	})
	if page.CanSubmit {
		t.Fatalf("an untouched invalid field must keep submit disabled")
	}
	if len(invalidRows(page)) != 0 {
		t.Fatalf("untouched errors must stay hidden, got %v", invalidRows(page))
	}
}

func TestAncillaryRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	cases := []struct {
		path string
		want string
	}{
		{path: "/healthz", want: "ok"},
		{path: "/toc", want: "Terms and Conditions"},
		{path: "/privacy-policy", want: "Privacy Policy"},
		{path: "/assets/" + vanilla.StylesheetName, want: "signup"},
	}
	for _, tc := range cases {
		res, err := http.Get(ts.URL + tc.path)
		if err != nil {
			t.Fatalf("get %s: %v", tc.path, err)
		}
		body := readBody(t, res)
		if res.StatusCode != http.StatusOK || !strings.Contains(body, tc.want) {
			t.Fatalf("%s: status %d, body %q", tc.path, res.StatusCode, body)
		}
	}

	res, err := http.Post(ts.URL+validatePath, "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", res.StatusCode)
	}
	res.Body.Close()
}

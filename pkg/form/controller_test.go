package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type recordingSubmitter struct {
	mu        sync.Mutex
	snapshots []model.Snapshot
	err       error
}

func (s *recordingSubmitter) CreateAccount(_ context.Context, snapshot model.Snapshot) (form.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	if s.err != nil {
		return form.Receipt{}, s.err
	}
	return form.Receipt{Username: snapshot.Username, SubmittedAt: testNow}, nil
}

func newController(t *testing.T, submitter form.Submitter) *form.Controller {
	t.Helper()
	ctrl, err := form.New(
		form.WithClock(func() time.Time { return testNow }),
		form.WithSubmitter(submitter),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func fill(t *testing.T, ctrl *form.Controller, values model.Values) {
	t.Helper()
	for _, name := range []string{
		model.FieldUsername, model.FieldDOB, model.FieldEmail,
		model.FieldPassword, model.FieldConfirmPassword, model.FieldAgree,
	} {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := ctrl.OnFieldChange(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
}

func validInput() model.Values {
	return model.Values{
		model.FieldUsername:        "abcd",
		model.FieldDOB:             time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC),
		model.FieldEmail:           "jane@example.com",
		model.FieldPassword:        "Abcdefg1!",
		model.FieldConfirmPassword: "Abcdefg1!",
		model.FieldAgree:           true,
	}
}

func TestController_MountStateHidesErrorsButGatesSubmit(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})

	if ctrl.IsValid() || ctrl.CanSubmit() {
		t.Fatalf("empty form must not be submittable")
	}
	if got := ctrl.VisibleErrors(); len(got) != 0 {
		t.Fatalf("untouched fields must not display errors, got %v", got)
	}
	if got := len(ctrl.Errors()); got != 6 {
		t.Fatalf("expected every field evaluated at mount, got %d errors", got)
	}
	for _, state := range ctrl.View().Fields {
		if state.Error != "" {
			t.Fatalf("field %s displays error before interaction", state.Field.Name)
		}
	}
}

func TestController_ValidFormSubmitsOnce(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := newController(t, sub)
	fill(t, ctrl, validInput())

	if !ctrl.IsValid() || !ctrl.CanSubmit() {
		t.Fatalf("expected valid form, errors: %v", ctrl.Errors())
	}

	receipt, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Username != "abcd" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	want := []model.Snapshot{{
		Username:        "abcd",
		DOB:             time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC),
		Email:           "jane@example.com",
		Password:        "Abcdefg1!",
		ConfirmPassword: "Abcdefg1!",
		Agree:           true,
	}}
	if diff := cmp.Diff(want, sub.snapshots); diff != "" {
		t.Fatalf("snapshots mismatch (-want +got):\n%s", diff)
	}

	if len(ctrl.Values()) != 0 || len(ctrl.Touched()) != 0 {
		t.Fatalf("expected form reset after success")
	}
	if ctrl.IsValid() {
		t.Fatalf("reset form must be invalid again")
	}
}

func TestController_InvalidFormNeverReachesSubmitter(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := newController(t, sub)

	input := validInput()
	input[model.FieldAgree] = false
	fill(t, ctrl, input)

	_, err := ctrl.Submit(context.Background())
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := verrs.For(model.FieldAgree); got != validation.MsgAgreementRequired {
		t.Fatalf("expected agreement error, got %q", got)
	}
	if len(sub.snapshots) != 0 {
		t.Fatalf("submitter called %d times", len(sub.snapshots))
	}
	if got := ctrl.VisibleErrors()[model.FieldAgree]; got != validation.MsgAgreementRequired {
		t.Fatalf("agreement error not surfaced, got %q", got)
	}
}

func TestController_SubmitTouchesEveryField(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})
	if _, err := ctrl.Submit(context.Background()); err == nil {
		t.Fatalf("expected empty submit to fail")
	}
	want := model.Errors{
		model.FieldUsername:        validation.MsgUsernameRequired,
		model.FieldDOB:             validation.MsgDOBRequired,
		model.FieldEmail:           validation.MsgEmailRequired,
		model.FieldPassword:        validation.MsgPasswordRequired,
		model.FieldConfirmPassword: validation.MsgConfirmRequired,
		model.FieldAgree:           validation.MsgAgreementRequired,
	}
	if diff := cmp.Diff(want, ctrl.VisibleErrors()); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
}

func TestController_PasswordChangeRevalidatesConfirm(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})
	fill(t, ctrl, validInput())

	if msg := ctrl.Errors()[model.FieldConfirmPassword]; msg != "" {
		t.Fatalf("confirm password should start valid, got %q", msg)
	}

	if err := ctrl.OnFieldChange(model.FieldPassword, "Xyzabcd9!"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if msg := ctrl.Errors()[model.FieldConfirmPassword]; msg != validation.MsgConfirmMismatch {
		t.Fatalf("expected mismatch without editing confirm, got %q", msg)
	}
	if ctrl.IsValid() {
		t.Fatalf("form must be invalid after password diverges")
	}

	if err := ctrl.OnFieldChange(model.FieldConfirmPassword, "Xyzabcd9!"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !ctrl.IsValid() {
		t.Fatalf("expected valid form, errors: %v", ctrl.Errors())
	}
}

func TestController_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"short username", model.FieldUsername, "ab", validation.MsgUsernameMin},
		{"long username", model.FieldUsername, "abcd", ""},
		{"password missing symbol", model.FieldPassword, "Abcdefg1", validation.MsgPasswordSpecial},
		{"password ok", model.FieldPassword, "Abcdefg1!", ""},
		{"password length first", model.FieldPassword, "abc", validation.MsgPasswordMin},
		{"future dob", model.FieldDOB, testNow.AddDate(0, 0, 1), validation.MsgDOBFuture},
		{"today dob", model.FieldDOB, testNow, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := newController(t, &recordingSubmitter{})
			if err := ctrl.OnFieldChange(tc.field, tc.value); err != nil {
				t.Fatalf("change: %v", err)
			}
			if got := ctrl.VisibleErrors()[tc.field]; got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestController_ConfirmMismatchScenario(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})
	fill(t, ctrl, model.Values{
		model.FieldPassword:        "Abcdefg1!",
		model.FieldConfirmPassword: "Abcdefg1",
	})
	if got := ctrl.VisibleErrors()[model.FieldConfirmPassword]; got != validation.MsgConfirmMismatch {
		t.Fatalf("expected mismatch, got %q", got)
	}
	if err := ctrl.OnFieldChange(model.FieldConfirmPassword, "Abcdefg1!"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if got := ctrl.VisibleErrors()[model.FieldConfirmPassword]; got != "" {
		t.Fatalf("expected mismatch cleared, got %q", got)
	}
}

func TestController_BlurShowsError(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})

	if got := ctrl.VisibleErrors()[model.FieldEmail]; got != "" {
		t.Fatalf("untouched email displays %q", got)
	}
	if err := ctrl.OnFieldBlur(model.FieldEmail); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if got := ctrl.VisibleErrors()[model.FieldEmail]; got != validation.MsgEmailRequired {
		t.Fatalf("expected required error after blur, got %q", got)
	}
	state, ok := ctrl.View().Field(model.FieldEmail)
	if !ok || !state.Touched || state.Error != validation.MsgEmailRequired {
		t.Fatalf("unexpected view state %+v", state)
	}
}

func TestController_LoadValidatesWithoutTouching(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})

	if err := ctrl.Load(validInput()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ctrl.CanSubmit() {
		t.Fatalf("loaded valid values must open the gate, errors %v", ctrl.Errors())
	}
	if got := len(ctrl.Touched()); got != 0 {
		t.Fatalf("load must not touch fields, got %d", got)
	}

	if err := ctrl.Load(model.Values{model.FieldEmail: "nope"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if ctrl.CanSubmit() {
		t.Fatalf("an untouched invalid field must close the gate")
	}
	if got := ctrl.VisibleErrors(); len(got) != 0 {
		t.Fatalf("untouched errors must stay hidden, got %v", got)
	}

	err := ctrl.Load(model.Values{model.FieldUsername: "zzzz", "nickname": "x"})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got := ctrl.Values().String(model.FieldUsername); got != "abcd" {
		t.Fatalf("rejected load must store nothing, username %q", got)
	}
}

func TestController_UnknownField(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})
	if err := ctrl.OnFieldChange("nickname", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := ctrl.OnFieldBlur("nickname"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestController_SubmissionErrorMapsIntoFields(t *testing.T) {
	sub := &recordingSubmitter{err: &form.SubmissionError{
		Fields: map[string][]string{
			"/body/username":   {"Username is already taken"},
			"non_field_errors": {"Signups are paused"},
		},
	}}
	ctrl := newController(t, sub)
	fill(t, ctrl, validInput())

	_, err := ctrl.Submit(context.Background())
	var rejection *form.SubmissionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected submission error, got %v", err)
	}

	want := model.Errors{
		model.FieldUsername: "Username is already taken",
		model.FormErrorKey:  "Signups are paused",
	}
	if diff := cmp.Diff(want, ctrl.VisibleErrors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if ctrl.CanSubmit() {
		t.Fatalf("rejected form must stay gated")
	}
	if got := ctrl.Values().String(model.FieldUsername); got != "abcd" {
		t.Fatalf("values must survive rejection, got %q", got)
	}

	if err := ctrl.OnFieldChange(model.FieldUsername, "abcde"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !ctrl.CanSubmit() {
		t.Fatalf("editing the rejected field should clear server errors, got %v", ctrl.Errors())
	}
}

func TestController_TransportFailureKeepsState(t *testing.T) {
	boom := errors.New("boom")
	ctrl := newController(t, &recordingSubmitter{err: boom})
	fill(t, ctrl, validInput())

	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if !ctrl.CanSubmit() || ctrl.Submitting() {
		t.Fatalf("submit must be re-enabled after failure")
	}
}

func TestController_InFlightAndStaleResponses(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	sub := form.SubmitterFunc(func(ctx context.Context, snapshot model.Snapshot) (form.Receipt, error) {
		close(entered)
		<-release
		return form.Receipt{Username: snapshot.Username}, nil
	})
	ctrl := newController(t, sub)
	fill(t, ctrl, validInput())

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background())
		done <- err
	}()
	<-entered

	if ctrl.CanSubmit() || !ctrl.Submitting() {
		t.Fatalf("submit must be disabled while in flight")
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	ctrl.Reset()
	fill(t, ctrl, model.Values{model.FieldUsername: "zzzz"})
	close(release)

	if err := <-done; !errors.Is(err, form.ErrStaleSubmission) {
		t.Fatalf("expected stale submission, got %v", err)
	}
	if got := ctrl.Values().String(model.FieldUsername); got != "zzzz" {
		t.Fatalf("stale response must not reset newer state, got %q", got)
	}
}

func TestController_Unmount(t *testing.T) {
	ctrl := newController(t, &recordingSubmitter{})
	ctrl.Unmount()
	if err := ctrl.OnFieldChange(model.FieldUsername, "abcd"); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted, got %v", err)
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted, got %v", err)
	}
}

func TestNew_RejectsRulesOutsideSchema(t *testing.T) {
	_, err := form.New(form.WithFields([]model.Field{{Name: model.FieldUsername}}))
	if err == nil {
		t.Fatalf("expected schema/rules mismatch error")
	}
}

func TestTriggers(t *testing.T) {
	var visited []string
	nav := form.NavigatorFunc(func(_ context.Context, link model.Link) error {
		visited = append(visited, link.Href)
		return nil
	})
	triggers := form.Triggers(context.Background(), nav)
	for _, name := range []string{"login", "terms", "privacy"} {
		if err := triggers[name](); err != nil {
			t.Fatalf("trigger %s: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"/login", "/toc", "/privacy-policy"}, visited); diff != "" {
		t.Fatalf("visited mismatch (-want +got):\n%s", diff)
	}
}

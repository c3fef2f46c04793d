package live

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
)

type countingSubmitter struct {
	calls     int
	snapshots []model.Snapshot
	err       error
}

func (s *countingSubmitter) CreateAccount(_ context.Context, snapshot model.Snapshot) (form.Receipt, error) {
	s.calls++
	s.snapshots = append(s.snapshots, snapshot)
	if s.err != nil {
		return form.Receipt{}, s.err
	}
	return form.Receipt{Username: snapshot.Username}, nil
}

func newModel(t *testing.T, submitter form.Submitter, options ...Option) (Model, *form.Controller) {
	t.Helper()
	ctrl, err := form.New(
		form.WithSubmitter(submitter),
		form.WithClock(func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return New(context.Background(), ctrl, options...), ctrl
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func tab(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	return m
}

func fillValid(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(t, m, "jane")
	m = tab(t, m)
	m = typeText(t, m, "1990-01-01")
	m = tab(t, m)
	m = typeText(t, m, "jane@example.com")
	m = tab(t, m)
	m = typeText(t, m, "Passw0rd!")
	m = tab(t, m)
	m = typeText(t, m, "Passw0rd!")
	m = tab(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	return tab(t, m)
}

func TestModel_KeystrokesAreChangeEvents(t *testing.T) {
	m, ctrl := newModel(t, &countingSubmitter{})

	m = typeText(t, m, "ab")
	if got := ctrl.Values().String(model.FieldUsername); got != "ab" {
		t.Fatalf("expected value to follow keystrokes, got %q", got)
	}
	if got := ctrl.VisibleErrors()[model.FieldUsername]; got != "Username must be at least 4 characters long" {
		t.Fatalf("unexpected error %q", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := ctrl.Values().String(model.FieldUsername); got != "a" {
		t.Fatalf("expected backspace to report a change, got %q", got)
	}
	if !strings.Contains(m.View(), "Username must be at least 4 characters long") {
		t.Fatalf("expected error in view")
	}
}

func TestModel_FocusChangeBlursField(t *testing.T) {
	m, ctrl := newModel(t, &countingSubmitter{})

	m = tab(t, m)
	if m.Focus() != 1 {
		t.Fatalf("expected focus on dob, got %d", m.Focus())
	}
	if got := ctrl.VisibleErrors()[model.FieldUsername]; got != "Username is required" {
		t.Fatalf("expected blur to surface required error, got %q", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focus() != len(model.SignupFields()) {
		t.Fatalf("expected wrap to submit button, got %d", m.Focus())
	}
}

func TestModel_RevealToggleDoesNotChangeValues(t *testing.T) {
	m, ctrl := newModel(t, &countingSubmitter{})
	for i := 0; i < 3; i++ {
		m = tab(t, m)
	}
	m = typeText(t, m, "Secret1!")
	before := ctrl.Values()

	if strings.Contains(m.View(), "Secret1!") {
		t.Fatalf("password must be masked before reveal")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !strings.Contains(m.View(), "Secret1!") {
		t.Fatalf("password should be visible after reveal")
	}
	if diff := cmp.Diff(before, ctrl.Values()); diff != "" {
		t.Fatalf("reveal changed values (-want +got):\n%s", diff)
	}
}

func TestModel_SubmitOnlyWhenValid(t *testing.T) {
	submitter := &countingSubmitter{}
	m, _ := newModel(t, submitter)

	for i := 0; i < len(model.SignupFields()); i++ {
		m = tab(t, m)
	}
	if _, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("submit must be disabled on an invalid form")
	}

	m, _ = newModel(t, submitter)
	m = fillValid(t, m)
	if !m.onSubmit() {
		t.Fatalf("expected focus on submit, got %d", m.Focus())
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	if _, again := send(t, m, tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Fatalf("second enter while pending must not submit")
	}

	m, _ = send(t, m, cmd())
	if submitter.calls != 1 {
		t.Fatalf("expected exactly one submission, got %d", submitter.calls)
	}
	if m.Result().Receipt == nil || m.Result().Receipt.Username != "jane" {
		t.Fatalf("expected receipt, got %+v", m.Result())
	}
	if !strings.Contains(m.View(), "Account created for jane") {
		t.Fatalf("expected notice in view")
	}
	if m.Focus() != 0 {
		t.Fatalf("expected focus reset, got %d", m.Focus())
	}
}

func TestModel_SubmissionErrorShowsOnField(t *testing.T) {
	submitter := &countingSubmitter{err: &form.SubmissionError{
		Fields: map[string][]string{"email": {"Email already registered"}},
	}}
	m, _ := newModel(t, submitter)
	m = fillValid(t, m)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	if !strings.Contains(m.View(), "Email already registered") {
		t.Fatalf("expected collaborator error in view:\n%s", m.View())
	}
}

type recordingNavigator struct {
	links []model.Link
}

func (n *recordingNavigator) Navigate(_ context.Context, link model.Link) error {
	n.links = append(n.links, link)
	return nil
}

func TestModel_LinkShortcuts(t *testing.T) {
	nav := &recordingNavigator{}
	m, ctrl := newModel(t, &countingSubmitter{}, WithNavigator(nav))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}, Alt: true})
	if cmd == nil {
		t.Fatalf("expected quit after navigation")
	}
	if diff := cmp.Diff([]model.Link{model.LinkTerms}, nav.links); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
	if m.Result().Navigated == nil || m.Result().Navigated.Href != "/toc" {
		t.Fatalf("unexpected result %+v", m.Result())
	}
	if err := ctrl.OnFieldBlur(model.FieldUsername); err == nil {
		t.Fatalf("expected controller to be unmounted")
	}
}

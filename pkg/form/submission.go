package form

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-signup/pkg/model"
)

// Submitter is the external account-creation collaborator. A rejection that
// can be traced back to fields should be returned as *SubmissionError.
type Submitter interface {
	CreateAccount(ctx context.Context, snapshot model.Snapshot) (Receipt, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, snapshot model.Snapshot) (Receipt, error)

// CreateAccount calls fn.
func (fn SubmitterFunc) CreateAccount(ctx context.Context, snapshot model.Snapshot) (Receipt, error) {
	return fn(ctx, snapshot)
}

// Receipt acknowledges an accepted snapshot.
type Receipt struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SubmissionError is a structured rejection. Fields is keyed by the paths the
// collaborator uses (plain names, JSON pointers, dotted body paths); unknown
// paths and Message surface as form-level errors.
type SubmissionError struct {
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func (e *SubmissionError) Error() string {
	if e == nil {
		return "form: submission rejected"
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return "form: submission rejected: " + msg
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "form: submission rejected"
	}
	return "form: submission rejected for " + strings.Join(keys, ", ")
}

// Acknowledger is a placeholder collaborator: it accepts every snapshot,
// logs the hand-off, and issues a receipt.
type Acknowledger struct {
	logger *slog.Logger
	clock  func() time.Time

	mu       sync.Mutex
	receipts []Receipt
}

// NewAcknowledger constructs the placeholder collaborator. A nil logger keeps
// it silent.
func NewAcknowledger(logger *slog.Logger) *Acknowledger {
	return &Acknowledger{logger: logger, clock: time.Now}
}

// CreateAccount records the snapshot and returns a fresh receipt.
func (a *Acknowledger) CreateAccount(ctx context.Context, snapshot model.Snapshot) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	receipt := Receipt{
		ID:          uuid.New(),
		Username:    snapshot.Username,
		SubmittedAt: a.clock(),
	}

	a.mu.Lock()
	a.receipts = append(a.receipts, receipt)
	a.mu.Unlock()

	if a.logger != nil {
		a.logger.InfoContext(ctx, "signup submitted",
			slog.String("receipt", receipt.ID.String()),
			slog.String("username", snapshot.Username),
			slog.String("email", snapshot.Email),
		)
	}
	return receipt, nil
}

// Receipts returns the receipts issued so far.
func (a *Acknowledger) Receipts() []Receipt {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Receipt(nil), a.receipts...)
}

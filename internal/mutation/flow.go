// Package mutation drives the deposit/withdraw form: validate locally,
// submit once, refresh the list on success.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/validation"
)

// ErrBusy is returned when a submission is already outstanding.
var ErrBusy = errors.New("a request is already in progress")

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status is how a Submit call ended.
type Status int

const (
	Rejected Status = iota // failed local validation, nothing was sent
	Succeeded
	Errored
)

// ValidationError wraps a local validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Request is one user action on the form.
type Request struct {
	Kind   model.Kind
	Amount string
	// Balance is the last known balance. Withdrawals above it are
	// rejected locally; nil leaves the check to the server.
	Balance *float64
}

// SubmitFunc sends the mutation and returns the confirmation text.
type SubmitFunc func(ctx context.Context, kind model.Kind, amount float64) (string, error)

// RefreshFunc reloads the collection shown next to the form.
type RefreshFunc func(ctx context.Context) error

// Outcome reports the end of a Submit call.
type Outcome struct {
	Status  Status
	Message string
	Err     error
	// Done is closed once the flow is back to Idle. After a success that
	// happens a short delay after Submit returns.
	Done <-chan struct{}
}

// Flow is the state machine behind a deposit/withdraw form.
type Flow struct {
	submit  SubmitFunc
	refresh RefreshFunc
	delay   time.Duration
	message func(error) string
	logger  *slog.Logger

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)

	mu     sync.Mutex
	state  State
	amount string
	last   string
}

type Option func(*Flow)

// WithCompleteDelay sets how long Success is held before Done fires.
func WithCompleteDelay(d time.Duration) Option {
	return func(f *Flow) { f.delay = d }
}

// WithMessage sets how submission errors become display text.
func WithMessage(fn func(error) string) Option {
	return func(f *Flow) { f.message = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

func NewFlow(submit SubmitFunc, refresh RefreshFunc, opts ...Option) *Flow {
	f := &Flow{
		submit:  submit,
		refresh: refresh,
		delay:   1500 * time.Millisecond,
		message: func(err error) string { return err.Error() },
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Amount is the amount text kept for a retry after a failure.
func (f *Flow) Amount() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.amount
}

// Message is the text of the last outcome.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Submit runs one action through the state machine.
func (f *Flow) Submit(ctx context.Context, req Request) Outcome {
	f.mu.Lock()
	// A success holds the form until its own delay has passed.
	if f.state == Validating || f.state == Submitting || f.state == Success {
		f.mu.Unlock()
		return Outcome{Status: Rejected, Message: ErrBusy.Error(), Err: ErrBusy, Done: closed()}
	}
	f.amount = req.Amount
	f.transitionLocked(Validating)
	f.mu.Unlock()

	amount, err := validate(req)
	if err != nil {
		verr := &ValidationError{Err: err}
		f.settle(Idle, verr.Error())
		return Outcome{Status: Rejected, Message: verr.Error(), Err: verr, Done: closed()}
	}

	f.set(Submitting)
	msg, err := f.submit(ctx, req.Kind, amount)
	if err != nil {
		text := f.message(err)
		f.set(Failed)
		f.settle(Idle, text)
		f.logger.Debug("mutation failed", slog.String("kind", string(req.Kind)), slog.Any("error", err))
		return Outcome{Status: Errored, Message: text, Err: err, Done: closed()}
	}

	if msg == "" {
		msg = fmt.Sprintf("%s successful", req.Kind.Label())
	}

	f.mu.Lock()
	f.amount = ""
	f.last = msg
	f.transitionLocked(Success)
	f.mu.Unlock()

	if f.refresh != nil {
		if err := f.refresh(ctx); err != nil {
			f.logger.Warn("refresh after mutation failed", slog.Any("error", err))
		}
	}

	done := make(chan struct{})
	complete := func() {
		f.mu.Lock()
		if f.state == Success {
			f.transitionLocked(Idle)
		}
		f.mu.Unlock()
		close(done)
	}
	if f.delay <= 0 {
		complete()
	} else {
		time.AfterFunc(f.delay, complete)
	}

	return Outcome{Status: Succeeded, Message: msg, Done: done}
}

func validate(req Request) (float64, error) {
	if !req.Kind.Valid() {
		return 0, fmt.Errorf("unknown transaction type %q", req.Kind)
	}
	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return 0, err
	}
	if req.Kind == model.KindWithdraw {
		if err := validation.ValidateWithdraw(amount, req.Balance); err != nil {
			return 0, err
		}
	}
	return amount, nil
}

func (f *Flow) set(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitionLocked(s)
}

func (f *Flow) settle(s State, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = msg
	f.transitionLocked(s)
}

func (f *Flow) transitionLocked(to State) {
	from := f.state
	f.state = to
	if f.OnTransition != nil && from != to {
		f.OnTransition(from, to)
	}
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

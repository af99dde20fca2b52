package contact

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when Submit is called while a submission is in flight.
var ErrBusy = errors.New("contact: submission already in progress")

// Submitter delivers a validated submission to the server.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error { return f(ctx, s) }

// State is the form's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status of a finished Submit call.
type Status int

const (
	OutcomeSent Status = iota
	OutcomeInvalid
	OutcomeFailed
)

// Notice is the acknowledgement shown to the visitor.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

var (
	sentNotice = Notice{
		Title:       "Message sent successfully! ✨",
		Description: "Thank you for reaching out. I'll get back to you soon!",
	}
	failedNotice = Notice{
		Title:       "Error sending message",
		Description: "Please try again later.",
		Destructive: true,
	}
)

// Outcome reports what a Submit call did.
type Outcome struct {
	Status Status
	Notice Notice
	// Invalid is set when local validation rejected the draft.
	Invalid *ValidationError
	// Err is the underlying submitter error, for logging only.
	Err error
}

// Form owns the draft while the contact form is open and runs the
// Idle → Submitting → Succeeded|Failed → Idle cycle.
type Form struct {
	submitter Submitter

	mu           sync.Mutex
	draft        Submission
	state        State
	onTransition func(from, to State)
}

func NewForm(submitter Submitter) *Form {
	return &Form{submitter: submitter}
}

// OnTransition installs a hook called on every state change.
func (f *Form) OnTransition(fn func(from, to State)) {
	f.mu.Lock()
	f.onTransition = fn
	f.mu.Unlock()
}

func (f *Form) Draft() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft replaces the draft. Edits are allowed while submitting; the
// in-flight request keeps the snapshot it was started with.
func (f *Form) SetDraft(s Submission) {
	f.mu.Lock()
	f.draft = s
	f.mu.Unlock()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether the submit control should be disabled.
func (f *Form) Busy() bool { return f.State() == StateSubmitting }

// Submit validates the draft locally and, if it passes, hands it to the
// submitter. A failed validation never reaches the submitter. On success
// the draft is cleared; on failure it is left as the visitor typed it.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	snapshot := f.draft
	f.mu.Unlock()

	if err := snapshot.Validate(); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return Outcome{}, err
		}
		return Outcome{
			Status:  OutcomeInvalid,
			Invalid: verr,
			Notice:  Notice{Title: "Error sending message", Description: verr.Summary(), Destructive: true},
		}, nil
	}

	if !f.transition(StateIdle, StateSubmitting) {
		return Outcome{}, ErrBusy
	}

	err := f.submitter.Submit(ctx, snapshot)

	if err != nil {
		f.transition(StateSubmitting, StateFailed)
		f.transition(StateFailed, StateIdle)
		return Outcome{Status: OutcomeFailed, Notice: failedNotice, Err: err}, nil
	}

	f.mu.Lock()
	f.draft = Submission{}
	f.mu.Unlock()
	f.transition(StateSubmitting, StateSucceeded)
	f.transition(StateSucceeded, StateIdle)
	return Outcome{Status: OutcomeSent, Notice: sentNotice}, nil
}

func (f *Form) transition(from, to State) bool {
	f.mu.Lock()
	if f.state != from {
		f.mu.Unlock()
		return false
	}
	f.state = to
	hook := f.onTransition
	f.mu.Unlock()

	if hook != nil {
		hook(from, to)
	}
	return true
}

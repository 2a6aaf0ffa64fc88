// Package flows implements the create, edit and delete workflows for
// categories and bookmarks as explicit state machines.
package flows

import (
	"context"
	"fmt"
	"sync"

	"github.com/skingford/book-web/internal/domain"
)

// State is one of Idle, Validating, Submitting, Success or Failed.
type State interface {
	isState()
	String() string
}

type Idle struct{}

type Validating struct{}

type Submitting struct{}

// Success carries where the caller should navigate next.
type Success struct {
	Location string
	ID       string
}

// Failed carries a user-facing message. Err holds the cause for logs and
// for errors.Is/As; it is never shown as is.
type Failed struct {
	Message string
	Fields  []domain.FieldError
	Err     error
}

func (Idle) isState()       {}
func (Validating) isState() {}
func (Submitting) isState() {}
func (Success) isState()    {}
func (Failed) isState()     {}

func (Idle) String() string       { return "idle" }
func (Validating) String() string { return "validating" }
func (Submitting) String() string { return "submitting" }
func (s Success) String() string  { return "success -> " + s.Location }
func (f Failed) String() string   { return "failed: " + f.Message }

func (f Failed) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

func (f Failed) Unwrap() error { return f.Err }

// Form tracks the state of one form across submissions.
// While a submission is in flight, further submissions are rejected.
type Form struct {
	mu       sync.Mutex
	state    State
	onChange func(State)
}

// NewForm returns an idle form. onChange, when set, sees every transition.
func NewForm(onChange func(State)) *Form {
	return &Form{state: Idle{}, onChange: onChange}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Reset returns the form to Idle after a Success or Failed was handled.
func (f *Form) Reset() {
	f.transition(Idle{})
}

// begin moves to Validating unless a submission is already running.
func (f *Form) begin() bool {
	f.mu.Lock()
	switch f.state.(type) {
	case Validating, Submitting:
		f.mu.Unlock()
		return false
	}
	f.state = Validating{}
	cb := f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(Validating{})
	}
	return true
}

func (f *Form) transition(s State) {
	f.mu.Lock()
	f.state = s
	cb := f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

// submit drives one submission: validate, then write.
// A validation error never reaches write.
func (f *Form) submit(ctx context.Context, validate func() error, write func(context.Context) (Success, error)) State {
	if f == nil {
		f = NewForm(nil)
	}
	if !f.begin() {
		return Failed{Message: "A submission is already in progress.", Err: domain.ErrBusy}
	}

	if err := validate(); err != nil {
		s := failure(err)
		f.transition(s)
		return s
	}

	f.transition(Submitting{})
	ok, err := write(ctx)
	if err != nil {
		s := failure(err)
		f.transition(s)
		return s
	}

	f.transition(ok)
	return ok
}

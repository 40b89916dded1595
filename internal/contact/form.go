package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Status of the submission lifecycle.
type Status string

// enum of submission statuses
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// default messages shown to the visitor
const (
	DefaultSuccessMessage = "Thank you! Your message has been sent successfully. I'll get back to you soon."
	DefaultFailureMessage = "Failed to send message. Please try again later or contact me directly via email."
)

// DefaultAutoHide is how long a success message stays before the form returns to idle.
const DefaultAutoHide = 5 * time.Second

var (
	// ErrInvalid is wrapped by ValidationError.
	ErrInvalid = errors.New("contact form is invalid")
	// ErrInFlight is returned by Submit while a previous submission is pending.
	ErrInFlight = errors.New("submission already in progress")
	// ErrSubmissionFailed is wrapped by every error returned for a failed request.
	ErrSubmissionFailed = errors.New("submission failed")
)

// ValidationError carries the failed fields of a blocked submission.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact form is invalid: %d field(s) failed", len(e.Errors))
}

// Unwrap returns ErrInvalid.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Submission is the visible state of the last submit.
type Submission struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Snapshot is a copy of the form state, safe to hand to renderers.
type Snapshot struct {
	Values     Values     `json:"values"`
	Errors     Errors     `json:"errors"`
	Submission Submission `json:"submission"`
	CanSubmit  bool       `json:"can_submit"`
}

// Sender delivers form values and returns the confirmation message provided by the receiver, if any.
type Sender interface {
	Send(ctx context.Context, v Values) (string, error)
}

// Clock schedules deferred callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancelable scheduled callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Form is the state of one contact form instance. It's safe for concurrent use:
// edits are accepted while a submission is pending.
type Form struct {
	sender   Sender
	clock    Clock
	log      lgr.L
	autoHide time.Duration

	mu         sync.Mutex
	values     Values
	errors     Errors
	submission Submission
	inFlight   bool
	hide       Timer
	gen        uint64 // bumped by every state-changing action, stale timers compare against it
	subs       map[int]func(Snapshot)
	nextSubID  int
}

// Option configures a Form.
type Option func(f *Form)

// WithClock sets the clock used for the auto-hide timer.
func WithClock(c Clock) Option { return func(f *Form) { f.clock = c } }

// WithLogger sets the logger.
func WithLogger(l lgr.L) Option { return func(f *Form) { f.log = l } }

// WithAutoHide changes how long a success message stays visible.
func WithAutoHide(d time.Duration) Option { return func(f *Form) { f.autoHide = d } }

// WithValues pre-fills the form.
func WithValues(v Values) Option { return func(f *Form) { f.values = v } }

// New makes an idle, empty form submitting through sender.
func New(sender Sender, opts ...Option) *Form {
	f := &Form{
		sender:     sender,
		clock:      realClock{},
		log:        lgr.Default(),
		autoHide:   DefaultAutoHide,
		errors:     Errors{},
		submission: Submission{Status: StatusIdle},
		subs:       map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Edit sets the value of a field. It clears that field's error and, if a submission
// message is showing, returns the form to idle. Errors of other fields are kept.
func (f *Form) Edit(field Field, value string) {
	f.mu.Lock()
	f.values.Set(field, value)
	delete(f.errors, field)
	f.cancelHide()
	if f.submission.Status != StatusIdle {
		f.submission = Submission{Status: StatusIdle}
	}
	snap, subs := f.snapshotLocked(), f.subscribers()
	f.mu.Unlock()

	notify(subs, snap)
}

// Submit validates the form and, if valid, sends it once. It blocks until the
// request settles. A *ValidationError is returned when fields fail and nothing is sent.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.cancelHide()
	errs := Validate(f.values)
	f.errors = errs
	if !errs.OK() {
		snap, subs := f.snapshotLocked(), f.subscribers()
		f.mu.Unlock()
		notify(subs, snap)
		return &ValidationError{Errors: errs.clone()}
	}
	f.submission = Submission{Status: StatusLoading}
	f.inFlight = true
	payload := f.values
	snap, subs := f.snapshotLocked(), f.subscribers()
	f.mu.Unlock()
	notify(subs, snap)

	msg, sendErr := f.sender.Send(ctx, payload)

	f.mu.Lock()
	f.inFlight = false
	if sendErr != nil {
		f.submission = Submission{Status: StatusError, Message: failureMessage(sendErr)}
		f.log.Logf("[WARN] contact form submission failed: %v", sendErr)
	} else {
		if msg == "" {
			msg = DefaultSuccessMessage
		}
		f.submission = Submission{Status: StatusSuccess, Message: msg}
		f.values = Values{}
		f.errors = Errors{}
		f.scheduleHide()
		f.log.Logf("[DEBUG] contact form submitted for %s", payload.Email)
	}
	snap, subs = f.snapshotLocked(), f.subscribers()
	f.mu.Unlock()
	notify(subs, snap)

	if sendErr != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, sendErr)
	}
	return nil
}

// failureMessage picks the most specific message carried by err.
func failureMessage(err error) string {
	var re *RelayError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return DefaultFailureMessage
}

// cancelHide stops a pending auto-hide and invalidates any callback already fired. Caller holds the lock.
func (f *Form) cancelHide() {
	f.gen++
	if f.hide != nil {
		f.hide.Stop()
		f.hide = nil
	}
}

// scheduleHide arms the auto-hide timer for the current generation. Caller holds the lock.
func (f *Form) scheduleHide() {
	f.cancelHide()
	gen := f.gen
	f.hide = f.clock.AfterFunc(f.autoHide, func() {
		f.mu.Lock()
		if f.gen != gen || f.submission.Status != StatusSuccess {
			f.mu.Unlock()
			return
		}
		f.submission = Submission{Status: StatusIdle}
		f.hide = nil
		snap, subs := f.snapshotLocked(), f.subscribers()
		f.mu.Unlock()
		notify(subs, snap)
	})
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Values:     f.values,
		Errors:     f.errors.clone(),
		Submission: f.submission,
		CanSubmit:  !f.inFlight,
	}
}

// Subscribe registers fn to be called after every state change. The returned func cancels it.
func (f *Form) Subscribe(fn func(Snapshot)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubID++
	id := f.nextSubID
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

func (f *Form) subscribers() []func(Snapshot) {
	res := make([]func(Snapshot), 0, len(f.subs))
	for id := 1; id <= f.nextSubID; id++ {
		if fn, ok := f.subs[id]; ok {
			res = append(res, fn)
		}
	}
	return res
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}

// Package controller owns the single in-flight extraction request. It
// enforces the single-flight invariant: at most one session is pending at
// any instant, and a cancelled session never settles as success or failure
// even if its response arrives later.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/studiowebux/extractcli/internal/notify"
	"github.com/studiowebux/extractcli/internal/types"
	"github.com/studiowebux/extractcli/internal/validate"
)

// Validation errors reported synchronously by Submit, before any network
// call is issued.
var (
	ErrInvalidAPIKey = errors.New("API key must be at least 10 characters")
	ErrInvalidQuery  = errors.New("query must be at least 2 characters")
	ErrInvalidFormat = errors.New("format must be audio or video")
)

// CancelledMessage is the warning shown when a session is cancelled, whether
// by the user or by a superseding submit.
const CancelledMessage = "Request cancelled"

// State is a session's lifecycle state. Pending is the only non-terminal
// state; the three terminal states are mutually exclusive.
type State int

const (
	StatePending State = iota
	StateSuccess
	StateFailure
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "settled-success"
	case StateFailure:
		return "settled-failure"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session is one logical request attempt, from issue to settlement. Owned
// exclusively by the controller; its state only changes under the
// controller's lock.
type Session struct {
	ID     int64
	Query  string
	Format string

	cancel context.CancelFunc
	state  State
}

// Extractor issues the actual extraction call. Cancelling the context aborts
// the request in flight.
type Extractor interface {
	Extract(ctx context.Context, apiKey, query, format string, force bool) (*types.ExtractionResult, error)
}

// Sink receives settlement outcomes. Exactly one of RenderSuccess or
// RenderFailure is called per settled session; cancelled sessions only
// produce a Notify call.
type Sink interface {
	RenderSuccess(session *Session, result *types.ExtractionResult)
	RenderFailure(session *Session, message string)
	Notify(message string, severity notify.Severity)
}

// Controller issues, cancels, and settles extraction sessions against a
// single Extractor. Safe for concurrent use; settlement from the request
// goroutine and cancellation from the UI loop serialize on one mutex.
type Controller struct {
	mu        sync.Mutex
	extractor Extractor
	sink      Sink
	nextID    int64
	current   *Session
}

// New creates a controller dispatching outcomes to sink.
func New(extractor Extractor, sink Sink) *Controller {
	return &Controller{extractor: extractor, sink: sink}
}

// Submit validates the inputs and, if they pass, issues a new session.
// A pending session is cancelled exactly once before the new one is
// installed, so at most one session is pending system-wide. Validation
// failures are reported synchronously through the sink and issue no network
// call — and leave any pending session untouched.
func (c *Controller) Submit(apiKey, query, format string, force bool) (*Session, error) {
	if err := c.validateInput(apiKey, query, format); err != nil {
		c.sink.Notify(err.Error(), notify.SeverityError)
		return nil, err
	}

	c.mu.Lock()
	superseded := c.current != nil
	if superseded {
		c.cancelCurrentLocked()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.nextID++
	session := &Session{
		ID:     c.nextID,
		Query:  query,
		Format: format,
		cancel: cancel,
		state:  StatePending,
	}
	c.current = session
	c.mu.Unlock()

	if superseded {
		c.sink.Notify(CancelledMessage, notify.SeverityWarning)
	}
	go c.run(ctx, session, apiKey, force)
	return session, nil
}

// CancelCurrent cancels the pending session, if any. With no pending session
// it is a no-op: no notification is emitted. Returns whether a session was
// cancelled.
func (c *Controller) CancelCurrent() bool {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return false
	}
	c.cancelCurrentLocked()
	c.mu.Unlock()
	c.sink.Notify(CancelledMessage, notify.SeverityWarning)
	return true
}

// Pending reports whether a session is currently pending.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// StateOf returns the session's current state.
func (c *Controller) StateOf(session *Session) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.state
}

func (c *Controller) validateInput(apiKey, query, format string) error {
	if !validate.APIKey(apiKey) {
		return ErrInvalidAPIKey
	}
	if !validate.Query(query) {
		return ErrInvalidQuery
	}
	if !validate.Format(format) {
		return ErrInvalidFormat
	}
	return nil
}

// cancelCurrentLocked transitions the current session to cancelled, fires
// its cancel token, and clears the slot. Callers hold c.mu and emit the
// cancelled notification after unlocking; the session's own goroutine will
// observe the terminal state and drop its outcome.
func (c *Controller) cancelCurrentLocked() {
	session := c.current
	session.state = StateCancelled
	session.cancel()
	c.current = nil
}

// run executes the request off the UI loop and settles the session.
func (c *Controller) run(ctx context.Context, session *Session, apiKey string, force bool) {
	defer session.cancel()
	result, err := c.extractor.Extract(ctx, apiKey, session.Query, session.Format, force)
	c.settle(session, result, err)
}

// settle transitions a pending session to its terminal state and dispatches
// the outcome. The state check under the lock makes the late-response race
// explicit: a session cancelled before its response arrived is already
// terminal and the outcome is dropped, regardless of whether the transport
// honored the cancellation.
func (c *Controller) settle(session *Session, result *types.ExtractionResult, err error) {
	c.mu.Lock()
	if session.state != StatePending {
		c.mu.Unlock()
		return
	}
	if err != nil {
		session.state = StateFailure
	} else {
		session.state = StateSuccess
	}
	// The current-request slot must never retain a settled handle.
	if c.current == session {
		c.current = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.sink.RenderFailure(session, err.Error())
		return
	}
	c.sink.RenderSuccess(session, result)
}

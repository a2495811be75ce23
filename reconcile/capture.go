package reconcile

import (
	"context"
	"errors"
	"sync"

	"github.com/clubedopeao/tournament-api/models"
)

// CaptureState is the phase of the result confirmation flow for one pairing.
type CaptureState string

const (
	CaptureIdle     CaptureState = "idle"
	CaptureAwaiting CaptureState = "awaiting_confirmation"
	CaptureSubmit   CaptureState = "submitting"
)

var (
	ErrNothingPending = errors.New("no result selection pending")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrPairingIsBye   = errors.New("bye pairings take no result")
	ErrPairingNoWhite = errors.New("pairing has no white player")
)

// Submitter performs the actual remote mutation for a confirmed selection.
type Submitter func(ctx context.Context, pairing models.Pairing, code ResultCode) error

// Capture is the confirmation state machine guarding one pairing: a result
// choice must be explicitly confirmed before the mutation is issued, and at
// most one submission can be in flight. Cancel, success and failure all
// return the machine to idle.
type Capture struct {
	mu      sync.Mutex
	state   CaptureState
	pairing models.Pairing
	code    ResultCode
}

func NewCapture() *Capture {
	return &Capture{state: CaptureIdle}
}

func (c *Capture) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the held selection while awaiting confirmation.
func (c *Capture) Pending() (models.Pairing, ResultCode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CaptureIdle {
		return models.Pairing{}, "", false
	}
	return c.pairing, c.code, true
}

// Pick records a result choice for a pending pairing and moves to
// awaiting-confirmation. Byes and malformed pairings are rejected before any
// state changes; picking while a submission is in flight is rejected too.
func (c *Capture) Pick(pairing models.Pairing, code ResultCode) error {
	if !code.Valid() {
		return ErrInvalidResultCode
	}
	if pairing.IsBye() {
		return ErrPairingIsBye
	}
	if pairing.White == nil {
		return ErrPairingNoWhite
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CaptureSubmit {
		return ErrSubmitInFlight
	}
	// Re-picking while awaiting replaces the selection, matching a user
	// tapping a different result button before confirming.
	c.state = CaptureAwaiting
	c.pairing = pairing
	c.code = code
	return nil
}

// Cancel discards the pending selection. Cancelling an idle machine is a
// no-op; cancelling mid-submission is rejected.
func (c *Capture) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CaptureSubmit {
		return ErrSubmitInFlight
	}
	c.state = CaptureIdle
	c.pairing = models.Pairing{}
	c.code = ""
	return nil
}

// Confirm issues exactly one remote mutation for the pending selection. The
// machine sits in submitting for the duration of the call, which blocks a
// duplicate confirmation of the same pairing, and returns to idle whether
// the call succeeds or fails. The submitter's error is returned untranslated.
func (c *Capture) Confirm(ctx context.Context, submit Submitter) error {
	c.mu.Lock()
	switch c.state {
	case CaptureIdle:
		c.mu.Unlock()
		return ErrNothingPending
	case CaptureSubmit:
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	pairing, code := c.pairing, c.code
	c.state = CaptureSubmit
	c.mu.Unlock()

	err := submit(ctx, pairing, code)

	c.mu.Lock()
	c.state = CaptureIdle
	c.pairing = models.Pairing{}
	c.code = ""
	c.mu.Unlock()

	return err
}

package registration

import (
	"context"

	"github.com/zjrosen/signup/internal/log"
)

// Submission is handed out by Begin and must be passed back to Resolve.
type Submission struct {
	Attempt int
	Payload Payload
}

// Controller is the sign-up state machine for one form instance.
//
// Controller is owned by a single goroutine (the Bubble Tea update loop or a
// command's RunE) and is not safe for concurrent use.
type Controller struct {
	fields   Fields
	status   Status
	attempts int
	lastErr  error
}

// NewController creates a controller with empty fields in StatusIdle.
func NewController() *Controller {
	return &Controller{}
}

// Fields returns a copy of the current input.
func (c *Controller) Fields() Fields {
	return c.fields
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	return c.status
}

// Attempts returns how many submissions have been started.
func (c *Controller) Attempts() int {
	return c.attempts
}

// Err returns the error of the most recent failed submission, or nil.
func (c *Controller) Err() error {
	return c.lastErr
}

// SetField updates one input. Edits are accepted in every status; once the
// form has succeeded they simply have no visible effect.
func (c *Controller) SetField(field Field, value string) {
	c.fields = c.fields.With(field, value)
}

// SetFields replaces all inputs at once.
func (c *Controller) SetFields(f Fields) {
	c.fields = f
}

// CanSubmit applies the enablement rule to the current fields.
func (c *Controller) CanSubmit() bool {
	return CanSubmit(c.fields)
}

// SubmitEnabled is the predicate for the submit control: the rule holds and
// no submission is in flight or already succeeded.
func (c *Controller) SubmitEnabled() bool {
	return c.CanSubmit() && c.status != StatusInProgress && c.status != StatusSucceeded
}

// ShowProgress reports whether a progress indicator should be visible.
func (c *Controller) ShowProgress() bool {
	return c.status == StatusInProgress
}

// ShowConfirmation reports whether the activation notice should be visible.
func (c *Controller) ShowConfirmation() bool {
	return c.status == StatusSucceeded
}

// ShowInputs reports whether the input surface should be visible.
func (c *Controller) ShowInputs() bool {
	return c.status != StatusSucceeded
}

// Begin starts a submission cycle. It returns false without touching any
// state when the form cannot be submitted or a submission is in flight or
// already succeeded. On success the status is InProgress before Begin
// returns, so repeated triggers during the in-flight window are no-ops.
func (c *Controller) Begin() (Submission, bool) {
	if !c.SubmitEnabled() {
		log.Debug(log.CatForm, "Submit ignored",
			"status", c.status, "can_submit", c.CanSubmit())
		return Submission{}, false
	}

	c.attempts++
	c.status = StatusInProgress
	c.lastErr = nil
	log.Info(log.CatForm, "Submission started", "attempt", c.attempts)

	return Submission{Attempt: c.attempts, Payload: c.fields.Payload()}, true
}

// Resolve applies the outcome of a submission. A nil err means success.
// Results for anything but the in-flight submission are dropped.
func (c *Controller) Resolve(sub Submission, err error) Status {
	if c.status != StatusInProgress || sub.Attempt != c.attempts {
		log.Warn(log.CatForm, "Dropping stale result",
			"attempt", sub.Attempt, "current", c.attempts, "status", c.status)
		return c.status
	}

	if err != nil {
		c.status = StatusFailed
		c.lastErr = err
		log.ErrorErr(log.CatForm, "Submission failed", err, "attempt", sub.Attempt)
		return c.status
	}

	c.status = StatusSucceeded
	log.Info(log.CatForm, "Submission succeeded", "attempt", sub.Attempt)
	return c.status
}

// Submit runs a whole cycle synchronously against r. It returns the status
// after the cycle, or the unchanged status when Begin refused.
func (c *Controller) Submit(ctx context.Context, r Registrar) Status {
	sub, ok := c.Begin()
	if !ok {
		return c.status
	}
	return c.Resolve(sub, r.Register(ctx, sub.Payload))
}

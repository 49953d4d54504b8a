// Package contactform is the client side of the contact form: it owns field
// values, validates them locally, and drives one submission at a time
// against the contact endpoint.
package contactform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"corvus-contact/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// DefaultResetDelay is how long Succeeded is shown before returning to Idle
const DefaultResetDelay = 5 * time.Second

var (
	ErrSubmitInProgress = errors.New("contactform: a submission is already in progress")
	ErrValidation       = errors.New("contactform: fields did not pass validation")
)

// Controller manages one form instance. It is safe for concurrent use, but
// accepts only one in-flight submission.
type Controller struct {
	endpoint   string
	client     *resty.Client
	validate   *validator.Validate
	log        *slog.Logger
	resetDelay time.Duration
	onChange   func(Status)

	mu     sync.Mutex
	fields Fields
	errs   FieldErrors
	status Status
	gen    uint64 // incremented on every transition; stale reset timers compare against it
	timer  *time.Timer
}

type Option func(*Controller)

// WithHTTPClient replaces the default resty client
func WithHTTPClient(c *resty.Client) Option {
	return func(ctl *Controller) { ctl.client = c }
}

// WithResetDelay overrides DefaultResetDelay
func WithResetDelay(d time.Duration) Option {
	return func(ctl *Controller) { ctl.resetDelay = d }
}

func WithValidator(v *validator.Validate) Option {
	return func(ctl *Controller) { ctl.validate = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// WithOnChange registers a callback invoked after every status transition,
// outside the controller's lock
func WithOnChange(fn func(Status)) Option {
	return func(ctl *Controller) { ctl.onChange = fn }
}

// New creates a controller posting to endpoint, e.g. https://corvusbpo.com/api/contact
func New(endpoint string, opts ...Option) *Controller {
	c := &Controller{
		endpoint:   endpoint,
		resetDelay: DefaultResetDelay,
		status:     Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		// No timeout or retries: the transport defaults apply
		c.client = resty.New()
	}
	if c.validate == nil {
		c.validate = validation.New()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Status returns the current submission status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Fields returns a copy of the current field values
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Errors returns the inline errors from the last validation
func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.clone()
}

// SetField updates a field value. A field that already shows an error is
// re-validated so the message clears as soon as the input is fixed.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fields.set(name, value); err != nil {
		return err
	}
	if _, shown := c.errs[name]; shown {
		fresh := Validate(c.validate, c.fields)
		if msg, ok := fresh[name]; ok {
			c.errs[name] = msg
		} else {
			delete(c.errs, name)
		}
	}
	return nil
}

// Validate runs local validation, records the result, and returns a copy of it
func (c *Controller) Validate() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = Validate(c.validate, c.fields)
	return c.errs.clone()
}

// Submit validates the fields and, if they pass, posts them once and waits
// for the outcome. Request failures end in Failed and are not returned as
// errors; the returned error is only ErrSubmitInProgress or ErrValidation,
// in which case no request was sent.
func (c *Controller) Submit(ctx context.Context) (Status, error) {
	c.mu.Lock()
	if !CanSubmit(c.status) {
		st := c.status
		c.mu.Unlock()
		return st, ErrSubmitInProgress
	}
	c.errs = Validate(c.validate, c.fields)
	if c.errs != nil {
		st := c.status
		c.mu.Unlock()
		return st, ErrValidation
	}
	payload := c.fields
	notify := c.transitionLocked(Submitting{})
	c.mu.Unlock()
	notify()

	next := c.send(ctx, payload)

	c.mu.Lock()
	if _, ok := next.(Succeeded); ok {
		c.fields = Fields{}
	}
	notify = c.transitionLocked(next)
	if _, ok := next.(Succeeded); ok {
		c.scheduleResetLocked()
	}
	c.mu.Unlock()
	notify()

	return next, nil
}

// Close stops a pending Succeeded to Idle transition
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) send(ctx context.Context, payload Fields) Status {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		c.log.Warn("contact submission failed", "error", err)
		return Failed{Reason: err.Error()}
	}
	if resp.IsSuccess() {
		return Succeeded{}
	}

	st := classifyFailure(resp.StatusCode(), resp.Body())
	c.log.Warn("contact submission rejected", "status", resp.StatusCode(), "reason", st.Reason)
	return st
}

// classifyFailure turns a non-2xx response into a Failed status. A JSON body
// with an error field supplies the reason; anything else (an HTML error page,
// say) only reports the status code.
func classifyFailure(code int, body []byte) Failed {
	var payload struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil && *payload.Error != "" {
		return Failed{Reason: *payload.Error}
	}
	return Failed{Reason: fmt.Sprintf("Server error: %d", code)}
}

// transitionLocked sets the status and returns the callback to run once the
// lock is released
func (c *Controller) transitionLocked(s Status) func() {
	c.status = s
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.onChange == nil {
		return func() {}
	}
	fn := c.onChange
	return func() { fn(s) }
}

func (c *Controller) scheduleResetLocked() {
	gen := c.gen
	c.timer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		notify := c.transitionLocked(Idle{})
		c.mu.Unlock()
		notify()
	})
}

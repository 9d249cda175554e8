package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/validation"
)

// SubmissionState drives the submit control's label and enablement.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

// Field names the seven required contact fields.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldCompany   Field = "company"
	FieldEmail     Field = "email"
	FieldCountry   Field = "country"
	FieldPhone     Field = "phone"
	FieldMessage   Field = "message"
)

// RequiredFields lists every field that must be non-empty before submit.
var RequiredFields = []Field{
	FieldFirstName, FieldLastName, FieldCompany,
	FieldEmail, FieldCountry, FieldPhone, FieldMessage,
}

// ErrInvalidForm is returned by Submit when the pre-send validity check
// fails; no delivery is attempted in that case.
var ErrInvalidForm = errors.New("form is not valid for submission")

// ErrUnknownField is returned by SetField for names outside the form.
var ErrUnknownField = errors.New("unknown form field")

const (
	emailErrorMessage = "Please enter a valid email address."
	phoneErrorMessage = "Please enter a valid phone number."
)

// NoticeKind distinguishes the transient success and error indicators.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the transient post-submit indicator. It auto-dismisses after a
// kind-dependent delay: errors linger longer so the user can decide on a
// retry.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Validity is the composite result of re-checking the current field state.
// EmailError and PhoneError carry inline messages only when they should be
// visible next to their fields.
type Validity struct {
	Complete   bool   `json:"complete"`
	EmailValid bool   `json:"email_valid"`
	PhoneValid bool   `json:"phone_valid"`
	CanSubmit  bool   `json:"can_submit"`
	EmailError string `json:"email_error,omitempty"`
	PhoneError string `json:"phone_error,omitempty"`
}

// Submitter delivers a validated form snapshot. The contact usecase
// implements it.
type Submitter interface {
	Submit(ctx context.Context, req *domain.ContactRequest) error
}

// SubmitterFunc adapts a plain function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, req *domain.ContactRequest) error

func (f SubmitterFunc) Submit(ctx context.Context, req *domain.ContactRequest) error {
	return f(ctx, req)
}

// Config tunes notice auto-dismiss delays; zero values take defaults.
type Config struct {
	SuccessDismiss time.Duration
	ErrorDismiss   time.Duration
}

// Controller owns one page view's form state: field values, the
// phone-interaction gate, the submission state machine, and the active
// notice. All mutable state lives on the instance; there are no
// package-level flags.
type Controller struct {
	mu              sync.Mutex
	fields          map[Field]string
	phoneInteracted bool
	state           SubmissionState
	callingCode     string
	notice          *Notice
	dismissTimer    *time.Timer
	submitter       Submitter
	successDismiss  time.Duration
	errorDismiss    time.Duration
}

// NewController creates a fresh controller in the Idle state with all
// fields blank.
func NewController(submitter Submitter, cfg Config) *Controller {
	if cfg.SuccessDismiss <= 0 {
		cfg.SuccessDismiss = 3 * time.Second
	}
	if cfg.ErrorDismiss <= 0 {
		cfg.ErrorDismiss = 5 * time.Second
	}

	fields := make(map[Field]string, len(RequiredFields))
	for _, f := range RequiredFields {
		fields[f] = ""
	}

	return &Controller{
		fields:         fields,
		state:          StateIdle,
		submitter:      submitter,
		successDismiss: cfg.SuccessDismiss,
		errorDismiss:   cfg.ErrorDismiss,
	}
}

// SetField records a user edit. Editing while a submission is in flight
// restores the submit control from its "sending" state immediately; the
// outstanding request still resolves on its own.
func (c *Controller) SetField(field Field, value string) (Validity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fields[field]; !ok {
		return Validity{}, ErrUnknownField
	}

	c.fields[field] = strings.TrimSpace(value)
	if field == FieldPhone {
		c.phoneInteracted = true
	}
	if c.state != StateIdle {
		c.state = StateIdle
	}

	return c.evaluate(), nil
}

// TouchPhone marks the phone field as interacted with (focus event). The
// gate keeps an untouched field from being flagged invalid, e.g. right
// after an auto-prefill.
func (c *Controller) TouchPhone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phoneInteracted = true
}

// Prefill applies a geolocation lookup result: country selector set to the
// code, phone pre-populated with the dialing prefix. It does not trip the
// phone interaction gate.
func (c *Controller) Prefill(countryCode, callingCode string) Validity {
	c.mu.Lock()
	defer c.mu.Unlock()

	if countryCode != "" {
		c.fields[FieldCountry] = countryCode
	}
	if callingCode != "" {
		c.callingCode = callingCode
		if c.fields[FieldPhone] == "" {
			c.fields[FieldPhone] = callingCode
		}
	}

	return c.evaluate()
}

// Evaluate recomputes validity from the current field state.
func (c *Controller) Evaluate() Validity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluate()
}

func (c *Controller) evaluate() Validity {
	v := Validity{Complete: true}

	for _, f := range RequiredFields {
		if c.fields[f] == "" {
			v.Complete = false
			break
		}
	}

	email := c.fields[FieldEmail]
	phone := c.fields[FieldPhone]
	v.EmailValid = validation.ValidEmail(email)
	v.PhoneValid = validation.ValidPhone(phone, c.callingCode)

	if email != "" && !v.EmailValid {
		v.EmailError = emailErrorMessage
	}
	if phone != "" && !v.PhoneValid && c.phoneInteracted {
		v.PhoneError = phoneErrorMessage
	}

	v.CanSubmit = v.Complete && v.EmailValid && v.PhoneValid && c.state != StateSubmitting
	return v
}

// Snapshot copies the current field values into a ContactRequest.
func (c *Controller) Snapshot() *domain.ContactRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() *domain.ContactRequest {
	return &domain.ContactRequest{
		FirstName: c.fields[FieldFirstName],
		LastName:  c.fields[FieldLastName],
		Company:   c.fields[FieldCompany],
		Email:     c.fields[FieldEmail],
		Country:   c.fields[FieldCountry],
		Phone:     c.fields[FieldPhone],
		Message:   c.fields[FieldMessage],
	}
}

// Submit re-validates synchronously, then delivers the snapshot. An invalid
// form aborts before any delivery attempt. Success clears all fields and
// schedules a success notice; failure leaves the form editable for a
// user-initiated retry and schedules an error notice.
func (c *Controller) Submit(ctx context.Context) (Validity, error) {
	c.mu.Lock()
	if v := c.evaluate(); !v.CanSubmit {
		c.mu.Unlock()
		return v, ErrInvalidForm
	}
	c.state = StateSubmitting
	req := c.snapshot()
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailed
		c.setNotice(NoticeError, "Something went wrong. Please try again.", c.errorDismiss)
		return c.evaluate(), err
	}

	for _, f := range RequiredFields {
		c.fields[f] = ""
	}
	c.phoneInteracted = false
	c.state = StateSucceeded
	c.setNotice(NoticeSuccess, "Thank you! Your message has been sent.", c.successDismiss)
	return c.evaluate(), nil
}

// setNotice replaces any active notice and (re)arms its dismiss timer.
// Callers hold c.mu.
func (c *Controller) setNotice(kind NoticeKind, message string, after time.Duration) {
	if c.dismissTimer != nil {
		c.dismissTimer.Stop()
	}
	c.notice = &Notice{Kind: kind, Message: message}
	c.dismissTimer = time.AfterFunc(after, c.Dismiss)
}

// Dismiss hides the active notice. Safe to call any number of times.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dismissTimer != nil {
		c.dismissTimer.Stop()
		c.dismissTimer = nil
	}
	c.notice = nil
}

// State returns the current submission state.
func (c *Controller) State() SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Notice returns the active notice, or nil when none is showing.
func (c *Controller) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// View is the serializable snapshot handed to the session API.
type View struct {
	Fields   map[Field]string `json:"fields"`
	State    SubmissionState  `json:"state"`
	Validity Validity         `json:"validity"`
	Notice   *Notice          `json:"notice,omitempty"`
}

// View assembles a consistent snapshot of the whole controller.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := make(map[Field]string, len(c.fields))
	for f, val := range c.fields {
		fields[f] = val
	}

	var notice *Notice
	if c.notice != nil {
		n := *c.notice
		notice = &n
	}

	return View{
		Fields:   fields,
		State:    c.state,
		Validity: c.evaluate(),
		Notice:   notice,
	}
}

// Close releases the dismiss timer. Called when the owning session expires.
func (c *Controller) Close() {
	c.Dismiss()
}

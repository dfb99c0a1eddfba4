// Package workflow holds the request controllers behind the Advice and
// Search tabs. A controller owns the composer text, its validation, and a
// single request lifecycle: Idle -> Pending -> Succeeded | Failed.
//
// Controllers are not safe for concurrent use. The UI loop owns them and only
// hands Tickets to background work; outcomes come back through Resolve.
package workflow

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csheth/caseassist/internal/markup"
	"github.com/csheth/caseassist/internal/sanitize"
	"github.com/csheth/caseassist/internal/validate"
)

// Status is the request lifecycle state of a controller.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Ticket identifies one submission. ID is a staleness token: only the
// outcome carrying the ticket a controller is waiting on can settle it.
type Ticket struct {
	ID    string
	Input string
}

// Composer holds the sanitized input text and its live validation.
type Composer struct {
	text       string
	validation validate.Result
	touched    bool
}

// NewComposer returns an empty composer.
func NewComposer() Composer {
	return Composer{validation: validate.Check("")}
}

// SetText sanitizes raw, stores it, revalidates, and returns the stored text.
func (c *Composer) SetText(raw string) string {
	c.text = sanitize.Input(raw)
	c.validation = validate.Check(c.text)
	c.touched = true
	return c.text
}

// Text is the sanitized input as displayed.
func (c *Composer) Text() string { return c.text }

// Trimmed is the text that would be submitted.
func (c *Composer) Trimmed() string { return strings.TrimSpace(c.text) }

// Validation is the result for the current text.
func (c *Composer) Validation() validate.Result { return c.validation }

// VisibleError is the validation message to show, suppressed until the user
// has edited the text at least once.
func (c *Composer) VisibleError() string {
	if !c.touched {
		return ""
	}
	return c.validation.Message()
}

func (c *Composer) clear() {
	*c = NewComposer()
}

// lifecycle is the state shared by both controllers.
type lifecycle struct {
	Composer
	name    string
	status  Status
	ticket  Ticket
	failure string
	logger  *zap.Logger
}

func newLifecycle(name string, logger *zap.Logger) lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return lifecycle{
		Composer: NewComposer(),
		name:     name,
		status:   Idle,
		logger:   logger.Named(name),
	}
}

// Name identifies the workflow in logs and UI.
func (l *lifecycle) Name() string { return l.name }

// Status is the current lifecycle state.
func (l *lifecycle) Status() Status { return l.status }

// Pending reports whether a request is in flight.
func (l *lifecycle) Pending() bool { return l.status == Pending }

// Failure is the user-facing error message; empty unless Failed.
func (l *lifecycle) Failure() string { return l.failure }

// ButtonDisabled reports whether submitting is currently refused.
func (l *lifecycle) ButtonDisabled() bool {
	v := l.Validation()
	return l.status == Pending || !v.OK() || v.Length == 0
}

func (l *lifecycle) begin() (Ticket, bool) {
	if l.ButtonDisabled() {
		l.logger.Debug("submit refused",
			zap.Stringer("status", l.status),
			zap.Stringer("validation", l.Validation().Kind),
		)
		return Ticket{}, false
	}
	l.ticket = Ticket{ID: uuid.NewString(), Input: l.Trimmed()}
	l.status = Pending
	l.failure = ""
	l.logger.Debug("submitted", zap.String("ticket", l.ticket.ID), zap.Int("length", l.Validation().Length))
	return l.ticket, true
}

func (l *lifecycle) accepts(t Ticket) bool {
	if l.status != Pending || t.ID == "" || t.ID != l.ticket.ID {
		l.logger.Info("discarding stale outcome",
			zap.String("ticket", t.ID),
			zap.String("waiting_on", l.ticket.ID),
			zap.Stringer("status", l.status),
		)
		return false
	}
	return true
}

func (l *lifecycle) fail(msg string, err error) {
	l.status = Failed
	l.failure = markup.StripControl(msg)
	l.logger.Info("request failed", zap.String("ticket", l.ticket.ID), zap.String("message", msg), zap.Error(err))
}

func (l *lifecycle) succeed() {
	l.status = Succeeded
	l.failure = ""
	l.logger.Debug("request succeeded", zap.String("ticket", l.ticket.ID))
}

func (l *lifecycle) reset() bool {
	if l.status == Pending {
		return false
	}
	l.Composer.clear()
	l.status = Idle
	l.failure = ""
	l.ticket = Ticket{}
	return true
}

// Controller is the surface the UI drives for either workflow.
type Controller interface {
	Name() string
	Status() Status
	Pending() bool
	Failure() string
	ButtonDisabled() bool
	Label() string
	SetText(raw string) string
	Text() string
	Trimmed() string
	Validation() validate.Result
	VisibleError() string
	Submit() (Ticket, bool)
	Reset() bool
}

var (
	_ Controller = (*Advice)(nil)
	_ Controller = (*Search)(nil)
)

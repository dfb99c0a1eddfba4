package workflow

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/csheth/caseassist/internal/backend"
	"github.com/csheth/caseassist/internal/markup"
)

const (
	adviceFailurePrefix = "Something went wrong. "
	adviceTransportText = "Please try again."
	adviceEmptyText     = "Request failed"
)

// AdvicePayload is a settled advice response ready for display.
type AdvicePayload struct {
	Query         string
	RawText       string
	FormattedHTML string
	Document      markup.Document
	Sources       []string
}

// AdviceOutcome is what the background call hands back to Resolve.
type AdviceOutcome struct {
	Ticket   Ticket
	Response backend.AskResponse
	Err      error
}

// Advice is the controller behind the advice tab.
type Advice struct {
	lifecycle
	payload *AdvicePayload
}

// NewAdvice returns an idle advice controller.
func NewAdvice(logger *zap.Logger) *Advice {
	return &Advice{lifecycle: newLifecycle("advice", logger)}
}

// Label is the submit button text.
func (a *Advice) Label() string {
	if a.Pending() {
		return "Thinking..."
	}
	return "Ask for Advice"
}

// Submit starts a request for the trimmed input. It returns false and
// changes nothing while a request is pending or the input is invalid.
func (a *Advice) Submit() (Ticket, bool) {
	ticket, ok := a.begin()
	if ok {
		a.payload = nil
	}
	return ticket, ok
}

// RunAdvice performs the backend call for ticket. It touches no controller
// state and is meant to run off the UI loop.
func RunAdvice(ctx context.Context, client backend.Client, ticket Ticket) AdviceOutcome {
	resp, err := client.Ask(ctx, ticket.Input)
	return AdviceOutcome{Ticket: ticket, Response: resp, Err: err}
}

// Resolve settles the pending request. Outcomes for any other ticket are
// dropped and Resolve reports false.
func (a *Advice) Resolve(outcome AdviceOutcome) bool {
	if !a.accepts(outcome.Ticket) {
		return false
	}
	if outcome.Err != nil {
		if backend.IsDomain(outcome.Err) {
			a.fail(adviceFailurePrefix+backend.Detail(outcome.Err), outcome.Err)
		} else {
			a.fail(adviceFailurePrefix+adviceTransportText, outcome.Err)
		}
		return true
	}
	if strings.TrimSpace(outcome.Response.Result) == "" {
		a.fail(adviceFailurePrefix+adviceEmptyText, nil)
		return true
	}
	doc := markup.ParseAdvice(outcome.Response.Result)
	a.payload = &AdvicePayload{
		Query:         outcome.Ticket.Input,
		RawText:       outcome.Response.Result,
		FormattedHTML: markup.RenderHTML(doc),
		Document:      doc,
		Sources:       dedupeSources(outcome.Response.Sources),
	}
	a.succeed()
	return true
}

// Payload returns the advice when the last request succeeded.
func (a *Advice) Payload() (AdvicePayload, bool) {
	if a.status != Succeeded || a.payload == nil {
		return AdvicePayload{}, false
	}
	return *a.payload, true
}

// Reset clears input, result and error. It is refused while pending.
func (a *Advice) Reset() bool {
	if !a.reset() {
		return false
	}
	a.payload = nil
	return true
}

// dedupeSources keeps the first occurrence of every non-blank source.
func dedupeSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		src = markup.StripControl(src)
		if strings.TrimSpace(src) == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/caseassist/internal/backend"
	"github.com/csheth/caseassist/internal/workflow"
)

// The runners only touch the ticket and the client; controller state is
// settled back on the UI loop when the result message arrives.

func adviceJob(client backend.Client, ticket workflow.Ticket) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		outcome := workflow.RunAdvice(ctx, client, ticket)
		return adviceResultMsg{outcome: outcome}, outcome.Err
	}
}

func searchJob(client backend.Client, ticket workflow.Ticket) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		outcome := workflow.RunSearch(ctx, client, ticket)
		return searchResultMsg{outcome: outcome}, outcome.Err
	}
}

func (m *model) submitActive() tea.Cmd {
	ctrl := m.controller(m.active)
	if m.config.Backend == nil {
		m.infoMessage = "No backend configured."
		return nil
	}
	var (
		ticket workflow.Ticket
		ok     bool
	)
	switch m.active {
	case tabSearch:
		ticket, ok = m.search.Submit()
	default:
		ticket, ok = m.advice.Submit()
	}
	if !ok {
		m.infoMessage = refusalMessage(ctrl)
		return nil
	}
	m.infoMessage = ""
	m.hitCursor = 0
	m.markViewportDirty()
	m.viewport.GotoTop()

	var runner jobRunner
	kind := jobKindAdvice
	if m.active == tabSearch {
		kind = jobKindSearch
		runner = searchJob(m.config.Backend, ticket)
	} else {
		runner = adviceJob(m.config.Backend, ticket)
	}
	return tea.Batch(m.spinner.Tick, m.jobs.Start(kind, runner))
}

func refusalMessage(ctrl workflow.Controller) string {
	if ctrl.Pending() {
		return "A request is already in progress."
	}
	if msg := ctrl.Validation().Message(); msg != "" {
		return msg
	}
	return "Type something first."
}

func (m *model) resetActive() {
	ctrl := m.controller(m.active)
	if !ctrl.Reset() {
		m.infoMessage = "Wait for the current request to finish."
		return
	}
	input := m.input(m.active)
	input.Reset()
	if m.active == tabSearch {
		m.hitCursor = 0
	}
	m.infoMessage = ""
	m.markViewportDirty()
}

func (m *model) moveHitCursor(delta int) {
	if m.active != tabSearch {
		return
	}
	payload, ok := m.search.Payload()
	if !ok || len(payload.Hits) == 0 {
		return
	}
	next := m.hitCursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(payload.Hits) {
		next = len(payload.Hits) - 1
	}
	if next == m.hitCursor {
		return
	}
	m.hitCursor = next
	m.markViewportDirty()
	m.pendingFocusHit = true
}

func (m *model) toggleSelectedHit() {
	if m.active != tabSearch {
		return
	}
	view, ok := m.search.HitView(m.hitCursor)
	if !ok || !view.Truncated {
		return
	}
	if m.search.Toggle(m.hitCursor) {
		m.markViewportDirty()
		m.pendingFocusHit = true
	}
}

package tui

import "github.com/csheth/caseassist/internal/workflow"

type tab int

const (
	tabAdvice tab = iota
	tabSearch
)

var tabSequence = []tab{tabAdvice, tabSearch}

func (t tab) title() string {
	switch t {
	case tabSearch:
		return "Search Examples"
	default:
		return "LLM Suggestion"
	}
}

const heroTagline = "Describe your case. Get a suggestion or similar examples."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	adviceComposerHeight      = 4
	searchComposerHeight      = 2
)

const (
	composerAdvicePlaceholder = "Describe the case you need advice on…"
	composerSearchPlaceholder = "Search similar cases…"
)

type adviceResultMsg struct {
	outcome workflow.AdviceOutcome
}

type searchResultMsg struct {
	outcome workflow.SearchOutcome
}

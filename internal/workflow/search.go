package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/csheth/caseassist/internal/backend"
	"github.com/csheth/caseassist/internal/expansion"
	"github.com/csheth/caseassist/internal/markup"
)

const (
	searchFailurePrefix = "Failed to fetch results. "
	noResults           = "No results found."
)

// Hit is one search result.
type Hit struct {
	Content string
	Source  string
}

// SearchPayload is a settled, non-empty search response in backend order.
type SearchPayload struct {
	Query string
	Hits  []Hit
}

// SearchOutcome is what the background call hands back to Resolve.
type SearchOutcome struct {
	Ticket   Ticket
	Response backend.SearchResponse
	Err      error
}

// HitView is the derived display state of one hit.
type HitView struct {
	Index     int
	Hit       Hit
	Document  markup.Document
	Truncated bool
	Expanded  bool
}

// ToggleLabel is the expand/collapse affordance, empty when the hit fits.
func (v HitView) ToggleLabel() string {
	switch {
	case !v.Truncated:
		return ""
	case v.Expanded:
		return "Show less"
	default:
		return "Read more"
	}
}

// Search is the controller behind the search tab.
type Search struct {
	lifecycle
	payload  *SearchPayload
	expanded expansion.Set
}

// NewSearch returns an idle search controller.
func NewSearch(logger *zap.Logger) *Search {
	return &Search{lifecycle: newLifecycle("search", logger)}
}

// Label is the submit button text.
func (s *Search) Label() string {
	if s.Pending() {
		return "Searching..."
	}
	return "Search"
}

// Submit starts a search for the trimmed input. It returns false and changes
// nothing while a request is pending or the input is invalid.
func (s *Search) Submit() (Ticket, bool) {
	ticket, ok := s.begin()
	if ok {
		s.payload = nil
		s.expanded = expansion.Set{}
	}
	return ticket, ok
}

// RunSearch performs the backend call for ticket. It touches no controller
// state and is meant to run off the UI loop.
func RunSearch(ctx context.Context, client backend.Client, ticket Ticket) SearchOutcome {
	resp, err := client.Search(ctx, ticket.Input)
	return SearchOutcome{Ticket: ticket, Response: resp, Err: err}
}

// Resolve settles the pending search. Outcomes for any other ticket are
// dropped and Resolve reports false.
func (s *Search) Resolve(outcome SearchOutcome) bool {
	if !s.accepts(outcome.Ticket) {
		return false
	}
	if outcome.Err != nil {
		s.fail(searchFailurePrefix+backend.Detail(outcome.Err), outcome.Err)
		return true
	}
	hits := mapHits(outcome.Response.Results)
	if dropped := len(outcome.Response.Results) - len(hits); dropped > 0 {
		s.logger.Warn("dropped malformed hits", zap.Int("dropped", dropped))
	}
	if len(hits) == 0 {
		s.fail(noResults, nil)
		return true
	}
	s.payload = &SearchPayload{Query: outcome.Ticket.Input, Hits: hits}
	s.expanded = expansion.Set{}
	s.succeed()
	return true
}

func mapHits(raw []backend.RawHit) []Hit {
	hits := make([]Hit, 0, len(raw))
	for _, r := range raw {
		if r.PageContent == nil {
			continue
		}
		hits = append(hits, Hit{Content: *r.PageContent, Source: markup.StripControl(r.Source)})
	}
	return hits
}

// Payload returns the hits when the last search succeeded.
func (s *Search) Payload() (SearchPayload, bool) {
	if s.status != Succeeded || s.payload == nil {
		return SearchPayload{}, false
	}
	return *s.payload, true
}

// Expanded returns the current expansion set. The returned value is never
// mutated by later toggles.
func (s *Search) Expanded() expansion.Set {
	return s.expanded
}

// Toggle flips whether hit index is shown in full. It reports false when
// there is no such hit.
func (s *Search) Toggle(index int) bool {
	payload, ok := s.Payload()
	if !ok || index < 0 || index >= len(payload.Hits) {
		return false
	}
	s.expanded = s.expanded.Toggle(index)
	return true
}

// HitView derives the display state for hit index.
func (s *Search) HitView(index int) (HitView, bool) {
	payload, ok := s.Payload()
	if !ok || index < 0 || index >= len(payload.Hits) {
		return HitView{}, false
	}
	hit := payload.Hits[index]
	expanded := s.expanded.IsExpanded(index)
	return HitView{
		Index:     index,
		Hit:       hit,
		Document:  markup.ParseHit(hit.Content, expanded),
		Truncated: markup.HitTruncated(hit.Content),
		Expanded:  expanded,
	}, true
}

// HitViews derives display state for every hit in order.
func (s *Search) HitViews() []HitView {
	payload, ok := s.Payload()
	if !ok {
		return nil
	}
	views := make([]HitView, 0, len(payload.Hits))
	for i := range payload.Hits {
		view, _ := s.HitView(i)
		views = append(views, view)
	}
	return views
}

// Reset clears input, results, expansion and error. It is refused while pending.
func (s *Search) Reset() bool {
	if !s.reset() {
		return false
	}
	s.payload = nil
	s.expanded = expansion.Set{}
	return true
}

package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/caseassist/internal/markup"
	"github.com/csheth/caseassist/internal/workflow"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	composerHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		composerHeight: adviceComposerHeight,
	}
}

func (l *pageLayout) Update(width, height, composerHeight int) {
	l.windowWidth = width
	l.windowHeight = height
	l.composerHeight = composerHeight
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	// hero, tabs, counter, button, status, legend and the blank separators
	const chrome = 13
	const minViewportHeight = 5
	contentHeight := height - chrome - composerHeight
	if contentHeight < minViewportHeight {
		contentHeight = minViewportHeight
	}
	l.viewportHeight = contentHeight
}

func (l pageLayout) sized() bool {
	return l.windowWidth > 0 && l.windowHeight > 0
}

type resultsView struct {
	content  string
	hitLines map[int]int
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func (m *model) buildResults() resultsView {
	if m.active == tabSearch {
		return m.buildSearchResults()
	}
	return resultsView{content: m.buildAdviceResults()}
}

func (m *model) buildAdviceResults() string {
	cb := &contentBuilder{}
	payload, ok := m.advice.Payload()
	if !ok {
		cb.WriteString(helperStyle.Render(m.placeholderText(m.advice)))
		return cb.String()
	}
	cb.WriteString(sectionHeaderStyle.Render("Suggestion:"))
	cb.WriteRune('\n')
	cb.WriteString(helperStyle.Render(fmt.Sprintf("Asked: %q", payload.Query)))
	cb.WriteRune('\n')
	renderer := markup.NewRenderer(m.wrapWidth(0))
	cb.WriteString(renderer.Render(payload.Document))
	cb.WriteRune('\n')
	if len(payload.Sources) == 0 {
		return cb.String()
	}
	cb.WriteRune('\n')
	cb.WriteString(sectionHeaderStyle.Render("Sources:"))
	cb.WriteRune('\n')
	wrap := m.wrapWidth(2)
	for _, src := range payload.Sources {
		body := wordwrap.String(src, wrap)
		cb.WriteString(indentMultiline("• "+body, "  "))
		cb.WriteRune('\n')
	}
	return cb.String()
}

func (m *model) buildSearchResults() resultsView {
	cb := &contentBuilder{}
	hitLines := map[int]int{}
	payload, ok := m.search.Payload()
	if !ok {
		cb.WriteString(helperStyle.Render(m.placeholderText(m.search)))
		return resultsView{content: cb.String(), hitLines: hitLines}
	}
	cb.WriteString(helperStyle.Render(fmt.Sprintf("%d results for %q", len(payload.Hits), payload.Query)))
	cb.WriteRune('\n')
	renderer := markup.NewRenderer(m.wrapWidth(2))
	for _, view := range m.search.HitViews() {
		cb.WriteRune('\n')
		hitLines[view.Index] = cb.Line()
		cb.WriteString(m.hitHeading(view))
		cb.WriteRune('\n')
		cb.WriteString(indentMultiline(renderer.Render(view.Document), "  "))
		cb.WriteRune('\n')
		if label := view.ToggleLabel(); label != "" {
			if view.Index == m.hitCursor {
				label += " (ctrl+e)"
			}
			cb.WriteString(helperStyle.Render("  " + label))
			cb.WriteRune('\n')
		}
		if view.Hit.Source != "" {
			cb.WriteString(subjectStyle.Render("  Source: " + view.Hit.Source))
			cb.WriteRune('\n')
		}
	}
	return resultsView{content: cb.String(), hitLines: hitLines}
}

func (m *model) hitHeading(view workflow.HitView) string {
	label := fmt.Sprintf("Result %d", view.Index+1)
	if view.Index == m.hitCursor {
		return currentHitStyle.Render("▸ " + label)
	}
	return hitHeadingStyle.Render("  " + label)
}

func (m *model) placeholderText(ctrl workflow.Controller) string {
	switch {
	case ctrl.Pending():
		return "Waiting for the backend…"
	case ctrl.Status() == workflow.Failed:
		return "No results to show."
	case m.active == tabSearch:
		return "Search results will appear here."
	default:
		return "Ask for advice and the suggestion will appear here."
	}
}

func (m *model) wrapWidth(indent int) int {
	width := m.layout.viewportWidth - indent
	if width < 20 {
		width = 20
	}
	return width
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	view := m.buildResults()
	m.viewport.SetContent(view.content)
	m.hitLines = view.hitLines
	m.viewportDirty = false
	if m.pendingFocusHit {
		m.pendingFocusHit = false
		m.ensureHitVisible()
	}
}

func (m *model) ensureHitVisible() {
	line, ok := m.hitLines[m.hitCursor]
	if !ok {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if line < top || line > bottom {
		m.viewport.SetYOffset(line)
	}
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

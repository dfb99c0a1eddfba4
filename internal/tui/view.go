package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{
		m.heroView(),
		m.tabsView(),
		m.composerPanel(),
		m.viewport.View(),
		m.statusView(),
		m.keyLegendView(),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("CaseAssist"),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) tabsView() string {
	cells := make([]string, 0, len(tabSequence))
	for _, t := range tabSequence {
		style := tabStyle
		if t == m.active {
			style = activeTabStyle
		}
		cells = append(cells, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) composerPanel() string {
	ctrl := m.controller(m.active)
	counter := helperStyle.Render(ctrl.Validation().Counter())
	if msg := ctrl.VisibleError(); msg != "" {
		counter += "  " + errorStyle.Render(msg)
	}

	buttonStyle := submitButtonStyle
	if ctrl.ButtonDisabled() {
		buttonStyle = disabledButtonStyle
	}
	button := buttonStyle.Render(ctrl.Label())
	if ctrl.Pending() {
		button = lipgloss.JoinHorizontal(lipgloss.Center, button, " ", m.spinner.View())
	}

	lines := []string{m.input(m.active).View(), counter, button}
	if failure := ctrl.Failure(); failure != "" {
		lines = append(lines, errorStyle.Render(failure))
	}
	return strings.Join(lines, "\n")
}

func (m *model) statusView() string {
	if m.infoMessage == "" {
		return ""
	}
	return helperStyle.Render(m.infoMessage)
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"tab", "Switch"},
		{"enter", "Submit"},
		{"alt+enter", "Newline"},
		{"esc", "Reset"},
	}
	if m.active == tabSearch {
		hints = append(hints, keyHint{"ctrl+n/p", "Select"}, keyHint{"ctrl+e", "Expand"})
	}
	hints = append(hints, keyHint{"pgup/pgdn", "Scroll"}, keyHint{"ctrl+c", "Quit"})

	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		cells = append(cells, keyStyle.Render(hint.Key)+keyDescStyle.Render(" "+hint.Description+" "))
	}
	return strings.Join(cells, " ")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	accentColor = lipgloss.Color("#ff8c00")

	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4d6b3")).Italic(true)
	sectionHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	subjectStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tabStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Padding(0, 2)
	activeTabStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor).Padding(0, 2)
	submitButtonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 2)
	hitHeadingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	currentHitStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
)

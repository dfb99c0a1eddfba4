package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/caseassist/internal/backend"
	"github.com/csheth/caseassist/internal/workflow"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Backend backend.Client
	Logger  *zap.Logger
	// Context bounds every backend call started from the UI.
	Context context.Context
	// InitialTab is "advice" or "search"; anything else opens advice.
	InitialTab string
	// Prefill is loaded into the initial tab's composer.
	Prefill string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	m := &model{
		config:        config,
		logger:        logger.Named("tui"),
		jobs:          newJobBus(config.Context, logger),
		layout:        newPageLayout(),
		advice:        workflow.NewAdvice(logger),
		search:        workflow.NewSearch(logger),
		adviceInput:   newComposerInput(composerAdvicePlaceholder, adviceComposerHeight),
		searchInput:   newComposerInput(composerSearchPlaceholder, searchComposerHeight),
		spinner:       spin,
		viewport:      vp,
		hitLines:      map[int]int{},
		viewportDirty: true,
	}
	if config.InitialTab == "search" {
		m.active = tabSearch
	}
	m.input(m.active).Focus()
	if config.Prefill != "" {
		m.input(m.active).SetValue(config.Prefill)
		m.syncComposer(m.active)
	}
	return m
}

func newComposerInput(placeholder string, height int) textarea.Model {
	input := textarea.New()
	input.Placeholder = placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.Prompt = "┃ "
	input.SetWidth(80 - viewportHorizontalPadding)
	input.SetHeight(height)
	// enter submits
	input.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("alt+enter"),
		key.WithHelp("alt+enter", "newline"),
	)
	return input
}

type model struct {
	config Config
	logger *zap.Logger
	jobs   *jobBus
	layout pageLayout

	active tab
	advice *workflow.Advice
	search *workflow.Search

	adviceInput textarea.Model
	searchInput textarea.Model
	spinner     spinner.Model
	viewport    viewport.Model

	hitCursor       int
	hitLines        map[int]int
	pendingFocusHit bool
	viewportDirty   bool
	infoMessage     string
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.applyLayout(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if !m.anyPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case jobSignalMsg:
		m.logger.Debug("job started",
			zap.String("id", msg.Snapshot.ID),
			zap.String("kind", string(msg.Snapshot.Kind)),
		)
		return m, nil
	case jobResultEnvelope:
		m.handleJobResult(msg)
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateComposer(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab", "shift+tab":
		return m.switchTab()
	case "enter":
		return m.submitActive()
	case "esc":
		m.resetActive()
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case "ctrl+n", "ctrl+p", "ctrl+e":
		if m.active != tabSearch {
			break
		}
		switch msg.String() {
		case "ctrl+n":
			m.moveHitCursor(1)
		case "ctrl+p":
			m.moveHitCursor(-1)
		default:
			m.toggleSelectedHit()
		}
		return nil
	}
	return m.updateComposer(msg)
}

func (m *model) handleJobResult(env jobResultEnvelope) {
	switch payload := env.Payload.(type) {
	case adviceResultMsg:
		if !m.advice.Resolve(payload.outcome) {
			return
		}
	case searchResultMsg:
		if !m.search.Resolve(payload.outcome) {
			return
		}
		m.hitCursor = 0
	default:
		m.logger.Warn("unexpected job payload", zap.String("id", env.Snapshot.ID))
		return
	}
	m.markViewportDirty()
	m.viewport.GotoTop()
}

func (m *model) switchTab() tea.Cmd {
	m.input(m.active).Blur()
	next := (int(m.active) + 1) % len(tabSequence)
	m.active = tabSequence[next]
	m.infoMessage = ""
	if m.layout.sized() {
		m.applyLayout(m.layout.windowWidth, m.layout.windowHeight)
	}
	m.markViewportDirty()
	m.viewport.GotoTop()
	return m.input(m.active).Focus()
}

func (m *model) applyLayout(width, height int) {
	m.layout.Update(width, height, composerHeightFor(m.active))
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.adviceInput.SetWidth(m.layout.viewportWidth)
	m.searchInput.SetWidth(m.layout.viewportWidth)
	m.markViewportDirty()
}

func composerHeightFor(t tab) int {
	if t == tabSearch {
		return searchComposerHeight
	}
	return adviceComposerHeight
}

func (m *model) updateComposer(msg tea.Msg) tea.Cmd {
	input := m.input(m.active)
	before := input.Value()
	updated, cmd := input.Update(msg)
	*input = updated
	if input.Value() != before {
		m.syncComposer(m.active)
	}
	return cmd
}

// syncComposer pushes the textarea value through the controller and writes
// the sanitized text back when markup was stripped.
func (m *model) syncComposer(t tab) {
	input := m.input(t)
	raw := input.Value()
	if clean := m.controller(t).SetText(raw); clean != raw {
		input.SetValue(clean)
	}
}

func (m *model) controller(t tab) workflow.Controller {
	if t == tabSearch {
		return m.search
	}
	return m.advice
}

func (m *model) input(t tab) *textarea.Model {
	if t == tabSearch {
		return &m.searchInput
	}
	return &m.adviceInput
}

func (m *model) anyPending() bool {
	return m.advice.Pending() || m.search.Pending()
}

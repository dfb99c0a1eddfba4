package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Renderer draws documents for a terminal.
type Renderer struct {
	Text  lipgloss.Style
	Bold  lipgloss.Style
	Link  lipgloss.Style
	Width int
}

// NewRenderer returns a renderer with the default palette, wrapping at width
// (no wrapping when width <= 0).
func NewRenderer(width int) Renderer {
	return Renderer{
		Text:  lipgloss.NewStyle(),
		Bold:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166")),
		Link:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#8ecae6")),
		Width: width,
	}
}

// Render styles each node and wraps the result. Control sequences in node
// text are stripped first.
func (r Renderer) Render(doc Document) string {
	var b strings.Builder
	for _, node := range doc {
		text := StripControl(node.Text)
		switch node.Kind {
		case Text:
			b.WriteString(renderLines(r.Text, text))
		case Bold:
			b.WriteString(r.Bold.Render(text))
		case LineBreak:
			b.WriteByte('\n')
		case Link:
			b.WriteString(r.Link.Render(text))
		}
	}
	if r.Width <= 0 {
		return b.String()
	}
	return wordwrap.String(b.String(), r.Width)
}

// lipgloss pads multi-line blocks to a common width, so style line by line.
func renderLines(style lipgloss.Style, text string) string {
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

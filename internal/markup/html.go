package markup

import (
	"html"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// RenderHTML renders the document as trusted HTML. Node text is escaped
// before any tag is written.
func RenderHTML(doc Document) string {
	var b strings.Builder
	for _, node := range doc {
		switch node.Kind {
		case Text:
			b.WriteString(textEscaper.Replace(node.Text))
		case Bold:
			b.WriteString("<strong>")
			b.WriteString(textEscaper.Replace(node.Text))
			b.WriteString("</strong>")
		case LineBreak:
			b.WriteString("<br/>")
		case Link:
			b.WriteString(`<a href="`)
			b.WriteString(html.EscapeString(node.Href))
			b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
			b.WriteString(textEscaper.Replace(node.Text))
			b.WriteString("</a>")
		}
	}
	return b.String()
}

// AdviceHTML parses and renders generated advice in one step.
func AdviceHTML(raw string) string {
	return RenderHTML(ParseAdvice(raw))
}

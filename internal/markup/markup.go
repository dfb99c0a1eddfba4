// Package markup turns raw backend text into a small, explicitly modeled
// document tree and renders it for HTML or terminal display.
//
// Raw text only ever lands in Text, Bold and Link nodes. Renderers escape
// node text before emitting any markup of their own, so backend output can
// never inject tags.
package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// HitPreviewLimit is the number of characters shown for a collapsed search hit.
const HitPreviewLimit = 400

const ellipsis = "..."

// Kind identifies a node type.
type Kind int

const (
	Text Kind = iota
	Bold
	LineBreak
	Link
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Bold:
		return "bold"
	case LineBreak:
		return "br"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// Node is one element of a Document. Href is only set for Link nodes.
type Node struct {
	Kind Kind
	Text string
	Href string
}

// Document is an ordered sequence of nodes.
type Document []Node

var (
	boldSpan = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bareURL  = regexp.MustCompile(`https?://[^\s]+`)
)

// ParseAdvice converts generated advice into a document: **text** spans
// become Bold nodes and newlines become LineBreak nodes.
func ParseAdvice(raw string) Document {
	if raw == "" {
		return nil
	}
	var doc Document
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i > 0 {
			doc = append(doc, Node{Kind: LineBreak})
		}
		doc = appendBold(doc, line)
	}
	return doc
}

func appendBold(doc Document, line string) Document {
	last := 0
	for _, loc := range boldSpan.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] > last {
			doc = append(doc, Node{Kind: Text, Text: line[last:loc[0]]})
		}
		doc = append(doc, Node{Kind: Bold, Text: line[loc[2]:loc[3]]})
		last = loc[1]
	}
	if last < len(line) {
		doc = append(doc, Node{Kind: Text, Text: line[last:]})
	}
	return doc
}

// HitTruncated reports whether content is longer than the collapsed preview.
func HitTruncated(content string) bool {
	return utf8.RuneCountInString(content) > HitPreviewLimit
}

// ParseHit converts search-hit content into a document. Collapsed content is
// cut to HitPreviewLimit characters before URLs are linked, so a URL crossing
// the cut is linked only up to the cut.
func ParseHit(content string, expanded bool) Document {
	display := content
	if !expanded && HitTruncated(content) {
		display = truncateRunes(content, HitPreviewLimit) + ellipsis
	}
	return autolink(display)
}

func truncateRunes(s string, limit int) string {
	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx]
		}
		count++
	}
	return s
}

func autolink(text string) Document {
	if text == "" {
		return nil
	}
	var doc Document
	last := 0
	for _, loc := range bareURL.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			doc = append(doc, Node{Kind: Text, Text: text[last:loc[0]]})
		}
		url := text[loc[0]:loc[1]]
		doc = append(doc, Node{Kind: Link, Text: url, Href: url})
		last = loc[1]
	}
	if last < len(text) {
		doc = append(doc, Node{Kind: Text, Text: text[last:]})
	}
	return doc
}

// PlainText flattens the document back to unstyled text with control
// sequences removed.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, node := range d {
		if node.Kind == LineBreak {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(StripControl(node.Text))
	}
	return b.String()
}

// Links returns the hrefs of every Link node in order.
func (d Document) Links() []string {
	var out []string
	for _, node := range d {
		if node.Kind == Link {
			out = append(out, node.Href)
		}
	}
	return out
}

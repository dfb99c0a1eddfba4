// Package sanitize strips markup-like tag spans from user-entered text.
package sanitize

import "regexp"

// tagSpan matches a '<' up to the first following '>'. An unterminated '<' never matches.
var tagSpan = regexp.MustCompile(`<[^>]*>`)

// Input removes every well-formed <...> span from s and leaves everything else,
// including whitespace and line breaks, untouched.
func Input(s string) string {
	if s == "" {
		return s
	}
	return tagSpan.ReplaceAllLiteralString(s, "")
}

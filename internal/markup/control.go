package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// StripControl removes terminal escape sequences and control characters
// other than newline and tab. Text from the backend passes through it before
// it reaches a terminal.
func StripControl(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if strings.IndexFunc(s, isUnsafeControl) < 0 {
		return s
	}
	// ansi.Strip keeps bare C0 controls such as BEL and CR.
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func isUnsafeControl(r rune) bool {
	return r != '\n' && r != '\t' && unicode.IsControl(r)
}

// Package validate computes live validation feedback for composer text.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLength is the largest trimmed input, in characters, the backend accepts.
const MaxLength = 500

// Kind enumerates the validation outcomes.
type Kind int

const (
	None Kind = iota
	Empty
	TooLong
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Empty:
		return "empty"
	case TooLong:
		return "too_long"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of checking one version of the input.
type Result struct {
	Kind   Kind
	Limit  int
	Length int
}

// Check validates sanitized text against MaxLength.
func Check(text string) Result {
	return CheckLimit(text, MaxLength)
}

// CheckLimit validates sanitized text against an explicit limit.
func CheckLimit(text string, limit int) Result {
	length := utf8.RuneCountInString(strings.TrimSpace(text))
	res := Result{Kind: None, Limit: limit, Length: length}
	switch {
	case length == 0:
		res.Kind = Empty
	case length > limit:
		res.Kind = TooLong
	}
	return res
}

// OK reports whether the input may be submitted.
func (r Result) OK() bool {
	return r.Kind == None
}

// Message is the user-facing error, empty when the input is valid.
func (r Result) Message() string {
	switch r.Kind {
	case Empty:
		return "Input cannot be empty."
	case TooLong:
		return fmt.Sprintf("Input must be at most %d characters.", r.Limit)
	default:
		return ""
	}
}

// Counter renders the live character counter shown under the composer.
func (r Result) Counter() string {
	return fmt.Sprintf("%d / %d chars", r.Length, r.Limit)
}

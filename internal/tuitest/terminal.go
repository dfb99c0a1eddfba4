package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery is an escape sequence a program sends to probe the terminal,
// paired with the answer a plain dark xterm would give.
type terminalQuery struct {
	ask    []byte
	answer []byte
}

// lipgloss and bubbletea block on these at startup when nothing answers.
var terminalQueries = []terminalQuery{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderKeep = 64
	responderMax  = 256
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, responderMax)}
}

// Process scans chunk for terminal queries and writes their answers. A short
// tail is kept so queries split across reads are still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	if len(tr.buf) > responderMax {
		tr.buf = tr.buf[len(tr.buf)-responderKeep:]
	}
}

func (tr *terminalResponder) answerNext() bool {
	for _, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.ask)
		if idx < 0 {
			continue
		}
		tr.buf = tr.buf[idx+len(q.ask):]
		_, _ = tr.w.Write(q.answer)
		return true
	}
	return false
}

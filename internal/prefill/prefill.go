// Package prefill loads composer text from a file on disk.
package prefill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxFileBytes caps how much of a file is read. Composer input is limited to a
// few hundred characters, so anything larger is only loaded to be flagged.
const MaxFileBytes = 1 << 20

var (
	// ErrUnsupported is returned for file types other than text and PDF.
	ErrUnsupported = errors.New("unsupported file type")

	extraneousWhitespace = regexp.MustCompile(`[ \t]+`)
)

// Load returns the text content of a .txt, .md or .pdf file.
func Load(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text", "":
		return loadText(path)
	case ".pdf":
		return loadPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

func loadText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, MaxFileBytes))
	if err != nil {
		return "", err
	}
	raw = trimPartialRune(raw)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return strings.ReplaceAll(string(raw), "\r\n", "\n"), nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, io.LimitReader(content, MaxFileBytes)); err != nil {
		return "", err
	}
	text := string(trimPartialRune([]byte(builder.String())))
	text = extraneousWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}

// trimPartialRune drops a multi-byte sequence cut off by MaxFileBytes.
func trimPartialRune(b []byte) []byte {
	if len(b) < MaxFileBytes {
		return b
	}
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}
		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}
		return b
	}
	return b
}

package tui

import (
	"regexp"
	"strings"
)

// ansiEscapePattern matches ANSI escape sequences including:
// - Control sequences (ESC [ ...)
// - Private sequences (ESC [ ? ...)
// - Cursor control, color codes, etc.
var ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// SanitizePaste cleans up pasted content. Terminals deliver drag-and-drop
// as a paste, so this runs before the text is treated as a path.
// - Strips ANSI escape sequences
// - Removes null bytes and non-printable control chars (except \n, \t)
// - Normalizes CRLF (\r\n) to LF (\n)
// - Trims surrounding whitespace
func SanitizePaste(content string) string {
	content = ansiEscapePattern.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var result strings.Builder
	for _, r := range content {
		switch {
		case r == '\n' || r == '\t':
			result.WriteRune(r)
		case r < 32 || r == 127:
			continue
		default:
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// newlinePattern matches one or more newline characters
var newlinePattern = regexp.MustCompile(`\n+`)

// CollapseNewlines replaces all sequences of newlines with a single space,
// for single-line inputs such as the chat box.
func CollapseNewlines(content string) string {
	return newlinePattern.ReplaceAllString(content, " ")
}

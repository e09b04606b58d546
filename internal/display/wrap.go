package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
// Trailing spaces, such as the space after a prompt, are kept.
func Wrap(text string) string {
	trimmed := strings.TrimRight(text, " ")
	return wordwrap.String(trimmed, DefaultWidth) + text[len(trimmed):]
}

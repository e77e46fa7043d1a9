package search

import (
	"strings"
	"unicode/utf8"
)

const (
	snippetBefore = 50
	snippetLength = 150
	ellipsis      = "..."
)

// Snippet returns the text around the first match of phrase in body, or of
// the first word found when the phrase is absent. It starts up to 50 bytes
// before the match and ends 150 bytes after its start, with "..." marking
// each truncated side and newlines flattened to spaces.
func Snippet(body, phrase string, words []string) string {
	pos := strings.Index(body, phrase)
	for i := 0; pos < 0 && i < len(words); i++ {
		pos = strings.Index(body, words[i])
	}
	if pos < 0 {
		pos = 0
	}

	start := runeStart(body, max(0, pos-snippetBefore))
	end := runeStart(body, min(len(body), pos+snippetLength))

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(body[start:end])
	if end < len(body) {
		b.WriteString(ellipsis)
	}
	return strings.TrimSpace(flatten(b.String()))
}

// runeStart moves i back to the start of the rune containing it.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

package skill

import "strings"

// maxHeadingLevel is the deepest heading kept for the heading bonus.
const maxHeadingLevel = 3

// Normalise lower-cases text for case-insensitive matching and extracts its
// level 1-3 markdown headings and whitespace-delimited word count.
func Normalise(raw string) (body string, headings []string, words int) {
	body = strings.ToLower(raw)
	for line := range strings.SplitSeq(body, "\n") {
		if h, ok := heading(strings.TrimRight(line, "\r")); ok {
			headings = append(headings, h)
		}
	}
	return body, headings, len(strings.Fields(body))
}

// heading returns the text of an ATX heading line of level 1-3.
func heading(line string) (string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingLevel {
		return "", false
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return "", false
	}
	text := strings.TrimSpace(line[n:])
	if text == "" {
		return "", false
	}
	return text, true
}

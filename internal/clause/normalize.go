// Package clause splits normalized contract text into clauses and classifies them.
package clause

import "strings"

// Normalize canonicalizes raw extracted text: line endings become "\n", runs of
// horizontal whitespace collapse to a single space, and leading/trailing
// whitespace is trimmed. Newlines are preserved so the segmenter can still see
// paragraph boundaries. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune('\n')
			wasSpace = false
		case r == ' ' || r == '\t' || r == ' ':
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
		default:
			b.WriteRune(r)
			wasSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

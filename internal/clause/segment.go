package clause

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minClauseLength filters out headings and stray fragments too short to be a clause.
const minClauseLength = 50

// boundary matches clause boundaries: a blank-line gap, or a numbered heading of
// one or two digits plus an optional sub-number ("3. ", "2.1 ") at line start.
// The heading pattern also matches accidental in-text numbers at a line start
// (e.g. monetary amounts), which over-splits; precedent matching granularity
// depends on exactly this behavior, so it is left undisambiguated.
var boundary = regexp.MustCompile(`(?m)\n{2,}|^\d{1,2}\.(?:\d{1,2})?\s`)

// listMarker matches fragments that are just a bare letter or roman-numeral token.
var listMarker = regexp.MustCompile(`^(?:[a-z]|i+|v+|x+)$`)

// whitespaceRun matches any run of whitespace, including embedded newlines.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Segment splits normalized text into clause-sized fragments. Fragments shorter
// than minClauseLength runes and bare list markers are discarded; survivors have
// internal newlines collapsed so clause text is single-line. Empty input yields
// an empty result.
func Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var clauses []string
	for _, fragment := range boundary.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) < minClauseLength {
			continue
		}
		if listMarker.MatchString(strings.ToLower(fragment)) {
			continue
		}
		clauses = append(clauses, whitespaceRun.ReplaceAllString(fragment, " "))
	}
	return clauses
}

package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// CollapseSpace trims a string and collapses runs of inner whitespace
// into a single space. Rendered label cells tend to carry indentation
// and stray newlines from the server templates.
func CollapseSpace(s string) string {
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

func RemoveNonPrintable(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// MatchLabel reports whether a rendered label matches one of its
// accepted spellings. The portal renders in either German or English
// per session, so every lookup carries both spellings.
func MatchLabel(label string, accepted []string) bool {
	label = CollapseSpace(label)
	for _, a := range accepted {
		if label == a {
			return true
		}
	}
	return false
}

package core

import (
	"regexp"
	"strings"
)

// reminderRE matches an inline <system-reminder>...</system-reminder> span.
// (?s) lets the span cover multiple lines.
var reminderRE = regexp.MustCompile(`(?s)<system-reminder>.*?</system-reminder>`)

// StripSystemReminder removes the first system-reminder span from s and
// reports whether any non-whitespace text remains. Text outside the span is
// kept as-is, so "<system-reminder>X</system-reminder>Y" becomes "Y".
// Only the first span is removed.
func StripSystemReminder(s string) (string, bool) {
	loc := reminderRE.FindStringIndex(s)
	if loc == nil {
		return s, strings.TrimSpace(s) != ""
	}
	cleaned := s[:loc[0]] + s[loc[1]:]
	return cleaned, strings.TrimSpace(cleaned) != ""
}

// ContainsSystemReminder reports whether s carries a system-reminder span.
func ContainsSystemReminder(s string) bool {
	return reminderRE.MatchString(s)
}

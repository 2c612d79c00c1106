package cortex

import (
	"encoding/json"
	"os"

	"github.com/sonnes/lekhak/core"
)

// NoSummary is the placeholder used when no summary can be derived.
const NoSummary = "(no summary)"

// DefaultSummaryLength bounds summaries shown in listings.
const DefaultSummaryLength = 100

// Summary derives a short label for the session at path: the title when
// non-empty, else the first user text block, else a placeholder. Extraction
// is best-effort — every failure mode collapses to the placeholder so a
// directory scan never aborts on one bad file.
func Summary(path string, maxLen int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return NoSummary
	}

	var session rawSession
	if err := json.Unmarshal(data, &session); err != nil {
		return NoSummary
	}

	candidate := session.Title
	if candidate == "" {
		candidate = firstUserText(session.History)
	}
	if candidate == "" {
		candidate = NoSummary
	}
	return truncate(candidate, maxLen)
}

// firstUserText returns the text of the first text-typed block in the first
// user record that has one.
func firstUserText(history []rawRecord) string {
	for _, rec := range history {
		if rec.Role != core.RoleUser {
			continue
		}
		var blocks []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(rec.Content, &blocks); err != nil {
			continue
		}
		for _, b := range blocks {
			if b.Type == "text" && b.Text != "" {
				return b.Text
			}
		}
	}
	return ""
}

// truncate shortens s so the result is exactly maxLen characters, the last
// three being literal dots. Counting is by rune so multibyte titles are never
// cut mid-character. Strings within budget are returned unchanged.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

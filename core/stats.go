package core

import (
	"fmt"
	"time"
)

// Stats summarizes a transcript for index listings.
type Stats struct {
	Loglines  int
	Turns     int
	ToolCalls int
}

// ComputeStats counts loglines, turns, and tool calls in the transcript.
func ComputeStats(t *Transcript) Stats {
	s := Stats{Loglines: len(t.Loglines)}
	turns := GroupTurns(t.Loglines)
	s.Turns = len(turns)
	for _, turn := range turns {
		s.ToolCalls += turn.StepCount()
	}
	return s
}

// timestampLayouts covers the timestamp shapes seen in session logs:
// RFC 3339 with optional fractional seconds and zone, and the zone-less
// microsecond form Cortex writes for user_sent_time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a logline timestamp. Returns the zero time when the
// string is empty or matches no known layout.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StartTime returns the first parseable logline timestamp, or the zero time.
func (t *Transcript) StartTime() time.Time {
	for _, entry := range t.Loglines {
		if ts := ParseTimestamp(entry.Timestamp); !ts.IsZero() {
			return ts
		}
	}
	return time.Time{}
}

// RelativeTime formats a time.Time as a human-readable relative string.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}

package core

import "time"

// ManifestEntry holds lightweight metadata for a single session, used by the
// manifest file and the index template. It carries what the index page needs
// without the full logline list.
type ManifestEntry struct {
	SessionID string    `json:"session_id,omitempty"`
	Summary   string    `json:"summary"`
	Path      string    `json:"path,omitempty"` // source session file
	Href      string    `json:"href"`           // relative link to the rendered page
	Loglines  int       `json:"loglines"`
	Turns     int       `json:"turns"`
	ToolCalls int       `json:"tool_calls"`
	StartedAt time.Time `json:"started_at"`
}

// NewManifestEntry extracts metadata from a transcript and pairs it with the
// source path and rendered-page href. An empty summary falls back to the
// transcript title, then the session ID.
func NewManifestEntry(t *Transcript, path, href, summary string) ManifestEntry {
	if summary == "" {
		summary = t.Title
	}
	if summary == "" {
		summary = "Session " + t.SessionID
	}
	stats := ComputeStats(t)
	return ManifestEntry{
		SessionID: t.SessionID,
		Summary:   summary,
		Path:      path,
		Href:      href,
		Loglines:  stats.Loglines,
		Turns:     stats.Turns,
		ToolCalls: stats.ToolCalls,
		StartedAt: t.StartTime(),
	}
}

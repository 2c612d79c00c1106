package cortex

import (
	"os"
	"path/filepath"
)

// Session pairs a detected session file with its display summary.
type Session struct {
	Path    string
	Summary string
}

// FindSessions lists Cortex session files directly under dir, in name order.
// Non-Cortex files are skipped silently and a missing directory yields zero
// results; surfacing that as an error is the caller's concern. Scanning stops
// once limit sessions have been accepted; limit <= 0 means no limit.
func FindSessions(dir string, limit int) []Session {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var sessions []Session
	for _, de := range entries {
		if !isJSONFile(de) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		if !IsSessionFile(path) {
			continue
		}
		sessions = append(sessions, Session{
			Path:    path,
			Summary: Summary(path, DefaultSummaryLength),
		})
		if limit > 0 && len(sessions) >= limit {
			break
		}
	}
	return sessions
}
